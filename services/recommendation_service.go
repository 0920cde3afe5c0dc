package services

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/ShashankBagda/AI-Restaurant/models"
)

// RecommendationService is a pure read-side report over the same data: no
// coordination state, no events.
type RecommendationService struct {
	DB      *gorm.DB
	Catalog *CatalogService
}

func NewRecommendationService(db *gorm.DB, catalog *CatalogService) *RecommendationService {
	return &RecommendationService{DB: db, Catalog: catalog}
}

func (rs *RecommendationService) GetPreferences(userID string) (models.Preference, error) {
	var pref models.Preference
	if err := rs.DB.First(&pref, "user_id = ?", userID).Error; err != nil {
		// No saved preferences yet is not an error, just defaults.
		return models.Preference{UserID: userID}, nil
	}
	return pref, nil
}

func (rs *RecommendationService) SavePreferences(userID string, vegOnly bool, favoriteCategory string) (models.Preference, error) {
	pref := models.Preference{
		UserID:           userID,
		VegOnly:          vegOnly,
		FavoriteCategory: favoriteCategory,
		UpdatedAt:        time.Now(),
	}
	if err := withRetry(func() error { return rs.DB.Save(&pref).Error }); err != nil {
		return models.Preference{}, err
	}
	return pref, nil
}

type scoredItem struct {
	item  models.MenuItem
	score float64
}

// Recommend ranks the catalog for one customer: favorite category first,
// veg tag when the customer eats veg only, plus the average stars the
// customer gave to past orders containing the item.
func (rs *RecommendationService) Recommend(session models.Session, limit int) ([]models.MenuItem, error) {
	if limit <= 0 {
		limit = 5
	}

	items, err := rs.Catalog.List()
	if err != nil {
		return nil, err
	}
	pref, err := rs.GetPreferences(session.UserID)
	if err != nil {
		return nil, err
	}
	avgStars, err := rs.averageStarsByItem(session.UserID)
	if err != nil {
		return nil, err
	}

	scored := make([]scoredItem, 0, len(items))
	for _, item := range items {
		s := scoredItem{item: item}
		if pref.FavoriteCategory != "" && item.Category == pref.FavoriteCategory {
			s.score += 2
		}
		if pref.VegOnly {
			if !item.HasTag("veg") {
				continue
			}
			s.score++
		}
		s.score += avgStars[item.ItemID]
		scored = append(scored, s)
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	if len(scored) > limit {
		scored = scored[:limit]
	}

	out := make([]models.MenuItem, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.item)
	}
	return out, nil
}

// averageStarsByItem aggregates the customer's past ratings per menu item.
func (rs *RecommendationService) averageStarsByItem(userID string) (map[string]float64, error) {
	var rows []struct {
		ItemID string
		Avg    float64
	}
	err := rs.DB.Raw(`
		SELECT ol.item_id AS item_id, AVG(r.stars) AS avg
		FROM ratings r
		JOIN orders o ON o.id = r.order_id
		JOIN order_lines ol ON ol.order_id = o.id
		WHERE o.user_id = ?
		GROUP BY ol.item_id
	`, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		out[row.ItemID] = row.Avg
	}
	return out, nil
}
