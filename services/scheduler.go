package services

import (
	"sync"

	"gorm.io/gorm"

	"github.com/ShashankBagda/AI-Restaurant/models"
)

// Scheduler distributes new order lines round-robin among the staff
// qualified for each category. Cursors are process-local and reset on
// restart; the roster is re-read from storage per call, so staff edits take
// effect on the next assignment with no migration of existing orders.
type Scheduler struct {
	DB *gorm.DB

	mu      sync.Mutex
	cursors map[string]int
}

func NewScheduler(db *gorm.DB) *Scheduler {
	return &Scheduler{
		DB:      db,
		cursors: make(map[string]int),
	}
}

// AssignForCategory returns the next qualified staff user id for the
// category, or "" when nobody qualifies (the line stays unassigned for
// manual pickup). Each call is one atomic read-increment-wrap.
func (sc *Scheduler) AssignForCategory(category string) (string, error) {
	roster, err := sc.roster(category)
	if err != nil {
		return "", err
	}
	if len(roster) == 0 {
		return "", nil
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()

	idx := sc.cursors[category] % len(roster)
	sc.cursors[category] = idx + 1
	return roster[idx], nil
}

// roster lists staff whose specialty set contains the category, in stable
// alphabetical order so the cycle is deterministic.
func (sc *Scheduler) roster(category string) ([]string, error) {
	var staff []models.User
	err := withRetry(func() error {
		return sc.DB.Where("role = ?", models.RoleStaff).Order("user_id").Find(&staff).Error
	})
	if err != nil {
		return nil, err
	}

	var out []string
	for _, u := range staff {
		if models.HasCategory(u.Specialty, category) {
			out = append(out, u.UserID)
		}
	}
	return out, nil
}
