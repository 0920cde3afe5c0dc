package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShashankBagda/AI-Restaurant/models"
)

func newRecEnv(t *testing.T) (orderEnv, *RecommendationService) {
	t.Helper()
	env := newOrderEnv(t)
	return env, NewRecommendationService(env.db, NewCatalogService(env.db))
}

func TestPreferencesDefaultAndUpsert(t *testing.T) {
	_, rs := newRecEnv(t)

	// Never saved: zero-value defaults, not an error.
	pref, err := rs.GetPreferences("demo")
	require.NoError(t, err)
	assert.False(t, pref.VegOnly)
	assert.Empty(t, pref.FavoriteCategory)

	_, err = rs.SavePreferences("demo", true, "pizza")
	require.NoError(t, err)

	// Saving again overwrites the same row.
	_, err = rs.SavePreferences("demo", false, "drinks")
	require.NoError(t, err)

	pref, err = rs.GetPreferences("demo")
	require.NoError(t, err)
	assert.False(t, pref.VegOnly)
	assert.Equal(t, "drinks", pref.FavoriteCategory)

	var count int64
	rs.DB.Model(&models.Preference{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRecommendFavoriteCategoryWins(t *testing.T) {
	env, rs := newRecEnv(t)
	seedMenuItem(t, env.db, "margherita", "Margherita Pizza", 250, "veg", "pizza")
	seedMenuItem(t, env.db, "coke", "Coke", 60, "veg,cold", "drinks")
	seedMenuItem(t, env.db, "brownie", "Chocolate Brownie", 140, "veg,dessert", "desserts")

	_, err := rs.SavePreferences("demo", false, "drinks")
	require.NoError(t, err)

	items, err := rs.Recommend(customerSession("demo"), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "coke", items[0].ItemID)
}

func TestRecommendVegOnlyFilters(t *testing.T) {
	env, rs := newRecEnv(t)
	seedMenuItem(t, env.db, "margherita", "Margherita Pizza", 250, "veg", "pizza")
	seedMenuItem(t, env.db, "pepperoni", "Pepperoni Pizza", 380, "non-veg,spicy", "pizza")

	_, err := rs.SavePreferences("demo", true, "")
	require.NoError(t, err)

	items, err := rs.Recommend(customerSession("demo"), 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "margherita", items[0].ItemID)
}

func TestRecommendRatingsBoostPastOrders(t *testing.T) {
	env, rs := newRecEnv(t)
	env.seedStandardCatalog(t)

	// Order a coke, get it served and rate it 5 stars.
	order, err := env.orders.Create(customerSession("demo"), "T1", []OrderLineRequest{{ItemID: "coke", Quantity: 1}})
	require.NoError(t, err)
	require.NoError(t, env.orders.UpdateStatus(adminSession("admin"), order.ID, models.StatusServed, ""))
	require.NoError(t, env.orders.Rate(customerSession("demo"), order.ID, 5, "crisp"))

	items, err := rs.Recommend(customerSession("demo"), 1)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "coke", items[0].ItemID)

	// Demo's 5 stars outrank a mere favorite-category bonus.
	_, err = rs.SavePreferences("demo", false, "pizza")
	require.NoError(t, err)
	items, err = rs.Recommend(customerSession("demo"), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "coke", items[0].ItemID)
	assert.Equal(t, "margherita", items[1].ItemID)
}

func TestRecommendDefaultLimit(t *testing.T) {
	env, rs := newRecEnv(t)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		seedMenuItem(t, env.db, id, id, 100, "veg", "misc")
	}

	items, err := rs.Recommend(customerSession("demo"), 0)
	require.NoError(t, err)
	assert.Len(t, items, 5)
}
