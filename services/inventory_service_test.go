package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShashankBagda/AI-Restaurant/models"
)

func TestDecrementClampsAtZero(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.InventoryCounter{ItemID: "margherita", Stock: 3, UpdatedAt: time.Now()}).Error)

	is := NewInventoryService(db)

	// Stock 3, decrement 5 -> 0, not -2.
	require.NoError(t, is.Decrement("margherita", 5))

	var counter models.InventoryCounter
	require.NoError(t, db.First(&counter, "item_id = ?", "margherita").Error)
	assert.Equal(t, 0, counter.Stock)
}

func TestDecrementNormalPath(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Create(&models.InventoryCounter{ItemID: "coke", Stock: 10, UpdatedAt: time.Now()}).Error)

	is := NewInventoryService(db)

	require.NoError(t, is.Decrement("coke", 4))

	var counter models.InventoryCounter
	require.NoError(t, db.First(&counter, "item_id = ?", "coke").Error)
	assert.Equal(t, 6, counter.Stock)
}

func TestDecrementRejectsNonPositiveQuantity(t *testing.T) {
	db := setupTestDB(t)
	is := NewInventoryService(db)

	assert.ErrorIs(t, is.Decrement("coke", 0), ErrInvalidInput)
	assert.ErrorIs(t, is.Decrement("coke", -2), ErrInvalidInput)
}

func TestSetStock(t *testing.T) {
	db := setupTestDB(t)
	is := NewInventoryService(db)

	counter, err := is.SetStock("brownie", 25)
	require.NoError(t, err)
	assert.Equal(t, 25, counter.Stock)

	// Override down is allowed; negative is not.
	counter, err = is.SetStock("brownie", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, counter.Stock)

	_, err = is.SetStock("brownie", -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
