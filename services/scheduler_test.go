package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShashankBagda/AI-Restaurant/models"
)

func TestAssignForCategoryRoundRobin(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "bob", "pw", models.RoleStaff, "pizza")
	seedUser(t, db, "alice", "pw", models.RoleStaff, "pizza,drinks")
	seedUser(t, db, "carol", "pw", models.RoleStaff, "pizza")
	seedUser(t, db, "dave", "pw", models.RoleCustomer, "pizza") // not staff, never assigned

	sc := NewScheduler(db)

	// Roster order is alphabetical by user id, cycling.
	counts := map[string]int{}
	var sequence []string
	for i := 0; i < 10; i++ {
		staff, err := sc.AssignForCategory("pizza")
		require.NoError(t, err)
		counts[staff]++
		sequence = append(sequence, staff)
	}

	// 10 assignments over 3 qualified staff: 4/3/3.
	assert.Equal(t, 4, counts["alice"])
	assert.Equal(t, 3, counts["bob"])
	assert.Equal(t, 3, counts["carol"])
	assert.Equal(t, []string{"alice", "bob", "carol", "alice", "bob", "carol", "alice", "bob", "carol", "alice"}, sequence)
}

func TestAssignForCategoryNoQualifiedStaff(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "alice", "pw", models.RoleStaff, "pizza")

	sc := NewScheduler(db)

	staff, err := sc.AssignForCategory("sushi")
	require.NoError(t, err)
	assert.Empty(t, staff)
}

func TestAssignForCategoryRosterChangeTakesEffectNextCall(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "alice", "pw", models.RoleStaff, "drinks")

	sc := NewScheduler(db)

	staff, err := sc.AssignForCategory("drinks")
	require.NoError(t, err)
	assert.Equal(t, "alice", staff)

	// New hire shows up on the very next call, no restart needed.
	seedUser(t, db, "zoe", "pw", models.RoleStaff, "drinks")

	staff, err = sc.AssignForCategory("drinks")
	require.NoError(t, err)
	assert.Equal(t, "zoe", staff)
}

func TestAssignForCategoryConcurrentCallsLoseNoSlots(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "alice", "pw", models.RoleStaff, "pizza")
	seedUser(t, db, "bob", "pw", models.RoleStaff, "pizza")

	sc := NewScheduler(db)

	const n = 40
	results := make(chan string, n)
	for i := 0; i < n; i++ {
		go func() {
			staff, err := sc.AssignForCategory("pizza")
			if err != nil {
				results <- ""
				return
			}
			results <- staff
		}()
	}

	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[<-results]++
	}

	assert.Zero(t, counts[""])
	assert.Equal(t, n/2, counts["alice"])
	assert.Equal(t, n/2, counts["bob"])
}
