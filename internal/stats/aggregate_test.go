package stats

import (
	"testing"
	"time"

	"github.com/ecopledge-dev/ecopledge/db"
	"github.com/ecopledge-dev/ecopledge/internal/models"
	"github.com/ecopledge-dev/ecopledge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createEntry(t *testing.T, userID uint, category string, co2 float64, date time.Time) models.CarbonEntry {
	t.Helper()

	entry := models.CarbonEntry{
		UserID:      userID,
		Category:    category,
		Description: "test entry",
		CO2Kg:       co2,
		Date:        date,
	}
	require.NoError(t, db.DB.Create(&entry).Error)

	return entry
}

func reloadUser(t *testing.T, id uint) models.User {
	t.Helper()

	var user models.User
	require.NoError(t, db.DB.First(&user, id).Error)

	return user
}

func TestRecomputeUserTotal(t *testing.T) {
	testutil.SetupDB(t)

	user := testutil.CreateUser(t, "alice", "alice@example.com")
	now := time.Now()

	createEntry(t, user.ID, "transport", 10, now)
	createEntry(t, user.ID, "food", 5, now)
	require.NoError(t, RecomputeUserTotal(user.ID))

	assert.InDelta(t, 15, reloadUser(t, user.ID).TotalCO2, 1e-9)

	// Recompute is idempotent
	require.NoError(t, RecomputeUserTotal(user.ID))
	assert.InDelta(t, 15, reloadUser(t, user.ID).TotalCO2, 1e-9)
}

func TestRecomputeUserTotalAfterDelete(t *testing.T) {
	testutil.SetupDB(t)

	user := testutil.CreateUser(t, "alice", "alice@example.com")
	now := time.Now()

	keep := createEntry(t, user.ID, "transport", 10, now)
	drop := createEntry(t, user.ID, "energy", 7.5, now)
	require.NoError(t, RecomputeUserTotal(user.ID))
	assert.InDelta(t, 17.5, reloadUser(t, user.ID).TotalCO2, 1e-9)

	require.NoError(t, db.DB.Delete(&drop).Error)
	require.NoError(t, RecomputeUserTotal(user.ID))

	assert.InDelta(t, keep.CO2Kg, reloadUser(t, user.ID).TotalCO2, 1e-9)

	require.NoError(t, db.DB.Delete(&keep).Error)
	require.NoError(t, RecomputeUserTotal(user.ID))

	assert.InDelta(t, 0, reloadUser(t, user.ID).TotalCO2, 1e-9)
}

func TestGlobalTotal(t *testing.T) {
	testutil.SetupDB(t)

	alice := testutil.CreateUser(t, "alice", "alice@example.com")
	bob := testutil.CreateUser(t, "bob", "bob@example.com")
	now := time.Now()

	createEntry(t, alice.ID, "transport", 10, now)
	createEntry(t, alice.ID, "food", 5, now)
	createEntry(t, bob.ID, "energy", 5, now)
	require.NoError(t, RecomputeUserTotal(alice.ID))
	require.NoError(t, RecomputeUserTotal(bob.ID))

	total, err := GlobalTotal()
	require.NoError(t, err)
	assert.InDelta(t, 20, total, 1e-9)
}

func TestGlobalTotalNoUsers(t *testing.T) {
	testutil.SetupDB(t)

	total, err := GlobalTotal()
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}

func TestComputeUserStats(t *testing.T) {
	testutil.SetupDB(t)

	user := testutil.CreateUser(t, "alice", "alice@example.com")
	other := testutil.CreateUser(t, "bob", "bob@example.com")
	now := time.Now()

	createEntry(t, user.ID, "transport", 2.1, now)
	createEntry(t, user.ID, "transport", 0.9, now)
	createEntry(t, user.ID, "food", 5, now)
	old := createEntry(t, user.ID, "energy", 3, now.AddDate(0, 0, -40))
	createEntry(t, other.ID, "waste", 100, now)

	got, err := ComputeUserStats(user.ID)
	require.NoError(t, err)

	assert.InDelta(t, 11, got.TotalCO2, 1e-9)
	assert.Equal(t, 4, got.TotalEntries)
	assert.InDelta(t, 3, got.ByCategory["transport"], 1e-9)
	assert.InDelta(t, 5, got.ByCategory["food"], 1e-9)
	assert.InDelta(t, 3, got.ByCategory["energy"], 1e-9)

	// Entries older than 30 days count toward the total but not the timeline
	dateKey := now.Format("2006-01-02")
	assert.InDelta(t, 8, got.ByDate[dateKey], 1e-9)
	_, hasOldKey := got.ByDate[old.Date.Format("2006-01-02")]
	assert.False(t, hasOldKey)
}
