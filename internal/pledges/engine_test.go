package pledges

import (
	"strings"
	"testing"
	"time"

	"github.com/ecopledge-dev/ecopledge/db"
	"github.com/ecopledge-dev/ecopledge/internal/models"
	"github.com/ecopledge-dev/ecopledge/internal/testutil"
	"github.com/ecopledge-dev/ecopledge/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBroadcaster struct {
	created []types.PledgeResponse
	updated []types.PledgeResponse
}

func (b *recordingBroadcaster) PledgeCreated(p types.PledgeResponse) {
	b.created = append(b.created, p)
}

func (b *recordingBroadcaster) PledgeUpdated(p types.PledgeResponse) {
	b.updated = append(b.updated, p)
}

func newTestEngine(t *testing.T) (*Engine, *recordingBroadcaster) {
	t.Helper()
	testutil.SetupDB(t)

	broadcaster := &recordingBroadcaster{}

	return NewEngine(broadcaster), broadcaster
}

func TestCreateValidation(t *testing.T) {
	engine, broadcaster := newTestEngine(t)
	owner := testutil.CreateUser(t, "alice", "alice@example.com")

	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"nine characters rejected", strings.Repeat("a", 9), true},
		{"ten characters accepted", strings.Repeat("a", 10), false},
		{"five hundred accepted", strings.Repeat("a", 500), false},
		{"five hundred one rejected", strings.Repeat("a", 501), true},
		{"padding does not rescue short text", "  " + strings.Repeat("a", 9) + "  ", true},
		{"empty rejected", "", true},
		{"nine multibyte characters rejected", strings.Repeat("気", 9), true},
		{"ten multibyte characters accepted", strings.Repeat("気", 10), false},
		{"five hundred multibyte characters accepted", strings.Repeat("気", 500), false},
		{"five hundred one multibyte characters rejected", strings.Repeat("気", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Create(owner.ID, tt.text)
			if tt.wantErr {
				var validationErr *ValidationError
				require.Error(t, err)
				assert.ErrorAs(t, err, &validationErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	// Only the accepted pledges were broadcast
	assert.Len(t, broadcaster.created, 4)
}

func TestCreateReturnsHydratedRecord(t *testing.T) {
	engine, broadcaster := newTestEngine(t)
	owner := testutil.CreateUser(t, "alice", "alice@example.com")

	got, err := engine.Create(owner.ID, "  I will cycle to work every day  ")
	require.NoError(t, err)

	assert.NotZero(t, got.ID)
	assert.Equal(t, "I will cycle to work every day", got.Text)
	assert.Equal(t, "alice", got.Owner.Name)
	assert.Equal(t, owner.Avatar, got.Owner.Avatar)
	assert.NotNil(t, got.Likes)
	assert.Empty(t, got.Likes)
	assert.False(t, got.CreatedAt.IsZero())

	require.Len(t, broadcaster.created, 1)
	assert.Equal(t, got, broadcaster.created[0])
}

func TestToggleLikeInvolution(t *testing.T) {
	engine, broadcaster := newTestEngine(t)
	alice := testutil.CreateUser(t, "alice", "alice@example.com")
	bob := testutil.CreateUser(t, "bob", "bob@example.com")

	pledge, err := engine.Create(alice.ID, "I pledge to eat less meat this year")
	require.NoError(t, err)

	liked, err := engine.ToggleLike(pledge.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, liked.Likes, 1)
	assert.Equal(t, types.UserSummary{ID: bob.ID, Name: "bob"}, liked.Likes[0])

	unliked, err := engine.ToggleLike(pledge.ID, bob.ID)
	require.NoError(t, err)
	assert.NotNil(t, unliked.Likes)
	assert.Empty(t, unliked.Likes)

	// A third toggle re-likes cleanly
	reliked, err := engine.ToggleLike(pledge.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, reliked.Likes, 1)

	assert.Len(t, broadcaster.updated, 3)
}

func TestToggleLikeTwoUsersBothPersist(t *testing.T) {
	engine, _ := newTestEngine(t)
	alice := testutil.CreateUser(t, "alice", "alice@example.com")
	bob := testutil.CreateUser(t, "bob", "bob@example.com")
	carol := testutil.CreateUser(t, "carol", "carol@example.com")

	pledge, err := engine.Create(alice.ID, "I pledge to take the train instead of flying")
	require.NoError(t, err)

	_, err = engine.ToggleLike(pledge.ID, bob.ID)
	require.NoError(t, err)

	got, err := engine.ToggleLike(pledge.ID, carol.ID)
	require.NoError(t, err)

	require.Len(t, got.Likes, 2)

	ids := []uint{got.Likes[0].ID, got.Likes[1].ID}
	assert.ElementsMatch(t, []uint{bob.ID, carol.ID}, ids)
}

func TestToggleLikeNeverDuplicates(t *testing.T) {
	engine, _ := newTestEngine(t)
	alice := testutil.CreateUser(t, "alice", "alice@example.com")
	bob := testutil.CreateUser(t, "bob", "bob@example.com")

	pledge, err := engine.Create(alice.ID, "I pledge to compost all food waste")
	require.NoError(t, err)

	_, err = engine.ToggleLike(pledge.ID, bob.ID)
	require.NoError(t, err)

	// A like row landing between the check and the insert must not produce a
	// duplicate: the insert is conditional on absence.
	var count int64
	require.NoError(t, db.DB.Model(&models.PledgeLike{}).
		Where("pledge_id = ? AND user_id = ?", pledge.ID, bob.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestToggleLikeUnknownPledge(t *testing.T) {
	engine, broadcaster := newTestEngine(t)
	bob := testutil.CreateUser(t, "bob", "bob@example.com")

	_, err := engine.ToggleLike(9999, bob.ID)
	assert.ErrorIs(t, err, ErrPledgeNotFound)
	assert.Empty(t, broadcaster.updated)
}

func TestFeedOrderingNewestFirst(t *testing.T) {
	engine, _ := newTestEngine(t)
	alice := testutil.CreateUser(t, "alice", "alice@example.com")

	first, err := engine.Create(alice.ID, "first pledge about cycling")
	require.NoError(t, err)
	second, err := engine.Create(alice.ID, "second pledge about composting")
	require.NoError(t, err)
	third, err := engine.Create(alice.ID, "third pledge about insulation")
	require.NoError(t, err)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i, id := range []uint{first.ID, second.ID, third.ID} {
		require.NoError(t, db.DB.Model(&models.Pledge{}).
			Where("id = ?", id).
			UpdateColumn("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	feed, err := engine.Feed(100)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	assert.Equal(t, third.ID, feed[0].ID)
	assert.Equal(t, second.ID, feed[1].ID)
	assert.Equal(t, first.ID, feed[2].ID)
}

func TestFeedTieBreakByID(t *testing.T) {
	engine, _ := newTestEngine(t)
	alice := testutil.CreateUser(t, "alice", "alice@example.com")

	a, err := engine.Create(alice.ID, "pledge created at the same instant A")
	require.NoError(t, err)
	b, err := engine.Create(alice.ID, "pledge created at the same instant B")
	require.NoError(t, err)

	same := time.Now().Truncate(time.Second)
	require.NoError(t, db.DB.Model(&models.Pledge{}).
		Where("id IN ?", []uint{a.ID, b.ID}).
		UpdateColumn("created_at", same).Error)

	feed, err := engine.Feed(100)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	// Higher id (later insertion) wins the tie
	assert.Equal(t, b.ID, feed[0].ID)
	assert.Equal(t, a.ID, feed[1].ID)
}

func TestFeedLimit(t *testing.T) {
	engine, _ := newTestEngine(t)
	alice := testutil.CreateUser(t, "alice", "alice@example.com")

	for i := 0; i < 5; i++ {
		_, err := engine.Create(alice.ID, strings.Repeat("p", 10+i))
		require.NoError(t, err)
	}

	feed, err := engine.Feed(3)
	require.NoError(t, err)
	assert.Len(t, feed, 3)

	// Zero and out-of-range limits fall back to the default cap
	feed, err = engine.Feed(0)
	require.NoError(t, err)
	assert.Len(t, feed, 5)

	feed, err = engine.Feed(DefaultFeedLimit + 1)
	require.NoError(t, err)
	assert.Len(t, feed, 5)
}
