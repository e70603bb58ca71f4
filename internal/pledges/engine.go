// Package pledges owns the pledge wall: creation, the per-user like toggle,
// and the canonical feed ordering.
package pledges

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/ecopledge-dev/ecopledge/db"
	"github.com/ecopledge-dev/ecopledge/internal/models"
	"github.com/ecopledge-dev/ecopledge/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	minPledgeLength = 10
	maxPledgeLength = 500

	// DefaultFeedLimit caps the public feed.
	DefaultFeedLimit = 100
)

// Broadcaster receives hydrated snapshots after each committed mutation.
// Implementations must be fire-and-forget: a failed delivery never propagates
// back into the mutation path.
type Broadcaster interface {
	PledgeCreated(pledge types.PledgeResponse)
	PledgeUpdated(pledge types.PledgeResponse)
}

type Engine struct {
	broadcaster Broadcaster
}

// NewEngine wires the engine to its broadcast channel. The broadcaster is an
// explicit constructor dependency, not looked up ambiently per request.
func NewEngine(broadcaster Broadcaster) *Engine {
	return &Engine{broadcaster: broadcaster}
}

// Create validates and persists a new pledge, then emits pledge-created with
// the hydrated record.
func (e *Engine) Create(ownerID uint, text string) (types.PledgeResponse, error) {
	text = strings.TrimSpace(text)

	// Bounds are in characters, not bytes
	length := utf8.RuneCountInString(text)

	if length < minPledgeLength {
		return types.PledgeResponse{}, &ValidationError{Message: "Pledge must be at least 10 characters"}
	}

	if length > maxPledgeLength {
		return types.PledgeResponse{}, &ValidationError{Message: "Pledge cannot be more than 500 characters"}
	}

	pledge := models.Pledge{
		UserID: ownerID,
		Text:   text,
	}

	if err := db.DB.Create(&pledge).Error; err != nil {
		return types.PledgeResponse{}, err
	}

	hydrated, err := e.hydrate(pledge.ID)

	if err != nil {
		return types.PledgeResponse{}, err
	}

	e.broadcaster.PledgeCreated(hydrated)

	return hydrated, nil
}

// ToggleLike flips userID's membership in the pledge's like-set. The toggle is
// two single-statement set operations (keyed delete, insert-if-absent), so
// concurrent toggles by different users cannot overwrite each other the way a
// read-array-then-resave would.
func (e *Engine) ToggleLike(pledgeID, userID uint) (types.PledgeResponse, error) {
	var pledge models.Pledge

	if err := db.DB.First(&pledge, pledgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.PledgeResponse{}, ErrPledgeNotFound
		}
		return types.PledgeResponse{}, err
	}

	result := db.DB.Unscoped().
		Where("pledge_id = ? AND user_id = ?", pledgeID, userID).
		Delete(&models.PledgeLike{})

	if result.Error != nil {
		return types.PledgeResponse{}, result.Error
	}

	if result.RowsAffected == 0 {
		// Not currently liked: add, tolerating a concurrent like by the same
		// user landing first.
		like := models.PledgeLike{PledgeID: pledgeID, UserID: userID}

		err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error

		if err != nil {
			return types.PledgeResponse{}, err
		}
	}

	hydrated, err := e.hydrate(pledgeID)

	if err != nil {
		return types.PledgeResponse{}, err
	}

	e.broadcaster.PledgeUpdated(hydrated)

	return hydrated, nil
}

// Feed returns hydrated pledges newest-first. Ties on creation time break by
// id descending so pagination stays deterministic.
func (e *Engine) Feed(limit int) ([]types.PledgeResponse, error) {
	if limit <= 0 || limit > DefaultFeedLimit {
		limit = DefaultFeedLimit
	}

	var pledgesList []models.Pledge

	err := db.DB.
		Preload("User").
		Preload("Likes.User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&pledgesList).Error

	if err != nil {
		return nil, err
	}

	feed := make([]types.PledgeResponse, 0, len(pledgesList))

	for _, pledge := range pledgesList {
		feed = append(feed, toResponse(pledge))
	}

	return feed, nil
}

// hydrate reloads a pledge with its owner and likers resolved. Called after
// every mutation so the broadcast and the HTTP response carry the committed
// state, not the in-memory copy.
func (e *Engine) hydrate(pledgeID uint) (types.PledgeResponse, error) {
	var pledge models.Pledge

	err := db.DB.
		Preload("User").
		Preload("Likes.User").
		First(&pledge, pledgeID).Error

	if err != nil {
		return types.PledgeResponse{}, err
	}

	return toResponse(pledge), nil
}

func toResponse(pledge models.Pledge) types.PledgeResponse {
	likes := make([]types.UserSummary, 0, len(pledge.Likes))

	for _, like := range pledge.Likes {
		likes = append(likes, types.UserSummary{
			ID:   like.User.ID,
			Name: like.User.Name,
		})
	}

	return types.PledgeResponse{
		ID:        pledge.ID,
		Text:      pledge.Text,
		CreatedAt: pledge.CreatedAt,
		Owner: types.PledgeOwner{
			Name:   pledge.User.Name,
			Avatar: pledge.User.Avatar,
		},
		Likes: likes,
	}
}
