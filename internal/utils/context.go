package utils

import (
	"errors"

	"github.com/ecopledge-dev/ecopledge/internal/middleware"
	"github.com/ecopledge-dev/ecopledge/internal/types"
	"github.com/gin-gonic/gin"
)

var ErrNotAuthenticated = errors.New("user not authenticated")

// CurrentUser returns the identity the auth middleware resolved for this
// request.
func CurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}

	user, ok := value.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, ErrNotAuthenticated
	}

	return user, nil
}

// CurrentUserID is CurrentUser for handlers that only need the id.
func CurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := CurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}
