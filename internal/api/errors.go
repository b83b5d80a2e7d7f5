package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/NgocHaiDUT/backend-sportsnet/internal/auth"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/chat"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/content"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/profile"
	"github.com/NgocHaiDUT/backend-sportsnet/internal/social"
	"github.com/NgocHaiDUT/backend-sportsnet/pkg/logging"
)

// respondError maps service errors onto HTTP statuses. Validation
// rejections are the caller's fault, missing records are 404 and
// anything unrecognized is a logged 500 with a generic body so
// internals stay inside.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, social.ErrSelfFollow),
		errors.Is(err, social.ErrSelfBlock),
		errors.Is(err, chat.ErrSelfMessage),
		errors.Is(err, content.ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, social.ErrNotFound),
		errors.Is(err, content.ErrNotFound),
		errors.Is(err, profile.ErrNotFound),
		errors.Is(err, chat.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, content.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, auth.ErrAccountExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, profile.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		logging.WithComponent("api").Error("request failed",
			zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
