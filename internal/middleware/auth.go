package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-api/internal/config"
	"github.com/yukikurage/todo-api/internal/constants"
	apierrors "github.com/yukikurage/todo-api/internal/errors"
	"github.com/yukikurage/todo-api/internal/session"
)

// RequireAuth checks if the user is authenticated via session
func RequireAuth(binder session.Binder) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := binder.Lookup(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireUserHeader takes the acting user from the X-User-Id header. The id
// is asserted by the caller and is not checked against the session.
func RequireUserHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(constants.HeaderUserID))
		if userID == "" {
			apierrors.Unauthorized(c, "Missing "+constants.HeaderUserID+" header")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireTodoIdentity picks the identity middleware for the to-do routes.
func RequireTodoIdentity(source string, binder session.Binder) gin.HandlerFunc {
	if source == config.IdentitySourceSession {
		return RequireAuth(binder)
	}
	return RequireUserHeader()
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	if userID == "" {
		return "", false
	}
	return userID, true
}
