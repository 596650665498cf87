package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey = contextKey("userID")
	roleIDKey = contextKey("roleID")
)

// WithUser returns a copy of ctx carrying the authenticated user and role.
func WithUser(ctx context.Context, userID string, roleID int) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleIDKey, roleID)
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetRoleIDFromContext retrieves the authenticated user's role from the request context.
func GetRoleIDFromContext(c *gin.Context) (int, bool) {
	roleID, ok := c.Request.Context().Value(roleIDKey).(int)
	return roleID, ok
}
