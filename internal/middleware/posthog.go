package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/ledger_posting_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls with PostHog
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip if PostHog is not initialized or the path is in the skip list
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		// Handlers run first so the final status is known
		c.Next()

		// Failed requests are not events
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Set by the auth middleware; anonymous calls are not tracked
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// Empty for unmatched routes (404s)
		eventName := routeEventName(c.FullPath())
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}

		// Route parameters, e.g. the ledger or posting id
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		// Send event to PostHog
		posthogClient.Enqueue(userID, eventName, props)
	}
}

// routeEventName turns a route template into an event name,
// e.g. "/api/v1/posting/:postingID" -> "api_v1_posting_postingID".
func routeEventName(fullPath string) string {
	name := strings.Trim(fullPath, "/")
	name = strings.ReplaceAll(name, ":", "")
	name = strings.ReplaceAll(name, "*", "")
	return strings.ReplaceAll(name, "/", "_")
}

// PosthogEvent sends a domain event, such as a posting, on behalf of the authenticated caller.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}

	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}

	// Callers may pass nil properties
	if properties == nil {
		properties = make(map[string]any)
	}

	// Add caller role and request context
	if roleID, ok := GetRoleIDFromContext(c); ok {
		properties["role_id"] = roleID
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path

	posthogClient.Enqueue(userID, eventName, properties)
}
