// internal/interfaces/http/middleware/session.go
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront/internal/domain/store"
)

const (
	// SessionCookie names the cookie carrying the session id
	SessionCookie = "session_id"
	// SessionIDKey is the context key holding the session id
	SessionIDKey = "session_id"
	storeKey     = "store"

	sessionMaxAge = 30 * 24 * 60 * 60 // 30 days
)

// StoreProvider returns the Store for a session
type StoreProvider interface {
	Get(ctx context.Context, sessionID string) (*store.Store, error)
	// Transient returns a throwaway default Store for requests without a session
	Transient() *store.Store
}

// Session resolves the caller's Store from the session cookie. Safe requests
// without a cookie are served from a transient store; the first other request
// issues a session id.
func Session(provider StoreProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookie)
		if err != nil || sessionID == "" {
			if isSafeMethod(c.Request.Method) {
				c.Set(storeKey, provider.Transient())
				c.Next()
				return
			}
			sessionID = uuid.NewString()
		}
		// Refresh the cookie so active sessions do not expire
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sessionID, sessionMaxAge, "/", "", false, true)

		s, err := provider.Get(c.Request.Context(), sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to load session",
			})
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Set(storeKey, s)

		c.Next()
	}
}

func isSafeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// GetStoreFromContext extracts the session Store from gin context
func GetStoreFromContext(c *gin.Context) (*store.Store, bool) {
	s, exists := c.Get(storeKey)
	if !exists {
		return nil, false
	}
	st, ok := s.(*store.Store)
	return st, ok
}
