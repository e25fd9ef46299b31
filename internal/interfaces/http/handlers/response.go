// internal/interfaces/http/handlers/response.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/store"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// persistenceWarning is sent while session changes cannot be saved
const persistenceWarning = `199 - "changes are kept in memory only"`

// sessionStore returns the caller's Store or answers 500
func sessionStore(c *gin.Context) (*store.Store, bool) {
	s, ok := middleware.GetStoreFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Session not available",
		})
		return nil, false
	}
	return s, true
}

// respond writes the standard success envelope
func respond(c *gin.Context, s *store.Store, status int, message string, data any) {
	if s != nil && s.PersistenceErr() != nil {
		c.Header("Warning", persistenceWarning)
	}
	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
	})
}

// respondError maps domain errors to status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrInvalidQuantity),
		errors.Is(err, store.ErrEmptyCart),
		errors.Is(err, store.ErrInvalidCheckout),
		errors.Is(err, store.ErrInvalidStatus),
		errors.Is(err, store.ErrInvalidAccountType):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrInvalidStatusTransition):
		status = http.StatusConflict
	case errors.Is(err, store.ErrOrderNotFound),
		errors.Is(err, catalog.ErrProductNotFound):
		status = http.StatusNotFound
	}

	_ = c.Error(err)
	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}
