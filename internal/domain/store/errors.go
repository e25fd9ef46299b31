package store

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity         = errors.New("quantity must be at least 1")
	ErrEmptyCart               = errors.New("cart is empty")
	ErrOrderNotFound           = errors.New("order not found")
	ErrPersistenceUnavailable  = errors.New("persistence unavailable")
	ErrInvalidStatus           = errors.New("invalid order status")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrInvalidAccountType      = errors.New("invalid account type")
	ErrInvalidCheckout         = errors.New("invalid checkout form")
	ErrInvalidSession          = errors.New("session id is required")

	// ErrRecordNotFound is returned by a Persister when nothing is stored
	// under a key.
	ErrRecordNotFound = errors.New("no persisted record")
)

func wrapf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
