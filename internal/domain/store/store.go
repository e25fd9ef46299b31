// internal/domain/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/pricing"
)

// saveTimeout bounds a single snapshot write
const saveTimeout = 5 * time.Second

// Persister loads and saves the serialized session record. Load returns
// ErrRecordNotFound when the key has never been saved.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Listener is notified after an order change has been committed
type Listener interface {
	OnEvent(ctx context.Context, event Event)
}

// ListenerFunc adapts a function to the Listener interface
type ListenerFunc func(ctx context.Context, event Event)

// OnEvent calls f
func (f ListenerFunc) OnEvent(ctx context.Context, event Event) {
	f(ctx, event)
}

// Options configures a Store
type Options struct {
	SessionID string
	Key       string // Persistence key; defaults to SessionID
	Catalog   *catalog.Catalog
	Persister Persister // nil keeps state in memory only
	Listeners []Listener
	IDs       *IDGenerator
	Clock     func() time.Time
	Logger    logrus.FieldLogger
}

// Store holds the account type, cart and order history of one session. All
// methods are safe for concurrent use and each mutation is applied and
// persisted as a single step.
type Store struct {
	mu         sync.Mutex
	sessionID  string
	key        string
	catalog    *catalog.Catalog
	persister  Persister
	listeners  []Listener
	ids        *IDGenerator
	now        func() time.Time
	log        logrus.FieldLogger
	state      state
	persistErr error
	unsaved    atomic.Bool // mirrors persistErr != nil for lock-free reads
}

// New creates a Store with default empty state
func New(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.IDs == nil {
		opts.IDs = NewIDGenerator(opts.Clock)
	}
	if opts.Key == "" {
		opts.Key = opts.SessionID
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	return &Store{
		sessionID: opts.SessionID,
		key:       opts.Key,
		catalog:   opts.Catalog,
		persister: opts.Persister,
		listeners: opts.Listeners,
		ids:       opts.IDs,
		now:       opts.Clock,
		log:       opts.Logger.WithField("session_id", opts.SessionID),
		state:     defaultState(),
	}
}

// Open creates a Store and restores its persisted state
func Open(ctx context.Context, opts Options) *Store {
	s := New(opts)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoreLocked(ctx)
	return s
}

// restoreLocked replaces the state with the persisted record. Absent, corrupt
// or incompatible records leave the default state in place.
func (s *Store) restoreLocked(ctx context.Context) {
	if s.persister == nil {
		return
	}

	data, err := s.persister.Load(ctx, s.key)
	if errors.Is(err, ErrRecordNotFound) {
		return
	}
	if err != nil {
		s.setPersistErrLocked(fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err))
		s.log.WithError(err).Warn("Failed to load stored session, starting with empty state")
		return
	}

	st, dropped, err := decodeState(data, s.catalog)
	if err != nil {
		s.log.WithError(err).Warn("Stored session is unreadable, starting with empty state")
		return
	}
	if dropped > 0 {
		s.log.WithField("dropped_lines", dropped).Warn("Dropped cart lines that no longer match the catalog")
	}

	s.state = st
}

// SessionID returns the session this store belongs to
func (s *Store) SessionID() string {
	return s.sessionID
}

// AccountType returns the current account type
func (s *Store) AccountType() pricing.AccountType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.accountType
}

// Cart returns a copy of the cart lines in display order
func (s *Store) Cart() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.state.cart)
}

// Totals returns the cart totals for the current account type
func (s *Store) Totals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.CartTotals(s.state.cart, s.state.accountType)
}

// CartView returns the cart lines, the account type and the totals read together
func (s *Store) CartView() ([]CartLine, pricing.AccountType, pricing.Totals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLines(s.state.cart), s.state.accountType, pricing.CartTotals(s.state.cart, s.state.accountType)
}

// Quantity returns the number of units of the product in the cart
func (s *Store) Quantity(productID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := findLine(s.state.cart, productID); i >= 0 {
		return s.state.cart[i].Quantity
	}
	return 0
}

// CartCount returns the total number of units in the cart
func (s *Store) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.state.cart {
		count += line.Quantity
	}
	return count
}

// Orders returns copies of all orders, most recent first
func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]Order, len(s.state.orders))
	for i, o := range s.state.orders {
		orders[i] = o.clone()
	}
	return orders
}

// Order returns a copy of the order with the given id
func (s *Store) Order(orderID string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findOrder(orderID)
	if i < 0 {
		return Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	return s.state.orders[i].clone(), nil
}

// PersistenceErr returns the last persistence failure, or nil once a later
// write has succeeded.
func (s *Store) PersistenceErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}

// SetAccountType switches the price list used for the cart and future orders
func (s *Store) SetAccountType(ctx context.Context, accountType pricing.AccountType) error {
	if !accountType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAccountType, accountType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.accountType = accountType
	s.persistLocked(ctx)
	return nil
}

// AddToCart adds quantity units of product, merging with an existing line
func (s *Store) AddToCart(ctx context.Context, product catalog.Product, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := findLine(s.state.cart, product.ID); i >= 0 {
		existing := s.state.cart[i].Quantity
		if existing > math.MaxInt-quantity {
			return fmt.Errorf("%w: %d more units of %s would overflow the line", ErrInvalidQuantity, quantity, product.ID)
		}
		s.state.cart[i].Quantity = existing + quantity
	} else {
		s.state.cart = append(s.state.cart, CartLine{Product: product, Quantity: quantity})
	}

	s.persistLocked(ctx)
	return nil
}

// RemoveFromCart removes the product's line; missing products are ignored
func (s *Store) RemoveFromCart(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeLocked(productID)
	s.persistLocked(ctx)
}

// UpdateQuantity sets the quantity of the product's line. A quantity of zero
// or less removes the line; missing products are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
	} else if i := findLine(s.state.cart, productID); i >= 0 {
		s.state.cart[i].Quantity = quantity
	}

	s.persistLocked(ctx)
}

// ClearCart empties the cart without touching the order history
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.cart = nil
	s.persistLocked(ctx)
}

// PlaceOrder turns the cart into a pending order, records it first in the
// order history and empties the cart.
func (s *Store) PlaceOrder(ctx context.Context, form CheckoutForm) (Order, error) {
	s.mu.Lock()

	if len(s.state.cart) == 0 {
		s.mu.Unlock()
		return Order{}, ErrEmptyCart
	}
	if err := form.Validate(); err != nil {
		s.mu.Unlock()
		return Order{}, err
	}

	now := s.now().UTC()
	totals := pricing.CartTotals(s.state.cart, s.state.accountType)
	orderID, trackingNumber := s.ids.Next()
	order := Order{
		ID:              orderID,
		CustomerID:      CustomerID(),
		CustomerName:    form.Name,
		CustomerEmail:   form.Email,
		AccountType:     s.state.accountType,
		Items:           cloneLines(s.state.cart),
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Total:           totals.Total,
		Status:          OrderStatusPending,
		ShippingAddress: form.ShippingAddress(),
		CreatedAt:       now,
		UpdatedAt:       now,
		TrackingNumber:  trackingNumber,
	}

	s.state.orders = append([]Order{order}, s.state.orders...)
	s.state.cart = nil
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"order_id":     order.ID,
		"account_type": order.AccountType,
		"total":        pricing.Format(order.Total),
	}).Info("Order placed")

	s.emit(ctx, Event{
		Type:      EventOrderPlaced,
		SessionID: s.sessionID,
		OrderID:   order.ID,
		Status:    order.Status,
		Order:     order.clone(),
		At:        now,
	})

	return order.clone(), nil
}

// UpdateOrderStatus moves an order to a new status
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) (Order, error) {
	if !status.Valid() {
		return Order{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()

	i := s.findOrder(orderID)
	if i < 0 {
		s.mu.Unlock()
		return Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}

	current := s.state.orders[i].Status
	if !current.CanTransitionTo(status) {
		s.mu.Unlock()
		return Order{}, fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, current, status)
	}

	now := s.now().UTC()
	s.state.orders[i].Status = status
	s.state.orders[i].UpdatedAt = now
	updated := s.state.orders[i].clone()
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"order_id": orderID,
		"from":     current,
		"to":       status,
	}).Info("Order status updated")

	s.emit(ctx, Event{
		Type:      EventOrderStatusChanged,
		SessionID: s.sessionID,
		OrderID:   orderID,
		Status:    status,
		Order:     updated.clone(),
		At:        now,
	})

	return updated, nil
}

func (s *Store) removeLocked(productID string) {
	if i := findLine(s.state.cart, productID); i >= 0 {
		s.state.cart = append(s.state.cart[:i:i], s.state.cart[i+1:]...)
	}
}

func (s *Store) findOrder(orderID string) int {
	for i := range s.state.orders {
		if s.state.orders[i].ID == orderID {
			return i
		}
	}
	return -1
}

// persistLocked writes the current state. Failures are logged and remembered
// but never undo the in-memory change.
func (s *Store) persistLocked(ctx context.Context) {
	if s.persister == nil {
		return
	}

	data, err := encodeState(s.state)
	if err != nil {
		s.setPersistErrLocked(fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err))
		s.log.WithError(err).Error("Failed to encode session state")
		return
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	if err := s.persister.Save(saveCtx, s.key, data); err != nil {
		s.setPersistErrLocked(fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err))
		s.log.WithError(err).Warn("Failed to persist session state, continuing in memory")
		return
	}
	s.setPersistErrLocked(nil)
}

func (s *Store) setPersistErrLocked(err error) {
	s.persistErr = err
	s.unsaved.Store(err != nil)
}

// hasUnsavedState reports whether the last load or save failed without
// taking the store lock.
func (s *Store) hasUnsavedState() bool {
	return s.unsaved.Load()
}

func (s *Store) emit(ctx context.Context, event Event) {
	for _, l := range s.listeners {
		l.OnEvent(ctx, event)
	}
}
