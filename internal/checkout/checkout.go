package checkout

import (
	"errors"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"verdantgoods.org/shop-web/internal/cart"
)

const orderIDPrefix = "ORD-"

var (
	errCartStoreRequired = errors.New("checkout service: cart store is required")

	// ErrBillingIncomplete indicates missing billing name or email.
	ErrBillingIncomplete = errors.New("checkout: billing name and email are required")
	// ErrEmptyCart indicates an attempt to place an order with no items.
	ErrEmptyCart = errors.New("checkout: cart is empty")
)

// Billing carries the two fields the mock checkout validates. Values are
// trimmed; no further validation is applied.
type Billing struct {
	Name  string
	Email string
}

// Order is the mock order produced on a successful checkout. There is no
// server round-trip; the identifier is the only durable artifact.
type Order struct {
	ID       string
	Billing  Billing
	Items    []cart.Item
	Summary  cart.Summary
	PlacedAt time.Time
}

// ServiceDeps wires the cart store and ambient dependencies.
type ServiceDeps struct {
	Cart        *cart.Store
	Logger      *zap.Logger
	Clock       func() time.Time
	IDGenerator func() string
}

// Service places mock orders: it validates billing fields, snapshots the
// cart, issues an order identifier, and clears the cart.
type Service struct {
	cart   *cart.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService constructs a Service enforcing dependency validation.
func NewService(deps ServiceDeps) (*Service, error) {
	if deps.Cart == nil {
		return nil, errCartStoreRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return orderIDPrefix + ulid.Make().String() }
	}
	return &Service{
		cart:   deps.Cart,
		logger: logger,
		now:    func() time.Time { return clock().UTC() },
		newID:  idGen,
	}, nil
}

// PlaceOrder validates billing, snapshots the cart under the key, and clears
// it. On validation failure the cart is left untouched.
func (s *Service) PlaceOrder(key string, billing Billing) (Order, error) {
	billing.Name = strings.TrimSpace(billing.Name)
	billing.Email = strings.TrimSpace(billing.Email)
	if billing.Name == "" || billing.Email == "" {
		return Order{}, ErrBillingIncomplete
	}

	items := s.cart.Items(key)
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	order := Order{
		ID:       s.newID(),
		Billing:  billing,
		Items:    items,
		Summary:  s.cart.Summarize(items),
		PlacedAt: s.now(),
	}

	if err := s.cart.Clear(key); err != nil {
		return Order{}, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.Int64("total", order.Summary.Total),
	)
	return order, nil
}
