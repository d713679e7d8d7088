package cart

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"verdantgoods.org/shop-web/internal/catalog"
)

var (
	errStoreStorageRequired = errors.New("cart store: storage is required")

	// ErrStoreUnavailable indicates the backing storage rejected a write.
	ErrStoreUnavailable = errors.New("cart store: unavailable")
)

// Item is a cart line: a product snapshot plus a quantity. Fields are copied
// from the catalog at the moment of add, so later price changes do not affect
// items already in the cart.
type Item struct {
	catalog.Product
	Qty int `json:"qty"`
}

// LineTotal returns price times quantity in minor units.
func (i Item) LineTotal() int64 {
	return i.Price.Minor() * int64(i.Qty)
}

// Summary is the derived order summary: subtotal, flat shipping (only when
// the cart is non-empty), and total, all in minor units.
type Summary struct {
	Count    int
	Subtotal int64
	Shipping int64
	Total    int64
}

// StoreDeps wires the storage backend and ambient dependencies.
type StoreDeps struct {
	Storage Storage
	// ShippingFee is the flat fee in minor units applied to non-empty carts.
	ShippingFee int64
	Logger      *zap.Logger
}

// Store is the sole authority over persisted cart state. Each mutation
// rewrites the whole slot. Read-modify-write sequences are not atomic across
// concurrent callers on the same key; the lost-update race is accepted.
type Store struct {
	storage  Storage
	shipping int64
	logger   *zap.Logger
}

// NewStore constructs a Store enforcing dependency validation.
func NewStore(deps StoreDeps) (*Store, error) {
	if deps.Storage == nil {
		return nil, errStoreStorageRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		storage:  deps.Storage,
		shipping: deps.ShippingFee,
		logger:   logger,
	}, nil
}

// Items reads and deserializes the slot. An absent or corrupt slot degrades
// to an empty cart; this never returns an error to the caller.
func (s *Store) Items(key string) []Item {
	data, err := s.storage.Read(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("cart read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("cart slot corrupt, treating as empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	return items
}

// Add merges qty into an existing line with the same product id, or appends a
// new snapshot line. Quantities below one are coerced to one.
func (s *Store) Add(key string, product catalog.Product, qty int) error {
	if qty < 1 {
		qty = 1
	}
	items := s.Items(key)
	found := false
	for i := range items {
		if items[i].ID == product.ID {
			items[i].Qty += qty
			found = true
			break
		}
	}
	if !found {
		items = append(items, Item{Product: product, Qty: qty})
	}
	return s.save(key, items)
}

// Update sets the named line's quantity. A quantity of zero or below removes
// the line entirely. Updating an unknown id is a no-op.
func (s *Store) Update(key, productID string, qty int) error {
	items := s.Items(key)
	out := items[:0]
	changed := false
	for _, item := range items {
		if item.ID == productID {
			changed = true
			if qty <= 0 {
				continue
			}
			item.Qty = qty
		}
		out = append(out, item)
	}
	if !changed {
		return nil
	}
	return s.save(key, out)
}

// Remove drops the line with the given product id. Removing an absent id is
// a no-op, not an error.
func (s *Store) Remove(key, productID string) error {
	items := s.Items(key)
	out := items[:0]
	changed := false
	for _, item := range items {
		if item.ID == productID {
			changed = true
			continue
		}
		out = append(out, item)
	}
	if !changed {
		return nil
	}
	return s.save(key, out)
}

// Clear deletes all persisted cart data for the key.
func (s *Store) Clear(key string) error {
	if err := s.storage.Delete(key); err != nil {
		s.logger.Error("cart clear failed", zap.String("key", key), zap.Error(err))
		return ErrStoreUnavailable
	}
	return nil
}

// Count returns the badge value: the sum of quantities across all lines.
func (s *Store) Count(key string) int {
	count := 0
	for _, item := range s.Items(key) {
		count += item.Qty
	}
	return count
}

// Summarize computes the order summary for a snapshot of items.
func (s *Store) Summarize(items []Item) Summary {
	sum := Summary{}
	for _, item := range items {
		sum.Count += item.Qty
		sum.Subtotal += item.LineTotal()
	}
	if sum.Count > 0 {
		sum.Shipping = s.shipping
	}
	sum.Total = sum.Subtotal + sum.Shipping
	return sum
}

func (s *Store) save(key string, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("cart encode failed", zap.String("key", key), zap.Error(err))
		return ErrStoreUnavailable
	}
	if err := s.storage.Write(key, data); err != nil {
		s.logger.Error("cart write failed", zap.String("key", key), zap.Error(err))
		return ErrStoreUnavailable
	}
	return nil
}
