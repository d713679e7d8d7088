package checkout

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdantgoods.org/shop-web/internal/cart"
	"verdantgoods.org/shop-web/internal/catalog"
)

var orderIDPattern = regexp.MustCompile(`^ORD-[0-9A-Z]{26}$`)

func newTestCart(t *testing.T) *cart.Store {
	t.Helper()
	store, err := cart.NewStore(cart.StoreDeps{Storage: cart.NewMemoryStorage(), ShippingFee: 499})
	require.NoError(t, err)
	return store
}

func seedProduct(t *testing.T, store *cart.Store, key string, priceMinor int64, qty int) {
	t.Helper()
	p := catalog.Product{ID: "p1", Name: "Bamboo Case", Price: catalog.Price(priceMinor)}
	require.NoError(t, store.Add(key, p, qty))
}

func TestPlaceOrder(t *testing.T) {
	store := newTestCart(t)
	seedProduct(t, store, "k", 1000, 3)

	now := time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC)
	svc, err := NewService(ServiceDeps{Cart: store, Clock: func() time.Time { return now }})
	require.NoError(t, err)

	order, err := svc.PlaceOrder("k", Billing{Name: "  Ada Lovelace  ", Email: " ada@example.com "})
	require.NoError(t, err)

	assert.Regexp(t, orderIDPattern, order.ID)
	assert.Equal(t, "Ada Lovelace", order.Billing.Name)
	assert.Equal(t, "ada@example.com", order.Billing.Email)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(3000), order.Summary.Subtotal)
	assert.Equal(t, int64(3499), order.Summary.Total)
	assert.Equal(t, now, order.PlacedAt)

	// A successful order empties the cart.
	assert.Empty(t, store.Items("k"))
}

func TestPlaceOrderValidatesBilling(t *testing.T) {
	store := newTestCart(t)
	seedProduct(t, store, "k", 1000, 1)

	svc, err := NewService(ServiceDeps{Cart: store})
	require.NoError(t, err)

	tests := []Billing{
		{Name: "", Email: "ada@example.com"},
		{Name: "Ada", Email: ""},
		{Name: "   ", Email: "   "},
	}
	for _, billing := range tests {
		_, err := svc.PlaceOrder("k", billing)
		assert.ErrorIs(t, err, ErrBillingIncomplete)
	}

	// Failed validation leaves the cart unchanged.
	assert.Equal(t, 1, store.Count("k"))
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	store := newTestCart(t)
	svc, err := NewService(ServiceDeps{Cart: store})
	require.NoError(t, err)

	_, err = svc.PlaceOrder("k", Billing{Name: "Ada", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderIDsAreUnique(t *testing.T) {
	store := newTestCart(t)
	svc, err := NewService(ServiceDeps{Cart: store})
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		seedProduct(t, store, "k", 100, 1)
		order, err := svc.PlaceOrder("k", Billing{Name: "Ada", Email: "ada@example.com"})
		require.NoError(t, err)
		require.False(t, seen[order.ID], "duplicate order id %s", order.ID)
		seen[order.ID] = true
	}
}
