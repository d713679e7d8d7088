package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verdantgoods.org/shop-web/internal/catalog"
)

func testLookup(products ...catalog.Product) ProductLookup {
	return func(id string) (catalog.Product, bool) {
		for _, p := range products {
			if p.ID == id {
				return p, true
			}
		}
		return catalog.Product{}, false
	}
}

func TestParseCommandKind(t *testing.T) {
	for _, kind := range []CommandKind{AddToCart, IncreaseQty, DecreaseQty, RemoveItem, ClearCart} {
		parsed, ok := ParseCommandKind(kind.String())
		require.True(t, ok, kind.String())
		assert.Equal(t, kind, parsed)
	}

	_, ok := ParseCommandKind("explode")
	assert.False(t, ok)
}

func TestDispatchAdd(t *testing.T) {
	store := newTestStore(t)
	lookup := testLookup(product("a", 1000))

	require.NoError(t, store.Dispatch("k", Command{Kind: AddToCart, ProductID: "a", Qty: 2}, lookup))
	items := store.Items("k")
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Qty)

	err := store.Dispatch("k", Command{Kind: AddToCart, ProductID: "ghost", Qty: 1}, lookup)
	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Equal(t, 2, store.Count("k"))
}

func TestDispatchStepper(t *testing.T) {
	store := newTestStore(t)
	lookup := testLookup(product("a", 1000))
	require.NoError(t, store.Dispatch("k", Command{Kind: AddToCart, ProductID: "a", Qty: 1}, lookup))

	require.NoError(t, store.Dispatch("k", Command{Kind: IncreaseQty, ProductID: "a"}, nil))
	assert.Equal(t, 2, store.Count("k"))

	require.NoError(t, store.Dispatch("k", Command{Kind: DecreaseQty, ProductID: "a"}, nil))
	assert.Equal(t, 1, store.Count("k"))

	// Decrease stops at one; removal is the explicit command.
	require.NoError(t, store.Dispatch("k", Command{Kind: DecreaseQty, ProductID: "a"}, nil))
	assert.Equal(t, 1, store.Count("k"))

	// Stepping an id not in the cart is a no-op.
	require.NoError(t, store.Dispatch("k", Command{Kind: IncreaseQty, ProductID: "ghost"}, nil))
	require.NoError(t, store.Dispatch("k", Command{Kind: DecreaseQty, ProductID: "ghost"}, nil))
	assert.Equal(t, 1, store.Count("k"))

	require.NoError(t, store.Dispatch("k", Command{Kind: RemoveItem, ProductID: "a"}, nil))
	assert.Equal(t, 0, store.Count("k"))
}

func TestDispatchClear(t *testing.T) {
	store := newTestStore(t)
	lookup := testLookup(product("a", 1000), product("b", 500))
	require.NoError(t, store.Dispatch("k", Command{Kind: AddToCart, ProductID: "a", Qty: 1}, lookup))
	require.NoError(t, store.Dispatch("k", Command{Kind: AddToCart, ProductID: "b", Qty: 3}, lookup))

	require.NoError(t, store.Dispatch("k", Command{Kind: ClearCart}, nil))
	assert.Empty(t, store.Items("k"))
}

func TestDispatchValidation(t *testing.T) {
	store := newTestStore(t)

	err := store.Dispatch("k", Command{Kind: RemoveItem}, nil)
	assert.ErrorIs(t, err, ErrProductIDRequired)

	err = store.Dispatch("k", Command{Kind: CommandUnknown, ProductID: "a"}, nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)
}
