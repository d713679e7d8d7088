package cart

import (
	"errors"
	"fmt"

	"verdantgoods.org/shop-web/internal/catalog"
)

// CommandKind enumerates the cart mutations a page can request, decoupling
// intent from markup structure.
type CommandKind int

const (
	CommandUnknown CommandKind = iota
	AddToCart
	IncreaseQty
	DecreaseQty
	RemoveItem
	ClearCart
)

// String returns the wire name of the command kind.
func (k CommandKind) String() string {
	switch k {
	case AddToCart:
		return "add"
	case IncreaseQty:
		return "increase"
	case DecreaseQty:
		return "decrease"
	case RemoveItem:
		return "remove"
	case ClearCart:
		return "clear"
	default:
		return "unknown"
	}
}

// ParseCommandKind maps a wire name onto a CommandKind.
func ParseCommandKind(name string) (CommandKind, bool) {
	switch name {
	case "add":
		return AddToCart, true
	case "increase":
		return IncreaseQty, true
	case "decrease":
		return DecreaseQty, true
	case "remove":
		return RemoveItem, true
	case "clear":
		return ClearCart, true
	default:
		return CommandUnknown, false
	}
}

// Command is a typed cart mutation. ProductID is required for all kinds but
// ClearCart; Qty only applies to AddToCart (values below one are coerced).
type Command struct {
	Kind      CommandKind
	ProductID string
	Qty       int
}

var (
	// ErrUnknownCommand indicates a command kind outside the enumeration.
	ErrUnknownCommand = errors.New("cart: unknown command")
	// ErrUnknownProduct indicates an add for a product the catalog does not
	// carry.
	ErrUnknownProduct = errors.New("cart: unknown product")
	// ErrProductIDRequired indicates a command missing its product id.
	ErrProductIDRequired = errors.New("cart: product id is required")
)

// ProductLookup resolves a product id to its current catalog snapshot.
type ProductLookup func(id string) (catalog.Product, bool)

// Dispatch applies a command against the store. Stepper semantics follow the
// cart page: decrease stops at one, removal is the explicit RemoveItem
// command, and increase/decrease on an id not in the cart are no-ops.
func (s *Store) Dispatch(key string, cmd Command, lookup ProductLookup) error {
	if cmd.Kind != ClearCart && cmd.ProductID == "" {
		return ErrProductIDRequired
	}

	switch cmd.Kind {
	case AddToCart:
		if lookup == nil {
			return ErrUnknownProduct
		}
		product, ok := lookup(cmd.ProductID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownProduct, cmd.ProductID)
		}
		return s.Add(key, product, cmd.Qty)
	case IncreaseQty:
		for _, item := range s.Items(key) {
			if item.ID == cmd.ProductID {
				return s.Update(key, cmd.ProductID, item.Qty+1)
			}
		}
		return nil
	case DecreaseQty:
		for _, item := range s.Items(key) {
			if item.ID == cmd.ProductID {
				next := item.Qty - 1
				if next < 1 {
					next = 1
				}
				return s.Update(key, cmd.ProductID, next)
			}
		}
		return nil
	case RemoveItem:
		return s.Remove(key, cmd.ProductID)
	case ClearCart:
		return s.Clear(key)
	default:
		return ErrUnknownCommand
	}
}
