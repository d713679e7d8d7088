package main

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"verdantgoods.org/shop-web/internal/cart"
	"verdantgoods.org/shop-web/internal/catalog"
	"verdantgoods.org/shop-web/internal/handlers"
	"verdantgoods.org/shop-web/internal/observability"
	"verdantgoods.org/shop-web/internal/views"
)

// CartHandler renders the cart page: line rows plus the order summary, or an
// empty-state message.
func (s *server) CartHandler(w http.ResponseWriter, r *http.Request) {
	key := s.cartKey(r)
	items := s.cart.Items(key)

	vm := handlers.NewPageData("Your cart", r.URL.Path, s.cart.Count(key))
	if len(items) == 0 {
		vm.CartEmpty = true
	} else {
		vm.CartList = views.CartRows(items)
		vm.Summary = views.OrderSummary(s.cart.Summarize(items))
	}
	s.render(w, http.StatusOK, "cart", vm)
}

// CartActionHandler dispatches a typed cart command and sends the visitor
// back to the page they acted from, which re-renders from the store.
func (s *server) CartActionHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := cart.ParseCommandKind(chi.URLParam(r, "action"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	qty := 1
	if raw := strings.TrimSpace(r.FormValue("qty")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			qty = parsed
		}
	}

	cmd := cart.Command{
		Kind:      kind,
		ProductID: strings.TrimSpace(r.FormValue("product_id")),
		Qty:       qty,
	}

	key := s.cartKey(r)
	lookup := func(id string) (catalog.Product, bool) {
		return s.catalog.Product(r.Context(), id)
	}

	if err := s.cart.Dispatch(key, cmd, lookup); err != nil {
		switch {
		case errors.Is(err, cart.ErrUnknownProduct):
			// Adding a product the catalog no longer carries does nothing.
			observability.FromContext(r.Context()).Warn("add for unknown product",
				zap.String("product_id", cmd.ProductID))
		case errors.Is(err, cart.ErrProductIDRequired), errors.Is(err, cart.ErrUnknownCommand):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		default:
			http.Error(w, "cart unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	http.Redirect(w, r, s.redirectTarget(r), http.StatusSeeOther)
}

// redirectTarget picks the post-mutation destination: an explicit same-site
// "next" field, else the referring page, else the cart.
func (s *server) redirectTarget(r *http.Request) string {
	if next := sameSitePath(r.FormValue("next")); next != "" {
		return next
	}
	if referer := r.Referer(); referer != "" {
		if ref, err := url.Parse(referer); err == nil && ref.Path != "" {
			if target := sameSitePath(ref.RequestURI()); target != "" {
				return target
			}
		}
	}
	return "/cart"
}

// sameSitePath accepts only absolute paths on this origin. Backslashes are
// rejected too: browsers normalize them to slashes, which would turn
// "/\host" into a protocol-relative URL.
func sameSitePath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	if strings.ContainsRune(raw, '\\') {
		return ""
	}
	return raw
}
