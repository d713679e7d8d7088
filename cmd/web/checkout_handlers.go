package main

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"verdantgoods.org/shop-web/internal/checkout"
	"verdantgoods.org/shop-web/internal/format"
	"verdantgoods.org/shop-web/internal/handlers"
	"verdantgoods.org/shop-web/internal/views"
)

type checkoutViewModel struct {
	Lines template.HTML
	Total string
	Empty bool
	Error string
	Name  string
	Email string
}

func (s *server) checkoutViewModel(r *http.Request) checkoutViewModel {
	key := s.cartKey(r)
	items := s.cart.Items(key)
	if len(items) == 0 {
		return checkoutViewModel{Empty: true}
	}
	summary := s.cart.Summarize(items)
	return checkoutViewModel{
		Lines: views.CheckoutLines(items),
		Total: format.Currency(summary.Total),
	}
}

// CheckoutHandler renders the checkout page with the line recap and billing
// form. The place-order control is disabled while the cart is empty.
func (s *server) CheckoutHandler(w http.ResponseWriter, r *http.Request) {
	vm := handlers.NewPageData("Checkout", r.URL.Path, s.cart.Count(s.cartKey(r)))
	vm.Checkout = s.checkoutViewModel(r)
	s.render(w, http.StatusOK, "checkout", vm)
}

// PlaceOrderHandler runs the mock checkout. Validation failures re-render the
// form with the submitted fields preserved; success redirects to the
// confirmation page carrying only the order identifier.
func (s *server) PlaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	billing := checkout.Billing{
		Name:  r.FormValue("billing-name"),
		Email: r.FormValue("billing-email"),
	}

	order, err := s.checkout.PlaceOrder(s.cartKey(r), billing)
	switch {
	case errors.Is(err, checkout.ErrBillingIncomplete):
		vm := handlers.NewPageData("Checkout", r.URL.Path, s.cart.Count(s.cartKey(r)))
		cvm := s.checkoutViewModel(r)
		cvm.Error = "Please fill in your name and email."
		cvm.Name = strings.TrimSpace(billing.Name)
		cvm.Email = strings.TrimSpace(billing.Email)
		vm.Checkout = cvm
		s.render(w, http.StatusUnprocessableEntity, "checkout", vm)
		return
	case errors.Is(err, checkout.ErrEmptyCart):
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	case err != nil:
		http.Error(w, "checkout unavailable", http.StatusServiceUnavailable)
		return
	}

	http.Redirect(w, r, "/order/success?orderId="+url.QueryEscape(order.ID), http.StatusSeeOther)
}

// OrderSuccessHandler renders the confirmation page. The identifier comes
// from the query string so the page survives a reload; absent or blank values
// fall back to a placeholder.
func (s *server) OrderSuccessHandler(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimSpace(r.URL.Query().Get("orderId"))
	if orderID == "" {
		orderID = "UNKNOWN"
	}

	vm := handlers.NewPageData("Order placed", r.URL.Path, s.cart.Count(s.cartKey(r)))
	vm.Success = struct{ OrderID string }{OrderID: orderID}
	s.render(w, http.StatusOK, "order_success", vm)
}
