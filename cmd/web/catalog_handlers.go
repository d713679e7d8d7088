package main

import (
	"net/http"
	"strings"

	"verdantgoods.org/shop-web/internal/cms"
	"verdantgoods.org/shop-web/internal/handlers"
	mw "verdantgoods.org/shop-web/internal/middleware"
	"verdantgoods.org/shop-web/internal/views"
)

const featuredCount = 8

func (s *server) cartKey(r *http.Request) string {
	if id := mw.SessionID(r.Context()); id != "" {
		return id
	}
	return "anonymous"
}

// HomeHandler renders the landing page with the featured catalog region.
func (s *server) HomeHandler(w http.ResponseWriter, r *http.Request) {
	vm := handlers.NewPageData("Home", r.URL.Path, s.cart.Count(s.cartKey(r)))
	vm.Description = "Sustainable phone accessories, delivered with less waste."
	vm.Featured = views.ProductCards(s.catalog.Featured(r.Context(), featuredCount))
	s.render(w, http.StatusOK, "home", vm)
}

// ShopHandler renders the full product grid.
func (s *server) ShopHandler(w http.ResponseWriter, r *http.Request) {
	vm := handlers.NewPageData("Shop", r.URL.Path, s.cart.Count(s.cartKey(r)))
	vm.Grid = views.ProductCards(s.catalog.Products(r.Context()))
	s.render(w, http.StatusOK, "shop", vm)
}

// ProductHandler renders the detail page for the id named in the query, or a
// not-found state when the catalog does not carry it.
func (s *server) ProductHandler(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))

	product, ok := s.catalog.Product(r.Context(), id)
	if !ok {
		vm := handlers.NewPageData("Product not found", r.URL.Path, s.cart.Count(s.cartKey(r)))
		vm.NotFound = true
		s.render(w, http.StatusOK, "product", vm)
		return
	}

	vm := handlers.NewPageData(product.Name, r.URL.Path, s.cart.Count(s.cartKey(r)))
	vm.Description = product.Short
	vm.Product = views.ProductDetail(product, cms.Markdown(product.Description))
	s.render(w, http.StatusOK, "product", vm)
}
