package handlers

import (
	"html/template"

	"verdantgoods.org/shop-web/internal/nav"
)

// PageData is the generic view model for pages using the shared layout.
type PageData struct {
	Title       string
	Description string
	Path        string
	Nav         []nav.RenderedItem

	// CartCount is the badge value, recomputed on every page view.
	CartCount int

	// Optional per-page payloads.
	Featured  template.HTML
	Grid      template.HTML
	Product   template.HTML
	CartList  template.HTML
	Summary   template.HTML
	Content   any
	Checkout  any
	Success   any
	FormNote  string
	NotFound  bool
	CartEmpty bool
}

// NewPageData seeds the shared layout fields for a page view.
func NewPageData(title, path string, cartCount int) PageData {
	return PageData{
		Title:     title,
		Path:      path,
		Nav:       nav.Build(path),
		CartCount: cartCount,
	}
}
