package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"verdantgoods.org/shop-web/internal/cms"
	"verdantgoods.org/shop-web/internal/handlers"
	"verdantgoods.org/shop-web/internal/observability"
)

// ContentPageHandler serves the static pages sourced from local markdown.
func (s *server) ContentPageHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := cms.LoadPage(s.content, "", slug)
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			vm := handlers.NewPageData("Page not found", r.URL.Path, s.cart.Count(s.cartKey(r)))
			vm.NotFound = true
			s.render(w, http.StatusNotFound, "page", vm)
			return
		}
		observability.FromContext(r.Context()).Error("load page", zap.String("slug", slug), zap.Error(err))
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	vm := handlers.NewPageData(page.Title, r.URL.Path, s.cart.Count(s.cartKey(r)))
	vm.Description = page.Summary
	vm.Content = page
	s.render(w, http.StatusOK, "page", vm)
}

// NewsletterHandler acknowledges a newsletter signup. Nothing is stored; the
// submission is logged and the visitor gets a confirmation page.
func (s *server) NewsletterHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		vm := handlers.NewPageData("Newsletter", r.URL.Path, s.cart.Count(s.cartKey(r)))
		vm.FormNote = "Please enter your email address."
		s.render(w, http.StatusUnprocessableEntity, "page", vm)
		return
	}

	observability.FromContext(r.Context()).Info("newsletter signup", zap.String("email", email))

	vm := handlers.NewPageData("Thanks for subscribing", r.URL.Path, s.cart.Count(s.cartKey(r)))
	vm.FormNote = "Thanks for subscribing! We send one email a month, no more."
	s.render(w, http.StatusOK, "page", vm)
}

// ContactHandler acknowledges a contact form submission. The message is
// logged rather than delivered anywhere.
func (s *server) ContactHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	message := strings.TrimSpace(r.FormValue("message"))
	if name == "" || email == "" || message == "" {
		vm := handlers.NewPageData("Contact", r.URL.Path, s.cart.Count(s.cartKey(r)))
		vm.FormNote = "Please fill in your name, email, and message."
		s.render(w, http.StatusUnprocessableEntity, "page", vm)
		return
	}

	observability.FromContext(r.Context()).Info("contact message",
		zap.String("name", name),
		zap.String("email", email),
		zap.Int("message_len", len(message)),
	)

	vm := handlers.NewPageData("Message received", r.URL.Path, s.cart.Count(s.cartKey(r)))
	vm.FormNote = "Thanks for reaching out. We aim to reply within two working days."
	s.render(w, http.StatusOK, "page", vm)
}
