// Package landing serves the landing view.
package landing

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	view "github.com/officehoursq/officehoursq/internal/landing"
	"github.com/officehoursq/officehoursq/internal/theme"
)

// SetupRoutes configures routes for the landing feature.
func SetupRoutes(
	router chi.Router,
	def theme.Definition,
	defaultVariant view.Variant,
	sessionStore sessions.Store,
	isDev bool,
) error {
	if _, err := view.ParseVariant(string(defaultVariant)); err != nil {
		return err
	}

	handlers := NewHandlers(def, defaultVariant, sessionStore, isDev)

	router.Get("/", handlers.LandingPage)
	router.Get("/landing/{variant}", handlers.VariantPage)

	return nil
}
