// Package stylesheet serves the generated theme stylesheet and token table.
package stylesheet

import (
	"github.com/go-chi/chi/v5"

	"github.com/officehoursq/officehoursq/internal/theme"
)

// SetupRoutes configures routes for the stylesheet feature.
func SetupRoutes(router chi.Router, def theme.Definition, isDev bool) error {
	handlers, err := NewHandlers(def, isDev)
	if err != nil {
		return err
	}

	router.Get("/theme.css", handlers.Stylesheet)
	router.Get("/theme.json", handlers.Tokens)

	return nil
}
