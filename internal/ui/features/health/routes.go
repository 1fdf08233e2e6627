// Package health provides liveness endpoints and the API index.
package health

import "github.com/go-chi/chi/v5"

// APIPrefix is the versioned API mount point.
const APIPrefix = "/api/v1"

// SetupRoutes configures routes for the health feature.
func SetupRoutes(router chi.Router, version string) error {
	handlers := NewHandlers(version)

	router.Get("/health", handlers.Liveness)
	router.Get("/api", handlers.Index)
	router.Route(APIPrefix, func(r chi.Router) {
		r.Get("/health", handlers.Health)
	})

	return nil
}
