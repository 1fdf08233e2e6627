// Package router sets up HTTP routes for the landing server.
package router

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/starfederation/datastar-go/datastar"

	view "github.com/officehoursq/officehoursq/internal/landing"
	"github.com/officehoursq/officehoursq/internal/theme"
	healthFeature "github.com/officehoursq/officehoursq/internal/ui/features/health"
	landingFeature "github.com/officehoursq/officehoursq/internal/ui/features/landing"
	stylesheetFeature "github.com/officehoursq/officehoursq/internal/ui/features/stylesheet"
	"github.com/officehoursq/officehoursq/internal/ui/notifier"
	"github.com/officehoursq/officehoursq/internal/ui/resources"
)

// SetupRoutes configures all routes for the landing server.
func SetupRoutes(
	router chi.Router,
	def theme.Definition,
	defaultVariant view.Variant,
	sessionStore sessions.Store,
	notify *notifier.Notifier,
	version string,
	isDev bool,
) error {
	// Hot reload endpoints for dev mode
	if isDev {
		setupReload(router, notify)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := landingFeature.SetupRoutes(router, def, defaultVariant, sessionStore, isDev); err != nil {
		return err
	}

	if err := stylesheetFeature.SetupRoutes(router, def, isDev); err != nil {
		return err
	}

	if err := healthFeature.SetupRoutes(router, version); err != nil {
		return err
	}

	return nil
}

// setupReload wires the datastar reload channel. Each page load opens /reload;
// the first connection after a restart reloads once so the browser picks up
// the new binary, later connections wait for a ping from /hotreload or the
// asset watcher.
func setupReload(router chi.Router, notify *notifier.Notifier) {
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		if notify.Wait(r.Context()) {
			reload()
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		notify.Broadcast()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
