package health

import (
	"net/http"

	"github.com/officehoursq/officehoursq/internal/ui/features/common"
)

// Handlers provides HTTP handlers for the health feature.
type Handlers struct {
	version string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(version string) *Handlers {
	return &Handlers{version: version}
}

// Liveness reports that the process is serving.
func (h *Handlers) Liveness(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Health is the enveloped health check of the versioned API.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSON(w, http.StatusOK, common.Envelope{
		Success: true,
		Data:    map[string]string{"status": "healthy"},
	})
}

// Index names the service and points at the health check.
func (h *Handlers) Index(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "OfficeHoursQ API",
		"version": h.version,
		"docs":    APIPrefix + "/health",
	})
}
