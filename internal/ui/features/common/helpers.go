// Package common provides shared response helpers for UI features.
package common

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
)

// SessionName is the cookie name used for visitor preferences.
const SessionName = "officehoursq"

// RenderHTML writes a component as a complete HTML response.
func RenderHTML(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		// Headers are gone; all that is left is to record the failure.
		slog.ErrorContext(r.Context(), "render failed", "path", r.URL.Path, "error", err)
	}
}

// WriteJSON writes v as an indented JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// Envelope is the success wrapper used by the versioned API.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}
