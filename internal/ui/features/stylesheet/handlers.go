package stylesheet

import (
	"fmt"
	"net/http"

	"github.com/officehoursq/officehoursq/internal/theme"
)

// Handlers serves a theme rendered once at startup.
type Handlers struct {
	css    []byte
	tokens []byte
	isDev  bool
}

// NewHandlers validates the definition and pre-renders its outputs.
func NewHandlers(def theme.Definition, isDev bool) (*Handlers, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	tokens, err := def.Export(theme.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to export theme: %w", err)
	}

	return &Handlers{
		css:    []byte(def.CSS()),
		tokens: tokens,
		isDev:  isDev,
	}, nil
}

// Stylesheet serves the theme as CSS.
func (h *Handlers) Stylesheet(w http.ResponseWriter, _ *http.Request) {
	h.write(w, "text/css; charset=utf-8", h.css)
}

// Tokens serves the grouped token table as JSON.
func (h *Handlers) Tokens(w http.ResponseWriter, _ *http.Request) {
	h.write(w, "application/json", h.tokens)
}

func (h *Handlers) write(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if h.isDev {
		w.Header().Set("Cache-Control", "no-cache")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
