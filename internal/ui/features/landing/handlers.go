package landing

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	view "github.com/officehoursq/officehoursq/internal/landing"
	"github.com/officehoursq/officehoursq/internal/theme"
	"github.com/officehoursq/officehoursq/internal/ui/features/common"
)

// variantKey stores the last variant a visitor opened explicitly.
const variantKey = "variant"

// Handlers provides HTTP handlers for the landing feature.
type Handlers struct {
	theme          theme.Definition
	defaultVariant view.Variant
	sessionStore   sessions.Store
	isDev          bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(def theme.Definition, defaultVariant view.Variant, sessionStore sessions.Store, isDev bool) *Handlers {
	return &Handlers{
		theme:          def,
		defaultVariant: defaultVariant,
		sessionStore:   sessionStore,
		isDev:          isDev,
	}
}

// LandingPage renders the visitor's preferred variant, falling back to the
// configured default.
func (h *Handlers) LandingPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.preferredVariant(r))
}

// VariantPage renders the variant named in the path and remembers it for the
// visitor. Unknown variants are 404.
func (h *Handlers) VariantPage(w http.ResponseWriter, r *http.Request) {
	v, err := view.ParseVariant(chi.URLParam(r, "variant"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if h.sessionStore != nil {
		if session, err := h.sessionStore.Get(r, common.SessionName); err == nil {
			session.Values[variantKey] = string(v)
			if err := session.Save(r, w); err != nil {
				slog.WarnContext(r.Context(), "failed to save session", "error", err)
			}
		}
	}

	h.render(w, r, v)
}

func (h *Handlers) preferredVariant(r *http.Request) view.Variant {
	if h.sessionStore == nil {
		return h.defaultVariant
	}
	// A cookie that fails to decode yields a fresh session, not an error worth surfacing.
	session, _ := h.sessionStore.Get(r, common.SessionName)
	if session == nil {
		return h.defaultVariant
	}
	name, _ := session.Values[variantKey].(string)
	if v, err := view.ParseVariant(name); err == nil {
		return v
	}
	return h.defaultVariant
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, v view.Variant) {
	page, err := view.Page(v, view.Options{Dev: h.isDev, Theme: h.theme})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, view.ErrUnknownVariant) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	common.RenderHTML(w, r, http.StatusOK, page)
}
