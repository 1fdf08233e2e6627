package landing

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	view "github.com/officehoursq/officehoursq/internal/landing"
	"github.com/officehoursq/officehoursq/internal/theme"
	"github.com/officehoursq/officehoursq/internal/ui/features"
	"github.com/officehoursq/officehoursq/internal/ui/resources"
)

// =============================================================================
// Test Setup Helpers
// =============================================================================

func setupTestRouter(t *testing.T, defaultVariant view.Variant) chi.Router {
	t.Helper()

	fixture := features.SetupTestFixture(t)
	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, theme.Default(), defaultVariant, fixture.SessionStore, false))
	return r
}

func get(t *testing.T, h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// =============================================================================
// LandingPage Tests
// =============================================================================

func TestLandingPage(t *testing.T) {
	tests := []struct {
		name           string
		defaultVariant view.Variant
		wantBody       []string
		dontWant       []string
	}{
		{
			name:           "hero default",
			defaultVariant: view.VariantHero,
			wantBody:       []string{"<!doctype html>", "<title>OfficeHoursQ</title>", `href="/login"`, "Get Started"},
		},
		{
			name:           "card default",
			defaultVariant: view.VariantCard,
			wantBody:       []string{"<!doctype html>", "OfficeHoursQ", "bg-card"},
			dontWant:       []string{`href="/login"`, "<a "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, setupTestRouter(t, tt.defaultVariant), "/")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			body := rec.Body.String()
			for _, want := range tt.wantBody {
				assert.Contains(t, body, want)
			}
			for _, dont := range tt.dontWant {
				assert.NotContains(t, body, dont)
			}
		})
	}
}

func TestSetupRoutes_RejectsUnknownDefault(t *testing.T) {
	fixture := features.SetupTestFixture(t)
	err := SetupRoutes(chi.NewRouter(), theme.Default(), view.Variant("banner"), fixture.SessionStore, false)
	assert.ErrorIs(t, err, view.ErrUnknownVariant)
}

// =============================================================================
// VariantPage Tests
// =============================================================================

func TestVariantPage(t *testing.T) {
	r := setupTestRouter(t, view.VariantHero)

	card := get(t, r, "/landing/card")
	assert.Equal(t, http.StatusOK, card.Code)
	assert.NotContains(t, card.Body.String(), `href="/login"`)

	hero := get(t, r, "/landing/HERO")
	assert.Equal(t, http.StatusOK, hero.Code)
	assert.Contains(t, hero.Body.String(), `href="/login"`)

	missing := get(t, r, "/landing/banner")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestVariantPage_RemembersPreference(t *testing.T) {
	r := setupTestRouter(t, view.VariantHero)

	rec := get(t, r, "/landing/card")
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies, "variant page should set a session cookie")

	home := get(t, r, "/", cookies...)
	assert.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.Body.String(), "bg-card")
	assert.NotContains(t, home.Body.String(), `href="/login"`)

	fresh := get(t, r, "/")
	assert.Contains(t, fresh.Body.String(), `href="/login"`, "visitors without a cookie get the default")
}

func TestLandingPage_IgnoresBrokenCookie(t *testing.T) {
	r := setupTestRouter(t, view.VariantHero)

	rec := get(t, r, "/", &http.Cookie{Name: "officehoursq", Value: "not-a-valid-cookie"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `href="/login"`)
}

func TestVariantPage_DirectHandler(t *testing.T) {
	h := NewHandlers(theme.Default(), view.VariantHero, nil, false)

	req := features.RequestWithPathParam(httptest.NewRequest(http.MethodGet, "/landing/card", nil), "variant", "card")
	rec := httptest.NewRecorder()
	h.VariantPage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bg-card")
}

// =============================================================================
// Stylesheet coverage
// =============================================================================

var classAttr = regexp.MustCompile(`class="([^"]*)"`)

func hasRule(css, class string) bool {
	selector := regexp.MustCompile(regexp.QuoteMeta("."+theme.EscapeClass(class)) + `[ :]`)
	return selector.MatchString(css)
}

// Every class used by the landing view must be defined either by the
// generated theme stylesheet or by the static layout stylesheet.
func TestLandingClassesAreStyled(t *testing.T) {
	layoutCSS, err := resources.ReadFile("landing.css")
	require.NoError(t, err)
	stylesheets := theme.Default().CSS() + string(layoutCSS)

	r := setupTestRouter(t, view.VariantHero)
	for _, v := range view.Variants() {
		body := get(t, r, "/landing/"+string(v)).Body.String()
		for _, m := range classAttr.FindAllStringSubmatch(body, -1) {
			for _, class := range strings.Fields(m[1]) {
				assert.True(t, hasRule(stylesheets, class), "variant %s: class %q has no rule", v, class)
			}
		}
	}
}

func TestLandingPage_UsesConfiguredTheme(t *testing.T) {
	// Only surfaces and text: the card variant resolves, the hero needs accent.
	partial := theme.New(
		theme.Token{Name: "background", Kind: theme.KindColor, Value: "#FFFFFF"},
		theme.Token{Name: "surface", Kind: theme.KindColor, Value: "#F3F4F6"},
		theme.Token{Name: "card", Kind: theme.KindColor, Value: "#FFFFFF"},
		theme.Token{Name: "text-primary", Kind: theme.KindColor, Value: "#111827"},
		theme.Token{Name: "text-secondary", Kind: theme.KindColor, Value: "#4B5563"},
		theme.Token{Name: "font.sans", Kind: theme.KindFont, Value: "system-ui, sans-serif"},
		theme.Token{Name: "radius.card", Kind: theme.KindRadius, Value: "8px"},
	)

	card := NewHandlers(partial, view.VariantCard, nil, false)
	rec := httptest.NewRecorder()
	card.LandingPage(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bg-card")

	hero := NewHandlers(partial, view.VariantHero, nil, false)
	assert.Panics(t, func() {
		hero.LandingPage(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}, "hero markup must resolve classes against the configured theme")
}
