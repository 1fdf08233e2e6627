// Package landing renders the OfficeHoursQ landing view.
//
// The view takes no input. Two presentations exist: the full-screen hero with
// a single call to action linking to the login route, and a centered card with
// no interactive elements. Both are deterministic: rendering the same variant
// with the same options always yields identical bytes.
package landing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/officehoursq/officehoursq/internal/theme"
)

// DatastarScript is the client loaded in dev mode for hot reload.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// Fixed copy shown on the landing view.
const (
	ProductName = "OfficeHoursQ"
	Tagline     = "Real-time office hours queue management for university courses."
	LogoMark    = "Q"
	CTALabel    = "Get Started"

	// LoginPath is the call-to-action target. It is served elsewhere.
	LoginPath = "/login"
)

// Variant selects a presentation of the landing view.
type Variant string

const (
	VariantHero Variant = "hero"
	VariantCard Variant = "card"
)

// ErrUnknownVariant is returned when a variant name is not recognised.
var ErrUnknownVariant = errors.New("unknown landing variant")

// Variants lists the supported variants, hero first.
func Variants() []Variant {
	return []Variant{VariantHero, VariantCard}
}

// ParseVariant parses a variant name, ignoring case and surrounding space.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Variants() {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Options control document-level output around the view.
type Options struct {
	// Dev adds the hot reload client.
	Dev bool

	// StylesheetHref is the generated theme stylesheet. Defaults to "/theme.css".
	StylesheetHref string

	// AssetPrefix is prepended to static asset names. Defaults to "/static/".
	AssetPrefix string

	// Theme resolves themed class names. The zero value uses theme.Default().
	Theme theme.Definition
}

func (o Options) withDefaults() Options {
	if o.StylesheetHref == "" {
		o.StylesheetHref = "/theme.css"
	}
	if o.AssetPrefix == "" {
		o.AssetPrefix = "/static/"
	}
	if o.Theme.Len() == 0 {
		o.Theme = theme.Default()
	}
	return o
}

// Layout wraps body in the HTML document shell.
func Layout(title string, opts Options, body templ.Component) templ.Component {
	return document(title, opts.withDefaults(), body)
}

// Page returns the full HTML document for a variant.
func Page(v Variant, opts Options) (templ.Component, error) {
	opts = opts.withDefaults()

	var body templ.Component
	switch v {
	case VariantHero:
		body = Hero(opts.Theme)
	case VariantCard:
		body = Card(opts.Theme)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
	return Layout(ProductName, opts, body), nil
}

// Render renders a variant to a string.
func Render(ctx context.Context, v Variant, opts Options) (string, error) {
	page, err := Page(v, opts)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := page.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("render %s: %w", v, err)
	}
	return buf.String(), nil
}
