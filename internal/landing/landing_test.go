package landing

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	anchorPattern      = regexp.MustCompile(`<a\s[^>]*href="([^"]*)"`)
	interactivePattern = regexp.MustCompile(`<(a|button|input|select|textarea|form|details|summary)[\s>]`)
)

func render(t *testing.T, v Variant, opts Options) string {
	t.Helper()
	out, err := Render(context.Background(), v, opts)
	require.NoError(t, err)
	return out
}

func TestRender_ContainsProductName(t *testing.T) {
	for _, v := range Variants() {
		t.Run(string(v), func(t *testing.T) {
			out := render(t, v, Options{})
			assert.Contains(t, out, "<title>OfficeHoursQ</title>")
			assert.Contains(t, out, ">OfficeHoursQ</h1>")
			assert.Contains(t, out, Tagline)
			assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
		})
	}
}

func TestRender_HeroHasSingleLoginLink(t *testing.T) {
	out := render(t, VariantHero, Options{})

	links := anchorPattern.FindAllStringSubmatch(out, -1)
	require.Len(t, links, 1, "hero should contain exactly one link")
	assert.Equal(t, LoginPath, links[0][1])
	assert.Contains(t, out, ">Get Started</a>")
}

func TestRender_CardHasNoInteractiveElements(t *testing.T) {
	out := render(t, VariantCard, Options{})

	assert.Empty(t, interactivePattern.FindAllString(out, -1))
	assert.NotContains(t, out, LoginPath)
}

func TestRender_Idempotent(t *testing.T) {
	for _, v := range Variants() {
		for _, dev := range []bool{false, true} {
			first := render(t, v, Options{Dev: dev})
			second := render(t, v, Options{Dev: dev})
			assert.Equal(t, first, second, "variant %s dev=%t", v, dev)
		}
	}
}

func TestRender_ThemedClasses(t *testing.T) {
	hero := render(t, VariantHero, Options{})
	for _, class := range []string{"bg-background", "rounded-card", "bg-accent/20", "text-accent", "text-text-primary", "text-text-secondary", "rounded-input", "bg-accent", "hover:bg-accent-hover"} {
		assert.Contains(t, hero, class)
	}

	card := render(t, VariantCard, Options{})
	for _, class := range []string{"bg-card", "border-surface", "rounded-card"} {
		assert.Contains(t, card, class)
	}
}

func TestRender_Options(t *testing.T) {
	out := render(t, VariantCard, Options{StylesheetHref: "theme.css", AssetPrefix: "static/"})
	assert.Contains(t, out, `href="theme.css"`)
	assert.Contains(t, out, `href="static/landing.css"`)
	assert.NotContains(t, out, "data-init")

	dev := render(t, VariantCard, Options{Dev: true})
	assert.Contains(t, dev, `href="/theme.css"`)
	assert.Contains(t, dev, "data-init")
	assert.Contains(t, dev, DatastarScript)
}

func TestRender_UnknownVariant(t *testing.T) {
	_, err := Render(context.Background(), Variant("banner"), Options{})
	assert.ErrorIs(t, err, ErrUnknownVariant)
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{in: "hero", want: VariantHero},
		{in: " Card ", want: VariantCard},
		{in: "HERO", want: VariantHero},
		{in: "", wantErr: true},
		{in: "splash", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownVariant))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPage_WriterError(t *testing.T) {
	page, err := Page(VariantHero, Options{})
	require.NoError(t, err)
	assert.Error(t, page.Render(context.Background(), failingWriter{}))
}

func TestPage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Render(ctx, VariantCard, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLayout_WrapsBody(t *testing.T) {
	body := templ.Raw(`<section id="body"></section>`)

	var buf strings.Builder
	require.NoError(t, Layout("Queue", Options{}, body).Render(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, "<title>Queue</title>")
	assert.Contains(t, out, `<body class="font-sans bg-background"><section id="body"></section></body></html>`)
	assert.Contains(t, out, `<link rel="stylesheet" href="/static/landing.css">`)
	assert.True(t, strings.HasSuffix(out, "</html>"))
}
