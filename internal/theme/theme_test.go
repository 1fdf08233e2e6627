package theme

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefault_Validates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefault_NoDuplicateKeys(t *testing.T) {
	seen := map[string]bool{}
	for _, tok := range Default().Tokens() {
		assert.False(t, seen[tok.Name], "duplicate key %q", tok.Name)
		seen[tok.Name] = true
	}
}

func TestDefault_Snapshot(t *testing.T) {
	d := Default()

	tests := []struct {
		name string
		want string
	}{
		{"background", "#0A0E17"},
		{"surface", "#111827"},
		{"card", "#161F31"},
		{"accent", "#6366F1"},
		{"green", "#10B981"},
		{"amber", "#F59E0B"},
		{"red", "#EF4444"},
		{"cyan", "#06B6D4"},
		{"purple", "#A855F7"},
		{"radius.card", "14px"},
		{"radius.input", "10px"},
		{"radius.button", "10px"},
		{"radius.badge", "20px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Value(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	stack, err := d.FontStack("font.sans")
	require.NoError(t, err)
	assert.Equal(t, []string{"var(--font-dm-sans)", "system-ui", "sans-serif"}, stack)
}

func TestDefinition_Immutable(t *testing.T) {
	d := Default()
	tokens := d.Tokens()
	tokens[0].Value = "#000000"

	got, err := Default().Value(tokens[0].Name)
	require.NoError(t, err)
	assert.NotEqual(t, "#000000", got)
}

func TestDefinition_LookupUnknown(t *testing.T) {
	_, err := Default().Lookup("mystery")
	assert.ErrorIs(t, err, ErrUnknownToken)

	_, err = Default().Color("radius.card")
	assert.ErrorIs(t, err, ErrInvalidToken, "radius token is not a color")
}

func TestDefinition_Validate(t *testing.T) {
	tests := []struct {
		name      string
		tokens    []Token
		errSubstr string
	}{
		{
			name: "duplicate key",
			tokens: []Token{
				{Name: "accent", Kind: KindColor, Value: "#6366F1"},
				{Name: "accent", Kind: KindColor, Value: "#FFFFFF"},
			},
			errSubstr: "duplicate key",
		},
		{
			name:      "short hex",
			tokens:    []Token{{Name: "accent", Kind: KindColor, Value: "#FFF"}},
			errSubstr: "not a #RRGGBB color",
		},
		{
			name:      "color name",
			tokens:    []Token{{Name: "accent", Kind: KindColor, Value: "indigo"}},
			errSubstr: "not a #RRGGBB color",
		},
		{
			name:      "unitless radius",
			tokens:    []Token{{Name: "radius.card", Kind: KindRadius, Value: "14"}},
			errSubstr: "not a dimension",
		},
		{
			name:      "ungrouped radius",
			tokens:    []Token{{Name: "card", Kind: KindRadius, Value: "14px"}},
			errSubstr: "radius.<name>",
		},
		{
			name:      "empty font family",
			tokens:    []Token{{Name: "font.sans", Kind: KindFont, Value: "Inter,,sans-serif"}},
			errSubstr: "empty family",
		},
		{
			name:      "uppercase name",
			tokens:    []Token{{Name: "Accent", Kind: KindColor, Value: "#6366F1"}},
			errSubstr: "malformed name",
		},
		{
			name:      "unknown kind",
			tokens:    []Token{{Name: "shadow", Kind: Kind("shadow"), Value: "none"}},
			errSubstr: "unknown kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.tokens...).Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestDefinition_ValidateJoinsErrors(t *testing.T) {
	err := New(
		Token{Name: "accent", Kind: KindColor, Value: "nope"},
		Token{Name: "radius.card", Kind: KindRadius, Value: "wide"},
	).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accent")
	assert.Contains(t, err.Error(), "radius.card")
}

func TestDefinition_Class(t *testing.T) {
	d := Default()

	assert.Equal(t, "bg-accent", d.Class(UtilityBg, "accent"))
	assert.Equal(t, "text-text-primary", d.Class(UtilityText, "text-primary"))
	assert.Equal(t, "rounded-card", d.Class(UtilityRounded, "card"))
	assert.Equal(t, "font-mono", d.Class(UtilityFont, "mono"))
	assert.Equal(t, "bg-accent/20", d.AlphaClass(UtilityBg, "accent", 20))
	assert.Equal(t, "hover:bg-accent-hover", d.HoverClass(UtilityBg, "accent-hover"))

	assert.Panics(t, func() { d.Class(UtilityBg, "mystery") })
	assert.Panics(t, func() { d.Class(UtilityRounded, "accent") }, "accent is not a radius")
	assert.Panics(t, func() { d.AlphaClass(UtilityBg, "accent", 42) })
}

func TestEscapeClass(t *testing.T) {
	assert.Equal(t, `bg-accent\/20`, EscapeClass("bg-accent/20"))
	assert.Equal(t, `hover\:bg-accent`, EscapeClass("hover:bg-accent"))
}

func TestDefinition_CSS(t *testing.T) {
	css := Default().CSS()

	wants := []string{
		":root {",
		"--color-background: #0A0E17;",
		"--radius-card: 14px;",
		"--font-sans: var(--font-dm-sans), system-ui, sans-serif;",
		".bg-accent { background-color: var(--color-accent); }",
		".text-text-secondary { color: var(--color-text-secondary); }",
		`.hover\:bg-accent-hover:hover { background-color: var(--color-accent-hover); }`,
		`.bg-accent\/20 { background-color: rgba(99, 102, 241, 0.2); }`,
		".rounded-input { border-radius: var(--radius-input); }",
		".font-sans { font-family: var(--font-sans); }",
	}
	for _, want := range wants {
		assert.Contains(t, css, want)
	}

	assert.Equal(t, css, Default().CSS(), "CSS output should be stable")
}

func TestContrast_TextTokens(t *testing.T) {
	d := Default()

	primary, err := d.Contrast("text-primary", "background")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, primary, ContrastAAA)

	secondary, err := d.Contrast("text-secondary", "background")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, secondary, ContrastAA)

	onCard, err := d.Contrast("text-secondary", "card")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, onCard, ContrastAA)
}

func TestContrastRatio_Bounds(t *testing.T) {
	d := New(
		Token{Name: "black", Kind: KindColor, Value: "#000000"},
		Token{Name: "white", Kind: KindColor, Value: "#FFFFFF"},
	)

	ratio, err := d.Contrast("white", "black")
	require.NoError(t, err)
	assert.InDelta(t, 21.0, ratio, 0.01)

	same, err := d.Contrast("black", "black")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, same, 0.0001)
}

func TestExport(t *testing.T) {
	d := Default()

	t.Run("json", func(t *testing.T) {
		out, err := d.Export(FormatJSON)
		require.NoError(t, err)

		var doc Document
		require.NoError(t, json.Unmarshal(out, &doc))
		assert.Equal(t, "#6366F1", doc.Colors["accent"])
		assert.Equal(t, "14px", doc.BorderRadius["card"])
		assert.Equal(t, []string{"var(--font-jetbrains-mono)", "ui-monospace", "monospace"}, doc.FontFamily["mono"])
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := d.Export(FormatYAML)
		require.NoError(t, err)

		var doc Document
		require.NoError(t, yaml.Unmarshal(out, &doc))
		assert.Len(t, doc.Colors, len(d.OfKind(KindColor)))
	})

	t.Run("toml", func(t *testing.T) {
		out, err := d.Export(FormatTOML)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(out), "[colors]"), "toml should have a colors table")
		assert.Contains(t, string(out), "#0A0E17")
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := d.Export(Format("xml"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestAlphaString(t *testing.T) {
	tests := map[int]string{
		5:   "0.05",
		10:  "0.1",
		20:  "0.2",
		75:  "0.75",
		100: "1",
	}
	for percent, want := range tests {
		assert.Equal(t, want, alphaString(percent), "percent %d", percent)
	}
}
