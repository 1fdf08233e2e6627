package theme

// defaultTokens is the OfficeHoursQ palette, type stacks and radii.
var defaultTokens = []Token{
	// Surfaces
	{Name: "background", Kind: KindColor, Value: "#0A0E17"},
	{Name: "surface", Kind: KindColor, Value: "#111827"},
	{Name: "card", Kind: KindColor, Value: "#161F31"},

	// Brand
	{Name: "accent", Kind: KindColor, Value: "#6366F1"},
	{Name: "accent-hover", Kind: KindColor, Value: "#4F46E5"},

	// Status
	{Name: "green", Kind: KindColor, Value: "#10B981"},
	{Name: "amber", Kind: KindColor, Value: "#F59E0B"},
	{Name: "red", Kind: KindColor, Value: "#EF4444"},
	{Name: "cyan", Kind: KindColor, Value: "#06B6D4"},
	{Name: "purple", Kind: KindColor, Value: "#A855F7"},

	// Text
	{Name: "text-primary", Kind: KindColor, Value: "#F9FAFB"},
	{Name: "text-secondary", Kind: KindColor, Value: "#9CA3AF"},

	{Name: "font.sans", Kind: KindFont, Value: "var(--font-dm-sans), system-ui, sans-serif"},
	{Name: "font.mono", Kind: KindFont, Value: "var(--font-jetbrains-mono), ui-monospace, monospace"},

	{Name: "radius.card", Kind: KindRadius, Value: "14px"},
	{Name: "radius.input", Kind: KindRadius, Value: "10px"},
	{Name: "radius.button", Kind: KindRadius, Value: "10px"},
	{Name: "radius.badge", Kind: KindRadius, Value: "20px"},
}

var defaultDefinition = New(defaultTokens...)

// Default returns the OfficeHoursQ theme.
func Default() Definition {
	return defaultDefinition
}
