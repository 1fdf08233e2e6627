package theme

import (
	"fmt"
	"strings"
)

// Utility is a class-name prefix bound to a token kind.
type Utility string

const (
	UtilityBg      Utility = "bg"
	UtilityText    Utility = "text"
	UtilityBorder  Utility = "border"
	UtilityRounded Utility = "rounded"
	UtilityFont    Utility = "font"
)

// alphaSteps are the opacity percentages generated for color utilities.
var alphaSteps = []int{10, 20, 30, 50}

func (u Utility) kind() Kind {
	switch u {
	case UtilityRounded:
		return KindRadius
	case UtilityFont:
		return KindFont
	default:
		return KindColor
	}
}

func (u Utility) tokenName(short string) string {
	switch u.kind() {
	case KindRadius:
		return "radius." + short
	case KindFont:
		return "font." + short
	default:
		return short
	}
}

// Class resolves a utility class for a token, e.g. Class(UtilityBg, "accent")
// returns "bg-accent". It panics when the token does not exist or has the
// wrong kind; class names are fixed at compile time.
func (d Definition) Class(u Utility, short string) string {
	name := u.tokenName(short)
	if _, err := d.lookupKind(name, u.kind()); err != nil {
		panic(fmt.Sprintf("theme: class %s-%s: %v", u, short, err))
	}
	return string(u) + "-" + short
}

// AlphaClass resolves a translucent color class such as "bg-accent/20".
// Only the generated alpha steps are valid.
func (d Definition) AlphaClass(u Utility, short string, percent int) string {
	class := d.Class(u, short)
	if u.kind() != KindColor || !validAlpha(percent) {
		panic(fmt.Sprintf("theme: no alpha class %s/%d", class, percent))
	}
	return fmt.Sprintf("%s/%d", class, percent)
}

// HoverClass resolves the hover variant of a color class, e.g. "hover:bg-accent-hover".
func (d Definition) HoverClass(u Utility, short string) string {
	return "hover:" + d.Class(u, short)
}

// EscapeClass escapes a class name for use in a CSS selector.
func EscapeClass(class string) string {
	var b strings.Builder
	for _, r := range class {
		switch r {
		case '/', ':', '.':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func validAlpha(percent int) bool {
	for _, a := range alphaSteps {
		if a == percent {
			return true
		}
	}
	return false
}
