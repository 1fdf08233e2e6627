package theme

import (
	"fmt"
	"strconv"
	"strings"
)

// CSS renders the definition as a stylesheet: custom properties on :root
// followed by one rule per utility class. Output order follows token order,
// so the result is stable across calls.
func (d Definition) CSS() string {
	var b strings.Builder

	b.WriteString(":root {\n")
	for _, t := range d.tokens {
		fmt.Fprintf(&b, "  %s: %s;\n", customProperty(t), t.Value)
	}
	b.WriteString("}\n")

	for _, t := range d.tokens {
		switch t.Kind {
		case KindColor:
			d.writeColorRules(&b, t)
		case KindRadius:
			writeRule(&b, "rounded-"+t.Short(), "border-radius", "var("+customProperty(t)+")")
		case KindFont:
			writeRule(&b, "font-"+t.Short(), "font-family", "var("+customProperty(t)+")")
		}
	}
	return b.String()
}

func (d Definition) writeColorRules(b *strings.Builder, t Token) {
	ref := "var(" + customProperty(t) + ")"
	props := []struct {
		u    Utility
		prop string
	}{
		{UtilityBg, "background-color"},
		{UtilityText, "color"},
		{UtilityBorder, "border-color"},
	}

	for _, p := range props {
		class := string(p.u) + "-" + t.Short()
		writeRule(b, class, p.prop, ref)
		fmt.Fprintf(b, ".%s:hover { %s: %s; }\n", EscapeClass("hover:"+class), p.prop, ref)
	}

	c, err := d.Color(t.Name)
	if err != nil {
		// Invalid colors are reported by Validate; skip the translucent rules.
		return
	}
	r, g, bl := c.RGB255()
	for _, a := range alphaSteps {
		rgba := fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, bl, alphaString(a))
		for _, p := range props {
			writeRule(b, fmt.Sprintf("%s-%s/%d", p.u, t.Short(), a), p.prop, rgba)
		}
	}
}

func writeRule(b *strings.Builder, class, prop, value string) {
	fmt.Fprintf(b, ".%s { %s: %s; }\n", EscapeClass(class), prop, value)
}

func customProperty(t Token) string {
	switch t.Kind {
	case KindColor:
		return "--color-" + t.Name
	default:
		return "--" + strings.ReplaceAll(t.Name, ".", "-")
	}
}

func alphaString(percent int) string {
	return strconv.FormatFloat(float64(percent)/100, 'f', -1, 64)
}
