package theme

import "github.com/lucasb-eyer/go-colorful"

// WCAG 2.x contrast thresholds.
const (
	ContrastAA       = 4.5
	ContrastAAA      = 7.0
	ContrastLargeAA  = 3.0
	luminanceEpsilon = 0.05
)

// ContrastRatio returns the WCAG contrast ratio between two colors, in [1, 21].
func ContrastRatio(a, b colorful.Color) float64 {
	la, lb := relativeLuminance(a), relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + luminanceEpsilon) / (lb + luminanceEpsilon)
}

// Contrast looks up two color tokens and returns their contrast ratio.
func (d Definition) Contrast(fg, bg string) (float64, error) {
	f, err := d.Color(fg)
	if err != nil {
		return 0, err
	}
	b, err := d.Color(bg)
	if err != nil {
		return 0, err
	}
	return ContrastRatio(f, b), nil
}

func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
