// Package theme holds the OfficeHoursQ design tokens.
//
// A Definition is an ordered, immutable table mapping symbolic token names to
// literal values. Colors use bare names ("accent"), fonts and radii are grouped
// ("font.sans", "radius.card"). The rendering layer resolves class names
// through a Definition so every themed class is backed by a token:
//
//	d := theme.Default()
//	d.Class(theme.UtilityBg, "accent")      // "bg-accent"
//	d.Class(theme.UtilityRounded, "card")   // "rounded-card"
//	d.AlphaClass(theme.UtilityBg, "accent", 20) // "bg-accent/20"
package theme

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Kind classifies a token value.
type Kind string

const (
	KindColor  Kind = "color"
	KindFont   Kind = "font"
	KindRadius Kind = "radius"
)

// Token is a single symbolic name bound to a literal value.
type Token struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Kind  Kind   `json:"kind" yaml:"kind" toml:"kind"`
	Value string `json:"value" yaml:"value" toml:"value"`
}

var (
	// ErrUnknownToken is returned when a token name is not part of the definition.
	ErrUnknownToken = errors.New("unknown theme token")

	// ErrInvalidToken is returned by Validate for malformed tokens.
	ErrInvalidToken = errors.New("invalid theme token")
)

var (
	namePattern      = regexp.MustCompile(`^[a-z][a-z0-9-]*(\.[a-z][a-z0-9-]*)?$`)
	hexColorPattern  = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	dimensionPattern = regexp.MustCompile(`^(0|[0-9]+(\.[0-9]+)?(px|rem|em|%))$`)
)

// Short returns the name without its group prefix ("radius.card" -> "card").
func (t Token) Short() string {
	if i := strings.IndexByte(t.Name, '.'); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// Validate checks the token name and that its value is well formed for its kind.
func (t Token) Validate() error {
	if !namePattern.MatchString(t.Name) {
		return fmt.Errorf("%w: malformed name %q", ErrInvalidToken, t.Name)
	}

	group := ""
	if i := strings.IndexByte(t.Name, '.'); i >= 0 {
		group = t.Name[:i]
	}

	switch t.Kind {
	case KindColor:
		if group != "" {
			return fmt.Errorf("%w: color %q must not be grouped", ErrInvalidToken, t.Name)
		}
		if !hexColorPattern.MatchString(t.Value) {
			return fmt.Errorf("%w: %s: %q is not a #RRGGBB color", ErrInvalidToken, t.Name, t.Value)
		}
		if _, err := colorful.Hex(t.Value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidToken, t.Name, err)
		}
	case KindRadius:
		if group != "radius" {
			return fmt.Errorf("%w: radius %q must be named radius.<name>", ErrInvalidToken, t.Name)
		}
		if !dimensionPattern.MatchString(t.Value) {
			return fmt.Errorf("%w: %s: %q is not a dimension", ErrInvalidToken, t.Name, t.Value)
		}
	case KindFont:
		if group != "font" {
			return fmt.Errorf("%w: font %q must be named font.<name>", ErrInvalidToken, t.Name)
		}
		for _, family := range splitFontStack(t.Value) {
			if family == "" {
				return fmt.Errorf("%w: %s: empty family in %q", ErrInvalidToken, t.Name, t.Value)
			}
		}
	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidToken, t.Name, t.Kind)
	}
	return nil
}

// Definition is an immutable, ordered token table.
type Definition struct {
	tokens []Token
	index  map[string]int
}

// New builds a Definition from tokens. The slice is copied. When a name is
// repeated the first occurrence wins lookups; Validate reports the duplicate.
func New(tokens ...Token) Definition {
	d := Definition{
		tokens: make([]Token, len(tokens)),
		index:  make(map[string]int, len(tokens)),
	}
	copy(d.tokens, tokens)
	for i, t := range d.tokens {
		if _, ok := d.index[t.Name]; !ok {
			d.index[t.Name] = i
		}
	}
	return d
}

// Len returns the number of tokens.
func (d Definition) Len() int {
	return len(d.tokens)
}

// Tokens returns a copy of the tokens in declaration order.
func (d Definition) Tokens() []Token {
	out := make([]Token, len(d.tokens))
	copy(out, d.tokens)
	return out
}

// OfKind returns the tokens of one kind in declaration order.
func (d Definition) OfKind(kind Kind) []Token {
	var out []Token
	for _, t := range d.tokens {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Lookup returns the token bound to name.
func (d Definition) Lookup(name string) (Token, error) {
	i, ok := d.index[name]
	if !ok {
		return Token{}, fmt.Errorf("%w: %s", ErrUnknownToken, name)
	}
	return d.tokens[i], nil
}

// Value returns the literal value bound to name.
func (d Definition) Value(name string) (string, error) {
	t, err := d.Lookup(name)
	if err != nil {
		return "", err
	}
	return t.Value, nil
}

// Color returns the parsed color for a color token.
func (d Definition) Color(name string) (colorful.Color, error) {
	t, err := d.lookupKind(name, KindColor)
	if err != nil {
		return colorful.Color{}, err
	}
	c, err := colorful.Hex(t.Value)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %s: %v", ErrInvalidToken, name, err)
	}
	return c, nil
}

// FontStack returns the font families of a font token, in fallback order.
func (d Definition) FontStack(name string) ([]string, error) {
	t, err := d.lookupKind(name, KindFont)
	if err != nil {
		return nil, err
	}
	return splitFontStack(t.Value), nil
}

// Validate reports duplicate names and malformed values. All problems are
// returned together.
func (d Definition) Validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(d.tokens))
	for _, t := range d.tokens {
		if _, dup := seen[t.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate key %q", ErrInvalidToken, t.Name))
			continue
		}
		seen[t.Name] = struct{}{}
		if err := t.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d Definition) lookupKind(name string, kind Kind) (Token, error) {
	t, err := d.Lookup(name)
	if err != nil {
		return Token{}, err
	}
	if t.Kind != kind {
		return Token{}, fmt.Errorf("%w: %s is a %s token, not %s", ErrInvalidToken, name, t.Kind, kind)
	}
	return t, nil
}

func splitFontStack(value string) []string {
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
