package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a serialization for Export.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned by Export for unsupported formats.
var ErrUnknownFormat = errors.New("unknown export format")

// Document is the grouped shape of a definition, keyed by short token name.
// Its field names follow the utility-CSS configuration layout so the export
// can be dropped into a front-end build as-is.
type Document struct {
	Colors       map[string]string   `json:"colors" yaml:"colors" toml:"colors"`
	FontFamily   map[string][]string `json:"fontFamily" yaml:"fontFamily" toml:"fontFamily"`
	BorderRadius map[string]string   `json:"borderRadius" yaml:"borderRadius" toml:"borderRadius"`
}

// Document groups the tokens by kind.
func (d Definition) Document() Document {
	doc := Document{
		Colors:       make(map[string]string),
		FontFamily:   make(map[string][]string),
		BorderRadius: make(map[string]string),
	}
	for _, t := range d.tokens {
		switch t.Kind {
		case KindColor:
			doc.Colors[t.Short()] = t.Value
		case KindFont:
			doc.FontFamily[t.Short()] = splitFontStack(t.Value)
		case KindRadius:
			doc.BorderRadius[t.Short()] = t.Value
		}
	}
	return doc
}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Export serializes the grouped document.
func (d Definition) Export(format Format) ([]byte, error) {
	doc := d.Document()
	switch format {
	case FormatJSON:
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		return toml.Marshal(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
