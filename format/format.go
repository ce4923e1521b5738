// Package format renders explanations, outlines and source trees for
// terminals, editors and machines.
package format

import (
	"encoding"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/quickview/java/explain"
)

type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	// FormatTable lays outlines out as aligned columns; explanations use
	// FormatText instead.
	FormatTable Format = "table"
)

// ParseFormat converts a name to a Format. Unknown names are an error.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "table":
		return FormatTable, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Encoder writes one explanation.
type Encoder interface {
	encoding.TextMarshaler
	Encode(e explain.Explanation) error
}

// NewEncoder returns the explanation encoder for f. Colored only affects
// FormatText.
func NewEncoder(f Format, w io.Writer, colored bool) Encoder {
	switch f {
	case FormatMarkdown:
		return NewMarkdownEncoder(w)
	case FormatJSON:
		return NewJSONEncoder(w)
	case FormatYAML:
		return NewYAMLEncoder(w)
	default:
		return NewTextEncoder(w, colored)
	}
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
