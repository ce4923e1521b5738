package format

import (
	"encoding/json"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/quickview/java/scanner"
)

// TreeEncoder draws a source tree with box characters, or dumps it as
// JSON or YAML.
type TreeEncoder struct {
	w      io.Writer
	format Format
	root   *scanner.Node
}

func NewTreeEncoder(w io.Writer, f Format) *TreeEncoder {
	return &TreeEncoder{w: w, format: f}
}

func (e *TreeEncoder) Encode(root *scanner.Node) error {
	e.root = root
	return write(e.w, e)
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	switch e.format {
	case FormatJSON:
		data, err := json.MarshalIndent(e.root, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(e.root)
	}

	var sb strings.Builder
	if e.root == nil {
		return nil, nil
	}
	sb.WriteString(e.root.Path)
	sb.WriteByte('\n')
	drawChildren(&sb, e.root.Children, "")
	return []byte(sb.String()), nil
}

func drawChildren(sb *strings.Builder, children []*scanner.Node, prefix string) {
	for i, c := range children {
		last := i == len(children)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(c.Name)
		if c.Dir {
			sb.WriteByte('/')
		}
		sb.WriteByte('\n')
		drawChildren(sb, c.Children, prefix+indent)
	}
}
