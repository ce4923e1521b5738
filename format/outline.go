package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/quickview/java"
	"github.com/dhamidi/quickview/java/explain"
)

type outlineEntry struct {
	Name      string              `json:"name" yaml:"name"`
	Kind      explain.ElementKind `json:"kind" yaml:"kind"`
	Signature string              `json:"signature" yaml:"signature"`
	Access    string              `json:"access" yaml:"access"`
	Modifiers []string            `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Throws    string              `json:"throws,omitempty" yaml:"throws,omitempty"`
	Owner     string              `json:"owner" yaml:"owner"`
	Inherited bool                `json:"inherited,omitempty" yaml:"inherited,omitempty"`
	Line      int                 `json:"line" yaml:"line"`
	Start     int                 `json:"start" yaml:"start"`
	End       int                 `json:"end" yaml:"end"`
}

// OutlineEncoder writes a declaration list as a table, tab separated
// lines, JSON or YAML.
type OutlineEncoder struct {
	w      io.Writer
	format Format
	decls  []java.Declaration
}

func NewOutlineEncoder(w io.Writer, f Format) *OutlineEncoder {
	return &OutlineEncoder{w: w, format: f}
}

func (e *OutlineEncoder) Encode(decls []java.Declaration) error {
	e.decls = decls
	if e.format == FormatTable {
		return e.renderTable()
	}
	return write(e.w, e)
}

func (e *OutlineEncoder) MarshalText() ([]byte, error) {
	switch e.format {
	case FormatJSON:
		data, err := json.MarshalIndent(e.entries(), "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(e.entries())
	case FormatMarkdown:
		return e.markdown(), nil
	default:
		return e.lines(), nil
	}
}

func (e *OutlineEncoder) entries() []outlineEntry {
	out := make([]outlineEntry, len(e.decls))
	for i, d := range e.decls {
		out[i] = outlineEntry{
			Name:      d.Name,
			Kind:      explain.KindOf(d),
			Signature: d.Signature(),
			Access:    accessName(d.Access),
			Modifiers: d.Modifiers,
			Throws:    d.Throws,
			Owner:     d.Owner,
			Inherited: d.Inherited,
			Line:      d.Line,
			Start:     d.Start,
			End:       d.End,
		}
	}
	return out
}

// lines writes kind, line, access, signature and owner separated by tabs.
func (e *OutlineEncoder) lines() []byte {
	var sb strings.Builder
	for _, d := range e.decls {
		fmt.Fprintf(&sb, "%s\t%d\t%s\t%s\t%s\n",
			explain.KindOf(d),
			d.Line,
			accessName(d.Access),
			d.Signature(),
			ownerLabel(d),
		)
	}
	return []byte(sb.String())
}

func (e *OutlineEncoder) markdown() []byte {
	var sb strings.Builder
	sb.WriteString("| Line | Access | Signature | Owner |\n")
	sb.WriteString("|------|--------|-----------|-------|\n")
	for _, d := range e.decls {
		fmt.Fprintf(&sb, "| %d | %s | `%s` | %s |\n", d.Line, accessName(d.Access), d.Signature(), ownerLabel(d))
	}
	return []byte(sb.String())
}

func (e *OutlineEncoder) renderTable() error {
	table := tablewriter.NewTable(e.w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
			},
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{
				Left:   tw.Off,
				Right:  tw.Off,
				Top:    tw.Off,
				Bottom: tw.Off,
			},
			Settings: tw.Settings{
				Separators: tw.Separators{
					BetweenColumns: tw.Off,
				},
			},
		}),
	)

	table.Header([]string{"Line", "Access", "Modifiers", "Signature", "Owner"})
	for _, d := range e.decls {
		if err := table.Append([]string{
			fmt.Sprint(d.Line),
			accessName(d.Access),
			strings.Join(d.Modifiers, " "),
			d.Signature(),
			ownerLabel(d),
		}); err != nil {
			return err
		}
	}
	return table.Render()
}

func accessName(v java.Visibility) string {
	if v == java.VisibilityPackage {
		return "package"
	}
	return string(v)
}

func ownerLabel(d java.Declaration) string {
	if d.Inherited {
		return d.Owner + " (inherited)"
	}
	return d.Owner
}
