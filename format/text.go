package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dhamidi/quickview/java/explain"
)

// TextEncoder renders an explanation for a terminal.
type TextEncoder struct {
	w           io.Writer
	colored     bool
	explanation explain.Explanation
}

func NewTextEncoder(w io.Writer, colored bool) *TextEncoder {
	return &TextEncoder{w: w, colored: colored}
}

func (e *TextEncoder) Encode(x explain.Explanation) error {
	e.explanation = x
	return write(e.w, e)
}

func (e *TextEncoder) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if e.colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	x := e.explanation
	title := e.paint(color.Bold)
	label := e.paint(color.FgCyan)
	dim := e.paint(color.Faint)

	sb.WriteString(title.Sprint(x.Title))
	sb.WriteByte('\n')
	if x.InheritedFrom != "" {
		sb.WriteString(dim.Sprintf("inherited from %s", x.InheritedFrom))
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	sb.WriteString(x.Summary)
	sb.WriteString("\n\n")

	field := func(name, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&sb, "%s %s\n", label.Sprintf("%-10s", name+":"), value)
	}
	field("Kind", string(x.ElementKind))
	field("Owner", x.OwnerContext)
	if x.Line > 0 {
		field("Line", fmt.Sprint(x.Line))
	}
	field("Access", x.AccessLabel)
	field("Modifiers", x.Modifiers)
	field("Returns", x.ReturnType)
	field("Throws", x.Throws)

	if len(x.Parameters) > 0 {
		sb.WriteByte('\n')
		sb.WriteString(label.Sprint("Parameters:"))
		sb.WriteByte('\n')
		for _, p := range x.Parameters {
			fmt.Fprintf(&sb, "  %s %s: %s\n", p.Type, p.Name, p.Description)
		}
	}

	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "%s %s\n", e.paint(color.FgYellow).Sprint("Tip:"), x.LearningTip)
	sb.WriteString(dim.Sprint(x.ExtraReference))
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}
