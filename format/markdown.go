package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/quickview/java/explain"
)

// MarkdownEncoder renders an explanation for editor hovers.
type MarkdownEncoder struct {
	w           io.Writer
	explanation explain.Explanation
}

func NewMarkdownEncoder(w io.Writer) *MarkdownEncoder {
	return &MarkdownEncoder{w: w}
}

func (e *MarkdownEncoder) Encode(x explain.Explanation) error {
	e.explanation = x
	return write(e.w, e)
}

// Markdown renders x as a Markdown string.
func Markdown(x explain.Explanation) string {
	text, _ := (&MarkdownEncoder{explanation: x}).MarshalText()
	return string(text)
}

func (e *MarkdownEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	x := e.explanation

	fmt.Fprintf(&sb, "### %s\n\n", x.Title)
	if x.InheritedFrom != "" {
		fmt.Fprintf(&sb, "_Inherited from `%s`_\n\n", x.InheritedFrom)
	}
	sb.WriteString(x.Summary)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, "- **Kind:** %s\n", x.ElementKind)
	if x.OwnerContext != "" {
		fmt.Fprintf(&sb, "- **Owner:** `%s`\n", x.OwnerContext)
	}
	if x.Line > 0 {
		fmt.Fprintf(&sb, "- **Line:** %d\n", x.Line)
	}
	fmt.Fprintf(&sb, "- **Access:** %s\n", x.AccessLabel)
	if x.Modifiers != "" {
		fmt.Fprintf(&sb, "- **Modifiers:** %s\n", x.Modifiers)
	}
	if x.ReturnType != "" {
		fmt.Fprintf(&sb, "- **Returns:** `%s`\n", x.ReturnType)
	}
	if x.Throws != "" {
		fmt.Fprintf(&sb, "- **Throws:** `%s`\n", x.Throws)
	}

	if len(x.Parameters) > 0 {
		sb.WriteString("\n**Parameters**\n\n")
		for _, p := range x.Parameters {
			fmt.Fprintf(&sb, "- `%s %s`: %s\n", p.Type, p.Name, p.Description)
		}
	}

	fmt.Fprintf(&sb, "\n> %s\n\n%s\n", x.LearningTip, x.ExtraReference)
	return []byte(sb.String()), nil
}
