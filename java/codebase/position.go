package codebase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// OffsetOf converts an LSP position, whose character counts UTF-16 code
// units, to a byte offset in text. Positions past the end of a line clamp to
// the line end; lines past the end of text clamp to len(text).
func OffsetOf(text string, pos protocol.Position) int {
	offset := 0
	for line := protocol.UInteger(0); line < pos.Line; line++ {
		i := indexByteFrom(text, '\n', offset)
		if i < 0 {
			return len(text)
		}
		offset = i + 1
	}
	units := protocol.UInteger(0)
	for offset < len(text) && units < pos.Character {
		r, size := utf8.DecodeRuneInString(text[offset:])
		if r == '\n' {
			break
		}
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
		offset += size
	}
	return offset
}

// PositionOf converts a byte offset to an LSP position.
func PositionOf(text string, offset int) protocol.Position {
	offset = max(0, min(offset, len(text)))
	var pos protocol.Position
	for _, r := range text[:offset] {
		switch {
		case r == '\n':
			pos.Line++
			pos.Character = 0
		case r >= 0x10000:
			pos.Character += 2
		default:
			pos.Character++
		}
	}
	return pos
}

func rangeOf(text string, start, end int) protocol.Range {
	return protocol.Range{Start: PositionOf(text, start), End: PositionOf(text, end)}
}

// LineColumnOffset converts a 1-based line and 1-based byte column to a
// byte offset.
func LineColumnOffset(text string, line, column int) (int, error) {
	if line < 1 || column < 1 {
		return 0, fmt.Errorf("line %d column %d: positions start at 1", line, column)
	}
	offset := 0
	for l := 1; l < line; l++ {
		i := indexByteFrom(text, '\n', offset)
		if i < 0 {
			return 0, fmt.Errorf("line %d is past the end of the file", line)
		}
		offset = i + 1
	}
	lineEnd := indexByteFrom(text, '\n', offset)
	if lineEnd < 0 {
		lineEnd = len(text)
	}
	if offset+column-1 > lineEnd {
		return 0, fmt.Errorf("column %d is past the end of line %d", column, line)
	}
	return offset + column - 1, nil
}

func indexByteFrom(text string, b byte, from int) int {
	i := strings.IndexByte(text[from:], b)
	if i < 0 {
		return -1
	}
	return from + i
}
