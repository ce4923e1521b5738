package java

import "strings"

// FindMatch returns the offset of the delimiter closing the one at open, or
// -1 when the text ends before the depth returns to zero.
//
// String and character literals (with backslash escapes), line comments and
// block comments are skipped, so delimiters inside them are not counted.
// The closing delimiter is derived from text[open]: '{', '(' and '[' are
// supported.
func FindMatch(text string, open int) int {
	if open < 0 || open >= len(text) {
		return -1
	}
	openCh := text[open]
	closeCh := closerFor(openCh)
	if closeCh == 0 {
		return -1
	}

	depth := 0
	for i := open; i < len(text); i++ {
		if end, ok := skipNonCode(text, i); ok {
			i = end
			continue
		}
		switch text[i] {
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func closerFor(open byte) byte {
	switch open {
	case '{':
		return '}'
	case '(':
		return ')'
	case '[':
		return ']'
	}
	return 0
}

// skipNonCode reports whether a literal or comment starts at i and, if so,
// returns the offset of its last byte. Unterminated constructs run to the
// end of the text.
func skipNonCode(text string, i int) (int, bool) {
	switch c := text[i]; c {
	case '"', '\'':
		return skipQuoted(text, i), true
	case '/':
		if i+1 >= len(text) {
			return 0, false
		}
		switch text[i+1] {
		case '/':
			if nl := strings.IndexByte(text[i+2:], '\n'); nl >= 0 {
				return i + 2 + nl, true
			}
			return len(text) - 1, true
		case '*':
			if end := strings.Index(text[i+2:], "*/"); end >= 0 {
				return i + 2 + end + 1, true
			}
			return len(text) - 1, true
		}
	}
	return 0, false
}

func skipQuoted(text string, start int) int {
	quote := text[start]
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return len(text) - 1
}

// SplitArguments splits an argument list on commas that are not nested in
// (), [] or {} and not inside a literal. Parts are trimmed; empty parts are
// dropped.
func SplitArguments(text string) []string {
	var args []string
	depth := 0
	last := 0
	for i := 0; i < len(text); i++ {
		if end, ok := skipNonCode(text, i); ok {
			i = end
			continue
		}
		switch text[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				args = appendTrimmed(args, text[last:i])
				last = i + 1
			}
		}
	}
	return appendTrimmed(args, text[last:])
}

func appendTrimmed(parts []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return parts
	}
	return append(parts, s)
}

// IsIdentifierByte reports whether b can be part of a Java identifier.
// Bytes of multi-byte UTF-8 sequences are accepted so that non-ASCII
// identifiers stay whole.
func IsIdentifierByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') || b >= 0x80
}

// WordAt returns the identifier under offset together with its start and
// end offsets. When offset is not on an identifier, the nearest identifier
// to its left is used, then the nearest one to its right. ok is false when
// the text contains no identifier at all.
func WordAt(text string, offset int) (word string, start, end int, ok bool) {
	if text == "" {
		return "", 0, 0, false
	}
	pos := clamp(offset, 0, len(text)-1)
	if !IsIdentifierByte(text[pos]) {
		left := pos - 1
		for left >= 0 && !IsIdentifierByte(text[left]) {
			left--
		}
		if left >= 0 {
			pos = left
		} else {
			right := pos + 1
			for right < len(text) && !IsIdentifierByte(text[right]) {
				right++
			}
			if right >= len(text) {
				return "", 0, 0, false
			}
			pos = right
		}
	}

	start = pos
	for start > 0 && IsIdentifierByte(text[start-1]) {
		start--
	}
	end = pos + 1
	for end < len(text) && IsIdentifierByte(text[end]) {
		end++
	}
	return text[start:end], start, end, true
}

// LineAt returns the 1-based line number of offset.
func LineAt(text string, offset int) int {
	offset = clamp(offset, 0, len(text))
	return strings.Count(text[:offset], "\n") + 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
