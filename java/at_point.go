package java

import (
	"fmt"
	"strings"
)

// controlKeywords precede parentheses that do not belong to a call.
var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "new": true, "throw": true, "assert": true, "synchronized": true,
}

const (
	maxArgumentLen   = 40
	truncatedArgLen  = 37
	argumentEllipsis = "..."
)

// Locate finds the call expression around offset and describes it as an
// InvocationSite. It returns nil when no call can be found or its argument
// list is not closed.
//
// If the identifier at offset is directly followed by "(", that identifier
// is the call. Otherwise the nearest enclosing open parenthesis that is not
// preceded by a control keyword is used.
func Locate(unit SourceUnit, offset int) *InvocationSite {
	text := unit.Text
	if text == "" {
		return nil
	}
	offset = clamp(offset, 0, len(text)-1)

	open := callParenForward(text, offset)
	if open < 0 {
		open = callParenBackward(text, offset)
	}
	if open < 0 {
		return nil
	}
	closing := FindMatch(text, open)
	if closing < 0 {
		return nil
	}

	nameEnd := skipSpaceBack(text, open-1)
	if nameEnd < 0 {
		return nil
	}
	nameStart := nameEnd
	for nameStart >= 0 && IsIdentifierByte(text[nameStart]) {
		nameStart--
	}
	nameStart++
	if nameStart > nameEnd {
		return nil
	}
	name := text[nameStart : nameEnd+1]

	token, _ := ownerTokenBefore(text, nameStart)
	owner := ResolveOwner(token, unit, nameStart)
	if owner == "" {
		owner = SimplifyOwnerName(token)
	}

	return &InvocationSite{
		Declaration: Declaration{
			Name:       name,
			Parameters: argumentParameters(text[open+1 : closing]),
			Start:      nameStart,
			End:        closing,
			Line:       LineAt(text, nameStart),
			Owner:      owner,
		},
		OwnerToken: token,
		OpenParen:  open,
		CloseParen: closing,
	}
}

// callParenForward returns the offset of "(" when the identifier at offset
// is immediately followed by one, ignoring whitespace. Control keywords
// are not calls.
func callParenForward(text string, offset int) int {
	word, _, end, ok := WordAt(text, offset)
	if !ok || end >= len(text) || controlKeywords[strings.ToLower(word)] {
		return -1
	}
	i := end
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if i < len(text) && text[i] == '(' {
		return i
	}
	return -1
}

// callParenBackward scans left from offset for the innermost unclosed "("
// preceded by an identifier other than a control keyword. The scan stops
// at statement and block boundaries.
func callParenBackward(text string, offset int) int {
	depth := 0
	var quote byte
	for i := min(offset, len(text)-1); i >= 0; i-- {
		c := text[i]
		if quote != 0 {
			if c == quote && (i == 0 || text[i-1] != '\\') {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case ')':
			depth++
		case '(':
			if depth > 0 {
				depth--
				continue
			}
			nameEnd := skipSpaceBack(text, i-1)
			if nameEnd < 0 {
				return -1
			}
			nameStart := nameEnd
			for nameStart >= 0 && IsIdentifierByte(text[nameStart]) {
				nameStart--
			}
			candidate := text[nameStart+1 : nameEnd+1]
			if candidate == "" || controlKeywords[strings.ToLower(candidate)] {
				continue
			}
			return i
		case ';', '{', '}':
			return -1
		}
	}
	return -1
}

// ownerTokenBefore returns the dotted qualifier written before the
// identifier starting at nameStart and the qualifier's offset. The token is
// "" when the name is unqualified.
func ownerTokenBefore(text string, nameStart int) (string, int) {
	dot := skipSpaceBack(text, nameStart-1)
	if dot < 0 || text[dot] != '.' {
		return "", -1
	}
	end := skipSpaceBack(text, dot-1)
	if end < 0 {
		return "", -1
	}
	start := end
	for start >= 0 && (IsIdentifierByte(text[start]) || text[start] == '.') {
		start--
	}
	return text[start+1 : end+1], start + 1
}

func skipSpaceBack(text string, i int) int {
	for i >= 0 && isSpace(text[i]) {
		i--
	}
	return i
}

// argumentParameters describes each top-level argument of a call as a
// positional parameter.
func argumentParameters(args string) []Parameter {
	var params []Parameter
	for i, expr := range SplitArguments(args) {
		params = append(params, Parameter{
			Type: ArgumentType,
			Name: fmt.Sprintf("arg%d = %s", i+1, truncateArgument(expr)),
		})
	}
	return params
}

func truncateArgument(expr string) string {
	runes := []rune(expr)
	if len(runes) <= maxArgumentLen {
		return expr
	}
	return string(runes[:truncatedArgLen]) + argumentEllipsis
}
