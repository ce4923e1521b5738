package java

import (
	"regexp"
	"strings"
)

// PrintStreamOwner is the owner reported for System.out and System.err.
const PrintStreamOwner = "PrintStream"

const typeChars = `([\w$\[\].<>?,\s]+?)`

var declaredTypeShape = regexp.MustCompile(`^[\w$]+(?:\s*\.\s*[\w$]+)*\s*(?:<.*>)?\s*(?:\[\s*\]\s*)*(?:\.\.\.)?$`)

// ResolveOwner maps the qualifier of a call to a type name.
//
// An empty token, this and super resolve to the unit's primary type;
// System.out, System.err, out and err resolve to PrintStreamOwner and
// System to "System". Any other token is reduced to its simple name and
// looked up with TypeOfIdentifier before ref. When no declaration is found
// the simple name itself is returned.
//
// The lookup takes the closest preceding declaration of the name without
// regard to block structure, so a shadowed variable in a nested block can
// resolve to the wrong type.
func ResolveOwner(token string, unit SourceUnit, ref int) string {
	raw := strings.TrimSpace(token)
	if raw == "" {
		return unit.PrimaryType
	}
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "system.out") || strings.Contains(lower, "system.err") {
		return PrintStreamOwner
	}

	simple := SimplifyOwnerName(raw)
	switch strings.ToLower(simple) {
	case "this", "super":
		return unit.PrimaryType
	case "system":
		return "System"
	case "out", "err":
		return PrintStreamOwner
	}

	if declared := TypeOfIdentifier(unit.Text, simple, ref); declared != "" {
		return declared
	}
	return simple
}

// OwnerBefore resolves the qualifier written before the identifier that
// starts at pos, as in "owner.name". It returns "" when the identifier is
// not qualified.
func OwnerBefore(unit SourceUnit, pos int) string {
	if pos <= 0 || pos > len(unit.Text) {
		return ""
	}
	token, start := ownerTokenBefore(unit.Text, pos)
	if token == "" {
		return ""
	}
	return ResolveOwner(token, unit, start)
}

// TypeOfIdentifier searches text before pos for a declaration of ident and
// returns the simple name of its declared type. Local variable, enhanced
// for and field declaration patterns are all tried and the match closest to
// pos wins. A variable declared with var has no type and yields "".
func TypeOfIdentifier(text, ident string, pos int) string {
	if ident == "" {
		return ""
	}
	if pos < 0 || pos > len(text) {
		pos = len(text)
	}
	prefix := text[:pos]
	name := regexp.QuoteMeta(ident)

	patterns := []*regexp.Regexp{
		regexp.MustCompile(typeChars + `\s+` + name + `\s*(?:=|;|,|\))`),
		regexp.MustCompile(`for\s*\(\s*` + typeChars + `\s+` + name + `\s*:`),
		regexp.MustCompile(`(?:private|protected|public|static|final|transient|volatile|\s)+` + typeChars + `\s+` + name + `\s*(?:=|;|,)`),
	}

	closest, typ := -1, ""
	for _, p := range patterns {
		for _, m := range p.FindAllStringSubmatchIndex(prefix, -1) {
			if m[1] <= closest {
				continue
			}
			if declared, ok := declaredType(prefix[m[2]:m[3]]); ok {
				closest, typ = m[1], declared
			}
		}
	}
	return typ
}

// declaredType turns the text captured before an identifier into the
// declared type's simple name. The capture can start well before the type
// (modifiers, comment words), so the longest word-aligned suffix with the
// shape of a type is used. Captures without one, such as "return" or "a,",
// are rejected.
func declaredType(raw string) (string, bool) {
	s := normalizeSpace(raw)
	for i := 0; i < len(s); i++ {
		if i > 0 && s[i-1] != ' ' {
			continue
		}
		candidate := s[i:]
		if candidate == "var" {
			return "", true
		}
		if notTypes[candidate] || notNames[candidate] {
			continue
		}
		if declaredTypeShape.MatchString(candidate) {
			return SimplifyOwnerName(candidate), true
		}
	}
	return "", false
}
