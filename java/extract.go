package java

import (
	"regexp"
	"sort"
	"strings"
)

// Extractor finds the method and constructor declarations of a source unit.
// Implementations return declarations sorted by Start, each satisfying
// Start < End <= len(unit.Text).
type Extractor interface {
	Extract(unit SourceUnit) []Declaration
}

// Extract runs the default extractor on unit.
func Extract(unit SourceUnit) []Declaration {
	return RegexExtractor{}.Extract(unit)
}

const (
	annotationPrefix = `(?m)^[\t ]*(?:@[\w$.]+(?:\([^)]*\))?\s*)*`
	genericClause    = `(?:<[^>]+>\s*)?`
	signatureTail    = `\s*\(([^)]*)\)\s*(throws[^{]*)?\{`
)

var methodPattern = regexp.MustCompile(annotationPrefix +
	`((?:(?:public|protected|private|static|final|abstract|synchronized|native|strictfp|default)\b|\s)+)?` +
	genericClause +
	`([\w$\[\].<>?,\s]+?)\s+([\w$]+)` +
	signatureTail)

const constructorModifiers = `((?:(?:public|protected|private|static|final|synchronized|native|strictfp|default)\b|\s)+)?`

// notNames are words the method pattern can pick up from statements and
// headers that are not declarations.
var notNames = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "new": true, "throw": true, "assert": true, "synchronized": true,
	"else": true, "do": true, "try": true, "finally": true, "case": true,
	"this": true, "super": true,
}

// notTypes may never appear as a token of a return type.
var notTypes = map[string]bool{
	"return": true, "new": true, "throw": true, "else": true, "case": true,
	"class": true, "interface": true, "enum": true, "record": true,
	"extends": true, "implements": true, "instanceof": true, "package": true, "import": true,
	"public": true, "protected": true, "private": true, "static": true, "final": true,
	"abstract": true, "synchronized": true, "native": true, "strictfp": true, "default": true,
}

// RegexExtractor scans source text with line-anchored patterns. It does not
// track scopes, so methods of nested and local classes are reported too.
type RegexExtractor struct{}

func (RegexExtractor) Extract(unit SourceUnit) []Declaration {
	text := unit.Text
	var decls []Declaration

	for _, m := range methodPattern.FindAllStringSubmatchIndex(text, -1) {
		name := group(text, m, 3)
		returnType := normalizeSpace(group(text, m, 2))
		if notNames[name] || !validReturnType(returnType) {
			continue
		}
		end := FindMatch(text, m[1]-1)
		if end < 0 {
			continue
		}
		d := newDeclaration(text, m[0], end, group(text, m, 1), group(text, m, 4), group(text, m, 5))
		d.Name = name
		d.ReturnType = returnType
		d.Owner = unit.PrimaryType
		decls = append(decls, d)
	}

	if unit.PrimaryType != "" {
		ctor := regexp.MustCompile(annotationPrefix + constructorModifiers + genericClause +
			regexp.QuoteMeta(unit.PrimaryType) + signatureTail)
		for _, m := range ctor.FindAllStringSubmatchIndex(text, -1) {
			end := FindMatch(text, m[1]-1)
			if end < 0 {
				continue
			}
			d := newDeclaration(text, m[0], end, group(text, m, 1), group(text, m, 2), group(text, m, 3))
			d.Name = unit.PrimaryType
			d.Owner = unit.PrimaryType
			d.Constructor = true
			decls = append(decls, d)
		}
	}

	sortDeclarations(decls)
	return decls
}

func newDeclaration(text string, start, end int, modifiers, params, throws string) Declaration {
	for start < end && isSpace(text[start]) {
		start++
	}
	access, others := splitModifiers(modifiers)
	return Declaration{
		Access:     access,
		Modifiers:  others,
		Throws:     normalizeSpace(throws),
		Parameters: ParseParameters(params),
		Start:      start,
		End:        end,
		Line:       LineAt(text, start),
	}
}

func group(text string, m []int, i int) string {
	if 2*i+1 >= len(m) || m[2*i] < 0 {
		return ""
	}
	return text[m[2*i]:m[2*i+1]]
}

func validReturnType(t string) bool {
	if t == "" {
		return false
	}
	for _, tok := range strings.Fields(t) {
		if notTypes[tok] {
			return false
		}
	}
	return true
}

// splitModifiers separates the access modifier from the other modifiers of
// a modifier block. The remaining modifiers keep their source order.
func splitModifiers(block string) (Visibility, []string) {
	var access Visibility
	var others []string
	for _, word := range strings.Fields(block) {
		switch v := Visibility(word); v {
		case VisibilityPublic, VisibilityProtected, VisibilityPrivate:
			if access == VisibilityPackage {
				access = v
			}
		default:
			others = append(others, word)
		}
	}
	return access, others
}

// ParseParameters parses a formal parameter list. In each comma separated
// segment the last word is the name and the words before it the type; a
// segment with a single word uses it as both.
func ParseParameters(list string) []Parameter {
	var params []Parameter
	for _, segment := range SplitArguments(list) {
		words := strings.Fields(segment)
		if len(words) == 0 {
			continue
		}
		name := words[len(words)-1]
		typ := name
		if len(words) > 1 {
			typ = strings.Join(words[:len(words)-1], " ")
		}
		params = append(params, Parameter{Type: typ, Name: name})
	}
	return params
}

func sortDeclarations(decls []Declaration) {
	sort.SliceStable(decls, func(i, j int) bool {
		return decls[i].Start < decls[j].Start
	})
}
