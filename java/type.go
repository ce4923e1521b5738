package java

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	primaryTypePattern = regexp.MustCompile(`\b(?:class|interface|enum)\s+([\w$]+)`)
	classHeaderPattern = regexp.MustCompile(`class\s+[\w$]+\s*(?:extends\s+([\w$.<>]+))?\s*(?:implements\s+([\w$.,<>\s]+))?`)
	interfaceExtends   = regexp.MustCompile(`interface\s+[\w$]+\s+extends\s+([\w$.,<>\s]+)`)
)

// PrimaryTypeName returns the name of the first class, interface or enum
// declared in text. When there is none the file name of path without its
// .java extension is used.
func PrimaryTypeName(text, path string) string {
	if m := primaryTypePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if path == "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(path), ".java")
}

// ParentTypes returns the supertypes named in text: the extends and
// implements clauses of the first class header, followed by the extends
// lists of every interface. Names are cleaned and returned once each, in
// order of appearance.
func ParentTypes(text string) []string {
	var parents []string
	seen := make(map[string]bool)
	add := func(raw string) {
		name := CleanTypeName(raw)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		parents = append(parents, name)
	}

	if m := classHeaderPattern.FindStringSubmatch(text); m != nil {
		add(m[1])
		for _, part := range splitTypeList(m[2]) {
			add(part)
		}
	}
	for _, m := range interfaceExtends.FindAllStringSubmatch(text, -1) {
		for _, part := range splitTypeList(m[1]) {
			add(part)
		}
	}
	return parents
}

// splitTypeList splits a comma separated list of types, ignoring commas
// inside type arguments.
func splitTypeList(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	var parts []string
	depth, last := 0, 0
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, list[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, list[last:])
}

// SimplifyOwnerName reduces a type or owner token to its simple name:
// type arguments, array brackets and package qualifiers are removed, as is
// a trailing "()".
func SimplifyOwnerName(token string) string {
	s := strings.TrimSpace(token)
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, '<'); i >= 0 {
		s = s[:i]
	}
	for strings.HasSuffix(s, "[]") {
		s = strings.TrimSuffix(s, "[]")
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 && i < len(s)-1 {
		return s[i+1:]
	}
	return strings.TrimSuffix(s, "()")
}

// CleanTypeName normalizes a type as it appears in an extends or implements
// clause to a simple name.
func CleanTypeName(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if i := strings.IndexByte(s, '<'); i >= 0 {
		s = s[:i]
	}
	for strings.HasSuffix(s, "[]") {
		s = strings.TrimSuffix(s, "[]")
	}
	if i := strings.IndexFunc(s, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }); i >= 0 {
		s = s[:i]
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}':
			return -1
		}
		return r
	}, s)
	return SimplifyOwnerName(s)
}

// normalizeSpace trims s and collapses runs of whitespace to one space.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
