// Package knowledge holds the built-in Java API descriptions used to explain
// calls into the standard library.
package knowledge

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var defaultTable []byte

// Base maps canonical owner keys and method names to descriptions.
// It is immutable once built and safe for concurrent use.
type Base struct {
	aliases      map[string]string
	owners       map[string]map[string]string
	textSequence map[string]bool
	families     []family
}

type family struct {
	owners  map[string]bool
	methods map[string]string
}

type table struct {
	Aliases      map[string]string            `yaml:"aliases"`
	TextSequence []string                     `yaml:"text_sequence"`
	Owners       map[string]map[string]string `yaml:"owners"`
	Families     []struct {
		Owners  []string          `yaml:"owners"`
		Methods map[string]string `yaml:"methods"`
	} `yaml:"families"`
}

var (
	defaultBase *Base
	defaultOnce sync.Once
)

// Default returns the knowledge base built from the embedded table.
func Default() *Base {
	defaultOnce.Do(func() {
		base, err := Parse(defaultTable)
		if err != nil {
			panic(fmt.Sprintf("knowledge: embedded table: %v", err))
		}
		defaultBase = base
	})
	return defaultBase
}

// Parse builds a Base from a YAML table. All keys are folded to lower case.
func Parse(data []byte) (*Base, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing knowledge table: %w", err)
	}

	b := &Base{
		aliases:      make(map[string]string, len(t.Aliases)),
		owners:       make(map[string]map[string]string, len(t.Owners)),
		textSequence: make(map[string]bool, len(t.TextSequence)),
	}
	for from, to := range t.Aliases {
		b.aliases[strings.ToLower(from)] = strings.ToLower(to)
	}
	for owner, methods := range t.Owners {
		docs := make(map[string]string, len(methods))
		for method, text := range methods {
			docs[strings.ToLower(method)] = text
		}
		b.owners[strings.ToLower(owner)] = docs
	}
	for _, method := range t.TextSequence {
		b.textSequence[strings.ToLower(method)] = true
	}
	for i, f := range t.Families {
		if len(f.Methods) == 0 {
			return nil, fmt.Errorf("family %d has no methods", i)
		}
		fam := family{methods: make(map[string]string, len(f.Methods))}
		if len(f.Owners) > 0 {
			fam.owners = make(map[string]bool, len(f.Owners))
			for _, o := range f.Owners {
				fam.owners[strings.ToLower(o)] = true
			}
		}
		for method, text := range f.Methods {
			fam.methods[strings.ToLower(method)] = text
		}
		b.families = append(b.families, fam)
	}
	return b, nil
}

// CanonicalOwner normalizes an owner type name to the key its documentation
// is stored under: lower case, generics, array brackets and a trailing call
// "()" removed, then mapped through the alias table. Unknown owners are
// returned normalized but otherwise unchanged.
func (b *Base) CanonicalOwner(owner string) string {
	key := strings.ToLower(strings.TrimSpace(owner))
	if key == "" {
		return ""
	}
	if i := strings.IndexByte(key, '<'); i >= 0 {
		key = key[:i]
	}
	for strings.HasSuffix(key, "[]") {
		key = strings.TrimSuffix(key, "[]")
	}
	key = strings.TrimSuffix(key, "()")
	if alias, ok := b.aliases[key]; ok {
		return alias
	}
	return key
}

// Lookup returns the exact description registered for owner and method.
func (b *Base) Lookup(owner, method string) (string, bool) {
	return b.lookupKey(b.CanonicalOwner(owner), strings.ToLower(method))
}

func (b *Base) lookupKey(ownerKey, method string) (string, bool) {
	docs, ok := b.owners[ownerKey]
	if !ok {
		return "", false
	}
	text, ok := docs[method]
	return text, ok
}

// Summary describes a call to method on owner with arity arguments.
//
// The exact entry wins. When the owner is unknown and the method belongs to
// the text-sequence operations, the charsequence and string entries are tried,
// and "length" falls back to arrays. Otherwise the owner family tables are
// consulted in order, ending with the owner-independent family.
func (b *Base) Summary(owner, method string, arity int) (string, bool) {
	ownerKey := b.CanonicalOwner(owner)
	name := strings.ToLower(method)

	if text, ok := b.lookupKey(ownerKey, name); ok {
		return text, true
	}
	if _, known := b.aliases[ownerKey]; (!known || ownerKey == "") && b.textSequence[name] {
		if text, ok := b.lookupKey("charsequence", name); ok {
			return text, true
		}
		if text, ok := b.lookupKey("string", name); ok {
			return text, true
		}
	}
	if name == "length" {
		if text, ok := b.lookupKey("array", name); ok {
			return text, true
		}
	}

	withArity := name + "/" + strconv.Itoa(arity)
	for _, f := range b.families {
		if f.owners != nil && !f.owners[ownerKey] {
			continue
		}
		if text, ok := f.methods[withArity]; ok {
			return text, true
		}
		if text, ok := f.methods[name]; ok {
			return text, true
		}
	}
	return "", false
}

// IsKnownOwner reports whether owner canonicalizes to a key that has
// built-in documentation. Such owners are library types whose members are
// never looked up in project sources.
func (b *Base) IsKnownOwner(owner string) bool {
	_, ok := b.owners[b.CanonicalOwner(owner)]
	return ok
}

// IsTextSequenceMethod reports whether method is one of the operations shared
// by strings and other character sequences.
func (b *Base) IsTextSequenceMethod(method string) bool {
	return b.textSequence[strings.ToLower(method)]
}
