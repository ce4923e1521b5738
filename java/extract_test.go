package java

import (
	"strings"
	"testing"
)

const shopSource = `package demo;

import java.util.List;

public class Shop {
    private final List<String> items;

    public Shop(List<String> items) {
        this.items = items;
    }

    @Override
    public String toString() {
        return "Shop{" + items + "}";
    }

    public static <T> List<T> copy(List<T> src) throws IOException {
        if (src == null) {
            return null;
        } else if (src.isEmpty()) {
            return src;
        }
        return src;
    }

    int count(Map<String, Integer> m, int limit) {
        synchronized (this) {
            return m.size();
        }
    }
}
`

func TestExtractSingleMethod(t *testing.T) {
	text := "public int add(int a, int b) { return a+b; }"
	decls := Extract(NewSourceUnit("Calc.java", text))
	if len(decls) != 1 {
		t.Fatalf("Extract() returned %d declarations, want 1", len(decls))
	}
	d := decls[0]
	if d.Name != "add" {
		t.Errorf("Name = %q, want %q", d.Name, "add")
	}
	if d.ReturnType != "int" {
		t.Errorf("ReturnType = %q, want %q", d.ReturnType, "int")
	}
	if d.Access != VisibilityPublic {
		t.Errorf("Access = %q, want %q", d.Access, VisibilityPublic)
	}
	if d.Constructor {
		t.Errorf("Constructor = true, want false")
	}
	want := []Parameter{{Type: "int", Name: "a"}, {Type: "int", Name: "b"}}
	if !equalParameters(d.Parameters, want) {
		t.Errorf("Parameters = %v, want %v", d.Parameters, want)
	}
	if d.Start != 0 || d.End != len(text)-1 {
		t.Errorf("span = [%d,%d], want [0,%d]", d.Start, d.End, len(text)-1)
	}
	if d.Owner != "Calc" {
		t.Errorf("Owner = %q, want %q", d.Owner, "Calc")
	}
}

func TestExtractClass(t *testing.T) {
	decls := Extract(NewSourceUnit("Shop.java", shopSource))

	tests := []struct {
		name        string
		returnType  string
		access      Visibility
		modifiers   string
		throws      string
		params      []Parameter
		line        int
		constructor bool
	}{
		{
			name:        "Shop",
			access:      VisibilityPublic,
			params:      []Parameter{{Type: "List<String>", Name: "items"}},
			line:        8,
			constructor: true,
		},
		{
			name:       "toString",
			returnType: "String",
			access:     VisibilityPublic,
			line:       12,
		},
		{
			name:       "copy",
			returnType: "List<T>",
			access:     VisibilityPublic,
			modifiers:  "static",
			throws:     "throws IOException",
			params:     []Parameter{{Type: "List<T>", Name: "src"}},
			line:       17,
		},
		{
			name:       "count",
			returnType: "int",
			line:       26,
		},
	}

	if len(decls) != len(tests) {
		var names []string
		for _, d := range decls {
			names = append(names, d.Name)
		}
		t.Fatalf("Extract() found %v, want %d declarations", names, len(tests))
	}

	for i, tt := range tests {
		d := decls[i]
		t.Run(tt.name, func(t *testing.T) {
			if d.Name != tt.name {
				t.Fatalf("Name = %q, want %q", d.Name, tt.name)
			}
			if d.ReturnType != tt.returnType {
				t.Errorf("ReturnType = %q, want %q", d.ReturnType, tt.returnType)
			}
			if d.Access != tt.access {
				t.Errorf("Access = %q, want %q", d.Access, tt.access)
			}
			if got := strings.Join(d.Modifiers, " "); got != tt.modifiers {
				t.Errorf("Modifiers = %q, want %q", got, tt.modifiers)
			}
			if d.Throws != tt.throws {
				t.Errorf("Throws = %q, want %q", d.Throws, tt.throws)
			}
			if tt.params != nil && !equalParameters(d.Parameters, tt.params) {
				t.Errorf("Parameters = %v, want %v", d.Parameters, tt.params)
			}
			if d.Line != tt.line {
				t.Errorf("Line = %d, want %d", d.Line, tt.line)
			}
			if d.Constructor != tt.constructor {
				t.Errorf("Constructor = %v, want %v", d.Constructor, tt.constructor)
			}
			if d.Owner != "Shop" {
				t.Errorf("Owner = %q, want %q", d.Owner, "Shop")
			}
			if shopSource[d.End] != '}' {
				t.Errorf("End = %d points at %q, want a closing brace", d.End, shopSource[d.End])
			}
		})
	}
}

func TestExtractGenericParameterSplit(t *testing.T) {
	decls := Extract(NewSourceUnit("Shop.java", shopSource))
	var count *Declaration
	for i := range decls {
		if decls[i].Name == "count" {
			count = &decls[i]
		}
	}
	if count == nil {
		t.Fatal("count not extracted")
	}
	// Commas inside type arguments are not protected.
	want := []Parameter{
		{Type: "Map<String", Name: "Map<String"},
		{Type: "Integer>", Name: "m"},
		{Type: "int", Name: "limit"},
	}
	if !equalParameters(count.Parameters, want) {
		t.Errorf("Parameters = %v, want %v", count.Parameters, want)
	}
}

func TestExtractInvariants(t *testing.T) {
	sources := []string{
		shopSource,
		"class A { void a() { b(); } void b() { if (x) { y(); } } }",
		"class Broken {\n  void ok() { }\n  void open() {\n    if (x) {\n",
		"",
	}
	for _, src := range sources {
		decls := Extract(NewSourceUnit("A.java", src))
		for i, d := range decls {
			if !(d.Start < d.End && d.End <= len(src)) {
				t.Errorf("%s: span [%d,%d] outside text of length %d", d.Name, d.Start, d.End, len(src))
			}
			if i > 0 && decls[i-1].Start > d.Start {
				t.Errorf("declarations not sorted: %s at %d before %s at %d", decls[i-1].Name, decls[i-1].Start, d.Name, d.Start)
			}
		}
	}
}

func TestExtractDiscardsUnmatchedBodies(t *testing.T) {
	src := "class Broken {\n  void ok() { }\n  void open() {\n    if (x) {\n"
	decls := Extract(NewSourceUnit("Broken.java", src))
	if len(decls) != 1 || decls[0].Name != "ok" {
		t.Errorf("Extract() = %v, want only ok", decls)
	}
}

func TestExtractStatementsAreNotDeclarations(t *testing.T) {
	src := `class Worker {
    void run() {
        else if (ready) {
        }
        return new Thread(task) {
        };
    }
}`
	decls := Extract(NewSourceUnit("Worker.java", src))
	if len(decls) != 1 || decls[0].Name != "run" {
		var names []string
		for _, d := range decls {
			names = append(names, d.Name+":"+d.ReturnType)
		}
		t.Errorf("Extract() = %v, want only run", names)
	}
}

func TestParseParameters(t *testing.T) {
	tests := []struct {
		list string
		want []Parameter
	}{
		{list: "", want: nil},
		{list: "  ", want: nil},
		{list: "int a", want: []Parameter{{Type: "int", Name: "a"}}},
		{list: "final String s, int[] xs", want: []Parameter{{Type: "final String", Name: "s"}, {Type: "int[]", Name: "xs"}}},
		{list: "String... args", want: []Parameter{{Type: "String...", Name: "args"}}},
		{list: "x", want: []Parameter{{Type: "x", Name: "x"}}},
		{list: "int a,\n\tint b", want: []Parameter{{Type: "int", Name: "a"}, {Type: "int", Name: "b"}}},
	}
	for _, tt := range tests {
		got := ParseParameters(tt.list)
		if !equalParameters(got, tt.want) {
			t.Errorf("ParseParameters(%q) = %v, want %v", tt.list, got, tt.want)
		}
	}
}

func TestTreeSitterExtractorAgreesWithRegex(t *testing.T) {
	unit := NewSourceUnit("Shop.java", shopSource)
	regex := RegexExtractor{}.Extract(unit)
	tree := TreeSitterExtractor{}.Extract(unit)

	if len(tree) != len(regex) {
		t.Fatalf("tree-sitter found %d declarations, regex %d", len(tree), len(regex))
	}
	for i := range regex {
		r, ts := regex[i], tree[i]
		if r.Name != ts.Name || r.ReturnType != ts.ReturnType || r.Access != ts.Access ||
			r.Constructor != ts.Constructor || r.End != ts.End || r.Line != ts.Line ||
			r.Throws != ts.Throws || strings.Join(r.Modifiers, " ") != strings.Join(ts.Modifiers, " ") {
			t.Errorf("declaration %d: regex %+v, tree-sitter %+v", i, r, ts)
		}
		if !equalParameters(r.Parameters, ts.Parameters) {
			t.Errorf("%s parameters: regex %v, tree-sitter %v", r.Name, r.Parameters, ts.Parameters)
		}
	}
}

func equalParameters(a, b []Parameter) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
