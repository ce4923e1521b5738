package java

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	javagrammar "github.com/smacker/go-tree-sitter/java"
)

// TreeSitterExtractor finds declarations using the tree-sitter Java
// grammar. It reports the same Declaration shape as RegexExtractor;
// declarations without a body (abstract and interface methods) are skipped
// in both.
type TreeSitterExtractor struct{}

func (TreeSitterExtractor) Extract(unit SourceUnit) []Declaration {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javagrammar.GetLanguage())

	source := []byte(unit.Text)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return nil
	}
	defer tree.Close()

	var decls []Declaration
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "method_declaration", "constructor_declaration":
			if d, ok := declarationFromNode(n, source, unit); ok {
				decls = append(decls, d)
			}
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(tree.RootNode())

	sortDeclarations(decls)
	return decls
}

func declarationFromNode(n *sitter.Node, source []byte, unit SourceUnit) (Declaration, bool) {
	body := n.ChildByFieldName("body")
	name := n.ChildByFieldName("name")
	params := n.ChildByFieldName("parameters")
	if body == nil || name == nil || params == nil {
		return Declaration{}, false
	}
	end := int(body.EndByte()) - 1
	if end < 0 || end >= len(source) || source[end] != '}' {
		return Declaration{}, false
	}

	d := Declaration{
		Name:        name.Content(source),
		Start:       int(n.StartByte()),
		End:         end,
		Line:        int(n.StartPoint().Row) + 1,
		Owner:       unit.PrimaryType,
		Constructor: n.Type() == "constructor_declaration",
	}
	if !d.Constructor {
		if t := n.ChildByFieldName("type"); t != nil {
			d.ReturnType = normalizeSpace(t.Content(source))
		}
	}

	list := params.Content(source)
	list = strings.TrimSuffix(strings.TrimPrefix(list, "("), ")")
	d.Parameters = ParseParameters(list)

	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "modifiers":
			d.Access, d.Modifiers = splitModifiers(modifierKeywords(child, source))
		case "throws":
			d.Throws = normalizeSpace(child.Content(source))
		}
	}
	return d, true
}

// modifierKeywords returns the keyword modifiers of a modifiers node,
// leaving out annotations.
func modifierKeywords(n *sitter.Node, source []byte) string {
	var words []string
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child.IsNamed() {
			continue
		}
		words = append(words, child.Content(source))
	}
	return strings.Join(words, " ")
}
