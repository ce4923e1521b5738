// Package explain turns declarations and call sites into readable
// explanations, combining the built-in knowledge base with naming
// conventions.
package explain

import (
	"strings"

	"github.com/dhamidi/quickview/java"
	"github.com/dhamidi/quickview/java/knowledge"
)

// ElementKind classifies what an explanation is about.
type ElementKind string

const (
	KindConstructor ElementKind = "constructor"
	// KindCall is a call site with no declaration behind it.
	KindCall   ElementKind = "call"
	KindMethod ElementKind = "method"
)

// GenericSummary is used when nothing more specific is known.
const GenericSummary = "Performs the business logic you defined in the method body."

// ParameterDescription is one parameter with a sentence about its role.
type ParameterDescription struct {
	Type        string `json:"type" yaml:"type"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Explanation is everything known about one declaration or call site.
type Explanation struct {
	Title          string                 `json:"title" yaml:"title"`
	Name           string                 `json:"name" yaml:"name"`
	Owner          string                 `json:"owner,omitempty" yaml:"owner,omitempty"`
	InheritedFrom  string                 `json:"inherited_from,omitempty" yaml:"inherited_from,omitempty"`
	Summary        string                 `json:"summary" yaml:"summary"`
	ElementKind    ElementKind            `json:"element_kind" yaml:"element_kind"`
	OwnerContext   string                 `json:"owner_context,omitempty" yaml:"owner_context,omitempty"`
	Line           int                    `json:"line" yaml:"line"`
	AccessLabel    string                 `json:"access" yaml:"access"`
	Modifiers      string                 `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	ReturnType     string                 `json:"return_type" yaml:"return_type"`
	Parameters     []ParameterDescription `json:"parameters" yaml:"parameters"`
	Throws         string                 `json:"throws,omitempty" yaml:"throws,omitempty"`
	LearningTip    string                 `json:"learning_tip" yaml:"learning_tip"`
	ExtraReference string                 `json:"extra_reference" yaml:"extra_reference"`
}

// KindOf classifies decl.
func KindOf(decl java.Declaration) ElementKind {
	switch {
	case decl.Constructor:
		return KindConstructor
	case decl.IsCall():
		return KindCall
	default:
		return KindMethod
	}
}

// Describe builds the explanation for decl. It never fails: when nothing is
// known about decl the summary is GenericSummary.
func Describe(kb *knowledge.Base, decl java.Declaration) Explanation {
	kind := KindOf(decl)
	e := Explanation{
		Name:           decl.Name,
		Owner:          decl.Owner,
		Summary:        Summarize(kb, decl),
		ElementKind:    kind,
		OwnerContext:   decl.Owner,
		Line:           decl.Line,
		AccessLabel:    accessLabel(decl, kind),
		Modifiers:      strings.Join(decl.Modifiers, " "),
		ReturnType:     returnTypeLabel(decl),
		Throws:         strings.TrimSpace(strings.ReplaceAll(decl.Throws, "throws", "")),
		LearningTip:    LearningTip(kb, decl),
		ExtraReference: ExtraReference(kb, decl),
	}
	if kind == KindConstructor {
		e.Title = "Constructor " + decl.Name
	} else {
		e.Title = "Method " + decl.Name
	}
	if decl.Inherited && decl.Owner != "" {
		e.InheritedFrom = decl.Owner
	}
	e.Parameters = make([]ParameterDescription, len(decl.Parameters))
	for i, p := range decl.Parameters {
		e.Parameters[i] = ParameterDescription{
			Type:        p.Type,
			Name:        p.Name,
			Description: DescribeParameter(kb, decl, i),
		}
	}
	return e
}

// Summarize returns the one-sentence summary of decl: a built-in description
// when the knowledge base has one, else a naming-convention sentence for
// declarations found in source, else GenericSummary.
func Summarize(kb *knowledge.Base, decl java.Declaration) string {
	if text, ok := kb.Summary(decl.Owner, decl.Name, len(decl.Parameters)); ok {
		return text
	}
	if KindOf(decl) != KindCall {
		if text := firstRule(summaryRules, newSubject(kb, decl, -1)); text != "" {
			return text
		}
	}
	return GenericSummary
}

// DescribeParameter explains the role of the parameter at index.
func DescribeParameter(kb *knowledge.Base, decl java.Declaration, index int) string {
	if text := firstRule(parameterRules, newSubject(kb, decl, index)); text != "" {
		return text
	}
	typ := ""
	if index >= 0 && index < len(decl.Parameters) {
		typ = decl.Parameters[index].Type
	}
	return "A parameter of type " + typ + " used by the method's logic."
}

// LearningTip suggests a topic to review for decl.
func LearningTip(kb *knowledge.Base, decl java.Declaration) string {
	if text := firstRule(tipRules, newSubject(kb, decl, -1)); text != "" {
		return text
	}
	return "Review the structure of a Java method: signature, access level, naming conventions and clear documentation."
}

// ExtraReference names further reading for decl.
func ExtraReference(kb *knowledge.Base, decl java.Declaration) string {
	if text := firstRule(referenceRules, newSubject(kb, decl, -1)); text != "" {
		return text
	}
	return "Topics: effective method design, Javadoc, unit tests for business logic."
}

func accessLabel(decl java.Declaration, kind ElementKind) string {
	if kind == KindCall {
		return "Depends on the library definition"
	}
	if decl.Access == java.VisibilityPackage {
		return "default (package-private)"
	}
	return string(decl.Access)
}

func returnTypeLabel(decl java.Declaration) string {
	switch {
	case decl.Constructor:
		return "none (constructor)"
	case decl.ReturnType == "void":
		return "none (void)"
	default:
		return decl.ReturnType
	}
}
