package explain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/quickview/java"
	"github.com/dhamidi/quickview/java/knowledge"
)

func call(owner, name string, args ...string) java.Declaration {
	d := java.Declaration{Name: name, Owner: owner, Line: 7}
	for _, a := range args {
		d.Parameters = append(d.Parameters, java.Parameter{Type: java.ArgumentType, Name: a})
	}
	return d
}

func TestDescribeUnknownCall(t *testing.T) {
	e := Describe(knowledge.Default(), call("Inventory", "doCustomBusinessLogic", "arg1 = x"))

	assert.Equal(t, KindCall, e.ElementKind)
	assert.Equal(t, GenericSummary, e.Summary)
	assert.Equal(t, "Method doCustomBusinessLogic", e.Title)
	assert.Equal(t, "Depends on the library definition", e.AccessLabel)
	assert.Equal(t, "Inventory", e.OwnerContext)
	assert.Empty(t, e.InheritedFrom)
	assert.Equal(t, 7, e.Line)
	require.Len(t, e.Parameters, 1)
	assert.Equal(t, "A parameter of type Expression used by the method's logic.", e.Parameters[0].Description)
	assert.NotEmpty(t, e.LearningTip)
	assert.NotEmpty(t, e.ExtraReference)
}

func TestDescribeKnownCall(t *testing.T) {
	kb := knowledge.Default()
	e := Describe(kb, call("List", "add", "arg1 = 5"))

	want, ok := kb.Lookup("list", "add")
	require.True(t, ok)
	assert.Equal(t, want, e.Summary)
	assert.Equal(t, KindCall, e.ElementKind)
	assert.Equal(t, "The element to add.", e.Parameters[0].Description)
	assert.Equal(t, "Review the Collections Framework: the traits and complexity of each structure and when to use ArrayList, LinkedList or HashSet.", e.LearningTip)
}

func TestDescribeDeclaration(t *testing.T) {
	decl := java.Declaration{
		Name:       "getTotalPrice",
		ReturnType: "double",
		Access:     java.VisibilityPublic,
		Modifiers:  []string{"final"},
		Throws:     "throws IOException, SQLException",
		Owner:      "Cart",
		Line:       12,
	}
	e := Describe(knowledge.Default(), decl)

	assert.Equal(t, KindMethod, e.ElementKind)
	assert.Equal(t, `Returns the value of the "totalPrice" property.`, e.Summary)
	assert.Equal(t, "public", e.AccessLabel)
	assert.Equal(t, "final", e.Modifiers)
	assert.Equal(t, "double", e.ReturnType)
	assert.Equal(t, "IOException, SQLException", e.Throws)
	assert.Empty(t, e.Parameters)
	assert.Equal(t, "Getters should not change state; practice the JavaBean conventions (get/is) and encapsulation.", e.LearningTip)
	assert.Equal(t, "Topics: JavaBeans getters and setters, encapsulation.", e.ExtraReference)
}

func TestDescribeConstructor(t *testing.T) {
	decl := java.Declaration{
		Name:        "Shop",
		Owner:       "Shop",
		Constructor: true,
		Parameters:  []java.Parameter{{Type: "List<String>", Name: "items"}},
	}
	e := Describe(knowledge.Default(), decl)

	assert.Equal(t, KindConstructor, e.ElementKind)
	assert.Equal(t, "Constructor Shop", e.Title)
	assert.Equal(t, `Initializes a new "Shop" object with the given input data.`, e.Summary)
	assert.Equal(t, "none (constructor)", e.ReturnType)
	assert.Equal(t, "default (package-private)", e.AccessLabel)
	assert.Equal(t, "A parameter of type List<String> used by the method's logic.", e.Parameters[0].Description)
	assert.Equal(t, "Topics: constructors, the this/super keywords, constructor chaining.", e.ExtraReference)
}

func TestDescribeInherited(t *testing.T) {
	decl := java.Declaration{Name: "speak", ReturnType: "void", Access: java.VisibilityProtected}
	e := Describe(knowledge.Default(), decl.AsInherited("Animal"))

	assert.Equal(t, "Animal", e.InheritedFrom)
	assert.Equal(t, "none (void)", e.ReturnType)
	assert.Equal(t, GenericSummary, e.Summary)
}

func TestSummarize(t *testing.T) {
	kb := knowledge.Default()
	method := func(name string, params ...string) java.Declaration {
		d := java.Declaration{Name: name, ReturnType: "void", Owner: "Cart"}
		for _, p := range params {
			d.Parameters = append(d.Parameters, java.Parameter{Type: "Object", Name: p})
		}
		return d
	}

	tests := []struct {
		name string
		decl java.Declaration
		want string
	}{
		{name: "setter", decl: method("setOwnerName", "v"), want: `Assigns a new value to the "ownerName" property from the argument.`},
		{name: "setter arity", decl: method("setOwnerName"), want: GenericSummary},
		{name: "boolean", decl: method("isValid"), want: `Returns the "valid" check as a boolean.`},
		{name: "has", decl: method("hasDiscount"), want: `Checks whether "discount" exists or holds.`},
		{name: "adder", decl: method("addItem", "item"), want: `Adds a new "item" element to the class's data structure or collection.`},
		{name: "remover", decl: method("removeItem", "item", "count"), want: `Removes "item" from the corresponding data structure.`},
		{name: "compute", decl: method("computeTax"), want: "Performs a calculation or business step and returns the appropriate result."},
		{name: "update", decl: method("updateStock"), want: `Updates the state or data of "stock".`},
		{name: "load", decl: method("loadFromDisk"), want: "Loads data from an external source into the object's memory."},
		{name: "validate", decl: method("validateOrder", "o"), want: "Checks that the data is valid before further processing."},
		{name: "to string", decl: method("toString"), want: "Converts the object into a string describing its content."},
		{name: "hash code", decl: method("hashCode"), want: "Produces a hash code representing the object, for use in hash-based data structures."},
		{name: "text sequence name on unknown owner", decl: method("equals", "o"), want: "Compares the content of two strings, case-sensitively."},
		{name: "finalize", decl: method("finalize"), want: "Cleans up resources before the object is garbage collected (avoid relying on it)."},
		{name: "built-in wins", decl: method("add", "item"), want: "Adds a new element to the data structure or list."},
		{name: "getter call is not a declaration", decl: call("Cart", "getTotal"), want: GenericSummary},
		{name: "print stream call", decl: call(java.PrintStreamOwner, "println", "arg1 = x"), want: "Prints a value to the stream followed by a line break."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(kb, tt.decl))
		})
	}
}

func TestDescribeParameterPositions(t *testing.T) {
	kb := knowledge.Default()
	arraycopy := call("System", "arraycopy", "arg1 = src", "arg2 = 0", "arg3 = dst", "arg4 = 0", "arg5 = n")
	want := []string{
		"The source array to copy from.",
		"The start position in the source array.",
		"The destination array receiving the data.",
		"The start position in the destination array.",
		"The number of elements to copy.",
	}
	for i, w := range want {
		assert.Equal(t, w, DescribeParameter(kb, arraycopy, i), "arraycopy argument %d", i)
	}

	substring := call("String", "substring", "arg1 = 1", "arg2 = 4")
	assert.Equal(t, "The start index (inclusive).", DescribeParameter(kb, substring, 0))
	assert.Equal(t, "The end index (exclusive).", DescribeParameter(kb, substring, 1))

	reduce := call("IntStream", "reduce", "arg1 = 0", "arg2 = acc", "arg3 = comb")
	assert.Equal(t, "The function combining partial results in parallel.", DescribeParameter(kb, reduce, 2))

	format := call("String", "format", "arg1 = p", "arg2 = a", "arg3 = b")
	assert.Equal(t, "An argument inserted into the format pattern.", DescribeParameter(kb, format, 2))

	insert := call("StringBuilder", "insert", "arg1 = 0", "arg2 = x", "arg3 = y")
	assert.Equal(t, "A parameter of type Expression used by the method's logic.", DescribeParameter(kb, insert, 2))
}

func TestLearningTipByModifier(t *testing.T) {
	kb := knowledge.Default()
	static := java.Declaration{Name: "run", ReturnType: "void", Modifiers: []string{"static"}, Owner: "Job"}
	assert.Equal(t, "Tell static and instance methods apart; prefer static for pure utilities or factories.", LearningTip(kb, static))
	assert.Equal(t, "Topics: the static keyword, factory methods, utility classes.", ExtraReference(kb, static))

	throwing := java.Declaration{Name: "run", ReturnType: "void", Throws: "throws Exception", Owner: "Job"}
	assert.Equal(t, "Practice exception handling: checked versus unchecked, and when to rethrow or wrap in a RuntimeException.", LearningTip(kb, throwing))

	plain := java.Declaration{Name: "run", ReturnType: "void", Owner: "Job"}
	assert.Equal(t, "Topics: effective method design, Javadoc, unit tests for business logic.", ExtraReference(kb, plain))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConstructor, KindOf(java.Declaration{Name: "A", Constructor: true}))
	assert.Equal(t, KindCall, KindOf(java.Declaration{Name: "a"}))
	assert.Equal(t, KindMethod, KindOf(java.Declaration{Name: "a", ReturnType: "int"}))
	assert.Equal(t, KindMethod, KindOf(java.Declaration{Name: "a", Modifiers: []string{"static"}}))
	assert.Equal(t, KindMethod, KindOf(java.Declaration{Name: "a", Access: java.VisibilityPrivate}))
}
