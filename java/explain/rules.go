package explain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/quickview/java"
	"github.com/dhamidi/quickview/java/knowledge"
)

// subject is what a rule looks at.
type subject struct {
	decl  java.Declaration
	owner string // canonical owner key
	name  string
	lower string
	arity int
	index int // parameter position, -1 outside parameter rules
}

func newSubject(kb *knowledge.Base, decl java.Declaration, index int) subject {
	return subject{
		decl:  decl,
		owner: kb.CanonicalOwner(decl.Owner),
		name:  decl.Name,
		lower: strings.ToLower(decl.Name),
		arity: len(decl.Parameters),
		index: index,
	}
}

// rule produces text for subjects it matches. An empty result lets the next
// rule run.
type rule struct {
	when func(s subject) bool
	say  func(s subject) string
}

func firstRule(rules []rule, s subject) string {
	for _, r := range rules {
		if !r.when(s) {
			continue
		}
		if text := r.say(s); text != "" {
			return text
		}
	}
	return ""
}

func text(t string) func(subject) string {
	return func(subject) string { return t }
}

// byPosition picks the sentence for the parameter index, or nothing past the end.
func byPosition(texts ...string) func(subject) string {
	return func(s subject) string {
		if s.index < 0 || s.index >= len(texts) {
			return ""
		}
		return texts[s.index]
	}
}

// firstThenRest uses first for index 0 and rest for every later index.
func firstThenRest(first, rest string) func(subject) string {
	return func(s subject) string {
		if s.index == 0 {
			return first
		}
		return rest
	}
}

func isConstructor(s subject) bool { return s.decl.Constructor }

func prefix(p string, arity func(int) bool) func(subject) bool {
	return func(s subject) bool {
		return strings.HasPrefix(s.name, p) && (arity == nil || arity(s.arity))
	}
}

func anyPrefix(ps ...string) func(subject) bool {
	return func(s subject) bool {
		for _, p := range ps {
			if strings.HasPrefix(s.name, p) {
				return true
			}
		}
		return false
	}
}

// lowerPrefix matches prefixes of the lower-cased name.
func lowerPrefix(ps ...string) func(subject) bool {
	return func(s subject) bool {
		for _, p := range ps {
			if strings.HasPrefix(s.lower, p) {
				return true
			}
		}
		return false
	}
}

func named(names ...string) func(subject) bool {
	return func(s subject) bool {
		for _, n := range names {
			if s.lower == n {
				return true
			}
		}
		return false
	}
}

func exactly(name string, arity func(int) bool) func(subject) bool {
	return func(s subject) bool {
		return s.name == name && (arity == nil || arity(s.arity))
	}
}

func ownedBy(owners ...string) func(subject) bool {
	return func(s subject) bool {
		for _, o := range owners {
			if s.owner == o {
				return true
			}
		}
		return false
	}
}

func ownerContains(parts ...string) func(subject) bool {
	return func(s subject) bool {
		for _, p := range parts {
			if strings.Contains(s.owner, p) {
				return true
			}
		}
		return false
	}
}

func member(owner string, names ...string) func(subject) bool {
	isOwner, isNamed := ownedBy(owner), named(names...)
	return func(s subject) bool { return isOwner(s) && isNamed(s) }
}

func modifier(m string) func(subject) bool {
	return func(s subject) bool { return s.decl.HasModifier(m) }
}

func throws(s subject) bool { return s.decl.Throws != "" }

func both(a, b func(subject) bool) func(subject) bool {
	return func(s subject) bool { return a(s) && b(s) }
}

func none(n int) bool     { return n == 0 }
func one(n int) bool      { return n == 1 }
func atLeast1(n int) bool { return n >= 1 }

func arity(n int) func(subject) bool {
	return func(s subject) bool { return s.arity == n }
}

// property is the decapitalized rest of the name after p.
func property(s subject, p string) string {
	return decapitalize(strings.TrimPrefix(s.name, p))
}

func decapitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

var summaryRules = []rule{
	{isConstructor, func(s subject) string {
		return `Initializes a new "` + s.decl.Owner + `" object with the given input data.`
	}},
	{prefix("get", none), func(s subject) string {
		return `Returns the value of the "` + property(s, "get") + `" property.`
	}},
	{prefix("set", one), func(s subject) string {
		return `Assigns a new value to the "` + property(s, "set") + `" property from the argument.`
	}},
	{prefix("is", none), func(s subject) string {
		return `Returns the "` + property(s, "is") + `" check as a boolean.`
	}},
	{prefix("has", none), func(s subject) string {
		return `Checks whether "` + property(s, "has") + `" exists or holds.`
	}},
	{prefix("add", one), func(s subject) string {
		return `Adds a new "` + property(s, "add") + `" element to the class's data structure or collection.`
	}},
	{prefix("remove", atLeast1), func(s subject) string {
		return `Removes "` + property(s, "remove") + `" from the corresponding data structure.`
	}},
	{anyPrefix("calculate", "compute"), text("Performs a calculation or business step and returns the appropriate result.")},
	{prefix("update", nil), func(s subject) string {
		return `Updates the state or data of "` + property(s, "update") + `".`
	}},
	{prefix("load", nil), text("Loads data from an external source into the object's memory.")},
	{prefix("save", nil), text("Saves the object's current data to external storage.")},
	{prefix("validate", nil), text("Checks that the data is valid before further processing.")},
	{prefix("process", nil), text("Runs the main sequence of processing steps on the input data.")},
	{exactly("toString", nil), text("Converts the object into a string describing its content.")},
	{exactly("hashCode", nil), text("Produces a hash code representing the object, for use in hash-based data structures.")},
	{exactly("equals", one), text("Compares this object with another one to decide whether they are equivalent.")},
	{exactly("compareTo", one), text("Compares the order of two objects, used for sorting.")},
	{exactly("clone", none), text("Creates a copy (shallow copy) of the current object.")},
	{exactly("finalize", none), text("Cleans up resources before the object is garbage collected (avoid relying on it).")},
}

var parameterRules = []rule{
	{both(lowerPrefix("set"), arity(1)), text("The new value to assign to the property.")},
	{both(lowerPrefix("add"), arity(1)), text("The element to add.")},
	{lowerPrefix("update"), text("The data source or value used for the update.")},
	{lowerPrefix("validate"), text("The object or data to validate.")},
	{lowerPrefix("remove"), text("The identifier or object to remove.")},
	{lowerPrefix("load"), text("Information about the data source to load.")},
	{lowerPrefix("save"), text("The storage target or data to save.")},
	{lowerPrefix("find", "search"), text("The condition or key used to query the data.")},
	{lowerPrefix("sort"), firstThenRest("The data to sort.", "The Comparator that decides the order (may be null).")},

	{member("stringbuilder", "append"), text("The value appended to the end of the current text (a number, string or object).")},
	{member("stringbuilder", "insert"), byPosition("The insertion index (0-based).", "The value to insert into the buffer.")},
	{member("stringbuilder", "delete"), byPosition("The start index of the range to delete.", "The end index (exclusive) of the range to delete.")},
	{member("stringbuilder", "replace"), byPosition(
		"The start index of the range to replace.",
		"The end index (exclusive) of the range to replace.",
		"The new string that replaces the old range.",
	)},

	{member("string", "substring"), byPosition("The start index (inclusive).", "The end index (exclusive).")},
	{member("string", "split"), byPosition("The regular expression used to split the string.", "The limit on the number of parts (<=0 means no limit).")},
	{member("string", "replace", "replacefirst"), byPosition("The string or pattern to replace.", "The replacement string.")},
	{member("string", "replaceall"), byPosition("The regular expression describing what to replace.", "The replacement string for every match.")},
	{member("string", "indexof", "lastindexof"), text("The string or character to search for.")},
	{member("string", "format"), firstThenRest("The format pattern.", "An argument inserted into the format pattern.")},

	{both(member("list", "add"), arity(2)), byPosition("The index at which to insert the element.", "The element to insert.")},
	{member("list", "set"), byPosition("The index of the element to overwrite.", "The new value replacing the old element.")},
	{member("list", "sublist"), byPosition("The start index (inclusive) of the sub-list view.", "The end index (exclusive) of the sub-list view.")},

	{member("map", "put", "putifabsent"), byPosition("The key to add or update.", "The value associated with the key.")},
	{member("map", "get", "getordefault"), byPosition("The key to look up.", "The default value when the key does not exist.")},
	{member("map", "merge"), byPosition("The key to merge.", "The new value to merge in.", "The function combining the old and new values.")},
	{member("map", "computeifabsent"), byPosition("The key to check.", "The function creating a value when the key is absent.")},
	{member("map", "computeifpresent"), byPosition("The key to update.", "The function mapping (key, old value) to a new value.")},

	{member("map.entry", "setvalue"), text("The new value for the current entry.")},

	{member("optional", "of", "ofnullable"), text("The source value wrapped in the Optional.")},
	{member("optional", "orelse"), text("The default value returned when the Optional is empty.")},
	{member("optional", "orelseget"), text("The Supplier producing a default value when the Optional is empty.")},
	{member("optional", "orelsethrow"), text("The Supplier creating the exception thrown when the Optional is empty.")},
	{member("optional", "map", "flatmap", "filter"), text("The function applied to the value inside the Optional.")},

	{member("stream", "map"), text("The Function converting each element.")},
	{member("stream", "filter"), text("The Predicate deciding which elements to keep.")},
	{member("stream", "flatmap"), text("The Function turning an element into a sub-Stream.")},
	{member("stream", "collect"), text("The Collector defining how the result is gathered.")},
	{both(member("stream", "reduce"), arity(2)), firstThenRest("The initial value of the reduction.", "The function combining two elements into one.")},
	{both(member("stream", "reduce"), arity(3)), byPosition(
		"The initial value.",
		"The accumulator folding an element into the result.",
		"The function combining partial results in parallel.",
	)},

	{member("arrays", "copyof", "copyofrange"), firstThenRest("The source array.", "The length or range bound of the copy.")},
	{member("arrays", "fill"), byPosition("The array to fill.", "The value assigned to every element.")},

	{member("math", "pow"), firstThenRest("The base.", "The exponent.")},
	{member("math", "max", "min"), firstThenRest("The first argument.", "The second argument.")},

	{member("system", "arraycopy"), byPosition(
		"The source array to copy from.",
		"The start position in the source array.",
		"The destination array receiving the data.",
		"The start position in the destination array.",
		"The number of elements to copy.",
	)},

	{member("printstream", "printf"), firstThenRest("The format string.", "An argument inserted into the format pattern.")},

	{member("array", "fill"), firstThenRest("The array to fill.", "The value to assign.")},

	{both(ownedBy("list", "set", "map"), named("of")), text("An element used to create the immutable collection.")},
}

var tipRules = []rule{
	{isConstructor, text("Review how to write constructors: default values, this()/super() calls and the required statement order.")},
	{ownedBy("stringbuilder"), text("Review StringBuilder for efficient concatenation that avoids many intermediate String objects.")},
	{ownedBy("string"), text("Master the string operations and keep in mind that String is immutable in Java.")},
	{ownedBy("stream"), text("Practice Stream pipelines (map/filter/reduce) and writing clear lambdas.")},
	{ownedBy("collections", "list", "set", "queue"), text("Review the Collections Framework: the traits and complexity of each structure and when to use ArrayList, LinkedList or HashSet.")},
	{ownedBy("arrays", "array"), text("Remember that arrays have a fixed size; practice using Arrays for quick processing.")},
	{ownedBy("optional"), text("Practice avoiding null with Optional, combining map/flatMap/orElse.")},
	{ownedBy("map", "map.entry"), text("Review key/value operations on Map, handling duplicate keys and the merge/compute functions.")},
	{ownedBy("math"), text("Review the basic Math functions and the difference between int and double arithmetic.")},
	{ownedBy("printstream"), text("Practice formatting output with print/printf and managing IO streams (flush/close).")},
	{lowerPrefix("get", "is", "has"), text("Getters should not change state; practice the JavaBean conventions (get/is) and encapsulation.")},
	{lowerPrefix("set", "update"), text("Validate input before assigning properties, combining business constraints and a fluent API where useful.")},
	{lowerPrefix("add", "remove"), text("Review managing lists and sets: null checks, avoiding duplicates and returning Collections.unmodifiableList.")},
	{lowerPrefix("validate"), text("Focus on data validation techniques (Bean Validation or manual checks) and sensible error reporting.")},
	{lowerPrefix("load", "save"), text("Review I/O streams, exception handling and closing resources with try-with-resources.")},
	{lowerPrefix("process", "calculate", "compute"), text("Split the logic into clear steps and apply SOLID so it is easy to test and reuse.")},
	{named("map", "filter", "collect", "reduce"), text("Review Stream operations: when to use intermediate versus terminal operations.")},
	{func(s subject) bool { return strings.HasPrefix(s.lower, "size") || s.lower == "clear" || s.lower == "contains" },
		text("Review the Collections Framework: checking size, emptiness and searching for elements.")},
	{named("equals", "hashcode", "compareto"), text("Review the equals/hashCode/compareTo contracts and keep them consistent when overriding.")},
	{modifier("static"), text("Tell static and instance methods apart; prefer static for pure utilities or factories.")},
	{modifier("abstract"), text("Study inheritance and overriding, and how subclasses implement abstract methods.")},
	{modifier("synchronized"), text("Review synchronization, deadlock avoidance and the modern java.util.concurrent tools.")},
	{throws, text("Practice exception handling: checked versus unchecked, and when to rethrow or wrap in a RuntimeException.")},
}

var referenceRules = []rule{
	{isConstructor, text("Topics: constructors, the this/super keywords, constructor chaining.")},
	{lowerPrefix("get", "set", "is", "has"), text("Topics: JavaBeans getters and setters, encapsulation.")},
	{lowerPrefix("add", "remove"), text("Topics: the Collections Framework (List, Set, Map) and keeping data consistent.")},
	{lowerPrefix("validate"), text("Topics: Bean Validation (JSR 380), input checking, IllegalArgumentException.")},
	{lowerPrefix("load", "save"), text("Topics: Java I/O, serialization, try-with-resources, checked exceptions.")},
	{lowerPrefix("process", "calculate", "compute"), text("Topics: service layers, clean code for computations, unit testing.")},
	{named("map", "filter", "collect", "reduce"), text("Topics: the Java Stream API, functional programming, custom Collectors.")},
	{func(s subject) bool { return strings.HasPrefix(s.lower, "size") || s.lower == "clear" || s.lower == "contains" },
		text("Topics: the Collection API (List/Set/Queue) and the cost of each operation.")},
	{named("equals", "hashcode", "compareto"), text("Topics: the equals/hashCode contract, Comparable and Comparator.")},
	{named("tostring"), text("Topics: overriding toString, StringBuilder, debug-friendly output.")},
	{ownedBy("stringbuilder"), text("Topics: StringBuilder and StringBuffer, concatenation performance.")},
	{ownedBy("string"), text("Topics: the string API, immutable strings, encodings.")},
	{ownerContains("stream"), text("Topics: Stream pipelines, lazy evaluation, standard Collectors.")},
	{func(s subject) bool { return s.owner == "collections" || ownerContains("list", "set")(s) },
		text("Topics: the Collections utility class, lists, sets and sorting or searching algorithms.")},
	{ownedBy("arrays"), text("Topics: the Arrays helper class, array operations and performance.")},
	{ownedBy("optional"), text("Topics: the Optional API, avoiding NullPointerException.")},
	{ownedBy("math"), text("Topics: the Math library, numeric precision.")},
	{modifier("static"), text("Topics: the static keyword, factory methods, utility classes.")},
	{modifier("abstract"), text("Topics: abstract classes, interfaces, advanced object-oriented design.")},
	{throws, text("Topics: exception handling, throws versus throw, custom exception design.")},
	{modifier("synchronized"), text("Topics: synchronization, monitor locks, java.util.concurrent.")},
}
