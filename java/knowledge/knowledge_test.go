package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalOwner(t *testing.T) {
	kb := Default()
	tests := map[string]string{
		"":                   "",
		"ArrayList":          "list",
		"HashMap<K, V>":      "map",
		" ConcurrentHashMap": "map",
		"Entry":              "map.entry",
		"Map.Entry":          "map.entry",
		"String[]":           "string",
		"int[][]":            "int",
		"StringBuffer":       "stringbuilder",
		"PrintWriter":        "printstream",
		"BufferedReader":     "reader",
		"IntStream":          "stream",
		"getItems()":         "getitems",
		"Inventory":          "inventory",
	}
	for in, want := range tests {
		assert.Equal(t, want, kb.CanonicalOwner(in), "CanonicalOwner(%q)", in)
	}
}

func TestLookup(t *testing.T) {
	kb := Default()

	text, ok := kb.Lookup("list", "add")
	require.True(t, ok)
	assert.Equal(t, "Appends an element to the end of the list, or inserts it at an index.", text)

	aliased, ok := kb.Lookup("ArrayList<Integer>", "ADD")
	require.True(t, ok)
	assert.Equal(t, text, aliased)

	_, ok = kb.Lookup("list", "frobnicate")
	assert.False(t, ok)
	_, ok = kb.Lookup("Inventory", "add")
	assert.False(t, ok)
}

func TestSummary(t *testing.T) {
	kb := Default()
	tests := []struct {
		name   string
		owner  string
		method string
		arity  int
		want   string
		found  bool
	}{
		{
			name: "exact", owner: "HashMap", method: "put", arity: 2,
			want: "Associates a value with a key, replacing any previous value.", found: true,
		},
		{
			name: "unknown owner text sequence", owner: "label", method: "charAt", arity: 1,
			want: "Returns the character at the given index.", found: true,
		},
		{
			name: "text sequence falls through to string", owner: "", method: "toUpperCase", arity: 0,
			want: "Returns a copy of the string in upper case.", found: true,
		},
		{
			name: "known owner skips text sequence", owner: "Thread", method: "contains", arity: 1,
			want: "Checks whether a matching element or key exists.", found: true,
		},
		{
			name: "length on unknown owner", owner: "values", method: "length", arity: 0,
			want: "Returns the number of characters in the sequence.", found: true,
		},
		{
			name: "length on known owner without entry", owner: "Thread", method: "length", arity: 0,
			want: "A field holding the number of elements in the array.", found: true,
		},
		{
			name: "alias exact", owner: "Vector", method: "get", arity: 1,
			want: "Returns the element at the given index.", found: true,
		},
		{
			name: "queue family", owner: "PriorityQueue", method: "contains", arity: 1,
			want: "Checks whether the collection contains the given element.", found: true,
		},
		{
			name: "any owner arity mismatch", owner: "Inventory", method: "clone", arity: 1,
			found: false,
		},
		{
			name: "any owner", owner: "Inventory", method: "put", arity: 2,
			want: "Adds or updates a key and value pair in the map.", found: true,
		},
		{
			name: "print stream on bare out", owner: "out", method: "println", arity: 1,
			want: "Prints a string or value to the standard stream followed by a newline.", found: true,
		},
		{
			name: "nothing", owner: "Inventory", method: "doCustomBusinessLogic", arity: 1,
			found: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := kb.Summary(tt.owner, tt.method, tt.arity)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsKnownOwner(t *testing.T) {
	kb := Default()
	assert.True(t, kb.IsKnownOwner("ArrayList"))
	assert.True(t, kb.IsKnownOwner("Exception"))
	assert.True(t, kb.IsKnownOwner("Runnable"))
	assert.False(t, kb.IsKnownOwner("Stack"), "stack has an alias but no entries")
	assert.False(t, kb.IsKnownOwner("Animal"))
	assert.False(t, kb.IsKnownOwner(""))
}

func TestParse(t *testing.T) {
	kb, err := Parse([]byte(`
aliases:
  Widget: gadget
owners:
  Gadget:
    Spin: "Spins the gadget."
families:
  - methods:
      stop/0: "Stops."
`))
	require.NoError(t, err)

	text, ok := kb.Lookup("Widget", "spin")
	require.True(t, ok)
	assert.Equal(t, "Spins the gadget.", text)

	text, ok = kb.Summary("anything", "STOP", 0)
	require.True(t, ok)
	assert.Equal(t, "Stops.", text)

	_, ok = kb.Summary("anything", "stop", 1)
	assert.False(t, ok)

	_, err = Parse([]byte("owners: [unclosed"))
	assert.Error(t, err)

	_, err = Parse([]byte("families:\n  - owners: [x]\n"))
	assert.Error(t, err)
}
