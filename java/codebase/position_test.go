package codebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestOffsetOf(t *testing.T) {
	text := "ab\nSén 😀x\nlast"

	tests := []struct {
		name string
		pos  protocol.Position
		want int
	}{
		{name: "start", pos: protocol.Position{Line: 0, Character: 0}, want: 0},
		{name: "first line", pos: protocol.Position{Line: 0, Character: 1}, want: 1},
		{name: "past line end", pos: protocol.Position{Line: 0, Character: 9}, want: 2},
		{name: "two byte rune", pos: protocol.Position{Line: 1, Character: 2}, want: 6},
		{name: "surrogate pair", pos: protocol.Position{Line: 1, Character: 6}, want: 12},
		{name: "last line", pos: protocol.Position{Line: 2, Character: 4}, want: len(text)},
		{name: "past end", pos: protocol.Position{Line: 7, Character: 0}, want: len(text)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OffsetOf(text, tt.pos))
		})
	}
}

func TestPositionOfRoundTrip(t *testing.T) {
	text := "ab\nSén 😀x\nlast"
	for _, offset := range []int{0, 1, 3, 6, 12, len(text)} {
		assert.Equal(t, offset, OffsetOf(text, PositionOf(text, offset)), "offset %d", offset)
	}
	assert.Equal(t, protocol.Position{Line: 1, Character: 6}, PositionOf(text, 12))
}

func TestLineColumnOffset(t *testing.T) {
	text := "class A {\n    void a() {}\n}\n"

	offset, err := LineColumnOffset(text, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, "a() {}", text[offset:offset+6])

	_, err = LineColumnOffset(text, 0, 1)
	assert.Error(t, err)
	_, err = LineColumnOffset(text, 9, 1)
	assert.Error(t, err)
	_, err = LineColumnOffset(text, 1, 40)
	assert.Error(t, err)
}
