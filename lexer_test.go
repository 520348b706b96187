package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_lexer_tokens(t *testing.T) {
	for _, tc := range []struct {
		name string
		line string
		want []token
	}{
		{"empty", "", nil},
		{"spaces only", "   ", []token{{text: "", start: 3}}},
		{"one", "dup", []token{{text: "dup", start: 0}}},
		{"two", "1 +", []token{
			{text: "1", start: 0},
			{text: "+", start: 2},
		}},
		{"leading and runs of spaces", "  a   bb c", []token{
			{text: "a", start: 2},
			{text: "bb", start: 6},
			{text: "c", start: 9},
		}},
		{"punctuation is opaque", `: x ( y ) " z ;`, []token{
			{text: ":", start: 0},
			{text: "x", start: 2},
			{text: "(", start: 4},
			{text: "y", start: 6},
			{text: ")", start: 8},
			{text: `"`, start: 10},
			{text: "z", start: 12},
			{text: ";", start: 14},
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lx := lexer{line: tc.line}
			var got []token
			for lx.rest() {
				tok := lx.next()
				lx.take()
				got = append(got, tok)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func Test_lexer_peek(t *testing.T) {
	lx := lexer{line: "a b"}

	tok := lx.next()
	require.Equal(t, "a", tok.text)

	// an unhandled token is re-returned
	tok = lx.next()
	assert.Equal(t, "a", tok.text)

	lx.take()
	tok = lx.next()
	assert.Equal(t, "b", tok.text)
	assert.Equal(t, 2, tok.start)
	assert.Equal(t, 3, tok.end())

	lx.take()
	tok = lx.next()
	assert.Equal(t, "", tok.text)
}
