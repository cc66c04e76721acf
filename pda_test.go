package pda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan(t *testing.T) {
	s := Span{3, 7}
	assert.Equal(t, uint64(4), s.Len())
	assert.False(t, s.IsNull())
	assert.True(t, Span{}.IsNull())
	assert.Equal(t, Span{1, 7}, s.Extend(Span{1, 2}))
	assert.Equal(t, Span{3, 9}, s.Extend(Span{5, 9}))
	assert.Equal(t, "(3…7)", s.String())
}

func TestTokensFromString(t *testing.T) {
	tokens := TokensFromString("i+i#")
	assert.Len(t, tokens, 4)
	assert.Equal(t, TokType('i'), tokens[0].TokType())
	assert.Equal(t, TokType('+'), tokens[1].TokType())
	assert.Equal(t, EOF, tokens[3].TokType())
	assert.Equal(t, "#", tokens[3].Lexeme())
	assert.Equal(t, Span{2, 3}, tokens[2].Span())
	assert.Nil(t, tokens[0].Value())
	assert.Empty(t, TokensFromString(""))
}
