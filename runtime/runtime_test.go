package runtime

import (
	"errors"
	"testing"

	"github.com/npillmayer/pda"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryOrderAndDedup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.runtime")
	defer teardown()
	//
	reg := NewRegistry("ids")
	for i, name := range []string{"alpha", "beta", "alpha", "gamma", "beta"} {
		index, isNew := reg.Register(name)
		switch i {
		case 0, 1, 3:
			assert.True(t, isNew, "%s should be new", name)
		default:
			assert.False(t, isNew, "%s should be known", name)
		}
		t.Logf("%s → %d", name, index)
	}
	assert.Equal(t, 3, reg.Len())
	lexemes := []string{}
	for i, e := range reg.Entries() {
		assert.Equal(t, i, e.Index)
		lexemes = append(lexemes, e.Lexeme)
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, lexemes)
	index, ok := reg.Lookup("gamma")
	assert.True(t, ok)
	assert.Equal(t, 2, index)
	_, ok = reg.Lookup("delta")
	assert.False(t, ok)
	e, ok := reg.At(1)
	require.True(t, ok)
	assert.Equal(t, "beta", e.Lexeme)
	_, ok = reg.At(3)
	assert.False(t, ok)
	assert.Equal(t, "ids{<0:alpha> <1:beta> <2:gamma>}", reg.String())
}

func TestRegistryEmptyLexeme(t *testing.T) {
	reg := NewRegistry("ids")
	index, isNew := reg.Register("")
	assert.Equal(t, -1, index)
	assert.False(t, isNew)
	assert.Equal(t, 0, reg.Len())
}

func TestRegisterValue(t *testing.T) {
	reg := NewRegistry("constants")
	reg.RegisterValue("1", 1.0)
	reg.RegisterValue("1", 2.0)
	e, _ := reg.At(0)
	assert.Equal(t, 1.0, e.Value)
}

func TestSessionTokenize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.runtime")
	defer teardown()
	//
	s, err := NewSession("test")
	require.NoError(t, err)
	tokens, err := s.Tokenize("a + 12*(b - a) / 3.5 #")
	require.NoError(t, err)
	types := make([]pda.TokType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.TokType()
	}
	assert.Equal(t, []pda.TokType{'i', '+', 'i', '*', '(', 'i', '-', 'i', ')', '/', 'i', pda.EOF}, types)
	assert.Equal(t, 0, tokens[0].Value())
	assert.Equal(t, 0, tokens[7].Value()) // second 'a'
	assert.Equal(t, 1, tokens[5].Value())
	assert.Equal(t, 1, tokens[10].Value())
	assert.Equal(t, "12", tokens[2].Lexeme())
	assert.Equal(t, pda.Span{4, 6}, tokens[2].Span())
	assert.Equal(t, 2, s.Identifiers.Len())
	c, _ := s.Constants.At(1)
	assert.Equal(t, 3.5, c.Value)
}

func TestSessionsAreIndependent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.runtime")
	defer teardown()
	//
	s1, err := NewSession("one")
	require.NoError(t, err)
	s2, err := NewSession("two")
	require.NoError(t, err)
	_, err = s1.Tokenize("x + y")
	require.NoError(t, err)
	tokens, err := s2.Tokenize("y")
	require.NoError(t, err)
	assert.Equal(t, 2, s1.Identifiers.Len())
	assert.Equal(t, 1, s2.Identifiers.Len())
	assert.Equal(t, 0, tokens[0].Value()) // y is the first identifier of session two
	assert.Equal(t, pda.EOF, tokens[len(tokens)-1].TokType())
}

func TestSessionErrorTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.runtime")
	defer teardown()
	//
	s, err := NewSession("errors")
	require.NoError(t, err)
	tokens, err := s.Tokenize("a ? b#")
	assert.Error(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, pda.ErrorToken, tokens[1].TokType())
	assert.Equal(t, "?", tokens[1].Lexeme())
	assert.Equal(t, pda.EOF, tokens[3].TokType())
}

func TestSetValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.runtime")
	defer teardown()
	//
	reg := NewRegistry("ids")
	reg.Register("a")
	index, isNew := reg.SetValue("a", 1.5)
	assert.Equal(t, 0, index)
	assert.False(t, isNew)
	index, isNew = reg.SetValue("b", 2.0)
	assert.Equal(t, 1, index)
	assert.True(t, isNew)
	reg.SetValue("a", 3.0)
	e, _ := reg.At(0)
	assert.Equal(t, 3.0, e.Value)
	_, isNew = reg.SetValue("", 1.0)
	assert.False(t, isNew)
	assert.Equal(t, 2, reg.Len())
}

func TestSessionResolve(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.runtime")
	defer teardown()
	//
	session, err := NewSession("test")
	require.NoError(t, err)
	tokens, err := session.Tokenize("x * 2.5 + y#")
	require.NoError(t, err)
	session.Bind("x", 4)
	v, err := session.Resolve(tokens[0])
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
	v, err = session.Resolve(tokens[2])
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)
	_, err = session.Resolve(tokens[4])
	assert.True(t, errors.Is(err, ErrUnbound))
	assert.EqualError(t, err, "unbound identifier: y")
	x, _ := session.Identifiers.Lookup("x")
	assert.Equal(t, 0, x) // binding keeps the index handed out by the lexer
}
