package trace

import (
	"errors"
	"testing"

	"github.com/npillmayer/pda"
	"github.com/npillmayer/pda/lr"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCopiesStacks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	g := lr.MustParseGrammar("G", "S → a")
	S, a := g.Start(), lr.Terminal('a')
	input := pda.TokensFromString("a#")
	rec := NewRecorder(g)
	stack := []lr.Symbol{lr.EndMarker, S}
	rec.Record(stack, nil, input, Action{Kind: Expand, Production: g.Production(0)})
	stack[1] = a
	rec.Record(stack, nil, input, Action{Kind: Match, Symbol: a})
	steps := rec.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, S, steps[0].Symbols[1])
	assert.Equal(t, 1, steps[0].Index)
	assert.Equal(t, 2, steps[1].Index)
	assert.Nil(t, steps[0].States)
	steps[0].Index = 99
	assert.Equal(t, 1, rec.Steps()[0].Index)
	assert.Equal(t, []string{"1", "", "# S", "a #", "S → a"}, steps[0].Columns(g))
}

func TestResultCounts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	rec := NewRecorder(nil)
	input := pda.TokensFromString("ab#")
	rec.Record([]lr.Symbol{lr.EndMarker}, []int{0}, input, Action{Kind: Shift, State: 1, Symbol: lr.Terminal('a')})
	rec.Record([]lr.Symbol{lr.EndMarker, lr.Terminal('a')}, []int{0, 1}, input[1:], Action{Kind: Shift, State: 2, Symbol: lr.Terminal('b')})
	rec.Record([]lr.Symbol{lr.EndMarker}, []int{0}, input[2:], Action{Kind: Accept})
	r := rec.Result(true, nil)
	assert.Equal(t, 2, r.Count(Shift))
	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, Accept, last.Action.Kind)
	assert.Nil(t, r.AsError())
	assert.Equal(t, "0 1", r.Rows()[1][1])
	assert.Equal(t, "shift b, goto 2", r.Rows()[1][4])
}

func TestParseErrorMatchesSentinel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	err := error(&ParseError{Kind: NoProductionForPair, NonTerminal: lr.NonTerminal(0), Found: lr.EndMarker, State: -1})
	assert.True(t, errors.Is(err, ErrNoProductionForPair))
	assert.False(t, errors.Is(err, ErrUnexpectedSymbol))
	assert.Equal(t, "no production for pair (N0, #) at position 0", err.Error())
	err = &ParseError{Kind: UnexpectedSymbol, Found: lr.Terminal('+'), State: 6,
		ExpectedSet: []lr.Symbol{lr.Terminal('('), lr.Terminal('i')}, Position: 2}
	assert.Equal(t, "unexpected symbol + in state 6, expected one of {( i} at position 2", err.Error())
	err = &ParseError{Kind: NoProgress, NonTerminal: lr.NonTerminal(0), Found: lr.Terminal('i'), State: -1}
	assert.True(t, errors.Is(err, ErrNoProgress))
	assert.Equal(t, "no progress on input, N0 expands to itself on i at position 0", err.Error())
	err = &ParseError{Kind: NoProgress, Found: lr.EndMarker, State: 1, Position: 1}
	assert.Equal(t, "no progress on input in state 1, reductions on # repeat at position 1", err.Error())
	err = &ParseError{Kind: InvalidAction, Found: lr.Terminal('x'), State: 0}
	assert.True(t, errors.Is(err, ErrInvalidAction))
	assert.Equal(t, "invalid table entry for state 0 and x at position 0", err.Error())
}
