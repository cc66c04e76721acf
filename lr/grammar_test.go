package lr

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("A").T("a", 'a').End()
	b.LHS("A").N("B").N("D").End()
	b.LHS("B").T("b", 'b').End()
	b.LHS("B").Epsilon()
	b.LHS("D").T("d", 'd').End()
	b.LHS("D").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	g.Dump()
	assert.Equal(t, 6, g.Size())
	assert.Equal(t, "S", g.SymbolName(g.Start()))
	assert.Len(t, g.NonTerminals(), 4)
	assert.Len(t, g.Terminals(), 3)
	assert.True(t, g.Production(3).IsEpsilon())
	assert.Equal(t, 0, g.Production(3).Len())
	assert.Equal(t, "B → ε", g.ProductionString(g.Production(3)))
	assert.Equal(t, "S → A a", g.ProductionString(g.Production(0)))
	B, ok := g.SymbolByName("B")
	assert.True(t, ok)
	assert.Len(t, g.ProductionsFor(B), 2)
}

func TestGrammarIsImmutable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	g := MustParseGrammar("G", "S → a S | b")
	body := g.Production(0).Body()
	body[0] = EndMarker
	assert.Equal(t, Terminal('a'), g.Production(0).Body()[0])
	prods := g.Productions()
	prods[0] = nil
	assert.NotNil(t, g.Production(0))
	for i, p := range g.Productions() {
		assert.Equal(t, i, p.Serial())
	}
	assert.Equal(t, -1, NewProduction(NonTerminal(0)).Serial())
}

func TestGrammarConstructionErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	S, A := NonTerminal(0), NonTerminal(1)
	a, b := Terminal('a'), Terminal('b')
	tests := []struct {
		name    string
		prods   []*Production
		terms   []Symbol
		nts     []Symbol
		start   Symbol
		problem error
	}{
		{"no productions", nil, []Symbol{a}, []Symbol{S}, S, ErrNoProductions},
		{"undeclared terminal", []*Production{NewProduction(S, a, b)}, []Symbol{a}, []Symbol{S}, S, ErrUndeclaredSymbol},
		{"undeclared non-terminal", []*Production{NewProduction(S, A)}, []Symbol{a}, []Symbol{S}, S, ErrUndeclaredSymbol},
		{"undeclared start", []*Production{NewProduction(S, a)}, []Symbol{a}, []Symbol{S}, A, ErrUndeclaredStart},
		{"end marker in body", []*Production{NewProduction(S, a, EndMarker)}, []Symbol{a}, []Symbol{S}, S, ErrEndMarkerInBody},
		{"mixed epsilon", []*Production{NewProduction(S, a, Epsilon)}, []Symbol{a}, []Symbol{S}, S, ErrMisplacedEpsilon},
		{"wrong kind", []*Production{NewProduction(S, a)}, []Symbol{a, S}, []Symbol{S}, S, ErrWrongSymbolKind},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g, err := NewGrammar(test.prods, test.terms, test.nts, test.start)
			assert.Nil(t, g)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrGrammarConstruction))
			assert.True(t, errors.Is(err, test.problem), "expected %v, got %v", test.problem, err)
		})
	}
}

func TestGrammarConstructionCollectsAllProblems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	S := NonTerminal(0)
	prods := []*Production{
		NewProduction(S, Terminal('x')),
		NewProduction(S, EndMarker),
	}
	_, err := NewGrammar(prods, nil, []Symbol{S}, S)
	var cerr *ConstructionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 2, cerr.Problems.Len())
}

func TestBuilderConflictingSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").T("a", 1).T("a", 2).End()
	_, err := b.Grammar()
	assert.True(t, errors.Is(err, ErrConflictingSymbol))
}

func TestParseGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	g, err := ParseGrammar("LL1", `
		// expression grammar without left recursion
		E → TG
		G → +TG | -TG | ε
		T → FS
		S -> *FS | /FS |
		F → (E) | i
	`)
	require.NoError(t, err)
	assert.Equal(t, 10, g.Size())
	assert.Equal(t, "E", g.SymbolName(g.Start()))
	assert.Len(t, g.NonTerminals(), 5)
	assert.Len(t, g.Terminals(), 7)
	i, ok := g.SymbolByName("i")
	require.True(t, ok)
	assert.Equal(t, Terminal('i'), i)
	assert.True(t, g.Production(9).Body()[0] == i)
	assert.True(t, g.Production(7).IsEpsilon())
}

func TestParseGrammarWithNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	g, err := ParseGrammar("Stmt", `
		Stmt → if Cond then Stmt | id
		Cond → id
	`)
	require.NoError(t, err)
	ifSym, ok := g.SymbolByName("if")
	require.True(t, ok)
	assert.True(t, ifSym.IsTerminal())
	assert.Equal(t, int(firstNamedTerminal), ifSym.Code)
	then, _ := g.SymbolByName("then")
	assert.Equal(t, int(firstNamedTerminal)+1, then.Code)
	assert.Len(t, g.Terminals(), 3) // if, then, id
	assert.Equal(t, "Stmt → if Cond then Stmt", g.ProductionString(g.Production(0)))
}

func TestParseGrammarErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	for _, text := range []string{
		"E = T",
		"E → T#",
		"",
	} {
		_, err := ParseGrammar("bad", text)
		assert.True(t, errors.Is(err, ErrGrammarConstruction), "text %q", text)
	}
}
