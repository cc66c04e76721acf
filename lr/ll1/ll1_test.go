package ll1

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/pda"
	"github.com/npillmayer/pda/lr"
	"github.com/npillmayer/pda/lr/scanner"
	"github.com/npillmayer/pda/lr/trace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprGrammar = `
	E → TG
	G → +TG | -TG | ε
	T → FS
	S → *FS | /FS | ε
	F → (E) | i
`

func makeTable(t *testing.T, text string) (*Table, ConflictReport) {
	g, err := lr.ParseGrammar("G", text)
	require.NoError(t, err)
	return BuildFromAnalysis(lr.Analyze(g))
}

func TestExpressionGrammarIsLL1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	table, conflicts := makeTable(t, exprGrammar)
	assert.True(t, conflicts.IsLL1(), conflicts.Format(table.Grammar()))
	t.Logf("\n%s", table)
	g := table.Grammar()
	G, _ := g.SymbolByName("G")
	p, ok := table.Lookup(G, lr.EndMarker)
	require.True(t, ok)
	assert.True(t, p.IsEpsilon())
	p, ok = table.Lookup(G, lr.Terminal('-'))
	require.True(t, ok)
	assert.Equal(t, "G → - T G", g.ProductionString(p))
	_, ok = table.Lookup(G, lr.Terminal('i'))
	assert.False(t, ok)
	assert.Equal(t, []lr.Symbol{lr.Terminal(')'), lr.Terminal('+'), lr.Terminal('-'), lr.EndMarker},
		table.Lookaheads(G))
	// E:2, G:4, T:2, S:6, F:2
	assert.Equal(t, 16, table.Size())
	assert.Len(t, table.Entries(), 16)
}

func TestConflictDetection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	table, conflicts := makeTable(t, `
		S → a b | a c | B
		B → b | ε
	`)
	g := table.Grammar()
	require.False(t, conflicts.IsLL1())
	t.Logf("\n%s", conflicts.Format(g))
	c := conflicts[0]
	S, _ := g.SymbolByName("S")
	a, _ := g.SymbolByName("a")
	assert.Equal(t, S, c.NonTerminal)
	assert.Equal(t, a, c.Lookahead)
	assert.Equal(t, 0, c.Existing.Serial()) // first one wins
	assert.Equal(t, 1, c.Rejected.Serial())
	p, ok := table.Lookup(S, a)
	require.True(t, ok)
	assert.Equal(t, 0, p.Serial())
}

func TestConflictOnFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	// dangling else: FIRST(eS) and FOLLOW(R) overlap on e
	table, conflicts := makeTable(t, `
		S → iSR | a
		R → eS | ε
	`)
	require.Len(t, conflicts, 1)
	g := table.Grammar()
	assert.Equal(t, "R", g.SymbolName(conflicts[0].NonTerminal))
	assert.Equal(t, "e", g.SymbolName(conflicts[0].Lookahead))
	assert.Equal(t, "R → e S", g.ProductionString(conflicts[0].Existing))
}

func TestBuildStrict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	g := lr.MustParseGrammar("G", "S → ab | ac")
	_, err := BuildStrict(lr.Analyze(g))
	assert.True(t, errors.Is(err, ErrNotLL1))
	var cerr *ConflictError
	require.True(t, errors.As(err, &cerr))
	assert.Len(t, cerr.Conflicts, 1)
	_, err = BuildStrict(lr.Analyze(lr.MustParseGrammar("G", exprGrammar)))
	assert.NoError(t, err)
}

func TestAcceptExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	table, _ := makeTable(t, exprGrammar)
	p := NewParser(table)
	result := p.Parse(pda.TokensFromString("i+i*i#"))
	t.Logf("\n%s", result)
	require.True(t, result.Accepted, result.String())
	assert.Nil(t, result.Err)
	last, _ := result.Last()
	assert.Equal(t, trace.Accept, last.Action.Kind)
	assert.Equal(t, 5, result.Count(trace.Match))
	first := result.Trace[0]
	assert.Equal(t, []string{"1", "", "# E", "i + i * i #", "E → T G"}, first.Columns(table.Grammar()))
}

func TestRejectMissingOperand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	table, _ := makeTable(t, exprGrammar)
	g := table.Grammar()
	result := NewParser(table).Parse(pda.TokensFromString("i+#"))
	require.False(t, result.Accepted)
	require.NotNil(t, result.Err)
	assert.True(t, errors.Is(result.AsError(), trace.ErrNoProductionForPair))
	// T is not nullable and FIRST(T) = {( i}, so the pair (T, #) is the first one missing
	assert.Equal(t, "T", g.SymbolName(result.Err.NonTerminal))
	assert.Equal(t, lr.EndMarker, result.Err.Found)
	assert.Equal(t, 2, result.Err.Position)
	last, _ := result.Last()
	assert.Equal(t, trace.Fail, last.Action.Kind)
	assert.Equal(t, "T", g.SymbolName(last.Symbols[len(last.Symbols)-1]))
	assert.Equal(t, "no production for pair (T, #) at position 2", result.Err.Error())
}

func TestLeftRecursionStops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	table, conflicts := makeTable(t, "E → E+i | i")
	require.Len(t, conflicts, 1) // E → E+i wins for (E, i)
	g := table.Grammar()
	result := NewParser(table).Parse(pda.TokensFromString("i+i#"))
	require.False(t, result.Accepted)
	assert.True(t, errors.Is(result.AsError(), trace.ErrNoProgress))
	assert.Equal(t, "E", g.SymbolName(result.Err.NonTerminal))
	assert.Equal(t, lr.Terminal('i'), result.Err.Found)
	assert.Equal(t, 0, result.Err.Position)
	require.Len(t, result.Trace, 2)
	assert.Equal(t, trace.Expand, result.Trace[0].Action.Kind)
	assert.Equal(t, "# i + E", g.SymbolsString(result.Trace[1].Symbols))
	//
	// indirect: A → B a → A b a → …
	table, _ = makeTable(t, `
		A → Ba | a
		B → Ab | b
	`)
	result = NewParser(table).Parse(pda.TokensFromString("a#"))
	require.False(t, result.Accepted)
	assert.True(t, errors.Is(result.AsError(), trace.ErrNoProgress))
	assert.Equal(t, "A", table.Grammar().SymbolName(result.Err.NonTerminal))
}

func TestRepeatedEpsilonExpansion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	// A is expanded twice before c is matched, without any cycle
	table, conflicts := makeTable(t, `
		S → AAc
		A → a | ε
	`)
	assert.NotEmpty(t, conflicts)
	p := NewParser(table)
	for _, input := range []string{"c#", "ac#"} {
		result := p.Parse(pda.TokensFromString(input))
		assert.True(t, result.Accepted, "input %q: %v", input, result.AsError())
	}
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	table, _ := makeTable(t, exprGrammar)
	p := NewParser(table)
	tests := []struct {
		input string
		err   error
		pos   int
	}{
		{"(i#", trace.ErrUnexpectedSymbol, 2},
		{"i+i", trace.ErrPrematureEndOfInput, 3},
		{"", trace.ErrPrematureEndOfInput, 0},
		{"i#i#", trace.ErrTrailingInput, 2},
		{"i)#", trace.ErrUnexpectedSymbol, 1},
	}
	for _, test := range tests {
		result := p.Parse(pda.TokensFromString(test.input))
		assert.False(t, result.Accepted, "input %q", test.input)
		assert.True(t, errors.Is(result.AsError(), test.err), "input %q: %v", test.input, result.AsError())
		assert.Equal(t, test.pos, result.Err.Position, "input %q", test.input)
	}
}

func TestErrorTokenIsNotDropped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	table, _ := makeTable(t, exprGrammar)
	tokens := pda.TokensFromString("i+i#")
	tokens[1] = pda.MakeToken(pda.ErrorToken, "@", pda.Span{1, 2})
	result := NewParser(table).Parse(tokens)
	assert.False(t, result.Accepted)
	assert.Equal(t, 1, result.Err.Position)
	assert.Equal(t, "@", result.Err.Token.Lexeme())
}

func TestParseStream(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	table, _ := makeTable(t, exprGrammar)
	classify := func(tok rune, lexeme string) pda.TokType {
		switch tok {
		case scanner.Ident, scanner.Int:
			return 'i'
		case scanner.EndMarker:
			return pda.EOF
		}
		return pda.TokType(tok)
	}
	tok := scanner.GoTokenizer("input", strings.NewReader("(a + 12) * b"), scanner.WithClassifier(classify))
	result := NewParser(table).ParseStream(tok)
	assert.True(t, result.Accepted, result.String())
}

func TestTracesAreDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	table, _ := makeTable(t, exprGrammar)
	p := NewParser(table)
	for _, input := range []string{"i+i*i#", "(i-i)/i#", "i+#"} {
		r1 := p.Parse(pda.TokensFromString(input))
		r2 := p.Parse(pda.TokensFromString(input))
		if diff := cmp.Diff(r1.Rows(), r2.Rows()); diff != "" {
			t.Errorf("traces for %q differ: %s", input, diff)
		}
		assert.Equal(t, r1.String(), r2.String())
	}
}

func TestConcurrentParses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.lr")
	defer teardown()
	//
	table, _ := makeTable(t, exprGrammar)
	p := NewParser(table)
	expected := p.Parse(pda.TokensFromString("(i+i)*i-i#")).String()
	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Parse(pda.TokensFromString("(i+i)*i-i#")).String()
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, expected, r)
	}
}
