package ll1

import (
	"github.com/npillmayer/pda"
	"github.com/npillmayer/pda/lr"
	"github.com/npillmayer/pda/lr/scanner"
	"github.com/npillmayer/pda/lr/trace"
)

// Parser is a predictive parser. Create one with NewParser.
// A parser holds no state between calls of Parse; it may be used by
// multiple goroutines concurrently.
type Parser struct {
	g     *lr.Grammar
	table *Table
}

// NewParser creates a predictive parser driven by an LL(1) table.
func NewParser(table *Table) *Parser {
	return &Parser{g: table.Grammar(), table: table}
}

// ParseStream reads all tokens from a tokenizer, up to and including EOF,
// and parses them.
func (p *Parser) ParseStream(scan scanner.Tokenizer) *trace.Result {
	return p.Parse(scanner.Collect(scan))
}

// Parse runs the predictive parser on a sequence of tokens. Input is expected
// to end with a token of type EOF. The parser starts with stack
//
//    # S
//
// (S being the start symbol) and in each step either matches the terminal on
// top of the stack with the current input token, or replaces the non-terminal
// on top of the stack by the body of the production found in the parse table.
// The input is accepted if the stack holds nothing but the end marker and the
// current token is EOF.
//
// Every step is recorded in the trace of the result before it is carried out,
// including a failing step.
//
// Tables of grammars which are not LL(1) may drive the parser into endless
// expansions, e.g. for left recursion. If a non-terminal is expanded a second
// time before the next match, while nothing below its first expansion has been
// popped off the stack, the parser would repeat itself forever; it stops with
// an error of kind NoProgress.
func (p *Parser) Parse(tokens []pda.Token) *trace.Result {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	tokens = append([]pda.Token(nil), tokens...)
	rec := trace.NewRecorder(p.g)
	stack := make([]lr.Symbol, 0, 64)
	stack = append(stack, lr.EndMarker, p.g.Start())
	pos := 0
	// expanded holds, for non-terminals expanded since the last match, the
	// height of the stack at the time of expansion
	expanded := make(map[lr.Symbol]int)
	// fail records the failing step for the current configuration; the error
	// refers to the token at position at.
	fail := func(err *trace.ParseError, at int) *trace.Result {
		err.Position, err.State, err.Grammar = at, -1, p.g
		if at < len(tokens) {
			err.Token = tokens[at]
		}
		rec.Record(stack, nil, rest(tokens, pos), trace.Action{Kind: trace.Fail, Err: err})
		tracer().Errorf("%v", err)
		return rec.Result(false, err)
	}
	for {
		top := stack[len(stack)-1]
		if pos >= len(tokens) {
			return fail(&trace.ParseError{Kind: trace.PrematureEndOfInput, Expected: top}, pos)
		}
		cur := lr.SymbolFor(tokens[pos].TokType())
		if len(stack) == 1 && top == lr.EndMarker && cur == lr.EndMarker {
			if pos+1 < len(tokens) {
				return fail(&trace.ParseError{Kind: trace.TrailingInput,
					Found: lr.SymbolFor(tokens[pos+1].TokType())}, pos+1)
			}
			rec.Record(stack, nil, rest(tokens, pos), trace.Action{Kind: trace.Accept})
			tracer().Infof("input accepted after %d steps", rec.Len())
			return rec.Result(true, nil)
		}
		if top.IsNonTerminal() {
			prod, ok := p.table.Lookup(top, cur)
			if !ok {
				return fail(&trace.ParseError{Kind: trace.NoProductionForPair, NonTerminal: top, Found: cur}, pos)
			}
			h := len(stack)
			if at, ok := expanded[top]; ok && h >= at {
				return fail(&trace.ParseError{Kind: trace.NoProgress, NonTerminal: top, Found: cur}, pos)
			}
			for N, at := range expanded {
				if at > h { // popped below N's expansion
					delete(expanded, N)
				}
			}
			expanded[top] = h
			rec.Record(stack, nil, rest(tokens, pos), trace.Action{Kind: trace.Expand, Production: prod})
			stack = stack[:len(stack)-1]
			if !prod.IsEpsilon() {
				body := prod.Body()
				for i := len(body) - 1; i >= 0; i-- {
					stack = append(stack, body[i])
				}
			}
			continue
		}
		if top != cur {
			return fail(&trace.ParseError{Kind: trace.UnexpectedSymbol, Expected: top, Found: cur}, pos)
		}
		rec.Record(stack, nil, rest(tokens, pos), trace.Action{Kind: trace.Match, Symbol: cur})
		stack = stack[:len(stack)-1]
		pos++
		clear(expanded)
	}
}

func rest(tokens []pda.Token, pos int) []pda.Token {
	if pos >= len(tokens) {
		return nil
	}
	return tokens[pos:]
}
