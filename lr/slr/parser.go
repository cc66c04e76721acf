package slr

import (
	"fmt"

	"github.com/npillmayer/pda"
	"github.com/npillmayer/pda/lr"
	"github.com/npillmayer/pda/lr/scanner"
	"github.com/npillmayer/pda/lr/trace"
)

// Parser is a shift-reduce parser type. Create and initialize one with
// slr.NewParser(...). A parser holds no state between calls of Parse; it may be
// used by multiple goroutines concurrently.
type Parser struct {
	g      *lr.Grammar
	tables *Tables
}

// NewParser creates a shift-reduce parser for a set of tables. The tables are
// validated first, see Tables.Validate.
func NewParser(tables *Tables) (*Parser, error) {
	if err := tables.Validate(); err != nil {
		tracer().Errorf("cannot create parser: %v", err)
		return nil, err
	}
	return &Parser{g: tables.Grammar, tables: tables}, nil
}

// Tables returns the tables this parser is driven by.
func (p *Parser) Tables() *Tables {
	return p.tables
}

// ParseStream reads all tokens from a tokenizer, up to and including EOF,
// and parses them.
func (p *Parser) ParseStream(scan scanner.Tokenizer) *trace.Result {
	return p.Parse(scanner.Collect(scan))
}

// Parse runs the parser on a sequence of tokens. Input is expected to end with
// a token of type EOF. The parser starts with state stack [0] and symbol stack
// [#]. In each step it looks up the action for the state on top of the stack
// and the current input token:
//
//    shift s'    push the token's terminal and s', advance the input
//    reduce p    pop |body(p)| entries, push head(p) and GOTO[s, head(p)]
//                with s being the then uncovered state
//    accept      done, the input is valid
//
// An empty ACTION cell or an empty GOTO cell is a parse error.
// Tables which passed validation may still contain a cycle of reductions, which
// would never consume input. The parser stops with an error of kind NoProgress
// as soon as such a cycle shows, see type progress.
// Every step is recorded in the trace of the result before it is carried out,
// including a failing step.
//
// See http://www.cse.unt.edu/~sweany/CSCE3650/HANDOUTS/LRParseAlg.pdf
func (p *Parser) Parse(tokens []pda.Token) *trace.Result {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	tokens = append([]pda.Token(nil), tokens...)
	rec := trace.NewRecorder(p.g)
	states := make([]int, 0, 64)
	symbols := make([]lr.Symbol, 0, 64)
	states = append(states, 0)
	symbols = append(symbols, lr.EndMarker)
	pos := 0
	prog := newProgress()
	fail := func(err *trace.ParseError, at int) *trace.Result {
		err.Position, err.Grammar = at, p.g
		if at < len(tokens) {
			err.Token = tokens[at]
		}
		rec.Record(symbols, states, rest(tokens, pos), trace.Action{Kind: trace.Fail, Err: err})
		tracer().Errorf("%v", err)
		return rec.Result(false, err)
	}
	for {
		s := states[len(states)-1] // TOS
		if pos >= len(tokens) {
			return fail(&trace.ParseError{Kind: trace.PrematureEndOfInput, Expected: lr.EndMarker,
				State: s, ExpectedSet: p.tables.Action.Expected(s)}, pos)
		}
		cur := lr.SymbolFor(tokens[pos].TokType())
		act, ok := p.tables.Action.Lookup(s, cur)
		tracer().Debugf("ACTION[%d, %s] = %q", s, p.g.SymbolName(cur), act)
		if !ok {
			return fail(&trace.ParseError{Kind: trace.UnexpectedSymbol, Found: cur,
				State: s, ExpectedSet: p.tables.Action.Expected(s)}, pos)
		}
		switch act.Kind {
		case ShiftAction:
			rec.Record(symbols, states, rest(tokens, pos), trace.Action{Kind: trace.Shift,
				Symbol: cur, State: act.Target})
			states = append(states, act.Target)
			symbols = append(symbols, cur)
			pos++
			prog.reset()
		case ReduceAction:
			prod := p.g.Production(act.Target)
			if prod == nil {
				return fail(&trace.ParseError{Kind: trace.InvalidAction, Found: cur, State: s}, pos)
			}
			L := prod.Len()
			if L >= len(states) { // handle deeper than the stack: tables do not fit the grammar
				return fail(&trace.ParseError{Kind: trace.MissingGotoEntry, State: s,
					NonTerminal: prod.Head()}, pos)
			}
			uncovered := states[len(states)-1-L]
			target, ok := p.tables.Goto.Lookup(uncovered, prod.Head())
			if !ok {
				return fail(&trace.ParseError{Kind: trace.MissingGotoEntry, State: uncovered,
					NonTerminal: prod.Head()}, pos)
			}
			rec.Record(symbols, states, rest(tokens, pos), trace.Action{Kind: trace.Reduce,
				Production: prod, State: target})
			states = append(states[:len(states)-L], target)
			symbols = append(symbols[:len(symbols)-L], prod.Head())
			if prog.cycles(states) {
				return fail(&trace.ParseError{Kind: trace.NoProgress, Found: cur, State: target}, pos)
			}
		case AcceptAction:
			if pos+1 < len(tokens) {
				return fail(&trace.ParseError{Kind: trace.TrailingInput,
					Found: lr.SymbolFor(tokens[pos+1].TokType()), State: s}, pos+1)
			}
			rec.Record(symbols, states, rest(tokens, pos), trace.Action{Kind: trace.Accept})
			tracer().Infof("input accepted after %d steps", rec.Len())
			return rec.Result(true, nil)
		}
	}
}

// progress watches the reductions between two shifts. As the parser's next
// step depends on the lookahead and the state stack only, and the lookahead
// does not change between shifts, there are two ways for reductions to go on
// forever:
//
// - The state stack grows without bounds. Then some state s comes on top at
// height h and again at height h' ≥ h, and no reduction in between has
// touched the stack below s. Everything the parser did from the first time s
// came on top it will do again, one level higher, forever.
//
// - The state stack does not grow without bounds. Then a state stack repeats.
//
// progress detects both. An intact table never triggers either condition.
type progress struct {
	tops map[int]int     // state → height at which it came on top, while intact below
	seen map[string]bool // state stacks since the last shift
}

func newProgress() *progress {
	return &progress{tops: make(map[int]int), seen: make(map[string]bool)}
}

func (prog *progress) reset() {
	clear(prog.tops)
	clear(prog.seen)
}

// cycles is called after a reduction has left the parser with a state stack of
// states, and reports whether the parser has entered a cycle.
func (prog *progress) cycles(states []int) bool {
	h, top := len(states), states[len(states)-1]
	if at, ok := prog.tops[top]; ok && h >= at {
		return true
	}
	for s, at := range prog.tops {
		if at >= h { // the reduction replaced s or popped it off
			delete(prog.tops, s)
		}
	}
	prog.tops[top] = h
	key := fmt.Sprint(states)
	if prog.seen[key] {
		return true
	}
	prog.seen[key] = true
	return false
}

func rest(tokens []pda.Token, pos int) []pda.Token {
	if pos >= len(tokens) {
		return nil
	}
	return tokens[pos:]
}
