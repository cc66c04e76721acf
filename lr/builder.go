package lr

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// GrammarBuilder is a builder type for grammars.
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("E").N("T").N("G").End()               // E → T G
//    b.LHS("G").T("+", '+').N("T").N("G").End()   // G → + T G
//    b.LHS("G").Epsilon()                         // G → ε
//
// The first non-terminal given to LHS is the start symbol, unless set
// explicitly with Start.
type GrammarBuilder struct {
	name      string
	prods     []*Production
	nonterms  map[string]Symbol
	ntorder   []Symbol
	ntnames   []string
	terms     map[string]Symbol
	termorder []Symbol
	termnames []string
	start     string
	problems  *multierror.Error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{
		name:     gname,
		nonterms: make(map[string]Symbol),
		terms:    make(map[string]Symbol),
	}
}

// RuleBuilder is a builder type for a single production.
type RuleBuilder struct {
	gb   *GrammarBuilder
	head Symbol
	body []Symbol
}

// Start sets the start symbol of the grammar.
func (gb *GrammarBuilder) Start(name string) *GrammarBuilder {
	gb.start = name
	return gb
}

// LHS starts a production given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	if gb.start == "" {
		gb.start = name
	}
	return &RuleBuilder{gb: gb, head: gb.nonterminal(name)}
}

func (gb *GrammarBuilder) nonterminal(name string) Symbol {
	if N, ok := gb.nonterms[name]; ok {
		return N
	}
	if _, ok := gb.terms[name]; ok {
		gb.problems = multierror.Append(gb.problems, fmt.Errorf("%w: %s used as terminal and non-terminal",
			ErrConflictingSymbol, name))
	}
	N := NonTerminal(len(gb.ntorder))
	gb.nonterms[name] = N
	gb.ntorder = append(gb.ntorder, N)
	gb.ntnames = append(gb.ntnames, name)
	return N
}

func (gb *GrammarBuilder) terminal(name string, tokval int) Symbol {
	if t, ok := gb.terms[name]; ok {
		if t.Code != tokval {
			gb.problems = multierror.Append(gb.problems, fmt.Errorf("%w: terminal %s with token values %d and %d",
				ErrConflictingSymbol, name, t.Code, tokval))
		}
		return t
	}
	if _, ok := gb.nonterms[name]; ok {
		gb.problems = multierror.Append(gb.problems, fmt.Errorf("%w: %s used as terminal and non-terminal",
			ErrConflictingSymbol, name))
	}
	t := Terminal(tokval)
	gb.terms[name] = t
	gb.termorder = append(gb.termorder, t)
	gb.termnames = append(gb.termnames, name)
	return t
}

// N appends a non-terminal to the right hand side of a production.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.body = append(rb.body, rb.gb.nonterminal(name))
	return rb
}

// T appends a terminal to the right hand side of a production.
// tokval is the token type a scanner will deliver for it.
func (rb *RuleBuilder) T(name string, tokval int) *RuleBuilder {
	rb.body = append(rb.body, rb.gb.terminal(name, tokval))
	return rb
}

// End ends a production.
func (rb *RuleBuilder) End() *Production {
	p := NewProduction(rb.head, rb.body...)
	rb.gb.prods = append(rb.gb.prods, p)
	return p
}

// Epsilon sets ε as the right hand side of a production and ends it.
func (rb *RuleBuilder) Epsilon() *Production {
	rb.body = nil
	return rb.End()
}

// Grammar returns the grammar built so far, or an error if the grammar is
// inconsistent. See NewGrammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	opts := []GrammarOption{WithName(gb.name)}
	for i, A := range gb.ntorder {
		opts = append(opts, WithSymbolName(A, gb.ntnames[i]))
	}
	for i, A := range gb.termorder {
		opts = append(opts, WithSymbolName(A, gb.termnames[i]))
	}
	start, ok := gb.nonterms[gb.start]
	if !ok {
		start = NonTerminal(-1)
	}
	g, err := NewGrammar(gb.prods, gb.termorder, gb.ntorder, start, opts...)
	if gb.problems.ErrorOrNil() != nil {
		problems := &multierror.Error{Errors: append([]error(nil), gb.problems.Errors...)}
		if cerr, ok := err.(*ConstructionError); ok {
			problems = multierror.Append(problems, cerr.Problems.Errors...)
		}
		return nil, &ConstructionError{Grammar: gb.name, Problems: problems}
	}
	return g, err
}
