package lr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/pda"
)

// --- Productions -----------------------------------------------------------

// Production is a grammar rule
//
//    head → body
//
// Productions are numbered by their position within the grammar. The body
// of an epsilon-production consists of Epsilon only.
type Production struct {
	serial int
	head   Symbol
	body   []Symbol
}

// NewProduction creates a production. An empty body denotes an epsilon-production.
// The serial number is assigned when the production is handed to NewGrammar.
func NewProduction(head Symbol, body ...Symbol) *Production {
	p := &Production{serial: -1, head: head}
	if len(body) == 0 {
		p.body = []Symbol{Epsilon}
	} else {
		p.body = append([]Symbol(nil), body...)
	}
	return p
}

// Serial is the position of a production within its grammar, or -1 for a
// production not yet handed to NewGrammar. Reduce actions refer to it.
func (p *Production) Serial() int {
	return p.serial
}

// Head returns the left hand side of a production.
func (p *Production) Head() Symbol {
	return p.head
}

// Body returns a copy of the right hand side of a production.
func (p *Production) Body() []Symbol {
	return append([]Symbol(nil), p.body...)
}

// Len is the number of symbols a reduction by this production pops off a
// parse stack, i.e. 0 for epsilon-productions.
func (p *Production) Len() int {
	if p.IsEpsilon() {
		return 0
	}
	return len(p.body)
}

// IsEpsilon is true for epsilon-productions.
func (p *Production) IsEpsilon() bool {
	return len(p.body) == 1 && p.body[0] == Epsilon
}

// String uses the fallback names of symbols. See Grammar.ProductionString.
func (p *Production) String() string {
	return p.format(func(A Symbol) string { return A.String() })
}

func (p *Production) format(name func(Symbol) string) string {
	var sb strings.Builder
	sb.WriteString(name(p.head))
	sb.WriteString(" →")
	for _, A := range p.body {
		sb.WriteByte(' ')
		sb.WriteString(name(A))
	}
	return sb.String()
}

// --- Errors ----------------------------------------------------------------

// ErrGrammarConstruction is matched by every error returned from grammar construction.
var ErrGrammarConstruction = errors.New("grammar construction failed")

// Problems detected during grammar construction.
var (
	ErrNoProductions     = errors.New("grammar has no productions")
	ErrUndeclaredSymbol  = errors.New("undeclared symbol")
	ErrUndeclaredStart   = errors.New("start symbol is not a declared non-terminal")
	ErrEndMarkerInBody   = errors.New("end marker in production body")
	ErrMisplacedEpsilon  = errors.New("epsilon mixed with other symbols")
	ErrWrongSymbolKind   = errors.New("symbol declared with wrong kind")
	ErrConflictingSymbol = errors.New("conflicting symbol definition")
)

// ConstructionError collects all the problems found while constructing a grammar.
type ConstructionError struct {
	Grammar  string
	Problems *multierror.Error
}

func (e *ConstructionError) Error() string {
	if e.Problems == nil {
		return fmt.Sprintf("grammar %q: %s", e.Grammar, ErrGrammarConstruction.Error())
	}
	msgs := make([]string, len(e.Problems.Errors))
	for i, err := range e.Problems.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("grammar %q: %d problem(s): %s", e.Grammar, len(msgs), strings.Join(msgs, "; "))
}

// Is makes every construction error match ErrGrammarConstruction.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrGrammarConstruction
}

// Unwrap gives access to the individual problems.
func (e *ConstructionError) Unwrap() error {
	return e.Problems.ErrorOrNil()
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context-free grammar. Grammars are immutable once constructed,
// and all accessors return copies.
type Grammar struct {
	Name         string
	productions  []*Production
	terminals    []Symbol
	nonterminals []Symbol
	declared     map[Symbol]bool
	start        Symbol
	names        map[Symbol]string
	byName       map[string]Symbol
}

// GrammarOption configures a grammar on construction.
type GrammarOption func(*Grammar)

// WithName sets the name of a grammar.
func WithName(name string) GrammarOption {
	return func(g *Grammar) {
		g.Name = name
	}
}

// WithSymbolName sets the display name of a symbol.
func WithSymbolName(A Symbol, name string) GrammarOption {
	return func(g *Grammar) {
		g.names[A] = name
		g.byName[name] = A
	}
}

// NewGrammar creates a grammar from a list of productions, declared terminals and
// non-terminals and a start symbol. Productions are numbered in the order given,
// starting with 0.
//
// NewGrammar checks the grammar for consistency and returns a *ConstructionError
// listing every problem found.
func NewGrammar(productions []*Production, terminals, nonterminals []Symbol,
	start Symbol, opts ...GrammarOption) (*Grammar, error) {
	//
	g := &Grammar{
		Name:     "G",
		declared: make(map[Symbol]bool),
		start:    start,
		names:    make(map[Symbol]string),
		byName:   make(map[string]Symbol),
	}
	for _, opt := range opts {
		opt(g)
	}
	var problems *multierror.Error
	for _, t := range terminals {
		if !t.IsTerminal() {
			problems = multierror.Append(problems, fmt.Errorf("%w: %v declared as terminal", ErrWrongSymbolKind, t))
			continue
		}
		if t.Code == int(pda.EOF) {
			problems = multierror.Append(problems, fmt.Errorf("%w: token type %d is reserved for EOF", ErrWrongSymbolKind, t.Code))
			continue
		}
		if !g.declared[t] {
			g.terminals = append(g.terminals, t)
			g.declared[t] = true
		}
	}
	for _, N := range nonterminals {
		if !N.IsNonTerminal() {
			problems = multierror.Append(problems, fmt.Errorf("%w: %v declared as non-terminal", ErrWrongSymbolKind, N))
			continue
		}
		if !g.declared[N] {
			g.nonterminals = append(g.nonterminals, N)
			g.declared[N] = true
		}
	}
	if len(productions) == 0 {
		problems = multierror.Append(problems, ErrNoProductions)
	}
	if !start.IsNonTerminal() || !g.declared[start] {
		problems = multierror.Append(problems, fmt.Errorf("%w: %s", ErrUndeclaredStart, g.SymbolName(start)))
	}
	for i, p := range productions {
		prod := &Production{serial: i, head: p.head, body: append([]Symbol(nil), p.body...)}
		if len(prod.body) == 0 {
			prod.body = []Symbol{Epsilon}
		}
		problems = g.checkProduction(prod, problems)
		g.productions = append(g.productions, prod)
	}
	if problems.ErrorOrNil() != nil {
		tracer().Errorf("grammar %q has %d problem(s)", g.Name, problems.Len())
		return nil, &ConstructionError{Grammar: g.Name, Problems: problems}
	}
	tracer().Debugf("grammar %q with %d productions, %d terminals, %d non-terminals",
		g.Name, len(g.productions), len(g.terminals), len(g.nonterminals))
	return g, nil
}

func (g *Grammar) checkProduction(p *Production, problems *multierror.Error) *multierror.Error {
	if !p.head.IsNonTerminal() || !g.declared[p.head] {
		problems = multierror.Append(problems, fmt.Errorf("%w: head %s of production %d",
			ErrUndeclaredSymbol, g.SymbolName(p.head), p.serial))
	}
	for _, A := range p.body {
		switch A.Kind {
		case EndMarkerKind:
			problems = multierror.Append(problems, fmt.Errorf("%w: production %d",
				ErrEndMarkerInBody, p.serial))
		case EpsilonKind:
			if len(p.body) > 1 {
				problems = multierror.Append(problems, fmt.Errorf("%w: production %d",
					ErrMisplacedEpsilon, p.serial))
			}
		default:
			if !g.declared[A] {
				problems = multierror.Append(problems, fmt.Errorf("%w: %s in production %d",
					ErrUndeclaredSymbol, g.SymbolName(A), p.serial))
			}
		}
	}
	return problems
}

// MustGrammar panics if err is non-nil. It is intended for static grammars,
// which are known to be well-formed.
func MustGrammar(g *Grammar, err error) *Grammar {
	if err != nil {
		panic(err)
	}
	return g
}

// Start returns the start symbol.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Size returns the number of productions.
func (g *Grammar) Size() int {
	return len(g.productions)
}

// Production returns production no. i, or nil.
func (g *Grammar) Production(i int) *Production {
	if i < 0 || i >= len(g.productions) {
		return nil
	}
	return g.productions[i]
}

// Productions returns all productions in declaration order.
func (g *Grammar) Productions() []*Production {
	return append([]*Production(nil), g.productions...)
}

// ProductionsFor returns all productions for non-terminal N, in declaration order.
func (g *Grammar) ProductionsFor(N Symbol) []*Production {
	var prods []*Production
	for _, p := range g.productions {
		if p.head == N {
			prods = append(prods, p)
		}
	}
	return prods
}

// Terminals returns the declared terminals.
func (g *Grammar) Terminals() []Symbol {
	return append([]Symbol(nil), g.terminals...)
}

// NonTerminals returns the declared non-terminals.
func (g *Grammar) NonTerminals() []Symbol {
	return append([]Symbol(nil), g.nonterminals...)
}

// IsDeclared is true for declared terminals and non-terminals.
func (g *Grammar) IsDeclared(A Symbol) bool {
	return g.declared[A]
}

// SymbolName returns the display name of a symbol.
func (g *Grammar) SymbolName(A Symbol) string {
	if name, ok := g.names[A]; ok {
		return name
	}
	return A.String()
}

// SymbolByName finds a symbol by its display name.
func (g *Grammar) SymbolByName(name string) (Symbol, bool) {
	switch name {
	case "#":
		return EndMarker, true
	case "ε":
		return Epsilon, true
	}
	if A, ok := g.byName[name]; ok {
		return A, true
	}
	for _, t := range g.terminals { // fallback names of unnamed terminals
		if t.String() == name {
			return t, true
		}
	}
	return Symbol{}, false
}

// ProductionString formats a production using the display names of this grammar.
func (g *Grammar) ProductionString(p *Production) string {
	return p.format(g.SymbolName)
}

// SymbolsString formats a sequence of symbols using display names.
func (g *Grammar) SymbolsString(syms []Symbol) string {
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = g.SymbolName(A)
	}
	return strings.Join(names, " ")
}

func (g *Grammar) String() string {
	var sb strings.Builder
	for _, p := range g.productions {
		sb.WriteString(fmt.Sprintf("%3d: %s\n", p.serial, g.ProductionString(p)))
	}
	return sb.String()
}

// Dump is a debugging helper, listing all productions to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ------------------------", g.Name)
	for _, p := range g.productions {
		tracer().Debugf("%3d: %s", p.serial, g.ProductionString(p))
	}
	tracer().Debugf("---------------------------------------")
}
