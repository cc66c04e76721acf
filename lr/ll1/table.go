package ll1

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/pda/lr"
	"github.com/npillmayer/pda/lr/sparse"
)

// Table is an LL(1) parse table, mapping pairs (non-terminal, lookahead) to
// productions. Lookaheads are terminals or the end marker.
// Tables are read-only once built.
type Table struct {
	g      *lr.Grammar
	matrix *sparse.IntMatrix // row = non-terminal code, column = lookahead column
}

// Entry is a single cell of an LL(1) table.
type Entry struct {
	NonTerminal lr.Symbol
	Lookahead   lr.Symbol
	Production  *lr.Production
}

// Grammar returns the grammar a table has been built for.
func (t *Table) Grammar() *lr.Grammar {
	return t.g
}

// Lookup returns the production for a pair (N, a).
func (t *Table) Lookup(N lr.Symbol, a lr.Symbol) (*lr.Production, bool) {
	if !N.IsNonTerminal() || !a.IsLookahead() {
		return nil, false
	}
	v := t.matrix.Value(N.Code, a.Column())
	if v == t.matrix.NullValue() {
		return nil, false
	}
	return t.g.Production(int(v)), true
}

// Size returns the number of cells set.
func (t *Table) Size() int {
	return t.matrix.ValueCount()
}

// Entries returns all cells set, ordered by non-terminal and lookahead.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, t.matrix.ValueCount())
	t.matrix.Each(func(i, j int, v int32) {
		entries = append(entries, Entry{
			NonTerminal: lr.NonTerminal(i),
			Lookahead:   lr.LookaheadForColumn(j),
			Production:  t.g.Production(int(v)),
		})
	})
	return entries
}

// Lookaheads returns the lookahead symbols for which N has an entry, ordered
// like the members of a TerminalSet.
func (t *Table) Lookaheads(N lr.Symbol) []lr.Symbol {
	cols, _ := t.matrix.Row(N.Code)
	la := lr.NewTerminalSet()
	for _, c := range cols {
		la.Add(lr.LookaheadForColumn(c))
	}
	return la.Symbols()
}

func (t *Table) String() string {
	var sb strings.Builder
	for _, e := range t.Entries() {
		sb.WriteString(fmt.Sprintf("M[%s, %s] = %s\n", t.g.SymbolName(e.NonTerminal),
			t.g.SymbolName(e.Lookahead), t.g.ProductionString(e.Production)))
	}
	return sb.String()
}

// --- Conflicts -------------------------------------------------------------

// Conflict is a collision of two productions for the same table cell.
// Existing keeps the cell, Rejected is shadowed.
type Conflict struct {
	NonTerminal lr.Symbol
	Lookahead   lr.Symbol
	Existing    *lr.Production
	Rejected    *lr.Production
}

// ConflictReport lists all conflicts in the order they occured during
// table construction.
type ConflictReport []Conflict

// IsLL1 is true if there are no conflicts.
func (r ConflictReport) IsLL1() bool {
	return len(r) == 0
}

// Format renders a report, naming symbols according to g.
func (r ConflictReport) Format(g *lr.Grammar) string {
	var sb strings.Builder
	for _, c := range r {
		sb.WriteString(fmt.Sprintf("conflict at M[%s, %s]: keeping %s, rejecting %s\n",
			g.SymbolName(c.NonTerminal), g.SymbolName(c.Lookahead),
			g.ProductionString(c.Existing), g.ProductionString(c.Rejected)))
	}
	return sb.String()
}

// ErrNotLL1 is returned by BuildStrict for grammars with conflicts.
var ErrNotLL1 = errors.New("grammar is not LL(1)")

// ConflictError wraps ErrNotLL1 together with a conflict report.
type ConflictError struct {
	Grammar   *lr.Grammar
	Conflicts ConflictReport
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("grammar %q: %s, %d conflict(s)", e.Grammar.Name, ErrNotLL1, len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return ErrNotLL1
}

// --- Construction ----------------------------------------------------------

// Build constructs an LL(1) table for a grammar from its FIRST and FOLLOW sets.
//
// For every production A → α, in declaration order, the production is
// entered at M[A, a] for every terminal a in FIRST(α). If α derives ε, it is
// entered at M[A, b] for every b in FOLLOW(A), too. If a cell is already
// occupied, the first production stays and the collision is added to the
// conflict report.
func Build(g *lr.Grammar, first *lr.FirstSets, follow *lr.FollowSets) (*Table, ConflictReport) {
	t := &Table{
		g:      g,
		matrix: sparse.NewIntMatrix(sparse.DefaultNullValue),
	}
	var conflicts ConflictReport
	enter := func(p *lr.Production, a lr.Symbol) {
		col := a.Column()
		if v := t.matrix.Value(p.Head().Code, col); v != t.matrix.NullValue() {
			existing := g.Production(int(v))
			if existing == p {
				return
			}
			tracer().Infof("LL(1) conflict at M[%s, %s]: %s vs. %s", g.SymbolName(p.Head()),
				g.SymbolName(a), g.ProductionString(existing), g.ProductionString(p))
			conflicts = append(conflicts, Conflict{
				NonTerminal: p.Head(),
				Lookahead:   a,
				Existing:    existing,
				Rejected:    p,
			})
			return
		}
		t.matrix.Set(p.Head().Code, col, int32(p.Serial()))
	}
	for _, p := range g.Productions() {
		F := first.OfSequence(p.Body())
		for _, a := range F.Symbols() {
			if a.IsLookahead() {
				enter(p, a)
			}
		}
		if F.Contains(lr.Epsilon) {
			for _, b := range follow.Of(p.Head()).Symbols() {
				enter(p, b)
			}
		}
	}
	tracer().Infof("LL(1) table for %q has %d entries and %d conflicts", g.Name, t.Size(), len(conflicts))
	return t, conflicts
}

// BuildFromAnalysis constructs an LL(1) table from a grammar analysis.
func BuildFromAnalysis(ga *lr.Analysis) (*Table, ConflictReport) {
	return Build(ga.Grammar(), ga.FirstSets(), ga.FollowSets())
}

// BuildStrict constructs an LL(1) table and treats conflicts as errors.
// The error wraps ErrNotLL1 and is of type *ConflictError.
func BuildStrict(ga *lr.Analysis) (*Table, error) {
	t, conflicts := BuildFromAnalysis(ga)
	if !conflicts.IsLL1() {
		return nil, &ConflictError{Grammar: ga.Grammar(), Conflicts: conflicts}
	}
	return t, nil
}
