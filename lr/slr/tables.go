package slr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/pda/lr"
	"github.com/npillmayer/pda/lr/sparse"
)

// ActionKind is the kind of an ACTION table entry.
type ActionKind int8

// Kinds of ACTION table entries. NoAction denotes an empty cell.
const (
	NoAction ActionKind = iota
	ShiftAction
	ReduceAction
	AcceptAction
)

// Action is an ACTION table entry. Target is the state to shift to for
// shift-actions, and the serial number of a production for reduce-actions.
type Action struct {
	Kind   ActionKind
	Target int
}

// Shift creates a shift-action to state s.
func Shift(s int) Action {
	return Action{Kind: ShiftAction, Target: s}
}

// Reduce creates a reduce-action for production p.
func Reduce(p int) Action {
	return Action{Kind: ReduceAction, Target: p}
}

// Accept creates an accept-action.
func Accept() Action {
	return Action{Kind: AcceptAction}
}

// String renders an action in the usual textbook notation "s5", "r3" or "acc".
func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return "s" + strconv.Itoa(a.Target)
	case ReduceAction:
		return "r" + strconv.Itoa(a.Target)
	case AcceptAction:
		return "acc"
	}
	return ""
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	if s == "acc" {
		return Accept(), nil
	}
	if len(s) < 2 || (s[0] != 's' && s[0] != 'r') {
		return Action{}, fmt.Errorf("%w: cannot read action %q", ErrTableFormat, s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n > MaxTarget {
		return Action{}, fmt.Errorf("%w: cannot read action %q", ErrTableFormat, s)
	}
	if s[0] == 's' {
		return Shift(n), nil
	}
	return Reduce(n), nil
}

// Actions are stored in a sparse matrix as int32 values:
// shift s  →  s+1,   reduce p  →  -(p+1),   accept  →  MaxInt32
const acceptValue = math.MaxInt32

// MaxTarget is the largest state or production number a table entry may
// refer to.
const MaxTarget = math.MaxInt32 - 2

func checkTarget(table string, s int, col string, target int) error {
	if target < 0 || target > MaxTarget {
		return fmt.Errorf("%s[%d, %s]: target %d out of range", table, s, col, target)
	}
	return nil
}

func encode(a Action) int32 {
	switch a.Kind {
	case ShiftAction:
		return int32(a.Target + 1)
	case ReduceAction:
		return int32(-(a.Target + 1))
	case AcceptAction:
		return acceptValue
	}
	return sparse.DefaultNullValue
}

func decode(v int32) Action {
	switch {
	case v == sparse.DefaultNullValue:
		return Action{}
	case v == acceptValue:
		return Accept()
	case v > 0:
		return Shift(int(v) - 1)
	}
	return Reduce(int(-v) - 1)
}

// --- ACTION table ----------------------------------------------------------

// ActionTable maps pairs (state, lookahead) to actions. Lookaheads are
// terminals or the end marker.
type ActionTable struct {
	m        *sparse.IntMatrix // row = state, column = lookahead column
	rejected []error           // entries which could not be stored
}

// NewActionTable creates an empty ACTION table.
func NewActionTable() *ActionTable {
	return &ActionTable{m: sparse.NewIntMatrix(sparse.DefaultNullValue)}
}

// Set enters an action for state s and lookahead a. An existing entry is
// overwritten. Setting an action of kind NoAction clears the cell.
// Shift- and reduce-actions with a target outside of [0…MaxTarget] are not
// entered; Tables.Validate will report them.
func (t *ActionTable) Set(s int, a lr.Symbol, act Action) *ActionTable {
	if act.Kind == ShiftAction || act.Kind == ReduceAction {
		if err := checkTarget("ACTION", s, a.String(), act.Target); err != nil {
			t.rejected = append(t.rejected, err)
			return t
		}
	}
	t.m.Set(s, a.Column(), encode(act))
	return t
}

// Lookup returns the action for state s and lookahead a.
func (t *ActionTable) Lookup(s int, a lr.Symbol) (Action, bool) {
	if !a.IsLookahead() {
		return Action{}, false
	}
	act := decode(t.m.Value(s, a.Column()))
	return act, act.Kind != NoAction
}

// Expected returns the lookaheads with an entry for state s, ordered like the
// members of a TerminalSet.
func (t *ActionTable) Expected(s int) []lr.Symbol {
	cols, _ := t.m.Row(s)
	la := lr.NewTerminalSet()
	for _, c := range cols {
		la.Add(lr.LookaheadForColumn(c))
	}
	return la.Symbols()
}

// Each calls f for every entry, ordered by state and lookahead column.
func (t *ActionTable) Each(f func(s int, a lr.Symbol, act Action)) {
	t.m.Each(func(i, j int, v int32) {
		f(i, lr.LookaheadForColumn(j), decode(v))
	})
}

// Size returns the number of entries.
func (t *ActionTable) Size() int {
	n := 0
	t.Each(func(int, lr.Symbol, Action) { n++ })
	return n
}

// --- GOTO table ------------------------------------------------------------

// GotoTable maps pairs (state, non-terminal) to states.
type GotoTable struct {
	m        *sparse.IntMatrix // row = state, column = non-terminal code
	rejected []error
}

// NewGotoTable creates an empty GOTO table.
func NewGotoTable() *GotoTable {
	return &GotoTable{m: sparse.NewIntMatrix(sparse.DefaultNullValue)}
}

// Set enters target state t for state s and non-terminal N. As with
// ActionTable.Set, targets out of range are not entered but reported by
// Tables.Validate.
func (t *GotoTable) Set(s int, N lr.Symbol, target int) *GotoTable {
	if err := checkTarget("GOTO", s, N.String(), target); err != nil {
		t.rejected = append(t.rejected, err)
		return t
	}
	t.m.Set(s, N.Code, int32(target))
	return t
}

// Lookup returns the target state for state s and non-terminal N.
func (t *GotoTable) Lookup(s int, N lr.Symbol) (int, bool) {
	if !N.IsNonTerminal() {
		return 0, false
	}
	v := t.m.Value(s, N.Code)
	if v == t.m.NullValue() {
		return 0, false
	}
	return int(v), true
}

// Each calls f for every entry, ordered by state and non-terminal code.
func (t *GotoTable) Each(f func(s int, N lr.Symbol, target int)) {
	t.m.Each(func(i, j int, v int32) {
		f(i, lr.NonTerminal(j), int(v))
	})
}

// --- Table bundle ----------------------------------------------------------

// Tables bundles the data a shift-reduce parser is driven by: an ACTION
// table, a GOTO table and a grammar. Reduce-actions refer to productions of
// the grammar by serial number.
//
// Tables must not be modified once a parser has been created for them.
type Tables struct {
	Grammar *lr.Grammar
	Action  *ActionTable
	Goto    *GotoTable
}

// NewTables creates empty tables for grammar g.
func NewTables(g *lr.Grammar) *Tables {
	return &Tables{
		Grammar: g,
		Action:  NewActionTable(),
		Goto:    NewGotoTable(),
	}
}

// ErrInvalidTables is matched by errors from Tables.Validate.
var ErrInvalidTables = errors.New("invalid parser tables")

// ErrTableFormat is reported for table documents which cannot be read.
var ErrTableFormat = errors.New("malformed table document")

// InvalidTablesError collects all problems found in a table bundle.
type InvalidTablesError struct {
	Problems *multierror.Error
}

func (e *InvalidTablesError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidTables, e.Problems.Error())
}

func (e *InvalidTablesError) Unwrap() error {
	return ErrInvalidTables
}

// Validate checks the table entries against the grammar: lookaheads and
// non-terminals have to be declared, reduce-actions have to refer to existing
// productions, and accept-actions are allowed for the end marker only.
// A missing GOTO entry is not an error here, as a parser will report it as
// a parse error.
func (t *Tables) Validate() error {
	if t == nil || t.Grammar == nil || t.Action == nil || t.Goto == nil {
		return fmt.Errorf("%w: tables incomplete", ErrInvalidTables)
	}
	g := t.Grammar
	var problems *multierror.Error
	problems = multierror.Append(problems, t.Action.rejected...)
	problems = multierror.Append(problems, t.Goto.rejected...)
	t.Action.Each(func(s int, a lr.Symbol, act Action) {
		at := fmt.Sprintf("ACTION[%d, %s]", s, g.SymbolName(a))
		if s < 0 {
			problems = multierror.Append(problems, fmt.Errorf("%s: negative state", at))
		}
		if a.IsTerminal() && !g.IsDeclared(a) {
			problems = multierror.Append(problems, fmt.Errorf("%s: %w", at, lr.ErrUndeclaredSymbol))
		}
		switch act.Kind {
		case ShiftAction:
			if a.IsEndMarker() {
				problems = multierror.Append(problems, fmt.Errorf("%s: cannot shift the end marker", at))
			}
		case ReduceAction:
			if act.Target < 0 || act.Target >= g.Size() {
				problems = multierror.Append(problems, fmt.Errorf("%s: no production %d", at, act.Target))
			}
		case AcceptAction:
			if !a.IsEndMarker() {
				problems = multierror.Append(problems, fmt.Errorf("%s: accept requires the end marker", at))
			}
		}
	})
	t.Goto.Each(func(s int, N lr.Symbol, target int) {
		at := fmt.Sprintf("GOTO[%d, %s]", s, g.SymbolName(N))
		if !g.IsDeclared(N) {
			problems = multierror.Append(problems, fmt.Errorf("%s: %w", at, lr.ErrUndeclaredSymbol))
		}
		if s < 0 {
			problems = multierror.Append(problems, fmt.Errorf("%s: negative state", at))
		}
	})
	if problems.ErrorOrNil() != nil {
		return &InvalidTablesError{Problems: problems}
	}
	return nil
}

// States returns the number of states, i.e. 1 + the highest state number
// occuring in the tables.
func (t *Tables) States() int {
	max := -1
	t.Action.Each(func(s int, _ lr.Symbol, act Action) {
		if s > max {
			max = s
		}
		if act.Kind == ShiftAction && act.Target > max {
			max = act.Target
		}
	})
	t.Goto.Each(func(s int, _ lr.Symbol, target int) {
		if s > max {
			max = s
		}
		if target > max {
			max = target
		}
	})
	return max + 1
}

// Rows renders the tables as text columns, suitable for printing. The first
// row is a header: "state", followed by the lookaheads (terminals and the end
// marker) and the non-terminals of the grammar. Empty cells are empty strings.
func (t *Tables) Rows() [][]string {
	g := t.Grammar
	la := append(g.Terminals(), lr.EndMarker)
	nts := g.NonTerminals()
	header := make([]string, 0, 1+len(la)+len(nts))
	header = append(header, "state")
	for _, a := range la {
		header = append(header, g.SymbolName(a))
	}
	for _, N := range nts {
		header = append(header, g.SymbolName(N))
	}
	rows := [][]string{header}
	for s := 0; s < t.States(); s++ {
		row := make([]string, 0, len(header))
		row = append(row, strconv.Itoa(s))
		for _, a := range la {
			act, _ := t.Action.Lookup(s, a)
			row = append(row, act.String())
		}
		for _, N := range nts {
			cell := ""
			if target, ok := t.Goto.Lookup(s, N); ok {
				cell = strconv.Itoa(target)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows
}
