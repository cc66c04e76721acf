package trace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/pda"
	"github.com/npillmayer/pda/lr"
)

// ActionKind categorizes the transition taken in a parser configuration.
type ActionKind int8

// Kinds of parser actions. Match and Expand are taken by predictive parsers,
// Shift and Reduce by shift-reduce parsers.
const (
	Match ActionKind = iota
	Expand
	Shift
	Reduce
	Accept
	Fail
)

func (k ActionKind) String() string {
	switch k {
	case Match:
		return "match"
	case Expand:
		return "expand"
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	case Fail:
		return "error"
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Action is the transition taken in a configuration.
type Action struct {
	Kind       ActionKind
	Production *lr.Production // for Expand and Reduce
	State      int            // target state for Shift, GOTO state for Reduce
	Symbol     lr.Symbol      // symbol matched or shifted
	Err        *ParseError    // for Fail
}

// Format renders an action, naming symbols according to g (which may be nil).
func (a Action) Format(g *lr.Grammar) string {
	name := symbolNamer(g)
	switch a.Kind {
	case Match:
		return "match " + name(a.Symbol)
	case Expand:
		return productionString(g, a.Production)
	case Shift:
		return fmt.Sprintf("shift %s, goto %d", name(a.Symbol), a.State)
	case Reduce:
		if a.Production == nil {
			return "reduce ?"
		}
		return fmt.Sprintf("reduce %d: %s, goto %d", a.Production.Serial(), productionString(g, a.Production), a.State)
	case Accept:
		return "accept"
	case Fail:
		if a.Err != nil {
			return "error: " + a.Err.Error()
		}
		return "error"
	}
	return a.Kind.String()
}

// Step is a single parser configuration together with the action taken in it.
// Steps are immutable once recorded.
type Step struct {
	Index   int         // serial number of the step, starting with 1
	Symbols []lr.Symbol // symbol stack, bottom to top
	States  []int       // state stack, bottom to top; nil for predictive parsers
	Input   []pda.Token // remaining input, including the current token
	Action  Action
}

// Columns renders a step as text columns: index, state stack (empty for
// predictive parsers), symbol stack, remaining input and action.
func (s Step) Columns(g *lr.Grammar) []string {
	name := symbolNamer(g)
	syms := make([]string, len(s.Symbols))
	for i, A := range s.Symbols {
		syms[i] = name(A)
	}
	states := make([]string, len(s.States))
	for i, st := range s.States {
		states[i] = strconv.Itoa(st)
	}
	input := make([]string, len(s.Input))
	for i, tok := range s.Input {
		input[i] = lexeme(tok, name)
	}
	return []string{
		strconv.Itoa(s.Index),
		strings.Join(states, " "),
		strings.Join(syms, " "),
		strings.Join(input, " "),
		s.Action.Format(g),
	}
}

// Format renders a step as a single line of text.
func (s Step) Format(g *lr.Grammar) string {
	cols := s.Columns(g)
	if len(s.States) == 0 {
		return fmt.Sprintf("%3s | %-20s | %20s | %s", cols[0], cols[2], cols[3], cols[4])
	}
	return fmt.Sprintf("%3s | %-20s | %-20s | %20s | %s", cols[0], cols[1], cols[2], cols[3], cols[4])
}

func (s Step) String() string {
	return s.Format(nil)
}

// --- Recorder --------------------------------------------------------------

// Recorder is an append-only log of parser steps. Every parse call owns its
// own recorder.
type Recorder struct {
	g     *lr.Grammar
	steps []Step
}

// NewRecorder creates a recorder. Grammar g is used for naming symbols.
func NewRecorder(g *lr.Grammar) *Recorder {
	return &Recorder{g: g, steps: make([]Step, 0, 32)}
}

// Record appends a step for a configuration, given by its symbol stack,
// state stack and remaining input, and the action about to be taken.
// Stacks are copied, input tokens are shared (but never modified).
func (r *Recorder) Record(symbols []lr.Symbol, states []int, input []pda.Token, action Action) Step {
	step := Step{
		Index:   len(r.steps) + 1,
		Symbols: append([]lr.Symbol(nil), symbols...),
		Input:   input[:len(input):len(input)],
		Action:  action,
	}
	if states != nil {
		step.States = append([]int(nil), states...)
	}
	r.steps = append(r.steps, step)
	tracer().Debugf("%s", step.Format(r.g))
	return step
}

// Len returns the number of steps recorded.
func (r *Recorder) Len() int {
	return len(r.steps)
}

// Steps returns the steps recorded so far.
func (r *Recorder) Steps() []Step {
	return append([]Step(nil), r.steps...)
}

// Result creates the result of a parse from the steps recorded.
func (r *Recorder) Result(accepted bool, err *ParseError) *Result {
	return &Result{
		Accepted: accepted,
		Trace:    r.Steps(),
		Err:      err,
		Grammar:  r.g,
	}
}

// --- Result ----------------------------------------------------------------

// Result is the outcome of a parse call.
type Result struct {
	Accepted bool
	Trace    []Step
	Err      *ParseError // nil if the input has been accepted
	Grammar  *lr.Grammar
}

// AsError returns Err as an error value, or nil.
func (r *Result) AsError() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

// Last returns the final step of the trace.
func (r *Result) Last() (Step, bool) {
	if len(r.Trace) == 0 {
		return Step{}, false
	}
	return r.Trace[len(r.Trace)-1], true
}

// Count returns the number of steps with actions of kind k.
func (r *Result) Count(k ActionKind) int {
	n := 0
	for _, s := range r.Trace {
		if s.Action.Kind == k {
			n++
		}
	}
	return n
}

// Rows renders all steps as text columns, see Step.Columns.
func (r *Result) Rows() [][]string {
	rows := make([][]string, len(r.Trace))
	for i, s := range r.Trace {
		rows[i] = s.Columns(r.Grammar)
	}
	return rows
}

func (r *Result) String() string {
	var sb strings.Builder
	for _, s := range r.Trace {
		sb.WriteString(s.Format(r.Grammar))
		sb.WriteByte('\n')
	}
	if r.Accepted {
		sb.WriteString("accepted\n")
	} else if r.Err != nil {
		sb.WriteString("rejected: " + r.Err.Error() + "\n")
	}
	return sb.String()
}

// --- Helpers ---------------------------------------------------------------

func symbolNamer(g *lr.Grammar) func(lr.Symbol) string {
	if g == nil {
		return lr.Symbol.String
	}
	return g.SymbolName
}

func productionString(g *lr.Grammar, p *lr.Production) string {
	if p == nil {
		return "?"
	}
	if g == nil {
		return p.String()
	}
	return g.ProductionString(p)
}

func lexeme(tok pda.Token, name func(lr.Symbol) string) string {
	if tok.TokType() == pda.EOF {
		return "#"
	}
	if l := tok.Lexeme(); l != "" {
		return l
	}
	return name(lr.SymbolFor(tok.TokType()))
}
