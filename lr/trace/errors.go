package trace

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/pda"
	"github.com/npillmayer/pda/lr"
)

// ErrorKind categorizes parse errors.
type ErrorKind int8

// Kinds of parse errors.
const (
	NoError ErrorKind = iota
	UnexpectedSymbol
	NoProductionForPair
	MissingGotoEntry
	PrematureEndOfInput
	TrailingInput
	NoProgress    // the parser would loop forever without consuming input
	InvalidAction // a table entry the parser cannot carry out
)

// Sentinel errors, one per error kind, to be used with errors.Is.
var (
	ErrUnexpectedSymbol    = errors.New("unexpected symbol")
	ErrNoProductionForPair = errors.New("no production for pair")
	ErrMissingGotoEntry    = errors.New("missing GOTO entry")
	ErrPrematureEndOfInput = errors.New("premature end of input")
	ErrTrailingInput       = errors.New("trailing input")
	ErrNoProgress          = errors.New("no progress on input")
	ErrInvalidAction       = errors.New("invalid table entry")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case UnexpectedSymbol:
		return ErrUnexpectedSymbol
	case NoProductionForPair:
		return ErrNoProductionForPair
	case MissingGotoEntry:
		return ErrMissingGotoEntry
	case PrematureEndOfInput:
		return ErrPrematureEndOfInput
	case TrailingInput:
		return ErrTrailingInput
	case NoProgress:
		return ErrNoProgress
	case InvalidAction:
		return ErrInvalidAction
	}
	return nil
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return "no error"
}

// ParseError describes why a parser rejected its input. Depending on Kind,
// some of the fields are not set:
//
//   UnexpectedSymbol      Found, and either Expected (predictive) or State and ExpectedSet (shift-reduce)
//   NoProductionForPair   NonTerminal, Found
//   MissingGotoEntry      State, NonTerminal
//   PrematureEndOfInput   Expected is the symbol on top of the stack
//   TrailingInput         Found is the first surplus input symbol
//   NoProgress            Found, and NonTerminal (predictive) or State (shift-reduce)
//   InvalidAction         State, Found
//
// NoProgress is reported when a parser detects that it has entered a cycle
// which does not consume input, e.g. for a left-recursive non-LL(1) grammar
// or for shift-reduce tables with a cycle of reductions.
//
type ParseError struct {
	Kind        ErrorKind
	Expected    lr.Symbol   // symbol on top of a predictive parser's stack
	Found       lr.Symbol   // current input symbol
	NonTerminal lr.Symbol   // non-terminal without table entry
	State       int         // state on top of a shift-reduce parser's stack, or -1
	ExpectedSet []lr.Symbol // terminals with an ACTION entry in State
	Position    int         // index of the offending token in the input
	Token       pda.Token   // offending token, if any
	Grammar     *lr.Grammar // for naming symbols, may be nil
}

func (e *ParseError) name(A lr.Symbol) string {
	if e.Grammar == nil {
		return A.String()
	}
	return e.Grammar.SymbolName(A)
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case UnexpectedSymbol:
		if e.State >= 0 {
			msg = fmt.Sprintf("%s %s in state %d", ErrUnexpectedSymbol, e.name(e.Found), e.State)
			if len(e.ExpectedSet) > 0 {
				names := make([]string, len(e.ExpectedSet))
				for i, A := range e.ExpectedSet {
					names[i] = e.name(A)
				}
				msg += fmt.Sprintf(", expected one of {%s}", strings.Join(names, " "))
			}
		} else {
			msg = fmt.Sprintf("%s %s, expected %s", ErrUnexpectedSymbol, e.name(e.Found), e.name(e.Expected))
		}
	case NoProductionForPair:
		msg = fmt.Sprintf("%s (%s, %s)", ErrNoProductionForPair, e.name(e.NonTerminal), e.name(e.Found))
	case MissingGotoEntry:
		msg = fmt.Sprintf("%s for state %d and %s", ErrMissingGotoEntry, e.State, e.name(e.NonTerminal))
	case PrematureEndOfInput:
		msg = fmt.Sprintf("%s, expected %s", ErrPrematureEndOfInput, e.name(e.Expected))
	case TrailingInput:
		msg = fmt.Sprintf("%s %s", ErrTrailingInput, e.name(e.Found))
	case NoProgress:
		if e.State >= 0 {
			msg = fmt.Sprintf("%s in state %d, reductions on %s repeat", ErrNoProgress, e.State, e.name(e.Found))
		} else {
			msg = fmt.Sprintf("%s, %s expands to itself on %s", ErrNoProgress, e.name(e.NonTerminal), e.name(e.Found))
		}
	case InvalidAction:
		msg = fmt.Sprintf("%s for state %d and %s", ErrInvalidAction, e.State, e.name(e.Found))
	default:
		return "no error"
	}
	return fmt.Sprintf("%s at position %d", msg, e.Position)
}

// Is matches the sentinel error of e's kind.
func (e *ParseError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Unwrap returns the sentinel error of e's kind.
func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}
