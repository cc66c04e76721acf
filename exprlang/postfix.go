package exprlang

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/pda"
	"github.com/npillmayer/pda/lr"
	"github.com/npillmayer/pda/lr/trace"
	"github.com/npillmayer/pda/runtime"
)

// Negate is the postfix operator for unary minus. In infix input, a '-' is a
// unary minus if it starts the expression or follows an operator or '('.
const Negate = '@'

// Errors reported while converting to postfix form.
var (
	ErrParentheses     = errors.New("unbalanced parentheses")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrNotAccepted     = errors.New("parse did not accept its input")
)

// Item is an element of a postfix expression, either an operator or an
// operand token.
type Item struct {
	Op      rune      // '+', '-', '*', '/' or Negate; 0 for operands
	Operand pda.Token // nil for operators
}

// IsOperand is true for operand items.
func (it Item) IsOperand() bool {
	return it.Op == 0
}

func (it Item) String() string {
	if it.IsOperand() {
		return it.Operand.Lexeme()
	}
	return string(it.Op)
}

// Postfix is an expression in postfix (reverse Polish) notation.
type Postfix []Item

// String separates items by blanks, e.g. "a b c * + d *".
func (pf Postfix) String() string {
	items := make([]string, len(pf))
	for i, it := range pf {
		items[i] = it.String()
	}
	return strings.Join(items, " ")
}

// --- Operator precedence conversion ----------------------------------------

// ConversionStep is a row of the process table of ToPostfix: the current
// input symbol, the input following it, the operator stack (bottom to top)
// and the output produced so far, all before the symbol is processed.
type ConversionStep struct {
	Index     int
	Current   string
	Input     string
	Operators string
	Output    string
}

// Columns renders a step as text columns.
func (s ConversionStep) Columns() []string {
	return []string{strconv.Itoa(s.Index), s.Current, s.Input, s.Operators, s.Output}
}

func precedence(op rune) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	case Negate:
		return 3
	}
	return 0
}

func isBinaryOp(tt pda.TokType) bool {
	return tt == '+' || tt == '-' || tt == '*' || tt == '/'
}

// ToPostfix converts an infix expression, as scanned by a session, to postfix
// notation. Conversion stops at EOF. Binary operators are left-associative,
// with '*' and '/' binding tighter than '+' and '-'; unary minus binds
// tightest of all.
//
// ToPostfix does not check the syntax of its input beyond balancing
// parentheses; run a parser first for that. The steps returned make up the
// process table of the conversion, with a final row for the result.
func ToPostfix(tokens []pda.Token) (Postfix, []ConversionStep, error) {
	var out Postfix
	var ops []rune
	var steps []ConversionStep
	record := func(i int, current string) {
		var input []string
		for _, tok := range tokens[min(i+1, len(tokens)):] {
			if tok.Lexeme() != "" {
				input = append(input, tok.Lexeme())
			}
		}
		steps = append(steps, ConversionStep{
			Index:     len(steps),
			Current:   current,
			Input:     strings.Join(input, " "),
			Operators: string(ops),
			Output:    out.String(),
		})
	}
	pop := func() {
		out = append(out, Item{Op: ops[len(ops)-1]})
		ops = ops[:len(ops)-1]
	}
	operandBefore := false // previous token ends an operand
	for i, tok := range tokens {
		tt := tok.TokType()
		if tt == pda.EOF {
			break
		}
		record(i, tok.Lexeme())
		switch {
		case tt == runtime.OperandToken:
			out = append(out, Item{Operand: tok})
			operandBefore = true
			continue
		case tt == '-' && !operandBefore:
			ops = append(ops, Negate)
		case tt == '(':
			ops = append(ops, '(')
		case tt == ')':
			for len(ops) > 0 && ops[len(ops)-1] != '(' {
				pop()
			}
			if len(ops) == 0 {
				return nil, steps, fmt.Errorf("%w: ')' at position %d", ErrParentheses, i)
			}
			ops = ops[:len(ops)-1]
			operandBefore = true
			continue
		case isBinaryOp(tt):
			op := rune(tt)
			for len(ops) > 0 && ops[len(ops)-1] != '(' && precedence(ops[len(ops)-1]) >= precedence(op) {
				pop()
			}
			ops = append(ops, op)
		default:
			return nil, steps, fmt.Errorf("%w: %q at position %d", ErrUnexpectedToken, tok.Lexeme(), i)
		}
		operandBefore = false
	}
	for len(ops) > 0 {
		if ops[len(ops)-1] == '(' {
			return nil, steps, fmt.Errorf("%w: missing ')'", ErrParentheses)
		}
		pop()
	}
	record(len(tokens), "")
	tracer().Debugf("postfix: %s", out)
	return out, steps, nil
}

// --- Translation from a shift-reduce parse ---------------------------------

// FromParse translates an accepted shift-reduce parse into postfix notation,
// by emitting the operand on reductions of a production A → i and the
// operator on reductions of a production A → B op C. This is a syntax
// directed translation of the parse steps; the grammar has to be shaped like
// ExpressionGrammar.
func FromParse(result *trace.Result) (Postfix, error) {
	if result == nil || !result.Accepted {
		return nil, ErrNotAccepted
	}
	var out Postfix
	var shifted pda.Token
	for _, step := range result.Trace {
		switch step.Action.Kind {
		case trace.Shift:
			if len(step.Input) > 0 {
				shifted = step.Input[0]
			}
		case trace.Reduce:
			body := step.Action.Production.Body()
			switch {
			case len(body) == 1 && body[0] == lr.SymbolFor(runtime.OperandToken):
				out = append(out, Item{Operand: shifted})
			case len(body) == 3 && body[1].IsTerminal() && isBinaryOp(body[1].TokType()):
				out = append(out, Item{Op: rune(body[1].TokType())})
			}
		}
	}
	return out, nil
}
