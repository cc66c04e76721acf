package exprlang

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/pda/runtime"
)

// Errors reported by Evaluate. Unbound identifiers are reported with
// runtime.ErrUnbound.
var (
	ErrMissingOperand = errors.New("operator lacks an operand")
	ErrSurplusOperand = errors.New("surplus operands")
	ErrDivisionByZero = errors.New("division by zero")
)

// EvalStep is a row of the process table of Evaluate: the current item and
// the value stack (bottom to top) before the item is processed, and a note
// on what the item did.
type EvalStep struct {
	Index   int
	Current string
	Stack   []float64
	Note    string
}

// Columns renders a step as text columns.
func (s EvalStep) Columns() []string {
	vals := make([]string, len(s.Stack))
	for i, v := range s.Stack {
		vals[i] = formatValue(v)
	}
	return []string{strconv.Itoa(s.Index), s.Current, strings.Join(vals, ", "), s.Note}
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Evaluate computes the value of a postfix expression. Operands are resolved
// by the session: constants have their numeric value, identifiers the value
// bound with Session.Bind. The steps returned make up the process table of
// the evaluation, with a final row for the result.
func Evaluate(pf Postfix, session *runtime.Session) (float64, []EvalStep, error) {
	var stack []float64
	var steps []EvalStep
	for _, it := range pf {
		steps = append(steps, EvalStep{
			Index:   len(steps),
			Current: it.String(),
			Stack:   append([]float64(nil), stack...),
		})
		step := &steps[len(steps)-1]
		if it.IsOperand() {
			v, err := session.Resolve(it.Operand)
			if err != nil {
				return 0, steps, err
			}
			if _, perr := strconv.ParseFloat(it.Operand.Lexeme(), 64); perr != nil {
				step.Note = fmt.Sprintf("%s = %s", it.Operand.Lexeme(), formatValue(v))
			}
			stack = append(stack, v)
			continue
		}
		if it.Op == Negate {
			if len(stack) < 1 {
				return 0, steps, fmt.Errorf("%w: %c", ErrMissingOperand, it.Op)
			}
			a := stack[len(stack)-1]
			stack[len(stack)-1] = -a
			step.Note = fmt.Sprintf("-(%s) = %s", formatValue(a), formatValue(-a))
			continue
		}
		if len(stack) < 2 {
			return 0, steps, fmt.Errorf("%w: %c", ErrMissingOperand, it.Op)
		}
		a, b := stack[len(stack)-2], stack[len(stack)-1]
		var r float64
		switch it.Op {
		case '+':
			r = a + b
		case '-':
			r = a - b
		case '*':
			r = a * b
		case '/':
			if b == 0 {
				return 0, steps, ErrDivisionByZero
			}
			r = a / b
		default:
			return 0, steps, fmt.Errorf("%w: %c", ErrUnexpectedToken, it.Op)
		}
		stack = append(stack[:len(stack)-2], r)
		step.Note = fmt.Sprintf("%s %c %s = %s", formatValue(a), it.Op, formatValue(b), formatValue(r))
	}
	if len(stack) != 1 {
		if len(stack) == 0 {
			return 0, steps, fmt.Errorf("%w: empty expression", ErrMissingOperand)
		}
		return 0, steps, fmt.Errorf("%w: %d values left", ErrSurplusOperand, len(stack))
	}
	steps = append(steps, EvalStep{
		Index: len(steps),
		Stack: []float64{stack[0]},
		Note:  "result " + formatValue(stack[0]),
	})
	tracer().Debugf("%s = %s", pf, formatValue(stack[0]))
	return stack[0], steps, nil
}
