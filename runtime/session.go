package runtime

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/pda"
	"github.com/npillmayer/pda/lr/scanner"
	"github.com/npillmayer/pda/lr/scanner/lexmach"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// OperandToken is the token type the session lexer uses for identifiers and
// numeric constants, matching terminal 'i' of textbook expression grammars.
const OperandToken pda.TokType = 'i'

// Session is the state of one analysis client. It owns a registry for
// identifiers and one for constants, which are filled by the session's lexer.
type Session struct {
	Name        string
	Identifiers *Registry
	Constants   *Registry
	lexer       *lexmach.LMAdapter
}

// NewSession creates a session with empty registries and compiles its lexer.
//
// The lexer reads arithmetic expressions: identifiers and unsigned numbers
// are tokens of type OperandToken, with the registry index as token value;
// operators + - * / and parentheses are tokens with the operator character as
// token type; '#' marks the end of input and is reported as EOF. Whitespace is
// skipped. Everything else is delivered as a pda.ErrorToken.
func NewSession(name string) (*Session, error) {
	s := &Session{
		Name:        name,
		Identifiers: NewRegistry("identifiers"),
		Constants:   NewRegistry("constants"),
	}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), s.identifier)
		lexer.Add([]byte(`[0-9]+(\.[0-9]+)?`), s.constant)
		lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	}
	literals := []string{"+", "-", "*", "/", "(", ")", "#"}
	ids := map[string]int{"#": int(pda.EOF)}
	for _, lit := range literals[:6] {
		ids[lit] = int(lit[0])
	}
	adapter, err := lexmach.NewLMAdapter(init, literals, nil, ids)
	if err != nil {
		return nil, err
	}
	s.lexer = adapter
	tracer().Debugf("session %q created", name)
	return s, nil
}

func (s *Session) identifier(sc *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	index, _ := s.Identifiers.Register(string(m.Bytes))
	return sc.Token(int(OperandToken), index, m), nil
}

func (s *Session) constant(sc *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	lexeme := string(m.Bytes)
	f, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		return nil, err
	}
	index, _ := s.Constants.RegisterValue(lexeme, f)
	return sc.Token(int(OperandToken), index, m), nil
}

// ErrUnbound is returned for identifiers without a value.
var ErrUnbound = errors.New("unbound identifier")

// Bind sets the value of an identifier. Values of identifiers live as long as
// the session.
func (s *Session) Bind(name string, value float64) {
	s.Identifiers.SetValue(name, value)
	tracer().Debugf("session %q: %s = %g", s.Name, name, value)
}

// Resolve returns the numeric value of an operand token: the value of a
// constant, or the value bound to an identifier.
func (s *Session) Resolve(tok pda.Token) (float64, error) {
	lexeme := tok.Lexeme()
	for _, reg := range []*Registry{s.Constants, s.Identifiers} {
		if i, ok := reg.Lookup(lexeme); ok {
			if e, _ := reg.At(i); e.Value != nil {
				if f, ok := e.Value.(float64); ok {
					return f, nil
				}
			}
		}
	}
	if f, err := strconv.ParseFloat(lexeme, 64); err == nil {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnbound, lexeme)
}

// Scanner creates a tokenizer for input, registering identifiers and constants
// with the session as they are scanned.
func (s *Session) Scanner(input string) (scanner.Tokenizer, error) {
	sc, err := s.lexer.Scanner(input)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// Tokenize scans input up to its end. The tokens returned end with EOF.
// Lexical errors are collected and returned together with the tokens, which
// contain error tokens at the offending positions.
func (s *Session) Tokenize(input string) ([]pda.Token, error) {
	sc, err := s.lexer.Scanner(input)
	if err != nil {
		return nil, err
	}
	var problems *multierror.Error
	sc.SetErrorHandler(func(e error) {
		problems = multierror.Append(problems, e)
	})
	tokens := scanner.Collect(sc)
	tracer().Infof("session %q: %d tokens, %d identifiers, %d constants", s.Name,
		len(tokens), s.Identifiers.Len(), s.Constants.Len())
	return tokens, problems.ErrorOrNil()
}
