package lexmach

import (
	"strings"

	"github.com/npillmayer/pda"
	"github.com/npillmayer/pda/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'pda.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("pda.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives an initializer for
// regular expressions, a list of literals ('[', ';', …), a list of keywords
// ("if", "for", …) and a map for translating literals and keywords to token types.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string,
	tokenIds map[string]int) (*LMAdapter, error) {
	//
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &LMScanner{scanner: s, Error: logError, end: uint64(len(input))}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
	end     uint64
	failed  bool
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
//
// Unmatched input is skipped up to the position where lexmachine failed, and
// returned as a token of type pda.ErrorToken.
func (lms *LMScanner) NextToken() pda.Token {
	if lms.failed {
		return pda.MakeToken(pda.EOF, "", pda.Span{lms.end, lms.end})
	}
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			start, fail := ui.StartTC, ui.FailTC
			if fail <= start {
				fail = start + 1
			}
			if fail > len(ui.Text) {
				fail = len(ui.Text)
			}
			lms.scanner.TC = fail
			return pda.MakeToken(pda.ErrorToken, string(ui.Text[start:fail]),
				pda.Span{uint64(start), uint64(fail)})
		}
		lms.failed = true // scanner state unknown, stop scanning
		return pda.MakeToken(pda.ErrorToken, "", pda.Span{lms.end, lms.end})
	}
	if eof {
		return pda.MakeToken(pda.EOF, "", pda.Span{lms.end, lms.end})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d = %q", token.Type, token.Lexeme)
	return pda.SimpleToken{
		Kind: pda.TokType(token.Type),
		Text: string(token.Lexeme),
		Val:  token.Value,
		Pos:  pda.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	}
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// MakeValueToken is an action which wraps a scanned match into a token, with
// a value computed from the lexeme.
func MakeValueToken(id int, value func(lexeme string) interface{}) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, value(string(m.Bytes)), m), nil
	}
}
