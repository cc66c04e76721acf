/*
Package scanner defines an interface for scanners to be used with the parsers of
this module.

Two default scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`.
Additionally, SliceTokenizer replays pre-classified tokens.

Scanners never drop input. A lexeme which cannot be classified is delivered as a
token of type pda.ErrorToken, which no grammar declares, so a parser will fail
on it at the correct position.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	"github.com/npillmayer/pda"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pda.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("pda.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// EndMarker is the character denoting the end of input within an input text.
const EndMarker = '#'

// Tokenizer is a scanner interface.
//
// When the input is exhausted, NextToken returns tokens of type pda.EOF with an
// empty lexeme, repeatedly. A scanner may produce EOF tokens with a non-empty
// lexeme for an explicit end marker within the input; scanning continues after it.
type Tokenizer interface {
	NextToken() pda.Token
	SetErrorHandler(func(error))
}

// Collect reads all tokens from a tokenizer until the input is exhausted.
// The result ends with an EOF token: if the input has not been terminated by
// an explicit end marker, one is appended. Tokens following an explicit end
// marker are kept, so parsers will see them as trailing input.
func Collect(t Tokenizer) []pda.Token {
	tokens := make([]pda.Token, 0, 32)
	for {
		token := t.NextToken()
		if token.TokType() == pda.EOF && token.Lexeme() == "" {
			if len(tokens) == 0 || tokens[len(tokens)-1].TokType() != pda.EOF {
				tokens = append(tokens, token)
			}
			tracer().Debugf("collected %d tokens", len(tokens))
			return tokens
		}
		tokens = append(tokens, token)
	}
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokenizer -----------------------------------------------------

// Classifier maps a token scanned by text/scanner to a token type.
// Argument tok is the token category reported by text/scanner (Ident, Int, …,
// or the character itself), lexeme is the token text.
type Classifier func(tok rune, lexeme string) pda.TokType

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken rune        // last token this scanner has produced
	Error     func(error) // error handler
	classify  Classifier
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
// Without a classifier option, token types are those of text/scanner, except for
// the end marker '#', which is reported as EOF.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.classify = goClassifier
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() pda.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		return pda.MakeToken(pda.EOF, "", pda.Span{uint64(t.Pos().Offset), uint64(t.Pos().Offset)})
	}
	lexeme := t.TokenText()
	typ := t.classify(t.lastToken, lexeme)
	if typ == pda.ErrorToken {
		t.Error(fmt.Errorf("%s: unexpected %q", t.Position, lexeme))
	}
	return pda.MakeToken(typ, lexeme, pda.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)})
}

func goClassifier(tok rune, lexeme string) pda.TokType {
	if tok == EndMarker {
		return pda.EOF
	}
	return pda.TokType(tok)
}

// --- Slice tokenizer -------------------------------------------------------

// SliceTokenizer delivers tokens from a slice.
type SliceTokenizer struct {
	tokens []pda.Token
	pos    int
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// NewSliceTokenizer creates a tokenizer for pre-classified tokens.
func NewSliceTokenizer(tokens []pda.Token) *SliceTokenizer {
	return &SliceTokenizer{tokens: tokens}
}

// NextToken is part of the Tokenizer interface.
func (t *SliceTokenizer) NextToken() pda.Token {
	if t.pos >= len(t.tokens) {
		var end uint64
		if len(t.tokens) > 0 {
			end = t.tokens[len(t.tokens)-1].Span().To()
		}
		return pda.MakeToken(pda.EOF, "", pda.Span{end, end})
	}
	t.pos++
	return t.tokens[t.pos-1]
}

// SetErrorHandler is part of the Tokenizer interface. Slice tokenizers do not
// report errors.
func (t *SliceTokenizer) SetErrorHandler(func(error)) {}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments set or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// WithClassifier sets a function for mapping scanned tokens to token types.
func WithClassifier(c Classifier) Option {
	return func(t *DefaultTokenizer) {
		if c != nil {
			t.classify = c
		}
	}
}
