package pda

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Apart from EOF and ErrorToken we do
// not define any constants here, as it is up to applications to define them.
// For single-character terminals the usual choice is the rune itself.
type TokType int

// EOF signals the end of input. It is identical to text/scanner.EOF and is
// interpreted as the end marker '#' by the parsers.
const EOF TokType = -1

// ErrorToken is the category of lexemes a scanner could not classify. Scanners
// pass them on instead of dropping them, so parsers will fail on them at the
// correct position.
const ErrorToken TokType = -2

// TokTypeStringer is a type to be provided by a scanner/parser combination to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for an identifier in an arithmetic expression:
//
//    TokType = 'i'         // identifier for this kind of tokens (application specific)
//    Lexeme  = "alpha"     // lexeme how it appeared in the input stream
//    Value   = 3           // index into the identifier registry of a session
//    Span    = 67…72       // occured from position 67 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. A span
// denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}

// --- Simple tokens ----------------------------------------------------

// SimpleToken is an unsophisticated token type, used by the scanners of
// this module and handy for feeding pre-classified input to a parser.
type SimpleToken struct {
	Kind TokType
	Text string
	Val  interface{}
	Pos  Span
}

var _ Token = SimpleToken{}

// MakeToken creates a token without a value.
func MakeToken(typ TokType, lexeme string, span Span) SimpleToken {
	return SimpleToken{Kind: typ, Text: lexeme, Pos: span}
}

func (t SimpleToken) TokType() TokType   { return t.Kind }
func (t SimpleToken) Lexeme() string     { return t.Text }
func (t SimpleToken) Value() interface{} { return t.Val }
func (t SimpleToken) Span() Span         { return t.Pos }

func (t SimpleToken) String() string {
	if t.Kind == EOF {
		return "#"
	}
	return fmt.Sprintf("%q%s", t.Text, t.Pos)
}

// TokensFromString is a helper to create a token for every rune of s,
// using the rune as token category. '#' is translated to EOF. It is meant
// for grammars with single-character terminals, e.g. "i+i*i#".
func TokensFromString(s string) []Token {
	tokens := make([]Token, 0, len(s))
	pos := uint64(0)
	for _, r := range s {
		typ := TokType(r)
		if r == '#' {
			typ = EOF
		}
		tokens = append(tokens, MakeToken(typ, string(r), Span{pos, pos + 1}))
		pos++
	}
	return tokens
}
