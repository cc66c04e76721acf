package lr

import (
	"fmt"
	"unicode"

	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/pda"
)

// SymbolKind tags a grammar symbol.
type SymbolKind int8

// Kinds of grammar symbols. The order of the constants is the order in which
// symbols are sorted within sets.
const (
	TerminalKind SymbolKind = iota
	NonTerminalKind
	EpsilonKind
	EndMarkerKind
)

func (k SymbolKind) String() string {
	switch k {
	case TerminalKind:
		return "terminal"
	case NonTerminalKind:
		return "non-terminal"
	case EpsilonKind:
		return "epsilon"
	case EndMarkerKind:
		return "end-marker"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Symbol is a grammar symbol. Two symbols are equal if and only if they have
// the same kind and code, so symbols may be compared with == and used as map keys.
//
// The code of a terminal is the token type a scanner delivers for it.
// For single character terminals this usually is the character itself.
// Codes of non-terminals are assigned by the grammar.
type Symbol struct {
	Kind SymbolKind
	Code int
}

// Epsilon denotes the empty word. It only appears as the sole body symbol
// of an epsilon-production and as a member of FIRST sets.
var Epsilon = Symbol{Kind: EpsilonKind}

// EndMarker denotes the end of input, written as '#'.
var EndMarker = Symbol{Kind: EndMarkerKind}

// Terminal creates a terminal symbol for a token type.
func Terminal(code int) Symbol {
	return Symbol{Kind: TerminalKind, Code: code}
}

// NonTerminal creates a non-terminal symbol.
func NonTerminal(code int) Symbol {
	return Symbol{Kind: NonTerminalKind, Code: code}
}

// SymbolFor maps a token category to the grammar symbol it represents.
// EOF is mapped to EndMarker, all other token types to terminals.
// Error tokens are mapped to a terminal as well; as no grammar declares it,
// every table lookup for it will fail.
func SymbolFor(tt pda.TokType) Symbol {
	if tt == pda.EOF {
		return EndMarker
	}
	return Terminal(int(tt))
}

// TokType returns the token category a symbol stands for. It is meaningful
// for terminals and the end marker only.
func (A Symbol) TokType() pda.TokType {
	if A.Kind == EndMarkerKind {
		return pda.EOF
	}
	return pda.TokType(A.Code)
}

// IsTerminal is true for terminals.
func (A Symbol) IsTerminal() bool {
	return A.Kind == TerminalKind
}

// IsNonTerminal is true for non-terminals.
func (A Symbol) IsNonTerminal() bool {
	return A.Kind == NonTerminalKind
}

// IsEpsilon is true for the empty word.
func (A Symbol) IsEpsilon() bool {
	return A.Kind == EpsilonKind
}

// IsEndMarker is true for the end of input.
func (A Symbol) IsEndMarker() bool {
	return A.Kind == EndMarkerKind
}

// IsLookahead is true for symbols which may appear as input: terminals and the end marker.
func (A Symbol) IsLookahead() bool {
	return A.Kind == TerminalKind || A.Kind == EndMarkerKind
}

// String is a fallback for symbols without a grammar at hand.
// Use Grammar.SymbolName for the names given to symbols on grammar construction.
func (A Symbol) String() string {
	switch A.Kind {
	case EpsilonKind:
		return "ε"
	case EndMarkerKind:
		return "#"
	case NonTerminalKind:
		return fmt.Sprintf("N%d", A.Code)
	}
	if A.Code >= 0 && A.Code <= unicode.MaxRune && unicode.IsPrint(rune(A.Code)) {
		return string(rune(A.Code))
	}
	return fmt.Sprintf("t%d", A.Code)
}

// symbolComparator orders symbols by kind, then by code.
func symbolComparator(s1, s2 interface{}) int {
	a, b := s1.(Symbol), s2.(Symbol)
	if a.Kind != b.Kind {
		return utils.IntComparator(int(a.Kind), int(b.Kind))
	}
	return utils.IntComparator(a.Code, b.Code)
}

// CompareSymbols is a comparator for symbols, ordering them by kind and code.
// It is compatible with the comparators of github.com/emirpasic/gods.
func CompareSymbols(a, b Symbol) int {
	return symbolComparator(a, b)
}

// Column maps a lookahead symbol (terminal or end marker) to a column index of
// a parse table. The end marker uses the column of token type EOF, which is
// why no terminal may have EOF as its code.
func (A Symbol) Column() int {
	if A.Kind == EndMarkerKind {
		return int(pda.EOF)
	}
	return A.Code
}

// LookaheadForColumn is the inverse of Symbol.Column.
func LookaheadForColumn(col int) Symbol {
	return SymbolFor(pda.TokType(col))
}
