/*
Package exprlang provides reference data for arithmetic expressions: an LL(1)
grammar to be used with a predictive parser, and a left-recursive grammar
together with hand-authored SLR(1) tables for a shift-reduce parser.

Both grammars use single-character terminals, with 'i' for operands:

    LL(1)                          shift-reduce
    E → T G                        E' → E
    G → + T G | - T G | ε          E  → E + T | E - T | T
    T → F S                        T  → T * F | T / F | F
    S → * F S | / F S | ε          F  → ( E ) | i
    F → ( E ) | i

A runtime.Session produces matching tokens from text.

Postfix form

ToPostfix converts scanned expressions to postfix notation by operator
precedence, writing unary minus as '@' ("-a+b" becomes "a @ b +").
FromParse derives the same form from an accepted shift-reduce trace.
Evaluate computes the value of a postfix expression, taking the values of
identifiers from the session. Conversion and evaluation both return their
process tables, one row per step.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package exprlang

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/npillmayer/pda"
	"github.com/npillmayer/pda/lr"
	"github.com/npillmayer/pda/lr/slr"
	"github.com/npillmayer/pda/runtime"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pda.lr'.
func tracer() tracing.Trace {
	return tracing.Select("pda.lr")
}

// LL1GrammarText is the textual form of the LL(1) expression grammar.
const LL1GrammarText = `
// expressions without left recursion
E → TG
G → +TG | -TG | ε
T → FS
S → *FS | /FS | ε
F → (E) | i
`

// GrammarText is the textual form of the left-recursive expression grammar.
// Production 0 is the augmented start production.
const GrammarText = `
E' → E
E  → E+T | E-T | T
T  → T*F | T/F | F
F  → (E) | i
`

//go:embed expr_tables.yaml
var tablesYAML []byte

// LL1ExpressionGrammar returns the LL(1) expression grammar.
func LL1ExpressionGrammar() *lr.Grammar {
	return lr.MustParseGrammar("LL(1) Expressions", LL1GrammarText)
}

// ExpressionGrammar returns the left-recursive expression grammar.
func ExpressionGrammar() *lr.Grammar {
	return lr.MustParseGrammar("Expressions", GrammarText)
}

// ExpressionTables returns the reference SLR(1) tables for ExpressionGrammar.
// Every call returns a fresh copy.
func ExpressionTables() *slr.Tables {
	tables, err := slr.ReadTables(bytes.NewReader(tablesYAML), ExpressionGrammar())
	if err != nil {
		panic(fmt.Errorf("reference tables are broken: %w", err))
	}
	return tables
}

// TablesYAML returns the YAML document the reference tables are read from.
func TablesYAML() []byte {
	return append([]byte(nil), tablesYAML...)
}

// Tokens scans an expression with a session lexer. If the text does not
// contain an end marker, EOF is appended. Identifiers and constants are
// registered with the session.
func Tokens(session *runtime.Session, text string) ([]pda.Token, error) {
	tokens, err := session.Tokenize(strings.TrimSpace(text))
	if err != nil {
		tracer().Errorf("lexical errors in %q: %v", text, err)
	}
	return tokens, err
}
