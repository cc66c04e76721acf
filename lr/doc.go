/*
Package lr implements grammars and static grammar analysis as a prerequisite
for table-driven parsing.
Sub-packages build on it: ll1 constructs predictive parse tables and a
predictive parser, slr drives a shift-reduce parser from ACTION/GOTO tables,
trace records the configurations both parsers pass through.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals
carry a token value of type int. Grammars may contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("A").T("a", 'a').End()  // S  ->  A a
    b.LHS("A").N("B").N("D").End()       // A  ->  B D
    b.LHS("B").T("b", 'b').End()         // B  ->  b
    b.LHS("B").Epsilon()                 // B  ->  ε
    b.LHS("D").T("d", 'd').End()         // D  ->  d
    b.LHS("D").Epsilon()                 // D  ->  ε
    g, err := b.Grammar()

This results in the following trivial grammar:

   g.Dump()

   0: S → A a
   1: A → B D
   2: B → b
   3: B → ε
   4: D → d
   5: D → ε

Alternatively, small grammars may be read from text, one non-terminal per line:

    g, err := lr.ParseGrammar("G", `
        S → A a
        A → B D
        B → b | ε
        D → d | ε
    `)

Symbols which appear on the left side of an arrow are non-terminals, all other
symbols are terminals. If an alternative does not contain spaces, every
character is a symbol of its own.

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an Analysis object, which computes FIRST and
FOLLOW sets for the grammar. Both are computed by iteration to a fixed point
and are read-only thereafter.

    ga := lr.Analyze(g)  // analyser for grammar above
    for _, N := range g.NonTerminals() {
        fmt.Printf("FIRST(%s) = %v\n", g.SymbolName(N), ga.First(N))
    }

    // Output:
    FIRST(S) = {a b d}
    FIRST(A) = {b d ε}
    FIRST(B) = {b ε}
    FIRST(D) = {d ε}

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pda.lr'.
func tracer() tracing.Trace {
	return tracing.Select("pda.lr")
}
