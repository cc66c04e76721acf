/*
Package slr provides a table-driven shift-reduce parser. The parser does not
compute its tables: clients supply an ACTION table, a GOTO table and the
grammar whose productions the reduce-actions refer to. Any SLR, LALR or
canonical LR table, generated or hand-written, may be plugged in.

This parser is intended for small to moderate grammars, e.g. for classroom
examples, configuration input or small domain-specific languages. It is *not*
intended for full-fledged programming languages.

Usage

Clients construct a grammar, where production 0 usually is the augmented
start production S' → S:

	g := lr.MustParseGrammar("G", `
	    S' → S
	    S  → (S) | x
	`)

Tables may be set up programmatically

	tables := slr.NewTables(g)
	tables.Action.Set(0, lr.Terminal('x'), slr.Shift(3))
	tables.Goto.Set(0, S, 1)
	…

or read from a YAML document (see ReadTables):

	tables, err := slr.ReadTables(reader, g)

Finally parse some input:

	p, err := slr.NewParser(tables)   // validates the tables
	result := p.Parse(pda.TokensFromString("((x))#"))
	if !result.Accepted {
	    fmt.Println(result.Err)
	}

Every step of the parser is recorded in the trace of the result.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pda.lr'.
func tracer() tracing.Trace {
	return tracing.Select("pda.lr")
}
