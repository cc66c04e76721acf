/*
Package ll1 provides predictive parsing: construction of LL(1) parse tables
and a table-driven predictive parser.

Usage

Clients analyse a grammar and build a table from it:

	ga := lr.Analyze(g)
	table, conflicts := ll1.BuildFromAnalysis(ga)
	if !conflicts.IsLL1() { ... }  // table is usable, but some productions are shadowed

Table construction always completes. If two productions compete for the same
table cell, the production declared first keeps the cell and the other one
is recorded in the conflict report. Clients which do not want to parse with
shadowed productions use BuildStrict.

Finally parse some input:

	p := ll1.NewParser(table)
	result := p.Parse(pda.TokensFromString("i+i*i#"))
	if result.Accepted { ... }

The result carries a complete trace of the parser's configurations, see
package trace.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pda.lr'.
func tracer() tracing.Trace {
	return tracing.Select("pda.lr")
}
