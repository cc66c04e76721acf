/*
Package trace records the configurations a parser passes through.

Both the predictive parser of package ll1 and the shift-reduce parser of
package slr write to a Recorder. Every step is recorded before its transition
is applied, so a trace replays the complete run of a parser: the symbol stack,
the state stack (shift-reduce only), the remaining input and the action taken
in each configuration. A failing step is part of the trace, too.

Traces are deterministic: parsing the same input with the same tables will
yield identical traces, down to their textual representation.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package trace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pda.lr'.
func tracer() tracing.Trace {
	return tracing.Select("pda.lr")
}
