/*
Package runtime implements the per-session state of analysis clients:
ordered, de-duplicating registries for identifiers and constants, and a
session lexer feeding them.

Registries are owned by a Session and passed around by reference. There is
no package level state, so independent sessions (e.g. concurrent requests of
a server or subtests) never see each other's entries.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package runtime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pda.runtime'.
func tracer() tracing.Trace {
	return tracing.Select("pda.runtime")
}
