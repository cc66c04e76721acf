/*
Command pdatrace runs the parsers of this module on expressions and prints
FIRST/FOLLOW sets, parse tables and parser traces.

    pdatrace first                  FIRST and FOLLOW sets of the LL(1) grammar
    pdatrace table                  LL(1) table and conflicts
    pdatrace ll1 "a + b * c"        trace of the predictive parser
    pdatrace lr "a + b * c"         trace of the shift-reduce parser
    pdatrace lr --dump-tables       SLR tables as YAML
    pdatrace repl                   interactive mode

By default the reference expression grammars and tables of package exprlang are
used. Flags --grammar, --lr-grammar and --tables load them from files instead.
Settings may be given in a TOML file with --config; flags take precedence.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
)

// tracer traces with key 'pda.cli'.
func tracer() tracing.Trace {
	return tracing.Select("pda.cli")
}

func main() {
	initDisplay()
	if err := Execute(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
