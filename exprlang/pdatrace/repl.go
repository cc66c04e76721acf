package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/pda/lr"
	"github.com/npillmayer/pda/lr/ll1"
	"github.com/npillmayer/pda/lr/slr"
	"github.com/npillmayer/pda/runtime"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "repl",
		Short: "Parse expressions interactively",
		Long: `repl reads expressions line by line and prints the trace of the current
parser. Commands start with a colon:

    :ll1 / :lr    switch to the predictive / shift-reduce parser
    :first        print FIRST and FOLLOW sets
    :table        print the current parser's table
    :ids          print the identifiers and constants seen so far
    :let x = 2    give identifier x a value
    :eval expr    convert expr to postfix form and evaluate it
    :quit         leave (or <ctrl>D)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			intp, err := newIntp()
			if err != nil {
				return err
			}
			repl, err := readline.New("pda> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			intp.repl = repl
			pterm.Info.Println("Welcome to pdatrace, quit with <ctrl>D")
			intp.REPL()
			return nil
		},
	})
}

// Intp is our interpreter object. It keeps one session for the whole
// interactive run, so identifiers keep their indices from line to line.
type Intp struct {
	mode       string // "ll1" or "lr"
	session    *runtime.Session
	ll1Table   *ll1.Table
	predictive *ll1.Parser
	lrParser   *slr.Parser
	repl       *readline.Instance
}

func newIntp() (*Intp, error) {
	table, err := ll1Table()
	if err != nil {
		return nil, err
	}
	tables, err := lrTables()
	if err != nil {
		return nil, err
	}
	p, err := slr.NewParser(tables)
	if err != nil {
		return nil, err
	}
	session, err := runtime.NewSession("repl")
	if err != nil {
		return nil, err
	}
	return &Intp{
		mode:       "lr",
		session:    session,
		ll1Table:   table,
		predictive: ll1.NewParser(table),
		lrParser:   p,
	}, nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if intp.Eval(line) {
			break
		}
	}
	pterm.Println("Good bye!")
}

// Eval executes a command or parses an expression. It returns true if the
// user wants to quit.
func (intp *Intp) Eval(line string) bool {
	if !strings.HasPrefix(line, ":") {
		var err error
		if intp.mode == "ll1" {
			err = runLL1(intp.predictive, intp.session, line)
		} else {
			err = runLR(intp.lrParser, intp.session, line)
		}
		if err != nil {
			tracer().Debugf("%v", err)
		}
		return false
	}
	cmd := strings.TrimPrefix(line, ":")
	if verb, arg, found := strings.Cut(cmd, " "); found {
		intp.evalWithArgument(verb, strings.TrimSpace(arg))
		return false
	}
	switch cmd {
	case "quit", "q":
		return true
	case "ll1", "lr":
		intp.mode = cmd
		pterm.Info.Println(fmt.Sprintf("using the %s parser", cmd))
	case "first":
		printSets(intp.analysis())
	case "table":
		if intp.mode == "ll1" {
			printLL1Table(intp.ll1Table)
		} else {
			printLRTables(intp.lrParser.Tables())
		}
	case "ids":
		pterm.Println(intp.session.Identifiers.String())
		pterm.Println(intp.session.Constants.String())
	default:
		pterm.Error.Println(fmt.Sprintf("unknown command %q", cmd))
	}
	return false
}

// evalWithArgument executes the commands taking an argument.
func (intp *Intp) evalWithArgument(verb, arg string) {
	switch verb {
	case "let":
		name, val, found := strings.Cut(arg, "=")
		if !found {
			pterm.Error.Println("usage: :let name = value")
			return
		}
		if err := bind(intp.session, name, val); err != nil {
			pterm.Error.Println(err.Error())
		}
	case "eval":
		if err := runEval(intp.session, arg); err != nil && !errors.Is(err, errRejected) {
			pterm.Error.Println(err.Error())
		}
	default:
		pterm.Error.Println(fmt.Sprintf("unknown command %q", verb))
	}
}

func (intp *Intp) analysis() *lr.Analysis {
	return lr.Analyze(intp.ll1Table.Grammar())
}
