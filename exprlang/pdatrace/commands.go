package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/pda"
	"github.com/npillmayer/pda/exprlang"
	"github.com/npillmayer/pda/lr"
	"github.com/npillmayer/pda/lr/ll1"
	"github.com/npillmayer/pda/lr/slr"
	"github.com/npillmayer/pda/lr/trace"
	"github.com/npillmayer/pda/runtime"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	dumpTables bool
	bindings   map[string]string
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "first",
		Short: "Print FIRST and FOLLOW sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := ll1Grammar()
			if err != nil {
				return err
			}
			printSets(lr.Analyze(g))
			return nil
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "table",
		Short: "Print the LL(1) table and its conflicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := ll1Table()
			if err != nil {
				return err
			}
			printLL1Table(table)
			return nil
		},
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:     "ll1 <input>",
		Short:   "Trace the predictive parser",
		Example: `  pdatrace ll1 "a + b * (c - 1)"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := ll1Table()
			if err != nil {
				return err
			}
			session, err := runtime.NewSession("pdatrace")
			if err != nil {
				return err
			}
			return runLL1(ll1.NewParser(table), session, strings.Join(args, " "))
		},
	})
	lrCmd := &cobra.Command{
		Use:     "lr [input]",
		Short:   "Trace the shift-reduce parser",
		Example: `  pdatrace lr "a + b * (c - 1)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := lrTables()
			if err != nil {
				return err
			}
			if dumpTables {
				return tables.WriteYAML(os.Stdout)
			}
			if len(args) == 0 {
				printLRTables(tables)
				return nil
			}
			p, err := slr.NewParser(tables)
			if err != nil {
				return err
			}
			session, err := runtime.NewSession("pdatrace")
			if err != nil {
				return err
			}
			return runLR(p, session, strings.Join(args, " "))
		},
	}
	lrCmd.Flags().BoolVar(&dumpTables, "dump-tables", false, "write the tables as YAML and exit")
	rootCmd.AddCommand(lrCmd)
	evalCmd := &cobra.Command{
		Use:   "eval <input>",
		Short: "Convert an expression to postfix form and evaluate it",
		Long: `eval checks the syntax of an expression with the shift-reduce parser,
converts it to postfix form and evaluates it. A unary minus is written as '@'
in postfix form. Identifiers are given values with --let.`,
		Example: `  pdatrace eval --let a=2,b=3 "(a + b * 4) * -a"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := runtime.NewSession("pdatrace")
			if err != nil {
				return err
			}
			for name, val := range bindings {
				if err := bind(session, name, val); err != nil {
					return err
				}
			}
			return runEval(session, strings.Join(args, " "))
		},
	}
	evalCmd.Flags().StringToStringVar(&bindings, "let", nil, "values of identifiers, e.g. a=2,b=3")
	rootCmd.AddCommand(evalCmd)
}

// ll1Table builds the LL(1) table, honouring the strict setting.
func ll1Table() (*ll1.Table, error) {
	g, err := ll1Grammar()
	if err != nil {
		return nil, err
	}
	ga := lr.Analyze(g)
	if conf.Strict {
		return ll1.BuildStrict(ga)
	}
	table, conflicts := ll1.BuildFromAnalysis(ga)
	if !conflicts.IsLL1() {
		pterm.Warning.Println(fmt.Sprintf("grammar %s is not LL(1), the first production wins:\n%s",
			g.Name, conflicts.Format(g)))
	}
	return table, nil
}

// tokens scans input, either with the session lexer or as one token per
// non-blank character.
func tokens(session *runtime.Session, input string) ([]pda.Token, error) {
	if conf.Chars {
		toks := pda.TokensFromString(strings.Join(strings.Fields(input), ""))
		if len(toks) == 0 || toks[len(toks)-1].TokType() != pda.EOF {
			end := uint64(len(toks))
			toks = append(toks, pda.MakeToken(pda.EOF, "", pda.Span{end, end}))
		}
		return toks, nil
	}
	return exprlang.Tokens(session, input)
}

func runLL1(p *ll1.Parser, session *runtime.Session, input string) error {
	toks, err := tokens(session, input)
	if err != nil {
		pterm.Warning.Println(err.Error())
	}
	return report(p.Parse(toks), false)
}

func runLR(p *slr.Parser, session *runtime.Session, input string) error {
	toks, err := tokens(session, input)
	if err != nil {
		pterm.Warning.Println(err.Error())
	}
	return report(p.Parse(toks), true)
}

// bind gives an identifier a value given as text.
func bind(session *runtime.Session, name, val string) error {
	name = strings.TrimSpace(name)
	v, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return fmt.Errorf("value of %s: %w", name, err)
	}
	session.Bind(name, v)
	return nil
}

// runEval checks the syntax of an expression, then prints the process tables
// of its conversion to postfix form and of the evaluation.
func runEval(session *runtime.Session, input string) error {
	toks, err := exprlang.Tokens(session, input)
	if err != nil {
		pterm.Warning.Println(err.Error())
	}
	p, err := slr.NewParser(exprlang.ExpressionTables())
	if err != nil {
		return err
	}
	if result := p.Parse(toks); !result.Accepted {
		pterm.Error.Println(result.Err.Error())
		return errRejected
	}
	pf, conversion, err := exprlang.ToPostfix(toks)
	if err != nil {
		return err
	}
	data := pterm.TableData{{"step", "current", "input", "operators", "output"}}
	for _, step := range conversion {
		data = append(data, step.Columns())
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Info.Println("postfix: " + pf.String())
	value, evaluation, err := exprlang.Evaluate(pf, session)
	data = pterm.TableData{{"step", "current", "stack", "note"}}
	for _, step := range evaluation {
		data = append(data, step.Columns())
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if err != nil {
		pterm.Error.Println(err.Error())
		return errRejected
	}
	pterm.Info.Println(fmt.Sprintf("%s = %s", strings.TrimSpace(input), strconv.FormatFloat(value, 'g', -1, 64)))
	return nil
}

// report prints the trace of a parse and its outcome.
func report(result *trace.Result, withStates bool) error {
	data := pterm.TableData{{"step", "states", "symbols", "input", "action"}}
	if !withStates {
		data[0] = []string{"step", "stack", "input", "action"}
	}
	for _, row := range result.Rows() {
		if !withStates {
			row = append(row[:1], row[2:]...)
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if !result.Accepted {
		pterm.Error.Println(result.Err.Error())
		return errRejected
	}
	pterm.Info.Println(fmt.Sprintf("accepted in %d steps", len(result.Trace)))
	return nil
}

func printSets(ga *lr.Analysis) {
	g := ga.Grammar()
	data := pterm.TableData{{"non-terminal", "FIRST", "FOLLOW", "nullable"}}
	for _, N := range g.NonTerminals() {
		nullable := ""
		if ga.Nullable(N) {
			nullable = "yes"
		}
		data = append(data, []string{g.SymbolName(N), ga.First(N).Format(g.SymbolName),
			ga.Follow(N).Format(g.SymbolName), nullable})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLL1Table(table *ll1.Table) {
	g := table.Grammar()
	la := append(g.Terminals(), lr.EndMarker)
	header := []string{""}
	for _, a := range la {
		header = append(header, g.SymbolName(a))
	}
	data := pterm.TableData{header}
	for _, N := range g.NonTerminals() {
		row := []string{g.SymbolName(N)}
		for _, a := range la {
			cell := ""
			if p, ok := table.Lookup(N, a); ok {
				cell = g.ProductionString(p)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printLRTables(tables *slr.Tables) {
	pterm.Println(tables.Grammar.String())
	pterm.DefaultTable.WithHasHeader().WithData(tables.Rows()).Render()
}
