package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/pda/exprlang"
	"github.com/npillmayer/pda/lr"
	"github.com/npillmayer/pda/lr/slr"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// config holds the settings of a run. Values are read from a TOML file and
// may be overridden by flags.
//
//    trace      = "Info"
//    grammar    = "ll1.txt"       # textual grammar for first, table, ll1
//    lr_grammar = "lr.txt"        # textual grammar for lr
//    tables     = "lr.yaml"       # SLR tables for lr_grammar
//    strict     = true            # treat LL(1) conflicts as errors
//    chars      = false           # one token per character
//
type config struct {
	Trace     string `toml:"trace"`
	Grammar   string `toml:"grammar"`
	LRGrammar string `toml:"lr_grammar"`
	Tables    string `toml:"tables"`
	Strict    bool   `toml:"strict"`
	Chars     bool   `toml:"chars"`
}

var (
	conf       config
	configFile string
)

// errRejected signals rejected input; the details have been printed already.
var errRejected = errors.New("input rejected")

var rootCmd = &cobra.Command{
	Use:   "pdatrace",
	Short: "Trace predictive and shift-reduce parsers on expressions",
	Long: `pdatrace computes FIRST and FOLLOW sets and an LL(1) table for a grammar,
and prints step-by-step traces of a predictive parser and of a table-driven
shift-reduce parser.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "TOML configuration file")
	flags.StringVar(&conf.Trace, "trace", "Error", "trace level [Debug|Info|Error]")
	flags.StringVar(&conf.Grammar, "grammar", "", "file with an LL(1) grammar (default: expressions)")
	flags.StringVar(&conf.LRGrammar, "lr-grammar", "", "file with a grammar for the shift-reduce parser (default: expressions)")
	flags.StringVar(&conf.Tables, "tables", "", "YAML file with SLR tables for the shift-reduce grammar")
	flags.BoolVar(&conf.Strict, "strict", false, "treat LL(1) conflicts as errors")
	flags.BoolVar(&conf.Chars, "chars", false, "tokenize input as one token per character")
}

// Execute runs the command line given by args.
func Execute(args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errRejected) {
		pterm.Error.Println(err.Error())
	}
	return err
}

// setup reads the configuration file, lets flags override its values and
// sets up tracing.
func setup(cmd *cobra.Command, args []string) error {
	if configFile != "" {
		fileconf, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		merge := func(flag string, dst *string, val string) {
			if !flags.Changed(flag) && val != "" {
				*dst = val
			}
		}
		merge("trace", &conf.Trace, fileconf.Trace)
		merge("grammar", &conf.Grammar, fileconf.Grammar)
		merge("lr-grammar", &conf.LRGrammar, fileconf.LRGrammar)
		merge("tables", &conf.Tables, fileconf.Tables)
		if !flags.Changed("strict") {
			conf.Strict = fileconf.Strict
		}
		if !flags.Changed("chars") {
			conf.Chars = fileconf.Chars
		}
	}
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(conf.Trace)
	for _, key := range []string{"pda.lr", "pda.scanner", "pda.runtime", "pda.cli"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("trace level is %s", conf.Trace)
	return nil
}

// loadConfig reads a TOML configuration file. Unknown keys are errors.
func loadConfig(filename string) (config, error) {
	var c config
	md, err := toml.DecodeFile(filename, &c)
	if err != nil {
		return c, fmt.Errorf("reading configuration: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return c, fmt.Errorf("reading configuration: unknown key %q", undecoded[0].String())
	}
	return c, nil
}

// ll1Grammar loads the grammar for the predictive parser.
func ll1Grammar() (*lr.Grammar, error) {
	if conf.Grammar == "" {
		return exprlang.LL1ExpressionGrammar(), nil
	}
	return readGrammar(conf.Grammar)
}

// lrTables loads the grammar and tables for the shift-reduce parser. A custom
// grammar requires custom tables.
func lrTables() (*slr.Tables, error) {
	if conf.LRGrammar == "" && conf.Tables == "" {
		return exprlang.ExpressionTables(), nil
	}
	g := exprlang.ExpressionGrammar()
	if conf.LRGrammar != "" {
		var err error
		if g, err = readGrammar(conf.LRGrammar); err != nil {
			return nil, err
		}
		if conf.Tables == "" {
			return nil, fmt.Errorf("grammar %s needs tables, use --tables", conf.LRGrammar)
		}
	}
	f, err := os.Open(conf.Tables)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return slr.ReadTables(f, g)
}

func readGrammar(filename string) (*lr.Grammar, error) {
	text, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return lr.ParseGrammar(filename, string(text))
}
