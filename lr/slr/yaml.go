package slr

import (
	"fmt"
	"io"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/pda/lr"
	"gopkg.in/yaml.v3"
)

// tableDoc is the YAML representation of a table bundle. States are map keys,
// symbols are referenced by their names in the grammar.
//
//    grammar: G
//    action:
//      0: { i: s5, "(": s4 }
//      1: { "+": s6, "#": acc }
//    goto:
//      0: { E: 1, T: 2, F: 3 }
//
type tableDoc struct {
	Grammar string                    `yaml:"grammar,omitempty"`
	Action  map[int]map[string]string `yaml:"action"`
	Goto    map[int]map[string]int    `yaml:"goto"`
}

// ReadTables reads ACTION and GOTO tables for grammar g from a YAML document.
// Unknown keys, unknown symbol names and malformed actions are errors, reported
// in order of states and symbol names. The tables returned have been validated.
func ReadTables(r io.Reader, g *lr.Grammar) (*Tables, error) {
	var doc tableDoc
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTableFormat, err)
	}
	tables := NewTables(g)
	var problems *multierror.Error
	for _, s := range sortedStates(doc.Action) {
		row := doc.Action[s]
		for _, name := range sortedNames(row) {
			cell := row[name]
			a, ok := g.SymbolByName(name)
			if !ok || !a.IsLookahead() {
				problems = multierror.Append(problems, fmt.Errorf("%w: ACTION[%d]: unknown lookahead %q",
					ErrTableFormat, s, name))
				continue
			}
			act, err := ParseAction(cell)
			if err != nil {
				problems = multierror.Append(problems, fmt.Errorf("ACTION[%d, %s]: %w", s, name, err))
				continue
			}
			tables.Action.Set(s, a, act)
		}
	}
	for _, s := range sortedStates(doc.Goto) {
		row := doc.Goto[s]
		for _, name := range sortedNames(row) {
			target := row[name]
			N, ok := g.SymbolByName(name)
			if !ok || !N.IsNonTerminal() {
				problems = multierror.Append(problems, fmt.Errorf("%w: GOTO[%d]: unknown non-terminal %q",
					ErrTableFormat, s, name))
				continue
			}
			tables.Goto.Set(s, N, target)
		}
	}
	if problems.ErrorOrNil() != nil {
		problems.ErrorFormat = multierror.ListFormatFunc
		return nil, problems
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	tracer().Debugf("read tables for %q with %d states", g.Name, tables.States())
	return tables, nil
}

func sortedStates[V any](rows map[int]V) []int {
	states := make([]int, 0, len(rows))
	for s := range rows {
		states = append(states, s)
	}
	sort.Ints(states)
	return states
}

func sortedNames[V any](row map[string]V) []string {
	names := make([]string, 0, len(row))
	for name := range row {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteYAML writes the tables as a YAML document, which may be read back
// with ReadTables.
func (t *Tables) WriteYAML(w io.Writer) error {
	g := t.Grammar
	doc := tableDoc{
		Grammar: g.Name,
		Action:  make(map[int]map[string]string),
		Goto:    make(map[int]map[string]int),
	}
	t.Action.Each(func(s int, a lr.Symbol, act Action) {
		if doc.Action[s] == nil {
			doc.Action[s] = make(map[string]string)
		}
		doc.Action[s][g.SymbolName(a)] = act.String()
	})
	t.Goto.Each(func(s int, N lr.Symbol, target int) {
		if doc.Goto[s] == nil {
			doc.Goto[s] = make(map[string]int)
		}
		doc.Goto[s][g.SymbolName(N)] = target
	})
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	return enc.Close()
}
