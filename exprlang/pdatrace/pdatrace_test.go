package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/pda/exprlang"
	"github.com/npillmayer/pda/lr/ll1"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "pdatrace.toml", `
trace = "Debug"
tables = "expr.yaml"
strict = true
`)
	c, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config{Trace: "Debug", Tables: "expr.yaml", Strict: true}, c)
	path = writeFile(t, "bad.toml", `colour = "blue"`)
	_, err = loadConfig(path)
	assert.Error(t, err)
}

func TestParseCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.cli")
	defer teardown()
	//
	assert.NoError(t, Execute([]string{"ll1", "a + b * (c - 1)"}))
	assert.NoError(t, Execute([]string{"lr", "a + b * (c - 1)"}))
	err := Execute([]string{"lr", "a + + b"})
	assert.True(t, errors.Is(err, errRejected))
	err = Execute([]string{"ll1", "a +"})
	assert.True(t, errors.Is(err, errRejected))
	assert.NoError(t, Execute([]string{"first"}))
	assert.NoError(t, Execute([]string{"table"}))
}

func TestCustomTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.cli")
	defer teardown()
	//
	grammar := writeFile(t, "expr.txt", exprlang.GrammarText)
	tables := writeFile(t, "expr.yaml", string(exprlang.TablesYAML()))
	defer func() { conf.LRGrammar, conf.Tables = "", "" }()
	assert.NoError(t, Execute([]string{"lr", "--lr-grammar", grammar, "--tables", tables, "i*(i+i)"}))
	assert.Error(t, Execute([]string{"lr", "--lr-grammar", grammar, "--tables", "", "i"}))
}

func TestStrictGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.cli")
	defer teardown()
	//
	grammar := writeFile(t, "ambiguous.txt", "S → ab | ac\n")
	defer func() { conf.Grammar, conf.Strict = "", false }()
	err := Execute([]string{"table", "--grammar", grammar, "--strict"})
	assert.True(t, errors.Is(err, ll1.ErrNotLL1))
	assert.NoError(t, Execute([]string{"table", "--grammar", grammar, "--strict=false"}))
}

func TestREPLCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.cli")
	defer teardown()
	//
	intp, err := newIntp()
	require.NoError(t, err)
	assert.False(t, intp.Eval("alpha * (beta - 2)"))
	assert.False(t, intp.Eval(":ll1"))
	assert.Equal(t, "ll1", intp.mode)
	assert.False(t, intp.Eval("alpha + gamma"))
	assert.False(t, intp.Eval(":ids"))
	assert.False(t, intp.Eval(":table"))
	assert.False(t, intp.Eval(":nonsense"))
	assert.Equal(t, 3, intp.session.Identifiers.Len())
	assert.True(t, intp.Eval(":quit"))
}

func TestEvalCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.cli")
	defer teardown()
	//
	defer func() { bindings = nil }()
	assert.NoError(t, Execute([]string{"eval", "--let", "a=2,b=3", "(a + b * 4) * -a"}))
	bindings = nil
	assert.NoError(t, Execute([]string{"eval", "1.5 * 4"}))
	err := Execute([]string{"eval", "a + + b"})
	assert.True(t, errors.Is(err, errRejected))
	err = Execute([]string{"eval", "a / 2"})
	assert.True(t, errors.Is(err, errRejected))
	bindings = map[string]string{}
	err = Execute([]string{"eval", "--let", "a=two", "a"})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, errRejected))
}

func TestREPLBindings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.cli")
	defer teardown()
	//
	intp, err := newIntp()
	require.NoError(t, err)
	assert.False(t, intp.Eval(":let x = 4"))
	assert.False(t, intp.Eval(":let y 4"))
	assert.False(t, intp.Eval(":eval 2 * -(x - 1)"))
	assert.False(t, intp.Eval(":frobnicate x"))
	i, ok := intp.session.Identifiers.Lookup("x")
	require.True(t, ok)
	e, _ := intp.session.Identifiers.At(i)
	assert.Equal(t, 4.0, e.Value)
	_, ok = intp.session.Identifiers.Lookup("y")
	assert.False(t, ok)
}
