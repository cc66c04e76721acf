package lexmach

import (
	"testing"

	"github.com/npillmayer/pda"
	"github.com/npillmayer/pda/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

// number of tokens including the final EOF
var tokenCounts = []int{2, 4, 3, 4, 4}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.scanner")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	require.NoError(t, err)
	for i, input := range inputStrings {
		sc, err := LM.Scanner(input)
		require.NoError(t, err)
		tokens := scanner.Collect(sc)
		for _, token := range tokens {
			t.Logf(" %4d | %15s | %v", token.TokType(), token.Lexeme(), token.Span())
		}
		assert.Equal(t, tokenCounts[i], len(tokens), "token count for #%d", i)
	}
}

func TestLMErrorTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pda.scanner")
	defer teardown()
	//
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`[a-z]+`), MakeValueToken('i', func(s string) interface{} { return len(s) }))
		lexer.Add([]byte(`( |\t)+`), Skip)
	}
	LM, err := NewLMAdapter(init, []string{"+", "#"}, nil, map[string]int{"+": '+', "#": int(pda.EOF)})
	require.NoError(t, err)
	sc, err := LM.Scanner("ab + ? c#")
	require.NoError(t, err)
	var errs []error
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	tokens := scanner.Collect(sc)
	require.Len(t, tokens, 5) // ab + ? c #
	assert.Equal(t, 2, tokens[0].Value())
	assert.Equal(t, pda.ErrorToken, tokens[2].TokType())
	assert.Equal(t, "?", tokens[2].Lexeme())
	assert.Equal(t, pda.EOF, tokens[4].TokType())
	assert.Equal(t, "#", tokens[4].Lexeme())
	assert.Len(t, errs, 1)
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokens = []string{
		"COMMENT",
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	tokenIds["COMMENT"] = scanner.Comment
	tokenIds["ID"] = scanner.Ident
	tokenIds["NUM"] = scanner.Int
	tokenIds["STRING"] = int(scanner.String)
	for i, tok := range tokens[4:] {
		tokenIds[tok] = i + 10
	}
}
