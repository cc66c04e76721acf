package lr

import (
	"bufio"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
)

// Multi-character terminal names read by ParseGrammar get token values beyond
// the Unicode range, in order of appearance.
const firstNamedTerminal = unicode.MaxRune + 1

// ErrGrammarSyntax is reported for malformed lines of a textual grammar.
var ErrGrammarSyntax = fmt.Errorf("%w: syntax error", ErrGrammarConstruction)

// ParseGrammar reads a grammar from text. Every non-empty line has the form
//
//    A → α | β | …
//
// with an arrow '→' or '->'. Lines starting with "//" are comments. A symbol
// is a non-terminal if it appears on the left side of an arrow somewhere in the text.
// The first non-terminal is the start symbol. Alternatives 'ε' or empty
// alternatives denote epsilon-productions.
//
// If any alternative contains whitespace, symbols are separated by whitespace
// throughout the text. Otherwise every character is a symbol of its own, which
// is convenient for textbook grammars like
//
//    E → TG
//    G → +TG | ε
//
// Single-character terminals get their character as token value. '#' is
// reserved for the end marker and may not be used as a symbol.
func ParseGrammar(name string, text string) (*Grammar, error) {
	type rule struct {
		head string
		alts []string
		line int
	}
	var rules []rule
	var problems *multierror.Error
	lineno := 0
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		head, rhs, ok := splitArrow(line)
		if !ok || head == "" || strings.ContainsAny(head, " \t") {
			problems = multierror.Append(problems, fmt.Errorf("%w: line %d: %q", ErrGrammarSyntax, lineno, line))
			continue
		}
		rules = append(rules, rule{head: head, alts: strings.Split(rhs, "|"), line: lineno})
	}
	spaced := false
	for _, r := range rules {
		for _, alt := range r.alts {
			spaced = spaced || strings.ContainsAny(strings.TrimSpace(alt), " \t")
		}
	}
	b := NewGrammarBuilder(name)
	heads := make(map[string]bool)
	for _, r := range rules {
		if !heads[r.head] {
			heads[r.head] = true
			b.nonterminal(r.head) // non-terminal codes in order of definition
		}
	}
	namedTerminal := int(firstNamedTerminal)
	termvals := make(map[string]int)
	for _, r := range rules {
		for _, alt := range r.alts {
			syms := splitAlternative(strings.TrimSpace(alt), spaced)
			rb := b.LHS(r.head)
			if len(syms) == 0 || len(syms) == 1 && syms[0] == "ε" {
				rb.Epsilon()
				continue
			}
			for _, sym := range syms {
				switch {
				case sym == "#":
					problems = multierror.Append(problems, fmt.Errorf("%w: line %d: '#' is reserved for the end marker",
						ErrEndMarkerInBody, r.line))
				case sym == "ε":
					problems = multierror.Append(problems, fmt.Errorf("%w: line %d", ErrMisplacedEpsilon, r.line))
				case heads[sym]:
					rb.N(sym)
				default:
					val, ok := termvals[sym]
					if !ok {
						if utf8.RuneCountInString(sym) == 1 {
							ch, _ := utf8.DecodeRuneInString(sym)
							val = int(ch)
						} else {
							val = namedTerminal
							namedTerminal++
						}
						termvals[sym] = val
					}
					rb.T(sym, val)
				}
			}
			rb.End()
		}
	}
	if problems.ErrorOrNil() != nil {
		return nil, &ConstructionError{Grammar: name, Problems: problems}
	}
	return b.Grammar()
}

// MustParseGrammar is like ParseGrammar, but panics on error.
func MustParseGrammar(name string, text string) *Grammar {
	return MustGrammar(ParseGrammar(name, text))
}

func splitArrow(line string) (string, string, bool) {
	for _, arrow := range []string{"→", "->"} {
		if i := strings.Index(line, arrow); i >= 0 {
			return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+len(arrow):]), true
		}
	}
	return "", "", false
}

func splitAlternative(alt string, spaced bool) []string {
	if alt == "" {
		return nil
	}
	if spaced {
		return strings.Fields(alt)
	}
	syms := make([]string, 0, len(alt))
	for _, r := range alt {
		syms = append(syms, string(r))
	}
	return syms
}
