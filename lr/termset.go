package lr

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
)

// TerminalSet is an ordered set of terminals, possibly including Epsilon and
// EndMarker. Iteration order is deterministic: terminals by code, then ε, then #.
type TerminalSet struct {
	set *treeset.Set
}

// NewTerminalSet creates a set containing syms.
func NewTerminalSet(syms ...Symbol) *TerminalSet {
	ts := &TerminalSet{set: treeset.NewWith(symbolComparator)}
	for _, A := range syms {
		ts.set.Add(A)
	}
	return ts
}

// Add inserts A and reports if the set has changed.
func (ts *TerminalSet) Add(A Symbol) bool {
	if ts.set.Contains(A) {
		return false
	}
	ts.set.Add(A)
	return true
}

// AddAll inserts every member of other, except for the symbols listed in except,
// and reports if the set has changed.
func (ts *TerminalSet) AddAll(other *TerminalSet, except ...Symbol) bool {
	if other == nil {
		return false
	}
	changed := false
	it := other.set.Iterator()
	for it.Next() {
		A := it.Value().(Symbol)
		if contains(except, A) {
			continue
		}
		if ts.Add(A) {
			changed = true
		}
	}
	return changed
}

// Contains checks for membership of A.
func (ts *TerminalSet) Contains(A Symbol) bool {
	if ts == nil {
		return false
	}
	return ts.set.Contains(A)
}

// Len returns the number of members.
func (ts *TerminalSet) Len() int {
	if ts == nil {
		return 0
	}
	return ts.set.Size()
}

// IsEmpty is true for a set without members.
func (ts *TerminalSet) IsEmpty() bool {
	return ts.Len() == 0
}

// Symbols returns the members in ascending order.
func (ts *TerminalSet) Symbols() []Symbol {
	if ts == nil {
		return nil
	}
	syms := make([]Symbol, 0, ts.set.Size())
	for _, x := range ts.set.Values() {
		syms = append(syms, x.(Symbol))
	}
	return syms
}

// Copy returns an independent copy of the set.
func (ts *TerminalSet) Copy() *TerminalSet {
	c := NewTerminalSet()
	c.AddAll(ts)
	return c
}

// Equal is true if both sets contain the same symbols.
func (ts *TerminalSet) Equal(other *TerminalSet) bool {
	if ts.Len() != other.Len() {
		return false
	}
	for _, A := range ts.Symbols() {
		if !other.Contains(A) {
			return false
		}
	}
	return true
}

// Format renders the set with a naming function for symbols.
func (ts *TerminalSet) Format(name func(Symbol) string) string {
	syms := ts.Symbols()
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = name(A)
	}
	return "{" + strings.Join(names, " ") + "}"
}

func (ts *TerminalSet) String() string {
	return ts.Format(Symbol.String)
}

func contains(syms []Symbol, A Symbol) bool {
	for _, B := range syms {
		if A == B {
			return true
		}
	}
	return false
}
