package runtime

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Entry is a lexeme stored in a registry. It may be a little surprising
// the index is part of the entry, but clients usually hand out indices as
// token values and resolve them later.
type Entry struct {
	Index  int
	Lexeme string
	Value  interface{} // user data, e.g. the numeric value of a constant
}

func (e Entry) String() string {
	return fmt.Sprintf("<%d:%s>", e.Index, e.Lexeme)
}

// Registry is an ordered set of lexemes. Every lexeme is stored once and
// keeps the index of its first registration.
//
// Registries are not safe for concurrent modification.
type Registry struct {
	name    string
	entries *linkedhashmap.Map // lexeme → *Entry, in order of registration
}

// NewRegistry creates an empty registry.
func NewRegistry(name string) *Registry {
	return &Registry{
		name:    name,
		entries: linkedhashmap.New(),
	}
}

// Name returns the name of a registry.
func (r *Registry) Name() string {
	return r.name
}

// Register stores a lexeme, if not already present. It returns the index of
// the lexeme and a flag signalling wether the lexeme is new.
// The empty lexeme cannot be registered; Register returns -1 for it.
func (r *Registry) Register(lexeme string) (int, bool) {
	return r.RegisterValue(lexeme, nil)
}

// RegisterValue is like Register, additionally attaching a value to a new
// entry. Values of existing entries are not overwritten.
func (r *Registry) RegisterValue(lexeme string, value interface{}) (int, bool) {
	if len(lexeme) == 0 {
		return -1, false
	}
	if e, found := r.entries.Get(lexeme); found {
		return e.(*Entry).Index, false
	}
	e := &Entry{Index: r.entries.Size(), Lexeme: lexeme, Value: value}
	r.entries.Put(lexeme, e)
	tracer().Debugf("registry %s: new entry %v", r.name, e)
	return e.Index, true
}

// SetValue attaches a value to a lexeme, registering the lexeme if necessary.
// Other than RegisterValue, it overwrites the value of an existing entry.
func (r *Registry) SetValue(lexeme string, value interface{}) (int, bool) {
	index, isNew := r.RegisterValue(lexeme, value)
	if !isNew && index >= 0 {
		e, _ := r.entries.Get(lexeme)
		e.(*Entry).Value = value
	}
	return index, isNew
}

// Lookup finds the index of a lexeme.
func (r *Registry) Lookup(lexeme string) (int, bool) {
	if e, found := r.entries.Get(lexeme); found {
		return e.(*Entry).Index, true
	}
	return -1, false
}

// At returns the entry with index i.
func (r *Registry) At(i int) (Entry, bool) {
	if i < 0 || i >= r.entries.Size() {
		return Entry{}, false
	}
	return *(r.entries.Values()[i].(*Entry)), true
}

// Len counts the entries of a registry.
func (r *Registry) Len() int {
	return r.entries.Size()
}

// Entries returns all entries in order of registration.
func (r *Registry) Entries() []Entry {
	entries := make([]Entry, 0, r.entries.Size())
	it := r.entries.Iterator()
	for it.Next() {
		entries = append(entries, *(it.Value().(*Entry)))
	}
	return entries
}

func (r *Registry) String() string {
	var sb strings.Builder
	sb.WriteString(r.name)
	sb.WriteString("{")
	for i, e := range r.Entries() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(e.String())
	}
	sb.WriteString("}")
	return sb.String()
}
