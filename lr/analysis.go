package lr

// === FIRST and FOLLOW ======================================================

// FirstSets holds FIRST(A) for every symbol A of a grammar. FIRST of a terminal
// is the terminal itself, FIRST of a non-terminal may contain Epsilon.
type FirstSets struct {
	sets   map[Symbol]*TerminalSet
	passes int
}

// FollowSets holds FOLLOW(N) for every non-terminal N of a grammar. FOLLOW sets
// may contain EndMarker, but never Epsilon.
type FollowSets struct {
	sets   map[Symbol]*TerminalSet
	passes int
}

// ComputeFirst computes the FIRST sets of grammar g. It iterates over all
// productions until no set changes any more. Sets only grow during the
// iteration and are bounded by the number of terminals, so the iteration
// terminates.
func ComputeFirst(g *Grammar) *FirstSets {
	first := &FirstSets{sets: make(map[Symbol]*TerminalSet)}
	for _, t := range g.terminals {
		first.sets[t] = NewTerminalSet(t)
	}
	first.sets[EndMarker] = NewTerminalSet(EndMarker)
	first.sets[Epsilon] = NewTerminalSet(Epsilon)
	for _, N := range g.nonterminals {
		first.sets[N] = NewTerminalSet()
	}
	for changed := true; changed; {
		changed = false
		first.passes++
		for _, p := range g.productions {
			F := first.sequence(p.body)
			if first.sets[p.head].AddAll(F) {
				changed = true
			}
		}
	}
	tracer().Debugf("FIRST sets of %q stable after %d passes", g.Name, first.passes)
	return first
}

// sequence computes FIRST(X1 … Xn) by nullable propagation: FIRST(X1)\{ε} is
// included, and so on for every Xi as long as X1 … Xi-1 all derive ε. If all
// symbols derive ε, ε is included, too.
func (first *FirstSets) sequence(seq []Symbol) *TerminalSet {
	F := NewTerminalSet()
	for _, X := range seq {
		if X == Epsilon {
			continue
		}
		fx := first.sets[X]
		F.AddAll(fx, Epsilon)
		if !fx.Contains(Epsilon) {
			return F
		}
	}
	F.Add(Epsilon)
	return F
}

// Of returns a copy of FIRST(A). For symbols unknown to the grammar the result is empty.
func (first *FirstSets) Of(A Symbol) *TerminalSet {
	return first.sets[A].Copy()
}

// OfSequence returns FIRST of a sequence of symbols. For an empty sequence
// this is {ε}.
func (first *FirstSets) OfSequence(seq []Symbol) *TerminalSet {
	return first.sequence(seq)
}

// Passes is the number of iterations needed to reach the fixed point.
func (first *FirstSets) Passes() int {
	return first.passes
}

// ComputeFollow computes the FOLLOW sets of grammar g, given its FIRST sets.
// FOLLOW(start) is seeded with EndMarker. Then, for every occurence of a
// non-terminal X in a production
//
//    A → α X β
//
// FIRST(β)\{ε} is added to FOLLOW(X), and if β is empty or derives ε, FOLLOW(A)
// is added as well. This is repeated until no set changes any more.
func ComputeFollow(g *Grammar, first *FirstSets) *FollowSets {
	follow := &FollowSets{sets: make(map[Symbol]*TerminalSet)}
	for _, N := range g.nonterminals {
		follow.sets[N] = NewTerminalSet()
	}
	follow.sets[g.start].Add(EndMarker)
	for changed := true; changed; {
		changed = false
		follow.passes++
		for _, p := range g.productions {
			for i, X := range p.body {
				if !X.IsNonTerminal() {
					continue
				}
				beta := first.sequence(p.body[i+1:])
				if follow.sets[X].AddAll(beta, Epsilon) {
					changed = true
				}
				if beta.Contains(Epsilon) && follow.sets[X].AddAll(follow.sets[p.head]) {
					changed = true
				}
			}
		}
	}
	tracer().Debugf("FOLLOW sets of %q stable after %d passes", g.Name, follow.passes)
	return follow
}

// Of returns a copy of FOLLOW(N). For symbols other than non-terminals of the
// grammar the result is empty.
func (follow *FollowSets) Of(N Symbol) *TerminalSet {
	return follow.sets[N].Copy()
}

// Passes is the number of iterations needed to reach the fixed point.
func (follow *FollowSets) Passes() int {
	return follow.passes
}

// === Analysis ==============================================================

// Analysis bundles a grammar with its FIRST and FOLLOW sets.
// It is read-only and may be shared between goroutines.
type Analysis struct {
	g      *Grammar
	first  *FirstSets
	follow *FollowSets
}

// Analyze computes FIRST and FOLLOW sets for g.
func Analyze(g *Grammar) *Analysis {
	ga := &Analysis{g: g}
	ga.first = ComputeFirst(g)
	ga.follow = ComputeFollow(g, ga.first)
	tracer().Infof("analysis of %q: %d productions, FIRST in %d passes, FOLLOW in %d passes",
		g.Name, g.Size(), ga.first.passes, ga.follow.passes)
	return ga
}

// Grammar returns the analysed grammar.
func (ga *Analysis) Grammar() *Grammar {
	return ga.g
}

// FirstSets returns all FIRST sets.
func (ga *Analysis) FirstSets() *FirstSets {
	return ga.first
}

// FollowSets returns all FOLLOW sets.
func (ga *Analysis) FollowSets() *FollowSets {
	return ga.follow
}

// First returns FIRST(A).
func (ga *Analysis) First(A Symbol) *TerminalSet {
	return ga.first.Of(A)
}

// Follow returns FOLLOW(N).
func (ga *Analysis) Follow(N Symbol) *TerminalSet {
	return ga.follow.Of(N)
}

// FirstOfSequence returns FIRST(X1 … Xn).
func (ga *Analysis) FirstOfSequence(seq []Symbol) *TerminalSet {
	return ga.first.sequence(seq)
}

// Nullable is true if A derives ε.
func (ga *Analysis) Nullable(A Symbol) bool {
	return ga.first.sets[A].Contains(Epsilon)
}

// Dump lists FIRST and FOLLOW sets of all non-terminals to the tracer.
func (ga *Analysis) Dump() {
	name := ga.g.SymbolName
	for _, N := range ga.g.nonterminals {
		tracer().Debugf("FIRST(%s) = %s   FOLLOW(%s) = %s", name(N),
			ga.first.sets[N].Format(name), name(N), ga.follow.sets[N].Format(name))
	}
}
