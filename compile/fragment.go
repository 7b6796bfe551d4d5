package compile

import "github.com/marron-at-work/brex/char"

// nstate is one NFA state: zero or more epsilon transitions and zero or
// more consuming transitions, each guarded by a character class.
type nstate struct {
	eps    []int
	edges  []nedge
	accept bool
}

type nedge struct {
	class char.CharClass
	to    int
}

// builder accumulates states for a single compiled regex. Every
// Thompson combinator below takes and returns fragments over the same
// builder so subtrees can be wired together with epsilon edges.
type builder struct {
	states []*nstate
}

func newBuilder() *builder { return &builder{} }

func (b *builder) newState() int {
	b.states = append(b.states, &nstate{})
	return len(b.states) - 1
}

func (b *builder) addEps(from, to int) {
	b.states[from].eps = append(b.states[from].eps, to)
}

func (b *builder) addEdge(from int, class char.CharClass, to int) {
	b.states[from].edges = append(b.states[from].edges, nedge{class: class, to: to})
}

// fragment is a single-entry, single-exit NFA subgraph: every
// combinator below preserves this invariant, which is what lets
// concatenation/repetition wire fragments together with a couple of
// epsilon edges instead of rewriting either side.
type fragment struct {
	start, accept int
}

func (b *builder) epsilonFragment() fragment {
	s := b.newState()
	return fragment{start: s, accept: s}
}

func (b *builder) literalFragment(codes []char.CodePoint) fragment {
	if len(codes) == 0 {
		return b.epsilonFragment()
	}
	start := b.newState()
	prev := start
	for _, c := range codes {
		next := b.newState()
		b.addEdge(prev, char.Single(c), next)
		prev = next
	}
	return fragment{start: start, accept: prev}
}

func (b *builder) classFragment(class char.CharClass) fragment {
	s, a := b.newState(), b.newState()
	b.addEdge(s, class, a)
	return fragment{start: s, accept: a}
}

func (b *builder) concat(frags []fragment) fragment {
	if len(frags) == 0 {
		return b.epsilonFragment()
	}
	result := frags[0]
	for _, f := range frags[1:] {
		b.addEps(result.accept, f.start)
		result = fragment{start: result.start, accept: f.accept}
	}
	return result
}

func (b *builder) union(frags []fragment) fragment {
	if len(frags) == 1 {
		return frags[0]
	}
	s, a := b.newState(), b.newState()
	for _, f := range frags {
		b.addEps(s, f.start)
		b.addEps(f.accept, a)
	}
	return fragment{start: s, accept: a}
}

func (b *builder) star(f fragment) fragment {
	s, a := b.newState(), b.newState()
	b.addEps(s, f.start)
	b.addEps(s, a)
	b.addEps(f.accept, f.start)
	b.addEps(f.accept, a)
	return fragment{start: s, accept: a}
}

func (b *builder) plus(f fragment) fragment {
	a := b.newState()
	b.addEps(f.accept, f.start)
	b.addEps(f.accept, a)
	return fragment{start: f.start, accept: a}
}

func (b *builder) optional(f fragment) fragment {
	s, a := b.newState(), b.newState()
	b.addEps(s, f.start)
	b.addEps(s, a)
	b.addEps(f.accept, a)
	return fragment{start: s, accept: a}
}

// markAccept finalizes a top-level fragment's accept state. Internal
// combinators never set nstate.accept directly; only the callers that
// finish a whole sub-automaton (Compile, compileEntry, and compileNegate/
// compileAllOf on their sub-builders before determinizing) do.
func (b *builder) markAccept(f fragment) {
	b.states[f.accept].accept = true
}

// reversed builds a mirror image of the whole graph: every edge and
// epsilon transition flips direction, and start/accept swap. It has no
// caller in this module: back checks are evaluated by reversing the
// compiled automaton with match.Automaton.Reversed (see match/executor.go).
func reversed(b *builder, f fragment) (*builder, fragment) {
	rb := newBuilder()
	for range b.states {
		rb.newState()
	}
	for from, st := range b.states {
		for _, to := range st.eps {
			rb.addEps(to, from)
		}
		for _, e := range st.edges {
			rb.addEdge(e.to, e.class, from)
		}
	}
	return rb, fragment{start: f.accept, accept: f.start}
}
