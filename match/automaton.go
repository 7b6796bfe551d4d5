// Package match implements the compiled-regex executor: a bitset
// frontier simulation of the NFA package compile produces (the
// "Thompson-style NFA with bitset-frontier simulation" realization
// spec.md §4.3 permits). Automaton and State are exported so package
// compile can build one directly; nothing outside the two packages is
// expected to construct an Automaton by hand.
package match

import "github.com/marron-at-work/brex/char"

// State is one NFA state.
type State struct {
	Eps    []int
	Edges  []Edge
	Accept bool
}

// Edge is a consuming transition guarded by a character class.
type Edge struct {
	Class char.CharClass
	To    int
}

// Automaton is a single-entry NFA: Start is the entry state; any number
// of states may carry Accept.
type Automaton struct {
	States []State
	Start  int
}

// frontier is the set of currently-active state ids, represented as a
// map keyed by state id (automatons compiled from BREX source are small,
// so a map beats bitset bookkeeping here; "bitset" in spec.md §4.3 is
// the realization family, not a mandated data structure).
type frontier map[int]bool

func (a *Automaton) epsilonClosure(f frontier) frontier {
	out := frontier{}
	var stack []int
	for s := range f {
		if !out[s] {
			out[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range a.States[s].Eps {
			if !out[e] {
				out[e] = true
				stack = append(stack, e)
			}
		}
	}
	return out
}

func (f frontier) hasAccept(a *Automaton) bool {
	for s := range f {
		if a.States[s].Accept {
			return true
		}
	}
	return false
}

func (a *Automaton) step(f frontier, c char.CodePoint) frontier {
	out := frontier{}
	for s := range f {
		for _, e := range a.States[s].Edges {
			if e.Class.Contains(c) {
				out[e.To] = true
			}
		}
	}
	return a.epsilonClosure(out)
}

// Accepts reports whether codes, in full, is in a's language.
func (a *Automaton) Accepts(codes []char.CodePoint) bool {
	f := a.epsilonClosure(frontier{a.Start: true})
	for _, c := range codes {
		f = a.step(f, c)
		if len(f) == 0 {
			return false
		}
	}
	return f.hasAccept(a)
}

// PrefixTrace reports, for every prefix length 0..len(codes), whether
// that prefix is accepted. Used by front-check evaluation: "A matches
// some prefix of the matched region" is an OR over PrefixTrace.
func (a *Automaton) PrefixTrace(codes []char.CodePoint) []bool {
	trace := make([]bool, len(codes)+1)
	f := a.epsilonClosure(frontier{a.Start: true})
	trace[0] = f.hasAccept(a)
	for i, c := range codes {
		f = a.step(f, c)
		trace[i+1] = f.hasAccept(a)
	}
	return trace
}

// AnyPrefixAccepted reports whether any prefix of codes is accepted.
func (a *Automaton) AnyPrefixAccepted(codes []char.CodePoint) bool {
	for _, ok := range a.PrefixTrace(codes) {
		if ok {
			return true
		}
	}
	return false
}

// Reversed builds the mirror automaton: every edge and epsilon
// transition flips direction, a fresh start state has epsilon edges to
// each of a's accepting states, and a's start state becomes accepting.
func (a *Automaton) Reversed() *Automaton {
	states := make([]State, len(a.States))
	for i := range states {
		states[i] = State{}
	}
	accepting := map[int]bool{}
	for from, st := range a.States {
		if st.Accept {
			accepting[from] = true
		}
		for _, to := range st.Eps {
			states[to].Eps = append(states[to].Eps, from)
		}
		for _, e := range st.Edges {
			states[e.To].Edges = append(states[e.To].Edges, Edge{Class: e.Class, To: from})
		}
	}
	newStart := len(states)
	states = append(states, State{})
	for from := range accepting {
		states[newStart].Eps = append(states[newStart].Eps, from)
	}
	states[a.Start].Accept = true
	return &Automaton{States: states, Start: newStart}
}
