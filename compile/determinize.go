package compile

import (
	"fmt"
	"sort"

	"github.com/marron-at-work/brex/char"
)

// dfa is a subset-construction result over a fixed cell alphabet: trans[s][c]
// gives the successor of state s on cell c, and accept[s] says whether s is
// final. Negate and AllOf both need this shape before they can complement or
// take an n-ary product of it.
type dfa struct {
	trans  [][]int
	accept []bool
	start  int
}

func epsClosure(b *builder, seed map[int]bool) map[int]bool {
	out := map[int]bool{}
	var stack []int
	for s := range seed {
		if !out[s] {
			out[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range b.states[s].eps {
			if !out[e] {
				out[e] = true
				stack = append(stack, e)
			}
		}
	}
	return out
}

func frontierKey(s map[int]bool) string {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return fmt.Sprint(ids)
}

// subsetConstruct determinizes the fragment f within builder b against the
// given cell partition of Σ. Each cell must already be aligned to every
// character class the fragment tests against (charset.Partition guarantees
// this), so testing membership of a single representative codepoint per cell
// is enough to pick the successor frontier.
func subsetConstruct(b *builder, f fragment, cells []char.Range) *dfa {
	frontiers := []map[int]bool{}
	index := map[string]int{}

	addFrontier := func(s map[int]bool) int {
		k := frontierKey(s)
		if idx, ok := index[k]; ok {
			return idx
		}
		idx := len(frontiers)
		index[k] = idx
		frontiers = append(frontiers, s)
		return idx
	}

	start := epsClosure(b, map[int]bool{f.start: true})
	startIdx := addFrontier(start)

	var trans [][]int
	var accept []bool
	for i := 0; i < len(frontiers); i++ {
		for len(trans) <= i {
			trans = append(trans, nil)
			accept = append(accept, false)
		}
		fr := frontiers[i]
		for s := range fr {
			if b.states[s].accept {
				accept[i] = true
			}
		}
		row := make([]int, len(cells))
		for ci, cell := range cells {
			next := map[int]bool{}
			for s := range fr {
				for _, e := range b.states[s].edges {
					if e.class.Contains(cell.Low) {
						next[e.to] = true
					}
				}
			}
			row[ci] = addFrontier(epsClosure(b, next))
		}
		trans[i] = row
	}
	return &dfa{trans: trans, accept: accept, start: startIdx}
}

// funnelDFA copies d's states into builder b as ordinary NFA states (one
// consuming edge per cell, labeled with that cell's range) and adds a single
// fresh accept state reached by epsilon from every accepting dfa state. The
// result is an ordinary fragment, indistinguishable to the rest of the
// Thompson construction from any other combinator's output.
func funnelDFA(b *builder, d *dfa, cells []char.Range) fragment {
	ids := make([]int, len(d.trans))
	for i := range d.trans {
		ids[i] = b.newState()
	}
	for i, row := range d.trans {
		for ci, to := range row {
			b.addEdge(ids[i], char.NewCharClass(false, []char.Range{cells[ci]}), ids[to])
		}
	}
	acceptState := b.newState()
	for i, ok := range d.accept {
		if ok {
			b.addEps(ids[i], acceptState)
		}
	}
	return fragment{start: ids[d.start], accept: acceptState}
}
