package compile

import (
	"fmt"

	"github.com/marron-at-work/brex/ast"
	"github.com/marron-at-work/brex/char"
	"github.com/marron-at-work/brex/charset"
)

// compileAllOf compiles each operand in isolation, determinizes all of them
// against one shared partition of Σ (so a single cell index means the same
// thing across every operand's transition table), takes their n-ary tuple
// product with AND-accept, and funnels the product back into b. This is the
// general intersection construction spec.md §4.3 requires for AllOf nested
// anywhere in the tree, not just at the whole-regex top level.
func compileAllOf(b *builder, c *compiler, operands []ast.Opt) fragment {
	var allClasses []char.CharClass
	for _, op := range operands {
		allClasses = append(allClasses, collectClasses(op, c.max)...)
	}
	cells := charset.Partition(c.max, allClasses)

	dfas := make([]*dfa, len(operands))
	for i, op := range operands {
		sub := newBuilder()
		f := c.compileOpt(sub, op)
		sub.markAccept(f)
		dfas[i] = subsetConstruct(sub, f, cells)
	}

	product := productDFA(dfas, cells)
	return funnelDFA(b, product, cells)
}

func productDFA(ds []*dfa, cells []char.Range) *dfa {
	index := map[string]int{}
	var tuples [][]int

	addTuple := func(ids []int) int {
		k := fmt.Sprint(ids)
		if idx, ok := index[k]; ok {
			return idx
		}
		idx := len(tuples)
		index[k] = idx
		cp := make([]int, len(ids))
		copy(cp, ids)
		tuples = append(tuples, cp)
		return idx
	}

	startIDs := make([]int, len(ds))
	for i, d := range ds {
		startIDs[i] = d.start
	}
	startIdx := addTuple(startIDs)

	var trans [][]int
	var accept []bool
	for i := 0; i < len(tuples); i++ {
		for len(trans) <= i {
			trans = append(trans, nil)
			accept = append(accept, false)
		}
		ids := tuples[i]
		acc := true
		for j, d := range ds {
			if !d.accept[ids[j]] {
				acc = false
				break
			}
		}
		accept[i] = acc
		row := make([]int, len(cells))
		for ci := range cells {
			next := make([]int, len(ds))
			for j, d := range ds {
				next[j] = d.trans[ids[j]][ci]
			}
			row[ci] = addTuple(next)
		}
		trans[i] = row
	}
	return &dfa{trans: trans, accept: accept, start: startIdx}
}
