// Package charset computes a shared interval partition of an alphabet
// domain given the character classes an automaton references, per
// spec.md §9 ("character partitioning for Unicode negation"). It
// deliberately does not use golang.org/x/text/unicode/rangetable: that
// package's New builds a table by enumerating individual runes, and its
// Merge only preserves union membership, discarding exactly the
// per-class boundary information a multi-class partition needs. See
// DESIGN.md for the full justification.
package charset

import (
	"sort"

	"github.com/marron-at-work/brex/char"
)

// Partition returns the alphabet domain [0, max] split into the
// coarsest set of disjoint, sorted intervals such that every input
// class is either entirely inside or entirely outside each interval.
// A compiler can then key automaton transitions by partition index
// instead of by individual codepoint, keeping negation and
// intersection (product automaton) tractable over large alphabets.
func Partition(max char.CodePoint, classes []char.CharClass) []char.Range {
	boundarySet := map[char.CodePoint]bool{0: true, max + 1: true}

	for _, c := range classes {
		for _, r := range c.Ranges {
			if r.Low >= 0 && r.Low <= max {
				boundarySet[r.Low] = true
			}
			if r.High+1 >= 0 && r.High+1 <= max+1 {
				boundarySet[r.High+1] = true
			}
		}
	}

	bounds := make([]char.CodePoint, 0, len(boundarySet))
	for b := range boundarySet {
		bounds = append(bounds, b)
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })

	var cells []char.Range
	for i := 0; i+1 < len(bounds); i++ {
		lo, hi := bounds[i], bounds[i+1]-1
		if lo > max {
			break
		}
		if hi > max {
			hi = max
		}
		cells = append(cells, char.Range{Low: lo, High: hi})
	}
	return cells
}

// CellIndex returns the index into parts of the partition cell
// containing c, or -1 if c falls outside every cell (should not happen
// for a partition built with Partition over the same domain).
func CellIndex(parts []char.Range, c char.CodePoint) int {
	lo, hi := 0, len(parts)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		r := parts[mid]
		switch {
		case c < r.Low:
			hi = mid - 1
		case c > r.High:
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}
