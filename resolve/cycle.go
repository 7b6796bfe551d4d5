package resolve

import "sort"

// tarjanSCCs computes the strongly connected components of a directed
// graph given as an adjacency list, using Tarjan's algorithm. Returns
// one []string per component, in discovery order.
//
// Used for cycle detection per spec.md §4.2 step 4: a component of size
// > 1, or a single node with a self-loop, is a reference cycle and every
// name in it is reported together (spec.md §8 scenario 6: "produces
// non-empty diagnostics naming both as a cycle").
func tarjanSCCs(adj map[string][]string) [][]string {
	index := 0
	indices := map[string]int{}
	lowlink := map[string]int{}
	onStack := map[string]bool{}
	var stack []string
	var sccs [][]string

	names := make([]string, 0, len(adj))
	for n := range adj {
		names = append(names, n)
	}
	sort.Strings(names)

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var comp []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, comp)
		}
	}

	for _, n := range names {
		if _, seen := indices[n]; !seen {
			strongconnect(n)
		}
	}
	return sccs
}

// cyclicComponents returns every SCC that is a genuine cycle: size > 1,
// or a singleton with a self-edge.
func cyclicComponents(adj map[string][]string) [][]string {
	var out [][]string
	for _, comp := range tarjanSCCs(adj) {
		if len(comp) > 1 {
			sort.Strings(comp)
			out = append(out, comp)
			continue
		}
		n := comp[0]
		for _, w := range adj[n] {
			if w == n {
				out = append(out, comp)
				break
			}
		}
	}
	return out
}
