package compile

import (
	"github.com/marron-at-work/brex/ast"
	"github.com/marron-at-work/brex/charset"
)

// compileNegate compiles operand in isolation, determinizes it, flips every
// state's acceptance, and funnels the result back into b as an ordinary
// fragment. Determinizing first is required: a negated NFA fragment cannot
// simply flip nstate.accept bits, because an NFA frontier can contain a
// mix of accepting and non-accepting states for the same input (spec.md §9's
// note on why negation needs a deterministic form first).
func compileNegate(b *builder, c *compiler, operand ast.Opt) fragment {
	sub := newBuilder()
	f := c.compileOpt(sub, operand)
	sub.markAccept(f)

	cells := charset.Partition(c.max, collectClasses(operand, c.max))
	d := subsetConstruct(sub, f, cells)
	for i := range d.accept {
		d.accept[i] = !d.accept[i]
	}
	return funnelDFA(b, d, cells)
}
