package compile

import (
	"github.com/marron-at-work/brex/ast"
	"github.com/marron-at-work/brex/char"
	"github.com/marron-at-work/brex/match"
)

// compiler carries the per-regex constants every compileXxx helper needs;
// it is never shared across two Compile calls.
type compiler struct {
	max char.CodePoint
}

// Compile turns a fully resolved ast.Regex (no NamedRef/EnvRef left) into a
// match.Executor. A resolved regex should never fail to compile; the
// returned diagnostics slice exists for the one case that can: a negative
// front/back check over a nullable body, which resolve already rejects, but
// compile re-checks so the two packages can be exercised independently. A
// positive anchor over a nullable body is fine.
func Compile(regex *ast.Regex) (*match.Executor, []Diagnostic) {
	if regex.PreAnchor != nil && regex.PreAnchor.Negated && ast.ComponentNullable(regex.Root) {
		return nil, []Diagnostic{errf("negative front-check anchor over a nullable body is not allowed")}
	}
	if regex.PostAnchor != nil && regex.PostAnchor.Negated && ast.ComponentNullable(regex.Root) {
		return nil, []Diagnostic{errf("negative back-check anchor over a nullable body is not allowed")}
	}

	c := &compiler{max: maxFor(regex.Alphabet)}

	bodyOperands, frontEntries, backEntries := splitEntries(regex.Root)

	b := newBuilder()
	bodyFrag := c.compileOpt(b, combineBody(bodyOperands))
	b.markAccept(bodyFrag)
	body := toAutomaton(b, bodyFrag)

	fronts := make([]match.Anchor, 0, len(frontEntries)+1)
	for _, e := range frontEntries {
		fronts = append(fronts, c.compileEntry(e))
	}
	if regex.PreAnchor != nil {
		fronts = append(fronts, c.compileEntry(*regex.PreAnchor))
	}

	backs := make([]match.Anchor, 0, len(backEntries)+1)
	for _, e := range backEntries {
		backs = append(backs, c.compileEntry(e))
	}
	if regex.PostAnchor != nil {
		backs = append(backs, c.compileEntry(*regex.PostAnchor))
	}

	return match.NewExecutor(body, fronts, backs, regex.Alphabet), nil
}

func maxFor(alphabet ast.Alphabet) char.CodePoint {
	if alphabet == ast.AlphabetASCII {
		return char.MaxASCII
	}
	return char.MaxUnicode
}

// splitEntries separates a component's entries into the ordinary body
// operands (AllOf'd together; entry-level negation is folded into each
// operand as an ast.Negate) and the front/back-check entries, which are
// compiled and evaluated separately as match-time assertions rather than
// spliced into the body automaton.
func splitEntries(root ast.Component) (body []ast.Opt, front, back []ast.ToplevelEntry) {
	for _, e := range ast.Entries(root) {
		switch {
		case e.FrontCheck:
			front = append(front, e)
		case e.BackCheck:
			back = append(back, e)
		default:
			o := e.Opt
			if e.Negated {
				o = &ast.Negate{Operand: o}
			}
			body = append(body, o)
		}
	}
	return
}

func combineBody(operands []ast.Opt) ast.Opt {
	switch len(operands) {
	case 0:
		// No body entry (a component made entirely of front/back checks):
		// accept every string so the checks are the only constraint.
		return &ast.Star{Operand: &ast.Dot{}}
	case 1:
		return operands[0]
	default:
		return &ast.AllOf{Operands: operands}
	}
}

// compileEntry compiles one front/back-check anchor into a match.Anchor.
// The anchor's automaton is always built from the un-negated expression;
// e.Negated is carried alongside so checkAnchor can invert the existential
// "some prefix matches" test at evaluation time, not by negating the
// automaton and re-running the same existential test (see match.Anchor).
func (c *compiler) compileEntry(e ast.ToplevelEntry) match.Anchor {
	b := newBuilder()
	f := c.compileOpt(b, e.Opt)
	b.markAccept(f)
	return match.Anchor{Automaton: toAutomaton(b, f), Negated: e.Negated}
}

func toAutomaton(b *builder, f fragment) *match.Automaton {
	states := make([]match.State, len(b.states))
	for i, st := range b.states {
		edges := make([]match.Edge, len(st.edges))
		for j, e := range st.edges {
			edges[j] = match.Edge{Class: e.class, To: e.to}
		}
		states[i] = match.State{
			Eps:    append([]int(nil), st.eps...),
			Edges:  edges,
			Accept: st.accept,
		}
	}
	return &match.Automaton{States: states, Start: f.start}
}

// compileOpt dispatches over every ast.Opt variant. NamedRef and EnvRef are
// unreachable here: resolve.Build inlines named references and substitutes
// env references into literals before a regex ever reaches Compile.
func (c *compiler) compileOpt(b *builder, o ast.Opt) fragment {
	switch v := o.(type) {
	case *ast.Literal:
		return b.literalFragment(v.Codes)
	case *ast.CharRange:
		return b.classFragment(v.Class)
	case *ast.Dot:
		return b.classFragment(char.NewCharClass(false, []char.Range{{Low: 0, High: c.max}}))
	case *ast.Star:
		return b.star(c.compileOpt(b, v.Operand))
	case *ast.Plus:
		return b.plus(c.compileOpt(b, v.Operand))
	case *ast.RangeRepeat:
		return c.compileRangeRepeat(b, v)
	case *ast.Optional:
		return b.optional(c.compileOpt(b, v.Operand))
	case *ast.AnyOf:
		frags := make([]fragment, len(v.Operands))
		for i, op := range v.Operands {
			frags[i] = c.compileOpt(b, op)
		}
		return b.union(frags)
	case *ast.Sequence:
		frags := make([]fragment, len(v.Operands))
		for i, op := range v.Operands {
			frags[i] = c.compileOpt(b, op)
		}
		return b.concat(frags)
	case *ast.Negate:
		return compileNegate(b, c, v.Operand)
	case *ast.AllOf:
		return compileAllOf(b, c, v.Operands)
	default:
		// NamedRef/EnvRef: resolved away before compile; fall back to the
		// empty match rather than panic so a malformed tree degrades
		// gracefully instead of crashing the process.
		return b.epsilonFragment()
	}
}

func (c *compiler) compileRangeRepeat(b *builder, v *ast.RangeRepeat) fragment {
	var frags []fragment
	for i := uint16(0); i < v.Low; i++ {
		frags = append(frags, c.compileOpt(b, v.Operand))
	}
	if v.High == ast.Infinite {
		frags = append(frags, b.star(c.compileOpt(b, v.Operand)))
	} else {
		for i := int32(v.Low); i < v.High; i++ {
			frags = append(frags, b.optional(c.compileOpt(b, v.Operand)))
		}
	}
	if len(frags) == 0 {
		return b.epsilonFragment()
	}
	return b.concat(frags)
}
