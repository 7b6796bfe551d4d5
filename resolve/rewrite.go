package resolve

import "github.com/marron-at-work/brex/ast"

// transform rebuilds o bottom-up, applying fn to every node after its
// children have already been rebuilt. fn may return a different node
// (e.g. substituting an EnvRef with a Literal) or o unchanged.
func transform(o ast.Opt, fn func(ast.Opt) ast.Opt) ast.Opt {
	switch v := o.(type) {
	case *ast.Star:
		return fn(&ast.Star{Operand: transform(v.Operand, fn)})
	case *ast.Plus:
		return fn(&ast.Plus{Operand: transform(v.Operand, fn)})
	case *ast.RangeRepeat:
		return fn(&ast.RangeRepeat{Operand: transform(v.Operand, fn), Low: v.Low, High: v.High})
	case *ast.Optional:
		return fn(&ast.Optional{Operand: transform(v.Operand, fn)})
	case *ast.AnyOf:
		return fn(&ast.AnyOf{Operands: transformList(v.Operands, fn)})
	case *ast.Sequence:
		return fn(&ast.Sequence{Operands: transformList(v.Operands, fn)})
	case *ast.Negate:
		return fn(&ast.Negate{Operand: transform(v.Operand, fn)})
	case *ast.AllOf:
		return fn(&ast.AllOf{Operands: transformList(v.Operands, fn)})
	default:
		// Literal, CharRange, Dot, NamedRef, EnvRef: leaves, no children to
		// rebuild, but still offered to fn so it can substitute them.
		return fn(o)
	}
}

func transformList(opts []ast.Opt, fn func(ast.Opt) ast.Opt) []ast.Opt {
	if opts == nil {
		return nil
	}
	out := make([]ast.Opt, len(opts))
	for i, o := range opts {
		out[i] = transform(o, fn)
	}
	return out
}

// transformEntry applies transform to the Opt held by a ToplevelEntry,
// returning a new entry value with the rebuilt Opt.
func transformEntry(e ast.ToplevelEntry, fn func(ast.Opt) ast.Opt) ast.ToplevelEntry {
	e.Opt = transform(e.Opt, fn)
	return e
}

// transformComponent applies transform to every entry of a component.
func transformComponent(c ast.Component, fn func(ast.Opt) ast.Opt) ast.Component {
	switch v := c.(type) {
	case ast.Single:
		return ast.Single{Entry: transformEntry(v.Entry, fn)}
	case ast.AllOfComponent:
		entries := make([]ast.ToplevelEntry, len(v.Entries))
		for i, e := range v.Entries {
			entries[i] = transformEntry(e, fn)
		}
		return ast.AllOfComponent{Entries: entries}
	default:
		return c
	}
}

// transformRegex applies fn throughout r's root and any anchors,
// returning a new *ast.Regex; r itself is left untouched.
func transformRegex(r *ast.Regex, fn func(ast.Opt) ast.Opt) *ast.Regex {
	out := &ast.Regex{Kind: r.Kind, Alphabet: r.Alphabet}
	if r.PreAnchor != nil {
		e := transformEntry(*r.PreAnchor, fn)
		out.PreAnchor = &e
	}
	if r.PostAnchor != nil {
		e := transformEntry(*r.PostAnchor, fn)
		out.PostAnchor = &e
	}
	out.Root = transformComponent(r.Root, fn)
	return out
}
