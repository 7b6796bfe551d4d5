package resolve

import "github.com/marron-at-work/brex/ast"

// inlineRegex substitutes every NamedRef in r with the operator subtree
// of its already-resolved target, per spec.md §4.2 step 5. resolved
// must already contain every name r's NamedRefs point to (callers
// process names in dependency order).
func inlineRegex(r *ast.Regex, resolved map[string]*ast.Regex) (*ast.Regex, []Diagnostic) {
	var diags []Diagnostic
	out := transformRegex(r, func(o ast.Opt) ast.Opt {
		ref, ok := o.(*ast.NamedRef)
		if !ok {
			return o
		}
		target, ok := resolved[ref.Qualified]
		if !ok {
			diags = append(diags, errf(KindName, "reference to %q could not be resolved", ref.Qualified))
			return o
		}
		opt, err := entriesAsOpt(target.Root)
		if err != "" {
			diags = append(diags, errf(KindCompile, "%s: %s", ref.Qualified, err))
			return o
		}
		return opt
	})
	return out, diags
}

// entriesAsOpt flattens a RegexComponent into a single operator subtree
// suitable for substitution at a NamedRef site: a Single entry's Opt
// (wrapped in Negate if the entry is negated), or the AllOf of every
// AllOfComponent entry's Opt. A referenced entry carrying a front/back
// check has no meaning as a plain subexpression and is rejected.
func entriesAsOpt(c ast.Component) (ast.Opt, string) {
	entries := ast.Entries(c)
	opts := make([]ast.Opt, len(entries))
	for i, e := range entries {
		if e.FrontCheck || e.BackCheck {
			return nil, "cannot inline a reference to an entry carrying a front/back check"
		}
		opt := e.Opt
		if e.Negated {
			opt = &ast.Negate{Operand: opt}
		}
		opts[i] = opt
	}
	if len(opts) == 1 {
		return opts[0], ""
	}
	return &ast.AllOf{Operands: opts}, ""
}
