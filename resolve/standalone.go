package resolve

import "github.com/marron-at-work/brex/ast"

// ResolveStandalone runs the env-substitution half of the resolution
// pipeline against a single regex parsed outside of any namespace
// system, e.g. a regex typed directly on the brex CLI's command line.
// A NamedRef can never resolve without a namespace to qualify it
// against, so one present here is always a NameError.
func ResolveStandalone(r *ast.Regex, env EnvLookup) (*ast.Regex, []Diagnostic) {
	var diags []Diagnostic
	visit := func(o ast.Opt) ast.Opt {
		if ref, ok := o.(*ast.NamedRef); ok {
			diags = append(diags, errf(KindName, "named reference %q cannot resolve outside a namespace", ref.Name))
		}
		return o
	}
	if r.PreAnchor != nil {
		transform(r.PreAnchor.Opt, visit)
	}
	if r.PostAnchor != nil {
		transform(r.PostAnchor.Opt, visit)
	}
	for _, e := range ast.Entries(r.Root) {
		transform(e.Opt, visit)
	}
	if len(diags) > 0 {
		return nil, diags
	}
	return substituteEnv(r, env)
}
