package resolve

import (
	"github.com/marron-at-work/brex/ast"
	"github.com/marron-at-work/brex/char"
)

// substituteEnv rewrites every EnvRef in r into a Literal holding the
// looked-up value, per spec.md §4.2 step 3: missing or non-printable
// values are EnvError.
func substituteEnv(r *ast.Regex, env EnvLookup) (*ast.Regex, []Diagnostic) {
	var diags []Diagnostic
	out := transformRegex(r, func(o ast.Opt) ast.Opt {
		ref, ok := o.(*ast.EnvRef)
		if !ok {
			return o
		}
		val, ok := env.Lookup(ref.Name)
		if !ok {
			diags = append(diags, errf(KindEnv, "environment value %q is not defined", ref.Name))
			return &ast.Literal{}
		}
		if !char.IsPrintableOrBlankASCII(val) {
			diags = append(diags, errf(KindEnv, "environment value %q is not printable or blank ASCII", ref.Name))
			return &ast.Literal{}
		}
		codes := make([]char.CodePoint, 0, len(val))
		for _, rn := range val {
			codes = append(codes, char.CodePoint(rn))
		}
		return &ast.Literal{Codes: codes, Unicode: r.Alphabet == ast.AlphabetUnicode}
	})
	return out, diags
}
