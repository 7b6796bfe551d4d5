package compile

import (
	"github.com/marron-at-work/brex/ast"
	"github.com/marron-at-work/brex/char"
)

// collectClasses walks o and gathers every leaf character predicate it
// tests against, so negate.go and allof.go can build one shared
// partition of Σ before determinizing. NamedRef/EnvRef never appear
// here: the resolver inlines or substitutes them away before compile
// ever sees the tree.
func collectClasses(o ast.Opt, max char.CodePoint) []char.CharClass {
	var out []char.CharClass
	collectClassesInto(o, max, &out)
	return out
}

func collectClassesInto(o ast.Opt, max char.CodePoint, out *[]char.CharClass) {
	switch v := o.(type) {
	case *ast.Literal:
		for _, c := range v.Codes {
			*out = append(*out, char.Single(c))
		}
	case *ast.CharRange:
		*out = append(*out, v.Class)
	case *ast.Dot:
		*out = append(*out, char.NewCharClass(false, []char.Range{{Low: 0, High: max}}))
	case *ast.Star:
		collectClassesInto(v.Operand, max, out)
	case *ast.Plus:
		collectClassesInto(v.Operand, max, out)
	case *ast.RangeRepeat:
		collectClassesInto(v.Operand, max, out)
	case *ast.Optional:
		collectClassesInto(v.Operand, max, out)
	case *ast.AnyOf:
		for _, op := range v.Operands {
			collectClassesInto(op, max, out)
		}
	case *ast.Sequence:
		for _, op := range v.Operands {
			collectClassesInto(op, max, out)
		}
	case *ast.Negate:
		collectClassesInto(v.Operand, max, out)
	case *ast.AllOf:
		for _, op := range v.Operands {
			collectClassesInto(op, max, out)
		}
	}
}
