package ast

// Nullable reports whether opt's language contains the empty string
// (is ε-accepting). Computed bottom-up per spec.md §4.2 step 6:
// Star/Optional are always nullable; Range is nullable iff Low == 0;
// Sequence is nullable iff every operand is; AnyOf iff any operand is;
// AllOf iff every operand is; Negate(R) is nullable iff R is not.
// NamedRef/EnvRef must already be resolved away before this is called.
func Nullable(opt Opt) bool {
	switch v := opt.(type) {
	case *Literal:
		return len(v.Codes) == 0
	case *CharRange:
		return false
	case *Dot:
		return false
	case *NamedRef, *EnvRef:
		// Unresolved references cannot be classified; treat conservatively
		// as nullable so anchor validation errs toward rejecting.
		return true
	case *Star:
		return true
	case *Plus:
		return Nullable(v.Operand)
	case *RangeRepeat:
		if v.Low == 0 {
			return true
		}
		return Nullable(v.Operand)
	case *Optional:
		return true
	case *AnyOf:
		for _, o := range v.Operands {
			if Nullable(o) {
				return true
			}
		}
		return false
	case *Sequence:
		for _, o := range v.Operands {
			if !Nullable(o) {
				return false
			}
		}
		return true
	case *Negate:
		return !Nullable(v.Operand)
	case *AllOf:
		for _, o := range v.Operands {
			if !Nullable(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ComponentNullable reports whether every entry of a RegexComponent
// accepts ε once each entry's own negation is accounted for; AllOf
// semantics on the component require all entries to accept.
func ComponentNullable(c Component) bool {
	for _, e := range Entries(c) {
		n := Nullable(e.Opt)
		if e.Negated {
			n = !n
		}
		if !n {
			return false
		}
	}
	return true
}
