package ast

// Equal reports structural equality between two operator trees, used by
// the JSON/BSQON round-trip properties in spec.md §8.
func Equal(a, b Opt) bool {
	switch av := a.(type) {
	case *Literal:
		bv, ok := b.(*Literal)
		if !ok || av.Unicode != bv.Unicode || len(av.Codes) != len(bv.Codes) {
			return false
		}
		for i := range av.Codes {
			if av.Codes[i] != bv.Codes[i] {
				return false
			}
		}
		return true
	case *CharRange:
		bv, ok := b.(*CharRange)
		return ok && av.Class.Equal(bv.Class)
	case *Dot:
		_, ok := b.(*Dot)
		return ok
	case *NamedRef:
		bv, ok := b.(*NamedRef)
		return ok && av.Name == bv.Name && av.Qualified == bv.Qualified
	case *EnvRef:
		bv, ok := b.(*EnvRef)
		return ok && av.Name == bv.Name
	case *Star:
		bv, ok := b.(*Star)
		return ok && Equal(av.Operand, bv.Operand)
	case *Plus:
		bv, ok := b.(*Plus)
		return ok && Equal(av.Operand, bv.Operand)
	case *RangeRepeat:
		bv, ok := b.(*RangeRepeat)
		return ok && av.Low == bv.Low && av.High == bv.High && Equal(av.Operand, bv.Operand)
	case *Optional:
		bv, ok := b.(*Optional)
		return ok && Equal(av.Operand, bv.Operand)
	case *AnyOf:
		bv, ok := b.(*AnyOf)
		return ok && equalOptList(av.Operands, bv.Operands)
	case *Sequence:
		bv, ok := b.(*Sequence)
		return ok && equalOptList(av.Operands, bv.Operands)
	case *Negate:
		bv, ok := b.(*Negate)
		return ok && Equal(av.Operand, bv.Operand)
	case *AllOf:
		bv, ok := b.(*AllOf)
		return ok && equalOptList(av.Operands, bv.Operands)
	default:
		return false
	}
}

func equalOptList(a, b []Opt) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EntryEqual reports structural equality of two ToplevelEntry values.
func EntryEqual(a, b ToplevelEntry) bool {
	return a.Negated == b.Negated && a.FrontCheck == b.FrontCheck && a.BackCheck == b.BackCheck && Equal(a.Opt, b.Opt)
}

// ComponentEqual reports structural equality of two RegexComponent values.
func ComponentEqual(a, b Component) bool {
	ea, eb := Entries(a), Entries(b)
	if len(ea) != len(eb) {
		return false
	}
	for i := range ea {
		if !EntryEqual(ea[i], eb[i]) {
			return false
		}
	}
	return true
}

// RegexEqual reports structural equality of two Regex values.
func RegexEqual(a, b *Regex) bool {
	if a.Kind != b.Kind || a.Alphabet != b.Alphabet {
		return false
	}
	if (a.PreAnchor == nil) != (b.PreAnchor == nil) {
		return false
	}
	if a.PreAnchor != nil && !EntryEqual(*a.PreAnchor, *b.PreAnchor) {
		return false
	}
	if (a.PostAnchor == nil) != (b.PostAnchor == nil) {
		return false
	}
	if a.PostAnchor != nil && !EntryEqual(*a.PostAnchor, *b.PostAnchor) {
		return false
	}
	return ComponentEqual(a.Root, b.Root)
}
