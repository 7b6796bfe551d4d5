// Package bsqon renders an ast.Regex back into BREX surface syntax: the
// inverse of package parse. It exists so a resolved, inlined, or
// env-substituted regex can be inspected or re-stored as source text,
// and so parse(Emit(r)) reproduces r's semantics (spec.md §8's BSQON
// round-trip property). Grounded on parse/parser.go's grammar, which it
// walks in reverse; favors always-valid over minimal parenthesization.
package bsqon

import (
	"fmt"
	"strings"

	"github.com/marron-at-work/brex/ast"
	"github.com/marron-at-work/brex/char"
)

// Emit renders r as a complete `/body/flag` BREX source string.
func Emit(r *ast.Regex) string {
	var b strings.Builder
	b.WriteByte('/')
	if r.PreAnchor != nil {
		emitAnchorWrapper(&b, *r.PreAnchor)
		b.WriteByte('^')
	}
	emitComponent(&b, r.Root)
	if r.PostAnchor != nil {
		b.WriteByte('$')
		emitAnchorWrapper(&b, *r.PostAnchor)
	}
	b.WriteByte('/')
	b.WriteString(flagOf(r))
	return b.String()
}

func flagOf(r *ast.Regex) string {
	switch r.Kind {
	case ast.KindPath:
		return "p"
	case ast.KindResource:
		return "r"
	default:
		if r.Alphabet == ast.AlphabetASCII {
			return "a"
		}
		return ""
	}
}

// emitAnchorWrapper renders the `<[!]expr>` sugar used for both
// PreAnchor and PostAnchor; always using the wrapper form (rather than
// the bare suffix parse also accepts) keeps this emitter's output shape
// uniform.
func emitAnchorWrapper(b *strings.Builder, e ast.ToplevelEntry) {
	b.WriteByte('<')
	if e.Negated {
		b.WriteByte('!')
	}
	b.WriteString(emitExpr(e.Opt))
	b.WriteByte('>')
}

func emitComponent(b *strings.Builder, c ast.Component) {
	entries := ast.Entries(c)
	for i, e := range entries {
		if i > 0 {
			b.WriteString(" & ")
		}
		emitBodyEntry(b, e)
	}
}

func emitBodyEntry(b *strings.Builder, e ast.ToplevelEntry) {
	if e.Negated {
		b.WriteByte('!')
	}
	if e.FrontCheck {
		b.WriteByte('^')
	}
	b.WriteString(emitExpr(e.Opt))
}

// emitExpr renders o as a standalone expression, valid wherever an
// alternation production is valid: a toplevel entry, a `<...>` anchor
// body, or the interior of a parenthesized atom.
func emitExpr(o ast.Opt) string {
	switch v := o.(type) {
	case *ast.Literal:
		return emitLiteral(v)
	case *ast.CharRange:
		return emitClass(v.Class)
	case *ast.Dot:
		return "."
	case *ast.NamedRef:
		return "${" + v.Name + "}"
	case *ast.EnvRef:
		return "${$" + v.Name + "}"
	case *ast.Star:
		return emitPostfixOperand(v.Operand) + "*"
	case *ast.Plus:
		return emitPostfixOperand(v.Operand) + "+"
	case *ast.Optional:
		return emitPostfixOperand(v.Operand) + "?"
	case *ast.RangeRepeat:
		return emitPostfixOperand(v.Operand) + emitBound(v.Low, v.High)
	case *ast.Negate:
		return "!" + emitPrefixOperand(v.Operand)
	case *ast.AnyOf:
		parts := make([]string, len(v.Operands))
		for i, op := range v.Operands {
			parts[i] = emitSequenceElement(op)
		}
		return strings.Join(parts, "|")
	case *ast.Sequence:
		var sb strings.Builder
		for _, op := range v.Operands {
			sb.WriteString(emitSequenceElement(op))
		}
		return sb.String()
	case *ast.AllOf:
		parts := make([]string, len(v.Operands))
		for i, op := range v.Operands {
			parts[i] = emitExpr(op)
		}
		return strings.Join(parts, " & ")
	default:
		return ""
	}
}

// emitAtom renders o suitable for a postfix/prefix operand position,
// which the grammar only reaches through parseAtom: a bare literal,
// class, dot, ref, or a parenthesized subexpression. Anything with more
// than one branch/operand (AnyOf, multi-element Sequence, AllOf) is not
// itself an atom, so it is wrapped in parens. Postfix operands go
// through emitPostfixOperand, which also wraps a Negate.
func emitAtom(o ast.Opt) string {
	if needsParens(o) {
		return "(" + emitExpr(o) + ")"
	}
	return emitExpr(o)
}

// emitPostfixOperand renders the operand of `*`, `+`, `?` or `{n,m}`.
// Postfix operators bind tighter than `!`, so a Negate operand is
// parenthesized: a bare `!x*` would reparse as Negate(Star(x)).
func emitPostfixOperand(o ast.Opt) string {
	if _, ok := o.(*ast.Negate); ok {
		return "(" + emitExpr(o) + ")"
	}
	return emitAtom(o)
}

// emitPrefixOperand renders the operand of `!`, which the grammar
// parses as a full postfix chain (parsePrefix recurses into itself,
// then falls through to parsePostfix), so only AnyOf/Sequence/AllOf
// need parens; Star/Plus/Optional/RangeRepeat/Negate operands are fine
// bare.
func emitPrefixOperand(o ast.Opt) string {
	return emitAtom(o)
}

// emitSequenceElement renders one element of a Sequence or a branch of
// an AnyOf; both are built from parsePrefix results, so the same
// atom-or-parens rule applies.
func emitSequenceElement(o ast.Opt) string {
	return emitAtom(o)
}

func needsParens(o ast.Opt) bool {
	switch v := o.(type) {
	case *ast.AnyOf:
		return true
	case *ast.AllOf:
		return true
	case *ast.Sequence:
		return len(v.Operands) > 1
	default:
		return false
	}
}

func emitBound(low uint16, high int32) string {
	switch {
	case high == ast.Infinite:
		return fmt.Sprintf("{%d,}", low)
	case int32(low) == high:
		return fmt.Sprintf("{%d}", low)
	default:
		return fmt.Sprintf("{%d,%d}", low, high)
	}
}

func emitLiteral(v *ast.Literal) string {
	quote := byte('"')
	if !v.Unicode {
		quote = '\''
	}
	var sb strings.Builder
	sb.WriteByte(quote)
	for _, cp := range v.Codes {
		sb.WriteString(escapeCodepoint(cp, quote))
	}
	sb.WriteByte(quote)
	return sb.String()
}

// emitClass renders a CharRange's CharClass as a `[...]` body. The
// complement marker and the first data codepoint share the position
// immediately after `[`, so a non-complemented class whose first range
// starts with `^` must escape it or it would be misread as the
// complement marker on re-parse.
func emitClass(cc char.CharClass) string {
	var sb strings.Builder
	sb.WriteByte('[')
	if cc.Complemented {
		sb.WriteByte('^')
	}
	for i, r := range cc.Ranges {
		escapeCaret := i == 0 && !cc.Complemented
		sb.WriteString(escapeClassChar(r.Low, escapeCaret))
		if r.High != r.Low {
			sb.WriteByte('-')
			sb.WriteString(escapeClassChar(r.High, false))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// escapeCodepoint renders one literal codepoint, escaping the enclosing
// quote and '%' per the `%;`/`%%;` lexer rules, and any non-printable
// or non-ASCII codepoint as a `%xHH;` hex escape.
func escapeCodepoint(cp char.CodePoint, quote byte) string {
	switch {
	case cp == char.CodePoint(quote):
		return "%;"
	case cp == '%':
		return "%%;"
	case cp >= 0x20 && cp <= 0x7E:
		return string(rune(cp))
	default:
		return fmt.Sprintf("%%x%X;", uint32(cp))
	}
}

// escapeClassChar renders one character-class endpoint. ']', '%', and
// '-' are always escaped since a bare occurrence could close the class,
// start a `%`-escape, or be read as a range separator; escapeCaret
// additionally forces a hex escape for a leading '^'.
func escapeClassChar(cp char.CodePoint, escapeCaret bool) string {
	switch {
	case cp == ']':
		return "%;"
	case cp == '%':
		return "%%;"
	case cp == '-':
		return fmt.Sprintf("%%x%X;", uint32(cp))
	case escapeCaret && cp == '^':
		return fmt.Sprintf("%%x%X;", uint32(cp))
	case cp >= 0x20 && cp <= 0x7E:
		return string(rune(cp))
	default:
		return fmt.Sprintf("%%x%X;", uint32(cp))
	}
}
