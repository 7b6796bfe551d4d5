// Package resolve links a multi-namespace ast.System into a set of
// fully-resolved, acyclic ast.Regex trees: it qualifies NamedRef targets,
// substitutes EnvRef literals, detects reference cycles, inlines named
// references in reverse topological order, and validates the
// anchor/empty invariant. Grounded on wirefilter/schema.go's
// walk-and-validate shape (see schema.go's Schema.validateExpression),
// generalized from single-pass validation to a multi-pass pipeline.
package resolve

import "fmt"

// Kind identifies which of spec.md §7's non-runtime error categories a
// Diagnostic belongs to.
type Kind uint8

const (
	KindParse Kind = iota
	KindName
	KindCycle
	KindEnv
	KindCompile
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "ParseError"
	case KindName:
		return "NameError"
	case KindCycle:
		return "CycleError"
	case KindEnv:
		return "EnvError"
	case KindCompile:
		return "CompileError"
	default:
		return "UnknownError"
	}
}

// Diagnostic is one accumulated error from the resolution pipeline.
// Names carries the offending fully-qualified names for KindCycle.
type Diagnostic struct {
	Kind    Kind
	Message string
	Names   []string
}

func (d Diagnostic) String() string {
	if len(d.Names) > 0 {
		return fmt.Sprintf("%s: %s %v", d.Kind, d.Message, d.Names)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}

func errf(k Kind, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Kind: k, Message: fmt.Sprintf(format, args...)}
}
