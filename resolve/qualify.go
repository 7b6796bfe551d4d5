package resolve

import (
	"strings"

	"github.com/marron-at-work/brex/ast"
)

// qualify rewrites every NamedRef in r so Qualified holds its fully
// resolved "NS::Local" form, resolving import aliases against ns.
// Unknown aliases or unknown locals are reported as NameError and the
// offending NamedRef is left with an empty Qualified so later passes
// can recognize and skip it.
func (s *ReSystem) qualify(ns *ast.Namespace, r *ast.Regex) (*ast.Regex, []Diagnostic) {
	var diags []Diagnostic
	out := transformRegex(r, func(o ast.Opt) ast.Opt {
		ref, ok := o.(*ast.NamedRef)
		if !ok {
			return o
		}
		qualified, err := s.qualifyName(ns, ref.Name)
		if err != "" {
			diags = append(diags, errf(KindName, "%s", err))
			return &ast.NamedRef{Name: ref.Name}
		}
		return &ast.NamedRef{Name: ref.Name, Qualified: qualified}
	})
	return out, diags
}

// qualifyName resolves a reference name written inside ns to a fully
// qualified "NS::Local" name, or returns a non-empty error message.
// A prefix that is not one of ns's import aliases but names a namespace
// of the system is taken as already fully qualified.
func (s *ReSystem) qualifyName(ns *ast.Namespace, name string) (qualified string, errMsg string) {
	if idx := strings.Index(name, "::"); idx >= 0 {
		alias, local := name[:idx], name[idx+2:]
		target, ok := ns.Imports[alias]
		if !ok {
			if _, isNS := s.sys.Namespaces[alias]; !isNS {
				return "", "unknown namespace alias " + alias + " in namespace " + ns.Name
			}
			target = alias
		}
		targetNS, ok := s.sys.Namespaces[target]
		if !ok {
			return "", "namespace " + target + " imported by " + ns.Name + " does not exist"
		}
		if _, ok := targetNS.Regexes[local]; !ok {
			return "", "unknown local name " + local + " in namespace " + target
		}
		return ast.Qualify(target, local), ""
	}
	if _, ok := ns.Regexes[name]; !ok {
		return "", "unknown local name " + name + " in namespace " + ns.Name
	}
	return ast.Qualify(ns.Name, name), ""
}
