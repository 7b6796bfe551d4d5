package resolve

import (
	"sort"

	"github.com/marron-at-work/brex/ast"
	"github.com/marron-at-work/brex/parse"
)

// ReSystem is the resolver's unit of work: a set of namespaces whose
// regex sources have not yet been linked into a single acyclic
// compilation unit (spec.md §4.2).
type ReSystem struct {
	sys *ast.System
}

// NewReSystem creates an empty ReSystem.
func NewReSystem() *ReSystem {
	return &ReSystem{sys: ast.NewSystem()}
}

// AddNamespace registers a namespace's imports and regex source texts.
// imports maps a local alias to the namespace it refers to; regexes
// maps a local name to BREX source text (e.g. `/"abc"/`).
func (s *ReSystem) AddNamespace(name string, imports map[string]string, regexes map[string]string) {
	s.sys.AddNamespace(&ast.Namespace{Name: name, Imports: imports, Regexes: regexes})
}

// Build runs the full resolution pipeline (parse, qualify, env
// substitution, cycle detection, inlining, anchor/empty validation) and
// returns every successfully resolved regex keyed by fully qualified
// name, plus the accumulated diagnostics for everything that failed
// along the way.
func (s *ReSystem) Build(env EnvLookup) (map[string]*ast.Regex, []Diagnostic) {
	var diags []Diagnostic

	unresolved := map[string]*ast.Regex{}
	namespaceOf := map[string]*ast.Namespace{}

	for _, ns := range s.sys.Namespaces {
		for local, src := range ns.Regexes {
			fqn := ast.Qualify(ns.Name, local)
			regex, pdiags := parse.ParseRegex(src)
			if len(pdiags) > 0 {
				for _, d := range pdiags {
					diags = append(diags, errf(KindParse, "%s::%s: %s", ns.Name, local, d.Message))
				}
				continue
			}
			unresolved[fqn] = regex
			namespaceOf[fqn] = ns
		}
	}

	qualified := map[string]*ast.Regex{}
	for fqn, regex := range unresolved {
		out, qdiags := s.qualify(namespaceOf[fqn], regex)
		if len(qdiags) > 0 {
			diags = append(diags, qdiags...)
			continue
		}
		qualified[fqn] = out
	}

	withEnv := map[string]*ast.Regex{}
	for fqn, regex := range qualified {
		out, ediags := substituteEnv(regex, env)
		if len(ediags) > 0 {
			diags = append(diags, ediags...)
			continue
		}
		withEnv[fqn] = out
	}

	adj := map[string][]string{}
	for fqn, regex := range withEnv {
		adj[fqn] = referencedNames(regex)
	}
	cyclic := map[string]bool{}
	for _, comp := range cyclicComponents(adj) {
		for _, n := range comp {
			cyclic[n] = true
		}
		diags = append(diags, Diagnostic{Kind: KindCycle, Message: "cyclic named references", Names: comp})
	}

	order := topoOrderDependenciesFirst(adj, cyclic)

	resolved := map[string]*ast.Regex{}
	for _, fqn := range order {
		regex, ok := withEnv[fqn]
		if !ok {
			// fqn is only referenced: it failed an earlier pass, and
			// inlineRegex reports a NameError for each regex using it.
			continue
		}
		out, idiags := inlineRegex(regex, resolved)
		if len(idiags) > 0 {
			diags = append(diags, idiags...)
			continue
		}
		resolved[fqn] = out
	}

	final := map[string]*ast.Regex{}
	for fqn, regex := range resolved {
		negativeAnchor := (regex.PreAnchor != nil && regex.PreAnchor.Negated) ||
			(regex.PostAnchor != nil && regex.PostAnchor.Negated)
		if negativeAnchor && ast.ComponentNullable(regex.Root) {
			diags = append(diags, errf(KindCompile, "%s: negative anchor over a body that accepts the empty string", fqn))
			continue
		}
		final[fqn] = regex
	}

	return final, diags
}

// referencedNames collects the fully qualified names a regex's
// NamedRefs point to, after qualification.
func referencedNames(r *ast.Regex) []string {
	var out []string
	visit := func(o ast.Opt) ast.Opt {
		if ref, ok := o.(*ast.NamedRef); ok && ref.Qualified != "" {
			out = append(out, ref.Qualified)
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
	return out
}

// topoOrderDependenciesFirst returns FQNs (excluding anything in cyclic)
// ordered so that every name appears after all names it references,
// via a post-order DFS over the dependency graph.
func topoOrderDependenciesFirst(adj map[string][]string, cyclic map[string]bool) []string {
	visited := map[string]bool{}
	var order []string
	var visit func(string)
	visit = func(u string) {
		if visited[u] || cyclic[u] {
			return
		}
		visited[u] = true
		for _, v := range adj[u] {
			visit(v)
		}
		order = append(order, u)
	}
	names := make([]string, 0, len(adj))
	for u := range adj {
		names = append(names, u)
	}
	sort.Strings(names)
	for _, u := range names {
		visit(u)
	}
	return order
}
