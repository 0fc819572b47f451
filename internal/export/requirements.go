package export

import (
	"strings"

	"github.com/snyk-tim/uv/internal/lock"
)

// RequirementsTxtExport renders the filtered lock snapshot in
// requirements.txt format: one pinned requirement per non-root package,
// in lock order, optionally annotated with the packages each requirement
// is included via.
type RequirementsTxtExport struct {
	nodes    []*lock.Node
	rootName string
	annotate bool
}

// NewRequirementsTxt filters the lock per the options and prepares a
// requirements.txt rendering of it.
func NewRequirementsTxt(l *lock.Lock, opts Options) *RequirementsTxtExport {
	name, _ := projectIdentity(l, opts)
	return &RequirementsTxtExport{
		nodes:    l.Filter(lock.FilterOptions{Prune: opts.Prune}),
		rootName: lock.NormalizeName(name),
		annotate: opts.Annotate,
	}
}

// Render produces the requirements.txt text.
func (e *RequirementsTxtExport) Render() string {
	var b strings.Builder
	b.WriteString("# This file was autogenerated by uv export.\n")

	for _, n := range e.nodes {
		if n.Package.Name == e.rootName {
			continue
		}
		b.WriteString(n.Package.Name)
		if n.Package.Version != "" {
			b.WriteString("==")
			b.WriteString(n.Package.Version)
		}
		b.WriteString("\n")

		if e.annotate {
			b.WriteString(viaComment(n))
		}
	}
	return b.String()
}

// viaComment renders the "# via" trailer naming the packages that pull
// in this requirement. Dependents matching the project itself are
// reported under the project's name like any other.
func viaComment(n *lock.Node) string {
	if len(n.Dependents) == 0 {
		return ""
	}
	names := make([]string, 0, len(n.Dependents))
	seen := make(map[string]bool, len(n.Dependents))
	for _, d := range n.Dependents {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		names = append(names, d.Name)
	}
	return "    # via " + strings.Join(names, ", ") + "\n"
}
