package lock

// Node is one locked package surviving filtering, annotated with the
// packages that depend on it. Dependencies are resolved against the
// surviving set: edges recorded by name only pick up the version of the
// surviving package of that name, so downstream identity checks see the
// same name@version pair on both ends of an edge.
type Node struct {
	Package      *Package
	Dependencies []Dependency // resolved edges, declaration order
	Dependents   []*Package   // surviving packages that depend on this one
}

// FilterOptions controls which locked packages survive into the export.
type FilterOptions struct {
	// Prune lists package names to drop from the export. Matching is by
	// normalized name; the pruned package's own subtree is not removed
	// beyond what the name list states.
	Prune []string
}

// Filter computes the ordered filtered node set for an export: the lock's
// packages minus the pruned names, each annotated with its resolved
// dependency edges and its dependents within the surviving set.
func (l *Lock) Filter(opts FilterOptions) []*Node {
	pruned := make(map[string]bool, len(opts.Prune))
	for _, name := range opts.Prune {
		pruned[NormalizeName(name)] = true
	}

	var nodes []*Node
	byName := make(map[string][]*Node, len(l.Packages))
	for _, p := range l.Packages {
		if pruned[p.Name] {
			continue
		}
		n := &Node{Package: p}
		nodes = append(nodes, n)
		byName[p.Name] = append(byName[p.Name], n)
	}

	// Resolve each surviving node's edges, then invert them to fill in
	// dependents. Edges pointing at pruned packages keep their declared
	// form and simply match nothing downstream.
	for _, n := range nodes {
		for _, d := range n.Package.Dependencies {
			candidates := byName[d.Name]
			if d.Version == "" && len(candidates) == 1 {
				d.Version = candidates[0].Package.Version
			}
			n.Dependencies = append(n.Dependencies, d)

			for _, c := range candidates {
				if d.Version != "" && d.Version != c.Package.Version {
					continue
				}
				c.Dependents = append(c.Dependents, n.Package)
			}
		}
	}
	return nodes
}
