// Package lock models an already-resolved dependency lock and the
// filtered view of it that the exporters consume.
package lock

// Dependency identifies a package that another package depends on.
// The version may be empty when the lock records the edge by name only.
type Dependency struct {
	Name    string
	Version string
}

// Package is one locked package: a pinned name/version pair plus the
// dependency edges declared for it in the lock.
type Package struct {
	Name         string       // normalized package name
	Version      string       // pinned version, or "" when unresolvable
	Dependencies []Dependency // declared edges, in lock order

	editable bool // the package is the project itself, installed in place
	virtual  bool // the project root of a workspace without its own distribution
}

// IsRoot reports whether this package represents the project being
// exported rather than one of its dependencies.
func (p *Package) IsRoot() bool {
	return p.editable || p.virtual
}

// Lock is the resolved dependency snapshot read from a lock file.
// Package order follows the lock file and is preserved through export.
type Lock struct {
	Version  int
	Packages []*Package
}

// Root returns the package representing the project itself, or nil when
// the lock has no such package (e.g. a script or non-project workspace).
func (l *Lock) Root() *Package {
	for _, p := range l.Packages {
		if p.IsRoot() {
			return p
		}
	}
	return nil
}

// ProjectName returns the root package's name, or "" when the lock does
// not identify a project.
func (l *Lock) ProjectName() string {
	if root := l.Root(); root != nil {
		return root.Name
	}
	return ""
}

// NormalizeName returns the canonical form of a package name: lowercase,
// with any run of hyphens, underscores and dots collapsed to a single
// hyphen, so that "Nlohmann_JSON" and "nlohmann-json" compare equal.
func NormalizeName(name string) string {
	result := make([]byte, 0, len(name))
	sep := false
	for i := 0; i < len(name); i++ {
		b := name[i]
		if b >= 'A' && b <= 'Z' {
			b += 32
		}
		if b == '-' || b == '_' || b == '.' {
			if sep {
				continue
			}
			sep = true
			result = append(result, '-')
			continue
		}
		sep = false
		result = append(result, b)
	}
	return string(result)
}
