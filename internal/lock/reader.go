package lock

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ---- lock file TOML schema ----

type lockFile struct {
	Version  int           `toml:"version"`
	Packages []lockPackage `toml:"package"`
}

type lockPackage struct {
	Name         string           `toml:"name"`
	Version      string           `toml:"version"`
	Source       lockSource       `toml:"source"`
	Dependencies []lockDependency `toml:"dependencies"`
}

// lockSource carries only the source keys that distinguish the project
// root (editable or virtual) from registry dependencies.
type lockSource struct {
	Editable string `toml:"editable"`
	Virtual  string `toml:"virtual"`
	Registry string `toml:"registry"`
}

type lockDependency struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Parse decodes a TOML lock document. Package and dependency names are
// normalized on the way in so that all later lookups compare canonical
// forms.
func Parse(data []byte) (*Lock, error) {
	var file lockFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse lock file: %w", err)
	}

	l := &Lock{Version: file.Version}
	for _, p := range file.Packages {
		pkg := &Package{
			Name:     NormalizeName(p.Name),
			Version:  p.Version,
			editable: p.Source.Editable != "",
			virtual:  p.Source.Virtual != "",
		}
		for _, d := range p.Dependencies {
			pkg.Dependencies = append(pkg.Dependencies, Dependency{
				Name:    NormalizeName(d.Name),
				Version: d.Version,
			})
		}
		l.Packages = append(l.Packages, pkg)
	}
	return l, nil
}

// ReadFile parses the lock file at the given path.
func ReadFile(path string) (*Lock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file %q: %w", path, err)
	}
	return Parse(data)
}
