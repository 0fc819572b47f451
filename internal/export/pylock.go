package export

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/snyk-tim/uv/internal/lock"
)

// ---- pylock.toml schema ----

type pylockFile struct {
	LockVersion string          `toml:"lock-version"`
	CreatedBy   string          `toml:"created-by"`
	Packages    []pylockPackage `toml:"packages"`
}

type pylockPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version,omitempty"`
}

// PylockTomlExport renders the filtered lock snapshot as a minimal
// pylock.toml document.
type PylockTomlExport struct {
	nodes    []*lock.Node
	rootName string
}

// NewPylockToml filters the lock per the options and prepares a
// pylock.toml rendering of it.
func NewPylockToml(l *lock.Lock, opts Options) *PylockTomlExport {
	name, _ := projectIdentity(l, opts)
	return &PylockTomlExport{
		nodes:    l.Filter(lock.FilterOptions{Prune: opts.Prune}),
		rootName: lock.NormalizeName(name),
	}
}

// Render produces the pylock.toml text. Like the SBOM renderer, a
// serialization failure becomes the output text itself.
func (e *PylockTomlExport) Render() string {
	file := pylockFile{
		LockVersion: "1.0",
		CreatedBy:   toolName,
		Packages:    make([]pylockPackage, 0, len(e.nodes)),
	}
	for _, n := range e.nodes {
		if n.Package.Name == e.rootName {
			continue
		}
		file.Packages = append(file.Packages, pylockPackage{
			Name:    n.Package.Name,
			Version: n.Package.Version,
		})
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Sprintf("Error serializing pylock to TOML: %v", err)
	}
	return string(data)
}
