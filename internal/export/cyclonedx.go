package export

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/snyk-tim/uv/internal/lock"
)

// Tool provenance recorded in every SBOM this exporter produces.
const (
	toolVendor = "snyk-tim"
	toolName   = "uv"
)

// fallbackProjectName and fallbackProjectVersion identify the root
// component when the lock carries no usable project metadata (scripts,
// non-project workspaces). They feed the root BOM reference, so the
// whole dependency graph stays self-consistent around them.
const (
	fallbackProjectName    = "unknown-project"
	fallbackProjectVersion = "0.0.0"
)

// ---- CycloneDX 1.6 JSON schema types ----

type cdxBOM struct {
	BOMFormat    string          `json:"bomFormat"`
	SpecVersion  string          `json:"specVersion"`
	SerialNumber string          `json:"serialNumber"`
	Version      int             `json:"version"`
	Metadata     cdxMetadata     `json:"metadata"`
	Components   []cdxComponent  `json:"components"`
	Dependencies []cdxDependency `json:"dependencies"`
}

type cdxMetadata struct {
	Timestamp string       `json:"timestamp"`
	Tools     []cdxTool    `json:"tools"`
	Component cdxComponent `json:"component"`
}

type cdxTool struct {
	Vendor  string `json:"vendor"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// cdxComponent is one SBOM component. Scope and hashes are omitted
// entirely when unset; consumers treat an explicit null as malformed.
type cdxComponent struct {
	Type    string    `json:"type"`
	BOMRef  string    `json:"bom-ref"`
	Name    string    `json:"name"`
	Version string    `json:"version"`
	PURL    string    `json:"purl"`
	Scope   string    `json:"scope,omitempty"`
	Hashes  []cdxHash `json:"hashes,omitempty"`
}

type cdxHash struct {
	Alg     string `json:"alg"`
	Content string `json:"content"`
}

// cdxDependency records one node of the dependency graph: a component's
// BOM reference and the references it depends on.
type cdxDependency struct {
	Ref       string   `json:"ref"`
	DependsOn []string `json:"dependsOn"`
}

// ---- component identity ----

// bomRef derives the canonical identity of a component within one SBOM:
// name@version, with an absent version normalized to the literal
// "unknown". Two packages with the same name and version share a
// reference and are the same graph vertex.
func bomRef(name, version string) string {
	return name + "@" + versionOrUnknown(version)
}

// purlFor derives the informational pkg:pypi Package URL for a component.
func purlFor(name, version string) string {
	return "pkg:pypi/" + name + "@" + versionOrUnknown(version)
}

func versionOrUnknown(version string) string {
	if version == "" {
		return "unknown"
	}
	return version
}

// newComponent builds a component record with its identity fields
// populated. The caller fills in scope where one applies.
func newComponent(name, version, componentType string) cdxComponent {
	return cdxComponent{
		Type:    componentType,
		BOMRef:  bomRef(name, version),
		Name:    name,
		Version: versionOrUnknown(version),
		PURL:    purlFor(name, version),
	}
}

// ---- exporter ----

// CycloneDXExport projects a filtered lock snapshot into a CycloneDX 1.6
// JSON SBOM. Construct it with NewCycloneDX; its only further public
// behavior is Render.
type CycloneDXExport struct {
	nodes          []*lock.Node
	projectName    string
	projectVersion string
	toolVersion    string
}

// NewCycloneDX filters the lock per the options and captures the project
// identity for the root component.
func NewCycloneDX(l *lock.Lock, opts Options) (*CycloneDXExport, error) {
	nodes := l.Filter(lock.FilterOptions{Prune: opts.Prune})
	name, version := projectIdentity(l, opts)
	return &CycloneDXExport{
		nodes:          nodes,
		projectName:    name,
		projectVersion: version,
		toolVersion:    opts.ToolVersion,
	}, nil
}

// projectIdentity resolves the name/version pair identifying the root
// component: explicit overrides first, then the lock's root package,
// then the fixed fallbacks. The pair feeds the root BOM reference, so
// this chain must stay stable.
func projectIdentity(l *lock.Lock, opts Options) (string, string) {
	name := opts.ProjectName
	if name == "" {
		name = l.ProjectName()
	}
	if name == "" {
		name = fallbackProjectName
	}

	version := opts.ProjectVersion
	if version == "" {
		if root := l.Root(); root != nil {
			version = root.Version
		}
	}
	if version == "" {
		version = fallbackProjectVersion
	}
	return name, version
}

// Render serializes the SBOM as pretty JSON. A serialization failure is
// reported as the output text itself rather than as an error: the export
// always produces something to display.
func (e *CycloneDXExport) Render() string {
	bom := e.buildBOM()
	data, err := json.MarshalIndent(bom, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error serializing SBOM to JSON: %v", err)
	}
	return string(data)
}

// buildBOM assembles the full document: envelope, one library component
// per non-root node, and the dependency graph with the root's entry
// first.
func (e *CycloneDXExport) buildBOM() cdxBOM {
	rootRef := bomRef(e.projectName, e.projectVersion)

	// Index the filtered set by BOM reference once, so edge membership
	// tests are a map lookup rather than a rescan of every node.
	refs := make([]string, len(e.nodes))
	present := make(map[string]bool, len(e.nodes))
	for i, n := range e.nodes {
		refs[i] = bomRef(n.Package.Name, n.Package.Version)
		present[refs[i]] = true
	}

	components := make([]cdxComponent, 0, len(e.nodes))
	perNode := make([]cdxDependency, 0, len(e.nodes))
	var rootDependsOn []string

	for i, n := range e.nodes {
		ref := refs[i]
		if ref == rootRef {
			// The root is carried in metadata, never in the component list.
			continue
		}

		component := newComponent(n.Package.Name, n.Package.Version, "library")
		component.Scope = "required"
		components = append(components, component)

		// Keep only edges whose target survived filtering. Declaration
		// order is preserved; duplicate targets collapse to the first.
		dependsOn := make([]string, 0, len(n.Dependencies))
		seen := make(map[string]bool, len(n.Dependencies))
		for _, d := range n.Dependencies {
			depRef := bomRef(d.Name, d.Version)
			if !present[depRef] || seen[depRef] {
				continue
			}
			seen[depRef] = true
			dependsOn = append(dependsOn, depRef)
		}
		perNode = append(perNode, cdxDependency{Ref: ref, DependsOn: dependsOn})

		// A dependent matching the root identity makes this node a
		// direct dependency of the project.
		for _, parent := range n.Dependents {
			if bomRef(parent.Name, parent.Version) == rootRef {
				rootDependsOn = append(rootDependsOn, ref)
			}
		}
	}

	sort.Strings(rootDependsOn)
	rootDependsOn = dedupSorted(rootDependsOn)
	if rootDependsOn == nil {
		rootDependsOn = []string{}
	}

	dependencies := make([]cdxDependency, 0, len(perNode)+1)
	dependencies = append(dependencies, cdxDependency{Ref: rootRef, DependsOn: rootDependsOn})
	dependencies = append(dependencies, perNode...)

	return cdxBOM{
		BOMFormat:    "CycloneDX",
		SpecVersion:  "1.6",
		SerialNumber: "urn:uuid:" + uuid.NewString(),
		Version:      1,
		Metadata: cdxMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Tools: []cdxTool{
				{Vendor: toolVendor, Name: toolName, Version: e.toolVersion},
			},
			Component: newComponent(e.projectName, e.projectVersion, "application"),
		},
		Components:   components,
		Dependencies: dependencies,
	}
}

// dedupSorted removes adjacent duplicates from an already-sorted slice.
func dedupSorted(refs []string) []string {
	out := refs[:0]
	for i, r := range refs {
		if i > 0 && refs[i-1] == r {
			continue
		}
		out = append(out, r)
	}
	return out
}
