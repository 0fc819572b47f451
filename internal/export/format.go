// Package export renders a filtered lock snapshot in the supported
// export formats.
package export

import (
	"fmt"
	"strings"

	"github.com/snyk-tim/uv/internal/lock"
)

// Format selects an export format for a resolved lock.
type Format string

const (
	// FormatRequirementsTxt exports in requirements.txt format.
	FormatRequirementsTxt Format = "requirements.txt"
	// FormatPylockToml exports in pylock.toml format.
	FormatPylockToml Format = "pylock.toml"
	// FormatCycloneDX exports a CycloneDX 1.6 JSON SBOM.
	FormatCycloneDX Format = "cyclonedx1.6+json"
)

// ParseFormat parses a format selection string. Matching is
// case-insensitive and accepts the hyphenated spelling of each format
// alongside the canonical dotted one.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "requirements.txt", "requirements-txt":
		return FormatRequirementsTxt, nil
	case "pylock.toml", "pylock-toml":
		return FormatPylockToml, nil
	case "cyclonedx1.6+json", "cyclonedx-1.6-json", "cyclonedx":
		return FormatCycloneDX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (supported: requirements.txt, pylock.toml, cyclonedx1.6+json)", s)
	}
}

// Exporter is the one public behavior of a constructed export: render
// the document to text.
type Exporter interface {
	Render() string
}

// Options carries the caller-facing knobs shared by all exporters.
type Options struct {
	// Prune lists package names to exclude from the export.
	Prune []string
	// Annotate adds "via" comments to formats that support them.
	Annotate bool
	// ProjectName overrides the project identity derived from the lock.
	ProjectName string
	// ProjectVersion overrides the project version derived from the lock.
	ProjectVersion string
	// ToolVersion is the exporting tool's own version, recorded in
	// formats that carry provenance.
	ToolVersion string
}

// New constructs the exporter for the given format, or a lock-processing
// error when the snapshot cannot be exported.
func New(format Format, l *lock.Lock, opts Options) (Exporter, error) {
	switch format {
	case FormatRequirementsTxt:
		return NewRequirementsTxt(l, opts), nil
	case FormatPylockToml:
		return NewPylockToml(l, opts), nil
	case FormatCycloneDX:
		return NewCycloneDX(l, opts)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
