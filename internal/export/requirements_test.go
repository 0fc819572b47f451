package export

import (
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestRequirementsTxt(t *testing.T) {
	text := NewRequirementsTxt(mustLock(t, deeperLock), Options{}).Render()
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	want := []string{
		"# This file was autogenerated by uv export.",
		"requests==2.0",
		"anyio==4.3.0",
		"idna==3.6",
		"urllib3==2.2.1",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), text)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestRequirementsTxtAnnotate(t *testing.T) {
	text := NewRequirementsTxt(mustLock(t, deeperLock), Options{Annotate: true}).Render()

	if !strings.Contains(text, "requests==2.0\n    # via myapp\n") {
		t.Errorf("missing via annotation for requests:\n%s", text)
	}
	if !strings.Contains(text, "idna==3.6\n    # via requests, anyio\n") {
		t.Errorf("missing via annotation for idna:\n%s", text)
	}
}

func TestRequirementsTxtSkipsRoot(t *testing.T) {
	text := NewRequirementsTxt(mustLock(t, simpleLock), Options{}).Render()
	if strings.Contains(text, "myapp") {
		t.Errorf("root package leaked into requirements output:\n%s", text)
	}
}

func TestRequirementsTxtUnpinned(t *testing.T) {
	text := NewRequirementsTxt(mustLock(t, `
[[package]]
name = "local-thing"
`), Options{}).Render()
	if !strings.Contains(text, "local-thing\n") {
		t.Errorf("version-less package should render bare:\n%s", text)
	}
	if strings.Contains(text, "local-thing==") {
		t.Errorf("version-less package must not render a pin:\n%s", text)
	}
}

func TestRequirementsTxtPrune(t *testing.T) {
	text := NewRequirementsTxt(mustLock(t, deeperLock), Options{Prune: []string{"idna"}}).Render()
	if strings.Contains(text, "idna") {
		t.Errorf("pruned package leaked into requirements output:\n%s", text)
	}
}

func TestPylockToml(t *testing.T) {
	text := NewPylockToml(mustLock(t, deeperLock), Options{}).Render()

	var file pylockFile
	if err := toml.Unmarshal([]byte(text), &file); err != nil {
		t.Fatalf("output is not valid TOML: %v\n%s", err, text)
	}
	if file.LockVersion != "1.0" {
		t.Errorf("lock-version = %q, want 1.0", file.LockVersion)
	}
	if file.CreatedBy != "uv" {
		t.Errorf("created-by = %q, want uv", file.CreatedBy)
	}
	if len(file.Packages) != 4 {
		t.Fatalf("got %d packages, want 4:\n%s", len(file.Packages), text)
	}
	if file.Packages[0].Name != "requests" || file.Packages[0].Version != "2.0" {
		t.Errorf("packages[0] = %+v, want requests@2.0", file.Packages[0])
	}
}
