package version

import (
	"strings"
	"testing"
)

func TestVersionDefaults(t *testing.T) {
	if Version == "" {
		t.Fatal("Version must have a default")
	}
	if !strings.HasSuffix(Version, "-dev") {
		t.Fatalf("unreleased builds carry a -dev suffix, got %q", Version)
	}
	if strings.Count(Version, ".") < 2 {
		t.Fatalf("Version %q is not semver-shaped", Version)
	}
}

func TestLinkTimeOverrides(t *testing.T) {
	// GitCommit, GitMessage and BuildDate ship empty and are filled by
	// -ldflags; the zero value must stay legal.
	origCommit, origMessage, origDate := GitCommit, GitMessage, BuildDate
	defer func() {
		GitCommit, GitMessage, BuildDate = origCommit, origMessage, origDate
	}()

	GitCommit = "a1b2c3d"
	GitMessage = "cut release"
	BuildDate = "2026-08-25T00:00:00Z"
	if GitCommit != "a1b2c3d" || GitMessage != "cut release" || BuildDate != "2026-08-25T00:00:00Z" {
		t.Fatal("link-time variables not assignable")
	}
}
