package main

import (
	"path/filepath"
	"strings"
	"testing"

	"dartforge/internal/driver"
	"dartforge/internal/project"
)

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		input   string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{"On", uiModeOn, false},
		{" off ", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("readUIMode(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("readUIMode(%q) error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("readUIMode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFormatPathForOutput(t *testing.T) {
	root := filepath.Join("home", "demo")
	inside := filepath.Join(root, "gen", "dart", "loops", "while.dart")
	if got := formatPathForOutput(root, inside); got != "gen/dart/loops/while.dart" {
		t.Fatalf("formatPathForOutput inside root = %q", got)
	}
	outside := filepath.Join("elsewhere", "x.dart")
	if got := formatPathForOutput(root, outside); got != outside {
		t.Fatalf("formatPathForOutput outside root = %q, want %q", got, outside)
	}
	if got := formatPathForOutput("", inside); got != inside {
		t.Fatalf("formatPathForOutput with empty root = %q, want %q", got, inside)
	}
}

func TestBuildDefaultManifestParses(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "forge.toml")
	writeTestFile(t, path, buildDefaultManifest("demo"))

	cfg, err := project.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Package.Name != "demo" {
		t.Fatalf("Package.Name = %q, want demo", cfg.Package.Name)
	}
	if cfg.Render.Out != "gen/dart" {
		t.Fatalf("Render.Out = %q, want gen/dart", cfg.Render.Out)
	}
	if !cfg.Render.Cache {
		t.Fatalf("Render.Cache = false, want true")
	}
	if len(cfg.Render.Entries) != 0 {
		t.Fatalf("Render.Entries = %v, want empty", cfg.Render.Entries)
	}
}

func TestListEntries(t *testing.T) {
	m := project.Defaults(t.TempDir())
	m.Config.Render.Entries = []string{"loops/while", "branches/if"}
	tasks, err := driver.Plan(m)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	var sb strings.Builder
	if err := listEntries(&sb, tasks); err != nil {
		t.Fatalf("listEntries: %v", err)
	}
	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 2 entries + summary, got %d lines:\n%s", len(lines), sb.String())
	}
	if lines[0] != "loops/while" || lines[1] != "branches/if" {
		t.Fatalf("unexpected entry lines: %q", lines[:2])
	}
	if !strings.Contains(lines[2], "2 entries") || !strings.Contains(lines[2], "loops") {
		t.Fatalf("unexpected summary line: %q", lines[2])
	}
}

func TestRenderToStdout(t *testing.T) {
	m := project.Defaults(t.TempDir())
	m.Config.Render.Entries = []string{"loops/do-while"}
	tasks, err := driver.Plan(m)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	var sb strings.Builder
	if err := renderToStdout(&sb, tasks); err != nil {
		t.Fatalf("renderToStdout: %v", err)
	}
	want := "// loops/do-while\ndo { token = refresh(); } while (token == null);\n"
	if sb.String() != want {
		t.Fatalf("renderToStdout output = %q, want %q", sb.String(), want)
	}
}
