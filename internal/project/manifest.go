// Package project loads the forge.toml manifest that configures gallery
// rendering: where outputs go, which entries to render, and whether the
// render cache participates.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or blank.
	ErrPackageNameMissing = errors.New("missing [package].name")
	// ErrRenderSectionMissing indicates that [render] is missing.
	ErrRenderSectionMissing = errors.New("missing [render]")
	// ErrRenderOutMissing indicates that [render].out is missing or blank.
	ErrRenderOutMissing = errors.New("missing [render].out")
)

// Manifest is a located, parsed forge.toml.
type Manifest struct {
	Path   string // absolute path of forge.toml, empty for defaults
	Root   string // directory the manifest governs
	Config Config
}

// Config mirrors the forge.toml schema.
type Config struct {
	Package PackageConfig `toml:"package"`
	Render  RenderConfig  `toml:"render"`
}

// PackageConfig is the [package] section.
type PackageConfig struct {
	Name string `toml:"name"`
}

// RenderConfig is the [render] section. Entries filters the gallery; an
// absent or empty list selects every entry. Cache defaults to true when
// the key is absent.
type RenderConfig struct {
	Out     string   `toml:"out"`
	Entries []string `toml:"entries"`
	Cache   bool     `toml:"cache"`
}

// FindForgeToml walks from startDir toward the filesystem root looking for
// forge.toml. It reports the first match.
func FindForgeToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "forge.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load locates and parses the manifest governing startDir. The found flag
// is false when no forge.toml exists up the tree; that is not an error.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindForgeToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

// LoadConfig parses and validates one forge.toml file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if !meta.IsDefined("render") {
		return Config{}, fmt.Errorf("%s: %w", path, ErrRenderSectionMissing)
	}
	if !meta.IsDefined("render", "out") || strings.TrimSpace(cfg.Render.Out) == "" {
		return Config{}, fmt.Errorf("%s: %w", path, ErrRenderOutMissing)
	}
	if !meta.IsDefined("render", "cache") {
		cfg.Render.Cache = true
	}
	for i, entry := range cfg.Render.Entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return Config{}, fmt.Errorf("%s: [render].entries[%d] is empty", path, i)
		}
		cfg.Render.Entries[i] = entry
	}
	return cfg, nil
}

// DefaultConfig is the configuration used when no forge.toml exists:
// every entry, cache on, outputs under gen/dart.
func DefaultConfig() Config {
	return Config{
		Package: PackageConfig{Name: "gallery"},
		Render: RenderConfig{
			Out:   "gen/dart",
			Cache: true,
		},
	}
}

// Defaults returns a manifest carrying DefaultConfig rooted at dir.
func Defaults(dir string) *Manifest {
	return &Manifest{Root: dir, Config: DefaultConfig()}
}

// OutDir resolves [render].out against the manifest root. The path must be
// relative and must stay inside the root; it need not exist yet.
func (m *Manifest) OutDir() (string, error) {
	out := strings.TrimSpace(m.Config.Render.Out)
	if out == "" {
		return "", ErrRenderOutMissing
	}
	if filepath.IsAbs(out) {
		return "", fmt.Errorf("invalid [render].out %q: must be relative", out)
	}
	clean := filepath.Clean(filepath.FromSlash(out))
	dir := filepath.Join(m.Root, clean)
	if !pathWithin(m.Root, dir) {
		return "", fmt.Errorf("invalid [render].out %q: escapes project root", out)
	}
	return dir, nil
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return !strings.HasPrefix(rel, "..") && rel != ".."
}
