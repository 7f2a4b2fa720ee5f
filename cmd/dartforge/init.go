package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new dartforge project",
	Long: `Initialize a new dartforge project by creating a project manifest
(forge.toml). If [path|name] is omitted, initializes the current directory.
If a non-existing name is provided, a directory will be created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

// runInit creates a forge.toml manifest at the target path (or the current
// working directory when no argument or "." is provided). It resolves the
// target path, creates the directory if it does not exist, derives a project
// name from the directory basename (falling back to "dartforge-project" for
// invalid names), and refuses to initialize if forge.toml already exists.
func runInit(cmd *cobra.Command, args []string) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	// Resolve target directory
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else {
		// treat as path or name relative to cwd
		arg := args[0]
		if !filepath.IsAbs(arg) {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			target = filepath.Join(wd, arg)
		} else {
			target = arg
		}
	}

	// Ensure directory exists
	if st, err := os.Stat(target); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if err = os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %q: %w", target, err)
			}
		} else {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	// Determine project name from directory basename
	name := filepath.Base(target)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "dartforge-project"
	}

	// Create manifest file if not exists
	manifestPath := filepath.Join(target, "forge.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project already initialized: %s exists", manifestPath)
	}

	manifest := buildDefaultManifest(name)
	if err := os.WriteFile(manifestPath, []byte(manifest), os.FileMode(0o600)); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	if quiet {
		return nil
	}
	rel := target
	if wd, err := os.Getwd(); err == nil {
		if r, err2 := filepath.Rel(wd, target); err2 == nil {
			rel = r
		}
	}
	fmt.Fprintf(os.Stdout, "Initialized dartforge project in %s\n", rel)
	fmt.Fprintf(os.Stdout, "  - forge.toml\n")
	return nil
}

// buildDefaultManifest returns a minimal TOML manifest for a dartforge
// project using the provided package name. The manifest contains [package]
// metadata and a [render] section selecting the whole gallery.
func buildDefaultManifest(name string) string {
	return fmt.Sprintf(`# dartforge project manifest
[package]
name = "%s"

[render]
out = "gen/dart"
# entries = ["loops/for-classic"]  # empty or absent renders the whole gallery
cache = true
`, name)
}
