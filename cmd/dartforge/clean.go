package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dartforge/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the dartforge render cache",
	Long:  "Remove the per-user cache directory that stores fingerprints of previously rendered gallery entries.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	dir, err := driver.CachePath("dartforge")
	if err != nil {
		return err
	}
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if !quiet {
				_, _ = fmt.Fprintf(os.Stdout, "render cache not found\n")
			}
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", dir, err)
	}
	cache, err := driver.OpenRenderCache("dartforge")
	if err != nil {
		return err
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", dir, err)
	}
	if !quiet {
		_, _ = fmt.Fprintf(os.Stdout, "removed %s\n", dir)
	}
	return nil
}
