// Package main implements the dartforge CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dartforge/flow"
	"dartforge/internal/corpus"
	"dartforge/internal/driver"
	"dartforge/internal/pipeline"
	"dartforge/internal/project"
)

var renderCmd = &cobra.Command{
	Use:   "render [flags] [dir]",
	Short: "Render the gallery into Dart source files",
	Long:  "Render the configured gallery entries into Dart source files, using forge.toml as the project definition.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  renderExecution,
}

func renderExecution(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	checkFlag, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	stdoutFlag, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	timingsFlag, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	listFlag, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	uiValue, err := cmd.Root().PersistentFlags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	if checkFlag && stdoutFlag {
		return fmt.Errorf("--check and --stdout are mutually exclusive")
	}

	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
	color.NoColor = !useColor

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	dir := "."
	if len(args) > 0 && args[0] != "" {
		dir = args[0]
	}

	planStart := time.Now()
	manifest, manifestFound, err := project.Load(dir)
	if err != nil {
		return err
	}
	if !manifestFound {
		manifest = project.Defaults(dir)
	}
	tasks, err := driver.Plan(manifest)
	if err != nil {
		return err
	}
	planElapsed := time.Since(planStart)

	if listFlag {
		return listEntries(os.Stdout, tasks)
	}
	if stdoutFlag {
		return renderToStdout(os.Stdout, tasks)
	}

	var cache *driver.RenderCache
	if manifest.Config.Render.Cache && !checkFlag {
		cache, err = driver.OpenRenderCache("dartforge")
		if err != nil {
			return fmt.Errorf("failed to open render cache: %w", err)
		}
	}

	opts := driver.Options{
		Jobs:  jobs,
		Cache: cache,
		Check: checkFlag,
	}

	// The TUI redraws per-entry status lines itself, so plain per-file
	// reporting only happens without it. Check mode stays plain: its output
	// is meant for CI logs.
	useTUI := shouldUseTUI(uiModeValue) && !checkFlag && len(tasks) > 0

	var (
		results []driver.Result
		timings pipeline.Timings
	)
	if useTUI {
		results, timings, err = runRenderWithUI(cmd.Context(), "dartforge render", tasks, opts)
	} else {
		results, timings, err = driver.RenderAll(cmd.Context(), tasks, opts)
	}
	timings.Set(pipeline.StagePlan, planElapsed)
	if err != nil {
		if timingsFlag {
			printStageTimings(os.Stdout, timings)
		}
		return err
	}

	verbose := !quiet && !useTUI
	var failed, drifted, cachedCount int
	for _, res := range results {
		if res.Err != nil {
			failed++
			_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", res.Err)
			continue
		}
		rel := formatPathForOutput(manifest.Root, res.Path)
		switch {
		case checkFlag && res.Drifted:
			drifted++
			if !quiet {
				_, _ = fmt.Fprintf(os.Stdout, "drift %s\n", rel)
			}
		case checkFlag:
			// up to date, stay silent
		case res.Cached:
			cachedCount++
			if verbose {
				_, _ = fmt.Fprintf(os.Stdout, "cached %s\n", rel)
			}
		default:
			if verbose {
				_, _ = fmt.Fprintf(os.Stdout, "wrote %s\n", rel)
			}
		}
	}
	if timingsFlag {
		printStageTimings(os.Stdout, timings)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d entries failed", failed, len(results))
	}
	if checkFlag {
		if drifted > 0 {
			return fmt.Errorf("%d of %d outputs out of date", drifted, len(results))
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "%d outputs up to date\n", len(results))
		}
		return nil
	}
	if !quiet {
		outDir, outErr := manifest.OutDir()
		if outErr != nil {
			outDir = manifest.Root
		}
		summary := fmt.Sprintf("rendered %d entries to %s", len(results), formatPathForOutput(manifest.Root, outDir))
		if cachedCount > 0 {
			summary += fmt.Sprintf(" (%d cached)", cachedCount)
		}
		_, _ = fmt.Fprintln(os.Stdout, summary)
	}
	return nil
}

// listEntries prints the planned entry names, one per line, with a group
// summary at the end.
func listEntries(out io.Writer, tasks []driver.Task) error {
	for _, task := range tasks {
		if _, err := fmt.Fprintln(out, task.Entry.Name); err != nil {
			return err
		}
	}
	groups := corpus.Groups()
	_, err := fmt.Fprintf(out, "%d entries in %d groups (%s)\n", len(tasks), len(groups), strings.Join(groups, ", "))
	return err
}

// renderToStdout emits every planned entry to out instead of writing files,
// each preceded by a comment naming the entry. Entries render sequentially
// so the output order matches the plan.
func renderToStdout(out io.Writer, tasks []driver.Task) error {
	for _, task := range tasks {
		code, err := task.Entry.Build()
		if err != nil {
			return fmt.Errorf("render %s: %w", task.Entry.Name, err)
		}
		text, err := flow.Render(code)
		if err != nil {
			return fmt.Errorf("render %s: %w", task.Entry.Name, err)
		}
		if _, err := fmt.Fprintf(out, "// %s\n%s\n", task.Entry.Name, text); err != nil {
			return err
		}
	}
	return nil
}

func formatPathForOutput(root, path string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	if strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func init() {
	renderCmd.Flags().Int("jobs", 0, "max concurrent renders (0 = number of CPUs)")
	renderCmd.Flags().Bool("check", false, "verify outputs are up to date instead of writing")
	renderCmd.Flags().Bool("stdout", false, "emit rendered entries to stdout instead of files")
	renderCmd.Flags().Bool("timings", false, "show per-stage timing information")
	renderCmd.Flags().Bool("list", false, "list the planned entries without rendering")
}
