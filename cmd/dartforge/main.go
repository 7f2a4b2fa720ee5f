package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dartforge/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "dartforge",
	Short: "Dart control-flow emitter and gallery toolchain",
	Long:  `Dartforge renders the built-in gallery of Dart control-flow constructs into source files`,
}

// main registers the subcommands and persistent flags, then executes the
// root command. If command execution returns an error, the process exits
// with status code 1.
func main() {
	// Версия для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("ui", "auto", "user interface (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
