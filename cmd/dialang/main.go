package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dialang/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "dialang",
	Short: "Class-definition language front end",
	Long: `dialang tokenizes and parses class-definition sources, reports
diagnostics and renders class diagrams`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: startProfiling,
}

// errHasDiagnostics makes the process exit with status 1 after the
// diagnostics were already printed.
var errHasDiagnostics = errors.New("errors reported")

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(diagramCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to dialang.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log pipeline events to stderr")
	rootCmd.PersistentFlags().Bool("cache", false, "reuse parse results from the disk cache")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to this file")

	err := rootCmd.Execute()
	if stopErr := stopProfiling(); stopErr != nil {
		fmt.Fprintln(os.Stderr, "warning: profiling:", stopErr)
	}
	if err != nil {
		if !errors.Is(err, errHasDiagnostics) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}
