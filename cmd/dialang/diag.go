package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dialang/internal/diag"
	"dialang/internal/diagfmt"
	"dialang/internal/driver"
	"dialang/internal/source"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] <file.cls|directory>",
	Short: "Report diagnostics for a source file or directory",
	Long: `Diag lexes and parses a source file or all *.cls files in a directory
and reports every diagnostic. It exits with status 1 when errors were found`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagnose,
}

func init() {
	diagCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	diagCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagCmd.Flags().Bool("with-notes", true, "include diagnostic notes in output")
	diagCmd.Flags().String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
}

func runDiagnose(cmd *cobra.Command, args []string) error {
	start := time.Now()
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	pathModeFlag, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, ok := diagfmt.ParsePathMode(pathModeFlag)
	if !ok {
		return fmt.Errorf("unknown path mode: %s", pathModeFlag)
	}
	switch format {
	case "pretty", "json", "short":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.finish(start)
	opts, err := s.driverOptions()
	if err != nil {
		return err
	}

	fs, bag, err := collectDiagnostics(cmd, path, jobs, opts)
	if err != nil {
		return err
	}

	switch format {
	case "pretty":
		prettyOpts := s.prettyOpts()
		prettyOpts.ShowNotes = withNotes
		prettyOpts.PathMode = pathMode
		diagfmt.Pretty(os.Stdout, bag, fs, prettyOpts)
		if bag.Len() == 0 && !s.quiet {
			fmt.Fprintln(os.Stdout, "no diagnostics")
		}
	case "json":
		if err := diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			Max:              s.maxDiagnostics,
			IncludeNotes:     withNotes,
		}); err != nil {
			return err
		}
	case "short":
		fmt.Fprint(os.Stdout, diag.FormatShort(bag.Items(), fs, withNotes))
	}

	if bag.HasErrors() {
		return errHasDiagnostics
	}
	return nil
}

// collectDiagnostics runs the pipeline over a file or a directory and
// returns all diagnostics in one bag.
func collectDiagnostics(cmd *cobra.Command, path string, jobs int, opts driver.Options) (*source.FileSet, *diag.Bag, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		result, err := driver.Analyze(cmd.Context(), path, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("diagnose failed: %w", err)
		}
		return result.FileSet, result.Bag, nil
	}

	fs, results, err := driver.ParseDir(cmd.Context(), path, jobs, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("diagnose failed: %w", err)
	}
	_, bag := driver.MergeDir(results, opts.MaxDiagnostics)
	return fs, bag, nil
}
