package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"dialang/internal/diag"
	"dialang/internal/diagfmt"
	"dialang/internal/diagram"
	"dialang/internal/driver"
	"dialang/internal/model"
)

var diagramCmd = &cobra.Command{
	Use:   "diagram [flags] <file.cls|directory>",
	Short: "Render the declared classes as a draw.io class diagram",
	Long: `Diagram parses the input, recovering from syntax errors, and writes the
classes it found as draw.io XML. Diagnostics go to stderr`,
	Args: cobra.ExactArgs(1),
	RunE: runDiagram,
}

func init() {
	diagramCmd.Flags().StringP("output", "o", "", `output file, "-" for stdout (default from dialang.toml or output.drawio)`)
	diagramCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	diagramCmd.Flags().Bool("model", false, "print the class model as JSON instead of XML")
}

func runDiagram(cmd *cobra.Command, args []string) error {
	start := time.Now()
	path := args[0]

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	asModel, err := cmd.Flags().GetBool("model")
	if err != nil {
		return fmt.Errorf("failed to get model flag: %w", err)
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
	if output == "" {
		output = s.cfg.Diagram.Output
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var m *model.Model
	if st.IsDir() {
		fs, results, err := driver.ParseDir(cmd.Context(), path, jobs, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		var bag *diag.Bag
		m, bag = driver.MergeDir(results, opts.MaxDiagnostics)
		if bag.Len() > 0 && !s.quiet {
			diagfmt.Pretty(os.Stderr, bag, fs, s.prettyOpts())
		}
	} else {
		result, err := driver.Analyze(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if result.Bag.Len() > 0 && !s.quiet {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, s.prettyOpts())
		}
		m = result.Model
	}

	render := func(w io.Writer) error {
		if asModel {
			return diagfmt.FormatModelJSON(w, m)
		}
		return diagram.Render(w, m)
	}
	if output == "-" {
		return render(os.Stdout)
	}
	if err := writeFileAtomic(output, render); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	if !s.quiet {
		fmt.Fprintf(os.Stderr, "wrote %d classes to %s\n", len(m.Order), output)
	}
	return nil
}

// writeFileAtomic renders into a temp file next to path and renames it over
// path, so a failed render leaves the previous output intact.
func writeFileAtomic(path string, render func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".dialang-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = render(f); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
