package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dialang/internal/ast"
	"dialang/internal/diagfmt"
	"dialang/internal/driver"
	"dialang/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.cls|directory>",
	Short: "Parse a source file or directory and print the syntax tree",
	Long: `Parse analyzes a source file or all *.cls files in a directory and
prints the recovered syntax trees`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json|tree)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

type programPrinter func(w io.Writer, prog *ast.Program, fs *source.FileSet) error

func printerFor(format string) (programPrinter, error) {
	switch format {
	case "pretty":
		return diagfmt.FormatProgramPretty, nil
	case "tree":
		return diagfmt.FormatProgramTree, nil
	case "json":
		return func(w io.Writer, prog *ast.Program, _ *source.FileSet) error {
			return diagfmt.FormatProgramJSON(w, prog)
		}, nil
	}
	return nil, fmt.Errorf("unknown format: %s", format)
}

func runParse(cmd *cobra.Command, args []string) error {
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
	printProgram, err := printerFor(format)
	if err != nil {
		return err
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
	// the tree is needed, so cached models cannot serve this command
	opts.Cache = nil

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if !st.IsDir() {
		result, err := driver.Parse(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if result.Bag.Len() > 0 && !s.quiet {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, s.prettyOpts())
		}
		return printProgram(os.Stdout, result.Program, result.FileSet)
	}

	fs, results, err := driver.ParseDir(cmd.Context(), path, jobs, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if !s.quiet {
		for _, r := range results {
			if r.Bag.Len() > 0 {
				diagfmt.Pretty(os.Stderr, r.Bag, fs, s.prettyOpts())
			}
		}
	}

	if format == "json" {
		output := make(map[string]json.RawMessage, len(results))
		for _, r := range results {
			display := fs.Get(r.FileID).FormatPath("auto", fs.BaseDir())
			if r.Program == nil {
				output[display] = json.RawMessage("null")
				continue
			}
			var buf bytes.Buffer
			if err := diagfmt.FormatProgramJSON(&buf, r.Program); err != nil {
				return err
			}
			output[display] = json.RawMessage(buf.Bytes())
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(output)
	}

	for idx, r := range results {
		if !s.quiet {
			if _, err := fmt.Fprintf(os.Stdout, "== %s ==\n", fs.Get(r.FileID).FormatPath("auto", fs.BaseDir())); err != nil {
				return err
			}
		}
		if r.Program != nil {
			if err := printProgram(os.Stdout, r.Program, fs); err != nil {
				return err
			}
		}
		if !s.quiet && idx < len(results)-1 {
			if _, err := fmt.Fprintln(os.Stdout); err != nil {
				return err
			}
		}
	}
	return nil
}
