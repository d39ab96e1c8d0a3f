package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dialang/internal/prof"
)

var profiling *prof.Session

// startProfiling runs before every command and enables the profilers named
// by the persistent flags.
func startProfiling(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()
	var paths prof.Paths
	var err error
	if paths.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if paths.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if paths.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if paths == (prof.Paths{}) {
		return nil
	}
	if profiling, err = prof.Start(paths); err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	return nil
}

func stopProfiling() error {
	return profiling.Stop()
}
