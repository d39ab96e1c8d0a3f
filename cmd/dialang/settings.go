package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dialang/internal/config"
	"dialang/internal/diagfmt"
	"dialang/internal/driver"
	"dialang/internal/observ"
)

// settings merges dialang.toml with the persistent flags; flags win when set.
type settings struct {
	cfg        config.Config
	configPath string

	maxDiagnostics int
	color          string
	quiet          bool
	timings        bool

	logger *zap.Logger
	timer  *observ.Timer
	cache  *driver.DiskCache
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, configPath, err = config.Discover(".")
	}
	if err != nil {
		return nil, err
	}

	s := &settings{
		cfg:            cfg,
		configPath:     configPath,
		maxDiagnostics: cfg.Diagnostics.Max,
		color:          cfg.Diagnostics.Color,
	}
	if flags.Changed("max-diagnostics") {
		if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if s.maxDiagnostics < 0 {
		return nil, fmt.Errorf("--max-diagnostics must not be negative")
	}
	if flags.Changed("color") {
		if s.color, err = flags.GetString("color"); err != nil {
			return nil, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	switch s.color {
	case "auto", "on", "off":
	default:
		return nil, fmt.Errorf("invalid --color %q (must be auto, on or off)", s.color)
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if s.timings {
		s.timer = observ.NewTimer()
	}

	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	s.logger = zap.NewNop()
	if verbose {
		if s.logger, err = zap.NewDevelopment(); err != nil {
			return nil, fmt.Errorf("failed to build logger: %w", err)
		}
	}
	if configPath != "" {
		s.logger.Debug("config loaded", zap.String("path", configPath))
	}

	useCache, err := flags.GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if useCache {
		if s.cache, err = driver.OpenDiskCache("dialang"); err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
	}
	return s, nil
}

func (s *settings) driverOptions() (driver.Options, error) {
	terms, err := s.cfg.Parser.Terminators()
	if err != nil {
		return driver.Options{}, err
	}
	starters, err := s.cfg.Parser.Starters()
	if err != nil {
		return driver.Options{}, err
	}
	return driver.Options{
		MaxDiagnostics:   s.maxDiagnostics,
		SyncTerminators:  terms,
		SyncStarters:     starters,
		KeepPlaceholders: s.cfg.Parser.KeepPlaceholders,
		Logger:           s.logger,
		Timer:            s.timer,
		Cache:            s.cache,
	}, nil
}

func (s *settings) useColor(f *os.File) bool {
	return s.color == "on" || (s.color == "auto" && isTerminal(f))
}

func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.useColor(os.Stderr),
		Context:   2,
		ShowNotes: true,
	}
}

// finish flushes the logger and prints phase timings to stderr.
func (s *settings) finish(start time.Time) {
	if s.timer != nil {
		fmt.Fprint(os.Stderr, s.timer.Summary())
		fmt.Fprintf(os.Stderr, "wall %.1f ms\n", toMillis(time.Since(start)))
		s.logger.Debug("timings", s.timer.Field())
	}
	_ = s.logger.Sync()
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
