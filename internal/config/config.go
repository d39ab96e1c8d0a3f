// Package config loads dialang.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"dialang/internal/token"
)

// FileName is the name looked up by Find.
const FileName = "dialang.toml"

// Config is the decoded dialang.toml. Absent keys keep their defaults.
type Config struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Parser      ParserConfig      `toml:"parser"`
	Diagram     DiagramConfig     `toml:"diagram"`
}

type DiagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"` // auto, on, off
}

type ParserConfig struct {
	// SyncTerminators is nil when the key is absent, which selects the
	// parser default. An empty list disables terminators.
	SyncTerminators  []string `toml:"sync_terminators"`
	SyncStarters     []string `toml:"sync_starters"`
	KeepPlaceholders bool     `toml:"keep_placeholders"`
}

type DiagramConfig struct {
	Output string `toml:"output"`
}

// Default returns the settings used without a config file.
func Default() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{Max: 100, Color: "auto"},
		Diagram:     DiagramConfig{Output: "output.drawio"},
	}
}

// Find walks up from startDir to locate dialang.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults and validates it.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if !meta.IsDefined("parser", "sync_terminators") {
		cfg.Parser.SyncTerminators = nil
	} else if cfg.Parser.SyncTerminators == nil {
		cfg.Parser.SyncTerminators = []string{}
	}
	if cfg.Diagnostics.Max < 0 {
		return Config{}, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	switch cfg.Diagnostics.Color {
	case "auto", "on", "off":
	default:
		return Config{}, fmt.Errorf("%s: [diagnostics].color must be auto, on or off, got %q", path, cfg.Diagnostics.Color)
	}
	if strings.TrimSpace(cfg.Diagram.Output) == "" {
		return Config{}, fmt.Errorf("%s: [diagram].output must not be empty", path)
	}
	if _, err := cfg.Parser.Terminators(); err != nil {
		return Config{}, fmt.Errorf("%s: [parser].sync_terminators: %w", path, err)
	}
	if _, err := cfg.Parser.Starters(); err != nil {
		return Config{}, fmt.Errorf("%s: [parser].sync_starters: %w", path, err)
	}
	return cfg, nil
}

// Discover finds and loads dialang.toml above startDir. Without a file
// it returns the defaults and an empty path.
func Discover(startDir string) (Config, string, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Terminators maps the configured spellings to token kinds, keeping nil
// for an absent key.
func (p ParserConfig) Terminators() ([]token.Kind, error) {
	return spellingsToKinds(p.SyncTerminators)
}

// Starters maps the configured spellings to token kinds.
func (p ParserConfig) Starters() ([]token.Kind, error) {
	return spellingsToKinds(p.SyncStarters)
}

func spellingsToKinds(spellings []string) ([]token.Kind, error) {
	if spellings == nil {
		return nil, nil
	}
	kinds := make([]token.Kind, 0, len(spellings))
	for _, s := range spellings {
		k, ok := token.LookupSpelling(s)
		if !ok {
			return nil, fmt.Errorf("unknown token %q", s)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
