// Package driver runs the lexer, parser and model adaptation over files
// and directories.
package driver

import (
	"fmt"

	"fortio.org/safecast"
	"go.uber.org/zap"

	"dialang/internal/observ"
	"dialang/internal/token"
)

// Options configures one driver run. The zero value parses with default
// recovery, unlimited diagnostics and no logging.
type Options struct {
	MaxDiagnostics   int
	SyncTerminators  []token.Kind
	SyncStarters     []token.Kind
	KeepPlaceholders bool

	Logger *zap.Logger
	Timer  *observ.Timer
	// Cache is consulted by Analyze only.
	Cache *DiskCache
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) maxErrors() uint {
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("max diagnostics overflow: %w", err))
	}
	return n
}

// phase runs fn as a named timer phase when a timer is configured.
func (o Options) phase(name string, fn func() string) {
	if o.Timer == nil {
		fn()
		return
	}
	o.Timer.Measure(name, fn)
}
