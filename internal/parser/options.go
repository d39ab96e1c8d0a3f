package parser

import (
	"dialang/internal/diag"
	"dialang/internal/source"
	"dialang/internal/token"
)

type Options struct {
	Reporter diag.Reporter
	// MaxErrors caps reported errors; 0 means unlimited. Parsing continues
	// past the cap.
	MaxErrors uint
	// SyncTerminators end a skipped region and are consumed with it.
	// nil selects the default (';'); an empty non-nil slice disables them.
	SyncTerminators []token.Kind
	// SyncStarters end a skipped region and are left for the next statement.
	SyncStarters []token.Kind
	// KeepPlaceholders keeps ErrorPlaceholder statements in the program.
	KeepPlaceholders bool
}

var defaultTerminators = []token.Kind{token.Semicolon}

func (o Options) terminators() []token.Kind {
	if o.SyncTerminators == nil {
		return defaultTerminators
	}
	return o.SyncTerminators
}

// limitReporter forwards to next until max errors were reported.
type limitReporter struct {
	next   diag.Reporter
	max    uint
	errors uint
}

func (r *limitReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if r.next == nil {
		return
	}
	if sev == diag.SevError {
		r.errors++
		if r.max != 0 && r.errors > r.max {
			return
		}
	}
	r.next.Report(code, sev, primary, msg, notes)
}
