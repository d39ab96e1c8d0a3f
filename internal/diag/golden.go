package diag

import (
	"fmt"
	"strings"

	"dialang/internal/source"
)

// FormatShort renders diagnostics one per line as
//
//	<severity> <CODE> <path>:<line>:<col> <message>
//
// keeping insertion order. Notes follow their diagnostic with severity "note"
// when includeNotes is set. Used by tests and the CLI short format.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	var lines []string
	for _, d := range diags {
		lines = append(lines, shortLine(d.Severity.Label(), d.Code, d.Primary, d.Message, fs))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			lines = append(lines, shortLine("note", d.Code, n.Span, n.Msg, fs))
		}
	}
	return strings.Join(lines, "\n")
}

func shortLine(sev string, code Code, sp source.Span, msg string, fs *source.FileSet) string {
	path := "?"
	var pos source.LineCol
	if int(sp.File) < fs.Len() {
		path = fs.Get(sp.File).FormatPath("relative", fs.BaseDir())
		pos, _ = fs.Resolve(sp)
	}
	return fmt.Sprintf("%s %s %s:%d:%d %s", sev, code.ID(), path, pos.Line, pos.Col, sanitizeMessage(msg))
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
