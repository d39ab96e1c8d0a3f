package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"dialang/internal/diag"
	"dialang/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	mark, note      *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		mark:   color.New(color.FgRed),
		note:   color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.mark, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty renders diagnostics for a terminal, in bag order:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	   2 | class { }
//	     |       ^
//
// followed by notes when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeDiagnostic(w, d, fs, opts, p)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f, fs, opts.PathMode), start.Line, start.Col,
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message,
	)
	writeExcerpt(w, f, fs, d.Primary, int(opts.Context), p, p.severity(d.Severity))

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := fs.Get(n.Span.File)
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

// writeExcerpt prints the primary line, context lines above it, and an
// underline below the span. Multi-line spans are underlined to the end of
// their first line.
func writeExcerpt(w io.Writer, f *source.File, fs *source.FileSet, span source.Span, context int, p palette, mark *color.Color) {
	start, end := fs.Resolve(span)
	first := max(1, int(start.Line)-max(context, 0))
	width := len(strconv.Itoa(int(start.Line)))

	for ln := first; ln <= int(start.Line); ln++ {
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, ln), f.GetLine(uint32(ln))) // #nosec G115 -- ln <= start.Line
	}

	line := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	pad := padTo(line[:col])
	under := max(runewidth.StringWidth(line[col:max(col, stop)]), 1)
	fmt.Fprintf(w, "%s %s%s\n",
		p.gutter.Sprintf("%*s |", width, ""),
		pad,
		mark.Sprint("^"+strings.Repeat("~", under-1)),
	)
}

// padTo returns whitespace with the display width of prefix. Tabs are kept
// so the marker lines up with the source line.
func padTo(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
