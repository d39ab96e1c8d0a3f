package parser

import (
	"slices"

	"dialang/internal/diag"
	"dialang/internal/source"
	"dialang/internal/stream"
	"dialang/internal/token"
)

// Recovery is the outcome of resynchronizing after a failure.
type Recovery struct {
	Diagnostic diag.Diagnostic
	// Rest is where parsing resumes.
	Rest stream.Stream
}

// Recover turns a failure into a diagnostic and a resynchronized stream.
//
// A Stack failure recovers at its innermost frame. An Alt recovers through
// its first recoverable branch. A Base failure carries no context and is
// returned as the residue, as is an Alt whose branches are all Base.
func Recover(f *Failure, opts Options) (Recovery, *Failure) {
	switch f.Kind {
	case FailStack:
		inner := f.Frames[0]
		span, rest := synchronize(inner.At, opts)
		d := diag.NewError(diag.SynExpected, span, "expected "+inner.Label)
		for _, outer := range f.Frames[1:] {
			d = d.WithNote(frontSpan(outer.At), "while parsing "+outer.Label)
		}
		return Recovery{Diagnostic: d, Rest: rest}, nil
	case FailAlt:
		residue := make([]*Failure, 0, len(f.Alts))
		for _, alt := range f.Alts {
			rec, res := Recover(alt, opts)
			if res == nil {
				return rec, nil
			}
			residue = append(residue, res)
		}
		return Recovery{}, altFailure(residue)
	default:
		return Recovery{}, f
	}
}

// recoverUnexpected handles a residue that reached the statement list: the
// front token is reported as unexpected and skipped like any other failure.
func recoverUnexpected(residue *Failure, at stream.Stream, opts Options) Recovery {
	span, rest := synchronize(at, opts)
	msg := "unexpected token"
	if tok, ok := at.Front(); ok {
		msg = "unexpected " + describe(tok)
	}
	if exp := expectedSet(residue); len(exp) > 0 {
		msg += ", expected " + joinOr(exp)
	}
	return Recovery{Diagnostic: diag.NewError(diag.SynUnexpectedToken, span, msg), Rest: rest}
}

// synchronize skips from at to the next statement boundary. It returns the
// span to report: the first skipped token, or the stream's own span when at
// is already empty.
func synchronize(at stream.Stream, opts Options) (source.Span, stream.Stream) {
	if at.Empty() {
		return at.Span(), at
	}
	first, rest := at.Split(1)
	terms := opts.terminators()
	stop := rest.Position(func(t token.Token) bool {
		return slices.Contains(terms, t.Kind) || slices.Contains(opts.SyncStarters, t.Kind)
	})
	if stop < 0 {
		stop = rest.Len()
	}
	rest = rest.Skip(stop)
	if tok, ok := rest.Front(); ok && slices.Contains(terms, tok.Kind) {
		rest = rest.Skip(1)
	}
	return first.Span(), rest
}

func frontSpan(s stream.Stream) source.Span {
	return s.Take(1).Span()
}

func describe(tok token.Token) string {
	if tok.Kind == token.Ident {
		return "identifier '" + tok.Text + "'"
	}
	return "'" + tok.Text + "'"
}

func expectedSet(f *Failure) []string {
	var out []string
	var walk func(*Failure)
	walk = func(f *Failure) {
		switch f.Kind {
		case FailBase:
			if !slices.Contains(out, f.Expected) {
				out = append(out, f.Expected)
			}
		case FailStack:
			walk(f.Inner)
		case FailAlt:
			for _, a := range f.Alts {
				walk(a)
			}
		}
	}
	walk(f)
	return out
}

func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	out := items[0]
	for _, it := range items[1 : len(items)-1] {
		out += ", " + it
	}
	return out + " or " + items[len(items)-1]
}
