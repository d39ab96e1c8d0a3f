package parser

import (
	"fmt"
	"strings"

	"dialang/internal/stream"
)

type FailureKind uint8

const (
	// FailBase is a concrete mismatch at a location.
	FailBase FailureKind = iota
	// FailStack is a failure annotated with context labels.
	FailStack
	// FailAlt collects the failures of every tried alternative.
	FailAlt
)

// Frame is one context label together with the stream the labelled rule
// was applied to.
type Frame struct {
	At    stream.Stream
	Label string
}

// Failure is the nested description of why a rule did not match.
//
// A soft failure lets enclosing optional, repetition and choice rules
// backtrack. Fatal is set by a commit point; such failures travel up to the
// nearest recovery point.
type Failure struct {
	Kind  FailureKind
	Fatal bool

	// FailBase
	At       stream.Stream
	Expected string

	// FailStack; Frames are ordered innermost first.
	Inner  *Failure
	Frames []Frame

	// FailAlt
	Alts []*Failure
}

func baseFailure(at stream.Stream, expected string) *Failure {
	return &Failure{Kind: FailBase, At: at, Expected: expected}
}

func altFailure(alts []*Failure) *Failure {
	f := &Failure{Kind: FailAlt, Alts: alts}
	for _, a := range alts {
		f.Fatal = f.Fatal || a.Fatal
	}
	return f
}

// withContext records that f happened while parsing label at at.
func (f *Failure) withContext(at stream.Stream, label string) *Failure {
	if f.Kind == FailStack {
		f.Frames = append(f.Frames, Frame{At: at, Label: label})
		return f
	}
	return &Failure{
		Kind:   FailStack,
		Fatal:  f.Fatal,
		Inner:  f,
		Frames: []Frame{{At: at, Label: label}},
	}
}

// commit turns f into a hard failure.
func (f *Failure) commit() *Failure {
	f.Fatal = true
	return f
}

// Innermost returns the label nearest to the mismatch, or "" when f carries
// no context.
func (f *Failure) Innermost() string {
	if f.Kind == FailStack && len(f.Frames) > 0 {
		return f.Frames[0].Label
	}
	return ""
}

func (f *Failure) Error() string {
	var sb strings.Builder
	f.write(&sb)
	return sb.String()
}

func (f *Failure) write(sb *strings.Builder) {
	switch f.Kind {
	case FailBase:
		fmt.Fprintf(sb, "expected %s at %d", f.Expected, f.At.Offset())
	case FailStack:
		for i, fr := range f.Frames {
			if i > 0 {
				sb.WriteString(" in ")
			}
			sb.WriteString(fr.Label)
		}
		sb.WriteString(": ")
		f.Inner.write(sb)
	case FailAlt:
		sb.WriteString("one of [")
		for i, a := range f.Alts {
			if i > 0 {
				sb.WriteString("; ")
			}
			a.write(sb)
		}
		sb.WriteString("]")
	}
}
