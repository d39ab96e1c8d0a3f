package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dialang/internal/diag"
	"dialang/internal/source"
)

func TestBuildDiagnosticsOutputPositionsAndNotes(t *testing.T) {
	bag, fs := sampleBag(t)

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true})

	want := DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "ERROR",
			Code:     "LEX1001",
			Message:  "Unknown (non-ASCII) character",
			Location: LocationJSON{
				File: "test.cls", StartByte: 12, EndByte: 13,
				StartLine: 2, StartCol: 3, EndLine: 2, EndCol: 4,
			},
			Notes: []NoteJSON{{
				Message: "while parsing class declaration",
				Location: LocationJSON{
					File: "test.cls", StartByte: 0, EndByte: 5,
					StartLine: 1, StartCol: 1, EndLine: 1, EndCol: 6,
				},
			}},
		}},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildDiagnosticsOutputMax(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("many.cls", []byte("€€€"))
	bag := diag.NewBag(0)
	for i := 0; i < 3; i++ {
		start := uint32(i * 3) // #nosec G115 -- small test offsets
		bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: id, Start: start, End: start + 3}, "Unknown (non-ASCII) character"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got count=%d len=%d", out.Count, len(out.Diagnostics))
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Fatalf("positions must be omitted unless requested")
	}
	if out.Diagnostics[0].Notes != nil {
		t.Fatalf("notes must be omitted unless requested")
	}
}

func TestJSONEncodes(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if decoded.Count != 1 || decoded.Diagnostics[0].Code != "LEX1001" {
		t.Fatalf("unexpected document: %+v", decoded)
	}
}
