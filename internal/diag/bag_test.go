package diag

import (
	"testing"

	"dialang/internal/source"
)

func TestBagLimitAndOrder(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	r.Report(SynExpected, SevError, source.Span{Start: 9, End: 10}, "second in source, first in time", nil)
	r.Report(LexUnknownChar, SevError, source.Span{Start: 1, End: 2}, "first in source", nil)
	r.Report(SynExpected, SevError, source.Span{Start: 20, End: 21}, "dropped", nil)

	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
	if bag.Items()[0].Primary.Start != 9 {
		t.Fatalf("bag must keep insertion order")
	}
	bag.Sort()
	if bag.Items()[0].Primary.Start != 1 {
		t.Fatalf("Sort must order by start")
	}
	if !bag.HasErrors() {
		t.Errorf("HasErrors = false")
	}
}

func TestBagUnlimited(t *testing.T) {
	bag := NewBag(0)
	for i := 0; i < 100; i++ {
		if !bag.Add(NewError(SynExpected, source.Span{}, "x")) {
			t.Fatalf("unlimited bag rejected item %d", i)
		}
	}
}

func TestMergeGrowsLimit(t *testing.T) {
	a, b := NewBag(1), NewBag(1)
	a.Add(NewError(SynExpected, source.Span{}, "a"))
	b.Add(NewError(SynExpected, source.Span{}, "b"))
	a.Merge(b)
	if a.Len() != 2 {
		t.Fatalf("Merge: len=%d", a.Len())
	}
	if a.Add(NewError(SynExpected, source.Span{}, "c")) {
		t.Fatalf("limit must grow to the merged length only")
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	counter := &CountingReporter{}
	b := ReportError(counter, SynExpected, source.Span{Start: 3, End: 4}, "expected class name").
		WithNote(source.Span{Start: 4, End: 9}, "skipped")
	b.Emit()
	b.Emit()
	if counter.Count(SevError) != 1 {
		t.Fatalf("Emit must report once, got %d", counter.Count(SevError))
	}
	if len(b.Diagnostic().Notes) != 1 {
		t.Fatalf("note lost")
	}
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	id := fs.Add("/workspace/testdata/a.cls", []byte("class {\n}\n"), 0)

	diags := []Diagnostic{
		NewError(SynExpected, source.Span{File: id, Start: 6, End: 7}, "expected class name").
			WithNote(source.Span{File: id, Start: 8, End: 9}, "skipped\nto here"),
		NewError(LexUnknownChar, source.Span{File: id, Start: 0, End: 1}, "Unknown (non-ASCII) character"),
	}

	want := "error SYN2001 testdata/a.cls:1:7 expected class name\n" +
		"note SYN2001 testdata/a.cls:2:1 skipped to here\n" +
		"error LEX1001 testdata/a.cls:1:1 Unknown (non-ASCII) character"
	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("unexpected output:\nwant:\n%s\ngot:\n%s", want, got)
	}
}
