package diag

import (
	"testing"

	"tern/internal/source"
)

func TestBagLimitAndSeverity(t *testing.T) {
	bag := NewBag(2)

	if !bag.Add(New(SevWarning, DefDuplicateField, source.Span{}, "first")) {
		t.Fatal("first Add refused")
	}
	if !bag.Add(NewError(SemaUnknownRecordField, source.Span{}, "second")) {
		t.Fatal("second Add refused")
	}
	if bag.Add(NewError(SemaUnknownRecordField, source.Span{}, "third")) {
		t.Error("Add beyond capacity accepted")
	}
	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bag.Len())
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Error("severity queries missed collected diagnostics")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	spanLate := source.Span{File: 0, Start: 20, End: 22}
	spanEarly := source.Span{File: 0, Start: 3, End: 5}

	bag.Add(NewError(SemaUnknownRecordField, spanLate, "late"))
	bag.Add(NewError(SemaUnknownRecordField, spanEarly, "early"))
	bag.Add(NewError(SemaUnknownRecordField, spanEarly, "early again"))

	bag.Sort()
	bag.Dedup()

	items := bag.Items()
	if len(items) != 2 {
		t.Fatalf("after Dedup len = %d, want 2", len(items))
	}
	if items[0].Message != "early" {
		t.Errorf("first diagnostic = %q, want %q", items[0].Message, "early")
	}
	if items[1].Message != "late" {
		t.Errorf("second diagnostic = %q, want %q", items[1].Message, "late")
	}
}

func TestBagMergeGrowsCapacity(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(SemaUnknownRecordField, source.Span{}, "a"))
	b := NewBag(1)
	b.Add(NewError(SemaUnknownRecordField, source.Span{Start: 1, End: 2}, "b"))

	a.Merge(b)
	if a.Len() != 2 {
		t.Errorf("merged Len() = %d, want 2", a.Len())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}

	builder := ReportError(r, SemaUnknownRecordField, source.Span{Start: 1, End: 4}, "Unknown record field").
		WithNote(source.Span{Start: 1, End: 4}, "some context").
		WithFix("Did you mean `a`?", FixEdit{Span: source.Span{Start: 1, End: 4}, NewText: "a", OldText: "b"})
	builder.Emit()
	builder.Emit()

	if bag.Len() != 1 {
		t.Fatalf("emit count = %d, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 {
		t.Errorf("notes/fixes = %d/%d, want 1/1", len(d.Notes), len(d.Fixes))
	}
	if d.Fixes[0].Title != "Did you mean `a`?" {
		t.Errorf("fix title = %q", d.Fixes[0].Title)
	}
}
