package sema

import (
	"strings"
	"testing"

	"tern/internal/diag"
	"tern/internal/source"
	"tern/internal/types"
)

// wibbleFixture registers the two-variant type from the checker's reference
// scenario: Wibble(a: Int, b: Int) | Wobble(a: Int, c: String).
func wibbleFixture(in *types.Interner) types.TypeID {
	b := in.Builtins()
	id := in.RegisterCustom(in.Strings.Intern("Wibble"), source.Span{})
	in.SetVariants(id, []types.VariantInfo{
		{
			Name: in.Strings.Intern("Wibble"),
			Fields: []types.FieldInfo{
				{Name: in.Strings.Intern("a"), Position: 0, Type: b.Int},
				{Name: in.Strings.Intern("b"), Position: 1, Type: b.Int},
			},
		},
		{
			Name: in.Strings.Intern("Wobble"),
			Fields: []types.FieldInfo{
				{Name: in.Strings.Intern("a"), Position: 0, Type: b.Int},
				{Name: in.Strings.Intern("c"), Position: 1, Type: b.String},
			},
		},
	})
	return id
}

func TestResolveSharedFieldSucceeds(t *testing.T) {
	in := types.NewInterner(nil)
	wibble := wibbleFixture(in)
	table := in.BuildAccessorTable(wibble)

	got, failure := ResolveFieldAccess(in, table, wibble, in.Strings.Intern("a"), source.Span{Start: 4, End: 5})
	if failure != nil {
		t.Fatalf("resolving .a failed: %+v", failure)
	}
	if got != in.Builtins().Int {
		t.Errorf(".a resolved to %d, want Int (%d)", got, in.Builtins().Int)
	}
}

func TestResolveMissingFieldFails(t *testing.T) {
	in := types.NewInterner(nil)
	wibble := wibbleFixture(in)
	table := in.BuildAccessorTable(wibble)
	span := source.Span{Start: 10, End: 11}

	got, failure := ResolveFieldAccess(in, table, wibble, in.Strings.Intern("b"), span)
	if got != types.NoTypeID {
		t.Errorf("failed access returned type %d, want NoTypeID", got)
	}
	if failure == nil {
		t.Fatal("resolving .b on a multi-variant type succeeded")
	}
	if failure.Span != span {
		t.Errorf("failure span = %v, want %v", failure.Span, span)
	}
	if failure.ReceiverTypeName != "Wibble" {
		t.Errorf("receiver type = %q, want %q", failure.ReceiverTypeName, "Wibble")
	}
	if failure.Field != "b" {
		t.Errorf("attempted field = %q, want %q", failure.Field, "b")
	}
	if len(failure.AccessibleFields) != 1 || failure.AccessibleFields[0] != "a" {
		t.Errorf("accessible fields = %v, want [a]", failure.AccessibleFields)
	}
	if failure.Suggestion != "a" {
		t.Errorf("suggestion = %q, want %q", failure.Suggestion, "a")
	}
	if !failure.MultiVariant {
		t.Error("multi-variant flag not set for a two-variant receiver")
	}
}

func TestResolveEmptyTableNoSuggestion(t *testing.T) {
	in := types.NewInterner(nil)
	b := in.Builtins()
	id := in.RegisterCustom(in.Strings.Intern("Either"), source.Span{})
	in.SetVariants(id, []types.VariantInfo{
		{Name: in.Strings.Intern("A"), Fields: []types.FieldInfo{{Name: in.Strings.Intern("x"), Position: 0, Type: b.Int}}},
		{Name: in.Strings.Intern("B"), Fields: []types.FieldInfo{{Name: in.Strings.Intern("y"), Position: 0, Type: b.Int}}},
	})
	table := in.BuildAccessorTable(id)

	_, failure := ResolveFieldAccess(in, table, id, in.Strings.Intern("x"), source.Span{})
	if failure == nil {
		t.Fatal("access on empty accessor table succeeded")
	}
	if len(failure.AccessibleFields) != 0 {
		t.Errorf("accessible fields = %v, want none", failure.AccessibleFields)
	}
	if failure.Suggestion != "" {
		t.Errorf("suggestion = %q, want none", failure.Suggestion)
	}
}

func TestUnknownRecordFieldDiagnostic(t *testing.T) {
	in := types.NewInterner(nil)
	wibble := wibbleFixture(in)
	table := in.BuildAccessorTable(wibble)
	span := source.Span{Start: 10, End: 11}

	_, failure := ResolveFieldAccess(in, table, wibble, in.Strings.Intern("b"), span)
	d := failure.Diagnostic()

	if d.Message != "Unknown record field" {
		t.Errorf("message = %q", d.Message)
	}
	if d.Code != diag.SemaUnknownRecordField || d.Severity != diag.SevError {
		t.Errorf("code/severity = %v/%v", d.Code, d.Severity)
	}
	if len(d.Fixes) != 1 {
		t.Fatalf("fixes = %d, want 1", len(d.Fixes))
	}
	if d.Fixes[0].Title != "Did you mean `a`?" {
		t.Errorf("fix title = %q", d.Fixes[0].Title)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.Span != span || edit.NewText != "a" || edit.OldText != "b" {
		t.Errorf("fix edit = %+v", edit)
	}

	if len(d.Notes) != 2 {
		t.Fatalf("notes = %d, want field listing plus variant note", len(d.Notes))
	}
	wantListing := "The value being accessed has this type:\n\n    Wibble\n\n" +
		"It has these accessible fields:\n\n    .a"
	if d.Notes[0].Msg != wantListing {
		t.Errorf("field listing note:\ngot:\n%s\nwant:\n%s", d.Notes[0].Msg, wantListing)
	}
	if !strings.Contains(d.Notes[1].Msg, "not defined consistently") {
		t.Errorf("variant note = %q", d.Notes[1].Msg)
	}
	if !strings.Contains(d.Notes[1].Msg, "pattern match") {
		t.Errorf("variant note = %q", d.Notes[1].Msg)
	}
}

func TestSingleVariantDiagnosticHasNoVariantNote(t *testing.T) {
	in := types.NewInterner(nil)
	b := in.Builtins()
	id := in.RegisterCustom(in.Strings.Intern("Point"), source.Span{})
	in.SetVariants(id, []types.VariantInfo{
		{Name: in.Strings.Intern("Point"), Fields: []types.FieldInfo{
			{Name: in.Strings.Intern("x"), Position: 0, Type: b.Float},
			{Name: in.Strings.Intern("y"), Position: 1, Type: b.Float},
		}},
	})
	table := in.BuildAccessorTable(id)

	_, failure := ResolveFieldAccess(in, table, id, in.Strings.Intern("z"), source.Span{})
	if failure == nil {
		t.Fatal(".z resolved on Point")
	}
	if failure.MultiVariant {
		t.Error("multi-variant flag set for a single-variant receiver")
	}
	d := failure.Diagnostic()
	if len(d.Notes) != 1 {
		t.Errorf("notes = %d, want field listing only", len(d.Notes))
	}
}
