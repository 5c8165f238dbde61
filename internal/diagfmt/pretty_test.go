package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"tern/internal/diag"
	"tern/internal/source"
)

func unknownFieldFixture() (*diag.Bag, *source.FileSet) {
	fs := source.NewFileSet()
	excerpt := []byte("let x = 1\nlet y = wibble.b\n")
	file := fs.AddVirtual("fixtures/demo.toml", excerpt)

	span := source.Span{File: file, Start: 25, End: 26} // the `b`
	d := diag.NewError(diag.SemaUnknownRecordField, span, "Unknown record field").
		WithFix("Did you mean `a`?", diag.FixEdit{Span: span, NewText: "a", OldText: "b"}).
		WithNote(span, "The value being accessed has this type:\n\n    Wibble\n\nIt has these accessible fields:\n\n    .a").
		WithNote(span, "Note: The field you are trying to access is not defined consistently across all variants of this custom type.")

	bag := diag.NewBag(5)
	bag.Add(d)
	return bag, fs
}

func TestPrettyUnknownRecordField(t *testing.T) {
	bag, fs := unknownFieldFixture()

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowFixes: true})
	out := buf.String()

	wantFragments := []string{
		"fixtures/demo.toml:2:16: ERROR SEM3001: Unknown record field",
		"let y = wibble.b",
		"^ Did you mean `a`?",
		"The value being accessed has this type:",
		"    Wibble",
		"It has these accessible fields:",
		"    .a",
		"not defined consistently across all variants",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(out, frag) {
			t.Errorf("pretty output missing %q:\n%s", frag, out)
		}
	}
}

func TestPrettyCaretAlignment(t *testing.T) {
	bag, fs := unknownFieldFixture()

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowFixes: true})

	var caretLine string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "^") {
			caretLine = line
			break
		}
	}
	if caretLine == "" {
		t.Fatal("no caret line in pretty output")
	}
	// "let y = wibble." is 15 cells; plus the 4-space gutter the caret
	// should sit in column 20.
	if idx := strings.IndexByte(caretLine, '^'); idx != 19 {
		t.Errorf("caret at byte %d, want 19:\n%q", idx, caretLine)
	}
}

func TestPrettyWithoutNotes(t *testing.T) {
	bag, fs := unknownFieldFixture()

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	out := buf.String()

	if strings.Contains(out, "accessible fields") {
		t.Errorf("notes rendered although ShowNotes is off:\n%s", out)
	}
	if strings.Contains(out, "Did you mean") {
		t.Errorf("fix annotation rendered although ShowFixes is off:\n%s", out)
	}
}

func TestShort(t *testing.T) {
	bag, fs := unknownFieldFixture()

	var buf bytes.Buffer
	Short(&buf, bag, fs, false)
	got := strings.TrimRight(buf.String(), "\n")

	want := "error SEM3001 fixtures/demo.toml:2:16 Unknown record field"
	if got != want {
		t.Errorf("Short() = %q, want %q", got, want)
	}
}
