package diag

import (
	"testing"

	"tern/internal/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.AddVirtual("/workspace/fixtures/sample.toml", []byte("a\nb\n"))

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SemaUnknownRecordField,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     DefDuplicateField,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
	}

	expected := "error SEM3001 fixtures/sample.toml:1:1 first line second\n" +
		"note SEM3001 fixtures/sample.toml:2:1 note line\n" +
		"warning DEF1004 fixtures/sample.toml:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatGoldenDiagnosticsEmpty(t *testing.T) {
	fs := source.NewFileSet()
	if got := FormatGoldenDiagnostics(nil, fs, false); got != "" {
		t.Errorf("empty input produced %q", got)
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{SemaUnknownRecordField, "SEM3001"},
		{DefDuplicateField, "DEF1004"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
	if SemaUnknownRecordField.Title() != "Unknown record field" {
		t.Errorf("Title() = %q", SemaUnknownRecordField.Title())
	}
}
