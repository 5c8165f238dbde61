package project

import (
	"errors"
	"testing"
)

const wibbleManifest = `
[module]
name = "demo"
source = "let y = wibble.b\n"

[[types]]
name = "Wibble"

  [[types.variants]]
  name = "Wibble"
  fields = [
    { name = "a", type = "Int" },
    { name = "b", type = "Int" },
  ]

  [[types.variants]]
  name = "Wobble"
  fields = [
    { name = "a", type = "Int" },
    { name = "c", type = "String", position = 1 },
  ]

[[accesses]]
receiver = "Wibble"
field = "b"
start = 15
end = 16
`

func TestParseManifest(t *testing.T) {
	m, err := Parse("demo.toml", []byte(wibbleManifest))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if m.Module.Name != "demo" {
		t.Errorf("module name = %q", m.Module.Name)
	}
	if len(m.Types) != 1 || len(m.Types[0].Variants) != 2 {
		t.Fatalf("types = %+v", m.Types)
	}

	wobble := m.Types[0].Variants[1]
	if wobble.Fields[1].Name != "c" || wobble.Fields[1].Type != "String" {
		t.Errorf("wobble fields = %+v", wobble.Fields)
	}
	if got := wobble.Fields[1].FieldPosition(1); got != 1 {
		t.Errorf("explicit position = %d, want 1", got)
	}
	if got := wobble.Fields[0].FieldPosition(0); got != 0 {
		t.Errorf("defaulted position = %d, want 0", got)
	}

	if len(m.Accesses) != 1 {
		t.Fatalf("accesses = %+v", m.Accesses)
	}
	a := m.Accesses[0]
	if a.Receiver != "Wibble" || a.Field != "b" || a.Start != 15 || a.End != 16 {
		t.Errorf("access = %+v", a)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "missing module section",
			content: `[[types]]` + "\n" + `name = "T"`,
			wantErr: ErrModuleSectionMissing,
		},
		{
			name:    "missing module name",
			content: "[module]\nsource = \"x\"",
			wantErr: ErrModuleNameMissing,
		},
		{
			name:    "conflicting sources",
			content: "[module]\nname = \"demo\"\nsource = \"x\"\nsource_file = \"y.tn\"",
			wantErr: ErrSourceConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.toml", []byte(tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Parse("syntax.toml", []byte("not [valid toml")); err == nil {
		t.Error("TOML syntax error not surfaced")
	}
}

func TestParseNormalizesIdentifiers(t *testing.T) {
	// "é" spelled as 'e' + combining acute must intern identically to the
	// composed form.
	decomposed := "[module]\nname = \"demo\"\n\n[[types]]\nname = \"Cafe\\u0301\"\n"
	m, err := Parse("nfc.toml", []byte(decomposed))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if m.Types[0].Name != "Café" {
		t.Errorf("type name = %q, want composed %q", m.Types[0].Name, "Café")
	}
}
