// Package project loads check manifests: TOML files that stand in for the
// upstream inference driver by carrying fully resolved custom-type
// definitions, an optional source excerpt, and the field accesses to check.
package project

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrModuleSectionMissing indicates that [module] is missing.
	ErrModuleSectionMissing = errors.New("missing [module]")
	// ErrModuleNameMissing indicates that [module].name is missing or empty.
	ErrModuleNameMissing = errors.New("missing [module].name")
	// ErrSourceConflict indicates both inline source and source_file were given.
	ErrSourceConflict = errors.New("[module].source and [module].source_file are mutually exclusive")
)

// Manifest is one parsed check manifest.
type Manifest struct {
	Module   ModuleSection `toml:"module"`
	Types    []TypeDecl    `toml:"types"`
	Accesses []AccessDecl  `toml:"accesses"`
}

// ModuleSection names the module and provides the source excerpt spans
// refer to, either inline or as a file path relative to the manifest.
type ModuleSection struct {
	Name       string `toml:"name"`
	Source     string `toml:"source"`
	SourceFile string `toml:"source_file"`
}

// TypeDecl declares one custom type with its ordered variants.
type TypeDecl struct {
	Name     string        `toml:"name"`
	Variants []VariantDecl `toml:"variants"`
}

// VariantDecl declares one constructor.
type VariantDecl struct {
	Name   string      `toml:"name"`
	Fields []FieldDecl `toml:"fields"`
}

// FieldDecl declares one labelled constructor argument. Position defaults
// to the field's index in the list when omitted.
type FieldDecl struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"`
	Position *int   `toml:"position"`
}

// AccessDecl is one `value.field` expression to resolve. Start/End are byte
// offsets into the source excerpt.
type AccessDecl struct {
	Receiver string `toml:"receiver"`
	Field    string `toml:"field"`
	Start    uint32 `toml:"start"`
	End      uint32 `toml:"end"`
}

// Load reads and decodes a manifest from disk.
func Load(path string) (Manifest, error) {
	// #nosec G304 -- path comes from the CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	return Parse(path, data)
}

// Parse decodes manifest content. Identifier fields are NFC-normalized so
// composed and decomposed spellings of the same name compare equal once
// interned.
func Parse(path string, data []byte) (Manifest, error) {
	var m Manifest
	meta, err := toml.Decode(string(data), &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("module") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrModuleSectionMissing)
	}
	if m.Module.Name == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrModuleNameMissing)
	}
	if m.Module.Source != "" && m.Module.SourceFile != "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrSourceConflict)
	}
	normalizeIdentifiers(&m)
	return m, nil
}

func normalizeIdentifiers(m *Manifest) {
	m.Module.Name = norm.NFC.String(m.Module.Name)
	for ti := range m.Types {
		t := &m.Types[ti]
		t.Name = norm.NFC.String(t.Name)
		for vi := range t.Variants {
			v := &t.Variants[vi]
			v.Name = norm.NFC.String(v.Name)
			for fi := range v.Fields {
				f := &v.Fields[fi]
				f.Name = norm.NFC.String(f.Name)
				f.Type = norm.NFC.String(f.Type)
			}
		}
	}
	for ai := range m.Accesses {
		a := &m.Accesses[ai]
		a.Receiver = norm.NFC.String(a.Receiver)
		a.Field = norm.NFC.String(a.Field)
	}
}

// FieldPosition returns the declared position, falling back to the field's
// index within its variant.
func (f FieldDecl) FieldPosition(index int) uint32 {
	if f.Position != nil && *f.Position >= 0 {
		return uint32(*f.Position)
	}
	return uint32(index)
}
