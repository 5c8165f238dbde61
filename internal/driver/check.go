// Package driver orchestrates checking: it turns a parsed check manifest
// into interned type definitions, validates the preconditions the resolver
// relies on, and runs every declared field access through the checker.
package driver

import (
	"fmt"
	"path/filepath"

	"tern/internal/diag"
	"tern/internal/project"
	"tern/internal/sema"
	"tern/internal/source"
	"tern/internal/types"
)

// Options tunes a single manifest check.
type Options struct {
	// MaxDiagnostics caps the bag; zero means the default of 100.
	MaxDiagnostics int
	// BaseDir is used when rendering relative paths.
	BaseDir string
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

// AccessResult pairs an access declaration with its resolved type.
// Type is NoTypeID when resolution failed and a diagnostic was emitted.
type AccessResult struct {
	Decl project.AccessDecl
	Type types.TypeID
}

// Result is everything one manifest check produced.
type Result struct {
	Path     string
	FileID   source.FileID
	FileSet  *source.FileSet
	Bag      *diag.Bag
	Checker  *sema.Checker
	Declared map[string]types.TypeID
	Accesses []AccessResult
}

// CheckManifest runs the full pipeline for one manifest: install the source
// excerpt, declare and resolve custom types, then resolve every access.
// Definition problems surface as DEF diagnostics, failed accesses as
// SEM3001; both leave the checker running so one mistake does not hide the
// rest.
func CheckManifest(man project.Manifest, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	if opts.BaseDir != "" {
		fs.SetBaseDir(opts.BaseDir)
	}

	fileID, err := installExcerpt(fs, man.Module, path)
	if err != nil {
		return nil, err
	}

	bag := diag.NewBag(opts.maxDiagnostics())
	reporter := diag.BagReporter{Bag: bag}
	in := types.NewInterner(source.NewInterner())

	declared := declareTypes(in, man.Types, fileID, reporter)
	resolveVariants(in, man.Types, declared, fileID, reporter)

	checker := sema.NewChecker(in, reporter)
	result := &Result{
		Path:     path,
		FileID:   fileID,
		FileSet:  fs,
		Bag:      bag,
		Checker:  checker,
		Declared: declared,
	}

	excerptLen := uint32(len(fs.Get(fileID).Content))
	for _, access := range man.Accesses {
		result.Accesses = append(result.Accesses, checkAccess(checker, access, declared, fileID, excerptLen, reporter))
	}

	bag.Sort()
	return result, nil
}

func installExcerpt(fs *source.FileSet, module project.ModuleSection, path string) (source.FileID, error) {
	if module.SourceFile != "" {
		full := filepath.Join(filepath.Dir(path), module.SourceFile)
		id, err := fs.Load(full)
		if err != nil {
			return 0, fmt.Errorf("loading source excerpt: %w", err)
		}
		return id, nil
	}
	return fs.AddVirtual(path, []byte(module.Source)), nil
}

// declareTypes registers every custom type name first, so field types may
// reference any declared type regardless of order, including their own.
func declareTypes(in *types.Interner, decls []project.TypeDecl, fileID source.FileID, reporter diag.Reporter) map[string]types.TypeID {
	declared := make(map[string]types.TypeID, len(decls))
	declSpan := source.Span{File: fileID}
	for _, decl := range decls {
		if _, dup := declared[decl.Name]; dup {
			diag.ReportError(reporter, diag.DefDuplicateType, declSpan,
				fmt.Sprintf("type `%s` is declared more than once", decl.Name)).Emit()
			continue
		}
		declared[decl.Name] = in.RegisterCustom(in.Strings.Intern(decl.Name), declSpan)
	}
	return declared
}

func resolveVariants(in *types.Interner, decls []project.TypeDecl, declared map[string]types.TypeID, fileID source.FileID, reporter diag.Reporter) {
	declSpan := source.Span{File: fileID}
	resolved := make(map[string]bool, len(decls))
	for _, decl := range decls {
		typeID, ok := declared[decl.Name]
		if !ok || resolved[decl.Name] {
			continue
		}
		resolved[decl.Name] = true

		if len(decl.Variants) == 0 {
			diag.ReportError(reporter, diag.DefEmptyCustomType, declSpan,
				fmt.Sprintf("type `%s` has no variants", decl.Name)).Emit()
			continue
		}

		variants := make([]types.VariantInfo, 0, len(decl.Variants))
		seenVariants := make(map[string]bool, len(decl.Variants))
		for _, variant := range decl.Variants {
			if seenVariants[variant.Name] {
				diag.ReportError(reporter, diag.DefDuplicateVariant, declSpan,
					fmt.Sprintf("type `%s` declares variant `%s` more than once", decl.Name, variant.Name)).Emit()
				continue
			}
			seenVariants[variant.Name] = true
			variants = append(variants, resolveFields(in, decl.Name, variant, declared, declSpan, reporter))
		}
		in.SetVariants(typeID, variants)
	}
}

func resolveFields(in *types.Interner, typeName string, variant project.VariantDecl, declared map[string]types.TypeID, declSpan source.Span, reporter diag.Reporter) types.VariantInfo {
	info := types.VariantInfo{Name: in.Strings.Intern(variant.Name)}
	seenNames := make(map[string]bool, len(variant.Fields))
	seenPositions := make(map[uint32]bool, len(variant.Fields))
	for i, field := range variant.Fields {
		if seenNames[field.Name] {
			diag.ReportError(reporter, diag.DefDuplicateField, declSpan,
				fmt.Sprintf("variant `%s` of type `%s` declares field `%s` more than once", variant.Name, typeName, field.Name)).Emit()
			continue
		}
		seenNames[field.Name] = true

		position := field.FieldPosition(i)
		if seenPositions[position] {
			diag.ReportError(reporter, diag.DefDuplicatePosition, declSpan,
				fmt.Sprintf("variant `%s` of type `%s` places two fields at position %d", variant.Name, typeName, position)).Emit()
			continue
		}
		seenPositions[position] = true

		fieldType, ok := resolveTypeExpr(in, declared, field.Type)
		if !ok {
			diag.ReportError(reporter, diag.DefUnknownTypeName, declSpan,
				fmt.Sprintf("field `%s` of variant `%s` names unknown type `%s`", field.Name, variant.Name, field.Type)).Emit()
		}
		info.Fields = append(info.Fields, types.FieldInfo{
			Name:     in.Strings.Intern(field.Name),
			Position: position,
			Type:     fieldType,
		})
	}
	return info
}

func checkAccess(checker *sema.Checker, access project.AccessDecl, declared map[string]types.TypeID, fileID source.FileID, excerptLen uint32, reporter diag.Reporter) AccessResult {
	result := AccessResult{Decl: access, Type: types.NoTypeID}
	span := source.Span{File: fileID, Start: access.Start, End: access.End}

	receiver, ok := declared[access.Receiver]
	if !ok {
		diag.ReportError(reporter, diag.DefUnknownReceiver, source.Span{File: fileID},
			fmt.Sprintf("access of `.%s` names unknown receiver type `%s`", access.Field, access.Receiver)).Emit()
		return result
	}
	if access.Start > access.End || access.End > excerptLen {
		diag.ReportError(reporter, diag.DefSpanOutOfRange, source.Span{File: fileID},
			fmt.Sprintf("access of `.%s` has span %d..%d outside the %d-byte source excerpt", access.Field, access.Start, access.End, excerptLen)).Emit()
		return result
	}

	in := checker.Types()
	result.Type = checker.CheckFieldAccess(receiver, in.Strings.Intern(access.Field), span)
	return result
}
