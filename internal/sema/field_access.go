package sema

import (
	"strings"

	"tern/internal/diag"
	"tern/internal/source"
	"tern/internal/types"
)

// UnknownRecordField describes a failed field access: the receiver's type,
// the attempted name, which fields are accessible, and an optional "did you
// mean" candidate. It is an immutable value handed to rendering; the checker
// keeps going after producing one.
type UnknownRecordField struct {
	Span             source.Span
	ReceiverTypeName string
	Field            string
	AccessibleFields []string // declaration order
	Suggestion       string   // "" when no candidate met the threshold
	MultiVariant     bool
}

// ResolveFieldAccess looks the field up in the prebuilt accessor table. On
// a hit it returns the field's type. On a miss it returns NoTypeID plus an
// UnknownRecordField carrying everything the renderer needs. The variant
// definitions themselves are never consulted here: reconciliation cost was
// paid once when the table was built.
func ResolveFieldAccess(in *types.Interner, table *types.AccessorTable, receiver types.TypeID, field source.StringID, span source.Span) (types.TypeID, *UnknownRecordField) {
	if entry, ok := table.Lookup(field); ok {
		return entry.Type, nil
	}

	accessible := make([]string, 0, table.Len())
	for _, name := range table.Fields() {
		accessible = append(accessible, in.Strings.MustLookup(name))
	}

	fieldName := in.Strings.MustLookup(field)
	suggestion, _ := closestField(fieldName, accessible)

	return types.NoTypeID, &UnknownRecordField{
		Span:             span,
		ReceiverTypeName: types.Label(in, receiver),
		Field:            fieldName,
		AccessibleFields: accessible,
		Suggestion:       suggestion,
		MultiVariant:     in.VariantCount(receiver) > 1,
	}
}

// Stable diagnostic text. Renderers reproduce these strings verbatim; they
// are part of the tool's compatibility surface.
const (
	unknownRecordFieldMessage = "Unknown record field"

	receiverTypeHeader    = "The value being accessed has this type:"
	accessibleFieldHeader = "It has these accessible fields:"

	inconsistentFieldNote = "Note: The field you are trying to access is not defined consistently " +
		"across all variants of this custom type. To access it with `.` syntax it " +
		"must be defined in every variant, in the same position, with the same " +
		"type. Otherwise pattern match on the value to determine its variant first."
)

// Diagnostic converts the failure into the shared diagnostic model: the
// classification message, a replacement fix when a suggestion exists, a note
// restating the receiver type and its accessible fields, and the variant
// consistency note for multi-variant receivers.
func (e *UnknownRecordField) Diagnostic() diag.Diagnostic {
	d := diag.NewError(diag.SemaUnknownRecordField, e.Span, unknownRecordFieldMessage)
	if e.Suggestion != "" {
		d = d.WithFix(didYouMean(e.Suggestion), diag.FixEdit{
			Span:    e.Span,
			NewText: e.Suggestion,
			OldText: e.Field,
		})
	}
	d = d.WithNote(e.Span, e.fieldListing())
	if e.MultiVariant {
		d = d.WithNote(e.Span, inconsistentFieldNote)
	}
	return d
}

func didYouMean(name string) string {
	return "Did you mean `" + name + "`?"
}

func (e *UnknownRecordField) fieldListing() string {
	var b strings.Builder
	b.WriteString(receiverTypeHeader)
	b.WriteString("\n\n    ")
	b.WriteString(e.ReceiverTypeName)
	b.WriteString("\n\n")
	b.WriteString(accessibleFieldHeader)
	if len(e.AccessibleFields) > 0 {
		b.WriteString("\n")
		for _, field := range e.AccessibleFields {
			b.WriteString("\n    .")
			b.WriteString(field)
		}
	}
	return b.String()
}
