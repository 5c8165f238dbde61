package diag

import "tern/internal/source"

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// FixEdit is a single text replacement. OldText, when set, lets tooling
// verify the file still matches before applying the edit.
type FixEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Fix is a suggested correction: a short title plus concrete edits.
type Fix struct {
	Title string
	Edits []FixEdit
}

// Diagnostic is an immutable finding produced by a checking phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}
