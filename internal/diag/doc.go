// Package diag defines the diagnostic model shared by every checking phase.
//
// Diagnostic is the central record: an immutable value carrying a severity,
// a stable code, a human message, the primary source span, optional notes
// (secondary spans with context), and optional fixes (structured text edits
// such as "did you mean" replacements). Producers build diagnostics with the
// chaining helpers in builder.go or through a Reporter, and collectors
// aggregate them into a Bag which supports sorting, deduplication, and
// merging across files.
//
// The package performs no formatting or IO. Rendering lives in
// internal/diagfmt; emission sites live in internal/sema and
// internal/project. Keep the data model deterministic so diagnostics can be
// compared in golden tests and serialised by tooling.
package diag
