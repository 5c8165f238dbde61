package diagfmt

import (
	"encoding/json"
	"io"

	"tern/internal/diag"
	"tern/internal/source"
)

// LocationJSON is a span in machine-readable form.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type FixEditJSON struct {
	Location LocationJSON `json:"location"`
	NewText  string       `json:"new_text"`
	OldText  string       `json:"old_text,omitempty"`
}

type FixJSON struct {
	Title string        `json:"title"`
	Edits []FixEditJSON `json:"edits,omitempty"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
	Fixes    []FixJSON    `json:"fixes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON document.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildDiagnosticsOutput converts the bag into the JSON document model
// without encoding it, so callers can aggregate several bags into one
// document.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) (DiagnosticsOutput, error) {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticJSON{}}
	if bag != nil && fs != nil {
		for _, d := range bag.Items() {
			if opts.Max > 0 && len(out.Diagnostics) >= opts.Max {
				break
			}
			out.Diagnostics = append(out.Diagnostics, diagnosticJSON(&d, fs, opts))
		}
	}
	out.Count = len(out.Diagnostics)
	return out, nil
}

// JSON writes the bag as an indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	out, err := BuildDiagnosticsOutput(bag, fs, opts)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func diagnosticJSON(d *diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticJSON {
	dj := DiagnosticJSON{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Message:  d.Message,
		Location: makeLocation(d.Primary, fs, opts),
	}
	if opts.IncludeNotes {
		for _, note := range d.Notes {
			dj.Notes = append(dj.Notes, NoteJSON{
				Message:  note.Msg,
				Location: makeLocation(note.Span, fs, opts),
			})
		}
	}
	if opts.IncludeFixes {
		for _, fix := range d.Fixes {
			fj := FixJSON{Title: fix.Title}
			for _, edit := range fix.Edits {
				fj.Edits = append(fj.Edits, FixEditJSON{
					Location: makeLocation(edit.Span, fs, opts),
					NewText:  edit.NewText,
					OldText:  edit.OldText,
				})
			}
			dj.Fixes = append(dj.Fixes, fj)
		}
	}
	return dj
}

func makeLocation(span source.Span, fs *source.FileSet, opts JSONOpts) LocationJSON {
	f := fs.Get(span.File)
	loc := LocationJSON{
		File:      f.FormatPath(opts.PathMode.formatMode(), fs.BaseDir()),
		StartByte: span.Start,
		EndByte:   span.End,
	}
	if opts.IncludePositions {
		start, end := fs.Resolve(span)
		loc.StartLine = start.Line
		loc.StartCol = start.Col
		loc.EndLine = end.Line
		loc.EndCol = end.Col
	}
	return loc
}
