package diag

import (
	"fmt"
	"sort"
	"strings"

	"tern/internal/source"
)

type goldenLine struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatGoldenDiagnostics renders diagnostics one per line in a stable
// order, suitable for golden files and short CLI output. Notes are folded
// in after their parent diagnostic when includeNotes is set.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenLine, 0, len(diags))
	for i := range diags {
		rendered = appendGolden(rendered, &diags[i], fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		gi, gj := rendered[i], rendered[j]
		if gi.Path != gj.Path {
			return gi.Path < gj.Path
		}
		if gi.Line != gj.Line {
			return gi.Line < gj.Line
		}
		if gi.Column != gj.Column {
			return gi.Column < gj.Column
		}
		if gi.Severity != gj.Severity {
			return gi.Severity < gj.Severity
		}
		if gi.Code != gj.Code {
			return gi.Code < gj.Code
		}
		return gi.Message < gj.Message
	})

	var b strings.Builder
	for i, g := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", g.Severity, g.Code, g.Path, g.Line, g.Column, g.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendGolden(out []goldenLine, d *Diagnostic, fs *source.FileSet, includeNotes bool) []goldenLine {
	path, pos := resolveGoldenSpan(fs, d.Primary)
	out = append(out, goldenLine{
		Severity: severityLabel(d.Severity),
		Code:     d.Code.ID(),
		Path:     path,
		Line:     pos.Line,
		Column:   pos.Col,
		Message:  flattenMessage(d.Message),
	})
	if includeNotes {
		for _, note := range d.Notes {
			npath, npos := resolveGoldenSpan(fs, note.Span)
			out = append(out, goldenLine{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     npath,
				Line:     npos.Line,
				Column:   npos.Col,
				Message:  flattenMessage(note.Msg),
			})
		}
	}
	return out
}

func resolveGoldenSpan(fs *source.FileSet, span source.Span) (string, source.LineCol) {
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	path := file.FormatPath("relative", fs.BaseDir())
	path = strings.TrimPrefix(path, "./")
	return path, start
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

// flattenMessage collapses a multi-line message onto one golden line.
func flattenMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.Join(strings.Fields(msg), " ")
}
