package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tern/internal/diag"
	"tern/internal/source"
)

type prettyStyles struct {
	err     lipgloss.Style
	warn    lipgloss.Style
	info    lipgloss.Style
	caret   lipgloss.Style
	context lipgloss.Style
	note    lipgloss.Style
	plain   bool
}

func newPrettyStyles(color bool) prettyStyles {
	if !color {
		return prettyStyles{plain: true}
	}
	return prettyStyles{
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		info:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		caret:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		context: lipgloss.NewStyle().Faint(true),
		note:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

func (s prettyStyles) severity(sev diag.Severity, text string) string {
	if s.plain {
		return text
	}
	switch sev {
	case diag.SevError:
		return s.err.Render(text)
	case diag.SevWarning:
		return s.warn.Render(text)
	default:
		return s.info.Render(text)
	}
}

func (s prettyStyles) renderCaret(text string) string {
	if s.plain {
		return text
	}
	return s.caret.Render(text)
}

func (s prettyStyles) renderContext(text string) string {
	if s.plain {
		return text
	}
	return s.context.Render(text)
}

func (s prettyStyles) renderNote(text string) string {
	if s.plain {
		return text
	}
	return s.note.Render(text)
}

// Pretty renders diagnostics for humans. For each diagnostic it prints
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	    <source line>
//	    <caret under the span, annotated with the first fix title>
//
// followed by notes when opts.ShowNotes is set. Callers should Sort the bag
// first for deterministic output.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil || fs == nil {
		return
	}
	styles := newPrettyStyles(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, styles)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, styles prettyStyles) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	path := file.FormatPath(opts.PathMode.formatMode(), fs.BaseDir())

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col,
		styles.severity(d.Severity, d.Severity.String()),
		d.Code.ID(),
		d.Message,
	)

	line := file.GetLine(start.Line)
	if line != "" {
		annotation := ""
		if opts.ShowFixes && len(d.Fixes) > 0 {
			annotation = d.Fixes[0].Title
		}
		fmt.Fprintf(w, "    %s\n", styles.renderContext(expandTabs(line)))
		fmt.Fprintf(w, "    %s\n", caretLine(line, start.Col, d.Primary.Len(), annotation, styles))
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			writeNote(w, note.Msg, styles)
		}
	}
}

// caretLine underlines the span inside line with ^~~~, aligned in display
// cells so wide runes and tabs do not skew the caret.
func caretLine(line string, col uint32, spanLen uint32, annotation string, styles prettyStyles) string {
	if col == 0 {
		col = 1
	}
	prefixEnd := int(col) - 1
	if prefixEnd > len(line) {
		prefixEnd = len(line)
	}
	pad := runewidth.StringWidth(expandTabs(line[:prefixEnd]))

	underEnd := prefixEnd + int(spanLen)
	if underEnd > len(line) {
		underEnd = len(line)
	}
	width := runewidth.StringWidth(expandTabs(line[prefixEnd:underEnd]))
	if width < 1 {
		width = 1
	}

	marker := "^" + strings.Repeat("~", width-1)
	out := strings.Repeat(" ", pad) + styles.renderCaret(marker)
	if annotation != "" {
		out += " " + styles.renderNote(annotation)
	}
	return out
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func writeNote(w io.Writer, msg string, styles prettyStyles) {
	for i, line := range strings.Split(msg, "\n") {
		if i == 0 {
			fmt.Fprintf(w, "  %s %s\n", styles.renderNote("note:"), line)
			continue
		}
		fmt.Fprintf(w, "  %s\n", line)
	}
}
