package diagfmt

import (
	"fmt"
	"io"

	"tern/internal/diag"
	"tern/internal/source"
)

// Short writes the compact one-line-per-diagnostic form shared with golden
// tests.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, includeNotes bool) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	fmt.Fprintln(w, diag.FormatGoldenDiagnostics(bag.Items(), fs, includeNotes))
}
