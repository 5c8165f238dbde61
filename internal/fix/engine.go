// Package fix applies suggestion edits carried by diagnostics to the
// source excerpts they point at.
package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"tern/internal/diag"
	"tern/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies only the first fix in deterministic order.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every non-conflicting fix.
	ApplyModeAll
)

// ApplyOptions configures how fixes are selected and persisted.
type ApplyOptions struct {
	Mode ApplyMode
	// Write persists patched non-virtual files back to disk. Virtual
	// excerpts are always patched in memory only.
	Write bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title     string
	Code      diag.Code
	Message   string
	Path      string
	EditCount int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	Title  string
	Reason string
}

// FileChange holds the patched content of one file.
type FileChange struct {
	Path      string
	Content   []byte
	EditCount int
	Written   bool
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag diag.Diagnostic
	fix  diag.Fix
}

// Apply collects fixes from diagnostics, selects a subset according to
// opts, and applies them against the file set's content.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates := gatherCandidates(diagnostics)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)
	if opts.Mode == ApplyModeOnce {
		candidates = candidates[:1]
	}

	buffers := make(map[source.FileID][]byte)
	applied := make(map[source.FileID][]diag.FixEdit)

	for _, cand := range candidates {
		if reason := stageCandidate(fs, cand, buffers, applied); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{
				Title:  cand.fix.Title,
				Reason: reason,
			})
			continue
		}
		result.Applied = append(result.Applied, AppliedFix{
			Title:     cand.fix.Title,
			Code:      cand.diag.Code,
			Message:   cand.diag.Message,
			Path:      fs.Get(cand.diag.Primary.File).FormatPath("auto", fs.BaseDir()),
			EditCount: len(cand.fix.Edits),
		})
	}

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	for fileID, buf := range buffers {
		file := fs.Get(fileID)
		change := FileChange{
			Path:      file.FormatPath("relative", fs.BaseDir()),
			Content:   buf,
			EditCount: len(applied[fileID]),
		}
		if opts.Write && file.Flags&source.FileVirtual == 0 {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, buf, mode); err != nil {
				return result, fmt.Errorf("write %s: %w", file.Path, err)
			}
			change.Written = true
		}
		result.FileChanges = append(result.FileChanges, change)
	}
	sort.Slice(result.FileChanges, func(i, j int) bool {
		return result.FileChanges[i].Path < result.FileChanges[j].Path
	})
	return result, nil
}

func gatherCandidates(diagnostics []diag.Diagnostic) []candidate {
	cands := make([]candidate, 0)
	for _, d := range diagnostics {
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f})
		}
	}
	return cands
}

// sortCandidates orders by file, then span, then code, then title so reruns
// pick the same fix first.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return candidates[i].fix.Title < candidates[j].fix.Title
	})
}

// stageCandidate applies one fix's edits to the working buffers. It returns
// a non-empty skip reason when the fix conflicts with already-applied edits,
// falls out of range, or the existing text no longer matches.
func stageCandidate(fs *source.FileSet, cand candidate, buffers map[source.FileID][]byte, applied map[source.FileID][]diag.FixEdit) string {
	edits := append([]diag.FixEdit(nil), cand.fix.Edits...)
	byFile := make(map[source.FileID][]diag.FixEdit)
	for _, edit := range edits {
		byFile[edit.Span.File] = append(byFile[edit.Span.File], edit)
	}

	staged := make(map[source.FileID][]byte, len(byFile))
	stagedApplied := make(map[source.FileID][]diag.FixEdit, len(byFile))
	for fileID, fileEdits := range byFile {
		file := fs.Get(fileID)
		if file == nil {
			return "unknown file"
		}
		if conflictsWithExisting(applied[fileID], fileEdits) {
			return "conflicts with previously applied edits"
		}

		working := buffers[fileID]
		if working == nil {
			working = append([]byte(nil), file.Content...)
		} else {
			working = append([]byte(nil), working...)
		}

		// Apply back-to-front so earlier offsets stay valid.
		sort.Slice(fileEdits, func(i, j int) bool {
			return fileEdits[i].Span.Start > fileEdits[j].Span.Start
		})
		history := append([]diag.FixEdit(nil), applied[fileID]...)
		for _, edit := range fileEdits {
			start := int(edit.Span.Start) + cumulativeDelta(history, int(edit.Span.Start))
			end := int(edit.Span.End) + cumulativeDelta(history, int(edit.Span.End))
			if start < 0 || end < start || end > len(working) {
				return "edit span out of range"
			}
			if edit.OldText != "" && string(working[start:end]) != edit.OldText {
				return "existing text does not match expected content"
			}
			suffix := append([]byte(nil), working[end:]...)
			working = append(append(working[:start], []byte(edit.NewText)...), suffix...)
		}
		staged[fileID] = working
		stagedApplied[fileID] = append(history, fileEdits...)
	}

	for fileID, buf := range staged {
		buffers[fileID] = buf
		applied[fileID] = stagedApplied[fileID]
	}
	return ""
}

func conflictsWithExisting(existing, edits []diag.FixEdit) bool {
	for _, prev := range existing {
		for _, cand := range edits {
			if spansConflict(prev, cand) {
				return true
			}
		}
	}
	return false
}

// spansConflict treats spans as half-open intervals. Two zero-length edits
// never conflict; a zero-length edit conflicts with a span containing it.
func spansConflict(a, b diag.FixEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}

// cumulativeDelta is the net size change from edits applied at or before
// pos, used to shift original-coordinate offsets onto the patched buffer.
func cumulativeDelta(edits []diag.FixEdit, pos int) int {
	delta := 0
	for _, e := range edits {
		if int(e.Span.End) <= pos {
			delta += len(e.NewText) - int(e.Span.End-e.Span.Start)
		}
	}
	return delta
}
