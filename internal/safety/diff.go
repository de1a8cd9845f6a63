package safety

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffKind tags a line of a diff.
type DiffKind int

const (
	Unchanged DiffKind = iota
	Added
	Removed
)

// String returns the string representation of the kind
func (k DiffKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// DiffEntry is one line of a line diff. OldLine and NewLine are 1-based and
// zero when the line does not exist on that side.
type DiffEntry struct {
	Kind    DiffKind
	Text    string
	OldLine int
	NewLine int
}

// DiffLines computes a minimal line diff from original to rewritten. A
// missing final newline is ignored.
func DiffLines(original, rewritten string) []DiffEntry {
	oldLines, newLines := splitLines(original), splitLines(rewritten)

	table := newLineTable()
	a, okA := table.encode(oldLines)
	b, okB := table.encode(newLines)
	if !okA || !okB {
		return replaceAll(oldLines, newLines)
	}

	dmp := diffmatchpatch.New()
	// No deadline: the diff stays minimal, so a rewrite that only inserts
	// lines never shows a removal.
	dmp.DiffTimeout = 0

	var entries []DiffEntry
	oldLine, newLine := 1, 1
	for _, d := range dmp.DiffMainRunes(a, b, false) {
		for _, r := range d.Text {
			line := table.decode(r)
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				entries = append(entries, DiffEntry{Kind: Unchanged, Text: line, OldLine: oldLine, NewLine: newLine})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				entries = append(entries, DiffEntry{Kind: Removed, Text: line, OldLine: oldLine})
				oldLine++
			case diffmatchpatch.DiffInsert:
				entries = append(entries, DiffEntry{Kind: Added, Text: line, NewLine: newLine})
				newLine++
			}
		}
	}
	return entries
}

// lineTable gives every distinct line its own rune, so a rune diff is a
// line diff. Surrogate code points are skipped: they do not survive the
// round trip through a Go string.
type lineTable struct {
	runes map[string]rune
	lines []string
}

const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
)

func newLineTable() *lineTable {
	return &lineTable{runes: make(map[string]rune)}
}

// encode maps lines to runes. It returns false once the table runs out of
// code points.
func (t *lineTable) encode(lines []string) ([]rune, bool) {
	out := make([]rune, len(lines))
	for i, line := range lines {
		r, ok := t.runes[line]
		if !ok {
			r = rune(len(t.lines))
			if r >= surrogateMin {
				r += surrogateLen
			}
			if r > unicode.MaxRune {
				return nil, false
			}
			t.runes[line] = r
			t.lines = append(t.lines, line)
		}
		out[i] = r
	}
	return out, true
}

func (t *lineTable) decode(r rune) string {
	if r >= surrogateMin {
		r -= surrogateLen
	}
	return t.lines[r]
}

// replaceAll reports every old line removed and every new line added.
func replaceAll(oldLines, newLines []string) []DiffEntry {
	entries := make([]DiffEntry, 0, len(oldLines)+len(newLines))
	for i, line := range oldLines {
		entries = append(entries, DiffEntry{Kind: Removed, Text: line, OldLine: i + 1})
	}
	for i, line := range newLines {
		entries = append(entries, DiffEntry{Kind: Added, Text: line, NewLine: i + 1})
	}
	return entries
}

// DiffResult represents the difference between an original file and its rewrite
type DiffResult struct {
	Path      string
	Original  string
	Rewritten string
	Entries   []DiffEntry
	Changed   bool
}

// Diff compares original and rewritten text
func Diff(path, original, rewritten string) *DiffResult {
	d := &DiffResult{
		Path:      path,
		Original:  original,
		Rewritten: rewritten,
		Changed:   original != rewritten,
	}
	if d.Changed {
		d.Entries = DiffLines(original, rewritten)
	}
	return d
}

// String returns a human-readable diff with color highlighting
func (d *DiffResult) String() string {
	if !d.Changed {
		return color.GreenString("No changes needed")
	}

	var buf bytes.Buffer

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)

	inHunk := false
	for _, e := range d.Entries {
		switch e.Kind {
		case Unchanged:
			inHunk = false
		case Added:
			if !inHunk {
				cyan.Fprintf(&buf, "@@ Line %d @@\n", e.NewLine)
				inHunk = true
			}
			green.Fprintf(&buf, "+ %s\n", e.Text)
		case Removed:
			if !inHunk {
				cyan.Fprintf(&buf, "@@ Line %d @@\n", e.OldLine)
				inHunk = true
			}
			red.Fprintf(&buf, "- %s\n", e.Text)
		}
	}

	return buf.String()
}

// UnifiedDiff returns a unified diff with three lines of context
func (d *DiffResult) UnifiedDiff() (string, error) {
	if !d.Changed {
		return "", nil
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(d.Original),
		B:        difflib.SplitLines(d.Rewritten),
		FromFile: "a/" + d.Path,
		ToFile:   "b/" + d.Path,
		Context:  3,
	})
}

// Removed returns the entries for original lines missing from the rewrite
func (d *DiffResult) Removed() []DiffEntry {
	var removed []DiffEntry
	for _, e := range d.Entries {
		if e.Kind == Removed {
			removed = append(removed, e)
		}
	}
	return removed
}

// Stats returns statistics about the changes
func (d *DiffResult) Stats() string {
	if !d.Changed {
		return "No changes"
	}

	added, removed := 0, 0
	for _, e := range d.Entries {
		switch e.Kind {
		case Added:
			added++
		case Removed:
			removed++
		}
	}

	return fmt.Sprintf("%d lines added, %d removed", added, removed)
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
