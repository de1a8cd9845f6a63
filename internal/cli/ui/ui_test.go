package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/decodoc/decodoc/internal/rewrite"
	"github.com/decodoc/decodoc/internal/safety"
)

func TestFormatError(t *testing.T) {
	out := FormatError(ErrorOptions{
		Level:        ErrorLevelError,
		Context:      "file error",
		Problem:      "cannot read",
		Consequence:  "nothing written",
		HelpCommands: []string{"try again"},
		NoColor:      true,
	})

	assert.Contains(t, out, "✗ FILE ERROR: cannot read")
	assert.Contains(t, out, "   nothing written")
	assert.Contains(t, out, "   → try again")
}

func TestFileError_DestructiveEdit(t *testing.T) {
	err := &safety.DestructiveEditError{Path: "a.ts", Line: 3, Text: "@Input()"}
	out := FileError("a.ts", err, true)

	assert.Contains(t, out, "UNSAFE REWRITE")
	assert.Contains(t, out, `a.ts:3`)
	assert.Contains(t, out, "decodoc diff a.ts")
}

func TestFileError_IOError(t *testing.T) {
	err := &rewrite.IOError{Op: "read", Path: "a.ts", Err: errors.New("permission denied")}
	out := FileError("a.ts", err, true)

	assert.Contains(t, out, "FILE ERROR: read a.ts: permission denied")
}

func TestFileError_Other(t *testing.T) {
	out := FileError("a.ts", errors.New("boom"), true)
	assert.Contains(t, out, "a.ts: boom")
}

func TestSummary(t *testing.T) {
	report := &rewrite.BatchReport{Results: []*rewrite.FileResult{
		{Path: "a.ts", Changed: true, Written: true},
		{Path: "b.ts"},
		{Path: "c.ts", Err: errors.New("boom")},
		{Path: "d.ts", Changed: true, Skipped: true},
	}}

	var buf bytes.Buffer
	Summary(&buf, report, "annotated", true)
	out := buf.String()

	assert.Contains(t, out, "Files scanned:   4")
	assert.Contains(t, out, "Files annotated: 1")
	assert.Contains(t, out, "Unchanged:       1")
	assert.Contains(t, out, "Skipped:         1")
	assert.Contains(t, out, "Failed:          1")
}

func TestFormatSuccess(t *testing.T) {
	assert.Equal(t, "✓ done", FormatSuccess("done", true))
}

func TestWarning(t *testing.T) {
	out := Warning("--jobs is ignored", true)
	assert.Equal(t, "! --jobs is ignored\n", out)
}
