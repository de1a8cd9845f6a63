package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/decodoc/decodoc/internal/rewrite"
)

// padRight pads a string with spaces on the right to reach the target width
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// KeyValueTable renders a simple key-value table (2 columns)
type KeyValueTable struct {
	writer  io.Writer
	rows    []kvRow
	noColor bool
}

type kvRow struct {
	key   string
	value string
}

// NewKeyValueTable creates a new key-value table
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{
		writer:  w,
		noColor: noColor,
	}
}

// AddRow adds a key-value pair to the table
func (t *KeyValueTable) AddRow(key, value string) {
	t.rows = append(t.rows, kvRow{key: key, value: value})
}

// Render renders the key-value table
func (t *KeyValueTable) Render() {
	if len(t.rows) == 0 {
		return
	}

	maxKeyWidth := 0
	for _, row := range t.rows {
		if len(row.key) > maxKeyWidth {
			maxKeyWidth = len(row.key)
		}
	}

	cyan := color.New(color.FgCyan)
	if t.noColor {
		cyan.DisableColor()
	}
	for _, row := range t.rows {
		cyan.Fprint(t.writer, padRight(row.key+":", maxKeyWidth+1))
		fmt.Fprintf(t.writer, " %s\n", row.value)
	}
}

// Summary renders the counts of a batch. verb names what happened to the
// changed files ("annotated", "need annotation").
func Summary(w io.Writer, report *rewrite.BatchReport, verb string, noColor bool) {
	t := NewKeyValueTable(w, noColor)
	t.AddRow("Files scanned", fmt.Sprint(len(report.Results)))
	t.AddRow("Files "+verb, fmt.Sprint(report.Annotated()))
	t.AddRow("Unchanged", fmt.Sprint(report.Unchanged()))
	if n := report.Skipped(); n > 0 {
		t.AddRow("Skipped", fmt.Sprint(n))
	}
	t.AddRow("Failed", fmt.Sprint(len(report.Failed())))
	t.Render()
}
