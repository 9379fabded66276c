package ui

import (
	"strings"

	"mvncli/internal/term"
	"mvncli/internal/ui/textutil"
)

// lineSep ends each row. Raw mode disables output post-processing, so a
// bare newline would not return the cursor to column zero.
const lineSep = "\r\n"

// FrameLines lays out content and footer as exactly rows lines of exactly
// cols visible columns. Tabs are expanded and control sequences other than
// styling are dropped, so no row can wrap or move the cursor. The last row
// holds the footer; the rest is the body viewport.
func FrameLines(content, footer string, cols, rows int) []string {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	lines := strings.Split(strings.ReplaceAll(content, "\r", ""), "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	bodyRows := rows - 1
	out := make([]string, 0, rows)
	for i := 0; i < bodyRows; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		out = append(out, textutil.Fit(textutil.Sanitize(line), cols))
	}
	return append(out, textutil.Fit(textutil.Sanitize(footer), cols))
}

// ComposeFrame returns the complete byte sequence for one frame: cursor
// home followed by every row.
func ComposeFrame(content, footer string, cols, rows int) string {
	return term.CursorHome + strings.Join(FrameLines(content, footer, cols, rows), lineSep)
}
