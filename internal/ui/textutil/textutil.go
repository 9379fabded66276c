// Package textutil provides ANSI- and unicode-aware text utilities for
// full-screen rendering.
package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

const reset = "\x1b[0m"

// TabWidth is the distance between tab stops.
const TabWidth = 8

// VisibleWidth returns the number of terminal columns s occupies once
// color and styling sequences are removed.
func VisibleWidth(s string) int {
	return ansi.StringWidth(s)
}

// Strip removes all escape sequences from s.
func Strip(s string) string {
	return ansi.Strip(s)
}

// Truncate shortens s to at most maxWidth visible columns, ending with an
// ellipsis when anything was cut. Styling sequences are preserved.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisibleWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, TruncateEllipsis)
}

// Fit returns s cut or padded with spaces to exactly width visible columns.
// Styled lines that get cut are terminated with a reset so the padding and
// the next row do not inherit their attributes.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := VisibleWidth(s)
	if w > width {
		s = ansi.Truncate(s, width, "")
		if strings.Contains(s, "\x1b") {
			s += reset
		}
		w = VisibleWidth(s)
	}
	if w < width {
		s += runewidth.FillRight("", width-w)
	}
	return s
}

// PadRightVisual pads s on the right to targetWidth visible columns.
// If s is already wider it is truncated with an ellipsis.
func PadRightVisual(s string, targetWidth int) string {
	w := VisibleWidth(s)
	if w >= targetWidth {
		return Truncate(s, targetWidth)
	}
	return s + runewidth.FillRight("", targetWidth-w)
}

// PadLeftVisual pads s on the left to targetWidth visible columns.
// If s is already wider it is truncated with an ellipsis.
func PadLeftVisual(s string, targetWidth int) string {
	w := VisibleWidth(s)
	if w >= targetWidth {
		return Truncate(s, targetWidth)
	}
	return runewidth.FillLeft("", targetWidth-w) + s
}

// Center prefixes s with enough spaces to center it in width columns.
func Center(s string, width int) string {
	pad := (width - VisibleWidth(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// Sanitize makes s safe to place in one row: tabs become spaces up to the
// next tab stop, SGR styling is kept, and every other escape sequence and
// control character is dropped. Afterwards VisibleWidth matches what the
// terminal actually draws.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	col := 0
	var state byte
	for len(s) > 0 {
		seq, width, n, newState := ansi.DecodeSequence(s, state, nil)
		if n <= 0 {
			n = 1
			seq = s[:1]
		}
		state = newState
		s = s[n:]

		switch {
		case width > 0:
			b.WriteString(seq)
			col += width
		case seq == "\t":
			pad := TabWidth - col%TabWidth
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
		case isSGR(seq):
			b.WriteString(seq)
		}
	}
	return b.String()
}

func isSGR(seq string) bool {
	return ansi.HasCsiPrefix(seq) && strings.HasSuffix(seq, "m")
}
