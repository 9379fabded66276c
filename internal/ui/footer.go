package ui

import (
	"strings"

	"mvncli/internal/ui/textutil"
	"mvncli/internal/ui/theme"

	"github.com/charmbracelet/bubbles/key"
)

// hintGap is the number of columns between two packed hints.
const hintGap = 2

// FooterHints returns the hints shown under v.
// Explicit hints from a FooterHinter are used verbatim. Otherwise hints are
// derived from the view's capabilities, followed by a back hint when
// history is non-empty. A quit hint always comes last.
func FooterHints(v View, hasHistory bool, l Labels) []key.Binding {
	var hints []key.Binding
	explicit := false
	if h, ok := v.(FooterHinter); ok {
		if given := h.FooterHints(); given != nil {
			hints = append(hints, given...)
			explicit = true
		}
	}
	if !explicit {
		if c, ok := v.(ComponentView); ok {
			for _, capability := range c.Components() {
				for _, mk := range capabilityHints[capability] {
					hints = append(hints, mk(l))
				}
			}
		}
		if hasHistory {
			hints = append(hints, backHint(l))
		}
	}
	return append(hints, quitHint(l))
}

// FormatHint renders one hint as "key: label" in footer styles.
func FormatHint(b key.Binding) string {
	h := b.Help()
	if h.Key == "" {
		return theme.Styles.HintLabel.Render(h.Desc)
	}
	return theme.Styles.HintKey.Render(h.Key) +
		theme.Styles.HintLabel.Render(":") + " " +
		theme.Styles.HintLabel.Render(h.Desc)
}

func plainHint(b key.Binding) string {
	h := b.Help()
	if h.Key == "" {
		return h.Desc
	}
	return h.Key + ": " + h.Desc
}

// RenderFooter packs hints left to right into a row of cols columns.
// Packing stops at the first hint that would overflow, so the rendered
// hints are always a prefix of the input. If not even the first hint fits,
// it is shown plain and truncated.
func RenderFooter(hints []key.Binding, cols int) string {
	if len(hints) == 0 || cols <= 0 {
		return ""
	}
	var b strings.Builder
	used := 0
	for i, h := range hints {
		formatted := FormatHint(h)
		w := textutil.VisibleWidth(formatted)
		need := w
		if i > 0 {
			need += hintGap
		}
		if used+need > cols {
			break
		}
		if i > 0 {
			b.WriteString(strings.Repeat(" ", hintGap))
		}
		b.WriteString(formatted)
		used += need
	}
	if used == 0 {
		return textutil.Truncate(plainHint(hints[0]), cols)
	}
	return b.String()
}
