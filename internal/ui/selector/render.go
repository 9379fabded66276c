package selector

import (
	"strings"

	"mvncli/internal/ui/theme"
)

// DefaultHelp is the help line shown under a list.
const DefaultHelp = "Use ↑/↓ to move, <space> to toggle (multi), Enter to confirm, Esc/q to cancel"

// Glyphs.
const (
	pointerGlyph   = "›"
	radioOn        = "●"
	radioOff       = "○"
	checkboxOn     = "◼"
	checkboxOff    = "◻"
	noPointerGlyph = " "
)

// Render draws options with the cursor on current. In multi mode marks
// are checkboxes that follow selected; in single mode they are radio
// buttons that follow the cursor. An empty prompt or help is omitted.
func Render(options []string, current int, selected func(i int) bool, multi bool, prompt, help string) string {
	styles := theme.Styles
	lines := make([]string, 0, len(options)+3)
	if prompt != "" {
		lines = append(lines, styles.Bold.Render(prompt))
	}
	for i, opt := range options {
		isCurrent := i == current

		pointer := noPointerGlyph
		if isCurrent {
			pointer = styles.Pointer.Render(pointerGlyph)
		}

		var mark string
		switch {
		case multi && selected != nil && selected(i):
			mark = styles.Pointer.Render(checkboxOn)
		case multi:
			mark = styles.Dim.Render(checkboxOff)
		case isCurrent:
			mark = styles.Pointer.Render(radioOn)
		default:
			mark = styles.Dim.Render(radioOff)
		}

		label := styles.Option.Render(opt)
		if isCurrent {
			label = styles.Current.Render(opt)
		}
		lines = append(lines, pointer+" "+mark+" "+label)
	}
	if help != "" {
		lines = append(lines, "", styles.Help.Render(help))
	}
	return strings.Join(lines, "\n")
}

// View renders the visible window of st.
func (s *State) View(prompt, help string) string {
	visible, start := s.Visible()
	return Render(visible, s.current-start, func(i int) bool {
		return s.selected[start+i]
	}, s.multi, prompt, help)
}
