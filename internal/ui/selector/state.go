// Package selector is a single- and multi-select list: an embeddable state
// plus a standalone prompt that owns the terminal while it runs.
package selector

import (
	"slices"

	"mvncli/internal/term"

	"github.com/charmbracelet/bubbles/key"
)

// minPageSize is the smallest viewport, however short the terminal.
const minPageSize = 3

// Action is the outcome of one key press.
type Action int

const (
	// Continue means the state may have changed and the list should be redrawn.
	Continue Action = iota
	// Confirm means Enter was pressed.
	Confirm
	// Cancel means Esc or q was pressed.
	Cancel
	// Interrupt means Ctrl-C was pressed.
	Interrupt
)

// PageSize returns how many options fit in rows terminal rows.
func PageSize(rows, reserved int) int {
	return max(minPageSize, rows-reserved)
}

// State is the cursor, selection and viewport of one list.
// The zero value is not usable; create with New.
type State struct {
	options  []string
	multi    bool
	current  int
	selected map[int]bool
	start    int
	pageSize int
}

// New returns a state over options with the cursor on the first entry.
func New(options []string, multi bool) *State {
	return &State{
		options:  options,
		multi:    multi,
		selected: make(map[int]bool),
		pageSize: minPageSize,
	}
}

// Options returns the list entries.
func (s *State) Options() []string { return s.options }

// Multi reports whether the list is a multi-select.
func (s *State) Multi() bool { return s.multi }

// Current returns the cursor index.
func (s *State) Current() int { return s.current }

// Start returns the index of the first visible option.
func (s *State) Start() int { return s.start }

// SetCurrent moves the cursor to i, clamped to the option range.
func (s *State) SetCurrent(i int) {
	s.current = s.clamp(i)
	s.ensureVisible()
}

// Select marks indices as selected. Out-of-range indices are ignored.
func (s *State) Select(indices ...int) {
	for _, i := range indices {
		if i >= 0 && i < len(s.options) {
			s.selected[i] = true
		}
	}
}

// IsSelected reports whether i is in the selection.
func (s *State) IsSelected(i int) bool { return s.selected[i] }

// Selected returns the selected indices in ascending order.
func (s *State) Selected() []int {
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// PageSize returns the current viewport height.
func (s *State) PageSize() int { return s.pageSize }

// SetPageSize changes the viewport height and scrolls to keep the cursor
// visible.
func (s *State) SetPageSize(n int) {
	s.pageSize = max(1, n)
	s.ensureVisible()
}

// Visible returns the window of options currently on screen and the index
// of the first one.
func (s *State) Visible() (options []string, start int) {
	end := min(len(s.options), s.start+s.pageSize)
	return s.options[s.start:end], s.start
}

// Handle applies one raw input chunk.
func (s *State) Handle(chunk string) Action {
	k := term.Decode(chunk)
	last := len(s.options) - 1
	switch {
	case key.Matches(k, keys.Interrupt):
		return Interrupt
	case key.Matches(k, keys.Confirm):
		return Confirm
	case key.Matches(k, keys.Cancel):
		return Cancel
	case key.Matches(k, keys.Up):
		s.current = s.clamp(s.current - 1)
	case key.Matches(k, keys.Down):
		s.current = s.clamp(s.current + 1)
	case key.Matches(k, keys.PageUp):
		s.current = s.clamp(s.current - s.pageSize)
		s.start = max(0, s.start-s.pageSize)
	case key.Matches(k, keys.PageDown):
		s.current = s.clamp(s.current + s.pageSize)
		s.start = min(max(0, len(s.options)-s.pageSize), s.start+s.pageSize)
	case key.Matches(k, keys.Home):
		s.current, s.start = 0, 0
	case key.Matches(k, keys.End):
		s.current = max(0, last)
		s.start = max(0, len(s.options)-s.pageSize)
	case key.Matches(k, keys.Toggle):
		if s.multi && len(s.options) > 0 {
			if s.selected[s.current] {
				delete(s.selected, s.current)
			} else {
				s.selected[s.current] = true
			}
		}
	}
	s.ensureVisible()
	return Continue
}

func (s *State) clamp(i int) int {
	return max(0, min(i, len(s.options)-1))
}

// ensureVisible keeps the cursor inside [start, start+pageSize).
func (s *State) ensureVisible() {
	maxStart := max(0, len(s.options)-s.pageSize)
	if s.current < s.start {
		s.start = s.current
	}
	if s.current > s.start+s.pageSize-1 {
		s.start = s.current - (s.pageSize - 1)
	}
	s.start = max(0, min(s.start, maxStart))
}
