package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Capability is a widget a view is built from. Each capability contributes
// a fixed set of footer hints.
type Capability int

const (
	CapSelect Capability = iota + 1
	CapMultiSelect
)

func (c Capability) String() string {
	switch c {
	case CapSelect:
		return "select"
	case CapMultiSelect:
		return "multiselect"
	default:
		return "unknown"
	}
}

// Labels are the footer hint descriptions. Keys are fixed; labels are
// localized by the caller.
type Labels struct {
	Move   string
	Select string
	Toggle string
	Run    string
	Back   string
	Quit   string
}

// DefaultLabels are the English hint labels.
var DefaultLabels = Labels{
	Move:   "move",
	Select: "select",
	Toggle: "toggle",
	Run:    "run",
	Back:   "back",
	Quit:   "quit",
}

// Hint key names as displayed in the footer.
const (
	HintKeyMove  = "↑/↓"
	HintKeyEnter = "Enter"
	HintKeySpace = "Space"
	HintKeyEsc   = "Esc"
	HintKeyQuit  = "q"
)

// Global bindings, checked before any input reaches a view.
var (
	interruptBinding = key.NewBinding(key.WithKeys("ctrl+c"))
	quitBinding      = key.NewBinding(key.WithKeys("q", "Q"))
)

func moveHint(l Labels) key.Binding {
	return key.NewBinding(key.WithKeys("up", "down"), key.WithHelp(HintKeyMove, l.Move))
}

func selectHint(l Labels) key.Binding {
	return key.NewBinding(key.WithKeys("enter"), key.WithHelp(HintKeyEnter, l.Select))
}

func toggleHint(l Labels) key.Binding {
	return key.NewBinding(key.WithKeys("space"), key.WithHelp(HintKeySpace, l.Toggle))
}

func runHint(l Labels) key.Binding {
	return key.NewBinding(key.WithKeys("enter"), key.WithHelp(HintKeyEnter, l.Run))
}

func backHint(l Labels) key.Binding {
	return key.NewBinding(key.WithKeys("esc"), key.WithHelp(HintKeyEsc, l.Back))
}

func quitHint(l Labels) key.Binding {
	return key.NewBinding(key.WithKeys("q"), key.WithHelp(HintKeyQuit, l.Quit))
}

// capabilityHints maps each capability to the hints it contributes, in order.
var capabilityHints = map[Capability][]func(Labels) key.Binding{
	CapSelect:      {moveHint, selectHint},
	CapMultiSelect: {moveHint, toggleHint, runHint},
}

// Hint builds a display-only binding.
func Hint(keyName, label string) key.Binding {
	return key.NewBinding(key.WithHelp(keyName, label))
}

// ParseHints turns "key: label" strings into display-only bindings.
// A string without a colon becomes a label with no key.
func ParseHints(hints ...string) []key.Binding {
	out := make([]key.Binding, 0, len(hints))
	for _, h := range hints {
		k, label, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(k) == "" {
			out = append(out, Hint("", strings.TrimSpace(h)))
			continue
		}
		out = append(out, Hint(strings.TrimSpace(k), strings.TrimSpace(label)))
	}
	return out
}
