package views

import (
	"strings"

	"mvncli/internal/term"
	"mvncli/internal/ui"
	"mvncli/internal/ui/theme"

	"github.com/charmbracelet/bubbles/key"
)

// statisticsView is a placeholder with its own footer.
type statisticsView struct {
	env *Env
}

// NewStatistics returns the statistics screen.
func NewStatistics(env *Env) ui.View {
	return &statisticsView{env: env}
}

func (s *statisticsView) Title() string { return s.env.Catalog.T("StatsTitle") }

func (s *statisticsView) Render() string {
	c := s.env.Catalog
	lines := []string{
		theme.Styles.Bold.Render(s.Title()),
		"",
		theme.Styles.Warning.Render(c.T("StatsBody1")),
		c.T("StatsBody2"),
		"",
		c.T("StatsIdeas"),
		c.T("StatsIdea1"),
		c.T("StatsIdea2"),
		c.T("StatsIdea3"),
	}
	return s.env.page(strings.Join(lines, "\n"))
}

func (s *statisticsView) FooterHints() []key.Binding {
	return []key.Binding{ui.Hint(ui.HintKeyEsc, s.env.Catalog.T("StatsBack"))}
}

func (s *statisticsView) OnInput(chunk string, nav ui.Navigator) error {
	if key.Matches(term.Decode(chunk), backKey) {
		return nav.Back()
	}
	return nil
}
