package views

import (
	"strings"

	"mvncli/internal/term"
	"mvncli/internal/ui"
	"mvncli/internal/ui/textutil"
	"mvncli/internal/ui/theme"

	"github.com/charmbracelet/bubbles/key"
)

const settingsLabelWidth = 24

// settingsView shows the effective configuration, read-only.
type settingsView struct {
	env *Env
}

// NewSettings returns the settings screen.
func NewSettings(env *Env) ui.View {
	return &settingsView{env: env}
}

func (s *settingsView) Title() string { return s.env.Catalog.T("SettingsTitle") }

func (s *settingsView) Render() string {
	c := s.env.Catalog
	cfg := s.env.Config
	orNone := func(v string) string {
		if v == "" {
			return c.T("SettingsNone")
		}
		return v
	}
	projects := make([]string, len(cfg.Projects))
	for i, p := range cfg.Projects {
		projects[i] = p.Name + " (" + p.Path + ")"
	}

	rows := [][2]string{
		{c.T("SettingsLanguage"), s.env.Catalog.Language().String()},
		{c.T("SettingsBuild"), cfg.BuildCommand},
		{c.T("SettingsProjects"), orNone(strings.Join(projects, ", "))},
		{c.T("SettingsGoals"), orNone(strings.Join(cfg.Goals, ", "))},
		{c.T("SettingsDelay"), cfg.TransitionDelay.String()},
		{c.T("SettingsLog"), orNone(cfg.LogPath)},
		{c.T("SettingsSource"), orNone(cfg.Source)},
	}

	lines := []string{theme.Styles.Bold.Render(s.Title()), ""}
	for _, r := range rows {
		lines = append(lines, theme.Styles.Option.Render(textutil.PadRightVisual(r[0], settingsLabelWidth))+r[1])
	}
	return s.env.page(strings.Join(lines, "\n"))
}

func (s *settingsView) OnInput(chunk string, nav ui.Navigator) error {
	if key.Matches(term.Decode(chunk), backKey) {
		return nav.Back()
	}
	return nil
}
