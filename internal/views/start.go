package views

import (
	"strings"

	"mvncli/internal/term"
	"mvncli/internal/ui"
	"mvncli/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/key"
)

// startView is the welcome screen. Enter opens the main menu.
type startView struct {
	env *Env
}

// NewStart returns the welcome screen.
func NewStart(env *Env) ui.View {
	return &startView{env: env}
}

func (v *startView) Title() string { return v.env.Catalog.T("AppTitle") }

func (v *startView) Render() string {
	cols, rows := v.env.size()
	title := v.env.Catalog.T("StartWelcome")
	subtitle := v.env.Catalog.T("StartSubtitle")

	bodyRows := max(0, rows-4)
	lines := make([]string, 0, bodyRows)
	for i := 0; i < (bodyRows-2)/2; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, textutil.Center(title, cols), textutil.Center(subtitle, cols))
	return v.env.page(strings.Join(lines, "\n"))
}

func (v *startView) OnInput(chunk string, nav ui.Navigator) error {
	if key.Matches(term.Decode(chunk), enterKey) && nav.Has(MainMenu) {
		return nav.Show(MainMenu)
	}
	return nil
}
