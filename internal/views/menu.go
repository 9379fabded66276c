package views

import (
	"mvncli/internal/ui"
	"mvncli/internal/ui/selector"
)

type menuItem struct {
	label  string
	target string // View to show; empty quits
}

type mainMenu struct {
	list
	items []menuItem
}

// NewMainMenu returns the main menu: projects, statistics, settings, quit.
func NewMainMenu(env *Env) ui.View {
	c := env.Catalog
	items := []menuItem{
		{label: c.T("MenuProjects"), target: Projects},
		{label: c.T("MenuStatistics"), target: Statistics},
		{label: c.T("MenuSettings"), target: Settings},
		{label: c.T("MenuQuit")},
	}
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.label
	}
	return &mainMenu{list: newList(env, labels, false, c.T("MenuPrompt")), items: items}
}

func (m *mainMenu) Title() string { return m.prompt }

func (m *mainMenu) OnMount(nav ui.Navigator) error {
	m.fit()
	m.state.SetCurrent(0)
	nav.Redraw()
	return nil
}

func (m *mainMenu) OnInput(chunk string, nav ui.Navigator) error {
	switch m.state.Handle(chunk) {
	case selector.Confirm:
		item := m.items[m.state.Current()]
		if item.target == "" {
			nav.Shutdown()
			return nil
		}
		return nav.Show(item.target)
	case selector.Cancel:
		return nav.Back()
	}
	nav.Redraw()
	return nil
}
