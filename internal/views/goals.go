package views

import (
	"mvncli/internal/config"
	"mvncli/internal/ui"
	"mvncli/internal/ui/selector"
)

// goalPicker is a multi-select over the configured goals for one project.
// It is opened anonymously and lives until navigated back from.
type goalPicker struct {
	list
	project config.Project
	goals   []string
}

func newGoalPicker(env *Env, project config.Project) *goalPicker {
	prompt := env.Catalog.Tf("GoalsPrompt", map[string]any{"Project": project.Name})
	return &goalPicker{
		list:    newList(env, env.Config.Goals, true, prompt),
		project: project,
		goals:   env.Config.Goals,
	}
}

func (g *goalPicker) Title() string { return g.prompt }

func (g *goalPicker) OnMount(nav ui.Navigator) error {
	g.fit()
	nav.Redraw()
	return nil
}

func (g *goalPicker) OnInput(chunk string, nav ui.Navigator) error {
	switch g.state.Handle(chunk) {
	case selector.Confirm:
		picked := g.state.Selected()
		if len(picked) == 0 {
			g.notice = g.env.Catalog.T("GoalsNone")
			nav.Redraw()
			return nil
		}
		g.notice = ""
		goals := make([]string, len(picked))
		for i, idx := range picked {
			goals[i] = g.goals[idx]
		}
		_, err := nav.Open(newBuildLog(g.env, g.project, goals))
		return err
	case selector.Cancel:
		return nav.Back()
	}
	nav.Redraw()
	return nil
}
