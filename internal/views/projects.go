package views

import (
	"mvncli/internal/config"
	"mvncli/internal/ui"
	"mvncli/internal/ui/selector"
)

type projectPicker struct {
	list
	projects []config.Project
}

// NewProjectPicker lists the configured projects. Enter opens the goal
// picker for the chosen one.
func NewProjectPicker(env *Env) ui.View {
	names := make([]string, len(env.Config.Projects))
	for i, p := range env.Config.Projects {
		names[i] = p.Name
	}
	v := &projectPicker{
		list:     newList(env, names, false, env.Catalog.T("ProjectsPrompt")),
		projects: env.Config.Projects,
	}
	if len(names) == 0 {
		v.notice = env.Catalog.T("ProjectsEmpty")
	}
	return v
}

func (p *projectPicker) Title() string { return p.prompt }

func (p *projectPicker) OnMount(nav ui.Navigator) error {
	p.fit()
	p.state.SetCurrent(0)
	nav.Redraw()
	return nil
}

func (p *projectPicker) OnInput(chunk string, nav ui.Navigator) error {
	switch p.state.Handle(chunk) {
	case selector.Confirm:
		if len(p.projects) == 0 {
			return nil
		}
		_, err := nav.Open(newGoalPicker(p.env, p.projects[p.state.Current()]))
		return err
	case selector.Cancel:
		return nav.Back()
	}
	nav.Redraw()
	return nil
}
