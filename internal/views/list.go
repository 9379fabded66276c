package views

import (
	"mvncli/internal/ui"
	"mvncli/internal/ui/selector"
	"mvncli/internal/ui/theme"
)

// list is an embedded selector with a prompt, shared by the menu and the
// pickers.
type list struct {
	env    *Env
	state  *selector.State
	prompt string
	notice string
}

func newList(env *Env, options []string, multi bool, prompt string) list {
	return list{env: env, state: selector.New(options, multi), prompt: prompt}
}

func (l *list) Render() string {
	body := l.state.View(l.prompt, "")
	if l.notice != "" {
		body += "\n\n" + theme.Styles.Warning.Render(l.notice)
	}
	return l.env.page(body)
}

// fit sizes the viewport to the terminal.
func (l *list) fit() {
	_, rows := l.env.size()
	l.state.SetPageSize(selector.PageSize(rows, listReserved))
}

func (l *list) Components() []ui.Capability {
	if l.state.Multi() {
		return []ui.Capability{ui.CapMultiSelect}
	}
	return []ui.Capability{ui.CapSelect}
}
