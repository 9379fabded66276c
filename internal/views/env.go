// Package views contains the mvncli screens: start, main menu, project and
// goal pickers, build log, settings and statistics.
package views

import (
	"log/slog"

	"mvncli/internal/config"
	"mvncli/internal/i18n"
	"mvncli/internal/pty"
	"mvncli/internal/term"
	"mvncli/internal/ui"
	"mvncli/internal/ui/theme"

	"github.com/charmbracelet/bubbles/key"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Registered view names.
const (
	Start      = "start"
	MainMenu   = "mainMenu"
	Projects   = "projectPicker"
	Settings   = "settings"
	Statistics = "statistics"
)

// listReserved are the rows around an embedded list: header, blank line,
// prompt and footer.
const listReserved = 4

var (
	enterKey = key.NewBinding(key.WithKeys("enter"))
	backKey  = key.NewBinding(key.WithKeys("esc"))
)

// Env is what every view needs from the outside world.
type Env struct {
	Config  config.Config
	Catalog *i18n.Catalog
	Runner  pty.Runner
	Tracer  oteltrace.Tracer
	Log     *slog.Logger
	Version string
	// Size reports the terminal size. Defaults to 80x24.
	Size func() (cols, rows int)
}

// Registry is where views are installed.
type Registry interface {
	Register(name string, v ui.View)
}

// Register installs every named view into r.
func Register(r Registry, env *Env) {
	env.defaults()
	r.Register(Start, NewStart(env))
	r.Register(MainMenu, NewMainMenu(env))
	r.Register(Projects, NewProjectPicker(env))
	r.Register(Settings, NewSettings(env))
	r.Register(Statistics, NewStatistics(env))
}

func (e *Env) defaults() {
	if e.Runner == nil {
		e.Runner = pty.Default()
	}
	if e.Tracer == nil {
		e.Tracer = noop.NewTracerProvider().Tracer("")
	}
	if e.Log == nil {
		e.Log = slog.New(slog.DiscardHandler)
	}
}

func (e *Env) size() (cols, rows int) {
	if e.Size == nil {
		return term.DefaultCols, term.DefaultRows
	}
	return e.Size()
}

// Header is the product line shown at the top of every screen.
func (e *Env) Header() string {
	s := theme.Styles
	title := s.Title.Render(e.Catalog.T("AppTitle"))
	name := s.Bold.Render(e.Catalog.T("AppName"))
	version := s.Version.Render("v" + e.Version)
	return title + " — " + name + " " + version
}

// page joins the header and body with one blank line between.
func (e *Env) page(body string) string {
	return e.Header() + "\n\n" + body
}
