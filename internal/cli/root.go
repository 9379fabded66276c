// Package cli wires configuration, logging, tracing and the views into
// the mvncli commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mvncli/internal/config"
	"mvncli/internal/i18n"
	"mvncli/internal/logging"
	"mvncli/internal/term"
	"mvncli/internal/trace"
	"mvncli/internal/ui"
	"mvncli/internal/views"

	"github.com/spf13/cobra"
)

// startDelay lets the alternate screen settle before the first frame.
const startDelay = 20 * time.Millisecond

// ErrNotTerminal is returned when the interactive UI is started without a TTY.
var ErrNotTerminal = errors.New("the interactive UI requires a terminal")

// App holds the global flags and the terminal the commands draw on.
type App struct {
	ConfigPath string
	Lang       string
	Version    string

	// Term is the terminal for the UI and prompts. Defaults to stdio.
	Term term.Terminal
	// Signals replaces process signal delivery, for tests.
	Signals term.Signals
}

// NewRootCmd builds the mvncli command tree. Without a subcommand it runs
// the interactive navigator.
func NewRootCmd(app *App) *cobra.Command {
	if app.Term == nil {
		app.Term = term.Stdio()
	}
	if app.Signals == nil {
		app.Signals = term.OSSignals{}
	}

	cmd := &cobra.Command{
		Use:           "mvncli",
		Short:         "Maven build navigator for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       app.Version,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context(), app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Config file (default $MVNCLI_CONFIG or ~/.config/mvncli/config.toml)")
	cmd.PersistentFlags().StringVar(&app.Lang, "lang", "", "UI language (en, de); overrides config and $MVNCLI_LANG")

	cmd.AddCommand(newSelectCmd(app))
	return cmd
}

// loadConfig applies flags on top of file and environment.
func (app *App) loadConfig() (config.Config, error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return cfg, err
	}
	if app.Lang != "" {
		cfg.Language = app.Lang
	}
	return cfg, nil
}

func interactive(t term.Terminal) bool {
	if tty, ok := t.(*term.TTY); ok {
		return tty.IsTerminal()
	}
	return true
}

func runUI(ctx context.Context, app *App) error {
	if !interactive(app.Term) {
		return ErrNotTerminal
	}
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	cat, err := i18n.New(cfg.Language)
	if err != nil {
		return err
	}

	tp, err := trace.NewProvider(ctx)
	if err != nil {
		log.Warn("tracing disabled", "err", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("flush traces", "err", err)
		}
	}()

	m := ui.NewManager(app.Term,
		ui.WithLogger(log.With(slog.String("component", "ui"))),
		ui.WithTracer(tp.Tracer(trace.ScopeUI)),
		ui.WithLabels(cat.Labels()),
		ui.WithSignals(app.Signals),
		ui.WithTransitionDelay(cfg.TransitionDelay.Duration),
	)
	views.Register(m, &views.Env{
		Config:  cfg,
		Catalog: cat,
		Tracer:  tp.Tracer(trace.ScopeBuild),
		Log:     log.With(slog.String("component", "build")),
		Version: app.Version,
		Size:    app.Term.Size,
	})

	done, err := m.Start(ctx)
	if err != nil {
		return err
	}
	time.Sleep(startDelay)
	// Only fails when the session already ended; done is closed then.
	if err := m.Enter(views.Start); err != nil {
		log.Debug("first view not shown", "err", err)
	}
	<-done
	return m.Err()
}
