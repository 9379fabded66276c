package views

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"mvncli/internal/config"
	"mvncli/internal/pty"
	"mvncli/internal/term"
	"mvncli/internal/ui"
	"mvncli/internal/ui/textutil"
	"mvncli/internal/ui/theme"

	"github.com/charmbracelet/bubbles/key"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// maxLogLines bounds the output kept for one build.
const maxLogLines = 2000

// buildLog runs the build for one project and streams its output. Output
// arrives on the job goroutine and is applied through Post, so all state
// below is only touched on the dispatch goroutine.
type buildLog struct {
	env     *Env
	project config.Project
	goals   []string

	lines   []string
	status  string
	failed  bool
	job     *pty.Job
	jobSize pty.Size
	span    oteltrace.Span
	started time.Time
}

func newBuildLog(env *Env, project config.Project, goals []string) *buildLog {
	return &buildLog{env: env, project: project, goals: goals}
}

func (b *buildLog) Title() string {
	return b.env.Catalog.Tf("BuildRunning", map[string]any{
		"Project": b.project.Name,
		"Goals":   strings.Join(b.goals, " "),
	})
}

func (b *buildLog) Render() string {
	cols, rows := b.env.size()
	b.follow(pty.Size{Rows: uint16(rows), Cols: uint16(cols)})
	var sb strings.Builder
	sb.WriteString(theme.Styles.Bold.Render(b.Title()))
	sb.WriteString("\n\n")

	// header, blank, title, blank ... blank, status, footer
	avail := max(0, rows-7)
	tail := b.lines
	if len(tail) > avail {
		tail = tail[len(tail)-avail:]
	}
	for _, l := range tail {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	switch {
	case b.status == "":
		sb.WriteString(theme.Styles.Help.Render(b.env.Catalog.T("BuildHint")))
	case b.failed:
		sb.WriteString(theme.Styles.Danger.Render(b.status))
	default:
		sb.WriteString(b.status)
	}
	return b.env.page(sb.String())
}

func (b *buildLog) OnMount(nav ui.Navigator) error {
	if b.job != nil || b.status != "" {
		return nil
	}
	name, args := b.env.Config.BuildArgs(b.goals...)
	ctx, span := b.env.Tracer.Start(context.Background(), "build.run", oteltrace.WithAttributes(
		attribute.String("build.project", b.project.Name),
		attribute.StringSlice("build.goals", b.goals),
		attribute.String("build.command", name),
	))
	b.span = span
	b.started = time.Now()

	cols, rows := b.env.size()
	size := pty.Size{Rows: uint16(rows), Cols: uint16(cols)}
	job, err := pty.Start(ctx, b.env.Runner, pty.Spec{
		Name: name,
		Args: args,
		Dir:  b.project.Path,
		Size: size,
	}, func(line string) {
		nav.Post(func() {
			b.append(line)
			nav.Redraw()
		})
	})
	if err != nil {
		b.env.Log.Warn("build did not start", "project", b.project.Name, "err", err)
		b.finish(err, true)
		nav.Redraw()
		return nil
	}
	b.job = job
	b.jobSize = size
	b.env.Log.Info("build started", "project", b.project.Name, "goals", b.goals)

	nav.Go(func() {
		err := job.Wait()
		nav.Post(func() {
			b.finish(err, false)
			nav.Redraw()
		})
	})
	return nil
}

func (b *buildLog) OnUnmount(ui.Navigator) error {
	if b.job != nil {
		b.job.Stop()
	}
	return nil
}

func (b *buildLog) OnInput(chunk string, nav ui.Navigator) error {
	if key.Matches(term.Decode(chunk), backKey) {
		return nav.Back()
	}
	return nil
}

// follow keeps the build's terminal the size of ours. Render runs on every
// resize, so this is where a change is noticed.
func (b *buildLog) follow(size pty.Size) {
	if b.job == nil || b.status != "" || size == b.jobSize {
		return
	}
	b.jobSize = size
	if err := b.job.Resize(size); err != nil {
		b.env.Log.Debug("resize build terminal", "err", err)
	}
}

func (b *buildLog) append(line string) {
	b.lines = append(b.lines, textutil.Sanitize(line))
	if n := len(b.lines); n > maxLogLines {
		b.lines = append(b.lines[:0:0], b.lines[n-maxLogLines:]...)
	}
}

// finish records the outcome. startErr marks a command that never ran.
func (b *buildLog) finish(err error, startErr bool) {
	c := b.env.Catalog
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		elapsed := time.Since(b.started).Round(10 * time.Millisecond)
		b.status = c.Tf("BuildSucceeded", map[string]any{"Elapsed": elapsed})
	case startErr:
		b.status = c.Tf("BuildError", map[string]any{"Error": err.Error()})
		b.failed = true
	case errors.As(err, &exitErr):
		b.status = c.Tf("BuildFailed", map[string]any{"Code": exitErr.ExitCode()})
		b.failed = true
	default:
		b.status = c.Tf("BuildError", map[string]any{"Error": err.Error()})
		b.failed = true
	}

	if b.span == nil {
		return
	}
	if b.job != nil {
		b.span.SetAttributes(attribute.Int("build.exit_code", b.job.ExitCode()))
	}
	if err != nil {
		b.span.RecordError(err)
		b.span.SetStatus(codes.Error, b.status)
	}
	b.span.End()
	b.span = nil
	b.env.Log.Info("build finished", "project", b.project.Name, "status", b.status)
}
