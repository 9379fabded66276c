package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"mvncli/internal/term"

	"github.com/charmbracelet/bubbles/key"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// anonPrefix marks names generated by Open. Views registered under such a
// name are single-use and deregistered once left for good.
const anonPrefix = "__anon_"

// DefaultTransitionDelay is the pause between clearing the screen and
// painting the next view.
const DefaultTransitionDelay = 15 * time.Millisecond

// State is the manager lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateShuttingDown
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateShuttingDown:
		return "ShuttingDown"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithTracer sets the tracer used for navigation spans.
func WithTracer(t oteltrace.Tracer) Option {
	return func(m *Manager) { m.tracer = t }
}

// WithLabels sets the footer hint labels.
func WithLabels(l Labels) Option {
	return func(m *Manager) { m.labels = l }
}

// WithSignals replaces the process signal source.
func WithSignals(s term.Signals) Option {
	return func(m *Manager) { m.signals = s }
}

// WithTransitionDelay sets the pause between clear and draw on a view
// change. Zero disables the clear as well.
func WithTransitionDelay(d time.Duration) Option {
	return func(m *Manager) { m.transitionDelay = d }
}

// ShowOption modifies a Show call.
type ShowOption func(*showOptions)

type showOptions struct {
	replace bool
}

// WithReplace makes Show swap the current view without recording it in
// the history.
func WithReplace() ShowOption {
	return func(o *showOptions) { o.replace = true }
}

// Manager owns the terminal, the view registry, the current view and the
// navigation history. Input is dispatched on a single goroutine; hooks run
// to completion before the next chunk is handled.
type Manager struct {
	term            term.Terminal
	log             *slog.Logger
	tracer          oteltrace.Tracer
	signals         term.Signals
	labels          Labels
	transitionDelay time.Duration

	mu      sync.Mutex
	state   State
	views   map[string]View
	current string
	history History
	anonSeq int
	sub     *subscription
	done    chan struct{}
	err     error

	// drawMu keeps frames whole: one write at a time.
	drawMu sync.Mutex
}

// Ensure Manager implements Navigator.
var _ Navigator = (*Manager)(nil)

// NewManager creates an idle manager drawing on t.
func NewManager(t term.Terminal, opts ...Option) *Manager {
	m := &Manager{
		term:            t,
		log:             slog.New(slog.DiscardHandler),
		tracer:          noop.NewTracerProvider().Tracer(""),
		signals:         term.OSSignals{},
		labels:          DefaultLabels,
		transitionDelay: DefaultTransitionDelay,
		views:           make(map[string]View),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds v under name, replacing any view already registered there.
func (m *Manager) Register(name string, v View) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[name] = v
}

// RegisterAll registers every entry of views.
func (m *Manager) RegisterAll(views map[string]View) {
	for name, v := range views {
		m.Register(name, v)
	}
}

// Has reports whether name is registered.
func (m *Manager) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.views[name]
	return ok
}

// Current returns the name of the current view, or "" if none.
func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// History returns the names Back would return to, oldest first.
func (m *Manager) History() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.Names()
}

// State returns the lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the failure that ended the last session, or nil after a
// graceful shutdown.
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Start claims the terminal: raw input, alternate screen, cleared
// scrollback, hidden cursor, and input, resize and interrupt handling.
// The returned channel is closed once, when shutdown completes.
// Calling Start while running is a no-op that returns a closed channel.
// The session also ends when ctx is done.
func (m *Manager) Start(ctx context.Context) (<-chan struct{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateRunning || m.state == StateShuttingDown {
		closed := make(chan struct{})
		close(closed)
		return closed, nil
	}

	release, err := term.Acquire("navigator")
	if err != nil {
		return nil, err
	}
	restore, err := m.term.MakeRaw()
	if err != nil {
		release()
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	pump, err := term.NewPump(m.term.Input())
	if err != nil {
		_ = restore()
		release()
		return nil, fmt.Errorf("read input: %w", err)
	}
	if err := term.Claim(m.term); err != nil {
		m.log.Debug("claim screen", "err", err)
	}

	m.sub = newSubscription(m.signals, pump, restore, release)
	m.done = make(chan struct{})
	m.err = nil
	m.state = StateRunning
	m.log.Debug("started")

	go m.loop(ctx, m.sub)
	return m.done, nil
}

// loop handles one event at a time until the subscription is closed.
func (m *Manager) loop(ctx context.Context, sub *subscription) {
	for {
		select {
		case <-sub.stop:
			return
		case chunk, ok := <-sub.pump.C:
			if !ok {
				if err := sub.pump.Err(); err != nil {
					m.log.Warn("input closed", "err", err)
				}
				m.Shutdown()
				return
			}
			m.dispatch(chunk)
		case <-sub.resize:
			m.guard("", "Redraw", func() error {
				m.Redraw()
				return nil
			})
		case <-sub.interrupt:
			m.log.Debug("interrupt received")
			m.Shutdown()
			return
		case <-sub.wake:
			for _, fn := range sub.drain() {
				if m.State() != StateRunning {
					return
				}
				m.guard(m.Current(), "Post", func() error {
					fn()
					return nil
				})
			}
		case <-ctx.Done():
			m.Shutdown()
			return
		}
	}
}

// dispatch routes one raw chunk. Ctrl-C and q end the session and never
// reach the view. With no current view the chunk is dropped.
func (m *Manager) dispatch(chunk string) {
	if chunk == "" {
		return
	}
	if key.Matches(term.Decode(chunk), interruptBinding, quitBinding) {
		m.Shutdown()
		return
	}

	m.mu.Lock()
	name := m.current
	v := m.views[name]
	m.mu.Unlock()

	h, ok := v.(InputHandler)
	if !ok {
		return
	}
	m.guard(name, "OnInput", func() error {
		return h.OnInput(chunk, m)
	})
}

// guard runs fn and turns an escaped error or panic into a fatal failure.
func (m *Manager) guard(view, hook string, fn func() error) {
	if err := m.runHook(view, hook, fn); err != nil {
		m.fail(err)
	}
}

func (m *Manager) runHook(view, hook string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HookError{View: view, Hook: hook, Err: &PanicError{Value: r, Stack: debug.Stack()}}
		}
	}()
	if err := fn(); err != nil {
		return &HookError{View: view, Hook: hook, Err: err}
	}
	return nil
}

// fail records err as the session outcome and shuts down.
func (m *Manager) fail(err error) {
	m.mu.Lock()
	if m.err == nil {
		m.err = err
	}
	m.mu.Unlock()
	m.log.Error("view failed", "err", err)
	m.Shutdown()
}

// Show makes name the current view. The previous view is unmounted first,
// and pushed onto the history unless WithReplace is given. The new view is
// painted before its OnMount runs. While the manager runs, Show belongs
// on the dispatch goroutine; see Enter.
func (m *Manager) Show(name string, opts ...ShowOption) error {
	var o showOptions
	for _, opt := range opts {
		opt(&o)
	}
	_, span := m.tracer.Start(context.Background(), "ui.show", oteltrace.WithAttributes(
		attribute.String("ui.view", name),
		attribute.Bool("ui.replace", o.replace),
	))
	defer span.End()

	m.mu.Lock()
	next, ok := m.views[name]
	prevName := m.current
	prev := m.views[prevName]
	m.mu.Unlock()
	if !ok {
		err := unknownView(name)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if u, ok := prev.(Unmounter); ok && prevName != "" {
		if err := m.runHook(prevName, "OnUnmount", func() error { return u.OnUnmount(m) }); err != nil {
			return m.abort(span, err)
		}
	}

	m.mu.Lock()
	if !o.replace && prevName != "" && prevName != name {
		m.history.Push(prevName)
	}
	dropped := m.history.TruncateAt(name)
	if prevName != name && !m.history.Contains(prevName) {
		dropped = append(dropped, prevName)
	}
	m.current = name
	m.forgetAnonymous(dropped)
	depth := m.history.Len()
	m.mu.Unlock()

	m.log.Debug("show", "view", name, "from", prevName, "replace", o.replace, "history", depth)
	if prevName != "" {
		m.pace()
	}
	m.RedrawView(next)

	if mo, ok := next.(Mounter); ok {
		if err := m.runHook(name, "OnMount", func() error { return mo.OnMount(m) }); err != nil {
			return m.abort(span, err)
		}
	}
	return nil
}

// forgetAnonymous deregisters generated views that can no longer be
// reached. Must be called with m.mu held.
func (m *Manager) forgetAnonymous(names []string) {
	for _, n := range names {
		if strings.HasPrefix(n, anonPrefix) && n != m.current && !m.history.Contains(n) {
			delete(m.views, n)
		}
	}
}

func (m *Manager) abort(span oteltrace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	m.fail(err)
	return err
}

// pace clears the screen and waits briefly before the next frame.
func (m *Manager) pace() {
	if m.transitionDelay <= 0 || m.State() != StateRunning {
		return
	}
	m.drawMu.Lock()
	err := term.Clear(m.term)
	m.drawMu.Unlock()
	if err != nil {
		m.log.Debug("clear", "err", err)
	}
	time.Sleep(m.transitionDelay)
}

// Back returns to the most recent history entry. With an empty history it
// does nothing. An anonymous view left this way is deregistered.
func (m *Manager) Back() error {
	_, span := m.tracer.Start(context.Background(), "ui.back")
	defer span.End()

	m.mu.Lock()
	prev, ok := m.history.Pop()
	m.mu.Unlock()
	if !ok {
		return nil
	}
	span.SetAttributes(attribute.String("ui.view", prev))
	m.log.Debug("back", "view", prev)
	return m.Show(prev, WithReplace())
}

// Open registers v under a generated name, shows it and returns the name.
func (m *Manager) Open(v View) (string, error) {
	m.mu.Lock()
	m.anonSeq++
	name := fmt.Sprintf("%s%d", anonPrefix, m.anonSeq)
	m.views[name] = v
	m.mu.Unlock()

	_, span := m.tracer.Start(context.Background(), "ui.open", oteltrace.WithAttributes(
		attribute.String("ui.view", name),
	))
	defer span.End()
	m.log.Debug("open", "view", name)
	return name, m.Show(name)
}

// Redraw paints the current view. No-op without a current view.
func (m *Manager) Redraw() {
	m.mu.Lock()
	v := m.views[m.current]
	m.mu.Unlock()
	if v == nil {
		return
	}
	m.RedrawView(v)
}

// RedrawView paints v as one frame: body, footer, exactly the terminal
// size, written in a single write. Nothing is drawn once shutdown began.
func (m *Manager) RedrawView(v View) {
	if v == nil {
		return
	}
	m.mu.Lock()
	if m.state == StateShuttingDown || m.state == StateStopped {
		m.mu.Unlock()
		return
	}
	hasHistory := m.history.Len() > 0
	labels := m.labels
	m.mu.Unlock()

	cols, rows := m.term.Size()
	footer := RenderFooter(FooterHints(v, hasHistory, labels), cols)
	frame := ComposeFrame(v.Render(), footer, cols, rows)

	m.drawMu.Lock()
	defer m.drawMu.Unlock()
	if _, err := io.WriteString(m.term, frame); err != nil {
		m.log.Debug("write frame", "err", err)
	}
}

// Post runs fn on the dispatch goroutine after the event in progress.
// Ignored when the manager is not running.
func (m *Manager) Post(fn func()) {
	m.mu.Lock()
	sub := m.sub
	m.mu.Unlock()
	if sub == nil {
		return
	}
	sub.post(fn)
}

// Enter shows name from outside the dispatch goroutine, typically the
// first view right after Start. The Show runs on the dispatch goroutine
// like any hook, so input waits for its OnMount, and a failure or panic
// while painting ends the session with the terminal restored.
func (m *Manager) Enter(name string, opts ...ShowOption) error {
	m.mu.Lock()
	sub := m.sub
	m.mu.Unlock()
	if sub == nil || !sub.post(func() {
		m.guard(name, "Show", func() error { return m.Show(name, opts...) })
	}) {
		return ErrNotRunning
	}
	return nil
}

// Go runs fn on a new goroutine. A panic in fn ends the session the same
// way a failing hook does, so the terminal is restored first.
func (m *Manager) Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				m.fail(&HookError{Hook: "Go", Err: &PanicError{Value: r, Stack: debug.Stack()}})
			}
		}()
		fn()
	}()
}

// Shutdown gives the terminal back: input mode, screen buffer, cursor,
// and every handler installed by Start. Safe to call more than once and
// before Start.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	if m.state != StateRunning {
		m.mu.Unlock()
		return
	}
	m.state = StateShuttingDown
	sub := m.sub
	m.sub = nil
	done := m.done
	m.mu.Unlock()

	m.drawMu.Lock()
	err := sub.close(m.term)
	m.drawMu.Unlock()
	if err != nil {
		m.log.Debug("terminal restore incomplete", "err", err)
	}

	m.mu.Lock()
	m.state = StateStopped
	m.mu.Unlock()
	m.log.Debug("stopped")
	close(done)
}
