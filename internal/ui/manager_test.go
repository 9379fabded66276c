package ui

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"strings"
	"testing"
	"time"

	"mvncli/internal/term"
	"mvncli/internal/term/termtest"
	"mvncli/internal/ui/textutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/atomic"
)

func newTestManager(t *testing.T, opts ...Option) (*Manager, *termtest.Fake, *fakeSignals) {
	t.Helper()
	ft := termtest.New(t, 40, 10)
	sigs := newFakeSignals()
	opts = append([]Option{WithSignals(sigs), WithTransitionDelay(0)}, opts...)
	m := NewManager(ft, opts...)
	t.Cleanup(m.Shutdown)
	return m, ft, sigs
}

func startManager(t *testing.T, m *Manager) <-chan struct{} {
	t.Helper()
	done, err := m.Start(context.Background())
	require.NoError(t, err)
	return done
}

func TestManager_ShowUnknownViewKeepsCurrent(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Register("a", &Screen{Content: func() string { return "a" }})

	require.NoError(t, m.Show("a"))
	err := m.Show("b")
	require.ErrorIs(t, err, ErrUnknownView)
	assert.Contains(t, err.Error(), `"b"`)
	assert.Equal(t, "a", m.Current())
	assert.Empty(t, m.History())
	assert.NoError(t, m.Err())
}

func TestManager_ShowOrdersHooks(t *testing.T) {
	m, _, _ := newTestManager(t)
	rec := &recorder{}
	m.RegisterAll(map[string]View{
		"a": recordingScreen("a", rec),
		"b": recordingScreen("b", rec),
	})

	require.NoError(t, m.Show("a"))
	require.NoError(t, m.Show("b"))

	assert.Equal(t, []string{
		"render a", "mount a",
		"unmount a", "render b", "mount b",
	}, rec.list())
	assert.Equal(t, []string{"a"}, m.History())
}

func TestManager_ShowReplaceDoesNotPush(t *testing.T) {
	m, _, _ := newTestManager(t)
	rec := &recorder{}
	m.Register("a", recordingScreen("a", rec))
	m.Register("b", recordingScreen("b", rec))

	require.NoError(t, m.Show("a"))
	require.NoError(t, m.Show("b", WithReplace()))
	assert.Equal(t, "b", m.Current())
	assert.Empty(t, m.History())
}

func TestManager_ShowHistoryEntryTruncates(t *testing.T) {
	m, _, _ := newTestManager(t)
	for _, n := range []string{"a", "b", "c"} {
		m.Register(n, &Screen{Name: n})
		require.NoError(t, m.Show(n))
	}
	require.Equal(t, []string{"a", "b"}, m.History())

	require.NoError(t, m.Show("a"))
	assert.Equal(t, "a", m.Current())
	assert.Empty(t, m.History())
}

func TestManager_BackOnEmptyHistoryIsNoop(t *testing.T) {
	m, _, _ := newTestManager(t)
	rec := &recorder{}
	m.Register("a", recordingScreen("a", rec))
	require.NoError(t, m.Show("a"))
	before := rec.list()

	require.NoError(t, m.Back())
	assert.Equal(t, "a", m.Current())
	assert.Empty(t, m.History())
	assert.Equal(t, before, rec.list())

	// Also before anything was shown.
	empty, _, _ := newTestManager(t)
	require.NoError(t, empty.Back())
	assert.Equal(t, "", empty.Current())
}

func TestManager_BackReturnsToPrevious(t *testing.T) {
	m, _, _ := newTestManager(t)
	rec := &recorder{}
	m.Register("a", recordingScreen("a", rec))
	m.Register("b", recordingScreen("b", rec))

	require.NoError(t, m.Show("a"))
	require.NoError(t, m.Show("b"))
	require.NoError(t, m.Back())

	assert.Equal(t, "a", m.Current())
	assert.Empty(t, m.History())
	assert.True(t, m.Has("b"), "named views stay registered")
}

func TestManager_OpenIsRemovedAfterBack(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Register("a", &Screen{Name: "a"})
	require.NoError(t, m.Show("a"))

	name, err := m.Open(&Screen{Name: "log"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, anonPrefix))
	assert.Equal(t, name, m.Current())
	assert.Equal(t, []string{"a"}, m.History())
	assert.True(t, m.Has(name))

	require.NoError(t, m.Back())
	assert.Equal(t, "a", m.Current())
	assert.False(t, m.Has(name))

	second, err := m.Open(&Screen{Name: "log"})
	require.NoError(t, err)
	assert.NotEqual(t, name, second, "generated names are never reused")
}

func TestManager_OpenedViewSurvivesWhileInHistory(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Register("a", &Screen{Name: "a"})
	m.Register("b", &Screen{Name: "b"})
	require.NoError(t, m.Show("a"))

	name, err := m.Open(&Screen{Name: "goals"})
	require.NoError(t, err)
	require.NoError(t, m.Show("b"))
	assert.True(t, m.Has(name))

	require.NoError(t, m.Back())
	assert.Equal(t, name, m.Current())
	require.NoError(t, m.Back())
	assert.Equal(t, "a", m.Current())
	assert.False(t, m.Has(name))
}

func TestManager_HistoryNeverContainsCurrent(t *testing.T) {
	m, _, _ := newTestManager(t)
	names := []string{"a", "b", "c", "d"}
	for _, n := range names {
		m.Register(n, &Screen{Name: n})
	}

	r := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		switch op := r.IntN(4); op {
		case 0:
			require.NoError(t, m.Show(names[r.IntN(len(names))]))
		case 1:
			require.NoError(t, m.Show(names[r.IntN(len(names))], WithReplace()))
		case 2:
			require.NoError(t, m.Back())
		case 3:
			_, err := m.Open(&Screen{})
			require.NoError(t, err)
		}

		current := m.Current()
		history := m.History()
		require.NotContains(t, history, current, "step %d", i)

		m.mu.Lock()
		for name := range m.views {
			if strings.HasPrefix(name, anonPrefix) {
				require.True(t, name == current || m.history.Contains(name),
					"step %d: unreachable anonymous view %s", i, name)
			}
		}
		m.mu.Unlock()
	}
}

func TestManager_ShutdownBeforeStartAndTwice(t *testing.T) {
	m, ft, sigs := newTestManager(t)
	require.NotPanics(t, m.Shutdown)
	assert.Equal(t, StateIdle, m.State())

	baseline := sigs.count()
	done := startManager(t, m)
	assert.Equal(t, StateRunning, m.State())
	assert.Greater(t, sigs.count(), baseline)
	assert.True(t, ft.Raw())
	assert.True(t, strings.HasPrefix(ft.Output(), term.EnterAltScreen+term.ClearScrollback+term.HideCursor))

	m.Shutdown()
	m.Shutdown()
	waitClosed(t, done)

	assert.Equal(t, StateStopped, m.State())
	assert.Equal(t, baseline, sigs.count())
	assert.False(t, ft.Raw())
	assert.Equal(t, 1, ft.Restores())
	assert.True(t, strings.HasSuffix(ft.Output(), term.ShowCursor+term.ClearScreen+term.CursorHome+term.ExitAltScreen))
	assert.NoError(t, m.Err())
	assert.Equal(t, "", term.Owner())
}

func TestManager_StartWhileRunning(t *testing.T) {
	m, _, _ := newTestManager(t)
	first := startManager(t, m)

	second, err := m.Start(context.Background())
	require.NoError(t, err)
	select {
	case <-second:
	default:
		t.Fatal("second Start should return a closed channel")
	}
	select {
	case <-first:
		t.Fatal("first session ended early")
	default:
	}
	assert.Equal(t, StateRunning, m.State())
}

func TestManager_RestartAfterStop(t *testing.T) {
	m, _, _ := newTestManager(t)
	done := startManager(t, m)
	m.Shutdown()
	waitClosed(t, done)

	done = startManager(t, m)
	assert.Equal(t, StateRunning, m.State())
	m.Shutdown()
	waitClosed(t, done)
}

func TestManager_StartWhileTerminalOwned(t *testing.T) {
	release, err := term.Acquire("prompt")
	require.NoError(t, err)
	defer release()

	m, ft, _ := newTestManager(t)
	_, err = m.Start(context.Background())
	require.ErrorIs(t, err, term.ErrBusy)
	assert.Equal(t, StateIdle, m.State())
	assert.False(t, ft.Raw())
}

func TestManager_InputReachesCurrentView(t *testing.T) {
	m, ft, _ := newTestManager(t)
	rec := &recorder{}
	m.Register("a", recordingScreen("a", rec))
	startManager(t, m)
	require.NoError(t, m.Show("a"))
	ft.Type(t, "x")
	ft.Type(t, term.ArrowDown)

	require.Eventually(t, func() bool {
		return len(rec.list()) >= 4
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"render a", "mount a", "input a x", "input a " + term.ArrowDown}, rec.list())
}

func TestManager_GlobalQuitKeys(t *testing.T) {
	for _, chunk := range []string{"q", "Q", "q\r", "q\n", term.CtrlC} {
		t.Run(strings.ReplaceAll(chunk, "\x03", "ctrl-c"), func(t *testing.T) {
			m, ft, sigs := newTestManager(t)
			rec := &recorder{}
			m.Register("a", recordingScreen("a", rec))
			done := startManager(t, m)
			require.NoError(t, m.Show("a"))

			ft.Type(t, chunk)
			waitClosed(t, done)

			for _, e := range rec.list() {
				assert.False(t, strings.HasPrefix(e, "input"), "quit key reached the view: %s", e)
			}
			assert.NoError(t, m.Err())
			assert.Equal(t, 0, sigs.count())
		})
	}
}

func TestManager_InputWithoutViewIsDropped(t *testing.T) {
	m, ft, _ := newTestManager(t)
	done := startManager(t, m)

	ft.Type(t, "x")
	ft.Type(t, term.ArrowUp)
	assert.Equal(t, StateRunning, m.State())
	assert.NoError(t, m.Err())
	select {
	case <-done:
		t.Fatal("session ended on input without a view")
	default:
	}
}

func TestManager_FrameFillsTerminal(t *testing.T) {
	m, ft, _ := newTestManager(t)
	m.Register("a", &Screen{
		Content: func() string {
			return "\x1b[1mbold title\x1b[0m\n" + strings.Repeat("x", 100) + "\n日本語テキスト\n"
		},
		Caps: []Capability{CapSelect},
	})
	startManager(t, m)
	require.NoError(t, m.Show("a"))

	frame := lastFrame(ft)
	require.Len(t, frame, 10)
	for i, line := range frame {
		assert.Equal(t, 40, textutil.VisibleWidth(line), "row %d", i)
	}
	assert.Contains(t, textutil.Strip(frame[9]), "Enter: select")
}

func TestManager_HookErrorEndsSession(t *testing.T) {
	boom := errors.New("boom")
	m, ft, sigs := newTestManager(t)
	m.Register("a", &Screen{Input: func(string, Navigator) error { return boom }})
	done := startManager(t, m)
	require.NoError(t, m.Show("a"))

	ft.Type(t, "x")
	waitClosed(t, done)

	err := m.Err()
	require.ErrorIs(t, err, boom)
	var he *HookError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "a", he.View)
	assert.Equal(t, "OnInput", he.Hook)
	assert.False(t, ft.Raw())
	assert.Equal(t, 0, sigs.count())
}

func TestManager_HookPanicEndsSession(t *testing.T) {
	m, ft, _ := newTestManager(t)
	m.Register("a", &Screen{Input: func(string, Navigator) error { panic("kaboom") }})
	done := startManager(t, m)
	require.NoError(t, m.Show("a"))

	ft.Type(t, "x")
	waitClosed(t, done)

	var pe *PanicError
	require.ErrorAs(t, m.Err(), &pe)
	assert.Equal(t, "kaboom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
	assert.True(t, strings.HasSuffix(ft.Output(), term.ExitAltScreen))
}

func TestManager_MountErrorIsReturnedAndFatal(t *testing.T) {
	boom := errors.New("mount failed")
	m, _, _ := newTestManager(t)
	m.Register("a", &Screen{Mount: func(Navigator) error { return boom }})
	done := startManager(t, m)

	err := m.Show("a")
	require.ErrorIs(t, err, boom)
	waitClosed(t, done)
	require.ErrorIs(t, m.Err(), boom)
}

func TestManager_InterruptSignal(t *testing.T) {
	m, _, sigs := newTestManager(t)
	done := startManager(t, m)

	sigs.send(os.Interrupt)
	waitClosed(t, done)
	assert.NoError(t, m.Err())
	assert.Equal(t, 0, sigs.count())
}

func TestManager_ResizeRedraws(t *testing.T) {
	resize := term.ResizeSignals()
	if len(resize) == 0 {
		t.Skip("no resize signal on this platform")
	}
	m, ft, sigs := newTestManager(t)
	m.Register("a", &Screen{Content: func() string { return "a" }})
	startManager(t, m)
	require.NoError(t, m.Show("a"))

	ft.SetSize(20, 5)
	before := ft.Writes()
	sigs.send(resize[0])

	require.Eventually(t, func() bool { return ft.Writes() > before }, 2*time.Second, 5*time.Millisecond)
	frame := lastFrame(ft)
	require.Len(t, frame, 5)
	assert.Equal(t, 20, textutil.VisibleWidth(frame[0]))
}

func TestManager_PostRunsOnDispatchLoop(t *testing.T) {
	m, _, _ := newTestManager(t)

	// Dropped when not running.
	m.Post(func() { t.Error("posted before start") })

	startManager(t, m)
	ran := make(chan int, 3)
	for i := 0; i < 3; i++ {
		m.Post(func() { ran <- i })
	}
	for want := 0; want < 3; want++ {
		select {
		case got := <-ran:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatal("posted func did not run")
		}
	}
}

func TestManager_GoPanicEndsSession(t *testing.T) {
	m, _, _ := newTestManager(t)
	done := startManager(t, m)

	m.Go(func() { panic("background") })
	waitClosed(t, done)

	var he *HookError
	require.ErrorAs(t, m.Err(), &he)
	assert.Equal(t, "Go", he.Hook)
}

func TestManager_ContextCancelEndsSession(t *testing.T) {
	m, _, _ := newTestManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	done, err := m.Start(ctx)
	require.NoError(t, err)

	cancel()
	waitClosed(t, done)
	assert.NoError(t, m.Err())
}

func TestManager_InputEOFEndsSession(t *testing.T) {
	m, ft, _ := newTestManager(t)
	done := startManager(t, m)

	require.NoError(t, ft.CloseInput())
	waitClosed(t, done)
	assert.Equal(t, StateStopped, m.State())
}

func TestManager_NavigationSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	m, _, _ := newTestManager(t, WithTracer(tp.Tracer("test")))
	m.Register("a", &Screen{})
	m.Register("b", &Screen{})

	require.NoError(t, m.Show("a"))
	require.NoError(t, m.Show("b"))
	require.NoError(t, m.Back())
	require.Error(t, m.Show("missing"))

	spans := rec.Ended()
	var names []string
	for _, s := range spans {
		names = append(names, s.Name())
	}
	// Back's inner show ends before back itself.
	assert.Equal(t, []string{"ui.show", "ui.show", "ui.show", "ui.back", "ui.show"}, names)

	last := spans[len(spans)-1]
	assert.Equal(t, codes.Error, last.Status().Code)
	var view string
	for _, kv := range last.Attributes() {
		if kv.Key == "ui.view" {
			view = kv.Value.AsString()
		}
	}
	assert.Equal(t, "missing", view)
}

func TestManager_EnterRenderPanicRestoresTerminal(t *testing.T) {
	m, ft, sigs := newTestManager(t)
	m.Register("a", &Screen{Content: func() string { panic("render broke") }})
	done := startManager(t, m)

	require.NoError(t, m.Enter("a"))
	waitClosed(t, done)

	var pe *PanicError
	require.ErrorAs(t, m.Err(), &pe)
	assert.Equal(t, "render broke", pe.Value)
	var he *HookError
	require.ErrorAs(t, m.Err(), &he)
	assert.Equal(t, "a", he.View)
	assert.Equal(t, StateStopped, m.State())
	assert.False(t, ft.Raw())
	assert.Equal(t, 0, sigs.count())
	assert.True(t, strings.HasSuffix(ft.Output(), term.ExitAltScreen))
	assert.Equal(t, "", term.Owner())
}

func TestManager_EnterMountFinishesBeforeInput(t *testing.T) {
	m, ft, _ := newTestManager(t)
	var mounting atomic.Bool
	rec := &recorder{}
	m.Register("a", &Screen{
		Mount: func(Navigator) error {
			mounting.Store(true)
			defer mounting.Store(false)
			time.Sleep(200 * time.Millisecond)
			return nil
		},
		Input: func(chunk string, _ Navigator) error {
			if mounting.Load() {
				rec.add("input during mount")
			} else {
				rec.add("input " + chunk)
			}
			return nil
		},
	})
	startManager(t, m)

	require.NoError(t, m.Enter("a"))
	require.Eventually(t, mounting.Load, time.Second, time.Millisecond)
	ft.Type(t, "x")

	require.Eventually(t, func() bool { return len(rec.list()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"input x"}, rec.list())
	assert.Equal(t, "a", m.Current())
}

func TestManager_EnterUnknownViewEndsSession(t *testing.T) {
	m, ft, _ := newTestManager(t)
	done := startManager(t, m)

	require.NoError(t, m.Enter("missing"))
	waitClosed(t, done)

	require.ErrorIs(t, m.Err(), ErrUnknownView)
	assert.False(t, ft.Raw())
}

func TestManager_EnterNeedsRunningManager(t *testing.T) {
	m, _, _ := newTestManager(t)
	m.Register("a", &Screen{})
	require.ErrorIs(t, m.Enter("a"), ErrNotRunning)

	done := startManager(t, m)
	m.Shutdown()
	waitClosed(t, done)
	require.ErrorIs(t, m.Enter("a"), ErrNotRunning)
}
