package selector

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"mvncli/internal/term"
	"mvncli/internal/term/termtest"
	"mvncli/internal/ui/textutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, ft *termtest.Fake, options []string, opts Options) (Result, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return Run(ctx, ft, options, opts)
}

// lastFrame returns the rows of the most recent screen, without styling.
func lastFrame(out string) []string {
	home := term.ClearScreen + term.CursorHome
	i := strings.LastIndex(out, home)
	if i < 0 {
		return nil
	}
	frame := strings.TrimSuffix(out[i+len(home):], term.ShowCursor)
	return strings.Split(textutil.Strip(frame), "\r\n")
}

// signalStub delivers each signal to its subscribers, waiting until taken.
type signalStub struct {
	mu   sync.Mutex
	subs []chan<- os.Signal
}

func (s *signalStub) Notify(c chan<- os.Signal, _ ...os.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, c)
}

func (s *signalStub) Stop(c chan<- os.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub == c {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

func (s *signalStub) subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs) > 0
}

func (s *signalStub) send(t *testing.T, sig os.Signal) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.subs {
		select {
		case c <- sig:
		case <-time.After(time.Second):
			t.Errorf("signal %v not taken", sig)
		}
	}
}

func TestRun_SingleSelect(t *testing.T) {
	ft := termtest.New(t, 40, 24)
	ft.Feed(term.ArrowDown, term.ArrowDown, term.CR)

	res, err := run(t, ft, []string{"X", "Y", "Z"}, Options{Prompt: "Pick one"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Index)

	out := ft.Output()
	assert.True(t, strings.HasPrefix(out, term.HideCursor))
	assert.True(t, strings.HasSuffix(out, term.ShowCursor))
	assert.Contains(t, out, "Pick one")
	assert.Equal(t, 1, ft.Restores())
	assert.Equal(t, "", term.Owner())
}

func TestRun_MultiSelect(t *testing.T) {
	ft := termtest.New(t, 40, 24)
	ft.Feed(term.Space, term.ArrowDown, term.ArrowDown, term.Space, term.CR)

	res, err := run(t, ft, []string{"X", "Y", "Z"}, Options{Multi: true})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, res.Indices)
}

func TestRun_InitialSelection(t *testing.T) {
	ft := termtest.New(t, 40, 24)
	ft.Feed(term.Space, term.CR)

	res, err := run(t, ft, []string{"X", "Y", "Z"}, Options{Multi: true, Initial: 1, InitialSelected: []int{0, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, res.Indices)
}

func TestRun_Cancel(t *testing.T) {
	for _, k := range []string{term.Esc, "q"} {
		ft := termtest.New(t, 40, 24)
		ft.Feed(term.ArrowDown, k)

		_, err := run(t, ft, []string{"X", "Y"}, Options{})
		require.ErrorIs(t, err, ErrCanceled)
		assert.Equal(t, 1, ft.Restores())
	}
}

func TestRun_Interrupt(t *testing.T) {
	ft := termtest.New(t, 40, 24)
	ft.Feed(term.CtrlC)

	_, err := run(t, ft, []string{"X"}, Options{})
	require.ErrorIs(t, err, ErrInterrupted)
	assert.True(t, strings.HasSuffix(ft.Output(), term.ShowCursor))
	assert.Equal(t, "", term.Owner())
}

func TestRun_HeaderAndHiddenHelp(t *testing.T) {
	ft := termtest.New(t, 40, 24)
	ft.Feed(term.CR)

	_, err := run(t, ft, []string{"X"}, Options{Header: "Maven CLI", HideHelp: true})
	require.NoError(t, err)
	out := ft.Output()
	assert.Contains(t, out, "Maven CLI")
	assert.NotContains(t, out, DefaultHelp)
}

func TestRun_NoOptions(t *testing.T) {
	ft := termtest.New(t, 40, 24)
	_, err := run(t, ft, nil, Options{})
	require.ErrorIs(t, err, ErrNoOptions)
}

func TestRun_TerminalBusy(t *testing.T) {
	release, err := term.Acquire("navigator")
	require.NoError(t, err)
	defer release()

	ft := termtest.New(t, 40, 24)
	_, err = run(t, ft, []string{"X"}, Options{})
	require.ErrorIs(t, err, term.ErrBusy)
}

func TestRun_InputClosed(t *testing.T) {
	ft := termtest.New(t, 40, 24)
	require.NoError(t, ft.CloseInput())

	_, err := run(t, ft, []string{"X"}, Options{})
	require.ErrorIs(t, err, io.EOF)
}

func TestRun_ContextDone(t *testing.T) {
	ft := termtest.New(t, 40, 24)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, ft, []string{"X"}, Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_FitsShortTerminal(t *testing.T) {
	tests := []struct {
		name     string
		rows     int
		opts     Options
		wantRows int
		wantHelp bool
	}{
		{"header prompt and help fit", 8, Options{Header: "Maven CLI", Prompt: "Pick"}, 8, true},
		{"help dropped first", 6, Options{Header: "Maven CLI", Prompt: "Pick"}, 5, false},
		{"header dropped next", 4, Options{Header: "Maven CLI", Prompt: "Pick"}, 4, false},
		{"no prompt no help", 6, Options{Header: "Maven CLI", HideHelp: true}, 6, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := termtest.New(t, 40, tt.rows)
			ft.Feed(term.ArrowDown, term.ArrowDown, term.ArrowDown, term.ArrowDown, term.ArrowDown, term.CR)

			res, err := run(t, ft, numbered(8), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, 5, res.Index)

			frame := lastFrame(ft.Output())
			assert.Len(t, frame, tt.wantRows)
			assert.Contains(t, frame, "› ● F")
			assert.Equal(t, tt.wantHelp, strings.Contains(strings.Join(frame, "\n"), DefaultHelp))
		})
	}
}

func TestRun_ResizeBurstRedrawsOnce(t *testing.T) {
	sigs := term.ResizeSignals()
	if len(sigs) == 0 {
		t.Skip("no resize signal on this platform")
	}
	stub := &signalStub{}
	ft := termtest.New(t, 40, 24)
	draws := func() int { return strings.Count(ft.Output(), term.ClearScreen) }

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := run(t, ft, numbered(20), Options{Prompt: "Pick", Signals: stub})
		done <- outcome{res, err}
	}()
	require.Eventually(t, func() bool { return stub.subscribed() && draws() == 1 }, time.Second, 5*time.Millisecond)
	// Prompt, all twenty options, blank line, help.
	assert.Len(t, lastFrame(ft.Output()), 23)

	ft.SetSize(40, 8)
	for i := 0; i < 3; i++ {
		stub.send(t, sigs[0])
	}
	require.Eventually(t, func() bool { return draws() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(2 * ResizeDebounce)
	assert.Equal(t, 2, draws())

	frame := lastFrame(ft.Output())
	assert.Len(t, frame, 8, "page shrinks to five options")
	assert.Equal(t, "› ● A", frame[1])
	assert.Equal(t, "  ○ E", frame[5])

	ft.Feed(term.CR)
	got := <-done
	require.NoError(t, got.err)
	assert.Equal(t, 0, got.res.Index)
}
