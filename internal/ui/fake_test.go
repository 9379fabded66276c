package ui

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"mvncli/internal/term"
	"mvncli/internal/term/termtest"
)

// lastFrame returns the rows of the most recent frame written to f.
func lastFrame(f *termtest.Fake) []string {
	out := f.Output()
	i := strings.LastIndex(out, term.CursorHome)
	if i < 0 {
		return nil
	}
	return strings.Split(out[i+len(term.CursorHome):], lineSep)
}

// fakeSignals records subscriptions and delivers signals on demand.
type fakeSignals struct {
	mu   sync.Mutex
	subs map[chan<- os.Signal][]os.Signal
}

func newFakeSignals() *fakeSignals {
	return &fakeSignals{subs: make(map[chan<- os.Signal][]os.Signal)}
}

func (s *fakeSignals) Notify(c chan<- os.Signal, sig ...os.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[c] = append(s.subs[c], sig...)
}

func (s *fakeSignals) Stop(c chan<- os.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, c)
}

func (s *fakeSignals) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *fakeSignals) send(sig os.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c, sigs := range s.subs {
		for _, want := range sigs {
			if want == sig {
				select {
				case c <- sig:
				default:
				}
			}
		}
	}
}

// recorder collects hook events in order.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// recordingScreen returns a Screen that logs render, input, mount and
// unmount under name.
func recordingScreen(name string, rec *recorder) *Screen {
	return &Screen{
		Name: name,
		Content: func() string {
			rec.add("render " + name)
			return "view " + name
		},
		Input: func(chunk string, _ Navigator) error {
			rec.add("input " + name + " " + chunk)
			return nil
		},
		Mount: func(Navigator) error {
			rec.add("mount " + name)
			return nil
		},
		Unmount: func(Navigator) error {
			rec.add("unmount " + name)
			return nil
		},
	}
}

func waitClosed(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not end")
	}
}
