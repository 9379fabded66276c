// Package termtest provides an in-memory term.Terminal for tests.
package termtest

import (
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	"mvncli/internal/term"
)

// Fake is an in-memory terminal. Keystrokes sent with Type or Feed arrive
// on Input through a pipe, one chunk per write.
//
// Every Input call after the first starts a new pipe and closes the old
// one, so a reader left over from a stopped navigator sees EOF instead of
// taking keystrokes meant for the next one.
type Fake struct {
	mu       sync.Mutex
	out      bytes.Buffer
	writes   int
	cols     int
	rows     int
	raw      bool
	restores int

	r      *io.PipeReader
	w      *io.PipeWriter
	handed bool
}

var _ term.Terminal = (*Fake)(nil)

// New returns a cols x rows fake whose input is closed when t ends.
func New(t testing.TB, cols, rows int) *Fake {
	r, w := io.Pipe()
	f := &Fake{cols: cols, rows: rows, r: r, w: w}
	t.Cleanup(func() { f.CloseInput() })
	return f
}

func (f *Fake) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	return f.out.Write(p)
}

func (f *Fake) Input() io.Reader {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.handed {
		f.w.Close()
		f.r, f.w = io.Pipe()
	}
	f.handed = true
	return f.r
}

func (f *Fake) writer() *io.PipeWriter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.w
}

func (f *Fake) Size() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cols, f.rows
}

// SetSize changes what Size reports.
func (f *Fake) SetSize(cols, rows int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cols, f.rows = cols, rows
}

func (f *Fake) MakeRaw() (func() error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.raw = true
	return func() error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.raw = false
		f.restores++
		return nil
	}, nil
}

// Raw reports whether raw mode is on.
func (f *Fake) Raw() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.raw
}

// Restores counts calls to restore functions returned by MakeRaw.
func (f *Fake) Restores() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.restores
}

// Output returns everything written so far.
func (f *Fake) Output() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.String()
}

// Writes counts Write calls.
func (f *Fake) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// Type sends one chunk and waits until it was read.
func (f *Fake) Type(t testing.TB, chunk string) {
	t.Helper()
	done := make(chan error, 1)
	go func() {
		_, err := io.WriteString(f.writer(), chunk)
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("type %q: %v", chunk, err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("input %q was not consumed", chunk)
	}
}

// Feed sends chunks in order in the background.
func (f *Fake) Feed(chunks ...string) {
	go func() {
		for _, c := range chunks {
			if _, err := io.WriteString(f.writer(), c); err != nil {
				return
			}
		}
	}()
}

// CloseInput ends the input stream.
func (f *Fake) CloseInput() error {
	return f.writer().Close()
}
