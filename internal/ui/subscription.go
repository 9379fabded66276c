package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"mvncli/internal/term"
)

// subscription is everything Start installs: signal channels, the input
// pump, the posted-work queue and the handles that give the terminal back.
// close tears all of it down exactly once.
type subscription struct {
	signals   term.Signals
	interrupt chan os.Signal
	resize    chan os.Signal // nil where the platform has no resize signal
	pump      *term.Pump
	stop      chan struct{}

	restoreMode func() error
	release     func()

	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	closed bool
}

func newSubscription(signals term.Signals, pump *term.Pump, restoreMode func() error, release func()) *subscription {
	s := &subscription{
		signals:     signals,
		interrupt:   make(chan os.Signal, 1),
		pump:        pump,
		stop:        make(chan struct{}),
		restoreMode: restoreMode,
		release:     release,
		wake:        make(chan struct{}, 1),
	}
	signals.Notify(s.interrupt, os.Interrupt)
	if sigs := term.ResizeSignals(); len(sigs) > 0 {
		s.resize = make(chan os.Signal, 1)
		signals.Notify(s.resize, sigs...)
	}
	return s
}

// post queues fn for the dispatch goroutine. Never blocks.
func (s *subscription) post(fn func()) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.queue = append(s.queue, fn)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

func (s *subscription) drain() []func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.queue
	s.queue = nil
	return q
}

// close stops input and signal delivery and restores the terminal on w.
// Every restoration step runs even if an earlier one fails.
func (s *subscription) close(w io.Writer) error {
	s.mu.Lock()
	s.closed = true
	s.queue = nil
	s.mu.Unlock()

	close(s.stop)
	s.signals.Stop(s.interrupt)
	if s.resize != nil {
		s.signals.Stop(s.resize)
	}
	s.pump.Stop()

	var errs []error
	if err := s.restoreMode(); err != nil {
		errs = append(errs, fmt.Errorf("restore input mode: %w", err))
	}
	if err := term.Release(w); err != nil {
		errs = append(errs, fmt.Errorf("restore screen: %w", err))
	}
	s.release()
	return errors.Join(errs...)
}
