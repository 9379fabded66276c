package ui

import (
	"errors"
	"fmt"
)

// ErrUnknownView is returned by Show when the name is not registered.
// It is a usage error: the terminal state is untouched.
var ErrUnknownView = errors.New("unknown view")

// ErrNotRunning is returned by Enter when the manager was not started or
// has already shut down.
var ErrNotRunning = errors.New("navigator not running")

// HookError is a failure that escaped a view hook, either as a returned
// error or as a recovered panic. It ends the session.
type HookError struct {
	View string // Registered name of the view, if known
	Hook string // "OnInput", "OnMount", "OnUnmount", "Post", "Go", "Show"
	Err  error
}

func (e *HookError) Error() string {
	if e.View == "" {
		return fmt.Sprintf("ui: %s: %v", e.Hook, e.Err)
	}
	return fmt.Sprintf("ui: view %q: %s: %v", e.View, e.Hook, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func unknownView(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownView, name)
}
