package term

import (
	"errors"
	"fmt"

	"go.uber.org/atomic"
)

// ErrBusy is returned by Acquire while another component owns the terminal.
var ErrBusy = errors.New("terminal already in use")

var (
	owned     = atomic.NewBool(false)
	ownerName = atomic.NewString("")
)

// Acquire claims exclusive ownership of the process terminal for owner.
// Only one navigator or standalone prompt may hold raw mode at a time.
// The returned release function is safe to call more than once.
func Acquire(owner string) (release func(), err error) {
	if !owned.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("%w by %s", ErrBusy, ownerName.Load())
	}
	ownerName.Store(owner)
	released := atomic.NewBool(false)
	return func() {
		if released.CompareAndSwap(false, true) {
			ownerName.Store("")
			owned.Store(false)
		}
	}, nil
}

// Owner returns the name of the current owner, or "" when the terminal is free.
func Owner() string {
	return ownerName.Load()
}
