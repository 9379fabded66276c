package cli

import (
	"errors"

	"mvncli/internal/ui/selector"
)

// ExitCode maps a command outcome to the process exit status. A graceful
// quit, including SIGINT in the navigator, is 0. Everything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

// Quiet reports whether err is a user decision that needs no message.
func Quiet(err error) bool {
	return errors.Is(err, selector.ErrCanceled) || errors.Is(err, selector.ErrInterrupted)
}
