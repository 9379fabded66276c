//go:build !windows

package term

import (
	"os"
	"syscall"
)

// ResizeSignals returns the signals that announce a terminal size change.
func ResizeSignals() []os.Signal {
	return []os.Signal{syscall.SIGWINCH}
}
