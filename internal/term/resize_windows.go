//go:build windows

package term

import "os"

// ResizeSignals returns nil: Windows consoles have no resize signal.
func ResizeSignals() []os.Signal {
	return nil
}
