package term

import (
	"io"
	"os"

	xterm "golang.org/x/term"
)

// Default dimensions used when the output is not a terminal.
const (
	DefaultCols = 80
	DefaultRows = 24
)

// Terminal is the device a navigator or prompt draws on.
// Implementations can be swapped (a real TTY, or a fake for tests).
type Terminal interface {
	io.Writer
	// Input returns the stream keystrokes arrive on.
	Input() io.Reader
	// Size returns the current columns and rows.
	Size() (cols, rows int)
	// MakeRaw puts the input into raw mode and returns the function that
	// restores the previous mode. It is a no-op when input is not a TTY.
	MakeRaw() (restore func() error, err error)
}

// TTY implements Terminal on a pair of files, normally os.Stdin/os.Stdout.
type TTY struct {
	in  *os.File
	out *os.File
}

// Ensure TTY implements Terminal.
var _ Terminal = (*TTY)(nil)

// NewTTY returns a Terminal reading from in and drawing to out.
func NewTTY(in, out *os.File) *TTY {
	return &TTY{in: in, out: out}
}

// Stdio returns the process terminal.
func Stdio() *TTY {
	return NewTTY(os.Stdin, os.Stdout)
}

// Write implements io.Writer.
func (t *TTY) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Input implements Terminal.
func (t *TTY) Input() io.Reader {
	return t.in
}

// IsTerminal reports whether the input is an interactive terminal.
func (t *TTY) IsTerminal() bool {
	return xterm.IsTerminal(int(t.in.Fd()))
}

// Size implements Terminal. Falls back to 80x24 when the size is unknown.
func (t *TTY) Size() (cols, rows int) {
	w, h, err := xterm.GetSize(int(t.out.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return DefaultCols, DefaultRows
	}
	return w, h
}

// MakeRaw implements Terminal.
func (t *TTY) MakeRaw() (func() error, error) {
	fd := int(t.in.Fd())
	if !xterm.IsTerminal(fd) {
		return func() error { return nil }, nil
	}
	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() error { return xterm.Restore(fd, state) }, nil
}
