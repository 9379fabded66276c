// Package pty runs external commands (the build) with their output
// captured line by line, under a pseudo-terminal when one is available so
// tools keep their interactive formatting.
package pty

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// Size represents terminal dimensions in rows and columns.
type Size struct {
	Rows uint16
	Cols uint16
}

// Runner starts a command with its output connected to the returned
// reader. Implementations can be swapped (a pseudo-terminal, plain pipes,
// or a mock for tests). The command is started but never waited on.
type Runner interface {
	Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error)
	Resize(rwc io.ReadWriteCloser, size Size) error
}

// CreackPTY implements Runner using github.com/creack/pty.
type CreackPTY struct{}

// Ensure CreackPTY implements Runner.
var _ Runner = (*CreackPTY)(nil)

// Start implements Runner. Spawns cmd in a PTY with the given size.
func (c *CreackPTY) Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	ws := &pty.Winsize{Rows: size.Rows, Cols: size.Cols}
	f, err := pty.StartWithSize(cmd, ws)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Resize implements Runner. The rwc must be the *os.File returned by
// Start; other types are a no-op.
func (c *CreackPTY) Resize(rwc io.ReadWriteCloser, size Size) error {
	f, ok := rwc.(*os.File)
	if !ok {
		return nil
	}
	return pty.Setsize(f, &pty.Winsize{Rows: size.Rows, Cols: size.Cols})
}

// Pipes implements Runner with an OS pipe shared by stdout and stderr.
// Used where pseudo-terminals are unsupported.
type Pipes struct{}

var _ Runner = (*Pipes)(nil)

// Start implements Runner.
func (Pipes) Start(ctx context.Context, cmd *exec.Cmd, size Size) (io.ReadWriteCloser, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	cmd.Stdout = w
	cmd.Stderr = w
	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return nil, err
	}
	// The child holds its own copy; ours must go so reads end at exit.
	w.Close()
	return r, nil
}

// Resize implements Runner. Pipes have no size.
func (Pipes) Resize(io.ReadWriteCloser, Size) error { return nil }

// Default returns the pseudo-terminal runner where supported, else pipes.
func Default() Runner {
	if supported {
		return &CreackPTY{}
	}
	return Pipes{}
}
