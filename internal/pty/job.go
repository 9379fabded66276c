package pty

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// maxLine bounds a single output line. A longer line is cut, the rest of it
// is dropped.
const maxLine = 64 * 1024

// Spec describes a command to run.
type Spec struct {
	Name string
	Args []string
	Dir  string
	Env  []string // Appended to the current environment
	Size Size
}

// Job is a running command whose output is delivered one line at a time.
type Job struct {
	runner Runner
	cmd    *exec.Cmd
	rwc    io.ReadWriteCloser
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Start runs spec with r and calls onLine for each output line, on the
// job's own goroutine, in order. Carriage returns and trailing newlines
// are removed. The command is killed when ctx is done or Stop is called.
func Start(ctx context.Context, r Runner, spec Spec, onLine func(string)) (*Job, error) {
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(cmd.Environ(), spec.Env...)
	}

	rwc, err := r.Start(ctx, cmd, spec.Size)
	if err != nil {
		cancel()
		return nil, err
	}
	j := &Job{runner: r, cmd: cmd, rwc: rwc, cancel: cancel, done: make(chan struct{})}
	go j.run(onLine)
	return j, nil
}

func (j *Job) run(onLine func(string)) {
	defer close(j.done)
	defer j.cancel()

	readErr := readLines(j.rwc, onLine)
	// A pty master reports EIO once the child side closes; that is the
	// normal end of output, not a failure.
	if readErr != nil && !isClosedPTY(readErr) {
		j.cancel()
	}
	waitErr := j.cmd.Wait()
	j.rwc.Close()

	j.mu.Lock()
	defer j.mu.Unlock()
	switch {
	case waitErr != nil:
		j.err = waitErr
	case readErr != nil && !isClosedPTY(readErr):
		j.err = readErr
	}
}

// readLines calls onLine for each line of r until r ends. io.EOF is a
// normal end and returns nil.
func readLines(r io.Reader, onLine func(string)) error {
	br := bufio.NewReaderSize(r, 4096)
	line := make([]byte, 0, 4096)
	pending := false
	emit := func() {
		if onLine != nil {
			onLine(strings.TrimRight(string(line), "\r"))
		}
		line, pending = line[:0], false
	}
	for {
		frag, more, err := br.ReadLine()
		if err != nil {
			if pending {
				emit()
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if room := maxLine - len(line); room > 0 {
			line = append(line, frag[:min(len(frag), room)]...)
		}
		pending = more
		if !more {
			emit()
		}
	}
}

// Done is closed once the command has exited and all output was delivered.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job ends and returns its error. A non-zero exit is
// an *exec.ExitError.
func (j *Job) Wait() error {
	<-j.done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// ExitCode returns the exit status, or -1 while running or when the
// process was killed.
func (j *Job) ExitCode() int {
	select {
	case <-j.done:
	default:
		return -1
	}
	if j.cmd.ProcessState == nil {
		return -1
	}
	return j.cmd.ProcessState.ExitCode()
}

// Stop kills the command. Safe to call after it exited.
func (j *Job) Stop() {
	j.cancel()
}

// Resize changes the terminal size the command sees.
func (j *Job) Resize(size Size) error {
	return j.runner.Resize(j.rwc, size)
}

func isClosedPTY(err error) bool {
	return errors.Is(err, errEIO) || errors.Is(err, os.ErrClosed)
}
