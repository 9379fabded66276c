package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"mvncli/internal/term"
	"mvncli/internal/ui/textutil"
)

// ResizeDebounce coalesces bursts of resize signals into one redraw.
const ResizeDebounce = 80 * time.Millisecond

var (
	// ErrCanceled is returned when the user leaves with Esc or q.
	ErrCanceled = errors.New("selection canceled")
	// ErrInterrupted is returned on Ctrl-C, after the terminal is restored.
	// Callers are expected to end the process.
	ErrInterrupted = errors.New("selection interrupted")
	// ErrNoOptions is returned when there is nothing to choose from.
	ErrNoOptions = errors.New("no options to select from")
)

// Options configures Run.
type Options struct {
	Multi           bool
	Initial         int   // Cursor position
	InitialSelected []int // Pre-checked entries, multi mode only
	Prompt          string
	Header          string // Printed above the prompt
	Help            string // Defaults to DefaultHelp
	HideHelp        bool

	Signals term.Signals // Defaults to term.OSSignals
	Logger  *slog.Logger
}

// Result is a confirmed selection. Index is set in single mode, Indices
// (ascending, unique) in multi mode.
type Result struct {
	Index   int
	Indices []int
}

// Run shows options on t and blocks until the user confirms, cancels,
// interrupts, or ctx is done. It owns the terminal for its whole duration
// and fails with term.ErrBusy if a navigator or another prompt holds it.
func Run(ctx context.Context, t term.Terminal, options []string, opts Options) (Result, error) {
	if len(options) == 0 {
		return Result{}, ErrNoOptions
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	signals := opts.Signals
	if signals == nil {
		signals = term.OSSignals{}
	}
	help := opts.Help
	if help == "" {
		help = DefaultHelp
	}
	if opts.HideHelp {
		help = ""
	}

	release, err := term.Acquire("selector")
	if err != nil {
		return Result{}, err
	}
	defer release()

	restore, err := t.MakeRaw()
	if err != nil {
		return Result{}, fmt.Errorf("enter raw mode: %w", err)
	}
	defer func() {
		if err := restore(); err != nil {
			log.Debug("restore input mode", "err", err)
		}
	}()

	pump, err := term.NewPump(t.Input())
	if err != nil {
		return Result{}, fmt.Errorf("read input: %w", err)
	}
	defer pump.Stop()

	var resize chan os.Signal
	if sigs := term.ResizeSignals(); len(sigs) > 0 {
		resize = make(chan os.Signal, 1)
		signals.Notify(resize, sigs...)
		defer signals.Stop(resize)
	}

	reserved := reservedRows(opts.Header, opts.Prompt, help)
	_, rows := t.Size()
	st := New(options, opts.Multi)
	st.SetPageSize(PageSize(rows, reserved))
	if opts.Multi {
		st.Select(opts.InitialSelected...)
	}
	st.SetCurrent(opts.Initial)

	if _, err := io.WriteString(t, term.HideCursor); err != nil {
		log.Debug("hide cursor", "err", err)
	}
	defer func() {
		if _, err := io.WriteString(t, term.ShowCursor); err != nil {
			log.Debug("show cursor", "err", err)
		}
	}()

	draw := func() {
		if err := drawList(t, st, opts.Header, opts.Prompt, help); err != nil {
			log.Debug("draw selector", "err", err)
		}
	}
	draw()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-resize:
			debounce = time.After(ResizeDebounce)
		case <-debounce:
			debounce = nil
			_, rows := t.Size()
			st.SetPageSize(PageSize(rows, reserved))
			draw()
		case chunk, ok := <-pump.C:
			if !ok {
				if err := pump.Err(); err != nil {
					return Result{}, fmt.Errorf("read input: %w", err)
				}
				return Result{}, io.EOF
			}
			switch st.Handle(chunk) {
			case Confirm:
				if st.Multi() {
					return Result{Indices: st.Selected()}, nil
				}
				return Result{Index: st.Current()}, nil
			case Cancel:
				return Result{}, ErrCanceled
			case Interrupt:
				return Result{}, ErrInterrupted
			}
			draw()
		}
	}
}

// reservedRows counts the rows a list shares its screen with: header
// lines, the prompt, and the help line with the blank line above it.
func reservedRows(header, prompt, help string) int {
	n := 0
	if header != "" {
		n += strings.Count(header, "\n") + 1
	}
	if prompt != "" {
		n++
	}
	if help != "" {
		n += 2
	}
	return n
}

// drawList writes one screen: clear, header, list. Lines are cut to the
// terminal width so nothing wraps.
func drawList(t term.Terminal, st *State, header, prompt, help string) error {
	cols, rows := t.Size()
	lines := screenLines(st, header, prompt, help, rows)
	for i, l := range lines {
		lines[i] = textutil.Truncate(l, cols)
	}
	_, err := io.WriteString(t, term.ClearScreen+term.CursorHome+strings.Join(lines, "\r\n"))
	return err
}

// screenLines lays the list out in at most rows lines. On a short terminal
// the help goes first, then the header, then the prompt; the options are
// cut last.
func screenLines(st *State, header, prompt, help string, rows int) []string {
	var head, foot []string
	if header != "" {
		head = strings.Split(header, "\n")
	}
	list := strings.Split(st.View(prompt, help), "\n")
	if help != "" {
		n := len(list) - 2
		list, foot = list[:n], list[n:]
	}
	if rows <= 0 {
		return slices.Concat(head, list, foot)
	}
	if len(head)+len(list)+len(foot) > rows {
		foot = nil
	}
	if len(head)+len(list) > rows {
		head = nil
	}
	if len(list) > rows && prompt != "" {
		list = list[1:]
	}
	lines := slices.Concat(head, list, foot)
	return lines[:min(len(lines), rows)]
}
