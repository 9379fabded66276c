// Package term wraps the terminal device the navigator runs on: control
// sequences, raw mode, size, input chunks and resize notifications.
package term

import "io"

// Control sequences written to the terminal.
const (
	EnterAltScreen  = "\x1b[?1049h"
	ExitAltScreen   = "\x1b[?1049l"
	HideCursor      = "\x1b[?25l"
	ShowCursor      = "\x1b[?25h"
	ClearScreen     = "\x1b[2J"
	ClearScrollback = "\x1b[3J"
	CursorHome      = "\x1b[H"
)

// Claim switches w to the alternate screen, drops the scrollback and hides
// the cursor.
func Claim(w io.Writer) error {
	_, err := io.WriteString(w, EnterAltScreen+ClearScrollback+HideCursor)
	return err
}

// Release shows the cursor, clears the screen and returns to the normal
// screen buffer.
func Release(w io.Writer) error {
	_, err := io.WriteString(w, ShowCursor+ClearScreen+CursorHome+ExitAltScreen)
	return err
}

// Clear erases the whole screen and homes the cursor.
func Clear(w io.Writer) error {
	_, err := io.WriteString(w, ClearScreen+CursorHome)
	return err
}
