package term

import (
	"strings"
	"unicode/utf8"
)

// Raw input tokens.
const (
	CtrlC     = "\x03"
	Esc       = "\x1b"
	CR        = "\r"
	LF        = "\n"
	Space     = " "
	ArrowUp   = "\x1b[A"
	ArrowDown = "\x1b[B"
	PageUp    = "\x1b[5~"
	PageDown  = "\x1b[6~"
)

// Key is a decoded input chunk. Its String form is the name used in key
// bindings: "up", "down", "pgup", "pgdown", "home", "end", "enter", "esc",
// "space", "ctrl+c", or the literal text for anything else.
type Key string

func (k Key) String() string { return string(k) }

var sequences = map[string]Key{
	ArrowUp:   "up",
	"\x1bOA":  "up",
	ArrowDown: "down",
	"\x1bOB":  "down",
	PageUp:    "pgup",
	PageDown:  "pgdown",
	"\x1b[H":  "home",
	"\x1bOH":  "home",
	"\x1b[1~": "home",
	"\x1b[7~": "home",
	"\x1b[F":  "end",
	"\x1bOF":  "end",
	"\x1b[4~": "end",
	"\x1b[8~": "end",
	CR:        "enter",
	LF:        "enter",
	"\r\n":    "enter",
	Esc:       "esc",
	Space:     "space",
	CtrlC:     "ctrl+c",
}

// Decode maps a raw chunk to its Key. A single printable character followed
// by one line terminator ("q\r") decodes to the character itself.
func Decode(chunk string) Key {
	if k, ok := sequences[chunk]; ok {
		return k
	}
	trimmed := strings.TrimSuffix(strings.TrimSuffix(chunk, LF), CR)
	if trimmed != chunk && utf8.RuneCountInString(trimmed) == 1 && trimmed != Esc {
		return Key(trimmed)
	}
	return Key(chunk)
}
