package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Key is a key press. Function keys use the negative rune constants below.
type Key struct {
	Rune rune
	Ctrl bool
}

// Function keys.
const (
	Up rune = -1 - iota
	Down
	Right
	Left
	Home
	End
	PageUp
	PageDown
	Insert
	Delete
)

// Keys with a conventional control-character encoding.
const (
	Tab       = '\t'
	Enter     = '\r'
	Esc       = 0x1b
	Backspace = 0x7f
)

var functionKeyNames = map[rune]string{
	Up: "Up", Down: "Down", Right: "Right", Left: "Left",
	Home: "Home", End: "End", PageUp: "PageUp", PageDown: "PageDown",
	Insert: "Insert", Delete: "Delete",
	Tab: "Tab", Enter: "Enter", Esc: "Esc", Backspace: "Backspace", ' ': "Space",
}

// String returns the name of the key, like "a", "Ctrl-C", "Space" or
// "PageDown".
func (k Key) String() string {
	name, ok := functionKeyNames[k.Rune]
	if !ok {
		name = string(k.Rune)
	}
	if k.Ctrl {
		return "Ctrl-" + name
	}
	return name
}

// ErrUnrecognized wraps the errors of escape sequences that ReadKey does not
// know. Reading can continue after such an error.
var ErrUnrecognized = errors.New("unrecognized escape sequence")

// Reader reads keys from a terminal in raw mode.
type Reader struct {
	r *bufio.Reader
}

// NewReader creates a Reader.
func NewReader(r io.Reader) *Reader { return &Reader{bufio.NewReader(r)} }

// ReadKey reads one key. Unrecognized escape sequences are consumed and
// reported as an error wrapping ErrUnrecognized.
func (kr *Reader) ReadKey() (Key, error) {
	r, _, err := kr.r.ReadRune()
	if err != nil {
		return Key{}, err
	}
	switch {
	case r == Esc:
		if kr.r.Buffered() == 0 {
			return Key{Rune: Esc}, nil
		}
		return kr.readEscape()
	case r == '\n':
		return Key{Rune: Enter}, nil
	case r == Tab || r == Enter || r == Backspace:
		return Key{Rune: r}, nil
	case r == 0x08:
		return Key{Rune: Backspace}, nil
	case 0 < r && r < 0x20:
		return Key{Rune: r + 'A' - 1, Ctrl: true}, nil
	}
	return Key{Rune: r}, nil
}

var csiFinals = map[byte]rune{'A': Up, 'B': Down, 'C': Right, 'D': Left, 'H': Home, 'F': End}

var csiTildes = map[string]rune{
	"1": Home, "2": Insert, "3": Delete, "4": End,
	"5": PageUp, "6": PageDown, "7": Home, "8": End,
}

func (kr *Reader) readEscape() (Key, error) {
	intro, err := kr.r.ReadByte()
	if err != nil {
		return Key{}, err
	}
	switch intro {
	case '[', 'O':
	default:
		// Alt-key; report the key itself.
		return Key{Rune: rune(intro)}, nil
	}
	var params []byte
	for {
		b, err := kr.r.ReadByte()
		if err != nil {
			return Key{}, err
		}
		if b >= 0x40 && b <= 0x7e {
			if r, ok := csiFinals[b]; ok {
				return Key{Rune: r}, nil
			}
			if b == '~' {
				if r, ok := csiTildes[string(params)]; ok {
					return Key{Rune: r}, nil
				}
			}
			return Key{}, fmt.Errorf("%w ESC %c %s%c", ErrUnrecognized, intro, params, b)
		}
		params = append(params, b)
	}
}
