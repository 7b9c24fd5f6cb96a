// Package input decodes terminal key presses into engine keys. It reads
// stdin in raw mode so arrow keys and single characters arrive without
// waiting for Enter; graphical backends decode their own key events and
// never go through this package.
package input

import (
	"os"

	"golang.org/x/term"

	"tilerogue/pkg/engine/world"
)

// Key identifies a decoded key press
type Key int

// Decoded keys
const (
	KeyNone Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyH
	KeyJ
	KeyK
	KeyL
	KeyY
	KeyU
	KeyB
	KeyN
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9
	KeyQuit
)

// KeyToDirection maps decoded keys to movement directions: arrows and
// vim keys (hjkl plus yubn diagonals) and the numpad layout.
var KeyToDirection = map[Key]world.Direction{
	KeyArrowLeft:  world.Left,
	KeyArrowRight: world.Right,
	KeyArrowUp:    world.Up,
	KeyArrowDown:  world.Down,

	KeyH: world.Left,
	KeyL: world.Right,
	KeyK: world.Up,
	KeyJ: world.Down,
	KeyY: world.LeftUp,
	KeyU: world.RightUp,
	KeyB: world.LeftDown,
	KeyN: world.RightDown,

	KeyNum4: world.Left,
	KeyNum6: world.Right,
	KeyNum8: world.Up,
	KeyNum2: world.Down,
	KeyNum7: world.LeftUp,
	KeyNum9: world.RightUp,
	KeyNum1: world.LeftDown,
	KeyNum3: world.RightDown,
}

var runeKeys = map[byte]Key{
	'h': KeyH, 'j': KeyJ, 'k': KeyK, 'l': KeyL,
	'y': KeyY, 'u': KeyU, 'b': KeyB, 'n': KeyN,
	'1': KeyNum1, '2': KeyNum2, '3': KeyNum3, '4': KeyNum4,
	'6': KeyNum6, '7': KeyNum7, '8': KeyNum8, '9': KeyNum9,
	'q': KeyQuit,
}

func readByte() (byte, error) {
	buf := make([]byte, 1)
	_, err := os.Stdin.Read(buf)
	return buf[0], err
}

// readArrowKey consumes the remainder of an escape sequence after an ESC
// byte. Returns KeyNone for sequences that are not arrow keys.
func readArrowKey() Key {
	b2, err := readByte()
	if err != nil {
		return KeyNone
	}
	// Both CSI (ESC [) and SS3 (ESC O) sequences occur in the wild.
	if b2 != '[' && b2 != 'O' {
		return KeyNone
	}
	b3, err := readByte()
	if err != nil {
		return KeyNone
	}
	switch b3 {
	case 'A':
		return KeyArrowUp
	case 'B':
		return KeyArrowDown
	case 'C':
		return KeyArrowRight
	case 'D':
		return KeyArrowLeft
	}
	return KeyNone
}

// ReadKey blocks until a recognized key is pressed and returns it.
// The terminal is held in raw mode only for the duration of the read.
func ReadKey() (Key, error) {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return KeyNone, err
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	for {
		b, err := readByte()
		if err != nil {
			return KeyNone, err
		}

		switch {
		case b == 0x1b:
			if k := readArrowKey(); k != KeyNone {
				return k, nil
			}
		case b == 3: // Ctrl+C
			return KeyQuit, nil
		default:
			if k, found := runeKeys[b]; found {
				return k, nil
			}
		}
	}
}
