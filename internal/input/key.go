// Package input turns raw terminal bytes into key events and offers the
// blocking waits the menu engine is driven by.
package input

import (
	"strings"
	"unicode"
)

// Key identifies a decoded key.
type Key uint8

const (
	KeyNone Key = iota
	KeyRune     // printable or ctrl-modified character, see Event.Rune
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
)

var keyNames = map[Key]string{
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyInsert:    "insert",
	KeyDelete:    "delete",
}

// Mod is a bit set of modifier keys.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModAlt
	ModCtrl
)

// Event is one key press.
type Event struct {
	Key  Key
	Rune rune
	Mod  Mod
}

// String names the event the way key bindings spell it: "up", "enter",
// "shift+delete", "ctrl+c", or the character itself.
func (e Event) String() string {
	var b strings.Builder
	if e.Mod&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if e.Mod&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if e.Mod&ModShift != 0 {
		b.WriteString("shift+")
	}
	switch e.Key {
	case KeyRune:
		b.WriteRune(e.Rune)
	case KeyNone:
		return ""
	default:
		b.WriteString(keyNames[e.Key])
	}
	return b.String()
}

// Printable reports whether the event carries a character that can be
// echoed as typed text.
func (e Event) Printable() bool {
	return e.Key == KeyRune && e.Mod&(ModCtrl|ModAlt) == 0 && unicode.IsPrint(e.Rune)
}

// Digit returns the value of an unmodified 1-9 key press.
func (e Event) Digit() (int, bool) {
	if !e.Printable() || e.Rune < '1' || e.Rune > '9' {
		return 0, false
	}
	return int(e.Rune - '0'), true
}
