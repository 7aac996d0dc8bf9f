package surface

import (
	"fmt"
	"io"
	"strings"
)

// Coordinate is a zero-based column/row position relative to the visible
// viewport.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Terminal is the real display a Surface mirrors.
type Terminal interface {
	io.Writer
	// CursorPosition queries the terminal for the current cursor location.
	CursorPosition() (Coordinate, error)
	Size() (width, height int, err error)
}

// Screen is a genuinely separate display context owned by an alternate
// state. Closing it returns the terminal to the previous context.
type Screen interface {
	Close() error
}

// ScreenAllocator is implemented by terminals able to provide separate
// display contexts for alternate states in native mode.
type ScreenAllocator interface {
	AllocateScreen() (Screen, error)
}

// Mode selects how alternate contexts are realized.
type Mode int

const (
	// ModeEmulated clears the real display and tracks alternate content in
	// the virtual model only.
	ModeEmulated Mode = iota
	// ModeNative asks the terminal for a separate screen per alternate.
	ModeNative
)

func (m Mode) String() string {
	switch m {
	case ModeNative:
		return "native"
	default:
		return "emulated"
	}
}

// ParseMode maps a configuration value onto a Mode.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "emulated":
		return ModeEmulated, nil
	case "native":
		return ModeNative, nil
	default:
		return ModeEmulated, fmt.Errorf("unknown surface mode %q", value)
	}
}
