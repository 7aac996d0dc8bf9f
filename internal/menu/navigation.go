package menu

import (
	"charm.land/bubbles/v2/key"

	"github.com/atomicstack/termconsole/internal/input"
)

const (
	NavigationInstructions = "Use a Hotkey or the Up/Down Key and Enter to select an option."
	EscapeInstructions     = "Press ESC to return to the previous menu."
)

// KeyMap holds the bindings the built-in handlers and the selection loop
// respond to.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the arrow, enter, and escape bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "move down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select an option"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("ESC", "return to the previous menu"),
		),
	}
}

func (KeyMap) matches(ev input.Event, b key.Binding) bool {
	return key.Matches(ev, b)
}

// IsConfirm reports whether ev confirms the selection.
func (k KeyMap) IsConfirm(ev input.Event) bool { return k.matches(ev, k.Confirm) }

// IsCancel reports whether ev cancels the menu.
func (k KeyMap) IsCancel(ev input.Event) bool { return k.matches(ev, k.Cancel) }

// NavigationAction moves the selection with the arrows, hotkeys, and
// positional digits. It consumes the keys it understands and never ends the
// selection loop.
func NavigationAction() Action {
	return Action{
		Handle: func(ev input.Event, m *Model, _ Console, sel *int) Result {
			next, ok := m.Navigate(ev)
			if !ok {
				return Continue
			}
			*sel = next
			return StopHandlerChain
		},
		Instructions: []string{NavigationInstructions},
	}
}

// EscapeAction clears the selection and ends the loop on the cancel key.
func EscapeAction() Action {
	return Action{
		Handle: func(ev input.Event, m *Model, _ Console, sel *int) Result {
			if !m.keys.IsCancel(ev) {
				return Continue
			}
			*sel = NoSelection
			return StopEntireList
		},
		Instructions: []string{EscapeInstructions},
	}
}
