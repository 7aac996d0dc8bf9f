package menu

import (
	"fmt"

	"charm.land/bubbles/v2/key"

	"github.com/atomicstack/termconsole/internal/input"
	"github.com/atomicstack/termconsole/internal/logging/events"
	"github.com/atomicstack/termconsole/internal/surface"
)

// Result tells the dispatcher what happens after a handler ran.
type Result int

const (
	// Continue passes the key on to the next handler.
	Continue Result = iota
	// StopHandlerChain consumes the key; the selection loop keeps waiting.
	StopHandlerChain
	// StopEntireList ends the selection loop with the current selection.
	StopEntireList
)

func (r Result) String() string {
	switch r {
	case Continue:
		return "continue"
	case StopHandlerChain:
		return "stop-handler-chain"
	case StopEntireList:
		return "stop-entire-list"
	default:
		return "unknown"
	}
}

// Console is the part of the display handlers may draw on.
type Console interface {
	CursorPos() surface.Coordinate
	SetCursorPos(c surface.Coordinate) bool
	SaveCursorPos() bool
	RestoreCursorPos() (surface.Coordinate, bool)
	Print(text string)
	// RenderOptions redraws the option block of m in place.
	RenderOptions(m *Model)
	// MoveMarker moves the selection marker from option prev to next.
	// Either may be NoSelection.
	MoveMarker(m *Model, prev, next int)
}

// HandlerFunc reacts to one key. sel holds the selection the handler sees
// and may change; the dispatcher applies the change when the handler
// returns.
type HandlerFunc func(ev input.Event, m *Model, c Console, sel *int) Result

// Action is a handler plus the instruction lines describing its keys.
type Action struct {
	Handle       HandlerFunc
	Instructions []string
}

// Instruction words a binding's help as an instruction line.
func Instruction(b key.Binding) string {
	h := b.Help()
	return fmt.Sprintf("Press %s to %s.", h.Key, h.Desc)
}

// Dispatch runs ev through the action pipeline until a handler returns
// something other than Continue, and returns that result.
func (m *Model) Dispatch(ev input.Event, c Console) Result {
	for i, a := range m.actions {
		if a.Handle == nil {
			continue
		}
		before := m.selection
		sel := before
		res := a.Handle(ev, m, c, &sel)
		if sel != before {
			m.apply(c, sel)
		}
		if res != Continue {
			events.Menu.Dispatch(ev.String(), i, res.String())
			return res
		}
	}
	events.Menu.Dispatch(ev.String(), -1, Continue.String())
	return Continue
}

// apply moves the selection to sel and redraws what changed.
func (m *Model) apply(c Console, sel int) {
	prev := m.selection
	if sel < 0 || sel >= len(m.options) {
		m.ClearSelection()
		if c != nil && m.hasAnchor {
			c.MoveMarker(m, prev, NoSelection)
		}
		return
	}
	scrolled := m.Select(sel)
	if c == nil || !m.hasAnchor {
		return
	}
	if scrolled {
		c.RenderOptions(m)
		return
	}
	c.MoveMarker(m, prev, sel)
}
