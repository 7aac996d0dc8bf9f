package console

import (
	"time"

	"github.com/atomicstack/termconsole/internal/logging/events"
	"github.com/atomicstack/termconsole/internal/menu"
)

// statusPoll bounds each wait while a status message is on screen, so it
// can be erased once it expires.
const statusPoll = 250 * time.Millisecond

// Reason says how a selection loop ended.
type Reason int

const (
	Confirmed Reason = iota
	Cancelled
	TimedOut
)

func (r Reason) String() string {
	switch r {
	case Confirmed:
		return "confirmed"
	case Cancelled:
		return "cancelled"
	case TimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Selection is the outcome of WaitForSelection. Index is menu.NoSelection
// unless an option was chosen.
type Selection struct {
	Index  int
	Reason Reason
}

// OK reports whether an option was chosen.
func (s Selection) OK() bool {
	return s.Reason == Confirmed && s.Index != menu.NoSelection
}

// WaitForSelection runs the selection loop for m. An unrendered menu is
// printed with its instructions first. The loop ends when a handler ends
// the list, when the confirm key is pressed with an option selected, or
// when timeout elapses with no status message showing. A timeout of zero or
// less waits indefinitely.
func (c *Console) WaitForSelection(m *menu.Model, timeout time.Duration) Selection {
	if _, ok := c.anchor(m); !ok {
		if err := c.PrintMenu(m, true); err != nil {
			return c.finish(Selection{Index: menu.NoSelection, Reason: Cancelled})
		}
	}
	var deadline time.Time
	if timeout > 0 {
		deadline = c.now().Add(timeout)
	}

	for {
		if msg, ok := m.IssueStatusMessage(); ok {
			c.drawStatus(m, msg)
		}

		wait := timeout
		if timeout > 0 {
			wait = deadline.Sub(c.now())
		}
		polling := m.HasActiveStatusMessage() && (wait <= 0 || wait > statusPoll)
		if polling {
			wait = statusPoll
		}
		if timeout > 0 && wait <= 0 {
			return c.finish(Selection{Index: menu.NoSelection, Reason: TimedOut})
		}

		ev, ok := c.in.WaitForEvent(false, wait)
		if !ok {
			if c.in.Err() != nil {
				return c.finish(Selection{Index: menu.NoSelection, Reason: Cancelled})
			}
			if m.HasExpiredStatusMessage() {
				c.eraseStatus(m)
			}
			if timeout > 0 && !polling {
				return c.finish(Selection{Index: menu.NoSelection, Reason: TimedOut})
			}
			continue
		}

		switch m.Dispatch(ev, c) {
		case menu.StopEntireList:
			return c.finish(selectionOf(m))
		case menu.StopHandlerChain:
			continue
		}
		if m.Keys().IsConfirm(ev) {
			if sel, ok := m.Selection(); ok {
				return c.finish(Selection{Index: sel, Reason: Confirmed})
			}
		}
		if m.HasExpiredStatusMessage() {
			c.eraseStatus(m)
		}
	}
}

func selectionOf(m *menu.Model) Selection {
	if sel, ok := m.Selection(); ok {
		return Selection{Index: sel, Reason: Confirmed}
	}
	return Selection{Index: menu.NoSelection, Reason: Cancelled}
}

func (c *Console) finish(s Selection) Selection {
	events.Console.Selection(s.Index, s.Reason.String())
	return s
}
