package surface

import (
	"strings"

	"github.com/atomicstack/termconsole/internal/logging"
	"github.com/atomicstack/termconsole/internal/logging/events"
)

// Depth reports the number of pushed alternate contexts; 0 means only the
// main context is active.
func (s *Surface) Depth() int {
	return len(s.states) - 1
}

// PushAlternate stacks a new, empty context on top of the active one and
// returns its 1-based depth. It reports false when no context could be
// allocated.
func (s *Surface) PushAlternate() (int, bool) {
	outgoing := s.active()
	outgoing.resume = s.CursorPos()

	var next *State
	switch s.mode {
	case ModeNative:
		alloc, ok := s.term.(ScreenAllocator)
		if !ok {
			events.Surface.PushFailed(s.name, s.mode.String(), "terminal has no separate screens")
			return 0, false
		}
		screen, err := alloc.AllocateScreen()
		if err != nil {
			logging.Errorf("surface %s: allocate screen: %w", s.name, err)
			events.Surface.PushFailed(s.name, s.mode.String(), err.Error())
			return 0, false
		}
		next = newState(Coordinate{}, true)
		next.screen = screen
		s.cursor = Coordinate{}
	default:
		s.Clear(false, true)
		next = newState(s.main().anchor, true)
	}

	s.states = append(s.states, next)
	s.syncVisibility(outgoing, next)
	events.Surface.Push(s.name, s.Depth(), s.mode.String())
	return s.Depth(), true
}

// PopAlternate discards the active alternate context and returns the new
// depth. In emulated mode the uncovered context is replayed onto the
// display. Popping with no alternate pushed does nothing.
func (s *Surface) PopAlternate() int {
	if len(s.states) == 1 {
		return 0
	}
	outgoing := s.active()
	s.states = s.states[:len(s.states)-1]
	incoming := s.active()

	if outgoing.screen != nil {
		if err := outgoing.screen.Close(); err != nil {
			logging.Errorf("surface %s: close screen: %w", s.name, err)
		}
		s.cursor = incoming.resume
	} else {
		s.Clear(false, true)
		s.replay(incoming)
	}

	s.syncVisibility(outgoing, incoming)
	events.Surface.Pop(s.name, s.Depth())
	return s.Depth()
}

// replay rewrites a context's stored rows from the cursor without touching
// the model. Rows that scrolled off above the cursor row stay off screen.
func (s *Surface) replay(st *State) {
	skip := s.cursor.Y - st.origin
	if skip < 0 {
		skip = 0
	}
	if skip == 0 {
		st.origin = s.cursor.Y
	}
	if skip >= len(st.lines) {
		return
	}
	rows := make([]string, 0, len(st.lines)-skip)
	for _, l := range st.lines[skip:] {
		rows = append(rows, l.String())
	}
	s.Write(strings.Join(rows, "\n"), false)
}
