package surface

import "github.com/charmbracelet/x/ansi"

// CursorPos reports the tracked cursor. A pending wrap after the last column
// reports the last column.
func (s *Surface) CursorPos() Coordinate {
	c := s.cursor
	if s.width > 0 && c.X > s.width-1 {
		c.X = s.width - 1
	}
	return c
}

func (s *Surface) inBounds(c Coordinate) bool {
	if c.X < 0 || c.Y < 0 {
		return false
	}
	if s.width > 0 && c.X >= s.width {
		return false
	}
	if s.height > 0 && c.Y >= s.height {
		return false
	}
	return true
}

// SetCursorPos moves the cursor. It reports false, without moving, when c
// lies outside the terminal.
func (s *Surface) SetCursorPos(c Coordinate) bool {
	if !s.inBounds(c) {
		return false
	}
	s.moveTo(c)
	return true
}

func (s *Surface) moveTo(c Coordinate) {
	s.emit(ansi.CursorPosition(c.X+1, c.Y+1))
	s.cursor = c
}

// SaveCursorPos pushes the current cursor onto the active context's stack.
func (s *Surface) SaveCursorPos() bool {
	return s.SaveCursorPosAt(s.CursorPos())
}

// SaveCursorPosAt pushes c onto the active context's stack.
func (s *Surface) SaveCursorPosAt(c Coordinate) bool {
	if !s.inBounds(c) {
		return false
	}
	st := s.active()
	st.saved = append(st.saved, c)
	return true
}

// RestoreCursorPos pops the most recently saved position and moves the
// cursor there. It reports false when nothing was saved.
func (s *Surface) RestoreCursorPos() (Coordinate, bool) {
	st := s.active()
	if len(st.saved) == 0 {
		return Coordinate{}, false
	}
	c := st.saved[len(st.saved)-1]
	st.saved = st.saved[:len(st.saved)-1]
	s.moveTo(c)
	return c, true
}

// CursorVisible reports the active context's cursor visibility.
func (s *Surface) CursorVisible() bool {
	return s.active().visible
}

// SetCursorVisible shows or hides the cursor of the active context.
func (s *Surface) SetCursorVisible(visible bool) {
	s.emitVisibility(visible)
	s.active().visible = visible
}

// ToggleCursorVisibility flips the active context's cursor visibility.
func (s *Surface) ToggleCursorVisibility() {
	s.SetCursorVisible(!s.CursorVisible())
}

func (s *Surface) emitVisibility(visible bool) {
	if visible {
		s.emit(ansi.ShowCursor)
		return
	}
	s.emit(ansi.HideCursor)
}

// syncVisibility re-emits the incoming context's visibility when it differs
// from the outgoing one.
func (s *Surface) syncVisibility(outgoing, incoming *State) {
	if outgoing.visible != incoming.visible {
		s.emitVisibility(incoming.visible)
	}
}
