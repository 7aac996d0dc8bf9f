package surface

// State is one display context: the main surface or a pushed alternate.
type State struct {
	lines   []*Line
	saved   []Coordinate
	anchor  Coordinate
	scroll  int
	visible bool

	// origin is the screen row holding lines[0]. It goes negative once
	// stored rows scroll off the top of the display.
	origin int
	// resume is where the cursor returns when the context stacked on top
	// of this one is popped in native mode.
	resume Coordinate
	screen Screen
}

func newState(anchor Coordinate, visible bool) *State {
	return &State{anchor: anchor, origin: anchor.Y, visible: visible}
}

// line returns the stored row at screen row y, growing the store as needed.
// Rows above the stored range yield nil.
func (st *State) line(y int) *Line {
	idx := y - st.origin
	if idx < 0 {
		return nil
	}
	for len(st.lines) <= idx {
		st.lines = append(st.lines, &Line{})
	}
	return st.lines[idx]
}

func (st *State) truncate(at Coordinate) {
	idx := at.Y - st.origin
	if idx < 0 {
		st.lines = nil
		return
	}
	if idx >= len(st.lines) {
		return
	}
	st.lines[idx].truncate(at.X)
	st.lines = st.lines[:idx+1]
}

func (st *State) scrolled(n int) {
	st.scroll += n
	st.origin -= n
	for i := range st.saved {
		st.saved[i].Y = floorZero(st.saved[i].Y - n)
	}
}

func floorZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
