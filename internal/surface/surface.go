// Package surface keeps a virtual model of what has been written to a
// terminal so that rows can be edited in place, replayed after an alternate
// context is torn down, and kept in step with the terminal's own scrolling.
package surface

import (
	"fmt"
	"io"

	"github.com/atomicstack/termconsole/internal/logging"
	"github.com/atomicstack/termconsole/internal/logging/events"
	"github.com/atomicstack/termconsole/internal/seq"
	"github.com/charmbracelet/x/ansi"
)

// Surface mirrors one terminal output stream. It is not safe for concurrent
// use.
type Surface struct {
	name   string
	term   Terminal
	mode   Mode
	width  int
	height int

	// states[0] is the main context; the last entry is the active one.
	states []*State
	cursor Coordinate
	err    error

	// mainScroll counts rows the main context's content moved up, wherever
	// the scrolling happened.
	mainScroll int
}

// Option customises a Surface at construction.
type Option func(*Surface)

// WithMode selects native or emulated alternate contexts.
func WithMode(mode Mode) Option {
	return func(s *Surface) { s.mode = mode }
}

// WithName labels the surface in trace output.
func WithName(name string) Option {
	return func(s *Surface) { s.name = name }
}

// New binds a surface to term. The terminal's current cursor becomes the
// main context's anchor.
func New(term Terminal, opts ...Option) (*Surface, error) {
	if term == nil {
		return nil, fmt.Errorf("surface: nil terminal")
	}
	s := &Surface{term: term, name: "out"}
	for _, opt := range opts {
		opt(s)
	}
	width, height, err := term.Size()
	if err != nil {
		return nil, fmt.Errorf("surface %s: query size: %w", s.name, err)
	}
	s.width, s.height = width, height
	anchor, err := term.CursorPosition()
	if err != nil {
		return nil, fmt.Errorf("surface %s: query cursor: %w", s.name, err)
	}
	s.cursor = anchor
	s.states = []*State{newState(anchor, true)}
	return s, nil
}

// Mode reports how alternate contexts are realized.
func (s *Surface) Mode() Mode { return s.mode }

// Width reports the column count the surface wraps at.
func (s *Surface) Width() int { return s.width }

// Height reports the row count of the terminal.
func (s *Surface) Height() int { return s.height }

// Err returns the first terminal write failure, if any.
func (s *Surface) Err() error { return s.err }

func (s *Surface) active() *State {
	return s.states[len(s.states)-1]
}

func (s *Surface) main() *State {
	return s.states[0]
}

// anchor is where Clear returns the cursor to. Emulated alternates share the
// display region of the main context.
func (s *Surface) anchor() Coordinate {
	if s.mode == ModeEmulated {
		return s.main().anchor
	}
	return s.active().anchor
}

// Anchor reports the start position of the active context.
func (s *Surface) Anchor() Coordinate {
	return s.anchor()
}

// Print writes text and records it in the active context.
func (s *Surface) Print(text string) {
	s.Write(text, true)
}

// Println writes text followed by a newline.
func (s *Surface) Println(text string) {
	s.Write(text+"\n", true)
}

// Printsp writes text followed by a space.
func (s *Surface) Printsp(text string) {
	s.Write(text+" ", true)
}

// Printf formats according to a format specifier and writes the result.
func (s *Surface) Printf(format string, args ...interface{}) {
	s.Write(fmt.Sprintf(format, args...), true)
}

// Printfln is Printf followed by a newline.
func (s *Surface) Printfln(format string, args ...interface{}) {
	s.Write(fmt.Sprintf(format, args...)+"\n", true)
}

// Write sends text to the terminal. When addToBuffer is set the active
// context's stored rows are updated to match; the tracked cursor follows the
// text either way.
func (s *Surface) Write(text string, addToBuffer bool) {
	if text == "" {
		return
	}
	st := s.active()
	runes := []rune(text)
	start := s.cursor
	cur := s.cursor
	rows := 0
	var pending []rune

	flush := func() {
		if addToBuffer && len(pending) > 0 {
			if l := st.line(cur.Y); l != nil {
				l.mark(cur.X, pending)
			}
		}
		pending = nil
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		if r == seq.ESC {
			if m, ok := seq.Classify(runes, i); ok {
				pending = append(pending, runes[i:i+m.Len]...)
				i += m.Len
				continue
			}
		}
		i++
		switch r {
		case '\n':
			flush()
			cur.X = 0
			cur.Y++
			rows++
			if addToBuffer {
				st.line(cur.Y)
			}
			continue
		case '\r':
			flush()
			cur.X = 0
			continue
		}
		// A glyph written into the last column leaves the wrap pending
		// until the next glyph arrives, as terminals do.
		if s.width > 0 && cur.X >= s.width {
			cur.X = 0
			cur.Y++
			rows++
		}
		if addToBuffer {
			if l := st.line(cur.Y); l != nil {
				l.put(cur.X, pending, r)
			}
		}
		pending = nil
		cur.X++
	}
	flush()

	s.emit(text)
	s.cursor = cur
	if rows > 0 {
		s.reconcile(start, rows)
	}
}

// emit writes raw bytes to the terminal without touching the model or the
// tracked cursor.
func (s *Surface) emit(text string) {
	if s.err != nil {
		return
	}
	if _, err := io.WriteString(s.term, text); err != nil {
		s.err = err
		events.Surface.WriteError(s.name, err)
		logging.Errorf("surface %s: write: %w", s.name, err)
	}
}

// reconcile compares the expected row advance of the last write with the
// terminal's reported cursor to learn how far the display scrolled.
func (s *Surface) reconcile(start Coordinate, rows int) {
	observed, err := s.term.CursorPosition()
	if err != nil {
		logging.Errorf("surface %s: query cursor: %w", s.name, err)
		if s.height > 0 && s.cursor.Y > s.height-1 {
			s.scrolled(s.cursor.Y - (s.height - 1))
			s.cursor.Y = s.height - 1
		}
		return
	}
	delta := rows - (observed.Y - start.Y)
	if s.width > 0 && s.cursor.X >= s.width && observed.X == s.width-1 {
		observed.X = s.cursor.X
	}
	s.cursor = observed
	if delta > 0 {
		s.scrolled(delta)
	}
}

func (s *Surface) scrolled(n int) {
	st := s.active()
	st.scrolled(n)
	if s.mode == ModeEmulated || len(s.states) == 1 {
		main := s.main()
		main.anchor.Y = floorZero(main.anchor.Y - n)
		s.mainScroll += n
	}
	events.Surface.Scroll(s.name, n, st.scroll)
}

// ScrollOffset reports how many rows the active context has scrolled since
// it was created.
func (s *Surface) ScrollOffset() int {
	return s.active().scroll
}

// MainScroll reports how many rows the main context's content has moved up
// since the surface was created. In emulated mode this includes scrolling
// caused while an alternate context was active.
func (s *Surface) MainScroll() int {
	return s.mainScroll
}

// Clear erases the display from the cursor down. resetCursor first moves
// the cursor to the active anchor; clearBuffer also drops the stored content
// that was erased.
func (s *Surface) Clear(clearBuffer, resetCursor bool) {
	if resetCursor {
		s.moveTo(s.anchor())
	}
	s.emit(ansi.EraseScreenBelow)
	if clearBuffer {
		s.active().truncate(s.cursor)
	}
}

// ClearLine erases from the cursor to the end of its row, on the display
// and in the stored row.
func (s *Surface) ClearLine() {
	s.emit(ansi.EraseLineRight)
	st := s.active()
	if idx := s.cursor.Y - st.origin; idx >= 0 && idx < len(st.lines) {
		st.lines[idx].truncate(s.cursor.X)
	}
}

// LineCount reports how many rows the active context stores.
func (s *Surface) LineCount() int {
	return len(s.active().lines)
}

// Line returns a copy of a stored row of the active context.
func (s *Surface) Line(i int) (Line, bool) {
	lines := s.active().lines
	if i < 0 || i >= len(lines) {
		return Line{}, false
	}
	return lines[i].clone(), true
}

// Lines returns the stored rows of the active context, control sequences
// included.
func (s *Surface) Lines() []string {
	lines := s.active().lines
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

// Close pops every alternate context and leaves the cursor visible.
func (s *Surface) Close() error {
	for s.Depth() > 0 {
		s.PopAlternate()
	}
	s.emit(ansi.ShowCursor)
	s.active().visible = true
	return s.err
}
