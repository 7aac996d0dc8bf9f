package testutil

import (
	"errors"
	"strconv"
	"strings"

	"github.com/atomicstack/termconsole/internal/seq"
	"github.com/atomicstack/termconsole/internal/surface"
)

var (
	errNoCursor    = errors.New("cursor report unavailable")
	errNoAltScreen = errors.New("alternate screen unavailable")
)

// Screen is an in-memory terminal. It understands the control sequences the
// surface emits, scrolls when output passes the bottom row, and answers
// cursor queries. Newlines behave as CR LF.
type Screen struct {
	Width, Height int
	// Scrolled counts rows that scrolled off the top.
	Scrolled int
	// AltScreens caps how many separate screens AllocateScreen hands out.
	AltScreens int
	// FailCursor makes CursorPosition fail.
	FailCursor bool
	// Queries counts CursorPosition calls.
	Queries int
	Visible bool

	cells [][]rune
	x, y  int
	wrap  bool
	raw   strings.Builder
	saved []screenSnapshot
}

type screenSnapshot struct {
	cells [][]rune
	x, y  int
}

// NewScreen returns a blank screen with the cursor at the origin.
func NewScreen(width, height int) *Screen {
	s := &Screen{Width: width, Height: height, Visible: true}
	s.cells = blankRows(width, height)
	return s
}

func blankRows(width, height int) [][]rune {
	rows := make([][]rune, height)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", width))
	}
	return rows
}

// MoveTo places the cursor, as if other output had already run.
func (s *Screen) MoveTo(x, y int) {
	s.x, s.y, s.wrap = x, y, false
}

// Size implements surface.Terminal.
func (s *Screen) Size() (int, int, error) {
	return s.Width, s.Height, nil
}

// CursorPosition implements surface.Terminal.
func (s *Screen) CursorPosition() (surface.Coordinate, error) {
	s.Queries++
	if s.FailCursor {
		return surface.Coordinate{}, errNoCursor
	}
	return surface.Coordinate{X: s.x, Y: s.y}, nil
}

// AllocateScreen implements surface.ScreenAllocator.
func (s *Screen) AllocateScreen() (surface.Screen, error) {
	if len(s.saved) >= s.AltScreens {
		return nil, errNoAltScreen
	}
	snapshot := screenSnapshot{cells: s.cells, x: s.x, y: s.y}
	s.saved = append(s.saved, snapshot)
	s.cells = blankRows(s.Width, s.Height)
	s.x, s.y, s.wrap = 0, 0, false
	return altScreen{s}, nil
}

type altScreen struct{ s *Screen }

func (a altScreen) Close() error {
	s := a.s
	last := s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	s.cells, s.x, s.y, s.wrap = last.cells, last.x, last.y, false
	return nil
}

// Raw returns everything written so far.
func (s *Screen) Raw() string {
	return s.raw.String()
}

// Row returns the visible text of row y with trailing blanks trimmed.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= len(s.cells) {
		return ""
	}
	return strings.TrimRight(string(s.cells[y]), " ")
}

// Rows returns every row, trimmed, with trailing blank rows dropped.
func (s *Screen) Rows() []string {
	rows := make([]string, len(s.cells))
	last := -1
	for i := range s.cells {
		rows[i] = s.Row(i)
		if rows[i] != "" {
			last = i
		}
	}
	return rows[:last+1]
}

// Write implements io.Writer.
func (s *Screen) Write(p []byte) (int, error) {
	s.raw.Write(p)
	runes := []rune(string(p))
	for i := 0; i < len(runes); {
		r := runes[i]
		if r == seq.ESC {
			if m, ok := seq.Classify(runes, i); ok {
				s.control(string(runes[i : i+m.Len]))
				i += m.Len
				continue
			}
		}
		i++
		switch r {
		case '\n':
			s.newline()
		case '\r':
			s.x, s.wrap = 0, false
		default:
			s.glyph(r)
		}
	}
	return len(p), nil
}

func (s *Screen) newline() {
	s.x, s.wrap = 0, false
	s.y++
	if s.y >= s.Height {
		s.scroll()
	}
}

func (s *Screen) scroll() {
	s.cells = append(s.cells[1:], []rune(strings.Repeat(" ", s.Width)))
	s.y = s.Height - 1
	s.Scrolled++
}

func (s *Screen) glyph(r rune) {
	if s.wrap {
		s.newline()
	}
	s.cells[s.y][s.x] = r
	if s.x == s.Width-1 {
		s.wrap = true
		return
	}
	s.x++
}

func (s *Screen) control(text string) {
	body := text[1:]
	switch {
	case body == "[?25h":
		s.Visible = true
	case body == "[?25l":
		s.Visible = false
	case strings.HasPrefix(body, "[") && strings.HasSuffix(body, "H"), strings.HasPrefix(body, "[") && strings.HasSuffix(body, "f"):
		params := strings.Split(body[1:len(body)-1], ";")
		row := param(params, 0, 1)
		col := param(params, 1, 1)
		s.MoveTo(clamp(col-1, s.Width-1), clamp(row-1, s.Height-1))
	case strings.HasPrefix(body, "[") && strings.HasSuffix(body, "J"):
		s.eraseBelow()
	case strings.HasPrefix(body, "[") && strings.HasSuffix(body, "K"):
		for x := s.x; x < s.Width; x++ {
			s.cells[s.y][x] = ' '
		}
	case strings.HasPrefix(body, "[") && len(body) > 1 && strings.ContainsAny(body[len(body)-1:], "ABCD"):
		n := param([]string{body[1 : len(body)-1]}, 0, 1)
		switch body[len(body)-1] {
		case 'A':
			s.y = clamp(s.y-n, s.Height-1)
		case 'B':
			s.y = clamp(s.y+n, s.Height-1)
		case 'C':
			s.x = clamp(s.x+n, s.Width-1)
		case 'D':
			s.x = clamp(s.x-n, s.Width-1)
		}
		s.wrap = false
	}
}

func (s *Screen) eraseBelow() {
	for x := s.x; x < s.Width; x++ {
		s.cells[s.y][x] = ' '
	}
	for y := s.y + 1; y < s.Height; y++ {
		s.cells[y] = []rune(strings.Repeat(" ", s.Width))
	}
}

func param(params []string, i, fallback int) int {
	if i >= len(params) || params[i] == "" {
		return fallback
	}
	v, err := strconv.Atoi(params[i])
	if err != nil || v == 0 {
		return fallback
	}
	return v
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}
