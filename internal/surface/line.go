package surface

// Line is the stored content of one on-screen row. chars holds every rune
// written to the row, control sequences included; cols maps each rendered
// column to the index in chars of the glyph occupying it.
type Line struct {
	chars []rune
	cols  []int
}

// String returns the stored content including control sequences, suitable
// for replaying the row onto a terminal.
func (l *Line) String() string {
	return string(l.chars)
}

// Text returns only the glyphs, one per rendered column.
func (l *Line) Text() string {
	out := make([]rune, len(l.cols))
	for i, idx := range l.cols {
		out[i] = l.chars[idx]
	}
	return string(out)
}

// Width reports the number of rendered columns stored in the line.
func (l *Line) Width() int {
	return len(l.cols)
}

// Columns returns a copy of the column map.
func (l *Line) Columns() []int {
	return append([]int(nil), l.cols...)
}

func (l *Line) clone() Line {
	return Line{
		chars: append([]rune(nil), l.chars...),
		cols:  append([]int(nil), l.cols...),
	}
}

// put writes glyph g at column x, preceded by the zero-width run pre. Past
// the end the line is padded with spaces; in the interior the whole span
// owned by column x is replaced.
func (l *Line) put(x int, pre []rune, g rune) {
	for len(l.cols) < x {
		l.appendGlyph(nil, ' ')
	}
	if x == len(l.cols) {
		l.appendGlyph(pre, g)
		return
	}
	start, end := l.span(x)
	repl := make([]rune, 0, len(pre)+1)
	repl = append(repl, pre...)
	repl = append(repl, g)
	l.splice(start, end, repl)
	delta := len(repl) - (end - start)
	l.cols[x] = start + len(repl) - 1
	for i := x + 1; i < len(l.cols); i++ {
		l.cols[i] += delta
	}
}

// mark stores a zero-width run at column x without consuming the column.
func (l *Line) mark(x int, run []rune) {
	if len(run) == 0 {
		return
	}
	if x >= len(l.cols) {
		l.chars = append(l.chars, run...)
		return
	}
	at := l.cols[x]
	l.splice(at, at, run)
	for i := x; i < len(l.cols); i++ {
		l.cols[i] += len(run)
	}
}

// truncate drops everything from column x onwards.
func (l *Line) truncate(x int) {
	if x < 0 {
		x = 0
	}
	if x >= len(l.cols) {
		return
	}
	start, _ := l.span(x)
	l.chars = l.chars[:start]
	l.cols = l.cols[:x]
}

func (l *Line) appendGlyph(pre []rune, g rune) {
	l.chars = append(l.chars, pre...)
	l.cols = append(l.cols, len(l.chars))
	l.chars = append(l.chars, g)
}

// span returns the [start, end) range of chars owned by column x: every rune
// after the previous column's glyph up to and including x's glyph.
func (l *Line) span(x int) (int, int) {
	start := 0
	if x > 0 {
		start = l.cols[x-1] + 1
	}
	return start, l.cols[x] + 1
}

func (l *Line) splice(start, end int, repl []rune) {
	tail := append([]rune(nil), l.chars[end:]...)
	l.chars = append(append(l.chars[:start], repl...), tail...)
}
