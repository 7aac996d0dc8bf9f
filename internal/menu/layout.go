package menu

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/termconsole/internal/surface"
)

// RowKind identifies what a rendered menu row shows.
type RowKind int

const (
	RowArrowUp RowKind = iota
	RowOption
	RowPadding
	RowArrowDown
)

// Row is one rendered line of the option block. Index names the option for
// option and padding rows.
type Row struct {
	Kind  RowKind
	Index int
}

// markerWidth covers the marker glyph and the space after it.
const markerWidth = 2

// Layout lists the rows the current viewport renders, top to bottom.
func (m *Model) Layout() []Row {
	m.refresh()
	if len(m.options) == 0 {
		return nil
	}
	var rows []Row
	if m.top > 0 {
		rows = append(rows, Row{Kind: RowArrowUp, Index: NoSelection})
	}
	for i := m.top; i <= m.bottom; i++ {
		o := m.options[i]
		if o.Padding.Top && i != m.top {
			rows = append(rows, Row{Kind: RowPadding, Index: i})
		}
		rows = append(rows, Row{Kind: RowOption, Index: i})
		if o.Padding.Bottom && i != m.bottom {
			rows = append(rows, Row{Kind: RowPadding, Index: i})
		}
	}
	if m.bottom < len(m.options)-1 {
		rows = append(rows, Row{Kind: RowArrowDown, Index: NoSelection})
	}
	return rows
}

// Label is the text drawn after the marker for option i: its hotkey or
// position in the viewport, then its text.
func (m *Model) Label(i int) string {
	o, ok := m.Option(i)
	if !ok {
		return ""
	}
	var b strings.Builder
	if o.Padding.Left {
		b.WriteByte(' ')
	}
	switch key := m.key(i); {
	case key != "":
		b.WriteString(key)
		b.WriteString(") ")
	default:
		b.WriteString("   ")
	}
	b.WriteString(o.Text)
	if o.Padding.Right {
		b.WriteByte(' ')
	}
	return b.String()
}

// key returns the hotkey shown for option i, or its 1-9 position among the
// visible options without a hotkey.
func (m *Model) key(i int) string {
	if h := m.options[i].Hotkey; h != 0 {
		return string(h)
	}
	if i < m.top {
		return ""
	}
	n := 0
	for j := m.top; j <= i; j++ {
		if m.options[j].Hotkey == 0 {
			n++
		}
	}
	if n > 9 {
		return ""
	}
	return strconv.Itoa(n)
}

// Width is the column count of the widest option row between prefix and
// suffix, marker included, and never less than MinWidth.
func (m *Model) Width() int {
	w := m.MinWidth
	for i := range m.options {
		if lw := markerWidth + ansi.StringWidth(m.labelAt(i)); lw > w {
			w = lw
		}
	}
	return w
}

// labelAt measures with a fixed-width key so the width does not change as
// the viewport scrolls.
func (m *Model) labelAt(i int) string {
	o := m.options[i]
	label := "x) " + o.Text
	if o.Padding.Left {
		label = " " + label
	}
	if o.Padding.Right {
		label += " "
	}
	return label
}

// OptionPos returns where the marker of option i is drawn, or false when
// the option is not on screen or the menu has not been rendered.
func (m *Model) OptionPos(i int) (surface.Coordinate, bool) {
	if !m.hasAnchor {
		return surface.Coordinate{}, false
	}
	for y, row := range m.Layout() {
		if row.Kind == RowOption && row.Index == i {
			return surface.Coordinate{
				X: m.anchor.X + ansi.StringWidth(m.Prefix),
				Y: m.anchor.Y + y,
			}, true
		}
	}
	return surface.Coordinate{}, false
}
