package console

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/termconsole/internal/logging/events"
	"github.com/atomicstack/termconsole/internal/menu"
	"github.com/atomicstack/termconsole/internal/surface"
)

const (
	markerGlyph = ">"
	arrowUp     = "↑"
	arrowDown   = "↓"
	statusTail  = "…"
)

// PrintMenu draws the option block of m, followed by the instruction block
// when withInstructions is set. The first render anchors the menu at the
// start of the cursor's row, or the next row when the cursor is mid-line;
// later renders redraw in place and never shrink the block.
func (c *Console) PrintMenu(m *menu.Model, withInstructions bool) error {
	if m.Len() == 0 {
		return ErrNoItems
	}
	anchor, ok := c.anchor(m)
	if ok {
		c.out.SetCursorPos(anchor)
	} else {
		if c.out.CursorPos().X > 0 {
			c.write(m, "\n")
		}
		anchor = c.out.CursorPos()
		m.SetAnchor(anchor)
		if c.out.Depth() == 0 {
			c.marks[m] = c.out.MainScroll()
		}
	}

	prevOptions, prevFooter := m.RenderedRows()
	width := c.blockWidth(m, withInstructions)
	rows := c.optionRows(m, width)
	for len(rows) < prevOptions {
		rows = append(rows, frame(m, blank(width)))
	}
	options := len(rows)
	if withInstructions {
		rows = append(rows, c.instructionRows(m, width)...)
	}
	for len(rows) < prevOptions+prevFooter {
		rows = append(rows, frame(m, blank(width)))
	}

	c.fit(rows, anchor.X)
	c.write(m, strings.Join(rows, "\n")+"\n")
	m.SetRenderedRows(options, len(rows)-options)
	anchor, _ = c.anchor(m)
	events.Console.Render(len(rows), anchor.Y, withInstructions)

	if m.HasActiveStatusMessage() {
		c.drawStatus(m, m.StatusMessage())
	}
	return nil
}

// RenderOptions redraws the option rows of an anchored menu in place and
// leaves the cursor where it was. A block that grew is drawn again in full.
func (c *Console) RenderOptions(m *menu.Model) {
	anchor, ok := c.anchor(m)
	if !ok {
		return
	}
	options, footer := m.RenderedRows()
	width := c.blockWidth(m, footer > 0)
	rows := c.optionRows(m, width)
	if len(rows) > options || m.Len() == 0 {
		if err := c.PrintMenu(m, footer > 0); err != nil {
			c.clearFrom(anchor)
			m.SetRenderedRows(0, 0)
		}
		return
	}
	for len(rows) < options {
		rows = append(rows, frame(m, blank(width)))
	}
	c.fit(rows, anchor.X)
	saved := c.out.SaveCursorPos()
	c.out.SetCursorPos(anchor)
	c.write(m, strings.Join(rows, "\n"))
	if saved {
		c.out.RestoreCursorPos()
	}
}

// MoveMarker redraws just the marker cells of options prev and next.
func (c *Console) MoveMarker(m *menu.Model, prev, next int) {
	if _, ok := c.anchor(m); !ok || prev == next {
		return
	}
	saved := c.out.SaveCursorPos()
	for _, i := range []int{prev, next} {
		pos, ok := m.OptionPos(i)
		if !ok || !c.out.SetCursorPos(pos) {
			continue
		}
		c.out.Print(c.marker(i == next))
	}
	if saved {
		c.out.RestoreCursorPos()
	}
}

// write prints text and moves the menu's anchor along with any scrolling
// the text caused.
func (c *Console) write(m *menu.Model, text string) {
	if _, tracked := c.marks[m]; tracked {
		c.out.Print(text)
		c.sync(m)
		return
	}
	before := c.out.ScrollOffset()
	c.out.Print(text)
	m.ShiftAnchor(c.out.ScrollOffset() - before)
}

// anchor is m's anchor after catching up with main context scrolling.
func (c *Console) anchor(m *menu.Model) (surface.Coordinate, bool) {
	c.sync(m)
	return m.Anchor()
}

// sync moves the anchor of a menu drawn in the main context up by the rows
// the main context scrolled since the last sync. In emulated mode that
// includes scrolling done by alternate contexts drawn below it.
func (c *Console) sync(m *menu.Model) {
	mark, tracked := c.marks[m]
	if !tracked {
		return
	}
	if _, ok := m.Anchor(); !ok {
		delete(c.marks, m)
		return
	}
	now := c.out.MainScroll()
	m.ShiftAnchor(now - mark)
	c.marks[m] = now
}

// fit cuts rows short of the last column so none of them wraps.
func (c *Console) fit(rows []string, x int) {
	limit := c.out.Width() - x - 1
	if limit < 1 {
		return
	}
	for i, row := range rows {
		if ansi.StringWidth(row) > limit {
			rows[i] = ansi.Truncate(row, limit, "")
		}
	}
}

func (c *Console) clearFrom(pos surface.Coordinate) {
	c.out.SetCursorPos(pos)
	c.out.Clear(true, false)
}

func (c *Console) blockWidth(m *menu.Model, withInstructions bool) int {
	width := m.Width()
	if !withInstructions {
		return width
	}
	for _, line := range m.Instructions() {
		if w := ansi.StringWidth(line); w > width {
			width = w
		}
	}
	return width
}

func (c *Console) optionRows(m *menu.Model, width int) []string {
	sel, _ := m.Selection()
	layout := m.Layout()
	rows := make([]string, 0, len(layout))
	for _, row := range layout {
		var body string
		switch row.Kind {
		case menu.RowArrowUp:
			body = c.styles.Arrow.Render("  " + arrowUp)
		case menu.RowArrowDown:
			body = c.styles.Arrow.Render("  " + arrowDown)
		case menu.RowPadding:
			body = ""
		case menu.RowOption:
			body = c.optionBody(m, row.Index, row.Index == sel)
		}
		rows = append(rows, frame(m, pad(body, width)))
	}
	return rows
}

func (c *Console) optionBody(m *menu.Model, i int, selected bool) string {
	o, _ := m.Option(i)
	style := c.styles.Option
	if o.Disabled {
		style = c.styles.Disabled
	}
	return c.marker(selected) + " " + style.Render(m.Label(i))
}

func (c *Console) marker(selected bool) string {
	if !selected {
		return " "
	}
	return c.styles.Marker.Render(markerGlyph)
}

func (c *Console) instructionRows(m *menu.Model, width int) []string {
	lines := m.Instructions()
	var rows []string
	if m.Separator != "" {
		rows = append(rows, frame(m, c.separator(m.Separator, width)))
	}
	for _, line := range lines {
		rows = append(rows, frame(m, pad(c.styles.Instruction.Render(line), width)))
	}
	if m.Separator != "" {
		rows = append(rows, frame(m, c.separator(m.Separator, width)))
	}
	return rows
}

func (c *Console) separator(unit string, width int) string {
	w := ansi.StringWidth(unit)
	if w == 0 {
		return blank(width)
	}
	line := strings.Repeat(unit, width/w)
	return c.styles.Separator.Render(pad(line, width))
}

// statusPos is the row just below the rendered block.
func (c *Console) statusPos(m *menu.Model) (surface.Coordinate, bool) {
	anchor, ok := c.anchor(m)
	if !ok {
		return surface.Coordinate{}, false
	}
	options, footer := m.RenderedRows()
	return surface.Coordinate{X: anchor.X, Y: anchor.Y + options + footer}, true
}

// drawStatus writes msg on the status row, truncated to the surface width,
// and leaves the cursor at the start of that row.
func (c *Console) drawStatus(m *menu.Model, msg string) {
	pos, ok := c.statusPos(m)
	if !ok || !c.out.SetCursorPos(pos) {
		return
	}
	c.out.ClearLine()
	room := c.out.Width() - pos.X - 1
	if room < 1 {
		room = 1
	}
	text := msg
	if ansi.StringWidth(text) > room {
		text = truncate.StringWithTail(text, uint(room), statusTail)
	}
	c.out.Print(c.styles.Status.Render(text))
	c.out.SetCursorPos(pos)
}

func (c *Console) eraseStatus(m *menu.Model) {
	pos, ok := c.statusPos(m)
	if !ok || !c.out.SetCursorPos(pos) {
		return
	}
	c.out.ClearLine()
}

func frame(m *menu.Model, body string) string {
	return m.Prefix + body + m.Suffix
}

func pad(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func blank(width int) string {
	return strings.Repeat(" ", width)
}

// box renders a title inside the title style's border, falling back to a
// plain rule when the style draws no border.
func (c *Console) box(title string) string {
	rendered := c.styles.Title.Render(title)
	if c.styles.Title.GetBorderStyle() != (lipgloss.Border{}) {
		return rendered
	}
	return rendered + "\n" + strings.Repeat("=", ansi.StringWidth(title))
}
