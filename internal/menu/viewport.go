package menu

import (
	"unicode"

	"github.com/atomicstack/termconsole/internal/input"
	"github.com/atomicstack/termconsole/internal/logging/events"
)

// Select moves the selection to next and recomputes the viewport when the
// new selection falls outside it. It reports whether the viewport moved.
// An index outside the option list is ignored.
func (m *Model) Select(next int) bool {
	if next < 0 || next >= len(m.options) {
		return false
	}
	prev := m.selection
	m.selection = next
	events.Menu.Cursor(prev, next)

	oldTop := m.top
	if prev < 0 {
		prev = m.top
	}
	switch {
	case next < m.top:
		m.top -= prev - next
		if m.top > next {
			m.top = next
		}
		if m.top < 0 {
			m.top = 0
		}
	case next > m.bottom && m.bottom < len(m.options)-1:
		m.advanceTop()
	}
	m.refresh()
	m.ensureVisible()

	if m.top != oldTop {
		events.Menu.Viewport(m.top, m.bottom)
		return true
	}
	return false
}

// advanceTop walks top forward one option at a time until the block from
// top through the selection fits the row budget.
func (m *Model) advanceTop() {
	for m.top < m.selection && !m.fits(m.top, m.selection) {
		m.top++
	}
}

// ensureVisible is the last guard keeping the selection on screen.
func (m *Model) ensureVisible() {
	if m.selection < 0 || m.selection >= len(m.options) {
		return
	}
	if m.selection < m.top {
		m.top = m.selection
		m.refresh()
	}
	for m.selection > m.bottom && m.top < m.selection {
		m.top++
		m.refresh()
	}
}

// refresh recomputes bottom for the current top.
func (m *Model) refresh() {
	if len(m.options) == 0 {
		m.top, m.bottom = 0, -1
		return
	}
	if m.top < 0 {
		m.top = 0
	}
	if m.top >= len(m.options) {
		m.top = len(m.options) - 1
	}
	m.bottom = m.top
	for i := m.top + 1; i < len(m.options) && m.fits(m.top, i); i++ {
		m.bottom = i
	}
}

// span counts the rows options first..last occupy when first opens the
// viewport and last closes it: the outer padding of the block is not drawn.
func (m *Model) span(first, last int) int {
	rows := 0
	for i := first; i <= last; i++ {
		rows += m.options[i].Lines()
	}
	if m.options[first].Padding.Top {
		rows--
	}
	if m.options[last].Padding.Bottom {
		rows--
	}
	return rows
}

// budget is the row allowance for options when top opens the viewport and
// last is the final option drawn.
func (m *Model) budget(top, last int) int {
	b := m.maxLines
	if top > 0 {
		b--
	}
	if last < len(m.options)-1 {
		b--
	}
	return b
}

func (m *Model) fits(top, last int) bool {
	return m.span(top, last) <= m.budget(top, last)
}

// Navigate interprets a navigation key and returns the option it selects,
// which may be the current one. It reports false when the key selects
// nothing.
func (m *Model) Navigate(ev input.Event) (int, bool) {
	switch {
	case m.keys.matches(ev, m.keys.Up):
		return m.step(-1)
	case m.keys.matches(ev, m.keys.Down):
		return m.step(1)
	}
	if i, ok := m.hotkey(ev); ok {
		return i, true
	}
	if n, ok := ev.Digit(); ok {
		return m.positional(n)
	}
	return NoSelection, false
}

// step finds the nearest enabled option in direction dir.
func (m *Model) step(dir int) (int, bool) {
	if len(m.options) == 0 {
		return NoSelection, false
	}
	from := m.selection
	if from < 0 {
		if dir > 0 {
			from = m.top - 1
		} else {
			from = len(m.options)
		}
	}
	for i := from + dir; i >= 0 && i < len(m.options); i += dir {
		if !m.options[i].Disabled {
			return i, true
		}
	}
	return NoSelection, false
}

// positional resolves digit n to the nth option without a hotkey, counting
// from the top of the viewport.
func (m *Model) positional(n int) (int, bool) {
	seen := 0
	for i := m.top; i < len(m.options); i++ {
		if m.options[i].Hotkey != 0 {
			continue
		}
		seen++
		if seen == n {
			if m.options[i].Disabled {
				return NoSelection, false
			}
			return i, true
		}
	}
	return NoSelection, false
}

func (m *Model) hotkey(ev input.Event) (int, bool) {
	if !ev.Printable() {
		return NoSelection, false
	}
	want := unicode.ToLower(ev.Rune)
	for i, o := range m.options {
		if o.Disabled || o.Hotkey == 0 {
			continue
		}
		if unicode.ToLower(o.Hotkey) == want {
			return i, true
		}
	}
	return NoSelection, false
}
