// Package menu holds the state of a paginated, hotkey-driven selection menu
// and the ordered pipeline of key handlers that act on it.
package menu

import (
	"time"

	"github.com/atomicstack/termconsole/internal/surface"
)

const (
	// DefaultMaxVisibleLines is the row budget for options and scroll
	// arrows when none is configured.
	DefaultMaxVisibleLines = 9
	minVisibleLines        = 3

	// StatusLifetime is how long an issued status message stays on screen.
	StatusLifetime = 5 * time.Second

	// NoSelection marks an empty selection.
	NoSelection = -1
)

// Model is the state of one menu screen. It belongs to the caller and is
// not safe for concurrent use.
type Model struct {
	Prefix    string
	Suffix    string
	Separator string
	MinWidth  int

	options  []Option
	actions  []Action
	keys     KeyMap
	defaults bool
	maxLines int

	selection int
	top       int
	bottom    int

	anchor    surface.Coordinate
	hasAnchor bool
	rendered  int
	footer    int

	status   string
	issuedAt time.Time
	now      func() time.Time
}

// ModelOption customises a Model at construction.
type ModelOption func(*Model)

// WithFrame sets the strings framing every row and the instruction block.
func WithFrame(prefix, suffix, separator string) ModelOption {
	return func(m *Model) {
		m.Prefix, m.Suffix, m.Separator = prefix, suffix, separator
	}
}

// WithMinWidth pads every option row to at least width columns.
func WithMinWidth(width int) ModelOption {
	return func(m *Model) { m.MinWidth = width }
}

// WithMaxVisibleLines sets the row budget for options and scroll arrows.
func WithMaxVisibleLines(lines int) ModelOption {
	return func(m *Model) { m.maxLines = lines }
}

// WithActions adds handlers that run before the built-in ones.
func WithActions(actions ...Action) ModelOption {
	return func(m *Model) { m.actions = append(m.actions, actions...) }
}

// WithoutDefaultActions leaves navigation and escape handling to the
// caller's actions.
func WithoutDefaultActions() ModelOption {
	return func(m *Model) { m.defaults = false }
}

// WithKeyMap replaces the bindings used by the built-in handlers.
func WithKeyMap(keys KeyMap) ModelOption {
	return func(m *Model) { m.keys = keys }
}

// WithSelection preselects an option.
func WithSelection(index int) ModelOption {
	return func(m *Model) { m.selection = index }
}

// WithClock replaces time.Now for status expiry.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// New builds a model over options.
func New(options []Option, opts ...ModelOption) *Model {
	m := &Model{
		options:   append([]Option(nil), options...),
		keys:      DefaultKeyMap(),
		defaults:  true,
		maxLines:  DefaultMaxVisibleLines,
		selection: NoSelection,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.maxLines < minVisibleLines {
		m.maxLines = minVisibleLines
	}
	if m.defaults {
		m.actions = append(m.actions, NavigationAction(), EscapeAction())
	}
	if m.selection >= len(m.options) {
		m.selection = NoSelection
	}
	m.refresh()
	if m.selection != NoSelection {
		m.ensureVisible()
	}
	return m
}

// Len reports the number of options.
func (m *Model) Len() int { return len(m.options) }

// Option returns the option at index i.
func (m *Model) Option(i int) (Option, bool) {
	if i < 0 || i >= len(m.options) {
		return Option{}, false
	}
	return m.options[i], true
}

// Options returns a copy of the option list.
func (m *Model) Options() []Option {
	return append([]Option(nil), m.options...)
}

// SetOptions replaces the option list, keeping the selection when it is
// still in range.
func (m *Model) SetOptions(options []Option) {
	m.options = append([]Option(nil), options...)
	if m.selection >= len(m.options) {
		m.selection = len(m.options) - 1
	}
	if m.top >= len(m.options) {
		m.top = 0
	}
	m.refresh()
	m.ensureVisible()
}

// SetOption updates the option at index i in place.
func (m *Model) SetOption(i int, o Option) bool {
	if i < 0 || i >= len(m.options) {
		return false
	}
	m.options[i] = o
	m.refresh()
	m.ensureVisible()
	return true
}

// Remove deletes the option at index i. The selection moves to the option
// that takes its place, or the new last option.
func (m *Model) Remove(i int) bool {
	if i < 0 || i >= len(m.options) {
		return false
	}
	m.options = append(m.options[:i], m.options[i+1:]...)
	if m.selection > i || m.selection >= len(m.options) {
		m.selection--
	}
	if m.top > 0 && m.top >= len(m.options) {
		m.top = len(m.options) - 1
	}
	if m.top < 0 {
		m.top = 0
	}
	m.refresh()
	m.ensureVisible()
	return true
}

// Actions returns the handler pipeline in evaluation order.
func (m *Model) Actions() []Action {
	return append([]Action(nil), m.actions...)
}

// Keys returns the bindings used by the built-in handlers.
func (m *Model) Keys() KeyMap { return m.keys }

// MaxVisibleLines reports the row budget for options and arrows.
func (m *Model) MaxVisibleLines() int { return m.maxLines }

// Selection returns the selected index.
func (m *Model) Selection() (int, bool) {
	if m.selection < 0 || m.selection >= len(m.options) {
		return NoSelection, false
	}
	return m.selection, true
}

// ClearSelection empties the selection.
func (m *Model) ClearSelection() {
	m.selection = NoSelection
	m.refresh()
}

// Top returns the first visible option.
func (m *Model) Top() int { return m.top }

// Bottom returns the last visible option.
func (m *Model) Bottom() int { return m.bottom }

// Anchor returns where the menu's first row is drawn.
func (m *Model) Anchor() (surface.Coordinate, bool) {
	return m.anchor, m.hasAnchor
}

// SetAnchor records where the menu's first row is drawn.
func (m *Model) SetAnchor(c surface.Coordinate) {
	m.anchor, m.hasAnchor = c, true
}

// ShiftAnchor moves the anchor up by rows after the display scrolled,
// stopping at the top row.
func (m *Model) ShiftAnchor(rows int) {
	if !m.hasAnchor || rows <= 0 {
		return
	}
	m.anchor.Y -= rows
	if m.anchor.Y < 0 {
		m.anchor.Y = 0
	}
}

// ResetAnchor forgets the anchor so the next render sets it again.
func (m *Model) ResetAnchor() {
	m.hasAnchor = false
	m.rendered, m.footer = 0, 0
}

// RenderedRows reports how many option rows and footer rows the last
// render drew.
func (m *Model) RenderedRows() (options, footer int) {
	return m.rendered, m.footer
}

// SetRenderedRows records the height of a render.
func (m *Model) SetRenderedRows(options, footer int) {
	m.rendered, m.footer = options, footer
}

// Instructions collects the instruction lines of every action in order.
func (m *Model) Instructions() []string {
	var lines []string
	for _, a := range m.actions {
		lines = append(lines, a.Instructions...)
	}
	return lines
}
