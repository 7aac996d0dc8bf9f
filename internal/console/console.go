// Package console ties one input reader and two output surfaces together and
// runs menus on them.
package console

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/termconsole/internal/input"
	"github.com/atomicstack/termconsole/internal/menu"
	"github.com/atomicstack/termconsole/internal/surface"
	"github.com/atomicstack/termconsole/internal/theme"
)

// ErrNoItems is returned when a menu with no options is rendered.
var ErrNoItems = errors.New("console: menu has no options")

// Console owns the input reader and the out and err surfaces. It is not
// safe for concurrent use.
type Console struct {
	in     *input.Reader
	out    *surface.Surface
	errOut *surface.Surface

	mode        surface.Mode
	styles      *theme.Styles
	now         func() time.Time
	autoConfirm bool

	// marks holds MainScroll as of the last anchor sync for menus anchored
	// in the main context.
	marks map[*menu.Model]int
}

// Option customises a Console at construction.
type Option func(*Console)

// WithMode selects how alternate contexts are realized on both surfaces.
func WithMode(mode surface.Mode) Option {
	return func(c *Console) { c.mode = mode }
}

// WithStyles replaces the default styles.
func WithStyles(styles *theme.Styles) Option {
	return func(c *Console) {
		if styles != nil {
			c.styles = styles
		}
	}
}

// WithClock replaces time.Now for selection timeouts.
func WithClock(now func() time.Time) Option {
	return func(c *Console) { c.now = now }
}

// WithAutoConfirm answers every confirmation with yes without asking.
func WithAutoConfirm(enabled bool) Option {
	return func(c *Console) { c.autoConfirm = enabled }
}

// New builds a console over the given handles. Each surface anchors at the
// cursor position its terminal reports.
func New(in input.Device, out, errOut surface.Terminal, opts ...Option) (*Console, error) {
	switch {
	case in == nil:
		return nil, fmt.Errorf("console: missing input handle")
	case out == nil:
		return nil, fmt.Errorf("console: missing output handle")
	case errOut == nil:
		return nil, fmt.Errorf("console: missing error handle")
	}
	c := &Console{
		styles: theme.Default(),
		now:    time.Now,
		marks:  make(map[*menu.Model]int),
	}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	c.out, err = surface.New(out, surface.WithMode(c.mode), surface.WithName("out"))
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}
	c.errOut, err = surface.New(errOut, surface.WithMode(c.mode), surface.WithName("err"))
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}
	c.in = input.NewReader(in)
	return c, nil
}

// Out returns the surface menus are drawn on.
func (c *Console) Out() *surface.Surface { return c.out }

// ErrOut returns the error surface.
func (c *Console) ErrOut() *surface.Surface { return c.errOut }

// Input returns the key reader.
func (c *Console) Input() *input.Reader { return c.in }

// InputErr reports the device failure that ended input, if any.
func (c *Console) InputErr() error { return c.in.Err() }

// Close unwinds every alternate context on both surfaces and shows the
// cursor again.
func (c *Console) Close() error {
	return errors.Join(c.out.Close(), c.errOut.Close())
}

func (c *Console) CursorPos() surface.Coordinate { return c.out.CursorPos() }

func (c *Console) SetCursorPos(pos surface.Coordinate) bool { return c.out.SetCursorPos(pos) }

func (c *Console) SaveCursorPos() bool { return c.out.SaveCursorPos() }

func (c *Console) RestoreCursorPos() (surface.Coordinate, bool) { return c.out.RestoreCursorPos() }

func (c *Console) Print(text string) { c.out.Print(text) }

func (c *Console) Println(text string) { c.out.Println(text) }

func (c *Console) Printf(format string, args ...interface{}) { c.out.Printf(format, args...) }

// PushAlternate opens an alternate context on the out surface.
func (c *Console) PushAlternate() (int, bool) { return c.out.PushAlternate() }

// PopAlternate closes the innermost alternate context on the out surface.
func (c *Console) PopAlternate() int { return c.out.PopAlternate() }

func (c *Console) WaitForEvent(flush bool, timeout time.Duration) (input.Event, bool) {
	return c.in.WaitForEvent(flush, timeout)
}

func (c *Console) WaitForChar(flush bool, timeout time.Duration) (rune, bool) {
	return c.in.WaitForChar(flush, timeout)
}

// WaitForLine reads a line, echoing it on the out surface.
func (c *Console) WaitForLine(maxLength int) (string, bool) {
	return c.in.WaitForLine(maxLength, echo{c.out})
}

// echo mirrors line editing on a surface.
type echo struct{ s *surface.Surface }

func (e echo) EchoRune(r rune) { e.s.Print(string(r)) }

func (e echo) EchoErase() {
	pos := e.s.CursorPos()
	if pos.X == 0 {
		return
	}
	pos.X--
	e.s.SetCursorPos(pos)
	e.s.ClearLine()
}
