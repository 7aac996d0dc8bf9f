package console

import (
	"github.com/atomicstack/termconsole/internal/menu"
)

// PrintHeading starts a fresh row and prints title in a box, then subtitle
// when it is set, then a blank line.
func (c *Console) PrintHeading(title, subtitle string) {
	if c.out.CursorPos().X > 0 {
		c.out.Print("\n")
	}
	c.out.Println(c.box(title))
	if subtitle != "" {
		c.out.Println(c.styles.Subtitle.Render(subtitle))
	}
	c.out.Print("\n")
}

// Prompt reads a line of text on the row below an anchored menu, with the
// cursor shown while typing. The row is cleared again before it returns and
// the cursor goes back where it was. It reports false when the menu is not
// on screen or the input was abandoned.
func (c *Console) Prompt(m *menu.Model, label string, maxLength int) (string, bool) {
	pos, ok := c.statusPos(m)
	if !ok {
		return "", false
	}
	saved := c.out.SaveCursorPos()
	if !c.out.SetCursorPos(pos) {
		if saved {
			c.out.RestoreCursorPos()
		}
		return "", false
	}
	visible := c.out.CursorVisible()
	c.out.ClearLine()
	c.out.Print(c.styles.Prompt.Render(label))
	c.out.SetCursorVisible(true)

	line, ok := c.WaitForLine(maxLength)

	c.out.SetCursorPos(pos)
	c.out.ClearLine()
	c.out.SetCursorVisible(visible)
	if saved {
		c.out.RestoreCursorPos()
	}
	return line, ok
}

// EraseMenu clears everything from the menu's anchor down and forgets the
// anchor, leaving the cursor where the menu began.
func (c *Console) EraseMenu(m *menu.Model) {
	anchor, ok := c.anchor(m)
	if !ok {
		return
	}
	c.clearFrom(anchor)
	m.ResetAnchor()
	delete(c.marks, m)
}
