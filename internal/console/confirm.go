package console

import (
	"unicode"

	"github.com/atomicstack/termconsole/internal/input"
	"github.com/atomicstack/termconsole/internal/logging/events"
	"github.com/atomicstack/termconsole/internal/menu"
)

const (
	confirmYes = iota
	confirmNo
)

// Confirm asks a yes/no question in an alternate context with the cursor
// hidden. Pressing y or n answers at once; Escape cancels. The display is
// restored before it returns.
func (c *Console) Confirm(title, subtitle string) menu.Confirmation {
	if c.autoConfirm {
		events.Console.Confirm(title, menu.ConfirmYes.String())
		return menu.ConfirmYes
	}

	_, pushed := c.out.PushAlternate()
	start, offset := c.out.CursorPos(), c.out.ScrollOffset()
	visible := c.out.CursorVisible()
	c.out.SetCursorVisible(false)

	c.PrintHeading(title, subtitle)

	m := menu.New(
		[]menu.Option{
			{Text: "Yes", Hotkey: 'y'},
			{Text: "No", Hotkey: 'n'},
		},
		menu.WithActions(answerAction()),
		menu.WithSelection(confirmNo),
	)
	sel := c.WaitForSelection(m, 0)

	if pushed {
		c.out.PopAlternate()
	} else {
		c.EraseMenu(m)
		start.Y = max(start.Y-(c.out.ScrollOffset()-offset), 0)
		c.clearFrom(start)
		c.out.SetCursorVisible(visible)
	}

	answer := menu.ConfirmCancelled
	if sel.OK() {
		switch sel.Index {
		case confirmYes:
			answer = menu.ConfirmYes
		case confirmNo:
			answer = menu.ConfirmNo
		}
	}
	events.Console.Confirm(title, answer.String())
	return answer
}

// answerAction ends the prompt as soon as a hotkey is pressed.
func answerAction() menu.Action {
	return menu.Action{
		Handle: func(ev input.Event, m *menu.Model, _ menu.Console, sel *int) menu.Result {
			if !ev.Printable() {
				return menu.Continue
			}
			for i, o := range m.Options() {
				if unicode.ToLower(o.Hotkey) == unicode.ToLower(ev.Rune) {
					*sel = i
					return menu.StopEntireList
				}
			}
			return menu.Continue
		},
	}
}
