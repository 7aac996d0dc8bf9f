package app

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/termconsole/internal/console"
	"github.com/atomicstack/termconsole/internal/format/table"
	"github.com/atomicstack/termconsole/internal/input"
	"github.com/atomicstack/termconsole/internal/logging/events"
	"github.com/atomicstack/termconsole/internal/menu"
)

const (
	separator   = "─"
	searchLabel = "find: "
	searchLimit = 64
)

// pickerKeys are the bindings of the picker's own actions.
type pickerKeys struct {
	Delete key.Binding
	Clear  key.Binding
	Search key.Binding
}

func defaultPickerKeys() pickerKeys {
	return pickerKeys{
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("DEL", "delete the selected item"),
		),
		Clear: key.NewBinding(
			key.WithKeys("shift+delete"),
			key.WithHelp("Shift+DEL", "delete every item"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search the items"),
		),
	}
}

// Picker lists supplied items on a console and lets the user choose one,
// search, or delete items after confirming.
type Picker struct {
	console *console.Console
	confirm menu.Confirmer
	items   []menu.Item
	model   *menu.Model
	title   string
	timeout time.Duration
	keys    pickerKeys
}

// NewPicker builds the menu for the items supplier returns. Tab separated
// item text is shown in aligned columns.
func NewPicker(c *console.Console, supplier menu.Supplier, cfg Config) *Picker {
	p := &Picker{
		console: c,
		confirm: c,
		items:   supplier.Items(),
		title:   cfg.Title,
		timeout: cfg.Timeout,
		keys:    defaultPickerKeys(),
	}
	options := menu.OptionsFrom(p.items)
	texts := make([]string, len(options))
	for i, o := range options {
		texts[i] = o.Text
	}
	for i, text := range table.Align(texts) {
		options[i].Text = text
	}
	p.model = menu.New(options,
		menu.WithFrame(" ", "", separator),
		menu.WithMinWidth(cfg.MinWidth),
		menu.WithMaxVisibleLines(cfg.MaxLines),
		menu.WithActions(p.searchAction(), p.deleteAction(), p.clearAction()),
		menu.WithSelection(firstEnabled(options)),
	)
	return p
}

// Model exposes the picker's menu.
func (p *Picker) Model() *menu.Model { return p.model }

// Items returns the items still listed.
func (p *Picker) Items() []menu.Item {
	return append([]menu.Item(nil), p.items...)
}

// Run shows the title and menu, waits for a choice, and erases everything it
// drew before returning.
func (p *Picker) Run() (menu.Item, error) {
	if p.model.Len() == 0 {
		return menu.Item{}, console.ErrNoItems
	}
	out := p.console.Out()
	start, scroll := out.CursorPos(), out.MainScroll()
	if p.title != "" {
		p.console.PrintHeading(p.title, "")
	}

	sel := p.console.WaitForSelection(p.model, p.timeout)

	p.console.EraseMenu(p.model)
	start.Y -= out.MainScroll() - scroll
	if start.Y < 0 {
		start.Y = 0
	}
	if out.SetCursorPos(start) {
		out.Clear(true, false)
	}

	switch {
	case sel.OK():
		item := p.items[sel.Index]
		events.Action.Success(fmt.Sprintf("picked %q", item.Text))
		return item, nil
	case p.model.Len() == 0:
		err := fmt.Errorf("every item was deleted: %w", console.ErrNoItems)
		events.Action.Error(err)
		return menu.Item{}, err
	case sel.Reason == console.TimedOut:
		return menu.Item{}, ErrTimedOut
	default:
		return menu.Item{}, ErrNoSelection
	}
}

func (p *Picker) remove(i int) {
	p.items = slices.Delete(p.items, i, i+1)
	p.model.Remove(i)
}

func (p *Picker) deleteAction() menu.Action {
	return menu.Action{
		Handle: func(ev input.Event, m *menu.Model, c menu.Console, sel *int) menu.Result {
			if !key.Matches(ev, p.keys.Delete) {
				return menu.Continue
			}
			o, ok := m.Option(*sel)
			if !ok {
				m.SetStatusMessage("Nothing is selected.")
				return menu.StopHandlerChain
			}
			switch p.confirm.Confirm("Delete this item?", o.Text) {
			case menu.ConfirmYes:
				p.remove(*sel)
				events.Action.Success(fmt.Sprintf("deleted %q", o.Text))
				m.SetStatusMessage(fmt.Sprintf("Deleted %q.", o.Text))
			case menu.ConfirmNo:
				m.SetStatusMessage(fmt.Sprintf("Kept %q.", o.Text))
			}
			if m.Len() == 0 {
				*sel = menu.NoSelection
				return menu.StopEntireList
			}
			*sel, _ = m.Selection()
			c.RenderOptions(m)
			return menu.StopHandlerChain
		},
		Instructions: []string{menu.Instruction(p.keys.Delete)},
	}
}

func (p *Picker) clearAction() menu.Action {
	return menu.Action{
		Handle: func(ev input.Event, m *menu.Model, c menu.Console, sel *int) menu.Result {
			if !key.Matches(ev, p.keys.Clear) {
				return menu.Continue
			}
			subtitle := fmt.Sprintf("%d items will be removed.", m.Len())
			if p.confirm.Confirm("Delete every item?", subtitle) != menu.ConfirmYes {
				m.SetStatusMessage("Nothing was deleted.")
				c.RenderOptions(m)
				return menu.StopHandlerChain
			}
			events.Action.Success(fmt.Sprintf("deleted %d items", m.Len()))
			p.items = nil
			m.SetOptions(nil)
			*sel = menu.NoSelection
			return menu.StopEntireList
		},
		Instructions: []string{menu.Instruction(p.keys.Clear)},
	}
}

func (p *Picker) searchAction() menu.Action {
	return menu.Action{
		Handle: func(ev input.Event, m *menu.Model, _ menu.Console, sel *int) menu.Result {
			if !key.Matches(ev, p.keys.Search) {
				return menu.Continue
			}
			query, ok := p.console.Prompt(m, searchLabel, searchLimit)
			query = strings.TrimSpace(query)
			if !ok || query == "" {
				return menu.StopHandlerChain
			}
			best, found := bestMatch(query, m.Options())
			if !found {
				m.SetStatusMessage(fmt.Sprintf("No match for %q.", query))
				return menu.StopHandlerChain
			}
			*sel = best
			return menu.StopHandlerChain
		},
		Instructions: []string{menu.Instruction(p.keys.Search)},
	}
}

// bestMatch ranks the enabled options against query and returns the closest
// one, preferring earlier options on ties.
func bestMatch(query string, options []menu.Option) (int, bool) {
	targets := make([]string, len(options))
	for i, o := range options {
		targets[i] = o.Text
	}
	ranks := fuzzy.RankFindNormalizedFold(query, targets)
	slices.SortFunc(ranks, func(a, b fuzzy.Rank) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.OriginalIndex, b.OriginalIndex)
	})
	for _, r := range ranks {
		if !options[r.OriginalIndex].Disabled {
			return r.OriginalIndex, true
		}
	}
	return menu.NoSelection, false
}

func firstEnabled(options []menu.Option) int {
	for i, o := range options {
		if !o.Disabled {
			return i
		}
	}
	return menu.NoSelection
}
