package menu

import "strings"

// Padding adds blank space around an option. Top and Bottom each occupy a
// full row; Left indents the option and Right reserves trailing columns.
type Padding struct {
	Top    bool
	Left   bool
	Right  bool
	Bottom bool
}

// Option is one selectable entry.
type Option struct {
	Text     string
	Hotkey   rune // 0 means the option is numbered by position instead
	Disabled bool
	Padding  Padding
}

// Lines reports how many rows the option occupies.
func (o Option) Lines() int {
	n := 1
	if o.Padding.Top {
		n++
	}
	if o.Padding.Bottom {
		n++
	}
	return n
}

// Item is the display metadata an external supplier provides for one
// selectable thing.
type Item struct {
	Text     string
	Hotkey   rune
	Disabled bool
}

// Supplier provides the items a menu lists.
type Supplier interface {
	Items() []Item
}

// SupplierFunc adapts a function to Supplier.
type SupplierFunc func() []Item

func (f SupplierFunc) Items() []Item { return f() }

// OptionsFrom converts supplied items into options.
func OptionsFrom(items []Item) []Option {
	opts := make([]Option, len(items))
	for i, item := range items {
		opts[i] = Option{Text: item.Text, Hotkey: item.Hotkey, Disabled: item.Disabled}
	}
	return opts
}

// ParseItem reads the compact "k:text" form, where a single leading
// character before the colon is the hotkey. A leading "!" disables the item.
func ParseItem(line string) (Item, bool) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return Item{}, false
	}
	var item Item
	if strings.HasPrefix(line, "!") {
		item.Disabled = true
		line = line[1:]
	}
	if runes := []rune(line); len(runes) > 2 && runes[1] == ':' && runes[0] != ' ' {
		item.Hotkey = runes[0]
		line = string(runes[2:])
	}
	item.Text = strings.TrimSpace(line)
	return item, item.Text != ""
}

// Confirmation is the answer to a yes/no prompt.
type Confirmation int

const (
	ConfirmCancelled Confirmation = iota
	ConfirmYes
	ConfirmNo
)

func (c Confirmation) String() string {
	switch c {
	case ConfirmYes:
		return "yes"
	case ConfirmNo:
		return "no"
	default:
		return "cancelled"
	}
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(title, subtitle string) Confirmation
}
