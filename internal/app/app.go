package app

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/termconsole/internal/console"
	"github.com/atomicstack/termconsole/internal/menu"
	"github.com/atomicstack/termconsole/internal/surface"
	"github.com/atomicstack/termconsole/internal/terminal"
)

// Config describes user-provided application options.
type Config struct {
	Mode        surface.Mode
	MaxLines    int
	MinWidth    int
	Timeout     time.Duration
	Title       string
	Items       []string
	ItemsFile   string
	AutoConfirm bool
}

var (
	// ErrNoSelection is returned when the picker is dismissed.
	ErrNoSelection = errors.New("no item selected")
	// ErrTimedOut is returned when nothing was picked before the timeout.
	ErrTimedOut = errors.New("selection timed out")
)

const ttyPath = "/dev/tty"

// Run shows the picker on the controlling terminal and prints the chosen
// item to stdout once the terminal is restored.
func Run(cfg Config) error {
	items, err := LoadItems(cfg.Items, cfg.ItemsFile)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer f.Close()

	item, err := choose(f, items, cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, item.Text)
	return err
}

func choose(f *os.File, items []menu.Item, cfg Config) (menu.Item, error) {
	tty, err := terminal.Open(f, f)
	if err != nil {
		return menu.Item{}, fmt.Errorf("open terminal: %w", err)
	}
	defer tty.Close()

	c, err := console.New(tty, tty, tty,
		console.WithMode(cfg.Mode),
		console.WithAutoConfirm(cfg.AutoConfirm),
	)
	if err != nil {
		return menu.Item{}, err
	}
	defer c.Close()

	supplier := menu.SupplierFunc(func() []menu.Item { return items })
	return NewPicker(c, supplier, cfg).Run()
}

// LoadItems collects items from the given lines followed by the lines of
// path, when set. Blank lines are skipped.
func LoadItems(lines []string, path string) ([]menu.Item, error) {
	var items []menu.Item
	for _, line := range lines {
		if item, ok := menu.ParseItem(line); ok {
			items = append(items, item)
		}
	}
	if path == "" {
		return items, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if item, ok := menu.ParseItem(scanner.Text()); ok {
			items = append(items, item)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read items %s: %w", path, err)
	}
	return items, nil
}
