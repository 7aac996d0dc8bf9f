// Package table lines up tab separated item text into columns.
package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const gutter = "  "

// Align splits each text on tabs and pads every column to its widest cell.
// Texts without tabs pass through unchanged and do not affect the widths.
// A column whose cells are all numeric is right aligned.
func Align(texts []string) []string {
	var rows [][]string
	var at []int
	for i, text := range texts {
		if !strings.Contains(text, "\t") {
			continue
		}
		rows = append(rows, strings.Split(text, "\t"))
		at = append(at, i)
	}
	out := append([]string(nil), texts...)
	if len(rows) == 0 {
		return out
	}
	for i, line := range Format(rows, alignments(rows)) {
		out[at[i]] = strings.TrimRight(line, " ")
	}
	return out
}

// Format returns the rows padded to the widest cell of each column. Rows may
// have different lengths.
func Format(rows [][]string, aligns []Alignment) []string {
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			if c == len(widths) {
				widths = append(widths, 0)
			}
			if w := ansi.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(gutter)
			}
			fill := strings.Repeat(" ", widths[c]-ansi.StringWidth(cell))
			if c < len(aligns) && aligns[c] == AlignRight {
				b.WriteString(fill + cell)
			} else {
				b.WriteString(cell + fill)
			}
		}
		out[i] = b.String()
	}
	return out
}

func alignments(rows [][]string) []Alignment {
	var numeric []bool
	for _, row := range rows {
		for c, cell := range row {
			if c == len(numeric) {
				numeric = append(numeric, true)
			}
			if !isNumber(strings.TrimSpace(cell)) {
				numeric[c] = false
			}
		}
	}
	aligns := make([]Alignment, len(numeric))
	for c, n := range numeric {
		if n {
			aligns[c] = AlignRight
		}
	}
	return aligns
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' {
			return false
		}
	}
	return true
}
