//go:build unix

package terminal

import (
	"errors"
	"os"
	"testing"
)

func TestParseCursorReport(t *testing.T) {
	tests := []struct {
		input    string
		row, col int
		start    int
		end      int
		ok       bool
	}{
		{"\x1b[12;40R", 12, 40, 0, 8, true},
		{"ab\x1b[1;1Rcd", 1, 1, 2, 8, true},
		{"\x1b[A\x1b[3;7R", 3, 7, 3, 9, true},
		{"\x1b[12;40", 0, 0, 0, 0, false},
		{"\x1b[;5R", 0, 0, 0, 0, false},
		{"plain", 0, 0, 0, 0, false},
	}
	for _, tt := range tests {
		row, col, start, end, ok := parseCursorReport([]byte(tt.input))
		if ok != tt.ok || row != tt.row || col != tt.col || (ok && (start != tt.start || end != tt.end)) {
			t.Fatalf("%q: expected (%d,%d,%d,%d,%v), got (%d,%d,%d,%d,%v)",
				tt.input, tt.row, tt.col, tt.start, tt.end, tt.ok, row, col, start, end, ok)
		}
	}
}

func TestCRLF(t *testing.T) {
	if got := string(crlf([]byte("a\nb\n"))); got != "a\r\nb\r\n" {
		t.Fatalf("expected CR LF line endings, got %q", got)
	}
	if got := string(crlf([]byte("plain"))); got != "plain" {
		t.Fatalf("expected text without newlines untouched, got %q", got)
	}
}

func TestOpenRejectsNonTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	defer r.Close()
	defer w.Close()

	if _, err := Open(r, w); !errors.Is(err, ErrNotTerminal) {
		t.Fatalf("expected ErrNotTerminal, got %v", err)
	}
}

func TestReadReturnsPendingFirst(t *testing.T) {
	tty := &TTY{pending: []byte("typed")}
	data, err := tty.Read(0)
	if err != nil || string(data) != "typed" {
		t.Fatalf("expected held input, got %q (%v)", data, err)
	}
	if len(tty.pending) != 0 {
		t.Fatalf("expected pending input consumed")
	}
}
