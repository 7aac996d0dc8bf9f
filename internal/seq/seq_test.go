package seq

import (
	"strings"
	"testing"
)

func TestClassifyRecognizedShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		len   int
	}{
		{"cursor position", "\x1b[12;40Hx", KindCursorMove, 8},
		{"cursor home", "\x1b[H", KindCursorMove, 3},
		{"cursor up", "\x1b[3A", KindCursorMove, 4},
		{"column absolute", "\x1b[5G", KindCursorMove, 4},
		{"show cursor", "\x1b[?25h", KindCursorVisibility, 6},
		{"hide cursor", "\x1b[?25l", KindCursorVisibility, 6},
		{"alt screen", "\x1b[?1049h", KindMode, 8},
		{"save dec", "\x1b7", KindCursorSaveRestore, 2},
		{"restore csi", "\x1b[u", KindCursorSaveRestore, 3},
		{"reset color", "\x1b[0m", KindColor, 4},
		{"bare sgr", "\x1b[m", KindColor, 3},
		{"gray fg", "\x1b[90mtext", KindColor, 5},
		{"256 color", "\x1b[38;5;214m", KindColor, 11},
		{"erase below", "\x1b[J", KindErase, 3},
		{"erase line", "\x1b[2K", KindErase, 4},
		{"scroll up", "\x1b[2S", KindScroll, 4},
		{"cursor report", "\x1b[6n", KindQuery, 4},
		{"soft reset", "\x1b[!p", KindQuery, 4},
		{"palette decimal", "\x1b]4;12;rgb;255;0;10\x07", KindPalette, 20},
		{"palette hex st", "\x1b]4;1;rgb:ff/00/7f\x1b\\", KindPalette, 20},
		{"charset", "\x1b(B", KindCharset, 3},
		{"keypad", "\x1b=", KindSimple, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := ClassifyString(tt.input, 0)
			if !ok {
				t.Fatalf("expected %q to be recognized", tt.input)
			}
			if m.Kind != tt.kind {
				t.Fatalf("expected kind %v, got %v", tt.kind, m.Kind)
			}
			if m.Len != tt.len {
				t.Fatalf("expected length %d, got %d", tt.len, m.Len)
			}
		})
	}
}

func TestClassifyRejectsUnknownShapes(t *testing.T) {
	inputs := []string{
		"\x1b",
		"\x1b[",
		"\x1b[99999H",
		"\x1b]4;1;rgb;1;2;3",
		"\x1bZ",
		"x\x1b[0m",
		"\x1b[1\x1b[0m",
		"\x1b[3;2~",
		"\x1b[?25;1h",
		"\x1b[>4m",
		"\x1b[5 q",
		"\x1b[" + strings.Repeat(";", 33) + "m",
		"\x1b(Q",
		"\x1b]4;1;rgb:ff/00\x07",
		"\x1b]52;c;aGk=\x07",
	}
	for _, input := range inputs {
		if m, ok := ClassifyString(input, 0); ok {
			t.Fatalf("expected %q to be literal, got %v (%d)", input, m.Kind, m.Len)
		}
	}
}

func TestClassifyManyParametersIsSafe(t *testing.T) {
	input := "\x1b[" + strings.Repeat(";", maxSequence) + "1m"
	if _, ok := ClassifyString(input, 0); ok {
		t.Fatalf("expected an overlong parameter list to be literal")
	}
}

func TestClassifyStopsAtFirstSequence(t *testing.T) {
	m, ok := ClassifyString("\x1b[0m\x1b[1m", 0)
	if !ok || m.Len != 4 {
		t.Fatalf("expected the first sequence only, got %v (%d)", m.Kind, m.Len)
	}
}

func TestClassifyAtOffset(t *testing.T) {
	text := []rune("héllo\x1b[1mworld")
	m, ok := Classify(text, 5)
	if !ok {
		t.Fatalf("expected sequence at rune offset 5")
	}
	if m.Kind != KindColor || m.Len != 4 {
		t.Fatalf("expected color of length 4, got %v of length %d", m.Kind, m.Len)
	}
	if _, ok := Classify(text, len(text)); ok {
		t.Fatalf("expected no match past the end")
	}
}

func TestKindString(t *testing.T) {
	if got := KindPalette.String(); got != "palette" {
		t.Fatalf("expected %q, got %q", "palette", got)
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Fatalf("expected %q, got %q", "unknown", got)
	}
}
