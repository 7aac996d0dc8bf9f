package input

import (
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/atomicstack/termconsole/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithTempLog(m))
}

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a", "a"},
		{"\r", "enter"},
		{"\n", "enter"},
		{"\t", "tab"},
		{"\x7f", "backspace"},
		{"\x03", "ctrl+c"},
		{"\x1b[A", "up"},
		{"\x1bOB", "down"},
		{"\x1b[H", "home"},
		{"\x1b[5~", "pgup"},
		{"\x1b[3~", "delete"},
		{"\x1b[3;2~", "shift+delete"},
		{"\x1b[1;5C", "ctrl+right"},
		{"\x1b[Z", "shift+tab"},
		{"\x1bx", "alt+x"},
		{"é", "é"},
	}
	for _, tt := range tests {
		evs, n := decode([]byte(tt.input))
		if n != len(tt.input) {
			t.Fatalf("%q: expected %d bytes consumed, got %d", tt.input, len(tt.input), n)
		}
		if len(evs) != 1 {
			t.Fatalf("%q: expected one event, got %v", tt.input, evs)
		}
		if got := evs[0].String(); got != tt.want {
			t.Fatalf("%q: expected %q, got %q", tt.input, tt.want, got)
		}
	}
}

func TestDecodeStopsAtIncompleteSequence(t *testing.T) {
	for _, input := range []string{"\x1b", "\x1b[", "\x1b[3;", "\xc3"} {
		evs, n := decode([]byte("k" + input))
		if n != 1 {
			t.Fatalf("%q: expected only the first byte consumed, got %d", input, n)
		}
		if len(evs) != 1 || evs[0].Rune != 'k' {
			t.Fatalf("%q: expected the leading key only, got %v", input, evs)
		}
	}
}

func TestWaitForEventDoubleEscape(t *testing.T) {
	r := NewReader(testutil.NewKeys("\x1b\x1b", ""))

	for i := 0; i < 2; i++ {
		ev, ok := r.WaitForEvent(false, 0)
		if !ok || ev.Key != KeyEscape || ev.Mod != 0 {
			t.Fatalf("expected plain escape %d, got %v (%v)", i, ev, ok)
		}
	}
}

func TestDecodeSwallowsUnknownCSI(t *testing.T) {
	evs, n := decode([]byte("\x1b[200~x"))
	if n != 7 {
		t.Fatalf("expected all bytes consumed, got %d", n)
	}
	if len(evs) != 1 || evs[0].Rune != 'x' {
		t.Fatalf("expected only x, got %v", evs)
	}
}

func TestEventDigit(t *testing.T) {
	if d, ok := (Event{Key: KeyRune, Rune: '7'}).Digit(); !ok || d != 7 {
		t.Fatalf("expected digit 7, got %d (%v)", d, ok)
	}
	if _, ok := (Event{Key: KeyRune, Rune: '0'}).Digit(); ok {
		t.Fatalf("expected 0 not to be a positional digit")
	}
	if _, ok := (Event{Key: KeyRune, Rune: '3', Mod: ModAlt}).Digit(); ok {
		t.Fatalf("expected modified digit to be ignored")
	}
}

func TestWaitForEventReadsBatches(t *testing.T) {
	keys := testutil.NewKeys("ab\x1b[B")
	r := NewReader(keys)

	var got []string
	for i := 0; i < 3; i++ {
		ev, ok := r.WaitForEvent(false, time.Second)
		if !ok {
			t.Fatalf("expected event %d", i)
		}
		got = append(got, ev.String())
	}
	if !reflect.DeepEqual(got, []string{"a", "b", "down"}) {
		t.Fatalf("unexpected events %v", got)
	}
	if len(keys.Waits) != 1 {
		t.Fatalf("expected a single device read, got %d", len(keys.Waits))
	}
}

func TestWaitForEventLoneEscape(t *testing.T) {
	keys := testutil.NewKeys("\x1b", "")
	r := NewReader(keys)

	ev, ok := r.WaitForEvent(false, 0)
	if !ok || ev.Key != KeyEscape || ev.Mod != 0 {
		t.Fatalf("expected plain escape, got %v (%v)", ev, ok)
	}
	if keys.Waits[1] != escapeTimeout {
		t.Fatalf("expected escape disambiguation wait, got %v", keys.Waits[1])
	}
}

func TestWaitForEventSplitSequence(t *testing.T) {
	keys := testutil.NewKeys("\x1b[", "3;2~")
	r := NewReader(keys)

	ev, ok := r.WaitForEvent(false, time.Second)
	if !ok || ev.String() != "shift+delete" {
		t.Fatalf("expected shift+delete, got %q (%v)", ev.String(), ok)
	}
}

func TestWaitForEventTimeout(t *testing.T) {
	r := NewReader(testutil.NewKeys(""))
	if ev, ok := r.WaitForEvent(false, 10*time.Millisecond); ok {
		t.Fatalf("expected timeout, got %v", ev)
	}
}

func TestWaitForEventFlushDiscardsTypeahead(t *testing.T) {
	keys := testutil.NewKeys("y")
	keys.Typeahead("nnn")
	r := NewReader(keys)

	ev, ok := r.WaitForEvent(true, time.Second)
	if !ok || ev.Rune != 'y' {
		t.Fatalf("expected y after flush, got %v (%v)", ev, ok)
	}
}

func TestWaitForEventDeviceFailure(t *testing.T) {
	r := NewReader(testutil.NewKeys())
	if _, ok := r.WaitForEvent(false, 0); ok {
		t.Fatalf("expected failure once the device is exhausted")
	}
	if r.Err() == nil {
		t.Fatalf("expected device error to be recorded")
	}
}

func TestWaitForCharSkipsNonPrintable(t *testing.T) {
	r := NewReader(testutil.NewKeys("\x1b[A", "\x1b[B", "q"))
	c, ok := r.WaitForChar(false, time.Second)
	if !ok || c != 'q' {
		t.Fatalf("expected q, got %q (%v)", c, ok)
	}
}

func TestWaitForCharRestartsTimeoutPerKey(t *testing.T) {
	keys := testutil.NewKeys("\x1b[A", "\x1b[B", "\x1b[C", "q")
	r := NewReader(keys)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		now = now.Add(400 * time.Millisecond)
		return now
	}

	c, ok := r.WaitForChar(false, time.Second)
	if !ok || c != 'q' {
		t.Fatalf("expected q after three arrows, got %q (%v)", c, ok)
	}
	for i, wait := range keys.Waits {
		if wait != 600*time.Millisecond {
			t.Fatalf("expected read %d to wait a fresh 600ms, got %v", i, wait)
		}
	}
}

func TestWaitForCharEscapeCancels(t *testing.T) {
	r := NewReader(testutil.NewKeys("\x1b[A", "\x1b", "", "q"))
	if c, ok := r.WaitForChar(false, time.Second); ok {
		t.Fatalf("expected escape to cancel, got %q", c)
	}
}

type recordingEcho struct {
	out []rune
}

func (e *recordingEcho) EchoRune(r rune) { e.out = append(e.out, r) }

func (e *recordingEcho) EchoErase() {
	if len(e.out) > 0 {
		e.out = e.out[:len(e.out)-1]
	}
}

func TestWaitForLineLimitsLength(t *testing.T) {
	r := NewReader(testutil.NewKeys("abcde", "\r"))
	echo := &recordingEcho{}

	line, ok := r.WaitForLine(3, echo)
	if !ok || line != "abc" {
		t.Fatalf("expected %q, got %q (%v)", "abc", line, ok)
	}
	if string(echo.out) != "abc" {
		t.Fatalf("expected only kept characters echoed, got %q", string(echo.out))
	}
}

func TestWaitForLineBackspace(t *testing.T) {
	r := NewReader(testutil.NewKeys("ab\x7fc\r"))
	echo := &recordingEcho{}

	line, ok := r.WaitForLine(0, echo)
	if !ok || line != "ac" {
		t.Fatalf("expected %q, got %q (%v)", "ac", line, ok)
	}
	if string(echo.out) != "ac" {
		t.Fatalf("expected echo %q, got %q", "ac", string(echo.out))
	}
}

func TestWaitForLineEscapeAborts(t *testing.T) {
	r := NewReader(testutil.NewKeys("ab", "\x1b", ""))
	if line, ok := r.WaitForLine(10, nil); ok {
		t.Fatalf("expected abort, got %q", line)
	}
}
