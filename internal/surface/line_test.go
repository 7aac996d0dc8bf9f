package surface

import (
	"reflect"
	"testing"
)

func TestLinePutAppendsAndPads(t *testing.T) {
	var l Line
	l.put(0, nil, 'a')
	l.put(3, []rune("\x1b[1m"), 'b')

	if got := l.Text(); got != "a  b" {
		t.Fatalf("expected %q, got %q", "a  b", got)
	}
	if got := l.String(); got != "a  \x1b[1mb" {
		t.Fatalf("expected %q, got %q", "a  \x1b[1mb", got)
	}
	if got := l.Columns(); !reflect.DeepEqual(got, []int{0, 1, 2, 7}) {
		t.Fatalf("unexpected column map %v", got)
	}
}

func TestLinePutReplacesSpanWithSequence(t *testing.T) {
	var l Line
	for i, r := range "abc" {
		l.put(i, nil, r)
	}
	l.put(1, []rune("\x1b[31m"), 'X')

	if got := l.String(); got != "a\x1b[31mXc" {
		t.Fatalf("expected %q, got %q", "a\x1b[31mXc", got)
	}
	if got := l.Columns(); !reflect.DeepEqual(got, []int{0, 6, 7}) {
		t.Fatalf("unexpected column map %v", got)
	}

	l.put(1, nil, 'Y')
	if got := l.String(); got != "aYc" {
		t.Fatalf("expected sequence erased with its column, got %q", got)
	}
}

func TestLineMarkKeepsColumns(t *testing.T) {
	var l Line
	for i, r := range "abc" {
		l.put(i, nil, r)
	}
	l.mark(1, []rune("\x1b[0m"))
	l.mark(5, []rune("\x1b[K"))

	if l.Width() != 3 {
		t.Fatalf("expected width 3, got %d", l.Width())
	}
	if got := l.String(); got != "a\x1b[0mbc\x1b[K" {
		t.Fatalf("unexpected content %q", got)
	}
	if got := l.Text(); got != "abc" {
		t.Fatalf("expected glyphs %q, got %q", "abc", got)
	}
}

func TestLineTruncate(t *testing.T) {
	var l Line
	l.put(0, nil, 'a')
	l.put(1, []rune("\x1b[1m"), 'b')
	l.put(2, nil, 'c')

	l.truncate(1)
	if got := l.String(); got != "a" {
		t.Fatalf("expected %q, got %q", "a", got)
	}
	l.truncate(5)
	if l.Width() != 1 {
		t.Fatalf("expected truncate past the end to be a no-op, got width %d", l.Width())
	}
}
