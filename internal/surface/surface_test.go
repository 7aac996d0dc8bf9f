package surface_test

import (
	"os"
	"reflect"
	"testing"

	"github.com/atomicstack/termconsole/internal/surface"
	"github.com/atomicstack/termconsole/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithTempLog(m))
}

func newSurface(t *testing.T, screen *testutil.Screen, opts ...surface.Option) *surface.Surface {
	t.Helper()
	s, err := surface.New(screen, opts...)
	if err != nil {
		t.Fatalf("unexpected error creating surface: %v", err)
	}
	return s
}

func lineText(t *testing.T, s *surface.Surface, i int) string {
	t.Helper()
	l, ok := s.Line(i)
	if !ok {
		t.Fatalf("expected line %d to exist (have %d)", i, s.LineCount())
	}
	return l.Text()
}

func TestPrintHelloThenTwoNewlines(t *testing.T) {
	screen := testutil.NewScreen(20, 10)
	s := newSurface(t, screen)

	s.Print("Hello")
	s.Print("\n")
	s.Print("\n")

	if s.LineCount() != 3 {
		t.Fatalf("expected 3 stored lines, got %d", s.LineCount())
	}
	if got := lineText(t, s, 0); got != "Hello" {
		t.Fatalf("expected line 0 %q, got %q", "Hello", got)
	}
	if got := s.CursorPos(); got != (surface.Coordinate{X: 0, Y: 2}) {
		t.Fatalf("expected cursor at row 2, got %+v", got)
	}
}

func TestPrintspSeparatesWords(t *testing.T) {
	screen := testutil.NewScreen(20, 5)
	s := newSurface(t, screen)

	s.Printsp("one")
	s.Print("two")

	if got := lineText(t, s, 0); got != "one two" {
		t.Fatalf("expected %q, got %q", "one two", got)
	}
	if got := s.CursorPos(); got != (surface.Coordinate{X: 7, Y: 0}) {
		t.Fatalf("expected cursor at column 7, got %+v", got)
	}
}

func TestPrintWrapsAtWidth(t *testing.T) {
	screen := testutil.NewScreen(10, 5)
	s := newSurface(t, screen)

	s.Print("abcdefghijklm")

	if got := lineText(t, s, 0); got != "abcdefghij" {
		t.Fatalf("expected first row %q, got %q", "abcdefghij", got)
	}
	if got := lineText(t, s, 1); got != "klm" {
		t.Fatalf("expected second row %q, got %q", "klm", got)
	}
	if got := s.CursorPos(); got != (surface.Coordinate{X: 3, Y: 1}) {
		t.Fatalf("expected cursor {3 1}, got %+v", got)
	}
	if s.ScrollOffset() != 0 {
		t.Fatalf("expected no scrolling, got %d", s.ScrollOffset())
	}
}

func TestPrintExactWidthDefersWrap(t *testing.T) {
	screen := testutil.NewScreen(5, 5)
	s := newSurface(t, screen)

	s.Print("abcde")
	if got := s.CursorPos(); got != (surface.Coordinate{X: 4, Y: 0}) {
		t.Fatalf("expected cursor held in last column, got %+v", got)
	}
	s.Print("\nf")
	if got := lineText(t, s, 1); got != "f" {
		t.Fatalf("expected %q on row 1, got %q", "f", got)
	}
	if screen.Row(1) != "f" || screen.Row(2) != "" {
		t.Fatalf("expected single row advance, screen rows %q", screen.Rows())
	}
}

func TestPrintAdvancesColumnFromOffset(t *testing.T) {
	screen := testutil.NewScreen(20, 5)
	screen.MoveTo(4, 1)
	s := newSurface(t, screen)

	s.Print("text")

	if got := lineText(t, s, 0); got != "    text" {
		t.Fatalf("expected padded line %q, got %q", "    text", got)
	}
	if got := s.CursorPos(); got != (surface.Coordinate{X: 8, Y: 1}) {
		t.Fatalf("expected cursor {8 1}, got %+v", got)
	}
}

func TestOverwriteSingleColumn(t *testing.T) {
	screen := testutil.NewScreen(20, 5)
	s := newSurface(t, screen)
	s.Print("abcde")

	if !s.SetCursorPos(surface.Coordinate{X: 2, Y: 0}) {
		t.Fatalf("expected cursor move to succeed")
	}
	s.Print("X")

	l, _ := s.Line(0)
	if l.Width() != 5 {
		t.Fatalf("expected width 5, got %d", l.Width())
	}
	if got := l.Text(); got != "abXde" {
		t.Fatalf("expected %q, got %q", "abXde", got)
	}
	if screen.Row(0) != "abXde" {
		t.Fatalf("expected screen row %q, got %q", "abXde", screen.Row(0))
	}
}

func TestOverwriteColoredColumnDropsItsSequence(t *testing.T) {
	screen := testutil.NewScreen(20, 5)
	s := newSurface(t, screen)
	s.Print("ab\x1b[31mc\x1b[0mde")

	s.SetCursorPos(surface.Coordinate{X: 2, Y: 0})
	s.Print("X")

	l, _ := s.Line(0)
	if got := l.String(); got != "abX\x1b[0mde" {
		t.Fatalf("expected %q, got %q", "abX\x1b[0mde", got)
	}
	if got := l.Columns(); !reflect.DeepEqual(got, []int{0, 1, 2, 7, 8}) {
		t.Fatalf("unexpected column map %v", got)
	}
}

func TestSequencesConsumeNoColumns(t *testing.T) {
	screen := testutil.NewScreen(20, 5)
	s := newSurface(t, screen)

	s.Print("\x1b[90mgray\x1b[39m")

	l, _ := s.Line(0)
	if l.Width() != 4 {
		t.Fatalf("expected 4 columns, got %d", l.Width())
	}
	if got := s.CursorPos().X; got != 4 {
		t.Fatalf("expected cursor column 4, got %d", got)
	}
	if got := l.String(); got != "\x1b[90mgray\x1b[39m" {
		t.Fatalf("expected sequences preserved, got %q", got)
	}
}

func TestUnbufferedWriteLeavesModelUntouched(t *testing.T) {
	screen := testutil.NewScreen(20, 5)
	s := newSurface(t, screen)
	s.Print("keep")

	s.Write("zz", false)

	if got := lineText(t, s, 0); got != "keep" {
		t.Fatalf("expected model unchanged, got %q", got)
	}
	if got := s.CursorPos().X; got != 6 {
		t.Fatalf("expected cursor to follow the write, got %d", got)
	}
}

func TestScrollAdjustsAnchorAndSavedCursors(t *testing.T) {
	screen := testutil.NewScreen(20, 3)
	screen.MoveTo(0, 1)
	s := newSurface(t, screen)
	if !s.SaveCursorPosAt(surface.Coordinate{X: 5, Y: 2}) {
		t.Fatalf("expected save to succeed")
	}

	s.Print("a\nb\nc\nd\n")

	if s.ScrollOffset() != 3 {
		t.Fatalf("expected scroll offset 3, got %d", s.ScrollOffset())
	}
	if got := s.Anchor(); got.Y != 0 {
		t.Fatalf("expected anchor floored at 0, got %+v", got)
	}
	restored, ok := s.RestoreCursorPos()
	if !ok || restored != (surface.Coordinate{X: 5, Y: 0}) {
		t.Fatalf("expected saved cursor shifted to {5 0}, got %+v (%v)", restored, ok)
	}

	s.SetCursorPos(surface.Coordinate{X: 0, Y: 2})
	s.Print("e")
	if got := lineText(t, s, 4); got != "e" {
		t.Fatalf("expected stored row 4 to follow the scroll, got %q", got)
	}
}

func TestScrollFallsBackWhenCursorQueryFails(t *testing.T) {
	screen := testutil.NewScreen(20, 3)
	screen.MoveTo(0, 2)
	s := newSurface(t, screen)
	screen.FailCursor = true

	s.Print("a\nb\n")

	if s.ScrollOffset() != 2 {
		t.Fatalf("expected scroll offset 2, got %d", s.ScrollOffset())
	}
	if got := s.CursorPos(); got.Y != 2 {
		t.Fatalf("expected cursor clamped to last row, got %+v", got)
	}
}

func TestCursorBounds(t *testing.T) {
	screen := testutil.NewScreen(10, 4)
	s := newSurface(t, screen)

	if s.SetCursorPos(surface.Coordinate{X: 10, Y: 0}) {
		t.Fatalf("expected column 10 to be rejected")
	}
	if s.SetCursorPos(surface.Coordinate{X: 0, Y: -1}) {
		t.Fatalf("expected negative row to be rejected")
	}
	if s.SaveCursorPosAt(surface.Coordinate{X: 0, Y: 4}) {
		t.Fatalf("expected row 4 to be rejected")
	}
	if _, ok := s.RestoreCursorPos(); ok {
		t.Fatalf("expected nothing to restore")
	}
}

func TestSaveRestoreIsLIFO(t *testing.T) {
	screen := testutil.NewScreen(10, 4)
	s := newSurface(t, screen)

	s.SetCursorPos(surface.Coordinate{X: 1, Y: 1})
	s.SaveCursorPos()
	s.SetCursorPos(surface.Coordinate{X: 2, Y: 2})
	s.SaveCursorPos()

	first, _ := s.RestoreCursorPos()
	second, _ := s.RestoreCursorPos()
	if first != (surface.Coordinate{X: 2, Y: 2}) || second != (surface.Coordinate{X: 1, Y: 1}) {
		t.Fatalf("expected LIFO order, got %+v then %+v", first, second)
	}
	if s.CursorPos() != second {
		t.Fatalf("expected cursor at %+v, got %+v", second, s.CursorPos())
	}
}

func TestClearDropsErasedContent(t *testing.T) {
	screen := testutil.NewScreen(20, 5)
	s := newSurface(t, screen)
	s.Print("one\ntwo")

	s.Clear(true, true)

	if got := s.Lines(); !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("expected stored content cleared, got %q", got)
	}
	if len(screen.Rows()) != 0 {
		t.Fatalf("expected blank screen, got %q", screen.Rows())
	}
	if s.CursorPos() != (surface.Coordinate{}) {
		t.Fatalf("expected cursor at anchor, got %+v", s.CursorPos())
	}
}

func TestPushPopRoundTripEmulated(t *testing.T) {
	screen := testutil.NewScreen(20, 10)
	s := newSurface(t, screen)
	s.Print("Hello\n\x1b[90mWorld\x1b[39m")
	before := screen.Rows()
	cursor := s.CursorPos()

	depth, ok := s.PushAlternate()
	if !ok || depth != 1 {
		t.Fatalf("expected depth 1, got %d (%v)", depth, ok)
	}
	if len(screen.Rows()) != 0 {
		t.Fatalf("expected display cleared for the alternate, got %q", screen.Rows())
	}
	s.Println("overlay")
	if s.LineCount() != 2 {
		t.Fatalf("expected alternate to hold its own lines, got %d", s.LineCount())
	}

	if got := s.PopAlternate(); got != 0 {
		t.Fatalf("expected depth 0 after pop, got %d", got)
	}
	if got := screen.Rows(); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected %q restored, got %q", before, got)
	}
	if s.CursorPos() != cursor {
		t.Fatalf("expected cursor %+v, got %+v", cursor, s.CursorPos())
	}
	if got := lineText(t, s, 1); got != "World" {
		t.Fatalf("expected main content intact, got %q", got)
	}
}

func TestAlternateScrollCountsTowardMainEmulated(t *testing.T) {
	screen := testutil.NewScreen(20, 3)
	screen.MoveTo(0, 2)
	s := newSurface(t, screen)

	if _, ok := s.PushAlternate(); !ok {
		t.Fatalf("expected alternate pushed")
	}
	s.Print("a\nb\nc\n")
	if s.ScrollOffset() == 0 {
		t.Fatalf("expected the alternate to scroll")
	}
	if s.MainScroll() != s.ScrollOffset() {
		t.Fatalf("expected main scroll %d, got %d", s.ScrollOffset(), s.MainScroll())
	}
	s.PopAlternate()
	if got := s.Anchor(); got.Y != 0 {
		t.Fatalf("expected main anchor raised to row 0, got %+v", got)
	}
}

func TestPushPopNestingReturnsToZero(t *testing.T) {
	for n := 0; n <= 4; n++ {
		screen := testutil.NewScreen(20, 10)
		s := newSurface(t, screen)
		for i := 1; i <= n; i++ {
			depth, ok := s.PushAlternate()
			if !ok || depth != i {
				t.Fatalf("expected push %d to report depth %d, got %d (%v)", i, i, depth, ok)
			}
			s.Printfln("level %d", i)
		}
		for i := n; i > 0; i-- {
			if got := s.PopAlternate(); got != i-1 {
				t.Fatalf("expected depth %d, got %d", i-1, got)
			}
		}
		if s.Depth() != 0 {
			t.Fatalf("expected depth 0 after %d pops, got %d", n, s.Depth())
		}
	}
}

func TestPopWithoutPushIsNoop(t *testing.T) {
	screen := testutil.NewScreen(20, 10)
	s := newSurface(t, screen)
	s.Print("stay")
	raw := screen.Raw()

	if got := s.PopAlternate(); got != 0 {
		t.Fatalf("expected depth 0, got %d", got)
	}
	if screen.Raw() != raw {
		t.Fatalf("expected no output, got %q", screen.Raw()[len(raw):])
	}
}

func TestNativePushUsesSeparateScreen(t *testing.T) {
	screen := testutil.NewScreen(20, 10)
	screen.AltScreens = 1
	s := newSurface(t, screen, surface.WithMode(surface.ModeNative))
	s.Print("main")

	depth, ok := s.PushAlternate()
	if !ok || depth != 1 {
		t.Fatalf("expected native push to succeed, got %d (%v)", depth, ok)
	}
	if s.Anchor() != (surface.Coordinate{}) {
		t.Fatalf("expected alternate anchored at origin, got %+v", s.Anchor())
	}
	if _, ok := s.PushAlternate(); ok {
		t.Fatalf("expected second native push to fail")
	}
	if s.Depth() != 1 {
		t.Fatalf("expected failed push to keep depth 1, got %d", s.Depth())
	}
	s.Print("alt")

	s.PopAlternate()
	if screen.Row(0) != "main" {
		t.Fatalf("expected main screen back, got %q", screen.Row(0))
	}
	if s.CursorPos() != (surface.Coordinate{X: 4, Y: 0}) {
		t.Fatalf("expected cursor restored, got %+v", s.CursorPos())
	}
}

func TestVisibilitySyncsAcrossContexts(t *testing.T) {
	screen := testutil.NewScreen(20, 10)
	s := newSurface(t, screen)

	s.SetCursorVisible(false)
	if screen.Visible {
		t.Fatalf("expected cursor hidden")
	}
	s.PushAlternate()
	if !screen.Visible || !s.CursorVisible() {
		t.Fatalf("expected fresh alternate to show the cursor")
	}
	s.PopAlternate()
	if screen.Visible || s.CursorVisible() {
		t.Fatalf("expected hidden cursor restored")
	}

	s.ToggleCursorVisibility()
	if !screen.Visible {
		t.Fatalf("expected toggle to show the cursor")
	}
}

func TestCloseUnwindsAlternates(t *testing.T) {
	screen := testutil.NewScreen(20, 10)
	s := newSurface(t, screen)
	s.Print("base")
	s.PushAlternate()
	s.PushAlternate()
	s.SetCursorVisible(false)

	if err := s.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}
	if s.Depth() != 0 {
		t.Fatalf("expected all alternates popped, got depth %d", s.Depth())
	}
	if !screen.Visible {
		t.Fatalf("expected cursor visible after close")
	}
	if screen.Row(0) != "base" {
		t.Fatalf("expected main content replayed, got %q", screen.Row(0))
	}
}

func TestParseMode(t *testing.T) {
	if m, err := surface.ParseMode("native"); err != nil || m != surface.ModeNative {
		t.Fatalf("expected native, got %v (%v)", m, err)
	}
	if m, err := surface.ParseMode(""); err != nil || m != surface.ModeEmulated {
		t.Fatalf("expected emulated default, got %v (%v)", m, err)
	}
	if _, err := surface.ParseMode("bogus"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}
