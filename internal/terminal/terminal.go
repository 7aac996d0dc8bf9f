//go:build unix

// Package terminal drives a real TTY for the console: raw mode, size and
// cursor queries, timed reads, and the alternate screen.
package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/atomicstack/termconsole/internal/surface"
)

var (
	// ErrNotTerminal is returned when a handle is not attached to a TTY.
	ErrNotTerminal = errors.New("terminal: not a terminal")
	// ErrNoCursorReport is returned when the terminal does not answer a
	// cursor position request in time.
	ErrNoCursorReport = errors.New("terminal: no cursor position report")
	errScreenInUse    = errors.New("terminal: alternate screen already in use")
)

const reportTimeout = 500 * time.Millisecond

// TTY is a terminal in raw mode. Output newlines are written as CR LF.
type TTY struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int
	saved *term.State

	// pending holds keyboard input read while waiting for a cursor report.
	pending []byte
	alt     bool
}

// Open switches in to raw mode. Both handles must be terminals.
func Open(in, out *os.File) (*TTY, error) {
	if in == nil || out == nil {
		return nil, ErrNotTerminal
	}
	t := &TTY{in: in, out: out, inFd: int(in.Fd()), outFd: int(out.Fd())}
	if !term.IsTerminal(t.inFd) || !term.IsTerminal(t.outFd) {
		return nil, ErrNotTerminal
	}
	saved, err := term.MakeRaw(t.inFd)
	if err != nil {
		return nil, fmt.Errorf("terminal: raw mode: %w", err)
	}
	t.saved = saved
	return t, nil
}

// Close leaves the alternate screen if it is still open and restores the
// original terminal mode.
func (t *TTY) Close() error {
	if t.alt {
		t.leaveAlt()
	}
	if t.saved == nil {
		return nil
	}
	err := term.Restore(t.inFd, t.saved)
	t.saved = nil
	return err
}

// Size implements surface.Terminal.
func (t *TTY) Size() (int, int, error) {
	w, h, err := term.GetSize(t.outFd)
	if err != nil {
		return 0, 0, fmt.Errorf("terminal: size: %w", err)
	}
	return w, h, nil
}

// Write implements io.Writer.
func (t *TTY) Write(p []byte) (int, error) {
	if _, err := t.out.Write(crlf(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

func crlf(p []byte) []byte {
	if bytes.IndexByte(p, '\n') < 0 {
		return p
	}
	return bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))
}

// CursorPosition implements surface.Terminal by asking the terminal for a
// cursor position report. Keys typed meanwhile are kept for Read.
func (t *TTY) CursorPosition() (surface.Coordinate, error) {
	if _, err := io.WriteString(t.out, ansi.RequestCursorPositionReport); err != nil {
		return surface.Coordinate{}, fmt.Errorf("terminal: request cursor: %w", err)
	}
	deadline := time.Now().Add(reportTimeout)
	var buf []byte
	for {
		if row, col, start, end, ok := parseCursorReport(buf); ok {
			t.pending = append(t.pending, buf[:start]...)
			t.pending = append(t.pending, buf[end:]...)
			return surface.Coordinate{X: col - 1, Y: row - 1}, nil
		}
		wait := time.Until(deadline)
		if wait <= 0 {
			t.pending = append(t.pending, buf...)
			return surface.Coordinate{}, ErrNoCursorReport
		}
		data, err := t.read(wait)
		if err != nil {
			t.pending = append(t.pending, buf...)
			return surface.Coordinate{}, fmt.Errorf("terminal: read cursor: %w", err)
		}
		buf = append(buf, data...)
	}
}

// parseCursorReport finds the first "ESC [ row ; col R" in buf.
func parseCursorReport(buf []byte) (row, col, start, end int, ok bool) {
	for i := 0; i+1 < len(buf); i++ {
		if buf[i] != 0x1b || buf[i+1] != '[' {
			continue
		}
		j := i + 2
		row, j = digits(buf, j)
		if j >= len(buf) || buf[j] != ';' || row == 0 {
			continue
		}
		col, j = digits(buf, j+1)
		if j >= len(buf) || buf[j] != 'R' || col == 0 {
			continue
		}
		return row, col, i, j + 1, true
	}
	return 0, 0, 0, 0, false
}

func digits(buf []byte, i int) (int, int) {
	n := 0
	for ; i < len(buf) && buf[i] >= '0' && buf[i] <= '9'; i++ {
		n = n*10 + int(buf[i]-'0')
	}
	return n, i
}

// Read implements input.Device. Input held back by a cursor query is
// returned first.
func (t *TTY) Read(timeout time.Duration) ([]byte, error) {
	if len(t.pending) > 0 {
		data := t.pending
		t.pending = nil
		return data, nil
	}
	return t.read(timeout)
}

func (t *TTY) read(timeout time.Duration) ([]byte, error) {
	ms := -1
	if timeout >= 0 {
		ms = int(timeout / time.Millisecond)
	}
	fds := []unix.PollFd{{Fd: int32(t.inFd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, ms)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}
		buf := make([]byte, 256)
		rn, err := unix.Read(t.inFd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return nil, err
		}
		if rn == 0 {
			return nil, io.EOF
		}
		return buf[:rn], nil
	}
}

// AllocateScreen implements surface.ScreenAllocator. The terminal offers a
// single alternate screen.
func (t *TTY) AllocateScreen() (surface.Screen, error) {
	if t.alt {
		return nil, errScreenInUse
	}
	if _, err := io.WriteString(t.out, ansi.SetAltScreenSaveCursorMode); err != nil {
		return nil, fmt.Errorf("terminal: enter alternate screen: %w", err)
	}
	t.alt = true
	return altScreen{t}, nil
}

func (t *TTY) leaveAlt() error {
	t.alt = false
	_, err := io.WriteString(t.out, ansi.ResetAltScreenSaveCursorMode)
	return err
}

type altScreen struct{ t *TTY }

func (a altScreen) Close() error {
	if !a.t.alt {
		return nil
	}
	return a.t.leaveAlt()
}
