package input

import (
	"time"

	"github.com/atomicstack/termconsole/internal/logging"
	"github.com/atomicstack/termconsole/internal/logging/events"
)

// Device is the raw input side of a terminal.
type Device interface {
	// Read waits up to timeout for input and returns whatever is available.
	// A negative timeout waits indefinitely; zero polls. An empty result
	// with a nil error means the wait timed out.
	Read(timeout time.Duration) ([]byte, error)
}

// Echo receives the visible side effects of line editing.
type Echo interface {
	EchoRune(r rune)
	EchoErase()
}

// escapeTimeout separates a lone ESC key from the start of a sequence.
const escapeTimeout = 50 * time.Millisecond

// Reader decodes key presses from a Device. Bytes are read in batches and
// decoded events queue locally until consumed.
type Reader struct {
	dev   Device
	buf   []byte
	queue []Event
	err   error
	now   func() time.Time
}

// NewReader wraps dev.
func NewReader(dev Device) *Reader {
	return &Reader{dev: dev, now: time.Now}
}

// Err returns the device failure that ended input, if any.
func (r *Reader) Err() error { return r.err }

// Flush discards decoded events, partial sequences, and anything the device
// already has pending.
func (r *Reader) Flush() {
	discarded := len(r.queue)
	r.queue = r.queue[:0]
	r.buf = r.buf[:0]
	for r.err == nil {
		data, err := r.dev.Read(0)
		if err != nil {
			r.fail(err)
			break
		}
		if len(data) == 0 {
			break
		}
		discarded += len(data)
	}
	events.Input.Flush(discarded)
}

// WaitForEvent returns the next key press. flush discards pending input
// first. A timeout of zero or less waits indefinitely. It reports false when
// the timeout elapses or the device fails.
func (r *Reader) WaitForEvent(flush bool, timeout time.Duration) (Event, bool) {
	if flush {
		r.Flush()
	}
	var deadline time.Time
	if timeout > 0 {
		deadline = r.now().Add(timeout)
	}
	for {
		if len(r.queue) > 0 {
			ev := r.queue[0]
			r.queue = r.queue[1:]
			events.Input.Key(ev.String())
			return ev, true
		}
		if r.err != nil {
			return Event{}, false
		}

		wait := time.Duration(-1)
		if timeout > 0 {
			wait = deadline.Sub(r.now())
			if wait < 0 {
				wait = 0
			}
		}
		if len(r.buf) > 0 && (wait < 0 || wait > escapeTimeout) {
			wait = escapeTimeout
		}

		data, err := r.dev.Read(wait)
		if err != nil {
			r.fail(err)
			continue
		}
		if len(data) == 0 {
			if len(r.buf) > 0 {
				r.queue = append(r.queue, decodeStale(r.buf)...)
				r.buf = r.buf[:0]
				continue
			}
			if timeout > 0 {
				events.Input.Timeout(timeout.String())
				return Event{}, false
			}
			continue
		}

		r.buf = append(r.buf, data...)
		evs, n := decode(r.buf)
		r.queue = append(r.queue, evs...)
		r.buf = append(r.buf[:0], r.buf[n:]...)
	}
}

// WaitForChar returns the next printable character. Non-printable keys are
// skipped and each one restarts the timeout. Escape, a timeout, or a device
// failure report false.
func (r *Reader) WaitForChar(flush bool, timeout time.Duration) (rune, bool) {
	for {
		ev, ok := r.WaitForEvent(flush, timeout)
		flush = false
		if !ok || ev.Key == KeyEscape {
			return 0, false
		}
		if ev.Printable() {
			return ev.Rune, true
		}
	}
}

// WaitForLine collects typed characters until Enter. Escape aborts with
// false. At most maxLength characters are kept; further characters are
// consumed without being echoed. A maxLength of zero or less is unbounded.
func (r *Reader) WaitForLine(maxLength int, echo Echo) (string, bool) {
	var line []rune
	for {
		ev, ok := r.WaitForEvent(false, 0)
		if !ok {
			return "", false
		}
		switch {
		case ev.Key == KeyEnter:
			return string(line), true
		case ev.Key == KeyEscape:
			return "", false
		case ev.Key == KeyBackspace:
			if len(line) == 0 {
				continue
			}
			line = line[:len(line)-1]
			if echo != nil {
				echo.EchoErase()
			}
		case ev.Printable():
			if maxLength > 0 && len(line) >= maxLength {
				continue
			}
			line = append(line, ev.Rune)
			if echo != nil {
				echo.EchoRune(ev.Rune)
			}
		}
	}
}

func (r *Reader) fail(err error) {
	r.err = err
	events.Input.Error(err)
	logging.Errorf("input: read: %w", err)
}
