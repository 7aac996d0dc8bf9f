package menu

import (
	"time"

	"github.com/atomicstack/termconsole/internal/logging/events"
)

// SetStatusMessage queues a status line. It replaces any earlier message,
// shown or not, and waits to be issued by the next render.
func (m *Model) SetStatusMessage(msg string) {
	m.status = msg
	m.issuedAt = time.Time{}
	events.Menu.Status(msg)
}

// StatusMessage returns the current status text, issued or not.
func (m *Model) StatusMessage() string { return m.status }

// HasPendingStatusMessage reports a message set but not yet shown.
func (m *Model) HasPendingStatusMessage() bool {
	return m.status != "" && m.issuedAt.IsZero()
}

// IssueStatusMessage marks a pending message as shown and starts its
// lifetime.
func (m *Model) IssueStatusMessage() (string, bool) {
	if !m.HasPendingStatusMessage() {
		return "", false
	}
	m.issuedAt = m.now()
	return m.status, true
}

// HasActiveStatusMessage reports a shown message that has not been expired.
func (m *Model) HasActiveStatusMessage() bool {
	return m.status != "" && !m.issuedAt.IsZero()
}

// HasExpiredStatusMessage reports true once for a shown message whose
// lifetime has elapsed, and clears it.
func (m *Model) HasExpiredStatusMessage() bool {
	if !m.HasActiveStatusMessage() {
		return false
	}
	if m.now().Sub(m.issuedAt) < StatusLifetime {
		return false
	}
	m.status = ""
	m.issuedAt = time.Time{}
	events.Menu.StatusExpired()
	return true
}
