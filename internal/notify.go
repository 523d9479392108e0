package internal

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// NotificationKind classifies a user-facing notification.
type NotificationKind string

const (
	NotifyInfo    NotificationKind = "info"
	NotifyWarning NotificationKind = "warning"
	NotifyError   NotificationKind = "error"
)

// Notification is a non-blocking, non-fatal message for the user, e.g.
// "the assistant service is unreachable, showing a mock response".
type Notification struct {
	Kind        NotificationKind
	Title       string
	Description string
}

// Notifier receives notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// RecordingNotifier accumulates notifications. Used in tests and anywhere
// the caller wants to inspect what was surfaced.
type RecordingNotifier struct {
	mu            sync.Mutex
	notifications []Notification
}

func (r *RecordingNotifier) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// Notifications returns a copy of everything recorded so far.
func (r *RecordingNotifier) Notifications() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out
}

var (
	notifyInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	notifyWarningStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214")).
				Bold(true)

	notifyErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Bold(true)
)

// WriterNotifier renders notifications as styled single lines, the
// terminal equivalent of the web client's toasts.
type WriterNotifier struct {
	W io.Writer
}

func (w *WriterNotifier) Notify(n Notification) {
	style := notifyInfoStyle
	switch n.Kind {
	case NotifyWarning:
		style = notifyWarningStyle
	case NotifyError:
		style = notifyErrorStyle
	}
	fmt.Fprintf(w.W, "%s %s\n", style.Render("["+n.Title+"]"), n.Description)
}
