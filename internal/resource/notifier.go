package resource

import (
	"sync"
	"time"

	"go-clinic-dashboard/internal/domain/entity"

	"github.com/google/uuid"
)

const DefaultToastDelay = 5 * time.Second

// Notifier holds the single visible toast of a screen. Each toast gets its
// own id and its dismiss timer only clears that id.
type Notifier struct {
	mu      sync.Mutex
	delay   time.Duration
	current entity.Alert
	timer   *time.Timer
	closed  bool
}

func NewNotifier(delay time.Duration) *Notifier {
	if delay <= 0 {
		delay = DefaultToastDelay
	}
	return &Notifier{delay: delay}
}

// Show replaces the visible toast. An empty kind means success.
func (n *Notifier) Show(message string, kind entity.AlertKind) entity.Alert {
	if kind == "" {
		kind = entity.AlertSuccess
	}
	alert := entity.Alert{
		ID:        uuid.New(),
		Show:      true,
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return alert
	}
	if n.timer != nil {
		n.timer.Stop()
	}
	n.current = alert
	id := alert.ID
	n.timer = time.AfterFunc(n.delay, func() { n.Dismiss(id) })
	return alert
}

// Dismiss hides the toast if it is still the one identified by id.
func (n *Notifier) Dismiss(id uuid.UUID) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.current.Show || n.current.ID != id {
		return false
	}
	n.current = entity.Alert{}
	return true
}

func (n *Notifier) Current() entity.Alert {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Close stops the pending timer. Later Show calls are ignored.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = entity.Alert{}
}
