// Package notify holds transient operator notifications (the toasts a list
// screen shows after a fetch or mutation).
package notify

import (
	"sync"
	"time"

	"cmsadmin/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantInfo    Variant = "info"
)

type Notification struct {
	ID        string    `json:"id"`
	Variant   Variant   `json:"variant"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier surfaces human-readable messages to the operator.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// DefaultCapacity bounds a queue when no capacity is configured.
const DefaultCapacity = 50

// Queue buffers notifications until the UI drains them. When full, the
// oldest entry is dropped.
type Queue struct {
	mu       sync.Mutex
	items    []Notification
	capacity int
	log      *zap.Logger
	now      func() time.Time
}

func NewQueue(capacity int, log *zap.Logger) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Queue{capacity: capacity, log: log, now: time.Now}
}

func (q *Queue) Success(msg string) { q.push(VariantSuccess, msg) }
func (q *Queue) Error(msg string)   { q.push(VariantError, msg) }
func (q *Queue) Info(msg string)    { q.push(VariantInfo, msg) }

func (q *Queue) push(v Variant, msg string) {
	n := Notification{ID: uuid.NewString(), Variant: v, Message: msg, CreatedAt: q.now()}

	q.mu.Lock()
	if len(q.items) == q.capacity {
		q.items = q.items[1:]
	}
	q.items = append(q.items, n)
	q.mu.Unlock()

	metrics.Notifications.WithLabelValues(string(v)).Inc()
	if v == VariantError {
		q.log.Warn("notification", zap.String("variant", string(v)), zap.String("message", msg))
	} else {
		q.log.Info("notification", zap.String("variant", string(v)), zap.String("message", msg))
	}
}

// Drain returns pending notifications once, oldest first.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Len reports how many notifications are pending.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
