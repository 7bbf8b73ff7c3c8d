package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level int

const (
	Info Level = iota
	Success
	Error
)

func (l Level) String() string {
	switch l {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient message for the user.
type Notification struct {
	ID        string
	Level     Level
	Text      string
	CreatedAt time.Time
}

func New(level Level, text string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// Sink receives notifications. Implementations must not block the caller.
type Sink interface {
	Notify(n Notification)
}

// Func adapts a plain function to a Sink
type Func func(Notification)

func (f Func) Notify(n Notification) { f(n) }

// Writer prints every notification as a single line.
type Writer struct {
	W io.Writer
}

func (w Writer) Notify(n Notification) {
	fmt.Fprintf(w.W, "[%s] %s\n", n.Level, n.Text)
}

const (
	DefaultCapacity = 5
	DefaultTTL      = 4 * time.Second
)

// Queue holds the visible toasts, oldest first.
type Queue struct {
	mu       sync.Mutex
	items    []Notification
	capacity int
	ttl      time.Duration
}

func NewQueue(capacity int, ttl time.Duration) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		items:    make([]Notification, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
	}
}

func (q *Queue) Notify(n Notification) {
	q.Push(n)
}

// Push appends n, evicting the oldest entry when the queue is full.
func (q *Queue) Push(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	if len(q.items) >= q.capacity {
		q.items = q.items[len(q.items)-q.capacity+1:]
	}
	q.items = append(q.items, n)
}

// DismissLatest drops the newest notification.
func (q *Queue) DismissLatest() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return false
	}
	q.items = q.items[:len(q.items)-1]
	return true
}

// Expire drops every notification older than the queue TTL and reports how many went.
func (q *Queue) Expire(now time.Time) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	kept := q.items[:0]
	for _, n := range q.items {
		if now.Sub(n.CreatedAt) < q.ttl {
			kept = append(kept, n)
		}
	}
	dropped := len(q.items) - len(kept)
	q.items = kept
	return dropped
}

func (q *Queue) Items() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	result := make([]Notification, len(q.items))
	copy(result, q.items)
	return result
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
