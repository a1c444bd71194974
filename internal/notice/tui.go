package notice

import (
	"sync"
	"time"

	"github.com/traveltrucks/traveltrucks/internal/ports"
)

// Kind classifies a Message.
type Kind int

const (
	KindError Kind = iota
	KindWarning
	KindInfo
	KindSuccess
)

// Message is one reported notice.
type Message struct {
	Text      string
	Kind      Kind
	Timestamp time.Time
}

// Queue keeps reported messages for display in the TUI status line.
type Queue struct {
	mu       sync.RWMutex
	messages []Message
	onReport func(Message)
	now      func() time.Time
}

var _ ports.Reporter = (*Queue)(nil)

// NewQueue returns a Queue. onReport, if set, is called after each message
// is recorded.
func NewQueue(onReport func(Message)) *Queue {
	return &Queue{onReport: onReport, now: time.Now}
}

func (q *Queue) Error(msg string)   { q.add(msg, KindError) }
func (q *Queue) Warning(msg string) { q.add(msg, KindWarning) }
func (q *Queue) Info(msg string)    { q.add(msg, KindInfo) }
func (q *Queue) Success(msg string) { q.add(msg, KindSuccess) }

func (q *Queue) add(text string, kind Kind) {
	q.mu.Lock()
	m := Message{Text: text, Kind: kind, Timestamp: q.now()}
	q.messages = append(q.messages, m)
	cb := q.onReport
	q.mu.Unlock()

	if cb != nil {
		cb(m)
	}
}

// Latest returns the most recent message.
func (q *Queue) Latest() (Message, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if len(q.messages) == 0 {
		return Message{}, false
	}
	return q.messages[len(q.messages)-1], true
}

// All returns a copy of every recorded message, oldest first.
func (q *Queue) All() []Message {
	q.mu.RLock()
	defer q.mu.RUnlock()
	out := make([]Message, len(q.messages))
	copy(out, q.messages)
	return out
}

// Clear drops all recorded messages.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = nil
}
