package channels

import (
	"context"
	"sync"

	"github.com/itristenx/nova-notify/pkg/event"
)

// InAppMessage is the structured payload pushed to live client sessions.
type InAppMessage struct {
	EventID   string         `json:"eventId"`
	Module    string         `json:"module"`
	Type      string         `json:"type"`
	Priority  event.Priority `json:"priority"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Actions   []event.Action `json:"actions"`
	Metadata  map[string]any `json:"metadata"`
	Timestamp int64          `json:"timestamp"`
}

// Registry delivers a structured message to any live client session for a
// user. Publishing to a user with no open sessions is a successful no-op;
// the engine does not queue for offline users.
type Registry interface {
	Publish(ctx context.Context, userID string, msg InAppMessage) error
}

// MemoryRegistry is an in-process connection registry. Transport layers
// (WebSocket or SSE handlers) subscribe per user; Publish fans a message
// out to every open subscription without blocking on slow consumers.
type MemoryRegistry struct {
	sessions   map[string]map[*Session]struct{} // userID -> open sessions
	bufferSize int
	mu         sync.RWMutex
}

// Session is one live client connection subscribed to a user's messages.
type Session struct {
	ch     chan InAppMessage
	closed bool
	mu     sync.Mutex
}

// Receive returns the channel delivering this session's messages.
func (s *Session) Receive() <-chan InAppMessage {
	return s.ch
}

// push delivers non-blocking; a full buffer drops the message for this
// session rather than stalling the dispatch worker.
func (s *Session) push(msg InAppMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

// NewMemoryRegistry creates a registry whose sessions buffer up to
// bufferSize undelivered messages each (minimum 1).
func NewMemoryRegistry(bufferSize int) *MemoryRegistry {
	return &MemoryRegistry{
		sessions:   make(map[string]map[*Session]struct{}),
		bufferSize: max(bufferSize, 1),
	}
}

// Subscribe opens a session for the user. The session is closed and
// removed when the context is cancelled or Unsubscribe is called.
func (r *MemoryRegistry) Subscribe(ctx context.Context, userID string) *Session {
	sess := &Session{ch: make(chan InAppMessage, r.bufferSize)}

	r.mu.Lock()
	if r.sessions[userID] == nil {
		r.sessions[userID] = make(map[*Session]struct{})
	}
	r.sessions[userID][sess] = struct{}{}
	r.mu.Unlock()

	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			r.Unsubscribe(userID, sess)
		}()
	}

	return sess
}

// Unsubscribe closes the session and removes it from the registry.
func (r *MemoryRegistry) Unsubscribe(userID string, sess *Session) {
	r.mu.Lock()
	if set, ok := r.sessions[userID]; ok {
		delete(set, sess)
		if len(set) == 0 {
			delete(r.sessions, userID)
		}
	}
	r.mu.Unlock()

	sess.close()
}

// Publish delivers msg to every open session for the user. Zero sessions
// is success: in-app delivery is fire-and-forget for offline users.
func (r *MemoryRegistry) Publish(ctx context.Context, userID string, msg InAppMessage) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for sess := range r.sessions[userID] {
		sess.push(msg)
	}
	return nil
}
