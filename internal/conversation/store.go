package conversation

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds live conversations by id
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	now           func() time.Time
	afterFunc     AfterFunc
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithAfterFunc overrides how delayed replies are scheduled
func WithAfterFunc(f AfterFunc) Option {
	return func(s *Store) { s.afterFunc = f }
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{
		conversations: make(map[string]*Conversation),
		now:           time.Now,
		afterFunc:     realAfterFunc,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new conversation
func (s *Store) Create() *Conversation {
	c := newConversation(uuid.New().String(), s.now, s.afterFunc)

	s.mu.Lock()
	s.conversations[c.id] = c
	s.mu.Unlock()

	return c
}

// Get returns a live conversation
func (s *Store) Get(id string) (*Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conversations[id]
	return c, ok
}

// End ends a conversation and reports whether it existed
func (s *Store) End(id string) bool {
	s.mu.Lock()
	c, ok := s.conversations[id]
	delete(s.conversations, id)
	s.mu.Unlock()

	if ok {
		c.end()
	}
	return ok
}

// Sweep ends conversations idle for longer than idle and returns how many
func (s *Store) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	var stale []*Conversation
	for id, c := range s.conversations {
		if c.LastSeen().Before(cutoff) {
			stale = append(stale, c)
			delete(s.conversations, id)
		}
	}
	s.mu.Unlock()

	for _, c := range stale {
		c.end()
	}
	return len(stale)
}

// Len returns the number of live conversations
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
