// Package conversation keeps the per-visitor chat log for the widget.
//
// Logs live in memory only and are dropped when the session ends. Bot replies
// are appended after a cosmetic delay. Hiding the panel leaves pending replies
// alone, and ending the session cancels them.
package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/indiverse/heritagebot/internal/domain"
)

// Timer is the part of *time.Timer a conversation needs
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Conversation is one visitor's chat log
type Conversation struct {
	id        string
	mu        sync.Mutex
	messages  []*domain.Message
	open      bool
	lastSeen  time.Time
	pending   map[*pendingReply]struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	now       func() time.Time
	afterFunc AfterFunc
}

type pendingReply struct {
	timer Timer
}

func newConversation(id string, now func() time.Time, afterFunc AfterFunc) *Conversation {
	ctx, cancel := context.WithCancel(context.Background())
	return &Conversation{
		id:        id,
		lastSeen:  now(),
		pending:   make(map[*pendingReply]struct{}),
		ctx:       ctx,
		cancel:    cancel,
		now:       now,
		afterFunc: afterFunc,
	}
}

// ID returns the conversation id
func (c *Conversation) ID() string {
	return c.id
}

// Open shows the panel. The greeting is seeded only into an empty log.
func (c *Conversation) Open(greeting string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.open = true
	c.lastSeen = c.now()
	if len(c.messages) == 0 && greeting != "" {
		c.appendLocked(domain.AuthorBot, "", greeting)
	}
}

// Hide hides the panel. Pending replies still land in the log.
func (c *Conversation) Hide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
	c.lastSeen = c.now()
}

// IsOpen reports whether the panel is visible
func (c *Conversation) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// AppendUser appends a user message. name is the signed-in username, if any.
func (c *Conversation) AppendUser(name, text string) *domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx.Err() != nil {
		return nil
	}
	return c.appendLocked(domain.AuthorUser, name, text)
}

// Deliver appends a bot reply after delay and returns when it will land.
// Nothing is appended once the conversation has ended.
func (c *Conversation) Deliver(text string, delay time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	at := c.now().Add(max(delay, 0))
	if c.ctx.Err() != nil {
		return at
	}
	if delay <= 0 {
		c.appendLocked(domain.AuthorBot, "", text)
		return at
	}

	p := &pendingReply{}
	c.pending[p] = struct{}{}
	p.timer = c.afterFunc(delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.pending[p]; !ok {
			return
		}
		delete(c.pending, p)
		if c.ctx.Err() != nil {
			return
		}
		c.appendLocked(domain.AuthorBot, "", text)
	})
	return at
}

// Pending returns the number of replies not yet delivered
func (c *Conversation) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Messages returns a copy of the log
func (c *Conversation) Messages() []*domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*domain.Message, len(c.messages))
	for i, m := range c.messages {
		cp := *m
		out[i] = &cp
	}
	return out
}

// Done is closed when the conversation ends
func (c *Conversation) Done() <-chan struct{} {
	return c.ctx.Done()
}

// LastSeen is the time of the last visitor action
func (c *Conversation) LastSeen() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

// end cancels pending replies and discards the log
func (c *Conversation) end() {
	c.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	for p := range c.pending {
		p.timer.Stop()
		delete(c.pending, p)
	}
	c.messages = nil
	c.open = false
}

func (c *Conversation) appendLocked(author domain.Author, name, text string) *domain.Message {
	m := &domain.Message{
		ID:        uuid.New().String(),
		Author:    author,
		Name:      name,
		Text:      text,
		CreatedAt: c.now(),
	}
	if author == domain.AuthorUser {
		c.lastSeen = m.CreatedAt
	}
	c.messages = append(c.messages, m)
	return m
}
