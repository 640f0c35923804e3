package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/indiverse/heritagebot/internal/config"
	"github.com/indiverse/heritagebot/internal/conversation"
	"github.com/indiverse/heritagebot/internal/domain"
	"github.com/indiverse/heritagebot/internal/responder"
	"go.uber.org/zap"
)

// ChatService handles chat operations using the rule-based responder
type ChatService struct {
	responder  atomic.Pointer[responder.Responder]
	store      *conversation.Store
	replyDelay time.Duration
	chats      atomic.Int64
	logger     *zap.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	cfg *config.Config,
	kb *domain.KnowledgeBase,
	store *conversation.Store,
	logger *zap.Logger,
) *ChatService {
	s := &ChatService{
		store:      store,
		replyDelay: cfg.Chat.ReplyDelay,
		logger:     logger,
	}
	s.responder.Store(responder.New(kb))
	return s
}

// SwapKnowledge replaces the knowledge base for every later reply
func (s *ChatService) SwapKnowledge(kb *domain.KnowledgeBase) {
	s.responder.Store(responder.New(kb))
}

// KnowledgeBase returns the knowledge base currently answering
func (s *ChatService) KnowledgeBase() *domain.KnowledgeBase {
	return s.responder.Load().KnowledgeBase()
}

// Respond answers one utterance without touching any conversation
func (s *ChatService) Respond(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message is empty", domain.ErrInvalidRequest)
	}
	s.chats.Add(1)
	return &domain.ChatResponse{Reply: s.responder.Load().Respond(req.Message)}, nil
}

// StartSession creates a conversation with its panel open and greeting seeded
func (s *ChatService) StartSession(ctx context.Context) *domain.SessionResponse {
	c := s.store.Create()
	c.Open(s.responder.Load().Greeting())
	s.logger.Debug("conversation started", zap.String("session_id", c.ID()))
	return sessionResponse(c)
}

// Open shows the panel, seeding the greeting into an empty log
func (s *ChatService) Open(ctx context.Context, sessionID string) (*domain.SessionResponse, error) {
	c, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	c.Open(s.responder.Load().Greeting())
	return sessionResponse(c), nil
}

// Hide hides the panel. Replies already scheduled still arrive.
func (s *ChatService) Hide(ctx context.Context, sessionID string) (*domain.SessionResponse, error) {
	c, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	c.Hide()
	return sessionResponse(c), nil
}

// End discards a conversation and cancels its pending replies
func (s *ChatService) End(ctx context.Context, sessionID string) error {
	if !s.store.End(sessionID) {
		return domain.ErrNotFound
	}
	s.logger.Debug("conversation ended", zap.String("session_id", sessionID))
	return nil
}

// Send records the user message, answers it and schedules the reply
func (s *ChatService) Send(ctx context.Context, sessionID, author string, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message is empty", domain.ErrInvalidRequest)
	}

	c, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	if c.AppendUser(author, req.Message) == nil {
		return nil, domain.ErrNotFound
	}
	s.chats.Add(1)

	reply := s.responder.Load().Respond(req.Message)
	deliverAt := c.Deliver(reply, s.replyDelay)

	return &domain.ChatResponse{
		SessionID: sessionID,
		Reply:     reply,
		DeliverAt: &deliverAt,
	}, nil
}

// Messages returns a conversation's log
func (s *ChatService) Messages(ctx context.Context, sessionID string) (*domain.SessionResponse, error) {
	c, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionResponse(c), nil
}

// SweepIdle ends conversations idle for longer than idle
func (s *ChatService) SweepIdle(idle time.Duration) int {
	n := s.store.Sweep(idle)
	if n > 0 {
		s.logger.Info("swept idle conversations", zap.Int("count", n))
	}
	return n
}

// Conversations returns the number of live conversations
func (s *ChatService) Conversations() int {
	return s.store.Len()
}

// TotalChats returns the number of user messages answered
func (s *ChatService) TotalChats() int64 {
	return s.chats.Load()
}

func (s *ChatService) get(sessionID string) (*conversation.Conversation, error) {
	c, ok := s.store.Get(sessionID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func sessionResponse(c *conversation.Conversation) *domain.SessionResponse {
	return &domain.SessionResponse{
		SessionID: c.ID(),
		Open:      c.IsOpen(),
		Messages:  c.Messages(),
	}
}
