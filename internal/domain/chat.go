package domain

import "time"

// Author tags who wrote a conversation message
type Author string

const (
	AuthorUser Author = "user"
	AuthorBot  Author = "bot"
)

// Message represents a chat message
type Message struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Name      string    `json:"name,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatRequest is the request to send a chat message
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the response from a chat message
type ChatResponse struct {
	SessionID string     `json:"session_id,omitempty"`
	Reply     string     `json:"reply"`
	DeliverAt *time.Time `json:"deliver_at,omitempty"`
}

// SessionResponse describes a conversation and its log
type SessionResponse struct {
	SessionID string     `json:"session_id"`
	Open      bool       `json:"open"`
	Messages  []*Message `json:"messages"`
}

// Stats represents system statistics
type Stats struct {
	Regions       int           `json:"regions"`
	Intents       int           `json:"intents"`
	Conversations int           `json:"conversations"`
	TotalChats    int64         `json:"total_chats"`
	Catalog       CatalogCounts `json:"catalog"`
}
