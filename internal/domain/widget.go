package domain

// WidgetConfig holds UI configuration for the chat widget
type WidgetConfig struct {
	Title        string `json:"title"`
	Theme        string `json:"theme"`
	PrimaryColor string `json:"primary_color"`
	Position     string `json:"position"`
	Placeholder  string `json:"placeholder"`
	// ReplyDelayMS is the cosmetic delay before a bot reply is shown
	ReplyDelayMS int64 `json:"reply_delay_ms"`
}

// DefaultWidgetConfig returns default widget configuration
func DefaultWidgetConfig() WidgetConfig {
	return WidgetConfig{
		Title:        "India Heritage Chatbot",
		Theme:        "light",
		PrimaryColor: "#f97316",
		Position:     "bottom-right",
		Placeholder:  "Type your message...",
		ReplyDelayMS: 1000,
	}
}
