package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateConversationResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllConversationsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type ChatHistoryItem struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Sentiment string    `json:"sentiment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatRequest struct {
	ConversationId uuid.UUID `json:"conversation_id" validate:"required"`
	Content        string    `json:"content" validate:"required"`
}

type SendChatResponse struct {
	Reply        string `json:"reply"`
	Sentiment    string `json:"sentiment"`
	Flagged      bool   `json:"flagged"`
	CrisisNotice string `json:"crisis_notice,omitempty"`
	Error        string `json:"error,omitempty"`
}

// MessagesUpdated is the payload pushed through the in-process bus to the
// WebSocket hub: the full ordered snapshot for one conversation.
type MessagesUpdated struct {
	ConversationId uuid.UUID          `json:"conversation_id"`
	Messages       []*ChatHistoryItem `json:"messages"`
}

type EmotionPointResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Sentiment string    `json:"sentiment"`
}
