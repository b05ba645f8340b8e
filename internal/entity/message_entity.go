package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of message authors. Anything else is rejected before
// it reaches the store.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is one half of a turn inside a conversation. Messages are
// append-only; Sentiment is recorded on user turns and feeds the emotion
// timeline.
type Message struct {
	Id             uuid.UUID
	ConversationId uuid.UUID
	Role           Role
	Content        string
	Sentiment      string
	CreatedAt      time.Time
}
