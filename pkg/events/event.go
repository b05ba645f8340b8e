package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MESSAGE_FLAGGED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// MessageFlagged is emitted when the safety filter matches a user turn. It
// mirrors the audit row so follow-up tooling can consume either feed.
type MessageFlagged struct {
	UserId     uuid.UUID
	Content    string
	OccurredAt time.Time
}

func NewMessageFlagged(userId uuid.UUID, content string) MessageFlagged {
	return MessageFlagged{
		UserId:     userId,
		Content:    content,
		OccurredAt: time.Now(),
	}
}

func (e MessageFlagged) EventType() string {
	return "MESSAGE_FLAGGED"
}

func (e MessageFlagged) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":     e.UserId.String(),
		"content":     e.Content,
		"occurred_at": e.OccurredAt,
	}
}

func (e MessageFlagged) Timestamp() time.Time {
	return e.OccurredAt
}
