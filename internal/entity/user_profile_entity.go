package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile holds the personalization facts attached to a session identity.
// Created lazily on first write; updates merge, they never overwrite.
type UserProfile struct {
	UserId    uuid.UUID
	Name      string
	Behavior  string
	Tone      string
	Problems  []string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
