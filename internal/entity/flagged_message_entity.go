package entity

import (
	"time"

	"github.com/google/uuid"
)

// FlaggedMessage is a write-only audit record for human follow-up. The
// application never reads these back.
type FlaggedMessage struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Content   string
	CreatedAt time.Time
}
