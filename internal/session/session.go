package session

import (
	"irene-companion-be/internal/entity"

	"github.com/google/uuid"
)

// Context identifies one running client session. It is passed explicitly into
// services instead of living in a package-level variable, so two sessions can
// coexist inside one process.
type Context struct {
	SessionId uuid.UUID
}

// UserId doubles as the profile and audit key. The client generates one
// identity per load; there is no account system behind it.
func (c Context) UserId() uuid.UUID {
	return c.SessionId
}

// State mirrors the active conversation for one session: the optimistic
// in-memory message list plus the UI-facing flags. It is transient and
// rebuilt from the store on conversation switch.
type State struct {
	ID                   string
	ActiveConversationId uuid.UUID
	Messages             []*entity.Message
	Loading              bool
	LastError            string
}

func NewState(sessionId uuid.UUID, conversationId uuid.UUID) *State {
	return &State{
		ID:                   sessionId.String(),
		ActiveConversationId: conversationId,
	}
}
