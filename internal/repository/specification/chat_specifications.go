package specification

import (
	"irene-companion-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByConversationID struct {
	ConversationID uuid.UUID
}

func (s ByConversationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("conversation_id = ?", s.ConversationID)
}

type ByRole struct {
	Role entity.Role
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", string(s.Role))
}
