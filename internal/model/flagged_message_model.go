package model

import (
	"time"

	"github.com/google/uuid"
)

type FlaggedMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (FlaggedMessage) TableName() string {
	return "flagged_messages"
}
