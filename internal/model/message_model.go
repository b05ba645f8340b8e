package model

import (
	"time"

	"github.com/google/uuid"
)

// Message rows are append-only, so no soft-delete column here.
type Message struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ConversationId uuid.UUID `gorm:"type:uuid;not null;index"`
	Role           string    `gorm:"type:varchar(50);not null"`
	Content        string    `gorm:"type:text;not null"`
	Sentiment      string    `gorm:"type:varchar(50)"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}
