package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserProfile struct {
	UserId    uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Name      string                      `gorm:"type:varchar(255)"`
	Behavior  string                      `gorm:"type:varchar(255)"`
	Tone      string                      `gorm:"type:varchar(255)"`
	Problems  datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'"`
	CreatedAt time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt time.Time                   `gorm:"autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
