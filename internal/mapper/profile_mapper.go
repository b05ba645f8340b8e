package mapper

import (
	"time"

	"irene-companion-be/internal/entity"
	"irene-companion-be/internal/model"

	"gorm.io/datatypes"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) UserProfileToEntity(p *model.UserProfile) *entity.UserProfile {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.UserProfile{
		UserId:    p.UserId,
		Name:      p.Name,
		Behavior:  p.Behavior,
		Tone:      p.Tone,
		Problems:  []string(p.Problems),
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ProfileMapper) UserProfileToModel(p *entity.UserProfile) *model.UserProfile {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.UserProfile{
		UserId:    p.UserId,
		Name:      p.Name,
		Behavior:  p.Behavior,
		Tone:      p.Tone,
		Problems:  datatypes.NewJSONSlice(p.Problems),
		CreatedAt: p.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *ProfileMapper) FlaggedMessageToModel(f *entity.FlaggedMessage) *model.FlaggedMessage {
	if f == nil {
		return nil
	}

	return &model.FlaggedMessage{
		Id:        f.Id,
		UserId:    f.UserId,
		Content:   f.Content,
		CreatedAt: f.CreatedAt,
	}
}
