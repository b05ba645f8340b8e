package implementation

import (
	"context"
	"errors"
	"time"

	"irene-companion-be/internal/entity"
	"irene-companion-be/internal/mapper"
	"irene-companion-be/internal/model"
	"irene-companion-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewUserProfileRepository(db *gorm.DB) contract.UserProfileRepository {
	return &UserProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *UserProfileRepositoryImpl) Get(ctx context.Context, userId uuid.UUID) (*entity.UserProfile, error) {
	var m model.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.UserProfileToEntity(&m), nil
}

// Merge reads the current row, overlays the non-zero fields of partial and
// saves the result. Problems are unioned, not replaced, so a mention is never
// lost by a later partial update.
func (r *UserProfileRepositoryImpl) Merge(ctx context.Context, userId uuid.UUID, partial *entity.UserProfile) (*entity.UserProfile, error) {
	current, err := r.Get(ctx, userId)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = &entity.UserProfile{
			UserId:    userId,
			CreatedAt: time.Now(),
		}
	}

	if partial.Name != "" {
		current.Name = partial.Name
	}
	if partial.Behavior != "" {
		current.Behavior = partial.Behavior
	}
	if partial.Tone != "" {
		current.Tone = partial.Tone
	}
	current.Problems = unionProblems(current.Problems, partial.Problems)

	m := r.mapper.UserProfileToModel(current)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, err
	}
	return r.mapper.UserProfileToEntity(m), nil
}

func unionProblems(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, p := range existing {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			merged = append(merged, p)
		}
	}
	for _, p := range incoming {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			merged = append(merged, p)
		}
	}
	return merged
}
