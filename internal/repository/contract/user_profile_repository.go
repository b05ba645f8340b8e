package contract

import (
	"context"

	"irene-companion-be/internal/entity"

	"github.com/google/uuid"
)

type UserProfileRepository interface {
	// Get returns nil without error when no profile exists yet.
	Get(ctx context.Context, userId uuid.UUID) (*entity.UserProfile, error)

	// Merge upserts the profile. Zero-value fields in partial leave the stored
	// values untouched; the row is created lazily on first write.
	Merge(ctx context.Context, userId uuid.UUID, partial *entity.UserProfile) (*entity.UserProfile, error)
}
