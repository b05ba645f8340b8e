package contract

import (
	"context"

	"irene-companion-be/internal/entity"
)

// FlaggedMessageRepository is a write-only audit sink.
type FlaggedMessageRepository interface {
	Create(ctx context.Context, flagged *entity.FlaggedMessage) error
}
