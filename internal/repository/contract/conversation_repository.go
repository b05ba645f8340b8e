package contract

import (
	"context"

	"irene-companion-be/internal/entity"
	"irene-companion-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	Update(ctx context.Context, conversation *entity.Conversation) error

	// Delete soft-deletes; the row stays for audit but leaves every listing.
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Conversation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Conversation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
