package contract

import (
	"context"

	"irene-companion-be/internal/entity"
	"irene-companion-be/internal/repository/specification"
)

// MessageRepository is append-only. There are no update or delete operations;
// the store is the ordering authority via created_at.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
