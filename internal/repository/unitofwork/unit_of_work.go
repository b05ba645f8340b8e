package unitofwork

import (
	"context"

	"irene-companion-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ConversationRepository() contract.ConversationRepository
	MessageRepository() contract.MessageRepository
	UserProfileRepository() contract.UserProfileRepository
	FlaggedMessageRepository() contract.FlaggedMessageRepository
}
