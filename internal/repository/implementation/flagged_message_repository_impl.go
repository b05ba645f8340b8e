package implementation

import (
	"context"

	"irene-companion-be/internal/entity"
	"irene-companion-be/internal/mapper"
	"irene-companion-be/internal/repository/contract"

	"gorm.io/gorm"
)

type FlaggedMessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewFlaggedMessageRepository(db *gorm.DB) contract.FlaggedMessageRepository {
	return &FlaggedMessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *FlaggedMessageRepositoryImpl) Create(ctx context.Context, flagged *entity.FlaggedMessage) error {
	m := r.mapper.FlaggedMessageToModel(flagged)
	return r.db.WithContext(ctx).Create(m).Error
}
