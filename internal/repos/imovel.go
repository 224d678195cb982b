package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casalivre/casalivre-backend/internal/logger"
	"github.com/casalivre/casalivre-backend/internal/types"
)

type ImovelRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Imovel, error)
}

type imovelRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewImovelRepo(db *gorm.DB, baseLog *logger.Logger) ImovelRepo {
	repoLog := baseLog.With("repo", "ImovelRepo")
	return &imovelRepo{db: db, log: repoLog}
}

func (r *imovelRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Imovel, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var imovel types.Imovel
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&imovel).Error; err != nil {
		return nil, err
	}
	return &imovel, nil
}
