package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casalivre/casalivre-backend/internal/logger"
	"github.com/casalivre/casalivre-backend/internal/types"
)

type ParcelaRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Parcela, error)
}

type parcelaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParcelaRepo(db *gorm.DB, baseLog *logger.Logger) ParcelaRepo {
	repoLog := baseLog.With("repo", "ParcelaRepo")
	return &parcelaRepo{db: db, log: repoLog}
}

func (r *parcelaRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Parcela, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var parcela types.Parcela
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&parcela).Error; err != nil {
		return nil, err
	}
	return &parcela, nil
}
