package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casalivre/casalivre-backend/internal/logger"
	"github.com/casalivre/casalivre-backend/internal/types"
)

type ContratoRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Contrato, error)
	// GetByIDFull preloads the property and all parties so one call yields the
	// whole record graph a document template needs.
	GetByIDFull(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Contrato, error)
}

type contratoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContratoRepo(db *gorm.DB, baseLog *logger.Logger) ContratoRepo {
	repoLog := baseLog.With("repo", "ContratoRepo")
	return &contratoRepo{db: db, log: repoLog}
}

func (r *contratoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Contrato, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var contrato types.Contrato
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&contrato).Error; err != nil {
		return nil, err
	}
	return &contrato, nil
}

func (r *contratoRepo) GetByIDFull(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Contrato, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var contrato types.Contrato
	if err := transaction.WithContext(ctx).
		Preload("Imovel").
		Preload("Locatario").
		Preload("Locador").
		Preload("Fiador").
		Where("id = ?", id).
		First(&contrato).Error; err != nil {
		return nil, err
	}
	return &contrato, nil
}
