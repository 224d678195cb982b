package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casalivre/casalivre-backend/internal/logger"
	"github.com/casalivre/casalivre-backend/internal/types"
)

type LocatarioRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Locatario, error)
}

type locatarioRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLocatarioRepo(db *gorm.DB, baseLog *logger.Logger) LocatarioRepo {
	repoLog := baseLog.With("repo", "LocatarioRepo")
	return &locatarioRepo{db: db, log: repoLog}
}

func (r *locatarioRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Locatario, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var locatario types.Locatario
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&locatario).Error; err != nil {
		return nil, err
	}
	return &locatario, nil
}

type LocadorRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Locador, error)
}

type locadorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLocadorRepo(db *gorm.DB, baseLog *logger.Logger) LocadorRepo {
	repoLog := baseLog.With("repo", "LocadorRepo")
	return &locadorRepo{db: db, log: repoLog}
}

func (r *locadorRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Locador, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var locador types.Locador
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&locador).Error; err != nil {
		return nil, err
	}
	return &locador, nil
}

type FiadorRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Fiador, error)
}

type fiadorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFiadorRepo(db *gorm.DB, baseLog *logger.Logger) FiadorRepo {
	repoLog := baseLog.With("repo", "FiadorRepo")
	return &fiadorRepo{db: db, log: repoLog}
}

func (r *fiadorRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Fiador, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var fiador types.Fiador
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&fiador).Error; err != nil {
		return nil, err
	}
	return &fiador, nil
}
