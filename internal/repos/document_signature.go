package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/casalivre/casalivre-backend/internal/logger"
	"github.com/casalivre/casalivre-backend/internal/types"
)

type DocumentSignatureRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sigs []*types.DocumentSignature) ([]*types.DocumentSignature, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DocumentSignature, error)
	GetByDocumentID(ctx context.Context, tx *gorm.DB, documentID uuid.UUID) ([]*types.DocumentSignature, error)
	Update(ctx context.Context, tx *gorm.DB, sig *types.DocumentSignature) error
}

type documentSignatureRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentSignatureRepo(db *gorm.DB, baseLog *logger.Logger) DocumentSignatureRepo {
	repoLog := baseLog.With("repo", "DocumentSignatureRepo")
	return &documentSignatureRepo{db: db, log: repoLog}
}

func (r *documentSignatureRepo) Create(ctx context.Context, tx *gorm.DB, sigs []*types.DocumentSignature) ([]*types.DocumentSignature, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(sigs) == 0 {
		return []*types.DocumentSignature{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&sigs).Error; err != nil {
		return nil, err
	}
	return sigs, nil
}

func (r *documentSignatureRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DocumentSignature, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var sig types.DocumentSignature
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&sig).Error; err != nil {
		return nil, err
	}
	return &sig, nil
}

func (r *documentSignatureRepo) GetByDocumentID(ctx context.Context, tx *gorm.DB, documentID uuid.UUID) ([]*types.DocumentSignature, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.DocumentSignature
	if err := transaction.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("sign_order ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *documentSignatureRepo) Update(ctx context.Context, tx *gorm.DB, sig *types.DocumentSignature) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(sig).Error
}
