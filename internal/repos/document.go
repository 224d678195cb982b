package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/casalivre/casalivre-backend/internal/logger"
	"github.com/casalivre/casalivre-backend/internal/types"
)

type DocumentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, doc *types.Document) (*types.Document, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Document, error)
	GetByIDWithSignatures(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Document, error)
	Update(ctx context.Context, tx *gorm.DB, doc *types.Document) error
	ListPastDeadline(ctx context.Context, tx *gorm.DB, now time.Time) ([]*types.Document, error)
}

type documentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	repoLog := baseLog.With("repo", "DocumentRepo")
	return &documentRepo{db: db, log: repoLog}
}

func (r *documentRepo) Create(ctx context.Context, tx *gorm.DB, doc *types.Document) (*types.Document, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

func (r *documentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Document, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var doc types.Document
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) GetByIDWithSignatures(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Document, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var doc types.Document
	if err := transaction.WithContext(ctx).
		Preload("Signatures").
		Where("id = ?", id).
		First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepo) Update(ctx context.Context, tx *gorm.DB, doc *types.Document) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(doc).Error
}

func (r *documentRepo) ListPastDeadline(ctx context.Context, tx *gorm.DB, now time.Time) ([]*types.Document, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.Document
	if err := transaction.WithContext(ctx).
		Where("status IN ?", []string{"sent", "partially_signed"}).
		Where("signature_deadline_at IS NOT NULL AND signature_deadline_at < ?", now).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type DocumentCounterRepo interface {
	Get(ctx context.Context, tx *gorm.DB, docType string, year int) (*types.DocumentCounter, error)
	Save(ctx context.Context, tx *gorm.DB, counter *types.DocumentCounter) error
}

type documentCounterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDocumentCounterRepo(db *gorm.DB, baseLog *logger.Logger) DocumentCounterRepo {
	repoLog := baseLog.With("repo", "DocumentCounterRepo")
	return &documentCounterRepo{db: db, log: repoLog}
}

// Get returns nil without error when no counter exists yet for the pair.
// Inside a transaction the row is read FOR UPDATE so two concurrent
// finalizes serialize on the counter instead of racing to the same number.
func (r *documentCounterRepo) Get(ctx context.Context, tx *gorm.DB, docType string, year int) (*types.DocumentCounter, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	query := transaction.WithContext(ctx)
	if tx != nil {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var counter types.DocumentCounter
	err := query.
		Where("document_type = ? AND year = ?", docType, year).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

func (r *documentCounterRepo) Save(ctx context.Context, tx *gorm.DB, counter *types.DocumentCounter) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(counter).Error
}
