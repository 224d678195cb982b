package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Document struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Type               string         `gorm:"column:type;not null;index" json:"type"`
	TemplateVersion    int            `gorm:"column:template_version;not null;default:1" json:"template_version"`
	DocumentNumber     *string        `gorm:"column:document_number;uniqueIndex" json:"document_number,omitempty"`
	Status             string         `gorm:"column:status;not null;default:'draft';index" json:"status"`
	RenderedHTML       string         `gorm:"column:rendered_html;type:text" json:"rendered_html"`
	Payload            datatypes.JSON `gorm:"column:payload;type:jsonb" json:"payload"`
	ContratoID         *uuid.UUID     `gorm:"type:uuid;index" json:"contrato_id,omitempty"`
	Contrato           *Contrato      `gorm:"constraint:OnDelete:SET NULL;foreignKey:ContratoID;references:ID" json:"contrato,omitempty"`
	ImovelID           *uuid.UUID     `gorm:"type:uuid;index" json:"imovel_id,omitempty"`
	LocatarioID        *uuid.UUID     `gorm:"type:uuid;index" json:"locatario_id,omitempty"`
	FiadorID           *uuid.UUID     `gorm:"type:uuid;index" json:"fiador_id,omitempty"`
	ParcelaID          *uuid.UUID     `gorm:"type:uuid;index" json:"parcela_id,omitempty"`
	RequiresSignature  bool           `gorm:"column:requires_signature;not null;default:false" json:"requires_signature"`
	SignatureDeadlineDays *int        `gorm:"column:signature_deadline_days" json:"signature_deadline_days,omitempty"`
	SignatureDeadlineAt   *time.Time  `gorm:"column:signature_deadline_at" json:"signature_deadline_at,omitempty"`
	GeneratedBy        string         `gorm:"column:generated_by;not null" json:"generated_by"`
	GeneratedAt        time.Time      `gorm:"column:generated_at;not null" json:"generated_at"`
	SentAt             *time.Time     `gorm:"column:sent_at" json:"sent_at,omitempty"`
	SignedAt           *time.Time     `gorm:"column:signed_at" json:"signed_at,omitempty"`
	CancelledAt        *time.Time     `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	CancelledBy        string         `gorm:"column:cancelled_by" json:"cancelled_by,omitempty"`
	CancellationReason string         `gorm:"column:cancellation_reason" json:"cancellation_reason,omitempty"`
	Signatures         []DocumentSignature `gorm:"foreignKey:DocumentID;references:ID" json:"signatures,omitempty"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Document) TableName() string { return "document" }

// DocumentCounter tracks the last issued number per (type, year). Issuance
// happens inside the finalize transaction, which reads the row FOR UPDATE;
// the unique indexes here and on document.document_number are the backstop
// for the first-issuance window where no row exists to lock.
type DocumentCounter struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DocumentType string    `gorm:"column:document_type;not null;uniqueIndex:idx_document_counter_type_year" json:"document_type"`
	Year         int       `gorm:"column:year;not null;uniqueIndex:idx_document_counter_type_year" json:"year"`
	LastNumber   string    `gorm:"column:last_number;not null" json:"last_number"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (DocumentCounter) TableName() string { return "document_counter" }
