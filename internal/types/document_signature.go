package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentSignature struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	DocumentID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"document_id"`
	Document       *Document      `gorm:"constraint:OnDelete:CASCADE;foreignKey:DocumentID;references:ID" json:"document,omitempty"`
	SignerName     string         `gorm:"column:signer_name;not null" json:"signer_name"`
	SignerEmail    string         `gorm:"column:signer_email;not null" json:"signer_email"`
	SignerCPF      string         `gorm:"column:signer_cpf" json:"signer_cpf,omitempty"`
	SignerRole     string         `gorm:"column:signer_role;not null" json:"signer_role"`
	SignOrder      int            `gorm:"column:sign_order;not null;default:1" json:"sign_order"`
	Status         string         `gorm:"column:status;not null;default:'pending';index" json:"status"`
	SignedAt       *time.Time     `gorm:"column:signed_at" json:"signed_at,omitempty"`
	SignatureIP    string         `gorm:"column:signature_ip" json:"signature_ip,omitempty"`
	SignatureToken string         `gorm:"column:signature_token" json:"signature_token,omitempty"`
	RefusedAt      *time.Time     `gorm:"column:refused_at" json:"refused_at,omitempty"`
	RefusalReason  string         `gorm:"column:refusal_reason" json:"refusal_reason,omitempty"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (DocumentSignature) TableName() string { return "document_signature" }
