package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Parcela struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContratoID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"contrato_id"`
	Contrato        *Contrato      `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContratoID;references:ID" json:"contrato,omitempty"`
	Numero          int            `gorm:"column:numero;not null" json:"numero"`
	Competencia     string         `gorm:"column:competencia;not null" json:"competencia"`
	ValorAluguel    float64        `gorm:"column:valor_aluguel;not null" json:"valor_aluguel"`
	ValorCondominio float64        `gorm:"column:valor_condominio" json:"valor_condominio"`
	ValorIPTU       float64        `gorm:"column:valor_iptu" json:"valor_iptu"`
	ValorMulta      float64        `gorm:"column:valor_multa" json:"valor_multa"`
	ValorJuros      float64        `gorm:"column:valor_juros" json:"valor_juros"`
	ValorTotal      float64        `gorm:"column:valor_total;not null" json:"valor_total"`
	DataVencimento  time.Time      `gorm:"column:data_vencimento;not null" json:"data_vencimento"`
	DataPagamento   *time.Time     `gorm:"column:data_pagamento" json:"data_pagamento,omitempty"`
	FormaPagamento  string         `gorm:"column:forma_pagamento" json:"forma_pagamento,omitempty"`
	Status          string         `gorm:"column:status;not null;default:'pendente';index" json:"status"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Parcela) TableName() string { return "parcela" }
