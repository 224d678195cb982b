package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Contrato struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ImovelID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"imovel_id"`
	Imovel          *Imovel        `gorm:"constraint:OnDelete:CASCADE;foreignKey:ImovelID;references:ID" json:"imovel,omitempty"`
	LocatarioID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"locatario_id"`
	Locatario       *Locatario     `gorm:"constraint:OnDelete:CASCADE;foreignKey:LocatarioID;references:ID" json:"locatario,omitempty"`
	LocadorID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"locador_id"`
	Locador         *Locador       `gorm:"constraint:OnDelete:CASCADE;foreignKey:LocadorID;references:ID" json:"locador,omitempty"`
	FiadorID        *uuid.UUID     `gorm:"type:uuid;index" json:"fiador_id,omitempty"`
	Fiador          *Fiador        `gorm:"constraint:OnDelete:SET NULL;foreignKey:FiadorID;references:ID" json:"fiador,omitempty"`
	Tipo            string         `gorm:"column:tipo;not null;default:'residencial'" json:"tipo"`
	ValorAluguel    float64        `gorm:"column:valor_aluguel;not null" json:"valor_aluguel"`
	ValorCondominio float64        `gorm:"column:valor_condominio" json:"valor_condominio"`
	ValorIPTU       float64        `gorm:"column:valor_iptu" json:"valor_iptu"`
	DiaVencimento   int            `gorm:"column:dia_vencimento;not null;default:5" json:"dia_vencimento"`
	DataInicio      time.Time      `gorm:"column:data_inicio;not null" json:"data_inicio"`
	DataFim         time.Time      `gorm:"column:data_fim;not null" json:"data_fim"`
	PrazoMeses      int            `gorm:"column:prazo_meses;not null;default:30" json:"prazo_meses"`
	IndiceReajuste  string         `gorm:"column:indice_reajuste;default:'IGP-M'" json:"indice_reajuste"`
	Status          string         `gorm:"column:status;not null;default:'ativo'" json:"status"`
	Observacoes     string         `gorm:"column:observacoes;type:text" json:"observacoes,omitempty"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Contrato) TableName() string { return "contrato" }
