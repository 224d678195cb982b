package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Imovel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Tipo        string         `gorm:"column:tipo;not null;default:'apartamento'" json:"tipo"`
	Endereco    string         `gorm:"column:endereco;not null" json:"endereco"`
	Numero      string         `gorm:"column:numero" json:"numero"`
	Complemento string         `gorm:"column:complemento" json:"complemento,omitempty"`
	Bairro      string         `gorm:"column:bairro" json:"bairro"`
	Cidade      string         `gorm:"column:cidade;not null" json:"cidade"`
	Estado      string         `gorm:"column:estado;not null" json:"estado"`
	CEP         string         `gorm:"column:cep" json:"cep"`
	AreaM2      float64        `gorm:"column:area_m2" json:"area_m2"`
	Quartos     int            `gorm:"column:quartos" json:"quartos"`
	Vagas       int            `gorm:"column:vagas" json:"vagas"`
	// Ambientes feeds the inspection report: a JSON array of rooms with their
	// condition notes.
	Ambientes   datatypes.JSON `gorm:"column:ambientes;type:jsonb" json:"ambientes,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Imovel) TableName() string { return "imovel" }
