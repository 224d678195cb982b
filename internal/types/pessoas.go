package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Locatario struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Nome         string         `gorm:"column:nome;not null" json:"nome"`
	CPF          string         `gorm:"column:cpf;not null;uniqueIndex" json:"cpf"`
	RG           string         `gorm:"column:rg" json:"rg,omitempty"`
	Nacionalidade string        `gorm:"column:nacionalidade;default:'brasileiro(a)'" json:"nacionalidade"`
	EstadoCivil  string         `gorm:"column:estado_civil" json:"estado_civil,omitempty"`
	Profissao    string         `gorm:"column:profissao" json:"profissao,omitempty"`
	Email        string         `gorm:"column:email;not null" json:"email"`
	Telefone     string         `gorm:"column:telefone" json:"telefone,omitempty"`
	Endereco     string         `gorm:"column:endereco" json:"endereco,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Locatario) TableName() string { return "locatario" }

type Locador struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Nome         string         `gorm:"column:nome;not null" json:"nome"`
	CPF          string         `gorm:"column:cpf" json:"cpf,omitempty"`
	CNPJ         string         `gorm:"column:cnpj" json:"cnpj,omitempty"`
	RG           string         `gorm:"column:rg" json:"rg,omitempty"`
	Nacionalidade string        `gorm:"column:nacionalidade;default:'brasileiro(a)'" json:"nacionalidade"`
	EstadoCivil  string         `gorm:"column:estado_civil" json:"estado_civil,omitempty"`
	Profissao    string         `gorm:"column:profissao" json:"profissao,omitempty"`
	Email        string         `gorm:"column:email;not null" json:"email"`
	Telefone     string         `gorm:"column:telefone" json:"telefone,omitempty"`
	Endereco     string         `gorm:"column:endereco" json:"endereco,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Locador) TableName() string { return "locador" }

type Fiador struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Nome         string         `gorm:"column:nome;not null" json:"nome"`
	CPF          string         `gorm:"column:cpf;not null" json:"cpf"`
	RG           string         `gorm:"column:rg" json:"rg,omitempty"`
	Nacionalidade string        `gorm:"column:nacionalidade;default:'brasileiro(a)'" json:"nacionalidade"`
	EstadoCivil  string         `gorm:"column:estado_civil" json:"estado_civil,omitempty"`
	Profissao    string         `gorm:"column:profissao" json:"profissao,omitempty"`
	Email        string         `gorm:"column:email;not null" json:"email"`
	Telefone     string         `gorm:"column:telefone" json:"telefone,omitempty"`
	Endereco     string         `gorm:"column:endereco" json:"endereco,omitempty"`
	// Imovel proprio dado em garantia, quando houver.
	ImovelGarantia string       `gorm:"column:imovel_garantia" json:"imovel_garantia,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Fiador) TableName() string { return "fiador" }
