package partner

import (
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Type distinguishes the kinds of distribution partners
type Type string

const (
	TypeLibrairie    Type = "LIBRAIRIE"
	TypeDistributeur Type = "DISTRIBUTEUR"
	TypeEcole        Type = "ECOLE"
)

// Partner is a distribution partner (bookshop, distributor, school)
// entitled to rebates on orders placed on its behalf.
type Partner struct {
	shared.BaseEntity
	Name    string     `gorm:"size:255;not null" json:"name"`
	Email   string     `gorm:"size:255" json:"email,omitempty"`
	Phone   string     `gorm:"size:32" json:"phone,omitempty"`
	Address string     `gorm:"size:512" json:"address,omitempty"`
	Type    Type       `gorm:"size:32;not null;default:'LIBRAIRIE'" json:"type"`
	UserID  *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Active  bool       `gorm:"default:true" json:"active"`
}

// TableName returns the database table name
func (Partner) TableName() string {
	return "partners"
}

// NewPartner creates a new partner with a generated ID
func NewPartner(name string, partnerType Type) (*Partner, error) {
	if name == "" {
		return nil, shared.NewInvalidInputError("partner name is required")
	}
	if partnerType == "" {
		partnerType = TypeLibrairie
	}
	return &Partner{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Type:       partnerType,
		Active:     true,
	}, nil
}
