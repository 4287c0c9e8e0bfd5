package identity

import (
	"github.com/edipub/backend/internal/domain/shared"
)

// Role identifies what a user is allowed to do in the system
type Role string

const (
	RolePDG          Role = "PDG"
	RoleRepresentant Role = "REPRESENTANT"
	RoleAuteur       Role = "AUTEUR"
	RoleConcepteur   Role = "CONCEPTEUR"
	RolePartenaire   Role = "PARTENAIRE"
	RoleClient       Role = "CLIENT"
)

// StaffRoles are the roles with back-office access (order management,
// stock, settlement administration)
var StaffRoles = []Role{RolePDG, RoleRepresentant}

// IsStaff reports whether the role grants back-office access
func (r Role) IsStaff() bool {
	for _, role := range StaffRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RolePDG, RoleRepresentant, RoleAuteur, RoleConcepteur, RolePartenaire, RoleClient:
		return true
	}
	return false
}

// Client pricing tiers. The tier drives the reference price applied at
// order creation.
const (
	ClientTypeParticulier = "PARTICULIER"
	ClientTypeLibrairie   = "LIBRAIRIE"
	ClientTypeEcole       = "ECOLE"
	ClientTypeGrossiste   = "GROSSISTE"
)

// User represents an account in the system
type User struct {
	shared.BaseEntity
	Name       string `gorm:"size:255;not null" json:"name"`
	Email      string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password   string `gorm:"size:255;not null" json:"-"`
	Role       Role   `gorm:"size:32;not null;default:'CLIENT';index" json:"role"`
	Phone      string `gorm:"size:32" json:"phone,omitempty"`
	ClientType string `gorm:"size:32;default:'PARTICULIER'" json:"client_type,omitempty"`
	Active     bool   `gorm:"default:true" json:"active"`
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with a generated ID.
// Password must already be hashed by the caller.
func NewUser(name, email, hashedPassword string, role Role) (*User, error) {
	if name == "" {
		return nil, shared.NewInvalidInputError("name is required")
	}
	if email == "" {
		return nil, shared.NewInvalidInputError("email is required")
	}
	if !role.IsValid() {
		return nil, shared.NewInvalidInputError("unknown role: " + string(role))
	}
	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		Password:   hashedPassword,
		Role:       role,
		ClientType: ClientTypeParticulier,
		Active:     true,
	}, nil
}

// CanManageOrders reports whether the user may validate, update or delete
// any order. Non-staff users are limited to their own orders.
func (u *User) CanManageOrders() bool {
	return u.Role.IsStaff()
}
