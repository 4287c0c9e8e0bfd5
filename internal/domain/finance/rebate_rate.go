package finance

import (
	"time"

	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateScope identifies the level at which a rebate rate applies. Narrower
// scopes win over broader ones: WORK > AUTHOR > PARTNER > GLOBAL.
type RateScope string

const (
	RateScopeGlobal  RateScope = "GLOBAL"
	RateScopePartner RateScope = "PARTNER"
	RateScopeAuthor  RateScope = "AUTHOR"
	RateScopeWork    RateScope = "WORK"
)

// IsValid reports whether the scope is known
func (s RateScope) IsValid() bool {
	switch s {
	case RateScopeGlobal, RateScopePartner, RateScopeAuthor, RateScopeWork:
		return true
	}
	return false
}

// Default rates applied when no configured rate matches
var (
	DefaultPartnerRate = decimal.NewFromInt(10)
	DefaultAuthorRate  = decimal.NewFromInt(15)
)

// RebateRate is a configured commission rate, optionally bounded by a
// validity window. The scope determines which reference id is set.
type RebateRate struct {
	shared.BaseEntity
	Scope     RateScope       `gorm:"size:32;not null;index" json:"scope"`
	Rate      decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"rate"`
	PartnerID *uuid.UUID      `gorm:"type:uuid;index" json:"partner_id,omitempty"`
	UserID    *uuid.UUID      `gorm:"type:uuid;index" json:"user_id,omitempty"`
	WorkID    *uuid.UUID      `gorm:"type:uuid;index" json:"work_id,omitempty"`
	IsActive  bool            `gorm:"not null;default:true;index" json:"is_active"`
	StartDate *time.Time      `json:"start_date,omitempty"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
}

// TableName returns the database table name
func (RebateRate) TableName() string {
	return "rebate_rates"
}

// NewRebateRate creates an active rate for the given scope
func NewRebateRate(scope RateScope, rate decimal.Decimal) (*RebateRate, error) {
	if !scope.IsValid() {
		return nil, shared.NewInvalidInputError("unknown rate scope: " + string(scope))
	}
	if rate.IsNegative() {
		return nil, shared.NewInvalidInputError("rate cannot be negative")
	}
	return &RebateRate{
		BaseEntity: shared.NewBaseEntity(),
		Scope:      scope,
		Rate:       rate,
		IsActive:   true,
	}, nil
}

// AppliesAt reports whether the rate is active and inside its validity
// window at the given time
func (r *RebateRate) AppliesAt(t time.Time) bool {
	if !r.IsActive {
		return false
	}
	if r.StartDate != nil && t.Before(*r.StartDate) {
		return false
	}
	if r.EndDate != nil && t.After(*r.EndDate) {
		return false
	}
	return true
}
