package catalog

import (
	"github.com/edipub/backend/internal/domain/identity"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WorkStatus represents the lifecycle state of a work in the catalog
type WorkStatus string

const (
	WorkStatusDraft      WorkStatus = "DRAFT"
	WorkStatusPublished  WorkStatus = "PUBLISHED"
	WorkStatusOnSale     WorkStatus = "ON_SALE"
	WorkStatusOutOfStock WorkStatus = "OUT_OF_STOCK"
	WorkStatusArchived   WorkStatus = "ARCHIVED"
)

// DefaultTVARate is the VAT rate applied to works created without an
// explicit rate.
var DefaultTVARate = decimal.NewFromFloat(0.18)

// RoyaltyType determines how an author's royalty is computed for a work
type RoyaltyType string

const (
	// RoyaltyTypePercentage applies the rate to the discounted sale amount
	RoyaltyTypePercentage RoyaltyType = "PERCENTAGE"
	// RoyaltyTypeFixed applies a fixed amount per copy, scaled by the
	// order's discount ratio
	RoyaltyTypeFixed RoyaltyType = "FIXED"
)

// Work is a published title in the catalog. It carries the logical stock
// counter used for availability checks and the physical stock counter used
// for warehouse reconciliation.
type Work struct {
	shared.BaseEntity
	Title         string           `gorm:"size:512;not null" json:"title"`
	ISBN          string           `gorm:"size:32;index" json:"isbn,omitempty"`
	Price         decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	TVARate       decimal.Decimal  `gorm:"type:decimal(5,4);not null;default:0.18" json:"tva_rate"`
	Stock         int              `gorm:"not null;default:0" json:"stock"`
	PhysicalStock int              `gorm:"not null;default:0" json:"physical_stock"`
	MinStock      int              `gorm:"not null;default:0" json:"min_stock"`
	Status        WorkStatus       `gorm:"size:32;not null;default:'DRAFT';index" json:"status"`
	AuthorID      *uuid.UUID       `gorm:"type:uuid;index" json:"author_id,omitempty"`
	Author        *identity.User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	RoyaltyRate   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"royalty_rate,omitempty"`
	RoyaltyType   RoyaltyType      `gorm:"size:32;default:'PERCENTAGE'" json:"royalty_type"`
}

// TableName returns the database table name
func (Work) TableName() string {
	return "works"
}

// NewWork creates a new work in DRAFT status
func NewWork(title string, price decimal.Decimal) (*Work, error) {
	if title == "" {
		return nil, shared.NewInvalidInputError("title is required")
	}
	if price.IsNegative() {
		return nil, shared.NewInvalidInputError("price cannot be negative")
	}
	return &Work{
		BaseEntity:  shared.NewBaseEntity(),
		Title:       title,
		Price:       price,
		TVARate:     DefaultTVARate,
		Status:      WorkStatusDraft,
		RoyaltyType: RoyaltyTypePercentage,
	}, nil
}

// IsSellable reports whether the work can be ordered
func (w *Work) IsSellable() bool {
	return w.Status == WorkStatusOnSale || w.Status == WorkStatusPublished
}

// HasStock reports whether the logical stock covers the requested quantity
func (w *Work) HasStock(quantity int) bool {
	return w.Stock >= quantity
}

// DecrementStock reduces both stock counters by the given quantity.
// Fails with an INSUFFICIENT_STOCK error when the logical stock does not
// cover the quantity; callers must hold a row lock when invoking this
// inside a validation transaction.
func (w *Work) DecrementStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewInvalidInputError("quantity must be positive")
	}
	if w.Stock < quantity {
		return shared.NewInsufficientStockError(w.Title, w.Stock, quantity)
	}
	w.Stock -= quantity
	w.PhysicalStock -= quantity
	w.Touch()
	return nil
}

// IncrementStock raises both stock counters by the given quantity
func (w *Work) IncrementStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewInvalidInputError("quantity must be positive")
	}
	w.Stock += quantity
	w.PhysicalStock += quantity
	w.Touch()
	return nil
}

// AdjustStock applies a signed correction to both stock counters.
// The logical counter never goes below zero.
func (w *Work) AdjustStock(delta int) error {
	if w.Stock+delta < 0 {
		return shared.NewInsufficientStockError(w.Title, w.Stock, -delta)
	}
	w.Stock += delta
	w.PhysicalStock += delta
	w.Touch()
	return nil
}

// IsLowStock reports whether the logical stock has fallen to or below the
// configured minimum
func (w *Work) IsLowStock() bool {
	return w.MinStock > 0 && w.Stock <= w.MinStock
}
