package catalog

import (
	"time"

	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateWorkRequest is the input for adding a work to the catalog
type CreateWorkRequest struct {
	Title       string           `json:"title" binding:"required"`
	ISBN        string           `json:"isbn"`
	Price       decimal.Decimal  `json:"price" binding:"required"`
	TVARate     *decimal.Decimal `json:"tva_rate"`
	Stock       *int             `json:"stock" binding:"omitempty,gte=0"`
	MinStock    *int             `json:"min_stock" binding:"omitempty,gte=0"`
	Status      *string          `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED ON_SALE OUT_OF_STOCK ARCHIVED"`
	AuthorID    *string          `json:"author_id" binding:"omitempty,uuid"`
	RoyaltyRate *decimal.Decimal `json:"royalty_rate"`
	RoyaltyType *string          `json:"royalty_type" binding:"omitempty,oneof=PERCENTAGE FIXED"`
}

// UpdateWorkRequest is the input for modifying a work. All fields are
// optional; absent fields keep their current value.
type UpdateWorkRequest struct {
	Title       *string          `json:"title"`
	ISBN        *string          `json:"isbn"`
	Price       *decimal.Decimal `json:"price"`
	TVARate     *decimal.Decimal `json:"tva_rate"`
	MinStock    *int             `json:"min_stock" binding:"omitempty,gte=0"`
	Status      *string          `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED ON_SALE OUT_OF_STOCK ARCHIVED"`
	AuthorID    *string          `json:"author_id" binding:"omitempty,uuid"`
	RoyaltyRate *decimal.Decimal `json:"royalty_rate"`
	RoyaltyType *string          `json:"royalty_type" binding:"omitempty,oneof=PERCENTAGE FIXED"`
}

// WorkResponse is the API representation of a work
type WorkResponse struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	ISBN          string           `json:"isbn,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	TVARate       decimal.Decimal  `json:"tva_rate"`
	Stock         int              `json:"stock"`
	PhysicalStock int              `json:"physical_stock"`
	MinStock      int              `json:"min_stock"`
	Status        string           `json:"status"`
	AuthorID      string           `json:"author_id,omitempty"`
	AuthorName    string           `json:"author_name,omitempty"`
	RoyaltyRate   *decimal.Decimal `json:"royalty_rate,omitempty"`
	RoyaltyType   string           `json:"royalty_type"`
	LowStock      bool             `json:"low_stock"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ToWorkResponse converts a domain work
func ToWorkResponse(w *catalog.Work) WorkResponse {
	resp := WorkResponse{
		ID:            w.ID.String(),
		Title:         w.Title,
		ISBN:          w.ISBN,
		Price:         w.Price,
		TVARate:       w.TVARate,
		Stock:         w.Stock,
		PhysicalStock: w.PhysicalStock,
		MinStock:      w.MinStock,
		Status:        string(w.Status),
		RoyaltyRate:   w.RoyaltyRate,
		RoyaltyType:   string(w.RoyaltyType),
		LowStock:      w.IsLowStock(),
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
	if w.AuthorID != nil {
		resp.AuthorID = w.AuthorID.String()
	}
	if w.Author != nil {
		resp.AuthorName = w.Author.Name
	}
	return resp
}
