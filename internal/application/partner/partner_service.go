package partner

import (
	"context"

	"github.com/edipub/backend/internal/domain/partner"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CreatePartnerRequest is the input for registering a partner
type CreatePartnerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"omitempty,email"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	Type    string  `json:"type" binding:"omitempty,oneof=LIBRAIRIE DISTRIBUTEUR ECOLE"`
	UserID  *string `json:"user_id" binding:"omitempty,uuid"`
}

// UpdatePartnerRequest is the input for modifying a partner
type UpdatePartnerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Type    *string `json:"type" binding:"omitempty,oneof=LIBRAIRIE DISTRIBUTEUR ECOLE"`
	UserID  *string `json:"user_id" binding:"omitempty,uuid"`
	Active  *bool   `json:"active"`
}

// PartnerService manages distribution partners
type PartnerService struct {
	partners partner.PartnerRepository
}

// NewPartnerService creates a new partner service
func NewPartnerService(partners partner.PartnerRepository) *PartnerService {
	return &PartnerService{partners: partners}
}

// Create registers a partner
func (s *PartnerService) Create(ctx context.Context, req CreatePartnerRequest) (*partner.Partner, error) {
	p, err := partner.NewPartner(req.Name, partner.Type(req.Type))
	if err != nil {
		return nil, err
	}
	p.Email = req.Email
	p.Phone = req.Phone
	p.Address = req.Address
	if req.UserID != nil && *req.UserID != "" {
		userID, err := uuid.Parse(*req.UserID)
		if err != nil {
			return nil, shared.NewInvalidInputError("invalid user id")
		}
		p.UserID = &userID
	}
	if err := s.partners.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns a single partner
func (s *PartnerService) Get(ctx context.Context, id uuid.UUID) (*partner.Partner, error) {
	p, err := s.partners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewNotFoundError("partner")
	}
	return p, nil
}

// List returns partners matching the filter
func (s *PartnerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[partner.Partner], error) {
	partners, err := s.partners.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.partners.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return shared.NewPaginated(partners, total, filter.Page, filter.PageSize), nil
}

// Update modifies a partner
func (s *PartnerService) Update(ctx context.Context, id uuid.UUID, req UpdatePartnerRequest) (*partner.Partner, error) {
	p, err := s.partners.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, shared.NewNotFoundError("partner")
	}

	if req.Name != nil && *req.Name != "" {
		p.Name = *req.Name
	}
	if req.Email != nil {
		p.Email = *req.Email
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Type != nil {
		p.Type = partner.Type(*req.Type)
	}
	if req.UserID != nil {
		if *req.UserID == "" {
			p.UserID = nil
		} else {
			userID, err := uuid.Parse(*req.UserID)
			if err != nil {
				return nil, shared.NewInvalidInputError("invalid user id")
			}
			p.UserID = &userID
		}
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	p.Touch()

	if err := s.partners.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a partner
func (s *PartnerService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.partners.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return shared.NewNotFoundError("partner")
	}
	return s.partners.Delete(ctx, id)
}
