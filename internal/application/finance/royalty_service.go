package finance

import (
	"context"

	"github.com/edipub/backend/internal/domain/finance"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoyaltyService answers royalty and rebate queries
type RoyaltyService struct {
	royalties finance.RoyaltyRepository
	rebates   finance.PartnerRebateRepository
}

// NewRoyaltyService creates a new royalty service
func NewRoyaltyService(royalties finance.RoyaltyRepository, rebates finance.PartnerRebateRepository) *RoyaltyService {
	return &RoyaltyService{royalties: royalties, rebates: rebates}
}

// AuthorSummary returns an author's royalties with totals
func (s *RoyaltyService) AuthorSummary(ctx context.Context, authorID uuid.UUID, filter shared.Filter) (*RoyaltySummary, error) {
	royalties, err := s.royalties.FindByAuthor(ctx, authorID, filter)
	if err != nil {
		return nil, err
	}
	unpaid, err := s.royalties.SumUnpaidByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}

	responses := make([]RoyaltyResponse, len(royalties))
	total := decimal.Zero
	for i := range royalties {
		responses[i] = ToRoyaltyResponse(&royalties[i])
		total = total.Add(royalties[i].Amount)
	}
	return &RoyaltySummary{
		Royalties:   responses,
		TotalAmount: total,
		UnpaidTotal: unpaid,
	}, nil
}

// List returns all royalties matching the filter
func (s *RoyaltyService) List(ctx context.Context, filter shared.Filter) ([]RoyaltyResponse, int64, error) {
	royalties, err := s.royalties.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.royalties.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]RoyaltyResponse, len(royalties))
	for i := range royalties {
		responses[i] = ToRoyaltyResponse(&royalties[i])
	}
	return responses, total, nil
}

// PartnerRebates returns a partner's rebates
func (s *RoyaltyService) PartnerRebates(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]RebateResponse, error) {
	rebates, err := s.rebates.FindByPartner(ctx, partnerID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]RebateResponse, len(rebates))
	for i := range rebates {
		responses[i] = ToRebateResponse(&rebates[i])
	}
	return responses, nil
}

// ListRebates returns all rebates matching the filter
func (s *RoyaltyService) ListRebates(ctx context.Context, filter shared.Filter) ([]RebateResponse, int64, error) {
	rebates, err := s.rebates.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.rebates.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]RebateResponse, len(rebates))
	for i := range rebates {
		responses[i] = ToRebateResponse(&rebates[i])
	}
	return responses, total, nil
}
