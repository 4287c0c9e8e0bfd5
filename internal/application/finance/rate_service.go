package finance

import (
	"context"

	"github.com/edipub/backend/internal/domain/finance"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RateService manages the configurable commission rates
type RateService struct {
	rates finance.RebateRateRepository
}

// NewRateService creates a new rate service
func NewRateService(rates finance.RebateRateRepository) *RateService {
	return &RateService{rates: rates}
}

// Create records a new commission rate
func (s *RateService) Create(ctx context.Context, req RateRequest) (*RateResponse, error) {
	rate, err := finance.NewRebateRate(finance.RateScope(req.Scope), req.Rate)
	if err != nil {
		return nil, err
	}
	if err := applyRateRequest(rate, req); err != nil {
		return nil, err
	}
	if err := validateScopeReference(rate); err != nil {
		return nil, err
	}
	if err := s.rates.Save(ctx, rate); err != nil {
		return nil, err
	}
	resp := ToRateResponse(rate)
	return &resp, nil
}

// Update modifies an existing commission rate
func (s *RateService) Update(ctx context.Context, id uuid.UUID, req RateRequest) (*RateResponse, error) {
	rate, err := s.rates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, shared.NewNotFoundError("rate")
	}

	scope := finance.RateScope(req.Scope)
	if !scope.IsValid() {
		return nil, shared.NewInvalidInputError("unknown rate scope")
	}
	if req.Rate.IsNegative() {
		return nil, shared.NewInvalidInputError("rate cannot be negative")
	}
	rate.Scope = scope
	rate.Rate = req.Rate
	if err := applyRateRequest(rate, req); err != nil {
		return nil, err
	}
	if err := validateScopeReference(rate); err != nil {
		return nil, err
	}
	rate.Touch()
	if err := s.rates.Save(ctx, rate); err != nil {
		return nil, err
	}
	resp := ToRateResponse(rate)
	return &resp, nil
}

// Get returns a single rate
func (s *RateService) Get(ctx context.Context, id uuid.UUID) (*RateResponse, error) {
	rate, err := s.rates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, shared.NewNotFoundError("rate")
	}
	resp := ToRateResponse(rate)
	return &resp, nil
}

// List returns all configured rates
func (s *RateService) List(ctx context.Context, filter shared.Filter) ([]RateResponse, int64, error) {
	rates, err := s.rates.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.rates.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]RateResponse, len(rates))
	for i := range rates {
		responses[i] = ToRateResponse(&rates[i])
	}
	return responses, total, nil
}

// Delete removes a rate. Resolution falls back to the hierarchy defaults
// once a scope has no configured rate left.
func (s *RateService) Delete(ctx context.Context, id uuid.UUID) error {
	rate, err := s.rates.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if rate == nil {
		return shared.NewNotFoundError("rate")
	}
	return s.rates.Delete(ctx, id)
}

func applyRateRequest(rate *finance.RebateRate, req RateRequest) error {
	var err error
	if rate.PartnerID, err = parseOptionalID(req.PartnerID); err != nil {
		return shared.NewInvalidInputError("invalid partner id")
	}
	if rate.UserID, err = parseOptionalID(req.UserID); err != nil {
		return shared.NewInvalidInputError("invalid user id")
	}
	if rate.WorkID, err = parseOptionalID(req.WorkID); err != nil {
		return shared.NewInvalidInputError("invalid work id")
	}
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}
	rate.StartDate = req.StartDate
	rate.EndDate = req.EndDate
	if rate.StartDate != nil && rate.EndDate != nil && rate.EndDate.Before(*rate.StartDate) {
		return shared.NewInvalidInputError("end date precedes start date")
	}
	return nil
}

// validateScopeReference requires the identifier matching the scope, so a
// PARTNER rate cannot be created without its partner.
func validateScopeReference(rate *finance.RebateRate) error {
	switch rate.Scope {
	case finance.RateScopePartner:
		if rate.PartnerID == nil {
			return shared.NewInvalidInputError("partner id required for PARTNER scope")
		}
	case finance.RateScopeAuthor:
		if rate.UserID == nil {
			return shared.NewInvalidInputError("user id required for AUTHOR scope")
		}
	case finance.RateScopeWork:
		if rate.WorkID == nil {
			return shared.NewInvalidInputError("work id required for WORK scope")
		}
	}
	return nil
}

func parseOptionalID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
