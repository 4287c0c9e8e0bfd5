package persistence

import (
	"context"
	"errors"

	"github.com/edipub/backend/internal/domain/finance"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRebateRateRepository implements RebateRateRepository using GORM
type GormRebateRateRepository struct {
	db *gorm.DB
}

// NewGormRebateRateRepository creates a new GormRebateRateRepository
func NewGormRebateRateRepository(db *gorm.DB) *GormRebateRateRepository {
	return &GormRebateRateRepository{db: db}
}

// FindByID finds a rate by ID. Returns nil when no rate exists.
func (r *GormRebateRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.RebateRate, error) {
	var rate finance.RebateRate
	if err := r.db.WithContext(ctx).First(&rate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rate, nil
}

// FindActiveByScope returns active rates for the scope, optionally narrowed
// to a reference id, newest first so the latest configured rate wins
func (r *GormRebateRateRepository) FindActiveByScope(ctx context.Context, scope finance.RateScope, refID *uuid.UUID) ([]finance.RebateRate, error) {
	query := r.db.WithContext(ctx).
		Model(&finance.RebateRate{}).
		Where("scope = ? AND is_active = ?", scope, true)

	if refID != nil {
		switch scope {
		case finance.RateScopePartner:
			query = query.Where("partner_id = ?", *refID)
		case finance.RateScopeAuthor:
			query = query.Where("user_id = ?", *refID)
		case finance.RateScopeWork:
			query = query.Where("work_id = ?", *refID)
		}
	}

	var rates []finance.RebateRate
	if err := query.Order("created_at DESC").Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// FindAll finds rates matching the filter
func (r *GormRebateRateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.RebateRate, error) {
	var rates []finance.RebateRate
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.RebateRate{}), filter)
	query = applySort(query, filter, CommonSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// Save inserts or updates a rate
func (r *GormRebateRateRepository) Save(ctx context.Context, rate *finance.RebateRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

// Delete removes a rate
func (r *GormRebateRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&finance.RebateRate{}, "id = ?", id).Error
}

// Count counts rates matching the filter
func (r *GormRebateRateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.RebateRate{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRebateRateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "scope":
			query = query.Where("scope = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}

var _ finance.RebateRateRepository = (*GormRebateRateRepository)(nil)
