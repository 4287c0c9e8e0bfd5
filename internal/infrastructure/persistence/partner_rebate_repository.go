package persistence

import (
	"context"

	"github.com/edipub/backend/internal/domain/finance"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartnerRebateRepository implements PartnerRebateRepository using GORM
type GormPartnerRebateRepository struct {
	db *gorm.DB
}

// NewGormPartnerRebateRepository creates a new GormPartnerRebateRepository
func NewGormPartnerRebateRepository(db *gorm.DB) *GormPartnerRebateRepository {
	return &GormPartnerRebateRepository{db: db}
}

// CreateIfAbsent inserts the rebate unless one already exists for the same
// (order, partner)
func (r *GormPartnerRebateRepository) CreateIfAbsent(ctx context.Context, rebate *finance.PartnerRebate) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "partner_id"}},
			DoNothing: true,
		}).
		Create(rebate)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByPartner finds a partner's rebates, newest first
func (r *GormPartnerRebateRepository) FindByPartner(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]finance.PartnerRebate, error) {
	var rebates []finance.PartnerRebate
	query := r.db.WithContext(ctx).
		Model(&finance.PartnerRebate{}).
		Where("partner_id = ?", partnerID)
	query = applySort(query, filter, CommonSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&rebates).Error; err != nil {
		return nil, err
	}
	return rebates, nil
}

// FindAll finds rebates matching the filter
func (r *GormPartnerRebateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.PartnerRebate, error) {
	var rebates []finance.PartnerRebate
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.PartnerRebate{}), filter)
	query = applySort(query, filter, CommonSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&rebates).Error; err != nil {
		return nil, err
	}
	return rebates, nil
}

// SumUnpaidByPartner totals a partner's rebates not yet paid out
func (r *GormPartnerRebateRepository) SumUnpaidByPartner(ctx context.Context, partnerID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&finance.PartnerRebate{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("partner_id = ? AND status <> ?", partnerID, finance.RebateStatusPaid).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Save updates a rebate (status transitions)
func (r *GormPartnerRebateRepository) Save(ctx context.Context, rebate *finance.PartnerRebate) error {
	return r.db.WithContext(ctx).Save(rebate).Error
}

// Count counts rebates matching the filter
func (r *GormPartnerRebateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.PartnerRebate{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPartnerRebateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "partner_id":
			query = query.Where("partner_id = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

var _ finance.PartnerRebateRepository = (*GormPartnerRebateRepository)(nil)
