package persistence

import (
	"context"
	"errors"

	"github.com/edipub/backend/internal/domain/finance"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormWithdrawalRepository implements WithdrawalRepository using GORM
type GormWithdrawalRepository struct {
	db *gorm.DB
}

// NewGormWithdrawalRepository creates a new GormWithdrawalRepository
func NewGormWithdrawalRepository(db *gorm.DB) *GormWithdrawalRepository {
	return &GormWithdrawalRepository{db: db}
}

// FindByID finds a withdrawal by ID. Returns nil when none exists.
func (r *GormWithdrawalRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Withdrawal, error) {
	var w finance.Withdrawal
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// FindByUser finds a user's withdrawal requests, newest first
func (r *GormWithdrawalRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]finance.Withdrawal, error) {
	var withdrawals []finance.Withdrawal
	query := r.db.WithContext(ctx).
		Model(&finance.Withdrawal{}).
		Where("user_id = ?", userID)
	query = applySort(query, filter, CommonSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// FindAll finds withdrawals matching the filter
func (r *GormWithdrawalRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Withdrawal, error) {
	var withdrawals []finance.Withdrawal
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.Withdrawal{}), filter)
	query = applySort(query, filter, CommonSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&withdrawals).Error; err != nil {
		return nil, err
	}
	return withdrawals, nil
}

// Save inserts or updates a withdrawal
func (r *GormWithdrawalRepository) Save(ctx context.Context, w *finance.Withdrawal) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// SumActiveByUser totals a user's withdrawals that are pending, approved
// or paid. Rejected requests release their amount back to the balance.
func (r *GormWithdrawalRepository) SumActiveByUser(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&finance.Withdrawal{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND status <> ?", userID, finance.WithdrawalStatusRejected).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Count counts withdrawals matching the filter
func (r *GormWithdrawalRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.Withdrawal{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormWithdrawalRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

var _ finance.WithdrawalRepository = (*GormWithdrawalRepository)(nil)
