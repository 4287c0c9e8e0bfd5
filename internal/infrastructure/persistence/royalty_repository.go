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

// GormRoyaltyRepository implements RoyaltyRepository using GORM
type GormRoyaltyRepository struct {
	db *gorm.DB
}

// NewGormRoyaltyRepository creates a new GormRoyaltyRepository
func NewGormRoyaltyRepository(db *gorm.DB) *GormRoyaltyRepository {
	return &GormRoyaltyRepository{db: db}
}

// CreateIfAbsent inserts the royalty unless one already exists for the
// same (order, work, author). The unique index resolves the race; the
// conflict is silently dropped and reported through the return value.
func (r *GormRoyaltyRepository) CreateIfAbsent(ctx context.Context, royalty *finance.Royalty) (bool, error) {
	result := r.db.WithContext(ctx).
		Omit("Work").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "work_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(royalty)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByAuthor finds an author's royalties, newest first
func (r *GormRoyaltyRepository) FindByAuthor(ctx context.Context, authorID uuid.UUID, filter shared.Filter) ([]finance.Royalty, error) {
	var royalties []finance.Royalty
	query := r.db.WithContext(ctx).
		Model(&finance.Royalty{}).
		Preload("Work").
		Where("user_id = ?", authorID)
	query = applySort(query, filter, CommonSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&royalties).Error; err != nil {
		return nil, err
	}
	return royalties, nil
}

// FindAll finds royalties matching the filter
func (r *GormRoyaltyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]finance.Royalty, error) {
	var royalties []finance.Royalty
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.Royalty{}).Preload("Work"), filter)
	query = applySort(query, filter, CommonSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&royalties).Error; err != nil {
		return nil, err
	}
	return royalties, nil
}

// SumUnpaidByAuthor totals an author's unpaid royalties
func (r *GormRoyaltyRepository) SumUnpaidByAuthor(ctx context.Context, authorID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&finance.Royalty{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND paid = ?", authorID, false).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Count counts royalties matching the filter
func (r *GormRoyaltyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&finance.Royalty{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRoyaltyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "work_id":
			query = query.Where("work_id = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "paid":
			query = query.Where("paid = ?", value)
		}
	}
	return query
}

var _ finance.RoyaltyRepository = (*GormRoyaltyRepository)(nil)
