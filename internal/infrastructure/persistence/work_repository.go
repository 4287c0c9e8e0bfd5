package persistence

import (
	"context"
	"errors"

	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWorkRepository implements WorkRepository using GORM
type GormWorkRepository struct {
	db *gorm.DB
}

// NewGormWorkRepository creates a new GormWorkRepository
func NewGormWorkRepository(db *gorm.DB) *GormWorkRepository {
	return &GormWorkRepository{db: db}
}

// FindByID finds a work by ID with its author expanded. Returns nil when
// no work exists.
func (r *GormWorkRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Work, error) {
	var work catalog.Work
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&work, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &work, nil
}

// FindByIDForUpdate fetches a work under a row lock. The lock clause is
// skipped on sqlite, which serializes writers at the connection level
// instead of supporting SELECT FOR UPDATE.
func (r *GormWorkRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Work, error) {
	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var work catalog.Work
	if err := query.First(&work, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &work, nil
}

// FindByIDs finds multiple works by their IDs
func (r *GormWorkRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Work, error) {
	if len(ids) == 0 {
		return []catalog.Work{}, nil
	}
	var works []catalog.Work
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&works).Error; err != nil {
		return nil, err
	}
	return works, nil
}

// FindAll finds all works matching the filter
func (r *GormWorkRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Work, error) {
	var works []catalog.Work
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Work{}).Preload("Author"), filter)
	query = applySort(query, filter, WorkSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&works).Error; err != nil {
		return nil, err
	}
	return works, nil
}

// FindLowStock finds works at or below their configured minimum stock
func (r *GormWorkRepository) FindLowStock(ctx context.Context) ([]catalog.Work, error) {
	var works []catalog.Work
	if err := r.db.WithContext(ctx).
		Where("min_stock > 0 AND stock <= min_stock").
		Order("stock ASC").
		Find(&works).Error; err != nil {
		return nil, err
	}
	return works, nil
}

// Save inserts or updates a work
func (r *GormWorkRepository) Save(ctx context.Context, work *catalog.Work) error {
	return r.db.WithContext(ctx).Omit("Author").Save(work).Error
}

// Delete removes a work
func (r *GormWorkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&catalog.Work{}, "id = ?", id).Error
}

// Count counts works matching the filter
func (r *GormWorkRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Work{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormWorkRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR isbn ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "author_id":
			query = query.Where("author_id = ?", value)
		}
	}
	return query
}

var _ catalog.WorkRepository = (*GormWorkRepository)(nil)
