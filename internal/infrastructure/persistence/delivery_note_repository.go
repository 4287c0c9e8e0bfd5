package persistence

import (
	"context"
	"errors"

	"github.com/edipub/backend/internal/domain/order"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DeliveryNoteSequence is the per-year counter backing delivery note
// references. One row per year; reservation is a single atomic UPDATE.
type DeliveryNoteSequence struct {
	Year  int `gorm:"primaryKey"`
	Value int `gorm:"not null;default:0"`
}

// TableName returns the database table name
func (DeliveryNoteSequence) TableName() string {
	return "delivery_note_sequences"
}

// GormDeliveryNoteRepository implements DeliveryNoteRepository using GORM
type GormDeliveryNoteRepository struct {
	db *gorm.DB
}

// NewGormDeliveryNoteRepository creates a new GormDeliveryNoteRepository
func NewGormDeliveryNoteRepository(db *gorm.DB) *GormDeliveryNoteRepository {
	return &GormDeliveryNoteRepository{db: db}
}

// FindByID finds a delivery note by ID. Returns nil when no note exists.
func (r *GormDeliveryNoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.DeliveryNote, error) {
	var note order.DeliveryNote
	if err := r.db.WithContext(ctx).First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// FindByOrderID finds the delivery note of an order. Returns nil when the
// order has no note yet.
func (r *GormDeliveryNoteRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*order.DeliveryNote, error) {
	var note order.DeliveryNote
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// FindByReference finds a delivery note by its reference
func (r *GormDeliveryNoteRepository) FindByReference(ctx context.Context, reference string) (*order.DeliveryNote, error) {
	var note order.DeliveryNote
	if err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// FindAll finds all delivery notes matching the filter, newest first
func (r *GormDeliveryNoteRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.DeliveryNote, error) {
	var notes []order.DeliveryNote
	query := r.db.WithContext(ctx).Model(&order.DeliveryNote{}).Preload("Order")
	query = applySort(query, filter, CommonSortFields, "created_at")
	query = applyPagination(query, filter)
	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// Save inserts or updates a delivery note
func (r *GormDeliveryNoteRepository) Save(ctx context.Context, note *order.DeliveryNote) error {
	return r.db.WithContext(ctx).Omit("Order").Save(note).Error
}

// Count counts delivery notes
func (r *GormDeliveryNoteRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&order.DeliveryNote{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// NextReference atomically reserves the next sequence number for the year
// and returns the formatted reference. The counter row is created on first
// use; the increment is a single UPDATE ... RETURNING so two concurrent
// transactions can never observe the same value.
func (r *GormDeliveryNoteRepository) NextReference(ctx context.Context, year int) (string, error) {
	db := r.db.WithContext(ctx)

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&DeliveryNoteSequence{Year: year}).Error; err != nil {
		return "", err
	}

	var value int
	if err := db.Raw(
		"UPDATE delivery_note_sequences SET value = value + 1 WHERE year = ? RETURNING value",
		year,
	).Scan(&value).Error; err != nil {
		return "", err
	}

	return order.FormatDeliveryNoteReference(year, value), nil
}

var _ order.DeliveryNoteRepository = (*GormDeliveryNoteRepository)(nil)
