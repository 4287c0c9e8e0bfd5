package persistence

import (
	"context"

	appinventory "github.com/edipub/backend/internal/application/inventory"
	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/inventory"
	"github.com/edipub/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. Every repository handed to
// fn is bound to that transaction, so stock, order, delivery note and
// movement writes commit or roll back together.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Orders() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) Works() catalog.WorkRepository {
	return NewGormWorkRepository(r.tx)
}

func (r *gormTransactionalRepositories) DeliveryNotes() order.DeliveryNoteRepository {
	return NewGormDeliveryNoteRepository(r.tx)
}

func (r *gormTransactionalRepositories) Movements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ appinventory.TransactionScope = (*GormTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
