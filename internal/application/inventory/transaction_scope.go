package inventory

import (
	"context"

	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/inventory"
	"github.com/edipub/backend/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories that
// participate in stock-affecting workflows. When a function is executed
// within a transaction scope, all repository operations are part of the
// same database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction. All returned repositories share the same underlying
// database transaction.
type TransactionalRepositories interface {
	Orders() order.OrderRepository
	Works() catalog.WorkRepository
	DeliveryNotes() order.DeliveryNoteRepository
	Movements() inventory.StockMovementRepository
}

// NoOpTransactionScope is a transaction scope that does not open a real
// transaction. Used in tests with repository fakes.
type NoOpTransactionScope struct {
	OrderRepo        order.OrderRepository
	WorkRepo         catalog.WorkRepository
	DeliveryNoteRepo order.DeliveryNoteRepository
	MovementRepo     inventory.StockMovementRepository
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() order.OrderRepository {
	return s.OrderRepo
}

// Works returns the work repository
func (s *NoOpTransactionScope) Works() catalog.WorkRepository {
	return s.WorkRepo
}

// DeliveryNotes returns the delivery note repository
func (s *NoOpTransactionScope) DeliveryNotes() order.DeliveryNoteRepository {
	return s.DeliveryNoteRepo
}

// Movements returns the stock movement repository
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository {
	return s.MovementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
