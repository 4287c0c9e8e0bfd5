package finance

import (
	"context"
	"fmt"

	"github.com/edipub/backend/internal/domain/finance"
	"github.com/edipub/backend/internal/domain/identity"
	"github.com/edipub/backend/internal/domain/partner"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WithdrawalService handles payout requests against royalty and rebate
// balances. A request is accepted only when the user's unpaid earnings,
// minus withdrawals already in flight, cover the amount.
type WithdrawalService struct {
	withdrawals finance.WithdrawalRepository
	royalties   finance.RoyaltyRepository
	rebates     finance.PartnerRebateRepository
	partners    partner.PartnerRepository
	logger      *zap.Logger
}

// NewWithdrawalService creates a new withdrawal service
func NewWithdrawalService(
	withdrawals finance.WithdrawalRepository,
	royalties finance.RoyaltyRepository,
	rebates finance.PartnerRebateRepository,
	partners partner.PartnerRepository,
	logger *zap.Logger,
) *WithdrawalService {
	return &WithdrawalService{
		withdrawals: withdrawals,
		royalties:   royalties,
		rebates:     rebates,
		partners:    partners,
		logger:      logger,
	}
}

// AvailableBalance returns the user's unpaid earnings minus withdrawals
// that are pending, approved or paid
func (s *WithdrawalService) AvailableBalance(ctx context.Context, user *identity.User) (decimal.Decimal, error) {
	earned, err := s.earnedBalance(ctx, user)
	if err != nil {
		return decimal.Zero, err
	}
	withdrawn, err := s.withdrawals.SumActiveByUser(ctx, user.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return earned.Sub(withdrawn), nil
}

func (s *WithdrawalService) earnedBalance(ctx context.Context, user *identity.User) (decimal.Decimal, error) {
	switch user.Role {
	case identity.RoleAuteur, identity.RoleConcepteur:
		return s.royalties.SumUnpaidByAuthor(ctx, user.ID)
	case identity.RolePartenaire:
		p, err := s.partners.FindByUserID(ctx, user.ID)
		if err != nil {
			return decimal.Zero, err
		}
		if p == nil {
			return decimal.Zero, nil
		}
		return s.rebates.SumUnpaidByPartner(ctx, p.ID)
	}
	return decimal.Zero, nil
}

// Request creates a pending withdrawal after checking the balance
func (s *WithdrawalService) Request(ctx context.Context, user *identity.User, req WithdrawalRequest) (*WithdrawalResponse, error) {
	available, err := s.AvailableBalance(ctx, user)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(available) {
		return nil, shared.NewInsufficientBalanceError(
			fmt.Sprintf("Solde insuffisant. Disponible: %s FCFA", available.StringFixed(2)))
	}

	w, err := finance.NewWithdrawal(user.ID, req.Amount, req.Method)
	if err != nil {
		return nil, err
	}
	w.PhoneNumber = req.PhoneNumber
	w.Notes = req.Notes
	if err := s.withdrawals.Save(ctx, w); err != nil {
		return nil, err
	}

	s.logger.Info("withdrawal requested",
		zap.String("withdrawal_id", w.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("amount", w.Amount.String()),
	)
	resp := ToWithdrawalResponse(w)
	return &resp, nil
}

// ListForUser returns the user's own withdrawal requests
func (s *WithdrawalService) ListForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]WithdrawalResponse, error) {
	withdrawals, err := s.withdrawals.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]WithdrawalResponse, len(withdrawals))
	for i := range withdrawals {
		responses[i] = ToWithdrawalResponse(&withdrawals[i])
	}
	return responses, nil
}

// List returns all withdrawal requests
func (s *WithdrawalService) List(ctx context.Context, filter shared.Filter) ([]WithdrawalResponse, int64, error) {
	withdrawals, err := s.withdrawals.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.withdrawals.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]WithdrawalResponse, len(withdrawals))
	for i := range withdrawals {
		responses[i] = ToWithdrawalResponse(&withdrawals[i])
	}
	return responses, total, nil
}

// Approve marks a pending withdrawal as approved
func (s *WithdrawalService) Approve(ctx context.Context, id, by uuid.UUID) (*WithdrawalResponse, error) {
	return s.transition(ctx, id, func(w *finance.Withdrawal) error {
		return w.Approve(by)
	})
}

// Reject marks a pending withdrawal as rejected
func (s *WithdrawalService) Reject(ctx context.Context, id, by uuid.UUID, reason string) (*WithdrawalResponse, error) {
	return s.transition(ctx, id, func(w *finance.Withdrawal) error {
		return w.Reject(by, reason)
	})
}

// MarkPaid marks an approved withdrawal as paid out
func (s *WithdrawalService) MarkPaid(ctx context.Context, id, by uuid.UUID) (*WithdrawalResponse, error) {
	return s.transition(ctx, id, func(w *finance.Withdrawal) error {
		return w.MarkPaid(by)
	})
}

func (s *WithdrawalService) transition(ctx context.Context, id uuid.UUID, fn func(*finance.Withdrawal) error) (*WithdrawalResponse, error) {
	w, err := s.withdrawals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, shared.NewNotFoundError("withdrawal")
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := s.withdrawals.Save(ctx, w); err != nil {
		return nil, err
	}
	resp := ToWithdrawalResponse(w)
	return &resp, nil
}
