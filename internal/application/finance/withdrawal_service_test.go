package finance

import (
	"context"
	"testing"

	"github.com/edipub/backend/internal/domain/finance"
	"github.com/edipub/backend/internal/domain/identity"
	"github.com/edipub/backend/internal/domain/partner"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type withdrawalFixture struct {
	service     *WithdrawalService
	withdrawals *memWithdrawalRepo
	royalties   *memRoyaltyRepo
	rebates     *memRebateRepo
	partners    *memPartnerRepo
}

func newWithdrawalFixture(t *testing.T, partners ...*partner.Partner) *withdrawalFixture {
	t.Helper()
	f := &withdrawalFixture{
		withdrawals: newMemWithdrawalRepo(),
		royalties:   newMemRoyaltyRepo(),
		rebates:     newMemRebateRepo(),
		partners:    newMemPartnerRepo(partners...),
	}
	f.service = NewWithdrawalService(f.withdrawals, f.royalties, f.rebates, f.partners, zap.NewNop())
	return f
}

func testAuthor(t *testing.T) *identity.User {
	t.Helper()
	u, err := identity.NewUser("Auteur Test", "auteur@example.com", "secret123", identity.RoleAuteur)
	require.NoError(t, err)
	return u
}

func creditRoyalty(t *testing.T, f *withdrawalFixture, authorID uuid.UUID, amount int64) {
	t.Helper()
	royalty := finance.NewRoyalty(uuid.New(), uuid.New(), authorID, decimal.NewFromInt(amount), decimal.NewFromInt(15))
	inserted, err := f.royalties.CreateIfAbsent(context.Background(), royalty)
	require.NoError(t, err)
	require.True(t, inserted)
}

func TestWithdrawalService_AvailableBalance(t *testing.T) {
	t.Run("author balance is unpaid royalties minus active withdrawals", func(t *testing.T) {
		author := testAuthor(t)
		f := newWithdrawalFixture(t)
		creditRoyalty(t, f, author.ID, 20000)
		creditRoyalty(t, f, author.ID, 5000)

		balance, err := f.service.AvailableBalance(context.Background(), author)
		require.NoError(t, err)
		assert.Equal(t, "25000", balance.String())

		w, err := finance.NewWithdrawal(author.ID, decimal.NewFromInt(10000), "mobile_money")
		require.NoError(t, err)
		require.NoError(t, f.withdrawals.Save(context.Background(), w))

		balance, err = f.service.AvailableBalance(context.Background(), author)
		require.NoError(t, err)
		assert.Equal(t, "15000", balance.String())
	})

	t.Run("partner balance comes from rebates via the partner record", func(t *testing.T) {
		user, err := identity.NewUser("Partenaire Test", "partenaire@example.com", "secret123", identity.RolePartenaire)
		require.NoError(t, err)
		p, err := partner.NewPartner("Librairie du Centre", "")
		require.NoError(t, err)
		p.UserID = &user.ID
		f := newWithdrawalFixture(t, p)

		rebate := finance.NewPartnerRebate(uuid.New(), p.ID, decimal.NewFromInt(7500), decimal.NewFromInt(10))
		inserted, err := f.rebates.CreateIfAbsent(context.Background(), rebate)
		require.NoError(t, err)
		require.True(t, inserted)

		balance, err := f.service.AvailableBalance(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, "7500", balance.String())
	})

	t.Run("partner role without a partner record has zero balance", func(t *testing.T) {
		user, err := identity.NewUser("Partenaire Orphelin", "orphelin@example.com", "secret123", identity.RolePartenaire)
		require.NoError(t, err)
		f := newWithdrawalFixture(t)

		balance, err := f.service.AvailableBalance(context.Background(), user)
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("client role earns nothing", func(t *testing.T) {
		user, err := identity.NewUser("Client Test", "client@example.com", "secret123", identity.RoleClient)
		require.NoError(t, err)
		f := newWithdrawalFixture(t)

		balance, err := f.service.AvailableBalance(context.Background(), user)
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})
}

func TestWithdrawalService_Request(t *testing.T) {
	t.Run("accepts a covered request", func(t *testing.T) {
		author := testAuthor(t)
		f := newWithdrawalFixture(t)
		creditRoyalty(t, f, author.ID, 20000)

		resp, err := f.service.Request(context.Background(), author, WithdrawalRequest{
			Amount:      decimal.NewFromInt(15000),
			Method:      "mobile_money",
			PhoneNumber: "074000000",
		})
		require.NoError(t, err)
		assert.Equal(t, string(finance.WithdrawalStatusPending), resp.Status)
		assert.Equal(t, "074000000", resp.PhoneNumber)
	})

	t.Run("rejects a request beyond the balance", func(t *testing.T) {
		author := testAuthor(t)
		f := newWithdrawalFixture(t)
		creditRoyalty(t, f, author.ID, 10000)

		_, err := f.service.Request(context.Background(), author, WithdrawalRequest{
			Amount: decimal.NewFromInt(10001),
			Method: "mobile_money",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_BALANCE", domainErr.Code)
		assert.Contains(t, domainErr.Message, "10000.00 FCFA")
	})

	t.Run("pending withdrawals reduce what a second request may take", func(t *testing.T) {
		author := testAuthor(t)
		f := newWithdrawalFixture(t)
		creditRoyalty(t, f, author.ID, 20000)

		_, err := f.service.Request(context.Background(), author, WithdrawalRequest{
			Amount: decimal.NewFromInt(15000),
			Method: "mobile_money",
		})
		require.NoError(t, err)

		_, err = f.service.Request(context.Background(), author, WithdrawalRequest{
			Amount: decimal.NewFromInt(6000),
			Method: "mobile_money",
		})
		assert.Error(t, err)
	})
}

func TestWithdrawalService_Transitions(t *testing.T) {
	reviewer := uuid.New()

	t.Run("approve then mark paid", func(t *testing.T) {
		author := testAuthor(t)
		f := newWithdrawalFixture(t)
		creditRoyalty(t, f, author.ID, 20000)

		resp, err := f.service.Request(context.Background(), author, WithdrawalRequest{
			Amount: decimal.NewFromInt(10000),
			Method: "mobile_money",
		})
		require.NoError(t, err)
		id := uuid.MustParse(resp.ID)

		approved, err := f.service.Approve(context.Background(), id, reviewer)
		require.NoError(t, err)
		assert.Equal(t, string(finance.WithdrawalStatusApproved), approved.Status)

		paid, err := f.service.MarkPaid(context.Background(), id, reviewer)
		require.NoError(t, err)
		assert.Equal(t, string(finance.WithdrawalStatusPaid), paid.Status)
	})

	t.Run("reject records the reason", func(t *testing.T) {
		author := testAuthor(t)
		f := newWithdrawalFixture(t)
		creditRoyalty(t, f, author.ID, 20000)

		resp, err := f.service.Request(context.Background(), author, WithdrawalRequest{
			Amount: decimal.NewFromInt(10000),
			Method: "mobile_money",
		})
		require.NoError(t, err)

		rejected, err := f.service.Reject(context.Background(), uuid.MustParse(resp.ID), reviewer, "Numéro de téléphone invalide")
		require.NoError(t, err)
		assert.Equal(t, string(finance.WithdrawalStatusRejected), rejected.Status)
		assert.Equal(t, "Numéro de téléphone invalide", rejected.Notes)
	})

	t.Run("unknown withdrawal yields not found", func(t *testing.T) {
		f := newWithdrawalFixture(t)
		_, err := f.service.Approve(context.Background(), uuid.New(), reviewer)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}
