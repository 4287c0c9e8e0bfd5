package order

import (
	"context"

	"github.com/edipub/backend/internal/domain/catalog"
	"github.com/edipub/backend/internal/domain/identity"
	"github.com/edipub/backend/internal/domain/inventory"
	"github.com/edipub/backend/internal/domain/order"
	"github.com/edipub/backend/internal/domain/partner"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests in this package.

type memOrderRepo struct {
	orders map[uuid.UUID]*order.Order
	saves  int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]*order.Order)}
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	return r.orders[id], nil
}

func (r *memOrderRepo) FindAll(_ context.Context, filter shared.Filter) ([]order.Order, error) {
	var result []order.Order
	for _, o := range r.orders {
		if userID, ok := filter.Filters["user_id"]; ok && o.UserID != userID.(uuid.UUID) {
			continue
		}
		result = append(result, *o)
	}
	return result, nil
}

func (r *memOrderRepo) Save(_ context.Context, o *order.Order) error {
	r.orders[o.ID] = o
	r.saves++
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *memOrderRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	orders, err := r.FindAll(ctx, filter)
	return int64(len(orders)), err
}

func (r *memOrderRepo) FindValidatedWithoutDeliveryNote(_ context.Context) ([]order.Order, error) {
	return nil, nil
}

func (r *memOrderRepo) CountByStatus(_ context.Context) (map[order.OrderStatus]int64, error) {
	counts := make(map[order.OrderStatus]int64)
	for _, o := range r.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (r *memOrderRepo) RevenueTotal(_ context.Context) (float64, error) {
	return 0, nil
}

type memWorkRepo struct {
	works map[uuid.UUID]*catalog.Work
}

func newMemWorkRepo(works ...*catalog.Work) *memWorkRepo {
	r := &memWorkRepo{works: make(map[uuid.UUID]*catalog.Work)}
	for _, w := range works {
		r.works[w.ID] = w
	}
	return r
}

func (r *memWorkRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Work, error) {
	return r.works[id], nil
}

func (r *memWorkRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*catalog.Work, error) {
	return r.works[id], nil
}

func (r *memWorkRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Work, error) {
	var result []catalog.Work
	for _, id := range ids {
		if w, ok := r.works[id]; ok {
			result = append(result, *w)
		}
	}
	return result, nil
}

func (r *memWorkRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Work, error) {
	var result []catalog.Work
	for _, w := range r.works {
		result = append(result, *w)
	}
	return result, nil
}

func (r *memWorkRepo) FindLowStock(_ context.Context) ([]catalog.Work, error) {
	return nil, nil
}

func (r *memWorkRepo) Save(_ context.Context, w *catalog.Work) error {
	r.works[w.ID] = w
	return nil
}

func (r *memWorkRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.works, id)
	return nil
}

func (r *memWorkRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.works)), nil
}

type memNoteRepo struct {
	notes     map[uuid.UUID]*order.DeliveryNote
	sequences map[int]int
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{
		notes:     make(map[uuid.UUID]*order.DeliveryNote),
		sequences: make(map[int]int),
	}
}

func (r *memNoteRepo) FindByID(_ context.Context, id uuid.UUID) (*order.DeliveryNote, error) {
	for _, n := range r.notes {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

func (r *memNoteRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*order.DeliveryNote, error) {
	return r.notes[orderID], nil
}

func (r *memNoteRepo) FindByReference(_ context.Context, reference string) (*order.DeliveryNote, error) {
	for _, n := range r.notes {
		if n.Reference == reference {
			return n, nil
		}
	}
	return nil, nil
}

func (r *memNoteRepo) FindAll(_ context.Context, _ shared.Filter) ([]order.DeliveryNote, error) {
	var result []order.DeliveryNote
	for _, n := range r.notes {
		result = append(result, *n)
	}
	return result, nil
}

func (r *memNoteRepo) Save(_ context.Context, note *order.DeliveryNote) error {
	r.notes[note.OrderID] = note
	return nil
}

func (r *memNoteRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.notes)), nil
}

func (r *memNoteRepo) NextReference(_ context.Context, year int) (string, error) {
	r.sequences[year]++
	return order.FormatDeliveryNoteReference(year, r.sequences[year]), nil
}

type memMovementRepo struct {
	movements []*inventory.StockMovement
}

func (r *memMovementRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.StockMovement, error) {
	var result []inventory.StockMovement
	for _, m := range r.movements {
		result = append(result, *m)
	}
	return result, nil
}

func (r *memMovementRepo) Save(_ context.Context, m *inventory.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

func (r *memMovementRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.movements)), nil
}

type memUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newMemUserRepo(users ...*identity.User) *memUserRepo {
	r := &memUserRepo{users: make(map[uuid.UUID]*identity.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	return r.users[id], nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindAll(_ context.Context, _ shared.Filter) ([]identity.User, error) {
	var result []identity.User
	for _, u := range r.users {
		result = append(result, *u)
	}
	return result, nil
}

func (r *memUserRepo) Save(_ context.Context, u *identity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.users)), nil
}

type memPartnerRepo struct {
	partners map[uuid.UUID]*partner.Partner
}

func newMemPartnerRepo(partners ...*partner.Partner) *memPartnerRepo {
	r := &memPartnerRepo{partners: make(map[uuid.UUID]*partner.Partner)}
	for _, p := range partners {
		r.partners[p.ID] = p
	}
	return r
}

func (r *memPartnerRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Partner, error) {
	return r.partners[id], nil
}

func (r *memPartnerRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*partner.Partner, error) {
	for _, p := range r.partners {
		if p.UserID != nil && *p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPartnerRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Partner, error) {
	var result []partner.Partner
	for _, p := range r.partners {
		result = append(result, *p)
	}
	return result, nil
}

func (r *memPartnerRepo) Save(_ context.Context, p *partner.Partner) error {
	r.partners[p.ID] = p
	return nil
}

func (r *memPartnerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.partners, id)
	return nil
}

func (r *memPartnerRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.partners)), nil
}

// stubSettler records settlement calls and can be primed to fail.
type stubSettler struct {
	calls []uuid.UUID
	err   error
}

func (s *stubSettler) SettleOrder(_ context.Context, orderID uuid.UUID) error {
	s.calls = append(s.calls, orderID)
	return s.err
}

// stubNotifier records notification calls.
type stubNotifier struct {
	validated []string
	cancelled []uuid.UUID
}

func (n *stubNotifier) OrderValidated(_ context.Context, _ *order.Order, reference string) {
	n.validated = append(n.validated, reference)
}

func (n *stubNotifier) OrderCancelled(_ context.Context, o *order.Order) {
	n.cancelled = append(n.cancelled, o.ID)
}
