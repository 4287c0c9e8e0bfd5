package order

import (
	"context"

	"github.com/edipub/backend/internal/domain/order"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryNoteService answers read queries over delivery notes
type DeliveryNoteService struct {
	notes order.DeliveryNoteRepository
}

// NewDeliveryNoteService creates a new delivery note service
func NewDeliveryNoteService(notes order.DeliveryNoteRepository) *DeliveryNoteService {
	return &DeliveryNoteService{notes: notes}
}

// List returns delivery notes matching the filter
func (s *DeliveryNoteService) List(ctx context.Context, filter shared.Filter) ([]DeliveryNoteResponse, int64, error) {
	notes, err := s.notes.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.notes.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]DeliveryNoteResponse, len(notes))
	for i := range notes {
		responses[i] = ToDeliveryNoteResponse(&notes[i])
	}
	return responses, total, nil
}

// Get returns a delivery note by id
func (s *DeliveryNoteService) Get(ctx context.Context, id uuid.UUID) (*DeliveryNoteResponse, error) {
	note, err := s.notes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, shared.NewNotFoundError("delivery note")
	}
	resp := ToDeliveryNoteResponse(note)
	return &resp, nil
}

// GetByReference returns a delivery note by its BS reference
func (s *DeliveryNoteService) GetByReference(ctx context.Context, reference string) (*DeliveryNoteResponse, error) {
	note, err := s.notes.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, shared.NewNotFoundError("delivery note")
	}
	resp := ToDeliveryNoteResponse(note)
	return &resp, nil
}
