package identity

import (
	"context"

	"github.com/edipub/backend/internal/domain/identity"
	"github.com/edipub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateUserRequest is the staff input for modifying an account
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Role       *string `json:"role" binding:"omitempty,oneof=PDG REPRESENTANT AUTEUR CONCEPTEUR PARTENAIRE CLIENT"`
	ClientType *string `json:"client_type" binding:"omitempty,oneof=PARTICULIER LIBRAIRIE ECOLE GROSSISTE"`
	Active     *bool   `json:"active"`
}

// UserService manages accounts on behalf of staff
type UserService struct {
	users  identity.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// List returns users matching the filter
func (s *UserService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[UserResponse], error) {
	users, err := s.users.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.users.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// Get returns a single user
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewNotFoundError("user")
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Update modifies an account
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, shared.NewNotFoundError("user")
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		role := identity.Role(*req.Role)
		if !role.IsValid() {
			return nil, shared.NewInvalidInputError("unknown role: " + *req.Role)
		}
		user.Role = role
	}
	if req.ClientType != nil {
		user.ClientType = *req.ClientType
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	user.Touch()

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user updated", zap.String("user_id", user.ID.String()))
	resp := ToUserResponse(user)
	return &resp, nil
}
