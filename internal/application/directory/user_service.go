package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/procure/backend/internal/domain/directory"
	"github.com/procure/backend/internal/domain/shared"
)

// CreateUserRequest contains data for creating a user
type CreateUserRequest struct {
	Name      string
	Email     string
	Role      string
	ManagerID *uuid.UUID
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	ManagerID *uuid.UUID `json:"manager_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain User to a response DTO
func ToUserResponse(user *directory.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      strings.ToLower(string(user.Role)),
		ManagerID: user.ManagerID,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserResponses converts a slice of domain users
func ToUserResponses(users []*directory.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = ToUserResponse(u)
	}
	return responses
}

// UserService handles directory business operations
type UserService struct {
	userRepo directory.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo directory.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create registers a new user. An employee's manager reference must point
// to an existing user holding the manager role.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	role := directory.UserRole(strings.ToUpper(strings.TrimSpace(req.Role)))

	if req.ManagerID != nil {
		manager, err := s.userRepo.FindByID(ctx, *req.ManagerID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_INPUT", "Manager does not exist")
			}
			return nil, err
		}
		if !manager.IsManager() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Referenced user is not a manager")
		}
	}

	user, err := directory.NewUser(req.Name, req.Email, role, req.ManagerID)
	if err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// ListByRole returns all users holding the given role
func (s *UserService) ListByRole(ctx context.Context, role string) ([]UserResponse, error) {
	r := directory.UserRole(strings.ToUpper(strings.TrimSpace(role)))
	if !r.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown user role: "+role)
	}
	users, err := s.userRepo.FindByRole(ctx, r)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}

// ListAll returns all users
func (s *UserService) ListAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}
