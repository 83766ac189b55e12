package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/calebh/storyspace/internal/users/domain"
	"github.com/calebh/storyspace/internal/users/ports"
	"github.com/google/uuid"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrValidationFailed  = errors.New("validation failed")
)

// CreateUserParams contains all parameters needed to create a new user
type CreateUserParams struct {
	SubjectID   string
	Email       string
	Username    string
	DisplayName string
	Bio         string
	AvatarURL   string
}

// UpdateUserParams contains parameters for updating user profile
type UpdateUserParams struct {
	UserID      uuid.UUID
	DisplayName string
	Bio         string
	AvatarURL   string
}

type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	if params.SubjectID == "" {
		return nil, fmt.Errorf("%w: subject ID is required", ErrValidationFailed)
	}
	if params.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidationFailed)
	}
	if params.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidationFailed)
	}

	// The subject may only ever map to one profile.
	existing, err := s.repo.FindBySubjectID(ctx, params.SubjectID)
	if err != nil && !errors.Is(err, ports.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check subject availability: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("profile for subject already exists: %w", ErrUserAlreadyExists)
	}

	exists, err := s.repo.ExistsByUsername(ctx, params.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username availability: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("username already taken: %w", ErrUserAlreadyExists)
	}

	exists, err = s.repo.ExistsByEmail(ctx, params.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("email already registered: %w", ErrUserAlreadyExists)
	}

	user, err := domain.NewUser(params.SubjectID, params.Email, params.Username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	user.UpdateProfile(params.DisplayName, params.Bio, params.AvatarURL)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetUserBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	user, err := s.repo.FindBySubjectID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateUserProfile(ctx context.Context, params UpdateUserParams) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, params.UserID)
	if err != nil {
		if errors.Is(err, ports.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	user.UpdateProfile(params.DisplayName, params.Bio, params.AvatarURL)

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}
