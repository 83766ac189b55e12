package ports

import (
	"context"
	"errors"

	"github.com/calebh/storyspace/internal/users/domain"
	"github.com/google/uuid"
)

// ErrUserNotFound is the canonical sentinel for a missing user.
var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindBySubjectID(ctx context.Context, subjectID string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
