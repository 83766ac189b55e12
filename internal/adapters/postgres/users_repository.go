package postgres

import (
	"context"
	"errors"
	"fmt"

	platformpg "github.com/calebh/storyspace/internal/platform/postgres"
	"github.com/calebh/storyspace/internal/users/domain"
	"github.com/calebh/storyspace/internal/users/ports"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository implements ports.UserRepository using PostgreSQL
type UserRepository struct {
	platformpg.BaseRepository
}

// NewUserRepository creates a new PostgreSQL users repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		BaseRepository: platformpg.NewBaseRepository(db),
	}
}

// WithTx creates a new repository instance that uses the provided transaction
func (r *UserRepository) WithTx(tx pgx.Tx) ports.UserRepository {
	return &UserRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// Create inserts a new user into the database
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query, args, err := r.SB.
		Insert("users").
		Columns(
			"id", "subject_id", "email", "username", "display_name",
			"bio", "avatar_url", "created_at", "updated_at",
		).
		Values(
			pgtype.UUID{Bytes: user.ID, Valid: true},
			user.SubjectID,
			user.Email,
			user.Username,
			user.DisplayName,
			user.Bio,
			user.AvatarURL,
			pgtype.Timestamptz{Time: user.CreatedAt, Valid: true},
			pgtype.Timestamptz{Time: user.UpdatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepository.Create: build query: %w", err)
	}

	_, err = r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("UserRepository.Create: %w", err)
	}

	return nil
}

// Update modifies an existing user in the database
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query, args, err := r.SB.
		Update("users").
		Set("email", user.Email).
		Set("username", user.Username).
		Set("display_name", user.DisplayName).
		Set("bio", user.Bio).
		Set("avatar_url", user.AvatarURL).
		Set("updated_at", pgtype.Timestamptz{Time: user.UpdatedAt, Valid: true}).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: user.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("UserRepository.Update: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("UserRepository.Update: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrUserNotFound
	}

	return nil
}

// FindByID retrieves a user by internal ID
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}})
}

// FindBySubjectID retrieves a user by the identity provider subject claim
func (r *UserRepository) FindBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	return r.findOne(ctx, sq.Eq{"subject_id": subjectID})
}

// FindByUsername retrieves a user by username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, sq.Eq{"username": username})
}

// ExistsByUsername checks if a username is already taken
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, sq.Eq{"username": username})
}

// ExistsByEmail checks if an email is already registered
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, sq.Eq{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, pred sq.Eq) (*domain.User, error) {
	query, args, err := r.SB.
		Select(
			"id", "subject_id", "email", "username", "display_name",
			"bio", "avatar_url", "created_at", "updated_at",
		).
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("UserRepository.findOne: build query: %w", err)
	}

	row := r.DB.QueryRow(ctx, query, args...)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrUserNotFound
		}
		return nil, fmt.Errorf("UserRepository.findOne: %w", err)
	}

	return user, nil
}

func (r *UserRepository) exists(ctx context.Context, pred sq.Eq) (bool, error) {
	subQuery, subArgs, err := r.SB.Select("1").From("users").Where(pred).ToSql()
	if err != nil {
		return false, fmt.Errorf("UserRepository.exists: build subquery: %w", err)
	}

	query := fmt.Sprintf("SELECT EXISTS(%s)", subQuery)

	var exists bool
	err = r.DB.QueryRow(ctx, query, subArgs...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("UserRepository.exists: %w", err)
	}

	return exists, nil
}

// scanUser scans a single user from pgx.Row
func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var idBytes pgtype.UUID
	var displayName, bio, avatarURL pgtype.Text

	err := row.Scan(
		&idBytes,
		&user.SubjectID,
		&user.Email,
		&user.Username,
		&displayName,
		&bio,
		&avatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.ID = uuid.UUID(idBytes.Bytes)

	if displayName.Valid {
		user.DisplayName = displayName.String
	}
	if bio.Valid {
		user.Bio = bio.String
	}
	if avatarURL.Valid {
		user.AvatarURL = avatarURL.String
	}

	return &user, nil
}

// Compile-time check to ensure UserRepository implements ports.UserRepository
var _ ports.UserRepository = (*UserRepository)(nil)
