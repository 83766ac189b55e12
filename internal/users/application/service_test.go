package application_test

import (
	"context"
	"testing"

	"github.com/calebh/storyspace/internal/users/application"
	"github.com/calebh/storyspace/internal/users/domain"
	"github.com/calebh/storyspace/internal/users/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockUserRepo is an in-memory ports.UserRepository for service tests
type mockUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if user, ok := m.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, ports.ErrUserNotFound
}

func (m *mockUserRepo) FindBySubjectID(ctx context.Context, subjectID string) (*domain.User, error) {
	for _, user := range m.users {
		if user.SubjectID == subjectID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ports.ErrUserNotFound
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ports.ErrUserNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return ports.ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.FindByUsername(ctx, username)
	return err == nil, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func TestCreateUser(t *testing.T) {
	repo := newMockUserRepo()
	svc := application.NewUserService(repo)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, application.CreateUserParams{
		SubjectID:   "auth0|writer",
		Email:       "writer@example.com",
		Username:    "writer",
		DisplayName: "The Writer",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "auth0|writer", user.SubjectID)
	assert.Equal(t, "The Writer", user.DisplayName)

	stored, err := repo.FindBySubjectID(ctx, "auth0|writer")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestCreateUser_MissingFields(t *testing.T) {
	repo := newMockUserRepo()
	svc := application.NewUserService(repo)
	ctx := context.Background()

	tests := []struct {
		name   string
		params application.CreateUserParams
	}{
		{name: "missing subject", params: application.CreateUserParams{Email: "a@b.co", Username: "abc"}},
		{name: "missing email", params: application.CreateUserParams{SubjectID: "s", Username: "abc"}},
		{name: "missing username", params: application.CreateUserParams{SubjectID: "s", Email: "a@b.co"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, tt.params)
			assert.ErrorIs(t, err, application.ErrValidationFailed)
		})
	}
}

func TestCreateUser_Duplicates(t *testing.T) {
	repo := newMockUserRepo()
	svc := application.NewUserService(repo)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, application.CreateUserParams{
		SubjectID: "auth0|first",
		Email:     "first@example.com",
		Username:  "first_user",
	})
	require.NoError(t, err)

	tests := []struct {
		name   string
		params application.CreateUserParams
	}{
		{
			name: "same subject",
			params: application.CreateUserParams{
				SubjectID: "auth0|first", Email: "other@example.com", Username: "other_user",
			},
		},
		{
			name: "same username",
			params: application.CreateUserParams{
				SubjectID: "auth0|second", Email: "other@example.com", Username: "first_user",
			},
		},
		{
			name: "same email",
			params: application.CreateUserParams{
				SubjectID: "auth0|second", Email: "first@example.com", Username: "other_user",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, tt.params)
			assert.ErrorIs(t, err, application.ErrUserAlreadyExists)
		})
	}
}

func TestGetUserBySubjectID_NotFound(t *testing.T) {
	svc := application.NewUserService(newMockUserRepo())

	_, err := svc.GetUserBySubjectID(context.Background(), "auth0|ghost")
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

func TestUpdateUserProfile(t *testing.T) {
	repo := newMockUserRepo()
	svc := application.NewUserService(repo)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, application.CreateUserParams{
		SubjectID: "auth0|writer",
		Email:     "writer@example.com",
		Username:  "writer",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateUserProfile(ctx, application.UpdateUserParams{
		UserID:      user.ID,
		DisplayName: "New Name",
		Bio:         "Now with a bio",
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.DisplayName)
	assert.Equal(t, "Now with a bio", updated.Bio)
	// Untouched fields survive the update
	assert.Equal(t, "writer", updated.Username)
}

func TestUpdateUserProfile_NotFound(t *testing.T) {
	svc := application.NewUserService(newMockUserRepo())

	_, err := svc.UpdateUserProfile(context.Background(), application.UpdateUserParams{
		UserID:      uuid.New(),
		DisplayName: "Nobody",
	})
	assert.ErrorIs(t, err, application.ErrUserNotFound)
}
