package authz_adapter

import (
	"context"
	"testing"

	"github.com/calebh/storyspace/internal/platform/ownership"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(ctx context.Context, msg string, kv ...interface{}) {}
func (noopLogger) Info(ctx context.Context, msg string, kv ...interface{})  {}
func (noopLogger) Warn(ctx context.Context, msg string, kv ...interface{})  {}
func (noopLogger) Error(ctx context.Context, msg string, kv ...interface{}) {}

// staticChecker owns exactly one (user, resource) pair
type staticChecker struct {
	owner    uuid.UUID
	resource uuid.UUID
}

func (c staticChecker) CheckOwnership(ctx context.Context, userID uuid.UUID, resourceID uuid.UUID) (bool, error) {
	return userID == c.owner && resourceID == c.resource, nil
}

func TestOwnershipAuthorizer(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	blogID := uuid.New()

	registry := ownership.NewRegistry()
	registry.RegisterChecker("blogs", staticChecker{owner: owner, resource: blogID})

	auth := NewOwnershipAuthorizer(registry, noopLogger{})
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     uuid.UUID
		action     string
		resourceID *uuid.UUID
		want       bool
	}{
		{name: "authenticated user may create", userID: stranger, action: "create", want: true},
		{name: "anonymous may not create", userID: uuid.Nil, action: "create", want: false},
		{name: "owner may update", userID: owner, action: "update", resourceID: &blogID, want: true},
		{name: "stranger may not update", userID: stranger, action: "update", resourceID: &blogID, want: false},
		{name: "owner may delete", userID: owner, action: "delete", resourceID: &blogID, want: true},
		{name: "update without resource ID is denied", userID: owner, action: "update", want: false},
		{name: "unknown action is denied", userID: owner, action: "transmogrify", resourceID: &blogID, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Can(ctx, tt.userID, "blogs", tt.action, tt.resourceID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
