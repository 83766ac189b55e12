package authz_adapter

import (
	"context"

	blogsPorts "github.com/calebh/storyspace/internal/blogs/ports"
	"github.com/calebh/storyspace/internal/platform/logger"
	"github.com/calebh/storyspace/internal/platform/ownership"
	"github.com/google/uuid"
)

// OwnershipAuthorizer decides permissions from resource ownership alone.
// Any authenticated user may create; modify actions require owning the
// target resource, resolved through the ownership registry.
type OwnershipAuthorizer struct {
	registry ownership.Registry
	logger   logger.Logger
}

// NewOwnershipAuthorizer creates a new ownership-based authorizer
func NewOwnershipAuthorizer(registry ownership.Registry, logger logger.Logger) *OwnershipAuthorizer {
	return &OwnershipAuthorizer{
		registry: registry,
		logger:   logger,
	}
}

// Can checks if a user has permission to perform an action on a resource.
// An anonymous user (uuid.Nil) is never permitted; read visibility is not
// decided here but in the domain, so only create and modify actions arrive.
func (a *OwnershipAuthorizer) Can(ctx context.Context, userID uuid.UUID, resource string, action string, resourceID *uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}

	switch action {
	case "create":
		return true, nil
	case "update", "delete":
		if resourceID == nil {
			a.logger.Warn(ctx, "modify action without resource ID",
				"resource", resource,
				"action", action,
			)
			return false, nil
		}
		return a.registry.CheckOwnership(ctx, userID, resource, *resourceID)
	default:
		a.logger.Warn(ctx, "unknown action denied",
			"resource", resource,
			"action", action,
		)
		return false, nil
	}
}

// Compile-time check to ensure we implement the blogs Authorizer port
var _ blogsPorts.Authorizer = (*OwnershipAuthorizer)(nil)
