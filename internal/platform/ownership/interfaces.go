package ownership

import (
	"context"

	"github.com/google/uuid"
)

// Checker verifies whether a user owns a specific resource. Each bounded
// context with ownership-gated resources supplies its own implementation.
type Checker interface {
	CheckOwnership(ctx context.Context, userID uuid.UUID, resourceID uuid.UUID) (bool, error)
}

// Registry holds ownership checkers keyed by resource type. The authorizer
// consults it when deciding modify actions.
type Registry interface {
	// RegisterChecker registers an ownership checker for a resource type
	RegisterChecker(resourceType string, checker Checker)

	// GetChecker retrieves the ownership checker for a resource type
	GetChecker(resourceType string) (Checker, bool)

	// CheckOwnership checks ownership for any registered resource type
	CheckOwnership(ctx context.Context, userID uuid.UUID, resourceType string, resourceID uuid.UUID) (bool, error)
}
