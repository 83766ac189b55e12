package application

import (
	"context"
	"errors"

	"github.com/calebh/storyspace/internal/blogs/ports"
	"github.com/calebh/storyspace/internal/platform/logger"
	"github.com/calebh/storyspace/internal/platform/ownership"
	"github.com/google/uuid"
)

// BlogsOwnershipChecker answers "does this user own this blog" for the
// ownership registry. It depends directly on the repository, not the
// service, so the check stays a single cheap query.
type BlogsOwnershipChecker struct {
	repo   ports.BlogRepository
	logger logger.Logger
}

// NewBlogsOwnershipChecker creates a new blogs ownership checker
func NewBlogsOwnershipChecker(repo ports.BlogRepository, logger logger.Logger) *BlogsOwnershipChecker {
	return &BlogsOwnershipChecker{
		repo:   repo,
		logger: logger,
	}
}

// CheckOwnership implements the ownership.Checker interface.
func (c *BlogsOwnershipChecker) CheckOwnership(ctx context.Context, userID uuid.UUID, resourceID uuid.UUID) (bool, error) {
	authorID, err := c.repo.GetBlogAuthor(ctx, resourceID)
	if err != nil {
		if errors.Is(err, ports.ErrBlogNotFound) {
			// Blog doesn't exist, so user doesn't own it
			return false, nil
		}
		c.logger.Error(ctx, "failed to get blog author", "error", err, "blogID", resourceID)
		return false, err
	}

	return authorID == userID, nil
}

// RegisterBlogsOwnership registers the blogs ownership checker with the registry
func RegisterBlogsOwnership(registry ownership.Registry, repo ports.BlogRepository, logger logger.Logger) {
	registry.RegisterChecker("blogs", NewBlogsOwnershipChecker(repo, logger))
}

var _ ownership.Checker = (*BlogsOwnershipChecker)(nil)
