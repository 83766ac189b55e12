package ports

import (
	"context"
	"errors"
	"time"

	"github.com/calebh/storyspace/internal/blogs/domain"
	"github.com/google/uuid"
)

// Repository errors - canonical sentinels that implementations return.
// The PostgreSQL implementation translates pgx.ErrNoRows to these, so
// "fetch returned nothing" is always an explicit error value.
var (
	// ErrBlogNotFound is returned when a blog cannot be found
	ErrBlogNotFound = errors.New("blog not found")
)

// BlogSummary is a lightweight DTO for list views. It carries the owner's
// display name joined from the users table so listings can show authors
// without a second round trip.
type BlogSummary struct {
	ID         uuid.UUID
	Title      string
	Excerpt    string
	Slug       string
	Status     domain.BlogStatus
	AuthorID   uuid.UUID
	AuthorName string // Joined from users table
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BlogRepository defines the interface for blog persistence
type BlogRepository interface {
	// Create saves a new blog to the database
	Create(ctx context.Context, blog *domain.Blog) error

	// FindByID retrieves a full blog by its ID (includes body)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error)

	// FindBySlug retrieves a full blog by its slug (includes body)
	FindBySlug(ctx context.Context, slug string) (*domain.Blog, error)

	// Update modifies an existing blog
	Update(ctx context.Context, blog *domain.Blog) error

	// Delete removes a blog from the database
	Delete(ctx context.Context, id uuid.UUID) error

	// ListSummaries retrieves blog summaries for efficient list views
	ListSummaries(ctx context.Context, filter ListFilter) ([]*BlogSummary, error)

	// Count returns the total number of blogs matching the filter
	Count(ctx context.Context, filter ListFilter) (int, error)

	// SlugExists checks if a slug is already in use, optionally excluding
	// a specific blog ID (for updates)
	SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error)

	// GetBlogAuthor retrieves just the author ID for a blog (for ownership checks)
	GetBlogAuthor(ctx context.Context, blogID uuid.UUID) (uuid.UUID, error)
}

// ListFilter contains filtering and pagination options for listing blogs
type ListFilter struct {
	// Status filters by visibility (nil means all statuses)
	Status *domain.BlogStatus

	// AuthorID filters by owner (nil means all owners)
	AuthorID *uuid.UUID

	// Pagination
	Limit  int
	Offset int

	// Sorting
	OrderBy   OrderField
	OrderDesc bool
}

// OrderField represents the field to order blogs by
type OrderField string

const (
	OrderByCreatedAt OrderField = "created_at"
	OrderByUpdatedAt OrderField = "updated_at"
	OrderByTitle     OrderField = "title"
)

// DefaultListFilter returns the default filter: newest first.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:     20,
		Offset:    0,
		OrderBy:   OrderByCreatedAt,
		OrderDesc: true,
	}
}
