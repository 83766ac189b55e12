package domain

import (
	"errors"
	"time"

	"github.com/calebh/storyspace/internal/platform/validator"
	"github.com/google/uuid"
)

// BlogStatus is the visibility of a blog.
type BlogStatus string

const (
	BlogStatusPublic  BlogStatus = "public"
	BlogStatusPrivate BlogStatus = "private"
)

// IsValid checks if the status is a valid value. A blog read from the store
// with any other value is a data-integrity error, never a silent default.
func (s BlogStatus) IsValid() bool {
	switch s {
	case BlogStatusPublic, BlogStatusPrivate:
		return true
	default:
		return false
	}
}

// Blog represents a short text post owned by exactly one user.
type Blog struct {
	ID        uuid.UUID
	Title     string
	Body      string
	Excerpt   string // Plain text excerpt for list views
	Slug      string
	Status    BlogStatus
	AuthorID  uuid.UUID // Immutable after creation
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Business rule constants
const (
	MaxTitleLength   = 200
	MaxSlugLength    = 250
	MaxExcerptLength = 500
)

// Validation errors
var (
	ErrInvalidTitle    = errors.New("title is required and must not exceed 200 characters")
	ErrInvalidSlug     = errors.New("slug is invalid or too long")
	ErrInvalidBody     = errors.New("body is required")
	ErrInvalidExcerpt  = errors.New("excerpt must not exceed 500 characters")
	ErrInvalidAuthorID = errors.New("author ID is required")
	ErrInvalidStatus   = errors.New("status must be public or private")
)

// NewBlog creates a new blog with validation. The author is fixed here for
// the lifetime of the blog; there is no way to reassign it afterwards.
func NewBlog(title, body, excerpt string, status BlogStatus, authorID uuid.UUID) (*Blog, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	slug := validator.GenerateSlug(title, MaxSlugLength)
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	if err := validateBody(body); err != nil {
		return nil, err
	}

	if err := validateExcerpt(excerpt); err != nil {
		return nil, err
	}

	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	if authorID == uuid.Nil {
		return nil, ErrInvalidAuthorID
	}

	now := time.Now()
	return &Blog{
		ID:        uuid.New(),
		Title:     title,
		Body:      body,
		Excerpt:   excerpt,
		Slug:      slug,
		Status:    status,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateContent replaces the mutable content fields with validation.
// AuthorID is deliberately not part of this set.
func (b *Blog) UpdateContent(title, body, excerpt string) error {
	if err := validateTitle(title); err != nil {
		return err
	}

	if err := validateBody(body); err != nil {
		return err
	}

	if err := validateExcerpt(excerpt); err != nil {
		return err
	}

	b.Title = title
	b.Body = body
	b.Excerpt = excerpt
	b.UpdatedAt = time.Now()

	return nil
}

// ChangeStatus switches the blog between public and private.
func (b *Blog) ChangeStatus(status BlogStatus) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}

	b.Status = status
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateSlug updates the blog slug with validation.
// Slug uniqueness is checked by the service layer before calling this.
func (b *Blog) UpdateSlug(slug string) error {
	if err := validateSlug(slug); err != nil {
		return err
	}

	b.Slug = slug
	b.UpdatedAt = time.Now()
	return nil
}

// IsPublic reports whether any actor may read the blog.
func (b *Blog) IsPublic() bool {
	return b.Status == BlogStatusPublic
}

// CanBeViewedBy decides read access. Public blogs are viewable by anyone;
// private blogs only by their owner. Existence checks happen before this is
// called, so the decision is total over well-formed blogs.
func (b *Blog) CanBeViewedBy(actorID uuid.UUID) bool {
	return b.Status == BlogStatusPublic || b.AuthorID == actorID
}

// CanBeModifiedBy decides write access (update and delete). Ownership alone
// gates writes; visibility is irrelevant here.
func (b *Blog) CanBeModifiedBy(actorID uuid.UUID) bool {
	return b.AuthorID == actorID
}

// Validation helpers

func validateTitle(title string) error {
	if title == "" || len(title) > MaxTitleLength {
		return ErrInvalidTitle
	}
	return nil
}

func validateBody(body string) error {
	if body == "" {
		return ErrInvalidBody
	}
	return nil
}

func validateExcerpt(excerpt string) error {
	if len(excerpt) > MaxExcerptLength {
		return ErrInvalidExcerpt
	}
	return nil
}

func validateSlug(slug string) error {
	if err := validator.ValidateSlugFormat(slug, MaxSlugLength); err != nil {
		return ErrInvalidSlug
	}
	return nil
}
