package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/calebh/storyspace/internal/blogs/domain"
	"github.com/calebh/storyspace/internal/blogs/ports"
	"github.com/calebh/storyspace/internal/platform/apperror"
	"github.com/calebh/storyspace/internal/platform/eventbus"
	"github.com/calebh/storyspace/internal/platform/events"
	"github.com/calebh/storyspace/internal/platform/logger"
	"github.com/calebh/storyspace/internal/platform/validator"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// Error definitions for service operations.
//
// ErrBlogNotFound covers both "does not exist" and "exists but is private
// and not yours" on the view path, so a non-owner cannot distinguish the
// two. ErrNotBlogOwner is the modify-path denial; the REST layer turns it
// into a redirect to the public listing rather than an error page.
var (
	ErrBlogNotFound = apperror.New(
		apperror.CodeNotFound,
		apperror.BusinessCodeBlogNotFound,
		"blog not found",
		http.StatusNotFound,
	)

	ErrNotBlogOwner = apperror.New(
		apperror.CodeForbidden,
		apperror.BusinessCodeNotBlogOwner,
		"blog belongs to another user",
		http.StatusSeeOther,
	)

	ErrSlugAlreadyExists = apperror.New(
		apperror.CodeConflict,
		apperror.BusinessCodeSlugAlreadyExists,
		"slug already exists",
		http.StatusConflict,
	)

	ErrInvalidBlogData = apperror.New(
		apperror.CodeValidationFailed,
		apperror.BusinessCodeInvalidFormat,
		"invalid blog data",
		http.StatusBadRequest,
	)
)

// BlogsService orchestrates the blog lifecycle: every operation on an
// existing blog follows fetch, authorize, act.
type BlogsService struct {
	repo       ports.BlogRepository
	authorizer ports.Authorizer
	eventBus   *eventbus.Bus
	logger     logger.Logger
	sanitizer  *bluemonday.Policy
}

// NewBlogsService creates a new blogs service
func NewBlogsService(
	repo ports.BlogRepository,
	authorizer ports.Authorizer,
	eventBus *eventbus.Bus,
	logger logger.Logger,
) *BlogsService {
	return &BlogsService{
		repo:       repo,
		authorizer: authorizer,
		eventBus:   eventBus,
		logger:     logger,
		sanitizer:  bluemonday.UGCPolicy(),
	}
}

// CreateBlogParams contains parameters for creating a new blog. There is
// deliberately no author field: the acting identity always becomes the
// owner, so a client-supplied owner cannot spoof ownership.
type CreateBlogParams struct {
	Title   string
	Body    string
	Excerpt string
	Status  domain.BlogStatus
}

// CreateBlog creates a new blog owned by the actor.
func (s *BlogsService) CreateBlog(ctx context.Context, actorID uuid.UUID, params CreateBlogParams) (*domain.Blog, error) {
	canCreate, err := s.authorizer.Can(ctx, actorID, "blogs", "create", nil)
	if err != nil {
		s.logger.Error(ctx, "failed to check authorization", "error", err, "actorID", actorID)
		return nil, s.internalError("authorization check failed")
	}
	if !canCreate {
		return nil, apperror.New(
			apperror.CodeForbidden,
			apperror.BusinessCodePermissionDenied,
			"not authorized to create blogs",
			http.StatusForbidden,
		)
	}

	sanitizedBody := s.sanitizer.Sanitize(params.Body)

	// The actor becomes the owner, regardless of anything in the payload.
	blog, err := domain.NewBlog(params.Title, sanitizedBody, params.Excerpt, params.Status, actorID)
	if err != nil {
		return nil, ErrInvalidBlogData.WithDetails(err.Error())
	}

	uniqueSlug, err := s.ensureUniqueSlug(ctx, blog.Slug, nil)
	if err != nil {
		return nil, err
	}
	if uniqueSlug != blog.Slug {
		if err := blog.UpdateSlug(uniqueSlug); err != nil {
			return nil, ErrInvalidBlogData.WithDetails(err.Error())
		}
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		s.logger.Error(ctx, "failed to create blog", "error", err)
		return nil, s.internalError("failed to create blog")
	}

	s.publishBlogCreatedEvent(ctx, blog)

	return blog, nil
}

// GetBlog retrieves a blog for viewing. A blog that does not exist and a
// private blog owned by someone else produce the same ErrBlogNotFound, so
// existence never leaks to non-owners.
func (s *BlogsService) GetBlog(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*domain.Blog, error) {
	blog, err := s.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !blog.CanBeViewedBy(actorID) {
		return nil, ErrBlogNotFound
	}

	return blog, nil
}

// GetBlogBySlug retrieves a blog by its slug with the same visibility
// gating as GetBlog.
func (s *BlogsService) GetBlogBySlug(ctx context.Context, actorID uuid.UUID, slug string) (*domain.Blog, error) {
	blog, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ports.ErrBlogNotFound) {
			return nil, ErrBlogNotFound
		}
		s.logger.Error(ctx, "failed to find blog by slug", "error", err, "slug", slug)
		return nil, s.internalError("failed to retrieve blog")
	}

	if !blog.CanBeViewedBy(actorID) {
		return nil, ErrBlogNotFound
	}

	return blog, nil
}

// GetBlogForEdit retrieves a blog for editing. Unlike the view path, a
// denial here is ErrNotBlogOwner: the edit path reveals existence but
// refuses the edit.
func (s *BlogsService) GetBlogForEdit(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*domain.Blog, error) {
	blog, err := s.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.canModify(ctx, actorID, blog.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotBlogOwner
	}

	return blog, nil
}

// UpdateBlogParams enumerates the mutable fields. Anything else on the
// blog, notably the author, cannot be changed through an update.
type UpdateBlogParams struct {
	Title   string
	Body    string
	Excerpt string
	Status  domain.BlogStatus
}

// UpdateBlog updates an existing blog owned by the actor.
func (s *BlogsService) UpdateBlog(ctx context.Context, actorID uuid.UUID, id uuid.UUID, params UpdateBlogParams) (*domain.Blog, error) {
	blog, err := s.getBlogByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.canModify(ctx, actorID, blog.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotBlogOwner
	}

	sanitizedBody := s.sanitizer.Sanitize(params.Body)

	if err := blog.UpdateContent(params.Title, sanitizedBody, params.Excerpt); err != nil {
		return nil, ErrInvalidBlogData.WithDetails(err.Error())
	}

	if err := blog.ChangeStatus(params.Status); err != nil {
		return nil, ErrInvalidBlogData.WithDetails(err.Error())
	}

	// Re-slug when the title changed
	newSlug := validator.GenerateSlug(params.Title, domain.MaxSlugLength)
	if newSlug != blog.Slug {
		uniqueSlug, err := s.ensureUniqueSlug(ctx, newSlug, &id)
		if err != nil {
			return nil, err
		}
		if err := blog.UpdateSlug(uniqueSlug); err != nil {
			return nil, ErrInvalidBlogData.WithDetails(err.Error())
		}
	}

	if err := s.repo.Update(ctx, blog); err != nil {
		if errors.Is(err, ports.ErrBlogNotFound) {
			return nil, ErrBlogNotFound
		}
		s.logger.Error(ctx, "failed to update blog", "error", err, "blogID", id)
		return nil, s.internalError("failed to update blog")
	}

	s.publishBlogUpdatedEvent(ctx, actorID, blog)

	return blog, nil
}

// DeleteBlog removes a blog owned by the actor. Deleting an already
// deleted blog surfaces as ErrBlogNotFound.
func (s *BlogsService) DeleteBlog(ctx context.Context, actorID uuid.UUID, id uuid.UUID) error {
	blog, err := s.getBlogByID(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.canModify(ctx, actorID, blog.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotBlogOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ports.ErrBlogNotFound) {
			return ErrBlogNotFound
		}
		s.logger.Error(ctx, "failed to delete blog", "error", err, "blogID", id)
		return s.internalError("failed to delete blog")
	}

	s.publishBlogDeletedEvent(ctx, actorID, blog)

	return nil
}

// ListPublic retrieves public blog summaries, newest first.
func (s *BlogsService) ListPublic(ctx context.Context, filter ports.ListFilter) ([]*ports.BlogSummary, int, error) {
	status := domain.BlogStatusPublic
	filter.Status = &status
	return s.listSummaries(ctx, filter)
}

// ListByAuthor retrieves one author's public blogs. This is a public-facing
// per-author feed: any actor may call it, and private blogs never appear.
func (s *BlogsService) ListByAuthor(ctx context.Context, authorID uuid.UUID, filter ports.ListFilter) ([]*ports.BlogSummary, int, error) {
	status := domain.BlogStatusPublic
	filter.Status = &status
	filter.AuthorID = &authorID
	return s.listSummaries(ctx, filter)
}

// ListOwnedBy retrieves all of the actor's own blogs regardless of
// visibility, for the dashboard.
func (s *BlogsService) ListOwnedBy(ctx context.Context, actorID uuid.UUID, filter ports.ListFilter) ([]*ports.BlogSummary, int, error) {
	filter.Status = nil
	filter.AuthorID = &actorID
	return s.listSummaries(ctx, filter)
}

// Private helper methods

func (s *BlogsService) listSummaries(ctx context.Context, filter ports.ListFilter) ([]*ports.BlogSummary, int, error) {
	summaries, err := s.repo.ListSummaries(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to list blogs", "error", err)
		return nil, 0, s.internalError("failed to list blogs")
	}

	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		s.logger.Error(ctx, "failed to count blogs", "error", err)
		return nil, 0, s.internalError("failed to count blogs")
	}

	return summaries, count, nil
}

// getBlogByID fetches a blog and handles not-found errors consistently
func (s *BlogsService) getBlogByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ports.ErrBlogNotFound) {
			return nil, ErrBlogNotFound
		}
		s.logger.Error(ctx, "failed to find blog", "error", err, "blogID", id)
		return nil, s.internalError("failed to retrieve blog")
	}
	return blog, nil
}

// canModify asks the authorizer whether the actor may mutate the blog.
// Callers fetch first, so a false answer means the blog exists but belongs
// to someone else.
func (s *BlogsService) canModify(ctx context.Context, actorID uuid.UUID, blogID uuid.UUID) (bool, error) {
	ok, err := s.authorizer.Can(ctx, actorID, "blogs", "update", &blogID)
	if err != nil {
		s.logger.Error(ctx, "failed to check authorization", "error", err, "actorID", actorID, "blogID", blogID)
		return false, s.internalError("authorization check failed")
	}
	return ok, nil
}

func (s *BlogsService) ensureUniqueSlug(ctx context.Context, baseSlug string, excludeID *uuid.UUID) (string, error) {
	slug := baseSlug
	suffix := 1

	for {
		exists, err := s.repo.SlugExists(ctx, slug, excludeID)
		if err != nil {
			s.logger.Error(ctx, "failed to check slug existence", "error", err, "slug", slug)
			return "", s.internalError("failed to validate slug")
		}

		if !exists {
			return slug, nil
		}

		slug = validator.MakeSlugUniqueWithMaxLength(baseSlug, suffix, domain.MaxSlugLength)
		suffix++

		// Prevent infinite loop
		if suffix > 100 {
			return "", ErrSlugAlreadyExists.WithDetails(
				fmt.Sprintf("unable to generate unique slug for: %s", baseSlug),
			)
		}
	}
}

func (s *BlogsService) internalError(message string) *apperror.AppError {
	return apperror.New(
		apperror.CodeInternalError,
		apperror.BusinessCodeGeneral,
		message,
		http.StatusInternalServerError,
	)
}

// Event publishing methods

func (s *BlogsService) publishBlogCreatedEvent(ctx context.Context, blog *domain.Blog) {
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.BlogCreatedTopic,
		Payload: events.BlogCreatedEvent{
			BlogID:     blog.ID,
			ActorID:    blog.AuthorID,
			Title:      blog.Title,
			Slug:       blog.Slug,
			Status:     string(blog.Status),
			OccurredAt: time.Now(),
		},
	})
}

func (s *BlogsService) publishBlogUpdatedEvent(ctx context.Context, actorID uuid.UUID, blog *domain.Blog) {
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.BlogUpdatedTopic,
		Payload: events.BlogUpdatedEvent{
			BlogID:     blog.ID,
			ActorID:    actorID,
			Title:      blog.Title,
			Slug:       blog.Slug,
			Status:     string(blog.Status),
			OccurredAt: time.Now(),
		},
	})
}

func (s *BlogsService) publishBlogDeletedEvent(ctx context.Context, actorID uuid.UUID, blog *domain.Blog) {
	s.eventBus.Publish(ctx, eventbus.Event{
		Topic: events.BlogDeletedTopic,
		Payload: events.BlogDeletedEvent{
			BlogID:     blog.ID,
			ActorID:    actorID,
			OccurredAt: time.Now(),
		},
	})
}
