package application_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/calebh/storyspace/internal/blogs/application"
	"github.com/calebh/storyspace/internal/blogs/domain"
	"github.com/calebh/storyspace/internal/blogs/ports"
	"github.com/calebh/storyspace/internal/platform/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any) {}

// mockBlogRepo is an in-memory ports.BlogRepository.
type mockBlogRepo struct {
	blogs map[uuid.UUID]*domain.Blog
	order []uuid.UUID // insertion order, for stable listings
}

func newMockBlogRepo() *mockBlogRepo {
	return &mockBlogRepo{blogs: make(map[uuid.UUID]*domain.Blog)}
}

func (m *mockBlogRepo) Create(ctx context.Context, blog *domain.Blog) error {
	copied := *blog
	m.blogs[blog.ID] = &copied
	m.order = append(m.order, blog.ID)
	return nil
}

func (m *mockBlogRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	blog, ok := m.blogs[id]
	if !ok {
		return nil, ports.ErrBlogNotFound
	}
	copied := *blog
	return &copied, nil
}

func (m *mockBlogRepo) FindBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	for _, blog := range m.blogs {
		if blog.Slug == slug {
			copied := *blog
			return &copied, nil
		}
	}
	return nil, ports.ErrBlogNotFound
}

func (m *mockBlogRepo) Update(ctx context.Context, blog *domain.Blog) error {
	if _, ok := m.blogs[blog.ID]; !ok {
		return ports.ErrBlogNotFound
	}
	copied := *blog
	m.blogs[blog.ID] = &copied
	return nil
}

func (m *mockBlogRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.blogs[id]; !ok {
		return ports.ErrBlogNotFound
	}
	delete(m.blogs, id)
	return nil
}

func (m *mockBlogRepo) matches(blog *domain.Blog, filter ports.ListFilter) bool {
	if filter.Status != nil && blog.Status != *filter.Status {
		return false
	}
	if filter.AuthorID != nil && blog.AuthorID != *filter.AuthorID {
		return false
	}
	return true
}

func (m *mockBlogRepo) ListSummaries(ctx context.Context, filter ports.ListFilter) ([]*ports.BlogSummary, error) {
	var result []*ports.BlogSummary
	for _, id := range m.order {
		blog, ok := m.blogs[id]
		if !ok || !m.matches(blog, filter) {
			continue
		}
		result = append(result, &ports.BlogSummary{
			ID:        blog.ID,
			Title:     blog.Title,
			Excerpt:   blog.Excerpt,
			Slug:      blog.Slug,
			Status:    blog.Status,
			AuthorID:  blog.AuthorID,
			CreatedAt: blog.CreatedAt,
			UpdatedAt: blog.UpdatedAt,
		})
	}
	if filter.OrderBy == ports.OrderByCreatedAt && filter.OrderDesc {
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		})
	}
	return result, nil
}

func (m *mockBlogRepo) Count(ctx context.Context, filter ports.ListFilter) (int, error) {
	count := 0
	for _, blog := range m.blogs {
		if m.matches(blog, filter) {
			count++
		}
	}
	return count, nil
}

func (m *mockBlogRepo) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	for _, blog := range m.blogs {
		if excludeID != nil && blog.ID == *excludeID {
			continue
		}
		if blog.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBlogRepo) GetBlogAuthor(ctx context.Context, blogID uuid.UUID) (uuid.UUID, error) {
	blog, ok := m.blogs[blogID]
	if !ok {
		return uuid.Nil, ports.ErrBlogNotFound
	}
	return blog.AuthorID, nil
}

var _ ports.BlogRepository = (*mockBlogRepo)(nil)

// ownershipAuthorizer mirrors the production authorizer: anyone may create,
// mutations require ownership.
type ownershipAuthorizer struct {
	repo *mockBlogRepo
}

func (a *ownershipAuthorizer) Can(ctx context.Context, userID uuid.UUID, resource string, action string, resourceID *uuid.UUID) (bool, error) {
	if action == "create" {
		return true, nil
	}
	if resourceID == nil {
		return false, nil
	}
	authorID, err := a.repo.GetBlogAuthor(ctx, *resourceID)
	if err != nil {
		return false, nil
	}
	return authorID == userID, nil
}

func newTestService(t *testing.T) (*application.BlogsService, *mockBlogRepo) {
	t.Helper()
	repo := newMockBlogRepo()
	log := &mockLogger{}
	svc := application.NewBlogsService(repo, &ownershipAuthorizer{repo: repo}, eventbus.NewBus(log), log)
	return svc, repo
}

func mustCreate(t *testing.T, svc *application.BlogsService, actor uuid.UUID, title string, status domain.BlogStatus) *domain.Blog {
	t.Helper()
	blog, err := svc.CreateBlog(context.Background(), actor, application.CreateBlogParams{
		Title:  title,
		Body:   "<p>body of " + title + "</p>",
		Status: status,
	})
	require.NoError(t, err)
	return blog
}

func TestCreateBlog_ActorBecomesOwner(t *testing.T) {
	svc, _ := newTestService(t)
	actor := uuid.New()

	blog := mustCreate(t, svc, actor, "Hello World", domain.BlogStatusPublic)

	assert.Equal(t, actor, blog.AuthorID)
	assert.Equal(t, "hello-world", blog.Slug)
	assert.Equal(t, domain.BlogStatusPublic, blog.Status)
}

func TestCreateBlog_InvalidData(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateBlog(context.Background(), uuid.New(), application.CreateBlogParams{
		Title:  "",
		Body:   "body",
		Status: domain.BlogStatusPublic,
	})
	assert.ErrorIs(t, err, application.ErrInvalidBlogData)

	_, err = svc.CreateBlog(context.Background(), uuid.New(), application.CreateBlogParams{
		Title:  "No Status",
		Body:   "body",
		Status: domain.BlogStatus(""),
	})
	assert.ErrorIs(t, err, application.ErrInvalidBlogData)
}

func TestCreateBlog_SlugCollisionGetsSuffix(t *testing.T) {
	svc, _ := newTestService(t)
	actor := uuid.New()

	first := mustCreate(t, svc, actor, "Same Title", domain.BlogStatusPublic)
	second := mustCreate(t, svc, actor, "Same Title", domain.BlogStatusPublic)

	assert.Equal(t, "same-title", first.Slug)
	assert.Equal(t, "same-title-1", second.Slug)
}

func TestGetBlog_PrivateIsIndistinguishableFromMissing(t *testing.T) {
	svc, _ := newTestService(t)
	owner := uuid.New()
	stranger := uuid.New()

	private := mustCreate(t, svc, owner, "Secret Notes", domain.BlogStatusPrivate)

	// Owner sees their own private blog.
	got, err := svc.GetBlog(context.Background(), owner, private.ID)
	require.NoError(t, err)
	assert.Equal(t, private.ID, got.ID)

	// A stranger gets exactly the not-found error, same as for a blog
	// that never existed.
	_, err = svc.GetBlog(context.Background(), stranger, private.ID)
	assert.ErrorIs(t, err, application.ErrBlogNotFound)

	_, missingErr := svc.GetBlog(context.Background(), stranger, uuid.New())
	assert.ErrorIs(t, missingErr, application.ErrBlogNotFound)
	assert.Equal(t, missingErr, err)
}

func TestGetBlog_PublicViewableByAnyone(t *testing.T) {
	svc, _ := newTestService(t)
	owner := uuid.New()
	stranger := uuid.New()

	public := mustCreate(t, svc, owner, "Open Post", domain.BlogStatusPublic)

	got, err := svc.GetBlog(context.Background(), stranger, public.ID)
	require.NoError(t, err)
	assert.Equal(t, public.ID, got.ID)
}

func TestGetBlogForEdit_DistinguishesMissingFromForeign(t *testing.T) {
	svc, _ := newTestService(t)
	owner := uuid.New()
	stranger := uuid.New()

	blog := mustCreate(t, svc, owner, "Editable", domain.BlogStatusPublic)

	// Owner may edit.
	got, err := svc.GetBlogForEdit(context.Background(), owner, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, blog.ID, got.ID)

	// A stranger is told the blog exists but is not theirs.
	_, err = svc.GetBlogForEdit(context.Background(), stranger, blog.ID)
	assert.ErrorIs(t, err, application.ErrNotBlogOwner)

	// A missing blog is still not-found, even on the edit path.
	_, err = svc.GetBlogForEdit(context.Background(), stranger, uuid.New())
	assert.ErrorIs(t, err, application.ErrBlogNotFound)
}

func TestUpdateBlog_OwnerOnly(t *testing.T) {
	svc, repo := newTestService(t)
	owner := uuid.New()
	stranger := uuid.New()

	blog := mustCreate(t, svc, owner, "Original Title", domain.BlogStatusPublic)

	patch := application.UpdateBlogParams{
		Title:  "Hijacked",
		Body:   "rewritten",
		Status: domain.BlogStatusPrivate,
	}

	_, err := svc.UpdateBlog(context.Background(), stranger, blog.ID, patch)
	assert.ErrorIs(t, err, application.ErrNotBlogOwner)

	// The blog is unchanged after the denied update.
	stored, err := repo.FindByID(context.Background(), blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original Title", stored.Title)
	assert.Equal(t, domain.BlogStatusPublic, stored.Status)

	// The owner's update goes through, and ownership stays put.
	updated, err := svc.UpdateBlog(context.Background(), owner, blog.ID, application.UpdateBlogParams{
		Title:  "New Title",
		Body:   "new body",
		Status: domain.BlogStatusPrivate,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, domain.BlogStatusPrivate, updated.Status)
	assert.Equal(t, "new-title", updated.Slug)
	assert.Equal(t, owner, updated.AuthorID)
}

func TestUpdateBlog_Missing(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateBlog(context.Background(), uuid.New(), uuid.New(), application.UpdateBlogParams{
		Title:  "t",
		Body:   "b",
		Status: domain.BlogStatusPublic,
	})
	assert.ErrorIs(t, err, application.ErrBlogNotFound)
}

func TestDeleteBlog(t *testing.T) {
	svc, _ := newTestService(t)
	owner := uuid.New()
	stranger := uuid.New()

	blog := mustCreate(t, svc, owner, "Doomed", domain.BlogStatusPublic)

	// A stranger cannot delete it.
	err := svc.DeleteBlog(context.Background(), stranger, blog.ID)
	assert.ErrorIs(t, err, application.ErrNotBlogOwner)

	// The owner can.
	require.NoError(t, svc.DeleteBlog(context.Background(), owner, blog.ID))

	// Afterwards the blog is gone for everyone, on every path.
	_, err = svc.GetBlog(context.Background(), owner, blog.ID)
	assert.ErrorIs(t, err, application.ErrBlogNotFound)
	_, err = svc.GetBlogForEdit(context.Background(), owner, blog.ID)
	assert.ErrorIs(t, err, application.ErrBlogNotFound)

	// Deleting again reports not-found, not a crash.
	err = svc.DeleteBlog(context.Background(), owner, blog.ID)
	assert.ErrorIs(t, err, application.ErrBlogNotFound)
}

func TestListPublic_ExcludesPrivate(t *testing.T) {
	svc, _ := newTestService(t)
	u1 := uuid.New()
	u2 := uuid.New()

	pub1 := mustCreate(t, svc, u1, "First Public", domain.BlogStatusPublic)
	mustCreate(t, svc, u1, "Hidden", domain.BlogStatusPrivate)
	pub2 := mustCreate(t, svc, u2, "Second Public", domain.BlogStatusPublic)

	summaries, total, err := svc.ListPublic(context.Background(), ports.DefaultListFilter())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, summaries, 2)

	ids := []uuid.UUID{summaries[0].ID, summaries[1].ID}
	assert.Contains(t, ids, pub1.ID)
	assert.Contains(t, ids, pub2.ID)
	for _, s := range summaries {
		assert.Equal(t, domain.BlogStatusPublic, s.Status)
	}
}

func TestListPublic_NewestFirst(t *testing.T) {
	svc, repo := newTestService(t)
	actor := uuid.New()

	older := mustCreate(t, svc, actor, "Older", domain.BlogStatusPublic)
	newer := mustCreate(t, svc, actor, "Newer", domain.BlogStatusPublic)

	// Force distinct creation times; uuid-keyed maps would otherwise make
	// this test timing-dependent.
	repo.blogs[older.ID].CreatedAt = time.Now().Add(-time.Hour)
	repo.blogs[newer.ID].CreatedAt = time.Now()

	summaries, _, err := svc.ListPublic(context.Background(), ports.DefaultListFilter())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, newer.ID, summaries[0].ID)
	assert.Equal(t, older.ID, summaries[1].ID)
}

func TestListOwnedBy_AllVisibilitiesOwnOnly(t *testing.T) {
	svc, _ := newTestService(t)
	u1 := uuid.New()
	u2 := uuid.New()

	own1 := mustCreate(t, svc, u1, "Mine Public", domain.BlogStatusPublic)
	own2 := mustCreate(t, svc, u1, "Mine Private", domain.BlogStatusPrivate)
	mustCreate(t, svc, u2, "Theirs", domain.BlogStatusPublic)

	summaries, total, err := svc.ListOwnedBy(context.Background(), u1, ports.DefaultListFilter())
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, summaries, 2)

	ids := []uuid.UUID{summaries[0].ID, summaries[1].ID}
	assert.Contains(t, ids, own1.ID)
	assert.Contains(t, ids, own2.ID)
	for _, s := range summaries {
		assert.Equal(t, u1, s.AuthorID)
	}
}

func TestListByAuthor_PublicFeedForAnyActor(t *testing.T) {
	svc, _ := newTestService(t)
	author := uuid.New()

	visible := mustCreate(t, svc, author, "On Feed", domain.BlogStatusPublic)
	mustCreate(t, svc, author, "Off Feed", domain.BlogStatusPrivate)

	summaries, total, err := svc.ListByAuthor(context.Background(), author, ports.DefaultListFilter())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, summaries, 1)
	assert.Equal(t, visible.ID, summaries[0].ID)
}

func TestBlogsOwnershipChecker(t *testing.T) {
	svc, repo := newTestService(t)
	owner := uuid.New()

	blog := mustCreate(t, svc, owner, "Checked", domain.BlogStatusPrivate)

	checker := application.NewBlogsOwnershipChecker(repo, &mockLogger{})

	owns, err := checker.CheckOwnership(context.Background(), owner, blog.ID)
	require.NoError(t, err)
	assert.True(t, owns)

	owns, err = checker.CheckOwnership(context.Background(), uuid.New(), blog.ID)
	require.NoError(t, err)
	assert.False(t, owns)

	// Missing blog means "doesn't own it", not an error.
	owns, err = checker.CheckOwnership(context.Background(), owner, uuid.New())
	require.NoError(t, err)
	assert.False(t, owns)
}
