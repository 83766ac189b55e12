package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/calebh/storyspace/internal/blogs/domain"
	"github.com/calebh/storyspace/internal/blogs/ports"
	platformpg "github.com/calebh/storyspace/internal/platform/postgres"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BlogRepository implements ports.BlogRepository using PostgreSQL
type BlogRepository struct {
	platformpg.BaseRepository
}

// NewBlogRepository creates a new PostgreSQL blogs repository
func NewBlogRepository(db *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{
		BaseRepository: platformpg.NewBaseRepository(db),
	}
}

// WithTx creates a new repository instance that uses the provided transaction
func (r *BlogRepository) WithTx(tx pgx.Tx) ports.BlogRepository {
	return &BlogRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
	}
}

// Create inserts a new blog into the database
func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	query, args, err := r.SB.
		Insert("blogs").
		Columns(
			"id", "title", "body", "excerpt", "slug", "status",
			"author_id", "created_at", "updated_at",
		).
		Values(
			pgtype.UUID{Bytes: blog.ID, Valid: true},
			blog.Title,
			blog.Body,
			blog.Excerpt,
			blog.Slug,
			string(blog.Status),
			pgtype.UUID{Bytes: blog.AuthorID, Valid: true},
			pgtype.Timestamptz{Time: blog.CreatedAt, Valid: true},
			pgtype.Timestamptz{Time: blog.UpdatedAt, Valid: true},
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("BlogRepository.Create: build query: %w", err)
	}

	_, err = r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("BlogRepository.Create: %w", err)
	}

	return nil
}

// Update updates an existing blog in the database. The author column is
// deliberately absent from the SET list: ownership never changes.
func (r *BlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	query, args, err := r.SB.
		Update("blogs").
		Set("title", blog.Title).
		Set("body", blog.Body).
		Set("excerpt", blog.Excerpt).
		Set("slug", blog.Slug).
		Set("status", string(blog.Status)).
		Set("updated_at", pgtype.Timestamptz{Time: blog.UpdatedAt, Valid: true}).
		Where(sq.Eq{"id": pgtype.UUID{Bytes: blog.ID, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("BlogRepository.Update: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("BlogRepository.Update: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrBlogNotFound
	}

	return nil
}

// Delete removes a blog from the database
func (r *BlogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.SB.
		Delete("blogs").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("BlogRepository.Delete: build query: %w", err)
	}

	result, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("BlogRepository.Delete: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ports.ErrBlogNotFound
	}

	return nil
}

// FindByID retrieves a blog by its ID
func (r *BlogRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Blog, error) {
	query, args, err := r.SB.
		Select(
			"id", "title", "body", "excerpt", "slug", "status",
			"author_id", "created_at", "updated_at",
		).
		From("blogs").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: id, Valid: true}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("BlogRepository.FindByID: build query: %w", err)
	}

	row := r.DB.QueryRow(ctx, query, args...)
	blog, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrBlogNotFound
		}
		return nil, fmt.Errorf("BlogRepository.FindByID: %w", err)
	}

	return blog, nil
}

// FindBySlug retrieves a blog by its URL slug
func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	query, args, err := r.SB.
		Select(
			"id", "title", "body", "excerpt", "slug", "status",
			"author_id", "created_at", "updated_at",
		).
		From("blogs").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("BlogRepository.FindBySlug: build query: %w", err)
	}

	row := r.DB.QueryRow(ctx, query, args...)
	blog, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrBlogNotFound
		}
		return nil, fmt.Errorf("BlogRepository.FindBySlug: %w", err)
	}

	return blog, nil
}

// ListSummaries retrieves a list of blog summaries based on the filter
func (r *BlogRepository) ListSummaries(ctx context.Context, filter ports.ListFilter) ([]*ports.BlogSummary, error) {
	qb := r.SB.Select(
		"b.id", "b.title", "b.excerpt", "b.slug", "b.status", "b.author_id",
		"COALESCE(NULLIF(u.display_name, ''), u.username) AS author_name",
		"b.created_at", "b.updated_at",
	).
		From("blogs b").
		LeftJoin("users u ON b.author_id = u.id")

	qb = applyFilters(qb, filter)

	orderColumn := getOrderColumn(filter.OrderBy)
	if filter.OrderDesc {
		qb = qb.OrderBy(fmt.Sprintf("%s DESC", orderColumn))
	} else {
		qb = qb.OrderBy(fmt.Sprintf("%s ASC", orderColumn))
	}
	// Secondary key keeps the order stable across repeated calls
	qb = qb.OrderBy("b.id")

	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("BlogRepository.ListSummaries: build query: %w", err)
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("BlogRepository.ListSummaries: %w", err)
	}
	defer rows.Close()

	var summaries []*ports.BlogSummary
	for rows.Next() {
		summary, err := scanBlogSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("BlogRepository.ListSummaries: rows error: %w", err)
	}

	return summaries, nil
}

// Count returns the total number of blogs matching the filter
func (r *BlogRepository) Count(ctx context.Context, filter ports.ListFilter) (int, error) {
	qb := r.SB.Select("COUNT(*)").From("blogs b")
	qb = applyFilters(qb, filter)

	query, args, err := qb.ToSql()
	if err != nil {
		return 0, fmt.Errorf("BlogRepository.Count: build query: %w", err)
	}

	var count int
	err = r.DB.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("BlogRepository.Count: %w", err)
	}

	return count, nil
}

// SlugExists checks if a slug already exists, optionally excluding a specific blog ID
func (r *BlogRepository) SlugExists(ctx context.Context, slug string, excludeID *uuid.UUID) (bool, error) {
	subQuery := r.SB.Select("1").From("blogs").Where(sq.Eq{"slug": slug})

	if excludeID != nil {
		subQuery = subQuery.Where(sq.NotEq{"id": pgtype.UUID{Bytes: *excludeID, Valid: true}})
	}

	subQuerySQL, subQueryArgs, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("BlogRepository.SlugExists: build subquery: %w", err)
	}

	// squirrel has no EXISTS builder, hence the manual wrap
	query := fmt.Sprintf("SELECT EXISTS(%s)", subQuerySQL)

	var exists bool
	err = r.DB.QueryRow(ctx, query, subQueryArgs...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("BlogRepository.SlugExists: %w", err)
	}

	return exists, nil
}

// GetBlogAuthor retrieves just the author ID for a blog (for ownership checks)
func (r *BlogRepository) GetBlogAuthor(ctx context.Context, blogID uuid.UUID) (uuid.UUID, error) {
	query, args, err := r.SB.
		Select("author_id").
		From("blogs").
		Where(sq.Eq{"id": pgtype.UUID{Bytes: blogID, Valid: true}}).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("BlogRepository.GetBlogAuthor: build query: %w", err)
	}

	var authorIDBytes pgtype.UUID
	err = r.DB.QueryRow(ctx, query, args...).Scan(&authorIDBytes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, ports.ErrBlogNotFound
		}
		return uuid.Nil, fmt.Errorf("BlogRepository.GetBlogAuthor: %w", err)
	}

	return uuid.UUID(authorIDBytes.Bytes), nil
}

// Helper methods

// applyFilters applies common WHERE clauses to a query builder
func applyFilters(qb sq.SelectBuilder, filter ports.ListFilter) sq.SelectBuilder {
	if filter.Status != nil {
		qb = qb.Where(sq.Eq{"b.status": string(*filter.Status)})
	}

	if filter.AuthorID != nil {
		qb = qb.Where(sq.Eq{"b.author_id": pgtype.UUID{Bytes: *filter.AuthorID, Valid: true}})
	}

	return qb
}

// getOrderColumn validates and returns the actual column name for ordering
func getOrderColumn(field ports.OrderField) string {
	switch field {
	case ports.OrderByCreatedAt:
		return "b.created_at"
	case ports.OrderByUpdatedAt:
		return "b.updated_at"
	case ports.OrderByTitle:
		return "b.title"
	default:
		return "b.created_at"
	}
}

// scanBlog scans a single blog from pgx.Row. An unknown status value is a
// data-integrity error and fails the scan rather than defaulting.
func scanBlog(row pgx.Row) (*domain.Blog, error) {
	var blog domain.Blog
	var idBytes, authorIDBytes pgtype.UUID
	var statusStr string

	err := row.Scan(
		&idBytes,
		&blog.Title,
		&blog.Body,
		&blog.Excerpt,
		&blog.Slug,
		&statusStr,
		&authorIDBytes,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	blog.ID = uuid.UUID(idBytes.Bytes)
	blog.AuthorID = uuid.UUID(authorIDBytes.Bytes)

	blog.Status = domain.BlogStatus(statusStr)
	if !blog.Status.IsValid() {
		return nil, fmt.Errorf("scanBlog: invalid status %q", statusStr)
	}

	return &blog, nil
}

// scanBlogSummary scans a blog summary from pgx.Rows
func scanBlogSummary(rows pgx.Rows) (*ports.BlogSummary, error) {
	var summary ports.BlogSummary
	var idBytes, authorIDBytes pgtype.UUID
	var statusStr string
	var authorName pgtype.Text

	err := rows.Scan(
		&idBytes,
		&summary.Title,
		&summary.Excerpt,
		&summary.Slug,
		&statusStr,
		&authorIDBytes,
		&authorName,
		&summary.CreatedAt,
		&summary.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanBlogSummary: %w", err)
	}

	summary.ID = uuid.UUID(idBytes.Bytes)
	summary.AuthorID = uuid.UUID(authorIDBytes.Bytes)

	if authorName.Valid {
		summary.AuthorName = authorName.String
	}

	summary.Status = domain.BlogStatus(statusStr)
	if !summary.Status.IsValid() {
		return nil, fmt.Errorf("scanBlogSummary: invalid status %q", statusStr)
	}

	return &summary, nil
}

// Compile-time check to ensure BlogRepository implements ports.BlogRepository
var _ ports.BlogRepository = (*BlogRepository)(nil)
