package seeder

import (
	"context"
	"fmt"

	platformpg "github.com/calebh/storyspace/internal/platform/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DemoSeeder populates development databases with demo users and blogs.
// Production environments never run it.
type DemoSeeder struct{}

// NewDemoSeeder creates a new demo data seeder
func NewDemoSeeder() *DemoSeeder {
	return &DemoSeeder{}
}

// Name returns the name of this seeder
func (s *DemoSeeder) Name() string {
	return "DemoSeeder"
}

// Seed inserts the demo users and blogs. All inserts use fixed IDs with
// ON CONFLICT DO NOTHING, so re-running is harmless.
func (s *DemoSeeder) Seed(ctx context.Context, db *pgxpool.Pool) error {
	tm := platformpg.NewTransactionManager(db)
	tx, err := tm.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := s.seedUsers(ctx, tx.Tx()); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.seedBlogs(ctx, tx.Tx()); err != nil {
		return fmt.Errorf("failed to seed blogs: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *DemoSeeder) seedUsers(ctx context.Context, tx pgx.Tx) error {
	batch := &pgx.Batch{}
	for _, u := range DemoUsers {
		query := `
			INSERT INTO users (id, subject_id, email, username, display_name, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			ON CONFLICT (id) DO NOTHING
		`
		batch.Queue(query, u.ID, u.Subject, u.Email, u.Username, u.Display)
	}

	br := tx.SendBatch(ctx, batch)
	defer func() { _ = br.Close() }()

	for range DemoUsers {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert demo user: %w", err)
		}
	}

	return br.Close()
}

func (s *DemoSeeder) seedBlogs(ctx context.Context, tx pgx.Tx) error {
	batch := &pgx.Batch{}
	for _, b := range DemoBlogs {
		query := `
			INSERT INTO blogs (id, title, body, excerpt, slug, status, author_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			ON CONFLICT (id) DO NOTHING
		`
		batch.Queue(query, b.ID, b.Title, b.Body, b.Excerpt, b.Slug, b.Status, b.Author)
	}

	br := tx.SendBatch(ctx, batch)
	defer func() { _ = br.Close() }()

	for range DemoBlogs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert demo blog: %w", err)
		}
	}

	return br.Close()
}
