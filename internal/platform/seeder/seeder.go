package seeder

import (
	"context"
	"fmt"

	"github.com/calebh/storyspace/internal/platform/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seeder defines the interface for all data seeders
type Seeder interface {
	// Name returns the name of the seeder for logging
	Name() string

	// Seed runs the seeding logic with database access.
	// Implementations must be idempotent.
	Seed(ctx context.Context, db *pgxpool.Pool) error
}

// Orchestrator manages and runs multiple seeders in order
type Orchestrator struct {
	seeders []Seeder
	logger  logger.Logger
	db      *pgxpool.Pool
}

// NewOrchestrator creates a new seeder orchestrator with all seeders injected
func NewOrchestrator(logger logger.Logger, db *pgxpool.Pool, seeders []Seeder) *Orchestrator {
	return &Orchestrator{
		seeders: seeders,
		logger:  logger,
		db:      db,
	}
}

// RunAll executes all registered seeders in order
func (o *Orchestrator) RunAll(ctx context.Context) error {
	o.logger.Info(ctx, "starting data seeding", "seeder_count", len(o.seeders))

	for _, s := range o.seeders {
		o.logger.Info(ctx, "running seeder", "seeder", s.Name())

		if err := s.Seed(ctx, o.db); err != nil {
			o.logger.Error(ctx, "seeder failed",
				"seeder", s.Name(),
				"error", err,
			)
			return fmt.Errorf("seeder %s failed: %w", s.Name(), err)
		}

		o.logger.Info(ctx, "seeder completed", "seeder", s.Name())
	}

	return nil
}
