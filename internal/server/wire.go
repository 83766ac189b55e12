//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/calebh/storyspace/internal/adapters/authz_adapter"
	"github.com/calebh/storyspace/internal/adapters/postgres"
	"github.com/calebh/storyspace/internal/adapters/rest"
	"github.com/calebh/storyspace/internal/adapters/rest/middleware"
	"github.com/calebh/storyspace/internal/audit"
	blogsApp "github.com/calebh/storyspace/internal/blogs/application"
	blogsPorts "github.com/calebh/storyspace/internal/blogs/ports"
	blogsSeeder "github.com/calebh/storyspace/internal/blogs/seeder"
	"github.com/calebh/storyspace/internal/platform/eventbus"
	"github.com/calebh/storyspace/internal/platform/logger"
	"github.com/calebh/storyspace/internal/platform/ownership"
	"github.com/calebh/storyspace/internal/platform/seeder"
	usersApp "github.com/calebh/storyspace/internal/users/application"
	"github.com/google/wire"
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		// Bootstrap phase
		logger.NewBootstrapLogger,
		LoadConfig,

		// Main logger
		provideLoggerConfig,
		logger.NewConfiguredLogger,
		wire.Bind(new(logger.Logger), new(*logger.SlogAdapter)),

		// Database
		ConnectDatabase,

		// Repositories (includes interface bindings)
		postgres.ProviderSet,

		// Platform services
		eventbus.ProviderSet,
		provideOwnershipRegistry,
		wire.Bind(new(ownership.Registry), new(*ownership.DefaultRegistry)),

		// Authorization
		authz_adapter.ProviderSet,

		// Application services
		blogsApp.ProviderSet,
		usersApp.ProviderSet,

		// Event subscribers
		audit.ProviderSet,

		// REST handlers
		rest.ProviderSet,
		provideVersion,

		// Auth middleware
		provideJWTConfig,
		middleware.ProviderSet,

		// Seeding
		provideSeeders,
		seeder.NewOrchestrator,

		// HTTP Server
		NewHTTPServer,

		// App
		NewApp,
	)

	return nil, nil, nil
}

// provideVersion provides the application version
func provideVersion() string {
	return "1.0.0"
}

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

// provideJWTConfig extracts the JWT middleware settings from server config
func provideJWTConfig(config Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		JWKS:   config.JWKSEndpoint,
		Issuer: config.JWTIssuer,
	}
}

// provideOwnershipRegistry builds the registry with every ownership
// checker already registered
func provideOwnershipRegistry(repo blogsPorts.BlogRepository, log logger.Logger) *ownership.DefaultRegistry {
	registry := ownership.NewRegistry()
	blogsApp.RegisterBlogsOwnership(registry, repo, log)
	return registry
}

// provideSeeders lists the seeders the orchestrator runs, in order
func provideSeeders() []seeder.Seeder {
	return []seeder.Seeder{
		blogsSeeder.NewDemoSeeder(),
	}
}
