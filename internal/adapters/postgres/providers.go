package postgres

import (
	blogsPorts "github.com/calebh/storyspace/internal/blogs/ports"
	usersPorts "github.com/calebh/storyspace/internal/users/ports"
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for postgres repositories
var ProviderSet = wire.NewSet(
	NewBlogRepository,
	wire.Bind(new(blogsPorts.BlogRepository), new(*BlogRepository)),
	NewUserRepository,
	wire.Bind(new(usersPorts.UserRepository), new(*UserRepository)),
)
