package authz_adapter

import (
	blogsPorts "github.com/calebh/storyspace/internal/blogs/ports"
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for the authorization adapter
var ProviderSet = wire.NewSet(
	NewOwnershipAuthorizer,
	wire.Bind(new(blogsPorts.Authorizer), new(*OwnershipAuthorizer)),
)
