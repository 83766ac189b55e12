package application

import "github.com/google/wire"

// ProviderSet is the wire provider set for the blogs application layer
var ProviderSet = wire.NewSet(
	NewBlogsService,
)
