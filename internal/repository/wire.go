package repository

import "github.com/google/wire"

// ProviderSet is the Wire provider set for Redis-backed storage.
var ProviderSet = wire.NewSet(
	NewRedisClient,
	NewSessionStore,
)
