package domain

import "context"

// Database defines lifecycle operations for the underlying store.
// Each implementation (MongoDB, SQLite) owns its own schema setup,
// so the gateway never depends on a particular backend.
type Database interface {
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
