package theme

import "context"

// Store persists small per-visitor preferences.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Scoper hands out stores isolated per visitor.
type Scoper interface {
	Scope(visitorID string) Store
}
