package store

import (
	"context"
	"errors"

	"catalog/internal/catalog/models"
)

// Sentinel errors for store facts. Implementations return these (optionally
// wrapped) so the service layer can translate them into pipeline outcomes
// without knowing which backend is in play.
var (
	// ErrNotFound keeps store-level 404s consistent across in-memory,
	// PostgreSQL, and cached implementations.
	ErrNotFound = errors.New("item not found")
)

// Store is the document-store contract the mutation pipeline depends on.
// It is interface-driven so the pipeline can be exercised against the
// in-memory implementation in tests and swapped to PostgreSQL (optionally
// behind the Redis cache decorator) without rewiring business code.
type Store interface {
	// FindByID returns the stored item or ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.Item, error)

	// FindByName performs a point lookup on the unique name (exact,
	// case-sensitive). Returns ErrNotFound when no item carries the name.
	FindByName(ctx context.Context, name string) (*models.Item, error)

	// FindByCode performs a point lookup on the unique code. Returns
	// ErrNotFound when no item carries the code.
	FindByCode(ctx context.Context, code string) (*models.Item, error)

	// Find lists items matching the filter: case-insensitive substring on
	// name, set-membership on tags. A zero filter returns everything.
	Find(ctx context.Context, filter models.Filter) ([]*models.Item, error)

	// Insert persists a new item as given (id, version, and timestamps are
	// assigned by the caller) and returns its id.
	Insert(ctx context.Context, item *models.Item) (string, error)

	// ReplaceByID overwrites the whole document at id with the candidate's
	// fields and increments the stored version by one as part of the same
	// atomic write. Returns the updated item, or ErrNotFound when the id
	// vanished between the caller's currency check and the write.
	ReplaceByID(ctx context.Context, id string, item *models.Item) (*models.Item, error)

	// DeleteByID removes the item and reports whether a document existed.
	// Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id string) (bool, error)
}
