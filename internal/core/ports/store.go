package ports

import (
	"context"

	"github.com/usercore/user-directory/internal/core/domain"
)

// Document is a loosely typed record or field-equality query, keyed by field
// name. It is the only query shape the gateway supports.
type Document = map[string]any

// Store is a document-oriented persistence gateway. Concrete backing stores
// (MongoDB, in-memory, cached) are injected into services.
type Store interface {
	// FindOne returns the single record in collection matching every field of
	// query. Absence is reported as domain.ErrUserNotFound; it is never folded
	// into a storage failure. Storage faults wrap domain.ErrStorageFailure.
	FindOne(ctx context.Context, collection string, query Document) (*domain.User, error)

	// Insert persists data as a new record in collection and returns the
	// stored representation. Inserting a record whose id already exists
	// returns domain.ErrUserExists. Storage faults wrap
	// domain.ErrStorageFailure.
	Insert(ctx context.Context, collection string, data Document) (*domain.User, error)
}
