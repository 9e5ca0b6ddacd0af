// Package ports declares the interfaces the application layer exposes to
// feature services. Feature services depend on these, never on the
// storage packages directly.
package ports

import (
	"context"

	"github.com/tabdeck/backend/internal/domain/models"
)

// QueryOptions narrows a Query call. Filters is an exact-match
// conjunction over declared field names. OrderBy is a declared field
// name; direction defaults to ascending. Limit <= 0 means the default
// cap, Offset is ignored without a limit.
type QueryOptions struct {
	Filters        map[string]interface{}
	OrderBy        string
	OrderDirection string
	Limit          int
	Offset         int
}

// DataAPI is the sole data access surface available to feature services.
// Every method resolves the entity name through the registry; unknown
// names surface errors.InvalidEntityError, undeclared filter or order
// fields surface errors.InvalidFieldError.
type DataAPI interface {
	// Query returns the records matching opts
	Query(ctx context.Context, entityName string, opts QueryOptions) ([]models.Record, error)

	// Get returns the record with the given id, or nil when absent
	Get(ctx context.Context, entityName string, id int64) (models.Record, error)

	// Create inserts a new record and returns the assigned id.
	// Non-writable keys are dropped; required writable fields must be
	// present and non-empty.
	Create(ctx context.Context, entityName string, fields models.Record) (int64, error)

	// Update modifies a record in place, with the same field filtering
	// as Create. Returns false when the id does not exist.
	Update(ctx context.Context, entityName string, id int64, fields models.Record) (bool, error)

	// Delete removes a record. Returns false when the id does not exist.
	Delete(ctx context.Context, entityName string, id int64) (bool, error)

	// Count returns the number of records matching the filters
	Count(ctx context.Context, entityName string, filters map[string]interface{}) (int64, error)
}
