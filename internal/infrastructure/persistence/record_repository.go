package persistence

import (
	"context"
	"database/sql"
	"sort"

	"github.com/tabdeck/backend/internal/domain/models"
	"github.com/tabdeck/backend/pkg/constants"
	"github.com/tabdeck/backend/pkg/query"
)

// RecordRepository executes generic CRUD against the dynamic entity
// tables. It owns SQL generation and row scanning; the facade above it
// owns entity resolution and validation.
type RecordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// applyFilters adds exact-match conditions in stable field order
func applyFilters(b *query.Builder, filters map[string]interface{}) {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WhereEq(k, filters[k])
	}
}

// Find returns the records matching the exact-match filter conjunction
func (r *RecordRepository) Find(ctx context.Context, table string, fields []string, filters map[string]interface{}, orderBy, direction string, limit, offset int) ([]models.Record, error) {
	builder := query.From(table).Select(fields)
	applyFilters(builder, filters)
	if orderBy != "" {
		builder.OrderBy(orderBy, direction)
	}
	if limit > 0 {
		builder.Limit(limit)
		if offset > 0 {
			builder.Offset(offset)
		}
	}

	q := builder.Build()
	rows, err := r.db.QueryContext(ctx, q.SQL, q.Params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return query.ScanRowsToRecords(rows)
}

// FindOne returns a single record by ID, or nil when absent
func (r *RecordRepository) FindOne(ctx context.Context, table string, fields []string, id int64) (models.Record, error) {
	q := query.From(table).
		Select(fields).
		WhereEq(constants.FieldID, id).
		Limit(1).
		Build()

	rows, err := r.db.QueryContext(ctx, q.SQL, q.Params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results, err := query.ScanRowsToRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// Exists checks if a record exists by ID
func (r *RecordRepository) Exists(ctx context.Context, table string, id int64) (bool, error) {
	q := query.From(table).
		Select([]string{constants.FieldID}).
		WhereEq(constants.FieldID, id).
		Limit(1).
		Build()

	rows, err := r.db.QueryContext(ctx, q.SQL, q.Params...)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	return rows.Next(), nil
}

// Insert executes an INSERT statement and returns the assigned row id
func (r *RecordRepository) Insert(ctx context.Context, table string, record models.Record) (int64, error) {
	q := query.Insert(table, record).Build()

	res, err := r.db.ExecContext(ctx, q.SQL, q.Params...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update executes an UPDATE by id and returns the number of affected rows
func (r *RecordRepository) Update(ctx context.Context, table string, id int64, updates models.Record) (int64, error) {
	q := query.Update(table).
		Set(updates).
		WhereEq(constants.FieldID, id).
		Build()

	res, err := r.db.ExecContext(ctx, q.SQL, q.Params...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete executes a DELETE by id and returns the number of affected rows
func (r *RecordRepository) Delete(ctx context.Context, table string, id int64) (int64, error) {
	q := query.Delete(table).
		WhereEq(constants.FieldID, id).
		Build()

	res, err := r.db.ExecContext(ctx, q.SQL, q.Params...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of records matching the filters
func (r *RecordRepository) Count(ctx context.Context, table string, filters map[string]interface{}) (int64, error) {
	builder := query.From(table).SelectCount()
	applyFilters(builder, filters)
	q := builder.Build()

	var count int64
	if err := r.db.QueryRowContext(ctx, q.SQL, q.Params...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
