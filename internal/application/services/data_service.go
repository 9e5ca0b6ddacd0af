package services

import (
	"context"
	"time"

	"github.com/tabdeck/backend/internal/domain/models"
	"github.com/tabdeck/backend/internal/domain/ports"
	"github.com/tabdeck/backend/internal/infrastructure/database"
	"github.com/tabdeck/backend/internal/infrastructure/persistence"
	"github.com/tabdeck/backend/internal/registry"
	"github.com/tabdeck/backend/pkg/constants"
	"github.com/tabdeck/backend/pkg/errors"
	"github.com/tabdeck/backend/pkg/fieldtypes"
	"github.com/tabdeck/backend/pkg/utils"
)

// DataService is the generic data access facade. Every persistence
// operation in the process funnels through it: it resolves entity names
// via the registry, filters and validates field values, assigns system
// columns, and delegates SQL to the record repository. Feature services
// hold it as a ports.DataAPI and never touch storage directly.
type DataService struct {
	registry *registry.Registry
	repo     *persistence.RecordRepository
}

// compile-time interface check
var _ ports.DataAPI = (*DataService)(nil)

// NewDataService creates a new DataService
func NewDataService(db *database.Connection, reg *registry.Registry) *DataService {
	return &DataService{
		registry: reg,
		repo:     persistence.NewRecordRepository(db.DB()),
	}
}

// resolveForOperation resolves the entity and checks its operations set
func (ds *DataService) resolveForOperation(entityName, op string) (*models.EntityDefinition, error) {
	def, err := ds.registry.Resolve(entityName)
	if err != nil {
		return nil, err
	}
	if !def.Allows(op) {
		return nil, errors.NewOperationNotAllowedError(op, entityName)
	}
	return def, nil
}

// fieldType returns the semantic type for a declared or system field
func fieldType(def *models.EntityDefinition, name string) (fieldtypes.FieldType, bool) {
	types := fieldtypes.GetRegistry()
	switch name {
	case constants.FieldID:
		return types.Get(fieldtypes.TypeInteger)
	case constants.FieldCreatedAt, constants.FieldUpdatedAt:
		return types.Get(fieldtypes.TypeTimestamp)
	}
	f, ok := def.Field(name)
	if !ok {
		return nil, false
	}
	return types.Get(f.Type)
}

// normalizeFilters checks every filter key against the entity definition
// and converts values to their storage form
func (ds *DataService) normalizeFilters(def *models.EntityDefinition, filters map[string]interface{}) (map[string]interface{}, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	out := make(map[string]interface{}, len(filters))
	for name, value := range filters {
		ft, ok := fieldType(def, name)
		if !ok {
			return nil, errors.NewInvalidFieldError(def.Name, name)
		}
		stored, err := ft.Transform(value)
		if err != nil {
			return nil, errors.NewValidationError(name, err.Error())
		}
		out[name] = stored
	}
	return out, nil
}

// sanitizeWrite reduces the input to declared writable fields, validating
// and normalizing each value. Keys that are not declared writable are
// dropped silently; the id and timestamp columns can never arrive here.
// When creating, declared defaults fill absent fields and every
// required+writable field must end up present and non-empty.
func (ds *DataService) sanitizeWrite(def *models.EntityDefinition, fields models.Record, creating bool) (models.Record, error) {
	types := fieldtypes.GetRegistry()
	out := make(models.Record)

	for _, f := range def.Fields {
		if !f.Writable {
			continue
		}

		ft, _ := types.Get(f.Type)
		value, present := fields[f.Name]
		if !present {
			if creating && f.Default != nil {
				stored, err := ft.Transform(f.Default)
				if err != nil {
					return nil, errors.NewConfigurationError(def.Name, err.Error())
				}
				out[f.Name] = stored
			}
			continue
		}

		if err := ft.Validate(value); err != nil {
			return nil, errors.NewValidationError(f.Name, err.Error())
		}
		stored, err := ft.Transform(value)
		if err != nil {
			return nil, errors.NewValidationError(f.Name, err.Error())
		}

		// A required field may never be set to an empty value
		if f.Required && isEmptyValue(stored) {
			return nil, errors.NewValidationError(f.Name, "field cannot be empty")
		}
		out[f.Name] = stored
	}

	if creating {
		for _, f := range def.Fields {
			if !f.Required || !f.Writable {
				continue
			}
			if value, ok := out[f.Name]; !ok || isEmptyValue(value) {
				return nil, errors.NewValidationError(f.Name, "field cannot be empty")
			}
		}
	}

	return out, nil
}

func isEmptyValue(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// hydrate converts stored values back to their semantic form, so callers
// see booleans as booleans instead of SQLite's 0/1
func hydrate(def *models.EntityDefinition, record models.Record) models.Record {
	if record == nil {
		return nil
	}
	for _, f := range def.Fields {
		value, ok := record[f.Name]
		if !ok || value == nil {
			continue
		}
		switch f.Type {
		case fieldtypes.TypeBoolean:
			record[f.Name] = utils.ToBool(value)
		case fieldtypes.TypeInteger:
			record[f.Name] = utils.ToInt64(value)
		}
	}
	if id, ok := record[constants.FieldID]; ok {
		record[constants.FieldID] = utils.ToInt64(id)
	}
	return record
}

func nowTimestamp() string {
	return time.Now().UTC().Format(utils.TimestampLayout)
}

// Query returns the records matching opts
func (ds *DataService) Query(ctx context.Context, entityName string, opts ports.QueryOptions) ([]models.Record, error) {
	def, err := ds.resolveForOperation(entityName, constants.OpRead)
	if err != nil {
		return nil, err
	}

	filters, err := ds.normalizeFilters(def, opts.Filters)
	if err != nil {
		return nil, err
	}

	if opts.OrderBy != "" && !def.HasField(opts.OrderBy) {
		return nil, errors.NewInvalidFieldError(entityName, opts.OrderBy)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = constants.DefaultQueryLimit
	}

	records, err := ds.repo.Find(ctx, def.TableName, def.ReadableFields(), filters, opts.OrderBy, opts.OrderDirection, limit, opts.Offset)
	if err != nil {
		return nil, errors.NewSystemError("query failed", err)
	}

	for i := range records {
		records[i] = hydrate(def, records[i])
	}
	return records, nil
}

// Get returns the record with the given id, or nil when absent
func (ds *DataService) Get(ctx context.Context, entityName string, id int64) (models.Record, error) {
	def, err := ds.resolveForOperation(entityName, constants.OpRead)
	if err != nil {
		return nil, err
	}

	record, err := ds.repo.FindOne(ctx, def.TableName, def.ReadableFields(), id)
	if err != nil {
		return nil, errors.NewSystemError("get failed", err)
	}
	return hydrate(def, record), nil
}

// Create inserts a new record and returns the assigned id
func (ds *DataService) Create(ctx context.Context, entityName string, fields models.Record) (int64, error) {
	def, err := ds.resolveForOperation(entityName, constants.OpWrite)
	if err != nil {
		return 0, err
	}

	record, err := ds.sanitizeWrite(def, fields, true)
	if err != nil {
		return 0, err
	}

	now := nowTimestamp()
	record[constants.FieldCreatedAt] = now
	record[constants.FieldUpdatedAt] = now

	id, err := ds.repo.Insert(ctx, def.TableName, record)
	if err != nil {
		return 0, errors.NewSystemError("create failed", err)
	}
	return id, nil
}

// Update modifies a record in place. Returns false when the id does not
// exist; storage is left untouched in that case.
func (ds *DataService) Update(ctx context.Context, entityName string, id int64, fields models.Record) (bool, error) {
	def, err := ds.resolveForOperation(entityName, constants.OpUpdate)
	if err != nil {
		return false, err
	}

	record, err := ds.sanitizeWrite(def, fields, false)
	if err != nil {
		return false, err
	}
	record[constants.FieldUpdatedAt] = nowTimestamp()

	affected, err := ds.repo.Update(ctx, def.TableName, id, record)
	if err != nil {
		return false, errors.NewSystemError("update failed", err)
	}
	return affected > 0, nil
}

// Delete removes a record. Returns false when the id does not exist, so a
// second delete of the same id reports false.
func (ds *DataService) Delete(ctx context.Context, entityName string, id int64) (bool, error) {
	def, err := ds.resolveForOperation(entityName, constants.OpDelete)
	if err != nil {
		return false, err
	}

	affected, err := ds.repo.Delete(ctx, def.TableName, id)
	if err != nil {
		return false, errors.NewSystemError("delete failed", err)
	}
	return affected > 0, nil
}

// Count returns the number of records matching the filters
func (ds *DataService) Count(ctx context.Context, entityName string, filters map[string]interface{}) (int64, error) {
	def, err := ds.resolveForOperation(entityName, constants.OpRead)
	if err != nil {
		return 0, err
	}

	normalized, err := ds.normalizeFilters(def, filters)
	if err != nil {
		return 0, err
	}

	count, err := ds.repo.Count(ctx, def.TableName, normalized)
	if err != nil {
		return 0, errors.NewSystemError("count failed", err)
	}
	return count, nil
}
