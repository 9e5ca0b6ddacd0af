package models

import (
	"time"

	"github.com/tabdeck/backend/pkg/constants"
	"github.com/tabdeck/backend/pkg/utils"
)

// Record is a dynamic record: a mapping from declared field names to
// values. Keys are restricted to the entity's declared fields plus the
// system columns id, created_at and updated_at.
type Record map[string]interface{}

// ID returns the numeric identifier, 0 when unset
func (r Record) ID() int64 {
	return utils.ToInt64(r[constants.FieldID])
}

// GetString returns a field as string, "" when absent
func (r Record) GetString(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	return utils.ToString(v)
}

// GetInt64 returns a field as int64, 0 when absent
func (r Record) GetInt64(field string) int64 {
	return utils.ToInt64(r[field])
}

// GetBool returns a field as bool, false when absent
func (r Record) GetBool(field string) bool {
	return utils.ToBool(r[field])
}

// GetTime returns a field as time.Time, zero time when absent
func (r Record) GetTime(field string) time.Time {
	return utils.ToTime(r[field])
}

// Clone returns a shallow copy of the record
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
