// Package fieldtypes maps the semantic field types the entity registry
// admits (integer, string, boolean, timestamp) onto storage column types,
// value validation and value normalization.
package fieldtypes

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tabdeck/backend/pkg/utils"
)

// Semantic type names accepted in entity registry files
const (
	TypeInteger   = "integer"
	TypeString    = "string"
	TypeBoolean   = "boolean"
	TypeTimestamp = "timestamp"
)

// FieldType describes one semantic type
type FieldType interface {
	// Name returns the unique identifier for this field type
	Name() string

	// SQLType returns the SQL column type for this field
	SQLType() string

	// Validate validates a value for this field type
	// Returns nil if valid, error otherwise
	Validate(value interface{}) error

	// Transform normalizes a value before storage
	Transform(value interface{}) (interface{}, error)
}

// Registry manages the known field types
type Registry struct {
	types map[string]FieldType
	mu    sync.RWMutex
}

var (
	registry     *Registry
	registryOnce sync.Once
)

// GetRegistry returns the singleton field type registry with the four
// built-in types registered
func GetRegistry() *Registry {
	registryOnce.Do(func() {
		registry = &Registry{types: make(map[string]FieldType)}
		registry.register(integerType{})
		registry.register(stringType{})
		registry.register(booleanType{})
		registry.register(timestampType{})
	})
	return registry
}

func (r *Registry) register(ft FieldType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[ft.Name()] = ft
}

// Get returns the field type with the given name
func (r *Registry) Get(name string) (FieldType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ft, ok := r.types[strings.ToLower(name)]
	return ft, ok
}

// List returns the names of all registered field types
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}

// IsKnown reports whether name is a registered semantic type
func (r *Registry) IsKnown(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// ---- integer ----

type integerType struct{}

func (integerType) Name() string    { return TypeInteger }
func (integerType) SQLType() string { return "INTEGER" }

func (integerType) Validate(value interface{}) error {
	switch v := value.(type) {
	case nil, int, int32, int64:
		return nil
	case float64:
		if v != float64(int64(v)) {
			return fmt.Errorf("value %v is not an integer", v)
		}
		return nil
	case string:
		if _, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err != nil {
			return fmt.Errorf("value %q is not an integer", v)
		}
		return nil
	default:
		return fmt.Errorf("value of type %T is not an integer", value)
	}
}

func (integerType) Transform(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("value %q is not an integer", v)
		}
		return n, nil
	default:
		return utils.ToInt64(value), nil
	}
}

// ---- string ----

type stringType struct{}

func (stringType) Name() string    { return TypeString }
func (stringType) SQLType() string { return "TEXT" }

func (stringType) Validate(value interface{}) error {
	switch value.(type) {
	case nil, string, []byte:
		return nil
	default:
		return fmt.Errorf("value of type %T is not a string", value)
	}
}

// Transform trims surrounding whitespace. The required-field emptiness
// check relies on this running first.
func (stringType) Transform(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	return strings.TrimSpace(utils.ToString(value)), nil
}

// ---- boolean ----

type booleanType struct{}

func (booleanType) Name() string    { return TypeBoolean }
func (booleanType) SQLType() string { return "INTEGER" }

func (booleanType) Validate(value interface{}) error {
	switch value.(type) {
	case nil, bool, int, int64, float64, string:
		return nil
	default:
		return fmt.Errorf("value of type %T is not a boolean", value)
	}
}

// Transform stores booleans as 0/1 the way SQLite expects
func (booleanType) Transform(value interface{}) (interface{}, error) {
	if value == nil {
		return nil, nil
	}
	if utils.ToBool(value) {
		return 1, nil
	}
	return 0, nil
}

// ---- timestamp ----

type timestampType struct{}

func (timestampType) Name() string    { return TypeTimestamp }
func (timestampType) SQLType() string { return "TIMESTAMP" }

func (timestampType) Validate(value interface{}) error {
	switch v := value.(type) {
	case nil, time.Time:
		return nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		if t := utils.ToTime(v); t.IsZero() {
			return fmt.Errorf("value %q is not a timestamp", v)
		}
		return nil
	default:
		return fmt.Errorf("value of type %T is not a timestamp", value)
	}
}

func (timestampType) Transform(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return v.UTC().Format(utils.TimestampLayout), nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return "", nil
		}
		t := utils.ToTime(s)
		if t.IsZero() {
			return nil, fmt.Errorf("value %q is not a timestamp", v)
		}
		return t.UTC().Format(utils.TimestampLayout), nil
	default:
		return nil, fmt.Errorf("value of type %T is not a timestamp", value)
	}
}
