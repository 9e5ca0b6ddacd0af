// Package registry loads and validates the declarative entity catalog.
// The catalog is loaded once at process start and is read-only afterward;
// every facade call resolves entity names through it.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tabdeck/backend/internal/domain/models"
	"github.com/tabdeck/backend/pkg/constants"
	"github.com/tabdeck/backend/pkg/errors"
	"github.com/tabdeck/backend/pkg/fieldtypes"
)

// registryFile mirrors the on-disk catalog shape: either a bare sequence
// of entities or a document with a top-level "entities" key.
type registryFile struct {
	Entities []models.EntityDefinition `json:"entities" yaml:"entities"`
}

// Registry is the loaded, validated entity catalog
type Registry struct {
	entities map[string]*models.EntityDefinition
	order    []string
}

// Load reads and validates an entity catalog from a JSON or YAML file.
// Any inconsistency is fatal: a ConfigurationError is returned and the
// caller is expected to abort startup.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigurationError(path, fmt.Sprintf("cannot read registry file: %v", err))
	}

	var file registryFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, errors.NewConfigurationError(path, fmt.Sprintf("invalid YAML: %v", err))
		}
		if len(file.Entities) == 0 {
			var bare []models.EntityDefinition
			if err := yaml.Unmarshal(raw, &bare); err == nil {
				file.Entities = bare
			}
		}
	default:
		if err := json.Unmarshal(raw, &file); err != nil {
			// A bare array is also accepted
			var bare []models.EntityDefinition
			if err2 := json.Unmarshal(raw, &bare); err2 != nil {
				return nil, errors.NewConfigurationError(path, fmt.Sprintf("invalid JSON: %v", err))
			}
			file.Entities = bare
		}
	}

	return New(path, file.Entities)
}

// New builds a Registry from already-parsed definitions, applying the
// table-name derivation rule and rejecting duplicates
func New(source string, defs []models.EntityDefinition) (*Registry, error) {
	if len(defs) == 0 {
		return nil, errors.NewConfigurationError(source, "registry declares no entities")
	}

	reg := &Registry{entities: make(map[string]*models.EntityDefinition, len(defs))}
	tables := make(map[string]string, len(defs)) // table name -> owning entity

	for i := range defs {
		def := defs[i]
		if def.Name == "" {
			return nil, errors.NewConfigurationError(source, fmt.Sprintf("entity #%d has no name", i))
		}
		if _, dup := reg.entities[def.Name]; dup {
			return nil, errors.NewConfigurationError(source, fmt.Sprintf("duplicate entity name '%s'", def.Name))
		}
		if err := validateEntity(source, &def); err != nil {
			return nil, err
		}

		if def.TableName == "" {
			def.TableName = DeriveTableName(def.Name)
		}
		if !isValidTableName(def.TableName) {
			return nil, errors.NewConfigurationError(source,
				fmt.Sprintf("entity '%s' resolves to invalid table name '%s'", def.Name, def.TableName))
		}
		if owner, taken := tables[def.TableName]; taken {
			return nil, errors.NewConfigurationError(source,
				fmt.Sprintf("entities '%s' and '%s' both resolve to table '%s'", owner, def.Name, def.TableName))
		}
		tables[def.TableName] = def.Name

		reg.entities[def.Name] = &def
		reg.order = append(reg.order, def.Name)
	}

	return reg, nil
}

func validateEntity(source string, def *models.EntityDefinition) error {
	if len(def.Fields) == 0 {
		return errors.NewConfigurationError(source, fmt.Sprintf("entity '%s' declares no fields", def.Name))
	}

	types := fieldtypes.GetRegistry()
	seen := make(map[string]bool, len(def.Fields))
	for _, f := range def.Fields {
		if f.Name == "" {
			return errors.NewConfigurationError(source, fmt.Sprintf("entity '%s' has a field with no name", def.Name))
		}
		switch f.Name {
		case constants.FieldID, constants.FieldCreatedAt, constants.FieldUpdatedAt:
			return errors.NewConfigurationError(source,
				fmt.Sprintf("entity '%s' redeclares system field '%s'", def.Name, f.Name))
		}
		if seen[f.Name] {
			return errors.NewConfigurationError(source,
				fmt.Sprintf("entity '%s' declares field '%s' twice", def.Name, f.Name))
		}
		seen[f.Name] = true
		if !types.IsKnown(f.Type) {
			return errors.NewConfigurationError(source,
				fmt.Sprintf("entity '%s' field '%s' has unknown type '%s'", def.Name, f.Name, f.Type))
		}
	}

	for _, op := range def.Operations {
		switch op {
		case constants.OpRead, constants.OpWrite, constants.OpUpdate, constants.OpDelete:
		default:
			return errors.NewConfigurationError(source,
				fmt.Sprintf("entity '%s' declares unknown operation '%s'", def.Name, op))
		}
	}

	return nil
}

// Resolve returns the definition for entityName, or an InvalidEntityError
// when the name is undeclared
func (r *Registry) Resolve(entityName string) (*models.EntityDefinition, error) {
	def, ok := r.entities[entityName]
	if !ok {
		return nil, errors.NewInvalidEntityError(entityName)
	}
	return def, nil
}

// Names returns all entity names in declaration order
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// All returns all definitions in declaration order
func (r *Registry) All() []*models.EntityDefinition {
	out := make([]*models.EntityDefinition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entities[name])
	}
	return out
}

// WithOperation returns the names of entities declaring op
func (r *Registry) WithOperation(op string) []string {
	var out []string
	for _, name := range r.order {
		if r.entities[name].Allows(op) {
			out = append(out, name)
		}
	}
	return out
}
