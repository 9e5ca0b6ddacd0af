package models

import (
	"github.com/tabdeck/backend/pkg/constants"
)

// FieldDefinition represents one declared field of an entity
type FieldDefinition struct {
	Name        string      `json:"name" yaml:"name"`
	Type        string      `json:"type" yaml:"type"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Readable    bool        `json:"readable" yaml:"readable"`
	Writable    bool        `json:"writable" yaml:"writable"`
	Required    bool        `json:"required,omitempty" yaml:"required,omitempty"`
	Default     interface{} `json:"default,omitempty" yaml:"default,omitempty"`
}

// EntityDefinition represents one declared entity: its fields, the
// operations it admits and the storage table backing it. TableName is
// filled during registry load, either from an explicit override or from
// the derivation rule.
type EntityDefinition struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	TableName   string            `json:"table_name,omitempty" yaml:"table_name,omitempty"`
	Fields      []FieldDefinition `json:"fields" yaml:"fields"`
	Operations  []string          `json:"operations" yaml:"operations"`
}

// Field returns the declared field with the given name
func (e *EntityDefinition) Field(name string) (*FieldDefinition, bool) {
	for i := range e.Fields {
		if e.Fields[i].Name == name {
			return &e.Fields[i], true
		}
	}
	return nil, false
}

// HasField reports whether name is declared on the entity or is one of
// the system columns
func (e *EntityDefinition) HasField(name string) bool {
	switch name {
	case constants.FieldID, constants.FieldCreatedAt, constants.FieldUpdatedAt:
		return true
	}
	_, ok := e.Field(name)
	return ok
}

// Allows reports whether the entity declares the given operation
func (e *EntityDefinition) Allows(op string) bool {
	for _, o := range e.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// ReadableFields returns the declared field names flagged readable,
// preceded by the system columns
func (e *EntityDefinition) ReadableFields() []string {
	fields := []string{constants.FieldID}
	for _, f := range e.Fields {
		if f.Readable {
			fields = append(fields, f.Name)
		}
	}
	fields = append(fields, constants.FieldCreatedAt, constants.FieldUpdatedAt)
	return fields
}

// WritableFields returns the declared field names flagged writable
func (e *EntityDefinition) WritableFields() []string {
	var fields []string
	for _, f := range e.Fields {
		if f.Writable {
			fields = append(fields, f.Name)
		}
	}
	return fields
}
