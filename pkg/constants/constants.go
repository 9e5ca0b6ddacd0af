package constants

// System field names present on every record. The id is assigned by the
// store and is never writable through the facade.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// Entity operations declarable in the registry
const (
	OpRead   = "read"
	OpWrite  = "write"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Sort directions
const (
	SortASC  = "ASC"
	SortDESC = "DESC"
)

// DefaultQueryLimit caps unbounded queries
const DefaultQueryLimit = 200

// Environment variable keys
const (
	EnvPort         = "PORT"
	EnvDBPath       = "TABDECK_DB_PATH"
	EnvRegistryPath = "TABDECK_REGISTRY_PATH"
)

// Defaults for the environment keys above
const (
	DefaultPort         = "3001"
	DefaultDBPath       = "data/app.db"
	DefaultRegistryPath = "config/entity_registry.json"
)

// ResponseError is the legacy error envelope key
const ResponseError = "error"

// FieldMessage is the success envelope key
const FieldMessage = "message"
