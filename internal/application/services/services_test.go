package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tabdeck/backend/internal/domain/models"
	"github.com/tabdeck/backend/internal/infrastructure/database"
	"github.com/tabdeck/backend/internal/infrastructure/persistence"
	"github.com/tabdeck/backend/internal/registry"
	"github.com/tabdeck/backend/pkg/constants"
)

// testEntityDefs mirrors the shipped registry, plus a read-only entity
// for operation-enforcement tests
func testEntityDefs() []models.EntityDefinition {
	allOps := []string{constants.OpRead, constants.OpWrite, constants.OpUpdate, constants.OpDelete}
	return []models.EntityDefinition{
		{
			Name:       "TaskEntity",
			Operations: allOps,
			Fields: []models.FieldDefinition{
				{Name: "title", Type: "string", Readable: true, Writable: true, Required: true},
				{Name: "content", Type: "string", Readable: true, Writable: true},
				{Name: "status", Type: "string", Readable: true, Writable: true, Default: "pending"},
			},
		},
		{
			Name:       "NoteEntity",
			Operations: allOps,
			Fields: []models.FieldDefinition{
				{Name: "title", Type: "string", Readable: true, Writable: true, Required: true},
				{Name: "content", Type: "string", Readable: true, Writable: true},
				{Name: "internal_flags", Type: "string", Readable: false, Writable: true},
			},
		},
		{
			Name:       "TimerReminderEntity",
			Operations: []string{constants.OpRead, constants.OpWrite, constants.OpUpdate},
			Fields: []models.FieldDefinition{
				{Name: "minute_cycle", Type: "integer", Readable: true, Writable: true, Default: 5},
				{Name: "minute_remainder", Type: "integer", Readable: true, Writable: true, Default: 0},
				{Name: "second", Type: "integer", Readable: true, Writable: true, Default: 0},
				{Name: "is_active", Type: "boolean", Readable: true, Writable: true, Default: false},
				{Name: "is_running", Type: "boolean", Readable: true, Writable: true, Default: false},
			},
		},
		{
			Name:       "AuditLogEntity",
			Operations: []string{constants.OpRead},
			Fields: []models.FieldDefinition{
				{Name: "action", Type: "string", Readable: true, Writable: true},
				{Name: "secret", Type: "string", Readable: false, Writable: true},
			},
		},
	}
}

// newTestManager spins up an in-memory store with all test tables created
func newTestManager(t *testing.T) *ServiceManager {
	t.Helper()

	db, err := database.Open(database.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	reg, err := registry.New("test", testEntityDefs())
	require.NoError(t, err)

	schema := persistence.NewSchemaOps(db.DB())
	ctx := context.Background()
	for _, def := range reg.All() {
		require.NoError(t, schema.EnsureTable(ctx, def))
	}

	return NewServiceManager(db, reg)
}
