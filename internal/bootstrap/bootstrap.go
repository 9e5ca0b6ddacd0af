// Package bootstrap prepares the storage layer for the loaded entity
// catalog before any request is served.
package bootstrap

import (
	"context"
	"log"

	"github.com/tabdeck/backend/internal/infrastructure/database"
	"github.com/tabdeck/backend/internal/infrastructure/persistence"
	"github.com/tabdeck/backend/internal/registry"
)

// InitializeSchema creates one table per registered entity. Existing
// tables are left untouched; the catalog never alters columns at runtime.
func InitializeSchema(ctx context.Context, db *database.Connection, reg *registry.Registry) error {
	schema := persistence.NewSchemaOps(db.DB())

	for _, def := range reg.All() {
		if err := schema.EnsureTable(ctx, def); err != nil {
			return err
		}
		log.Printf("📦 Table ready: %s (%s)", def.TableName, def.Name)
	}
	return nil
}
