package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tabdeck/backend/internal/domain/models"
	"github.com/tabdeck/backend/pkg/fieldtypes"
	"github.com/tabdeck/backend/pkg/utils"
)

// SchemaOps creates the storage tables the entity catalog declares.
// Tables are created at bootstrap, never altered at runtime.
type SchemaOps struct {
	db *sql.DB
}

// NewSchemaOps creates a new SchemaOps
func NewSchemaOps(db *sql.DB) *SchemaOps {
	return &SchemaOps{db: db}
}

// EnsureTable creates the table for def when it does not exist yet.
// Layout: autoincrement integer id, one column per declared field, and
// created_at/updated_at maintained by the facade.
func (s *SchemaOps) EnsureTable(ctx context.Context, def *models.EntityDefinition) error {
	columns := []string{`"id" INTEGER PRIMARY KEY AUTOINCREMENT`}

	types := fieldtypes.GetRegistry()
	for _, field := range def.Fields {
		ft, ok := types.Get(field.Type)
		if !ok {
			return fmt.Errorf("entity %s field %s: unknown type %s", def.Name, field.Name, field.Type)
		}

		col := fmt.Sprintf(`"%s" %s`, field.Name, ft.SQLType())
		if clause := defaultClause(field, ft); clause != "" {
			col += " " + clause
		}
		columns = append(columns, col)
	}

	columns = append(columns,
		`"created_at" TIMESTAMP DEFAULT CURRENT_TIMESTAMP`,
		`"updated_at" TIMESTAMP DEFAULT CURRENT_TIMESTAMP`,
	)

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS \"%s\" (%s)", def.TableName, strings.Join(columns, ", "))
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create table %s: %w", def.TableName, err)
	}
	return nil
}

// defaultClause renders a DEFAULT expression for a column. Text columns
// without a declared default fall back to the empty string so reads never
// see NULL where the registry promises a string.
func defaultClause(field models.FieldDefinition, ft fieldtypes.FieldType) string {
	if field.Default == nil {
		if field.Type == fieldtypes.TypeString {
			return "DEFAULT ''"
		}
		return ""
	}

	switch v := field.Default.(type) {
	case string:
		return fmt.Sprintf("DEFAULT '%s'", strings.ReplaceAll(v, "'", "''"))
	case bool:
		if v {
			return "DEFAULT 1"
		}
		return "DEFAULT 0"
	default:
		return fmt.Sprintf("DEFAULT %v", utils.ToInt64(v))
	}
}
