package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_Select(t *testing.T) {
	q := From("tasks").
		Select([]string{"id", "title", "status"}).
		WhereEq("status", "pending").
		OrderBy("created_at", "desc").
		Limit(10).
		Offset(20).
		Build()

	assert.Equal(t, `SELECT "id", "title", "status" FROM "tasks" WHERE "status" = ? ORDER BY "created_at" DESC LIMIT 10 OFFSET 20`, q.SQL)
	assert.Equal(t, []interface{}{"pending"}, q.Params)
}

func TestBuilder_SelectStar(t *testing.T) {
	q := From("notes").Build()
	assert.Equal(t, `SELECT * FROM "notes"`, q.SQL)
	assert.Empty(t, q.Params)
}

func TestBuilder_SelectCount(t *testing.T) {
	q := From("tasks").SelectCount().WhereEq("status", "pending").Build()
	assert.Equal(t, `SELECT COUNT(*) FROM "tasks" WHERE "status" = ?`, q.SQL)
	assert.Equal(t, []interface{}{"pending"}, q.Params)
}

func TestBuilder_OffsetWithoutLimit(t *testing.T) {
	// OFFSET is only valid alongside LIMIT and must be suppressed alone
	q := From("tasks").Offset(5).Build()
	assert.Equal(t, `SELECT * FROM "tasks"`, q.SQL)
}

func TestBuilder_OrderByDirectionSanitized(t *testing.T) {
	q := From("tasks").OrderBy("title", "drop table").Build()
	assert.Contains(t, q.SQL, `ORDER BY "title" ASC`)
}

func TestBuilder_Insert(t *testing.T) {
	q := Insert("tasks", map[string]interface{}{
		"title":  "write report",
		"status": "pending",
	}).Build()

	// Columns come out in sorted key order
	assert.Equal(t, `INSERT INTO "tasks" ("status", "title") VALUES (?, ?)`, q.SQL)
	assert.Equal(t, []interface{}{"pending", "write report"}, q.Params)
}

func TestBuilder_Update(t *testing.T) {
	q := Update("tasks").
		Set(map[string]interface{}{"status": "completed"}).
		WhereEq("id", int64(7)).
		Build()

	assert.Equal(t, `UPDATE "tasks" SET "status" = ? WHERE "id" = ?`, q.SQL)
	assert.Equal(t, []interface{}{"completed", int64(7)}, q.Params)
}

func TestBuilder_Delete(t *testing.T) {
	q := Delete("tasks").WhereEq("id", int64(3)).Build()
	assert.Equal(t, `DELETE FROM "tasks" WHERE "id" = ?`, q.SQL)
	assert.Equal(t, []interface{}{int64(3)}, q.Params)
}

func TestBuilder_MultipleWhere(t *testing.T) {
	q := From("tasks").
		WhereEq("status", "pending").
		WhereEq("title", "a").
		Build()

	assert.Equal(t, `SELECT * FROM "tasks" WHERE "status" = ? AND "title" = ?`, q.SQL)
	assert.Equal(t, []interface{}{"pending", "a"}, q.Params)
}
