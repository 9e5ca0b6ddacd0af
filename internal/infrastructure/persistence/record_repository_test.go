package persistence

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabdeck/backend/internal/domain/models"
)

func newMockRepo(t *testing.T) (*RecordRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRecordRepository(db), mock
}

func TestRecordRepository_Find(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id", "title" FROM "tasks" WHERE "status" = ? ORDER BY "created_at" DESC LIMIT 10`)).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(int64(1), "first").
			AddRow(int64(2), "second"))

	records, err := repo.Find(context.Background(), "tasks", []string{"id", "title"},
		map[string]interface{}{"status": "pending"}, "created_at", "DESC", 10, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0]["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Find_FilterOrderIsStable(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Filters are applied in sorted key order regardless of map iteration
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tasks" WHERE "a" = ? AND "b" = ? LIMIT 5`)).
		WithArgs("1", "2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.Find(context.Background(), "tasks", nil,
		map[string]interface{}{"b": "2", "a": "1"}, "", "", 5, 0)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_FindOne_Absent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "tasks" WHERE "id" = ? LIMIT 1`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	record, err := repo.FindOne(context.Background(), "tasks", []string{"id"}, 99)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Insert(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "tasks" ("status", "title") VALUES (?, ?)`)).
		WithArgs("pending", "write tests").
		WillReturnResult(sqlmock.NewResult(42, 1))

	id, err := repo.Insert(context.Background(), "tasks", models.Record{
		"title":  "write tests",
		"status": "pending",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Update(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "tasks" SET "status" = ? WHERE "id" = ?`)).
		WithArgs("completed", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Update(context.Background(), "tasks", 7, models.Record{"status": "completed"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Delete_NoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "tasks" WHERE "id" = ?`)).
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.Delete(context.Background(), "tasks", 404)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Count(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "tasks" WHERE "status" = ?`)).
		WithArgs("pending").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(3)))

	count, err := repo.Count(context.Background(), "tasks", map[string]interface{}{"status": "pending"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRepository_Exists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "tasks" WHERE "id" = ? LIMIT 1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	exists, err := repo.Exists(context.Background(), "tasks", 1)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
