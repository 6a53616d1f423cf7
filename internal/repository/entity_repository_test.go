package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduverse/portal-api/internal/models"
	"github.com/eduverse/portal-api/internal/query"
	"github.com/eduverse/portal-api/internal/schema"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	cleanup := func() {
		_ = sqlxDB.Close()
		db.Close()
	}
	return sqlxDB, mock, cleanup
}

func assignmentColumns() []string {
	return []string{"id", "title", "description", "subject", "faculty_name", "due_date", "total_marks", "department", "year", "created_at"}
}

func TestEntityRepositoryGetByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository[models.Assignment](db, schema.Lookup("assignments"))

	rows := sqlmock.NewRows(assignmentColumns()).
		AddRow(int64(4), "DBMS Assignment 1", "Normalization", "DBMS", "Dr. Rao", "2024-04-01", int64(50), "CSE", int64(3), "2024-03-01T10:30:00Z")

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, description, subject, faculty_name, due_date, total_marks, department, year, created_at FROM assignments WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(rows)

	item, err := repo.GetByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), item.ID)
	assert.Equal(t, "DBMS Assignment 1", item.Title)
	assert.Equal(t, int64(50), item.TotalMarks)
}

func TestEntityRepositoryGetByIDNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository[models.Assignment](db, schema.Lookup("assignments"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestEntityRepositoryListDefaultOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository[models.Assignment](db, schema.Lookup("assignments"))

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, description, subject, faculty_name, due_date, total_marks, department, year, created_at FROM assignments WHERE 1=1 ORDER BY due_date ASC LIMIT 50 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows(assignmentColumns()))

	items, err := repo.List(context.Background(), query.Filter{Limit: 50})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestEntityRepositoryListSearchAndExactMatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	entity := schema.Lookup("resources")
	repo := NewEntityRepository[models.Resource](db, entity)

	typeField, ok := entity.Field("type")
	require.True(t, ok)

	rows := sqlmock.NewRows([]string{"id", "title", "type", "subject", "uploaded_by", "upload_date", "url", "department", "created_at"}).
		AddRow(int64(1), "DBMS Notes", "pdf", "DBMS", "Dr. Rao", "2024-03-01", "https://files.example.com/dbms.pdf", "CSE", "2024-03-01T10:30:00Z")

	// one search argument shared across the OR clauses, exact match after
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, title, type, subject, uploaded_by, upload_date, url, department, created_at FROM resources WHERE 1=1 AND (LOWER(title) LIKE $1 OR LOWER(subject) LIKE $1) AND type = $2 ORDER BY upload_date DESC LIMIT 10 OFFSET 5")).
		WithArgs("%dbms%", "pdf").
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), query.Filter{
		Search: "DBMS",
		Equals: []query.Match{{Field: typeField, Value: "pdf"}},
		Limit:  10,
		Offset: 5,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "DBMS Notes", items[0].Title)
}

func TestEntityRepositoryListSearchEscapesWildcards(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository[models.Notice](db, schema.Lookup("notices"))

	// % and _ in the term must match literally, not as LIKE wildcards
	mock.ExpectQuery(regexp.QuoteMeta("(LOWER(title) LIKE $1 OR LOWER(content) LIKE $1)")).
		WithArgs(`%100\% attendance\_required%`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "author", "author_role", "department", "priority", "created_at"}))

	_, err := repo.List(context.Background(), query.Filter{Search: "100% attendance_required", Limit: 50})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityRepositoryListTimetableOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository[models.TimetableEntry](db, schema.Lookup("timetable"))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY day ASC, time ASC LIMIT 50 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "day", "time", "subject", "faculty", "room", "type", "created_at"}))

	_, err := repo.List(context.Background(), query.Filter{Limit: 50})
	require.NoError(t, err)
}

func TestEntityRepositoryInsertReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository[models.Notice](db, schema.Lookup("notices"))

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO notices (title, content, author, author_role, department, priority, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id")).
		WithArgs("Exam schedule", "Finals begin May 5th", "Dean Office", "admin", "CSE", "high", "2024-03-01T10:30:00Z").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Insert(context.Background(), map[string]interface{}{
		"title":      "Exam schedule",
		"content":    "Finals begin May 5th",
		"author":     "Dean Office",
		"authorRole": "admin",
		"department": "CSE",
		"priority":   "high",
		"createdAt":  "2024-03-01T10:30:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestEntityRepositoryUpdateBuildsSetClause(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository[models.Submission](db, schema.Lookup("submissions"))

	// columns follow schema declaration order regardless of map iteration
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE submissions SET grade = $1, status = $2 WHERE id = $3")).
		WithArgs(int64(95), "graded", int64(12)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), 12, map[string]interface{}{
		"status": "graded",
		"grade":  int64(95),
	})
	require.NoError(t, err)
}

func TestEntityRepositoryUpdateEmptyPatchIsNoOp(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository[models.Submission](db, schema.Lookup("submissions"))

	err := repo.Update(context.Background(), 12, map[string]interface{}{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntityRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEntityRepository[models.Assignment](db, schema.Lookup("assignments"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignments WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}
