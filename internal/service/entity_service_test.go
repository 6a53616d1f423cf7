package service

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduverse/portal-api/internal/models"
	"github.com/eduverse/portal-api/internal/query"
	"github.com/eduverse/portal-api/internal/schema"
	appErrors "github.com/eduverse/portal-api/pkg/errors"
)

// mockRepo is an in-memory stand-in for the storage layer that records the
// calls the service makes.
type mockRepo[T any] struct {
	records map[int64]T
	nextID  int64
	listErr error

	insertedRecord  map[string]interface{}
	updatedPatch    map[string]interface{}
	updateCalled    bool
	deleteCalled    bool
	listFilter      query.Filter
	fromRecord      func(id int64, record map[string]interface{}) T
	applyPatch      func(row T, patch map[string]interface{}) T
	listReturnsNone bool
}

func (m *mockRepo[T]) GetByID(_ context.Context, id int64) (*T, error) {
	row, ok := m.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

func (m *mockRepo[T]) List(_ context.Context, f query.Filter) ([]T, error) {
	m.listFilter = f
	if m.listErr != nil {
		return nil, m.listErr
	}
	if m.listReturnsNone {
		return nil, nil
	}
	out := make([]T, 0, len(m.records))
	for _, row := range m.records {
		out = append(out, row)
	}
	return out, nil
}

func (m *mockRepo[T]) Insert(_ context.Context, record map[string]interface{}) (int64, error) {
	m.insertedRecord = record
	m.nextID++
	m.records[m.nextID] = m.fromRecord(m.nextID, record)
	return m.nextID, nil
}

func (m *mockRepo[T]) Update(_ context.Context, id int64, patch map[string]interface{}) error {
	m.updateCalled = true
	m.updatedPatch = patch
	if m.applyPatch != nil {
		m.records[id] = m.applyPatch(m.records[id], patch)
	}
	return nil
}

func (m *mockRepo[T]) Delete(_ context.Context, id int64) error {
	m.deleteCalled = true
	delete(m.records, id)
	return nil
}

func newAssignmentRepo() *mockRepo[models.Assignment] {
	return &mockRepo[models.Assignment]{
		records: map[int64]models.Assignment{},
		fromRecord: func(id int64, record map[string]interface{}) models.Assignment {
			return models.Assignment{
				ID:        id,
				Title:     record["title"].(string),
				Subject:   record["subject"].(string),
				CreatedAt: record["createdAt"].(string),
			}
		},
	}
}

func newSubmissionRepo() *mockRepo[models.Submission] {
	return &mockRepo[models.Submission]{
		records: map[int64]models.Submission{},
		applyPatch: func(row models.Submission, patch map[string]interface{}) models.Submission {
			if grade, ok := patch["grade"].(int64); ok {
				row.Grade = &grade
			}
			if status, ok := patch["status"].(string); ok {
				row.Status = status
			}
			return row
		},
	}
}

func appError(t *testing.T, err error) *appErrors.Error {
	t.Helper()
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr), "expected a typed error, got %v", err)
	return appErr
}

func TestEntityServiceGetMalformedID(t *testing.T) {
	repo := newAssignmentRepo()
	svc := NewEntityService[models.Assignment](schema.Lookup("assignments"), repo, nil, nil, nil)

	for _, raw := range []string{"", "abc", "0", "-3", "1.5"} {
		_, err := svc.Get(context.Background(), raw)
		require.Error(t, err, "id %q", raw)
		appErr := appError(t, err)
		assert.Equal(t, 404, appErr.Status)
		assert.Equal(t, "Assignment not found", appErr.Message)
	}
}

func TestEntityServiceGetNotFound(t *testing.T) {
	repo := newAssignmentRepo()
	svc := NewEntityService[models.Assignment](schema.Lookup("assignments"), repo, nil, nil, nil)

	_, err := svc.Get(context.Background(), "42")
	appErr := appError(t, err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Equal(t, "Assignment not found", appErr.Message)
}

func TestEntityServiceCreateAndGet(t *testing.T) {
	repo := newAssignmentRepo()
	svc := NewEntityService[models.Assignment](schema.Lookup("assignments"), repo, nil, nil, nil)

	created, err := svc.Create(context.Background(), map[string]interface{}{
		"title":       "  DBMS Assignment 1 ",
		"description": "Normalization exercises",
		"subject":     "DBMS",
		"facultyName": "Dr. Rao",
		"dueDate":     "2024-04-01",
		"totalMarks":  float64(50),
		"department":  "CSE",
		"year":        float64(3),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "DBMS Assignment 1", created.Title)
	assert.NotEmpty(t, created.CreatedAt)

	// the stored record carries the sanitized values
	assert.Equal(t, "DBMS Assignment 1", repo.insertedRecord["title"])
	assert.Equal(t, int64(50), repo.insertedRecord["totalMarks"])

	got, err := svc.Get(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestEntityServiceCreateValidationShortCircuits(t *testing.T) {
	repo := newAssignmentRepo()
	svc := NewEntityService[models.Assignment](schema.Lookup("assignments"), repo, nil, nil, nil)

	_, err := svc.Create(context.Background(), map[string]interface{}{"title": "only a title"})
	appErr := appError(t, err)
	assert.Equal(t, 400, appErr.Status)
	assert.Nil(t, repo.insertedRecord)
}

func TestEntityServiceListEmptySliceNotNil(t *testing.T) {
	repo := newAssignmentRepo()
	repo.listReturnsNone = true
	svc := NewEntityService[models.Assignment](schema.Lookup("assignments"), repo, nil, nil, nil)

	rows, err := svc.List(context.Background(), url.Values{})
	require.NoError(t, err)
	require.NotNil(t, rows)
	assert.Empty(t, rows)
	assert.Equal(t, query.DefaultLimit, repo.listFilter.Limit)
}

func TestEntityServiceListWrapsStoreFailure(t *testing.T) {
	repo := newAssignmentRepo()
	repo.listErr = errors.New("connection refused")
	svc := NewEntityService[models.Assignment](schema.Lookup("assignments"), repo, nil, nil, nil)

	_, err := svc.List(context.Background(), url.Values{})
	appErr := appError(t, err)
	assert.Equal(t, 500, appErr.Status)
	assert.Equal(t, "Internal server error: connection refused", appErr.Message)
}

func TestEntityServiceUpdateMissingRecord(t *testing.T) {
	repo := newSubmissionRepo()
	svc := NewEntityService[models.Submission](schema.Lookup("submissions"), repo, nil, nil, nil)

	_, err := svc.Update(context.Background(), "42", map[string]interface{}{"status": "late"})
	appErr := appError(t, err)
	assert.Equal(t, "Submission not found", appErr.Message)
	assert.False(t, repo.updateCalled)
}

func TestEntityServiceUpdateGradeForcesStatus(t *testing.T) {
	repo := newSubmissionRepo()
	repo.records[12] = models.Submission{ID: 12, StudentName: "Asha Verma", Status: "submitted"}
	svc := NewEntityService[models.Submission](schema.Lookup("submissions"), repo, nil, nil, nil)

	updated, err := svc.Update(context.Background(), "12", map[string]interface{}{
		"grade":  float64(95),
		"status": "late",
	})
	require.NoError(t, err)
	assert.Equal(t, "graded", repo.updatedPatch["status"])
	assert.Equal(t, int64(95), repo.updatedPatch["grade"])
	assert.Equal(t, "graded", updated.Status)
	require.NotNil(t, updated.Grade)
	assert.Equal(t, int64(95), *updated.Grade)
}

func TestEntityServiceDeleteReturnsRecord(t *testing.T) {
	repo := newAssignmentRepo()
	repo.records[4] = models.Assignment{ID: 4, Title: "DBMS Assignment 1"}
	svc := NewEntityService[models.Assignment](schema.Lookup("assignments"), repo, nil, nil, nil)

	record, err := svc.Delete(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, "DBMS Assignment 1", record.Title)
	assert.True(t, repo.deleteCalled)
	assert.NotContains(t, repo.records, int64(4))
}

func TestEntityServiceDeleteMissingRecord(t *testing.T) {
	repo := newAssignmentRepo()
	svc := NewEntityService[models.Assignment](schema.Lookup("assignments"), repo, nil, nil, nil)

	_, err := svc.Delete(context.Background(), "4")
	appErr := appError(t, err)
	assert.Equal(t, 404, appErr.Status)
	assert.False(t, repo.deleteCalled)
}
