package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduverse/portal-api/internal/models"
	"github.com/eduverse/portal-api/internal/query"
)

type stubSubmissionLister struct {
	rows   []models.Submission
	err    error
	filter query.Filter
}

func (s *stubSubmissionLister) List(_ context.Context, f query.Filter) ([]models.Submission, error) {
	s.filter = f
	return s.rows, s.err
}

func sampleSubmissions() []models.Submission {
	grade := int64(88)
	return []models.Submission{
		{ID: 1, AssignmentID: 12, StudentID: "CSE2021-042", StudentName: "Asha Verma", SubmittedDate: "2024-03-28", Grade: &grade, Status: "graded"},
		{ID: 2, AssignmentID: 12, StudentID: "CSE2021-051", StudentName: "Rohan Mehta", SubmittedDate: "2024-03-29", Status: "submitted"},
	}
}

func TestExportServiceCSV(t *testing.T) {
	lister := &stubSubmissionLister{rows: sampleSubmissions()}
	svc := NewExportService(lister, nil)

	result, err := svc.Export(context.Background(), "12", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "submissions-assignment-12.csv", result.Filename)

	lines := strings.Split(strings.TrimSpace(string(result.Content)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Assignment ID,Student ID,Student Name,Submitted Date,Grade,Status", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Asha Verma")
	assert.Contains(t, lines[1], "88")
	// ungraded submissions render an empty grade cell
	assert.Contains(t, lines[2], ",,")

	// the assignment filter reaches the storage layer typed
	require.Len(t, lister.filter.Equals, 1)
	assert.Equal(t, int64(12), lister.filter.Equals[0].Value)
	assert.Equal(t, "assignmentId", lister.filter.Equals[0].Field.Name)
}

func TestExportServiceCSVAllSubmissions(t *testing.T) {
	lister := &stubSubmissionLister{rows: sampleSubmissions()}
	svc := NewExportService(lister, nil)

	result, err := svc.Export(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, "submissions.csv", result.Filename)
	assert.Empty(t, lister.filter.Equals)
	assert.Equal(t, exportBatchSize, lister.filter.Limit)
}

func TestExportServicePDF(t *testing.T) {
	lister := &stubSubmissionLister{rows: sampleSubmissions()}
	svc := NewExportService(lister, nil)

	result, err := svc.Export(context.Background(), "12", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, "submissions-assignment-12.pdf", result.Filename)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportServiceInvalidFormat(t *testing.T) {
	svc := NewExportService(&stubSubmissionLister{}, nil)

	_, err := svc.Export(context.Background(), "", "xlsx")
	appErr := appError(t, err)
	assert.Equal(t, "INVALID_FORMAT", appErr.Code)
	assert.Equal(t, "Format must be one of: csv, pdf", appErr.Message)
}

func TestExportServiceInvalidAssignmentID(t *testing.T) {
	svc := NewExportService(&stubSubmissionLister{}, nil)

	for _, raw := range []string{"abc", "0", "-1"} {
		_, err := svc.Export(context.Background(), raw, "csv")
		appErr := appError(t, err)
		assert.Equal(t, "INVALID_ASSIGNMENT_ID", appErr.Code, "assignmentId %q", raw)
	}
}
