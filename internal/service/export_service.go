package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/eduverse/portal-api/internal/models"
	"github.com/eduverse/portal-api/internal/query"
	"github.com/eduverse/portal-api/internal/schema"
	appErrors "github.com/eduverse/portal-api/pkg/errors"
	"github.com/eduverse/portal-api/pkg/export"
)

// exportBatchSize bounds one export; well above any current class size.
const exportBatchSize = 1000

var exportColumns = []string{"ID", "Assignment ID", "Student ID", "Student Name", "Submitted Date", "Grade", "Status"}

type submissionLister interface {
	List(ctx context.Context, f query.Filter) ([]models.Submission, error)
}

// ExportService renders submission rosters as CSV or PDF downloads.
type ExportService struct {
	repo   submissionLister
	logger *zap.Logger
}

// ExportResult carries the rendered document and its download metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// NewExportService constructs the service.
func NewExportService(repo submissionLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{repo: repo, logger: logger}
}

// Export renders the submissions for an assignment (or all submissions when
// no assignment is given) in the requested format. Format defaults to csv.
func (s *ExportService) Export(ctx context.Context, rawAssignmentID, format string) (*ExportResult, error) {
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		return nil, appErrors.InvalidField("format", "Format must be one of: csv, pdf")
	}

	filter := query.Filter{Limit: exportBatchSize}
	if rawAssignmentID != "" {
		id, err := strconv.ParseInt(rawAssignmentID, 10, 64)
		if err != nil || id <= 0 {
			return nil, appErrors.InvalidField("assignmentId", "Assignment ID must be a positive integer")
		}
		entity := schema.Lookup("submissions")
		field, _ := entity.Field("assignmentId")
		filter.Equals = append(filter.Equals, query.Match{Field: field, Value: id})
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err)
	}

	table := export.Table{
		Title:   exportTitle(rawAssignmentID),
		Columns: exportColumns,
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, sub := range rows {
		grade := ""
		if sub.Grade != nil {
			grade = strconv.FormatInt(*sub.Grade, 10)
		}
		table.Rows = append(table.Rows, []string{
			strconv.FormatInt(sub.ID, 10),
			strconv.FormatInt(sub.AssignmentID, 10),
			sub.StudentID,
			sub.StudentName,
			sub.SubmittedDate,
			grade,
			sub.Status,
		})
	}

	switch format {
	case "pdf":
		content, err := export.PDF(table)
		if err != nil {
			return nil, appErrors.Internal(err)
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: exportFilename(rawAssignmentID, "pdf")}, nil
	default:
		content, err := export.CSV(table)
		if err != nil {
			return nil, appErrors.Internal(err)
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: exportFilename(rawAssignmentID, "csv")}, nil
	}
}

func exportTitle(assignmentID string) string {
	if assignmentID == "" {
		return "Submissions"
	}
	return "Submissions for assignment " + assignmentID
}

func exportFilename(assignmentID, ext string) string {
	if assignmentID == "" {
		return "submissions." + ext
	}
	return fmt.Sprintf("submissions-assignment-%s.%s", assignmentID, ext)
}
