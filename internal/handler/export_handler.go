package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduverse/portal-api/internal/service"
	"github.com/eduverse/portal-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, rawAssignmentID, format string) (*service.ExportResult, error)
}

// ExportHandler serves tabular submission downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Submissions godoc
// @Summary Export submissions as CSV or PDF
// @Tags Exports
// @Produce text/csv
// @Param assignmentId query int false "Restrict to one assignment"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Router /submissions/export [get]
func (h *ExportHandler) Submissions(c *gin.Context) {
	result, err := h.service.Export(c.Request.Context(), c.Query("assignmentId"), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
