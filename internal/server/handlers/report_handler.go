package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kavinduj/workboard/internal/export/pdf"
	"github.com/kavinduj/workboard/internal/service/reporting"
)

// ReportHandler serves assembled ledger reports as JSON or PDF.
type ReportHandler struct {
	reporting *reporting.Service
	exporter  *pdf.Exporter
	logger    *zap.Logger
}

// NewReportHandler constructs the report HTTP adapter.
func NewReportHandler(svc *reporting.Service, exporter *pdf.Exporter, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reporting: svc, exporter: exporter, logger: logger}
}

// WorkerStatement returns one worker's full ledger view as JSON.
func (h *ReportHandler) WorkerStatement(c *gin.Context) {
	statement, err := h.reporting.WorkerStatement(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Worker not found")
		return
	}
	ok(c, "", statement)
}

// WorkerStatementPDF returns one worker's report as a paginated PDF.
func (h *ReportHandler) WorkerStatementPDF(c *gin.Context) {
	statement, err := h.reporting.WorkerStatement(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Worker not found")
		return
	}

	doc, err := h.exporter.WorkerStatement(statement)
	if err != nil {
		h.logger.Error("failed rendering worker pdf", zap.String("worker_id", c.Param("id")), zap.Error(err))
		fail(c, err, "Worker not found")
		return
	}

	filename := fmt.Sprintf("worker-%s.pdf", statement.Worker.ID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", doc)
}

// Summary returns the all-workers summary as JSON.
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reporting.Summary(c.Request.Context())
	if err != nil {
		h.logger.Error("failed building summary", zap.Error(err))
		fail(c, err, "Workers not found")
		return
	}
	ok(c, "", summary)
}

// SummaryPDF returns the all-workers report as a paginated PDF with a
// grand-total row.
func (h *ReportHandler) SummaryPDF(c *gin.Context) {
	summary, err := h.reporting.Summary(c.Request.Context())
	if err != nil {
		h.logger.Error("failed building summary", zap.Error(err))
		fail(c, err, "Workers not found")
		return
	}

	doc, err := h.exporter.Summary(summary)
	if err != nil {
		h.logger.Error("failed rendering summary pdf", zap.Error(err))
		fail(c, err, "Workers not found")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="all-workers.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
