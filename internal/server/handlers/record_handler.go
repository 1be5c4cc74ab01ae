package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/service/ledger"
)

// RecordHandler exposes work and payment record operations over HTTP.
type RecordHandler struct {
	ledger *ledger.Service
	logger *zap.Logger
}

// NewRecordHandler constructs the record HTTP adapter.
func NewRecordHandler(svc *ledger.Service, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{ledger: svc, logger: logger}
}

type createWorkRequest struct {
	WorkerID     string  `json:"workerId"`
	Date         string  `json:"date"`
	WorkType     string  `json:"workType"`
	EarnedAmount float64 `json:"earnedAmount"`
}

type createPaymentRequest struct {
	WorkerID    string  `json:"workerId"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	PaymentType string  `json:"paymentType"`
	Note        string  `json:"note"`
}

// CreateWork adds a work record.
func (h *RecordHandler) CreateWork(c *gin.Context) {
	var req createWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	record, err := h.ledger.AddWorkRecord(c.Request.Context(), req.WorkerID, req.Date, req.WorkType, req.EarnedAmount)
	if err != nil {
		fail(c, err, "Worker not found")
		return
	}
	ok(c, "Work record added successfully", record)
}

// GetWork returns a single work record.
func (h *RecordHandler) GetWork(c *gin.Context) {
	record, err := h.ledger.GetWorkRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Work record not found")
		return
	}
	ok(c, "", record)
}

// UpdateWork applies a partial work record edit.
func (h *RecordHandler) UpdateWork(c *gin.Context) {
	var req models.WorkRecordUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if err := h.ledger.UpdateWorkRecord(c.Request.Context(), c.Param("id"), req); err != nil {
		fail(c, err, "Work record not found")
		return
	}
	ok(c, "Work record updated successfully", nil)
}

// DeleteWork removes a single work record.
func (h *RecordHandler) DeleteWork(c *gin.Context) {
	if err := h.ledger.DeleteWorkRecord(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Work record not found")
		return
	}
	ok(c, "Work record deleted successfully", nil)
}

// ListWorkByWorker returns a worker's work records, newest first.
func (h *RecordHandler) ListWorkByWorker(c *gin.Context) {
	records, err := h.ledger.WorkRecordsByWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed listing work records", zap.Error(err))
		fail(c, err, "Worker not found")
		return
	}
	ok(c, "", records)
}

// ListWork returns every work record, newest first.
func (h *RecordHandler) ListWork(c *gin.Context) {
	records, err := h.ledger.AllWorkRecords(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing work records", zap.Error(err))
		fail(c, err, "Work records not found")
		return
	}
	ok(c, "", records)
}

// CreatePayment adds a payment record.
func (h *RecordHandler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	record, err := h.ledger.AddPaymentRecord(c.Request.Context(), req.WorkerID, req.Date, req.Amount, req.PaymentType, req.Note)
	if err != nil {
		fail(c, err, "Worker not found")
		return
	}
	ok(c, "Payment record added successfully", record)
}

// GetPayment returns a single payment record.
func (h *RecordHandler) GetPayment(c *gin.Context) {
	record, err := h.ledger.GetPaymentRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Payment record not found")
		return
	}
	ok(c, "", record)
}

// UpdatePayment applies a partial payment record edit.
func (h *RecordHandler) UpdatePayment(c *gin.Context) {
	var req models.PaymentRecordUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if err := h.ledger.UpdatePaymentRecord(c.Request.Context(), c.Param("id"), req); err != nil {
		fail(c, err, "Payment record not found")
		return
	}
	ok(c, "Payment record updated successfully", nil)
}

// DeletePayment removes a single payment record.
func (h *RecordHandler) DeletePayment(c *gin.Context) {
	if err := h.ledger.DeletePaymentRecord(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err, "Payment record not found")
		return
	}
	ok(c, "Payment record deleted successfully", nil)
}

// ListPaymentsByWorker returns a worker's payments, newest first.
func (h *RecordHandler) ListPaymentsByWorker(c *gin.Context) {
	records, err := h.ledger.PaymentsByWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed listing payment records", zap.Error(err))
		fail(c, err, "Worker not found")
		return
	}
	ok(c, "", records)
}

// ListPayments returns every payment record, newest first.
func (h *RecordHandler) ListPayments(c *gin.Context) {
	records, err := h.ledger.AllPayments(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing payment records", zap.Error(err))
		fail(c, err, "Payment records not found")
		return
	}
	ok(c, "", records)
}
