package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/service/registry"
)

// WorkerHandler exposes the worker registry over HTTP.
type WorkerHandler struct {
	registry *registry.Service
	logger   *zap.Logger
}

// NewWorkerHandler constructs the worker HTTP adapter.
func NewWorkerHandler(reg *registry.Service, logger *zap.Logger) *WorkerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerHandler{registry: reg, logger: logger}
}

type createWorkerRequest struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	JobRole string `json:"jobRole"`
}

// List returns all workers ordered by name.
func (h *WorkerHandler) List(c *gin.Context) {
	workers, err := h.registry.ListWorkers(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing workers", zap.Error(err))
		fail(c, err, "Workers not found")
		return
	}
	ok(c, "", workers)
}

// Get returns a single worker.
func (h *WorkerHandler) Get(c *gin.Context) {
	worker, err := h.registry.GetWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err, "Worker not found")
		return
	}
	ok(c, "", worker)
}

// Create adds a new worker.
func (h *WorkerHandler) Create(c *gin.Context) {
	var req createWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	worker, err := h.registry.AddWorker(c.Request.Context(), req.ID, req.Name, req.JobRole)
	if err != nil {
		fail(c, err, "Worker not found")
		return
	}
	ok(c, "Worker added successfully", worker)
}

// Update applies a partial worker edit, including ID renames.
func (h *WorkerHandler) Update(c *gin.Context) {
	var req models.WorkerUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if err := h.registry.UpdateWorker(c.Request.Context(), c.Param("id"), req); err != nil {
		h.logger.Warn("worker update failed", zap.String("worker_id", c.Param("id")), zap.Error(err))
		fail(c, err, "Worker not found")
		return
	}
	ok(c, "Worker updated successfully", nil)
}

// Delete removes a worker and all its records.
func (h *WorkerHandler) Delete(c *gin.Context) {
	if err := h.registry.DeleteWorker(c.Request.Context(), c.Param("id")); err != nil {
		h.logger.Warn("worker delete failed", zap.String("worker_id", c.Param("id")), zap.Error(err))
		fail(c, err, "Worker not found")
		return
	}
	ok(c, "Worker and all related records deleted successfully", nil)
}
