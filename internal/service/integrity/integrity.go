// Package integrity runs read-only referential sweeps over the record
// collections. Because cascades are multi-step and non-transactional, an
// interrupted cascade can leave records behind; the sweep counts them and
// stores a snapshot so the gap is visible without any automatic repair.
package integrity

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/repository/store"
)

// Checker scans for work and payment records referencing absent workers.
type Checker struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
}

// New wires an integrity checker.
func New(st store.Store, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{store: st, logger: logger, now: time.Now}
}

// Sweep counts orphaned records and persists the snapshot. The snapshot ID
// is the run timestamp, so repeated sweeps build a history.
func (c *Checker) Sweep(ctx context.Context) (models.IntegritySnapshot, error) {
	var workers []models.Worker
	if err := c.store.List(ctx, store.Workers, &workers); err != nil {
		return models.IntegritySnapshot{}, fmt.Errorf("failed to load workers: %w", err)
	}

	known := make(map[string]struct{}, len(workers))
	for _, w := range workers {
		known[w.ID] = struct{}{}
	}

	var works []models.WorkRecord
	if err := c.store.List(ctx, store.Works, &works); err != nil {
		return models.IntegritySnapshot{}, fmt.Errorf("failed to load work records: %w", err)
	}
	var payments []models.PaymentRecord
	if err := c.store.List(ctx, store.Payments, &payments); err != nil {
		return models.IntegritySnapshot{}, fmt.Errorf("failed to load payment records: %w", err)
	}

	snapshot := models.IntegritySnapshot{
		RunAt:          c.now().UTC(),
		Workers:        len(workers),
		WorkRecords:    len(works),
		PaymentRecords: len(payments),
	}
	for _, r := range works {
		if _, ok := known[r.WorkerID]; !ok {
			snapshot.OrphanedWork++
		}
	}
	for _, r := range payments {
		if _, ok := known[r.WorkerID]; !ok {
			snapshot.OrphanedPayment++
		}
	}

	id := snapshot.RunAt.Format(time.RFC3339)
	if err := c.store.Put(ctx, store.IntegrityReports, id, snapshot); err != nil {
		return snapshot, fmt.Errorf("failed to save integrity snapshot: %w", err)
	}

	if snapshot.OrphanedWork > 0 || snapshot.OrphanedPayment > 0 {
		c.logger.Warn("orphaned records detected",
			zap.Int("orphaned_work", snapshot.OrphanedWork),
			zap.Int("orphaned_payments", snapshot.OrphanedPayment))
	} else {
		c.logger.Info("integrity sweep clean",
			zap.Int("workers", snapshot.Workers),
			zap.Int("work_records", snapshot.WorkRecords),
			zap.Int("payment_records", snapshot.PaymentRecords))
	}

	return snapshot, nil
}
