// Package cascade performs the multi-collection mutations triggered by a
// worker identity change or deletion. A cascade is a fixed sequence of
// batched steps; each step reaches the store as one unit but the sequence
// is deliberately not wrapped in a transaction. Steps are ordered so a
// mid-sequence failure leaves duplicate-but-reachable data rather than
// orphaned records.
package cascade

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/repository/store"
)

// Coordinator executes rename and delete cascades against the record store.
type Coordinator struct {
	store  store.Store
	logger *zap.Logger
}

// New wires a coordinator.
func New(st store.Store, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{store: st, logger: logger}
}

// docRef decodes only the document key from query results.
type docRef struct {
	ID string `bson:"_id"`
}

// Rename moves a worker identity from oldID to newID:
//
//  1. create the worker under newID, copying all fields including createdAt
//  2. re-point every work record from oldID to newID (one batch)
//  3. re-point every payment record from oldID to newID (one batch)
//  4. delete the worker at oldID
//
// The new identity and its records are established before the old identity
// is removed. Re-running a failed rename resumes: a worker already present
// at newID with fields identical to the source counts as step 1 done.
func (c *Coordinator) Rename(ctx context.Context, oldID, newID string) error {
	var src models.Worker
	if err := c.store.Get(ctx, store.Workers, oldID, &src); err != nil {
		return err
	}

	moved := src
	moved.ID = newID

	if err := c.store.Insert(ctx, store.Workers, newID, moved); err != nil {
		if !errors.Is(err, models.ErrDuplicateID) {
			return &models.CascadeError{Op: "rename", Step: "create new worker", Err: err}
		}
		var existing models.Worker
		if getErr := c.store.Get(ctx, store.Workers, newID, &existing); getErr != nil {
			return &models.CascadeError{Op: "rename", Step: "create new worker", Err: getErr}
		}
		if existing.Name != src.Name || existing.JobRole != src.JobRole || !existing.CreatedAt.Equal(src.CreatedAt) {
			return models.ErrDuplicateID
		}
		c.logger.Info("resuming interrupted rename", zap.String("old_id", oldID), zap.String("new_id", newID))
	}

	works, err := c.repoint(ctx, store.Works, oldID, newID)
	if err != nil {
		return &models.CascadeError{Op: "rename", Step: "re-point work records", Err: err}
	}

	payments, err := c.repoint(ctx, store.Payments, oldID, newID)
	if err != nil {
		return &models.CascadeError{Op: "rename", Step: "re-point payment records", Err: err}
	}

	if err := c.store.Delete(ctx, store.Workers, oldID); err != nil {
		return &models.CascadeError{Op: "rename", Step: "delete old worker", Err: err}
	}

	c.logger.Info("worker renamed",
		zap.String("old_id", oldID),
		zap.String("new_id", newID),
		zap.Int("work_records", works),
		zap.Int("payment_records", payments))
	return nil
}

// Delete removes a worker and everything referencing it:
//
//  1. delete every work record for the worker (one batch)
//  2. delete every payment record for the worker (one batch)
//  3. delete the worker itself
//
// Referencing records go first so a mid-sequence failure leaves a worker
// with partially cleaned history, never records pointing at nothing.
func (c *Coordinator) Delete(ctx context.Context, id string) error {
	var worker models.Worker
	if err := c.store.Get(ctx, store.Workers, id, &worker); err != nil {
		return err
	}

	works, err := c.purge(ctx, store.Works, id)
	if err != nil {
		return &models.CascadeError{Op: "delete", Step: "delete work records", Err: err}
	}

	payments, err := c.purge(ctx, store.Payments, id)
	if err != nil {
		return &models.CascadeError{Op: "delete", Step: "delete payment records", Err: err}
	}

	if err := c.store.Delete(ctx, store.Workers, id); err != nil {
		return &models.CascadeError{Op: "delete", Step: "delete worker", Err: err}
	}

	c.logger.Info("worker deleted",
		zap.String("worker_id", id),
		zap.Int("work_records", works),
		zap.Int("payment_records", payments))
	return nil
}

func (c *Coordinator) repoint(ctx context.Context, collection, oldID, newID string) (int, error) {
	var refs []docRef
	if err := c.store.QueryByField(ctx, collection, "workerId", oldID, &refs); err != nil {
		return 0, err
	}
	if len(refs) == 0 {
		return 0, nil
	}

	batch := c.store.Batch()
	for _, ref := range refs {
		batch.Update(collection, ref.ID, map[string]any{"workerId": newID})
	}
	if err := batch.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to re-point %s: %w", collection, err)
	}
	return len(refs), nil
}

func (c *Coordinator) purge(ctx context.Context, collection, workerID string) (int, error) {
	var refs []docRef
	if err := c.store.QueryByField(ctx, collection, "workerId", workerID, &refs); err != nil {
		return 0, err
	}
	if len(refs) == 0 {
		return 0, nil
	}

	batch := c.store.Batch()
	for _, ref := range refs {
		batch.Delete(collection, ref.ID)
	}
	if err := batch.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to purge %s: %w", collection, err)
	}
	return len(refs), nil
}
