// Package registry owns worker identity: creation with uniqueness
// enforcement, lookup, locale-aware listing, and the edits that may trigger
// an identity cascade.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/repository/store"
)

// Cascader executes the multi-collection mutations a worker edit can require.
type Cascader interface {
	Rename(ctx context.Context, oldID, newID string) error
	Delete(ctx context.Context, id string) error
}

// Service implements the worker registry.
type Service struct {
	store    store.Store
	cascades Cascader
	logger   *zap.Logger
	now      func() time.Time
}

// New wires a worker registry.
func New(st store.Store, cascades Cascader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    st,
		cascades: cascades,
		logger:   logger,
		now:      time.Now,
	}
}

// AddWorker validates and persists a new worker. The ID is user-assigned;
// uniqueness is enforced by the store's atomic create-if-absent, so two
// concurrent adds of the same ID cannot both succeed.
func (s *Service) AddWorker(ctx context.Context, id, name, jobRole string) (models.Worker, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	jobRole = strings.TrimSpace(jobRole)

	if id == "" || name == "" || jobRole == "" {
		return models.Worker{}, models.ValidationError("All fields are required")
	}

	worker := models.Worker{
		ID:        id,
		Name:      name,
		JobRole:   jobRole,
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Insert(ctx, store.Workers, id, worker); err != nil {
		if errors.Is(err, models.ErrDuplicateID) {
			return models.Worker{}, models.ErrDuplicateID
		}
		return models.Worker{}, fmt.Errorf("failed to save worker: %w", err)
	}

	s.logger.Info("worker added", zap.String("worker_id", id))
	return worker, nil
}

// GetWorker returns the worker with the given ID.
func (s *Service) GetWorker(ctx context.Context, id string) (models.Worker, error) {
	var worker models.Worker
	if err := s.store.Get(ctx, store.Workers, id, &worker); err != nil {
		return models.Worker{}, err
	}
	return worker, nil
}

// ListWorkers returns all workers ordered by name ascending, compared with
// a locale-aware collator rather than raw byte order.
func (s *Service) ListWorkers(ctx context.Context) ([]models.Worker, error) {
	var workers []models.Worker
	if err := s.store.List(ctx, store.Workers, &workers); err != nil {
		return nil, fmt.Errorf("failed to load workers: %w", err)
	}

	collator := collate.New(language.Und)
	sort.SliceStable(workers, func(i, j int) bool {
		return collator.CompareString(workers[i].Name, workers[j].Name) < 0
	})
	return workers, nil
}

// UpdateWorker applies a partial edit to a worker. A new ID that differs
// from the current one triggers the rename cascade before the remaining
// field changes are committed.
func (s *Service) UpdateWorker(ctx context.Context, currentID string, upd models.WorkerUpdate) error {
	var current models.Worker
	if err := s.store.Get(ctx, store.Workers, currentID, &current); err != nil {
		return err
	}

	fields := make(map[string]any)
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return models.ValidationError("Worker name cannot be empty")
		}
		fields["name"] = name
	}
	if upd.JobRole != nil {
		role := strings.TrimSpace(*upd.JobRole)
		if role == "" {
			return models.ValidationError("Job role cannot be empty")
		}
		fields["jobRole"] = role
	}

	targetID := currentID
	if upd.NewID != nil {
		newID := strings.TrimSpace(*upd.NewID)
		if newID == "" {
			return models.ValidationError("Worker ID cannot be empty")
		}
		if newID != currentID {
			if err := s.cascades.Rename(ctx, currentID, newID); err != nil {
				return err
			}
			targetID = newID
		}
	}

	if len(fields) == 0 {
		return nil
	}

	if err := s.store.Update(ctx, store.Workers, targetID, fields); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to update worker: %w", err)
	}

	s.logger.Info("worker updated", zap.String("worker_id", targetID))
	return nil
}

// DeleteWorker removes a worker and cascades over its work and payment
// records.
func (s *Service) DeleteWorker(ctx context.Context, id string) error {
	return s.cascades.Delete(ctx, id)
}
