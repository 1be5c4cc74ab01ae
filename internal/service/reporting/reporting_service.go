// Package reporting assembles the ledger views handed to the report
// exporter: per-worker statements and the all-workers summary. It only
// reads; independent aggregations are issued concurrently since they
// commute.
package reporting

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/service/ledger"
)

// WorkerSource lists and resolves workers.
type WorkerSource interface {
	GetWorker(ctx context.Context, id string) (models.Worker, error)
	ListWorkers(ctx context.Context) ([]models.Worker, error)
}

// LedgerSource provides the record reads the reports are built from.
type LedgerSource interface {
	WorkRecordsByWorker(ctx context.Context, workerID string) ([]models.WorkRecord, error)
	PaymentsByWorker(ctx context.Context, workerID string) ([]models.PaymentRecord, error)
}

// Service builds report payloads.
type Service struct {
	workers WorkerSource
	ledger  LedgerSource
	logger  *zap.Logger
}

// New wires a reporting service.
func New(workers WorkerSource, ledgerSource LedgerSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{workers: workers, ledger: ledgerSource, logger: logger}
}

// WorkerStatement assembles the full ledger view for one worker. Work and
// payment records are fetched concurrently and totals derived from the
// fetched slices, so the statement is internally consistent.
func (s *Service) WorkerStatement(ctx context.Context, workerID string) (models.WorkerStatement, error) {
	worker, err := s.workers.GetWorker(ctx, workerID)
	if err != nil {
		return models.WorkerStatement{}, err
	}

	var (
		wg       sync.WaitGroup
		works    []models.WorkRecord
		payments []models.PaymentRecord
		workErr  error
		payErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		works, workErr = s.ledger.WorkRecordsByWorker(ctx, workerID)
	}()
	go func() {
		defer wg.Done()
		payments, payErr = s.ledger.PaymentsByWorker(ctx, workerID)
	}()
	wg.Wait()

	if workErr != nil {
		return models.WorkerStatement{}, workErr
	}
	if payErr != nil {
		return models.WorkerStatement{}, payErr
	}

	earned := ledger.SumEarned(works)
	paid := ledger.SumPaid(payments)

	return models.WorkerStatement{
		Worker:         worker,
		WorkRecords:    works,
		PaymentRecords: payments,
		TotalEarned:    earned.StringFixed(2),
		TotalPaid:      paid.StringFixed(2),
		Balance:        earned.Sub(paid).StringFixed(2),
	}, nil
}

// Summary builds one row per worker plus a grand-total row. Per-worker
// aggregations run concurrently; their relative order does not matter and
// the rows come back in the registry's name order.
func (s *Service) Summary(ctx context.Context) (models.LedgerSummary, error) {
	workers, err := s.workers.ListWorkers(ctx)
	if err != nil {
		return models.LedgerSummary{}, err
	}

	type totals struct {
		earned decimal.Decimal
		paid   decimal.Decimal
		err    error
	}

	results := make([]totals, len(workers))
	var wg sync.WaitGroup
	for i, worker := range workers {
		wg.Add(1)
		go func(i int, workerID string) {
			defer wg.Done()
			works, err := s.ledger.WorkRecordsByWorker(ctx, workerID)
			if err != nil {
				results[i] = totals{err: err}
				return
			}
			payments, err := s.ledger.PaymentsByWorker(ctx, workerID)
			if err != nil {
				results[i] = totals{err: err}
				return
			}
			results[i] = totals{earned: ledger.SumEarned(works), paid: ledger.SumPaid(payments)}
		}(i, worker.ID)
	}
	wg.Wait()

	summary := models.LedgerSummary{Rows: make([]models.SummaryRow, 0, len(workers))}
	grandEarned := decimal.Zero
	grandPaid := decimal.Zero

	for i, worker := range workers {
		if results[i].err != nil {
			return models.LedgerSummary{}, results[i].err
		}
		earned := results[i].earned
		paid := results[i].paid
		grandEarned = grandEarned.Add(earned)
		grandPaid = grandPaid.Add(paid)

		summary.Rows = append(summary.Rows, models.SummaryRow{
			Worker:      worker,
			TotalEarned: earned.StringFixed(2),
			TotalPaid:   paid.StringFixed(2),
			Balance:     earned.Sub(paid).StringFixed(2),
		})
	}

	summary.GrandTotalEarned = grandEarned.StringFixed(2)
	summary.GrandTotalPaid = grandPaid.StringFixed(2)
	summary.GrandBalance = grandEarned.Sub(grandPaid).StringFixed(2)
	return summary, nil
}
