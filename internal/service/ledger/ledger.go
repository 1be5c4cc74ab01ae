// Package ledger manages work and payment records and computes per-worker
// aggregates. Balances are always derived from the records, never stored.
package ledger

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/repository/store"
	"github.com/kavinduj/workboard/pkg/dates"
)

// Service implements the ledger engine.
type Service struct {
	store  store.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New wires a ledger service.
func New(st store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// AddWorkRecord validates and persists a work record for an existing
// worker. The date is canonicalized to YYYY-MM-DD before storage.
func (s *Service) AddWorkRecord(ctx context.Context, workerID, date, workType string, earnedAmount float64) (models.WorkRecord, error) {
	workerID = strings.TrimSpace(workerID)
	workType = strings.TrimSpace(workType)

	if workerID == "" || strings.TrimSpace(date) == "" || workType == "" {
		return models.WorkRecord{}, models.ValidationError("All fields are required")
	}
	if earnedAmount < 0 {
		return models.WorkRecord{}, models.ValidationError("Earned amount cannot be negative")
	}

	isoDate, err := dates.ToISO(date)
	if err != nil {
		return models.WorkRecord{}, models.ValidationError("Invalid date format")
	}

	if err := s.workerExists(ctx, workerID); err != nil {
		return models.WorkRecord{}, err
	}

	record := models.WorkRecord{
		ID:           s.newID(),
		WorkerID:     workerID,
		Date:         isoDate,
		WorkType:     workType,
		EarnedAmount: earnedAmount,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.store.Insert(ctx, store.Works, record.ID, record); err != nil {
		return models.WorkRecord{}, fmt.Errorf("failed to save work record: %w", err)
	}

	s.logger.Info("work record added", zap.String("worker_id", workerID), zap.String("record_id", record.ID))
	return record, nil
}

// AddPaymentRecord validates and persists a payment record for an existing
// worker. The amount must be strictly positive.
func (s *Service) AddPaymentRecord(ctx context.Context, workerID, date string, amount float64, paymentType, note string) (models.PaymentRecord, error) {
	workerID = strings.TrimSpace(workerID)
	paymentType = strings.TrimSpace(paymentType)

	if workerID == "" || strings.TrimSpace(date) == "" || paymentType == "" {
		return models.PaymentRecord{}, models.ValidationError("Worker, date, amount, and payment type are required")
	}
	if amount <= 0 {
		return models.PaymentRecord{}, models.ValidationError("Payment amount must be greater than 0")
	}

	isoDate, err := dates.ToISO(date)
	if err != nil {
		return models.PaymentRecord{}, models.ValidationError("Invalid date format")
	}

	if err := s.workerExists(ctx, workerID); err != nil {
		return models.PaymentRecord{}, err
	}

	record := models.PaymentRecord{
		ID:          s.newID(),
		WorkerID:    workerID,
		Date:        isoDate,
		Amount:      amount,
		PaymentType: paymentType,
		Note:        strings.TrimSpace(note),
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.Insert(ctx, store.Payments, record.ID, record); err != nil {
		return models.PaymentRecord{}, fmt.Errorf("failed to save payment record: %w", err)
	}

	s.logger.Info("payment record added", zap.String("worker_id", workerID), zap.String("record_id", record.ID))
	return record, nil
}

// GetWorkRecord returns a single work record by ID.
func (s *Service) GetWorkRecord(ctx context.Context, id string) (models.WorkRecord, error) {
	var record models.WorkRecord
	if err := s.store.Get(ctx, store.Works, id, &record); err != nil {
		return models.WorkRecord{}, err
	}
	return record, nil
}

// GetPaymentRecord returns a single payment record by ID.
func (s *Service) GetPaymentRecord(ctx context.Context, id string) (models.PaymentRecord, error) {
	var record models.PaymentRecord
	if err := s.store.Get(ctx, store.Payments, id, &record); err != nil {
		return models.PaymentRecord{}, err
	}
	return record, nil
}

// UpdateWorkRecord overwrites only the supplied fields of a work record,
// re-validating changed values against the same constraints as add.
func (s *Service) UpdateWorkRecord(ctx context.Context, id string, upd models.WorkRecordUpdate) error {
	var existing models.WorkRecord
	if err := s.store.Get(ctx, store.Works, id, &existing); err != nil {
		return err
	}

	fields := make(map[string]any)
	if upd.Date != nil {
		isoDate, err := dates.ToISO(*upd.Date)
		if err != nil {
			return models.ValidationError("Invalid date format")
		}
		fields["date"] = isoDate
	}
	if upd.WorkType != nil {
		workType := strings.TrimSpace(*upd.WorkType)
		if workType == "" {
			return models.ValidationError("Work type cannot be empty")
		}
		fields["workType"] = workType
	}
	if upd.EarnedAmount != nil {
		if *upd.EarnedAmount < 0 {
			return models.ValidationError("Earned amount cannot be negative")
		}
		fields["earnedAmount"] = *upd.EarnedAmount
	}

	if len(fields) == 0 {
		return nil
	}

	if err := s.store.Update(ctx, store.Works, id, fields); err != nil {
		return fmt.Errorf("failed to update work record: %w", err)
	}
	return nil
}

// UpdatePaymentRecord overwrites only the supplied fields of a payment
// record.
func (s *Service) UpdatePaymentRecord(ctx context.Context, id string, upd models.PaymentRecordUpdate) error {
	var existing models.PaymentRecord
	if err := s.store.Get(ctx, store.Payments, id, &existing); err != nil {
		return err
	}

	fields := make(map[string]any)
	if upd.Date != nil {
		isoDate, err := dates.ToISO(*upd.Date)
		if err != nil {
			return models.ValidationError("Invalid date format")
		}
		fields["date"] = isoDate
	}
	if upd.Amount != nil {
		if *upd.Amount <= 0 {
			return models.ValidationError("Payment amount must be greater than 0")
		}
		fields["amount"] = *upd.Amount
	}
	if upd.PaymentType != nil {
		paymentType := strings.TrimSpace(*upd.PaymentType)
		if paymentType == "" {
			return models.ValidationError("Payment type cannot be empty")
		}
		fields["paymentType"] = paymentType
	}
	if upd.Note != nil {
		fields["note"] = strings.TrimSpace(*upd.Note)
	}

	if len(fields) == 0 {
		return nil
	}

	if err := s.store.Update(ctx, store.Payments, id, fields); err != nil {
		return fmt.Errorf("failed to update payment record: %w", err)
	}
	return nil
}

// DeleteWorkRecord removes a single work record. A record owns nothing, so
// no further cascade happens.
func (s *Service) DeleteWorkRecord(ctx context.Context, id string) error {
	var existing models.WorkRecord
	if err := s.store.Get(ctx, store.Works, id, &existing); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, store.Works, id); err != nil {
		return fmt.Errorf("failed to delete work record: %w", err)
	}
	return nil
}

// DeletePaymentRecord removes a single payment record.
func (s *Service) DeletePaymentRecord(ctx context.Context, id string) error {
	var existing models.PaymentRecord
	if err := s.store.Get(ctx, store.Payments, id, &existing); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, store.Payments, id); err != nil {
		return fmt.Errorf("failed to delete payment record: %w", err)
	}
	return nil
}

// WorkRecordsByWorker returns a worker's work records, newest date first.
func (s *Service) WorkRecordsByWorker(ctx context.Context, workerID string) ([]models.WorkRecord, error) {
	var records []models.WorkRecord
	if err := s.store.QueryByField(ctx, store.Works, "workerId", workerID, &records); err != nil {
		return nil, fmt.Errorf("failed to load work records: %w", err)
	}
	sortWorkRecords(records)
	return records, nil
}

// PaymentsByWorker returns a worker's payment records, newest date first.
func (s *Service) PaymentsByWorker(ctx context.Context, workerID string) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	if err := s.store.QueryByField(ctx, store.Payments, "workerId", workerID, &records); err != nil {
		return nil, fmt.Errorf("failed to load payment records: %w", err)
	}
	sortPaymentRecords(records)
	return records, nil
}

// AllWorkRecords returns every work record, newest date first.
func (s *Service) AllWorkRecords(ctx context.Context) ([]models.WorkRecord, error) {
	var records []models.WorkRecord
	if err := s.store.List(ctx, store.Works, &records); err != nil {
		return nil, fmt.Errorf("failed to load work records: %w", err)
	}
	sortWorkRecords(records)
	return records, nil
}

// AllPayments returns every payment record, newest date first.
func (s *Service) AllPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	var records []models.PaymentRecord
	if err := s.store.List(ctx, store.Payments, &records); err != nil {
		return nil, fmt.Errorf("failed to load payment records: %w", err)
	}
	sortPaymentRecords(records)
	return records, nil
}

// TotalEarned sums earned amounts over a worker's work records.
func (s *Service) TotalEarned(ctx context.Context, workerID string) (decimal.Decimal, error) {
	records, err := s.WorkRecordsByWorker(ctx, workerID)
	if err != nil {
		return decimal.Zero, err
	}
	return SumEarned(records), nil
}

// TotalPaid sums amounts over a worker's payment records.
func (s *Service) TotalPaid(ctx context.Context, workerID string) (decimal.Decimal, error) {
	records, err := s.PaymentsByWorker(ctx, workerID)
	if err != nil {
		return decimal.Zero, err
	}
	return SumPaid(records), nil
}

// Balance is total earned minus total paid. A negative balance means the
// worker was overpaid; it is a valid, displayed state.
func (s *Service) Balance(ctx context.Context, workerID string) (decimal.Decimal, error) {
	earned, err := s.TotalEarned(ctx, workerID)
	if err != nil {
		return decimal.Zero, err
	}
	paid, err := s.TotalPaid(ctx, workerID)
	if err != nil {
		return decimal.Zero, err
	}
	return earned.Sub(paid), nil
}

// SumEarned totals a slice of work records with decimal arithmetic.
func SumEarned(records []models.WorkRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.EarnedAmount))
	}
	return total
}

// SumPaid totals a slice of payment records with decimal arithmetic.
func SumPaid(records []models.PaymentRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.Amount))
	}
	return total
}

func (s *Service) workerExists(ctx context.Context, workerID string) error {
	var worker models.Worker
	return s.store.Get(ctx, store.Workers, workerID, &worker)
}

// ISO dates compare correctly as strings; createdAt breaks ties so the
// ordering is stable for same-day records.
func sortWorkRecords(records []models.WorkRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}

func sortPaymentRecords(records []models.PaymentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
