package integrity

import (
	"context"
	"testing"
	"time"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/repository/memory"
	"github.com/kavinduj/workboard/internal/repository/store"
)

func TestSweep(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	worker := models.Worker{ID: "W1", Name: "Alice", JobRole: "Mason", CreatedAt: time.Now().UTC()}
	if err := st.Insert(ctx, store.Workers, worker.ID, worker); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	records := []models.WorkRecord{
		{ID: "wr1", WorkerID: "W1", Date: "2024-03-15", WorkType: "Bricklaying", EarnedAmount: 5000},
		{ID: "wr2", WorkerID: "gone", Date: "2024-03-16", WorkType: "Plastering", EarnedAmount: 4000},
	}
	for _, r := range records {
		if err := st.Insert(ctx, store.Works, r.ID, r); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	payment := models.PaymentRecord{ID: "pr1", WorkerID: "gone", Date: "2024-03-16", Amount: 2000, PaymentType: "Cash"}
	if err := st.Insert(ctx, store.Payments, payment.ID, payment); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	snapshot, err := New(st, nil).Sweep(ctx)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}

	if snapshot.Workers != 1 || snapshot.WorkRecords != 2 || snapshot.PaymentRecords != 1 {
		t.Errorf("unexpected counts: %+v", snapshot)
	}
	if snapshot.OrphanedWork != 1 {
		t.Errorf("orphanedWork = %d, want 1", snapshot.OrphanedWork)
	}
	if snapshot.OrphanedPayment != 1 {
		t.Errorf("orphanedPayment = %d, want 1", snapshot.OrphanedPayment)
	}

	if st.Count(store.IntegrityReports) != 1 {
		t.Error("snapshot was not persisted")
	}
}
