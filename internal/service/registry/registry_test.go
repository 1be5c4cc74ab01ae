package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/repository/memory"
	"github.com/kavinduj/workboard/internal/repository/store"
	"github.com/kavinduj/workboard/internal/service/cascade"
)

func newService(st *memory.Store) *Service {
	return New(st, cascade.New(st, nil), nil)
}

func strPtr(s string) *string { return &s }

func TestAddWorker(t *testing.T) {
	ctx := context.Background()

	t.Run("valid worker is trimmed and persisted", func(t *testing.T) {
		st := memory.New()
		svc := newService(st)

		worker, err := svc.AddWorker(ctx, " W1 ", " Alice ", " Mason ")
		if err != nil {
			t.Fatalf("AddWorker failed: %v", err)
		}
		if worker.ID != "W1" || worker.Name != "Alice" || worker.JobRole != "Mason" {
			t.Errorf("fields not trimmed: %+v", worker)
		}
		if worker.CreatedAt.IsZero() {
			t.Error("expected createdAt to be set")
		}
	})

	t.Run("empty fields rejected", func(t *testing.T) {
		st := memory.New()
		svc := newService(st)

		for _, args := range [][3]string{
			{"", "Alice", "Mason"},
			{"W1", "  ", "Mason"},
			{"W1", "Alice", ""},
		} {
			_, err := svc.AddWorker(ctx, args[0], args[1], args[2])
			var validation models.ValidationError
			if !errors.As(err, &validation) {
				t.Errorf("AddWorker(%q,%q,%q): expected validation error, got %v", args[0], args[1], args[2], err)
			}
		}
		if st.Count(store.Workers) != 0 {
			t.Error("no worker should persist after validation failure")
		}
	})

	t.Run("duplicate id leaves existing worker unmodified", func(t *testing.T) {
		st := memory.New()
		svc := newService(st)

		if _, err := svc.AddWorker(ctx, "W1", "Alice", "Mason"); err != nil {
			t.Fatalf("AddWorker failed: %v", err)
		}
		_, err := svc.AddWorker(ctx, "W1", "Mallory", "Painter")
		if !errors.Is(err, models.ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}

		existing, err := svc.GetWorker(ctx, "W1")
		if err != nil {
			t.Fatalf("GetWorker failed: %v", err)
		}
		if existing.Name != "Alice" || existing.JobRole != "Mason" {
			t.Errorf("existing worker was modified: %+v", existing)
		}
	})
}

func TestGetWorker(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := newService(st)

	if _, err := svc.GetWorker(ctx, "ghost"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListWorkers(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := newService(st)

	for _, w := range [][3]string{
		{"W3", "charlie", "Painter"},
		{"W1", "Alice", "Mason"},
		{"W2", "Bob", "Carpenter"},
	} {
		if _, err := svc.AddWorker(ctx, w[0], w[1], w[2]); err != nil {
			t.Fatalf("AddWorker failed: %v", err)
		}
	}

	workers, err := svc.ListWorkers(ctx)
	if err != nil {
		t.Fatalf("ListWorkers failed: %v", err)
	}

	// Collation is case-insensitive where byte order is not.
	want := []string{"Alice", "Bob", "charlie"}
	if len(workers) != len(want) {
		t.Fatalf("got %d workers, want %d", len(workers), len(want))
	}
	for i, w := range workers {
		if w.Name != want[i] {
			t.Errorf("workers[%d].Name = %q, want %q", i, w.Name, want[i])
		}
	}
}

func TestUpdateWorker(t *testing.T) {
	ctx := context.Background()

	t.Run("missing worker", func(t *testing.T) {
		st := memory.New()
		svc := newService(st)

		err := svc.UpdateWorker(ctx, "ghost", models.WorkerUpdate{Name: strPtr("Alice")})
		if !errors.Is(err, models.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("field edit without rename", func(t *testing.T) {
		st := memory.New()
		svc := newService(st)

		if _, err := svc.AddWorker(ctx, "W1", "Alice", "Mason"); err != nil {
			t.Fatalf("AddWorker failed: %v", err)
		}
		if err := svc.UpdateWorker(ctx, "W1", models.WorkerUpdate{JobRole: strPtr("Supervisor")}); err != nil {
			t.Fatalf("UpdateWorker failed: %v", err)
		}

		worker, err := svc.GetWorker(ctx, "W1")
		if err != nil {
			t.Fatalf("GetWorker failed: %v", err)
		}
		if worker.JobRole != "Supervisor" || worker.Name != "Alice" {
			t.Errorf("unexpected worker after update: %+v", worker)
		}
	})

	t.Run("rename to occupied id", func(t *testing.T) {
		st := memory.New()
		svc := newService(st)

		if _, err := svc.AddWorker(ctx, "W1", "Alice", "Mason"); err != nil {
			t.Fatalf("AddWorker failed: %v", err)
		}
		if _, err := svc.AddWorker(ctx, "W2", "Bob", "Painter"); err != nil {
			t.Fatalf("AddWorker failed: %v", err)
		}

		err := svc.UpdateWorker(ctx, "W1", models.WorkerUpdate{NewID: strPtr("W2")})
		if !errors.Is(err, models.ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}
	})

	t.Run("rename cascades and then applies field edits", func(t *testing.T) {
		st := memory.New()
		svc := newService(st)

		if _, err := svc.AddWorker(ctx, "W1", "Alice", "Mason"); err != nil {
			t.Fatalf("AddWorker failed: %v", err)
		}
		record := models.WorkRecord{ID: "wr1", WorkerID: "W1", Date: "2024-03-15", WorkType: "Bricklaying", EarnedAmount: 5000}
		if err := st.Insert(ctx, store.Works, record.ID, record); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		original, err := svc.GetWorker(ctx, "W1")
		if err != nil {
			t.Fatalf("GetWorker failed: %v", err)
		}

		err = svc.UpdateWorker(ctx, "W1", models.WorkerUpdate{NewID: strPtr("W2"), Name: strPtr("Alice B")})
		if err != nil {
			t.Fatalf("UpdateWorker failed: %v", err)
		}

		if _, err := svc.GetWorker(ctx, "W1"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("old id should be gone, got %v", err)
		}

		renamed, err := svc.GetWorker(ctx, "W2")
		if err != nil {
			t.Fatalf("GetWorker failed: %v", err)
		}
		if renamed.Name != "Alice B" || renamed.JobRole != "Mason" {
			t.Errorf("unexpected worker after rename: %+v", renamed)
		}
		if !renamed.CreatedAt.Equal(original.CreatedAt) {
			t.Errorf("createdAt not preserved: %v vs %v", renamed.CreatedAt, original.CreatedAt)
		}

		var moved []models.WorkRecord
		if err := st.QueryByField(ctx, store.Works, "workerId", "W2", &moved); err != nil {
			t.Fatalf("QueryByField failed: %v", err)
		}
		if len(moved) != 1 {
			t.Errorf("expected the work record to follow the rename, got %d", len(moved))
		}
	})
}

func TestDeleteWorker(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	svc := newService(st)

	if _, err := svc.AddWorker(ctx, "W1", "Alice", "Mason"); err != nil {
		t.Fatalf("AddWorker failed: %v", err)
	}
	record := models.PaymentRecord{ID: "pr1", WorkerID: "W1", Date: "2024-03-16", Amount: 2000, PaymentType: "Cash"}
	if err := st.Insert(ctx, store.Payments, record.ID, record); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if err := svc.DeleteWorker(ctx, "W1"); err != nil {
		t.Fatalf("DeleteWorker failed: %v", err)
	}
	if st.Count(store.Payments) != 0 {
		t.Error("payment records remain after cascade delete")
	}

	if err := svc.DeleteWorker(ctx, "W1"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
