package reporting

import (
	"context"
	"errors"
	"testing"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/repository/memory"
	"github.com/kavinduj/workboard/internal/service/cascade"
	"github.com/kavinduj/workboard/internal/service/ledger"
	"github.com/kavinduj/workboard/internal/service/registry"
)

func fixture(t *testing.T) (*Service, *ledger.Service, *registry.Service) {
	t.Helper()
	st := memory.New()
	reg := registry.New(st, cascade.New(st, nil), nil)
	led := ledger.New(st, nil)
	return New(reg, led, nil), led, reg
}

func TestWorkerStatement(t *testing.T) {
	ctx := context.Background()
	svc, led, reg := fixture(t)

	if _, err := reg.AddWorker(ctx, "W1", "Alice", "Mason"); err != nil {
		t.Fatalf("AddWorker failed: %v", err)
	}
	if _, err := led.AddWorkRecord(ctx, "W1", "15/03/2024", "Bricklaying", 5000); err != nil {
		t.Fatalf("AddWorkRecord failed: %v", err)
	}
	if _, err := led.AddWorkRecord(ctx, "W1", "18/03/2024", "Plastering", 4000); err != nil {
		t.Fatalf("AddWorkRecord failed: %v", err)
	}
	if _, err := led.AddPaymentRecord(ctx, "W1", "16/03/2024", 2000, "Cash", ""); err != nil {
		t.Fatalf("AddPaymentRecord failed: %v", err)
	}

	statement, err := svc.WorkerStatement(ctx, "W1")
	if err != nil {
		t.Fatalf("WorkerStatement failed: %v", err)
	}

	if statement.Worker.Name != "Alice" {
		t.Errorf("worker = %+v", statement.Worker)
	}
	if len(statement.WorkRecords) != 2 || len(statement.PaymentRecords) != 1 {
		t.Fatalf("got %d work and %d payment records", len(statement.WorkRecords), len(statement.PaymentRecords))
	}
	if statement.WorkRecords[0].Date != "2024-03-18" {
		t.Errorf("work records not ordered newest first: %q", statement.WorkRecords[0].Date)
	}
	if statement.TotalEarned != "9000.00" {
		t.Errorf("totalEarned = %q, want 9000.00", statement.TotalEarned)
	}
	if statement.TotalPaid != "2000.00" {
		t.Errorf("totalPaid = %q, want 2000.00", statement.TotalPaid)
	}
	if statement.Balance != "7000.00" {
		t.Errorf("balance = %q, want 7000.00", statement.Balance)
	}
}

func TestWorkerStatementMissingWorker(t *testing.T) {
	svc, _, _ := fixture(t)

	_, err := svc.WorkerStatement(context.Background(), "ghost")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc, led, reg := fixture(t)

	if _, err := reg.AddWorker(ctx, "W1", "Alice", "Mason"); err != nil {
		t.Fatalf("AddWorker failed: %v", err)
	}
	if _, err := reg.AddWorker(ctx, "W2", "Bob", "Painter"); err != nil {
		t.Fatalf("AddWorker failed: %v", err)
	}

	if _, err := led.AddWorkRecord(ctx, "W1", "15/03/2024", "Bricklaying", 5000); err != nil {
		t.Fatalf("AddWorkRecord failed: %v", err)
	}
	if _, err := led.AddPaymentRecord(ctx, "W1", "16/03/2024", 2000, "Cash", ""); err != nil {
		t.Fatalf("AddPaymentRecord failed: %v", err)
	}
	if _, err := led.AddWorkRecord(ctx, "W2", "15/03/2024", "Painting", 1000); err != nil {
		t.Fatalf("AddWorkRecord failed: %v", err)
	}
	if _, err := led.AddPaymentRecord(ctx, "W2", "16/03/2024", 1500, "Cash", ""); err != nil {
		t.Fatalf("AddPaymentRecord failed: %v", err)
	}

	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if len(summary.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(summary.Rows))
	}
	if summary.Rows[0].Worker.Name != "Alice" || summary.Rows[1].Worker.Name != "Bob" {
		t.Errorf("rows not in name order: %q, %q", summary.Rows[0].Worker.Name, summary.Rows[1].Worker.Name)
	}
	if summary.Rows[0].Balance != "3000.00" {
		t.Errorf("Alice balance = %q, want 3000.00", summary.Rows[0].Balance)
	}
	if summary.Rows[1].Balance != "-500.00" {
		t.Errorf("Bob balance = %q, want -500.00", summary.Rows[1].Balance)
	}
	if summary.GrandTotalEarned != "6000.00" {
		t.Errorf("grandTotalEarned = %q, want 6000.00", summary.GrandTotalEarned)
	}
	if summary.GrandTotalPaid != "3500.00" {
		t.Errorf("grandTotalPaid = %q, want 3500.00", summary.GrandTotalPaid)
	}
	if summary.GrandBalance != "2500.00" {
		t.Errorf("grandBalance = %q, want 2500.00", summary.GrandBalance)
	}
}

func TestSummaryEmpty(t *testing.T) {
	svc, _, _ := fixture(t)

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if len(summary.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(summary.Rows))
	}
	if summary.GrandBalance != "0.00" {
		t.Errorf("grandBalance = %q, want 0.00", summary.GrandBalance)
	}
}
