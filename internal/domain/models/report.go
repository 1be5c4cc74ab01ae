package models

import "time"

// WorkerStatement is the fully assembled ledger view for one worker, handed
// to the report exporter as-is. Amounts are formatted as plain decimal
// strings so the exporter never re-derives anything.
type WorkerStatement struct {
	Worker         Worker          `json:"worker"`
	WorkRecords    []WorkRecord    `json:"workRecords"`
	PaymentRecords []PaymentRecord `json:"paymentRecords"`
	TotalEarned    string          `json:"totalEarned"`
	TotalPaid      string          `json:"totalPaid"`
	Balance        string          `json:"balance"`
}

// SummaryRow is one worker's line in the all-workers summary.
type SummaryRow struct {
	Worker      Worker `json:"worker"`
	TotalEarned string `json:"totalEarned"`
	TotalPaid   string `json:"totalPaid"`
	Balance     string `json:"balance"`
}

// LedgerSummary aggregates every worker plus a grand-total row.
type LedgerSummary struct {
	Rows             []SummaryRow `json:"rows"`
	GrandTotalEarned string       `json:"grandTotalEarned"`
	GrandTotalPaid   string       `json:"grandTotalPaid"`
	GrandBalance     string       `json:"grandBalance"`
}

// IntegritySnapshot is the result of one referential-integrity sweep over
// the work and payment collections.
type IntegritySnapshot struct {
	RunAt           time.Time `bson:"runAt" json:"runAt"`
	Workers         int       `bson:"workers" json:"workers"`
	WorkRecords     int       `bson:"workRecords" json:"workRecords"`
	PaymentRecords  int       `bson:"paymentRecords" json:"paymentRecords"`
	OrphanedWork    int       `bson:"orphanedWork" json:"orphanedWork"`
	OrphanedPayment int       `bson:"orphanedPayment" json:"orphanedPayment"`
}
