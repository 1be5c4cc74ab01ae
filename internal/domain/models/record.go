package models

import "time"

// WorkRecord captures one instance of work performed by a worker. Dates are
// stored canonically as YYYY-MM-DD strings.
type WorkRecord struct {
	ID           string    `bson:"_id" json:"id"`
	WorkerID     string    `bson:"workerId" json:"workerId"`
	Date         string    `bson:"date" json:"date"`
	WorkType     string    `bson:"workType" json:"workType"`
	EarnedAmount float64   `bson:"earnedAmount" json:"earnedAmount"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// PaymentRecord captures one instance of money paid to a worker.
type PaymentRecord struct {
	ID          string    `bson:"_id" json:"id"`
	WorkerID    string    `bson:"workerId" json:"workerId"`
	Date        string    `bson:"date" json:"date"`
	Amount      float64   `bson:"amount" json:"amount"`
	PaymentType string    `bson:"paymentType" json:"paymentType"`
	Note        string    `bson:"note" json:"note"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// WorkRecordUpdate carries the optional fields of a work record edit.
// Unset fields keep their prior value.
type WorkRecordUpdate struct {
	Date         *string  `json:"date,omitempty"`
	WorkType     *string  `json:"workType,omitempty"`
	EarnedAmount *float64 `json:"earnedAmount,omitempty"`
}

// PaymentRecordUpdate carries the optional fields of a payment record edit.
type PaymentRecordUpdate struct {
	Date        *string  `json:"date,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	PaymentType *string  `json:"paymentType,omitempty"`
	Note        *string  `json:"note,omitempty"`
}
