package models

import "time"

// Worker is a person whose labor and payments are tracked. The ID is
// user-assigned and acts as the primary key; it can be renamed, which
// triggers a cascade across referencing records.
type Worker struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	JobRole   string    `bson:"jobRole" json:"jobRole"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// WorkerUpdate carries the optional fields of a worker edit. A non-nil
// NewID that differs from the current ID triggers the rename cascade.
type WorkerUpdate struct {
	NewID   *string `json:"newId,omitempty"`
	Name    *string `json:"name,omitempty"`
	JobRole *string `json:"jobRole,omitempty"`
}
