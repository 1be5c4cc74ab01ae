// Package store defines the uniform document-store interface the ledger core
// is written against. Implementations live alongside it (mongodb for
// production, memory for tests).
package store

import "context"

// Collection names shared by every implementation.
const (
	Workers          = "workers"
	Works            = "works"
	Payments         = "payments"
	Admin            = "admin"
	IntegrityReports = "integrity_reports"
)

// Store is a thin CRUD + field-query adapter over the underlying document
// collections. Lookups that miss return models.ErrNotFound (possibly
// wrapped); Insert on an existing ID returns models.ErrDuplicateID.
type Store interface {
	// Get decodes the document with the given ID into out.
	Get(ctx context.Context, collection, id string, out any) error
	// QueryByField decodes every document whose field equals value into out,
	// which must be a pointer to a slice. No ordering is guaranteed.
	QueryByField(ctx context.Context, collection, field string, value any, out any) error
	// List decodes every document in the collection into out, unordered.
	List(ctx context.Context, collection string, out any) error
	// Insert creates the document only if the ID is absent (atomic).
	Insert(ctx context.Context, collection, id string, doc any) error
	// Put creates or fully replaces the document.
	Put(ctx context.Context, collection, id string, doc any) error
	// Update merges the given fields into an existing document.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	// Delete removes the document.
	Delete(ctx context.Context, collection, id string) error
	// Batch returns an empty mutation batch bound to this store.
	Batch() Batch
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error
}

// Batch accumulates update/delete operations and commits them to the store
// as one unit. A batch is single-use; Commit on an empty batch is a no-op.
type Batch interface {
	Update(collection, id string, fields map[string]any)
	Delete(collection, id string)
	Commit(ctx context.Context) error
}
