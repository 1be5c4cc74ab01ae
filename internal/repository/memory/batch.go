package memory

import (
	"context"

	"github.com/kavinduj/workboard/internal/repository/store"
)

type batchOp struct {
	collection string
	id         string
	fields     map[string]any // nil means delete
}

// batch applies all queued operations under a single lock acquisition, so a
// committed batch is observed atomically by concurrent readers.
type batch struct {
	store *Store
	ops   []batchOp
}

var _ store.Batch = (*batch)(nil)

// Batch returns an empty mutation batch bound to this store.
func (s *Store) Batch() store.Batch {
	return &batch{store: s}
}

// Update queues a field merge on one document.
func (b *batch) Update(collection, id string, fields map[string]any) {
	b.ops = append(b.ops, batchOp{collection: collection, id: id, fields: fields})
}

// Delete queues a document removal.
func (b *batch) Delete(collection, id string) {
	b.ops = append(b.ops, batchOp{collection: collection, id: id})
}

// Commit applies the queued operations in order.
func (b *batch) Commit(context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	for _, op := range b.ops {
		if op.fields == nil {
			delete(b.store.colls[op.collection], op.id)
			continue
		}
		if err := b.store.applyUpdate(op.collection, op.id, op.fields); err != nil {
			return err
		}
	}
	return nil
}
