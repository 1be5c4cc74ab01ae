package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kavinduj/workboard/internal/repository/store"
)

// batch accumulates write models per collection and commits each group as a
// single ordered BulkWrite. Cascade steps only ever touch one collection per
// batch, so each committed step reaches the server as one call.
type batch struct {
	repo  *Repository
	order []string
	ops   map[string][]mongo.WriteModel
}

var _ store.Batch = (*batch)(nil)

// Batch returns an empty mutation batch bound to this repository.
func (r *Repository) Batch() store.Batch {
	return &batch{repo: r, ops: make(map[string][]mongo.WriteModel)}
}

func (b *batch) add(collection string, op mongo.WriteModel) {
	if _, seen := b.ops[collection]; !seen {
		b.order = append(b.order, collection)
	}
	b.ops[collection] = append(b.ops[collection], op)
}

// Update queues a field merge on one document.
func (b *batch) Update(collection, id string, fields map[string]any) {
	b.add(collection, mongo.NewUpdateOneModel().
		SetFilter(bson.M{"_id": id}).
		SetUpdate(bson.M{"$set": fields}))
}

// Delete queues a document removal.
func (b *batch) Delete(collection, id string) {
	b.add(collection, mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": id}))
}

// Commit flushes the queued operations collection by collection.
func (b *batch) Commit(ctx context.Context) error {
	for _, collection := range b.order {
		ops := b.ops[collection]
		if len(ops) == 0 {
			continue
		}
		if _, err := b.repo.coll(collection).BulkWrite(ctx, ops); err != nil {
			return fmt.Errorf("failed to commit batch on %s: %w", collection, err)
		}
	}
	return nil
}
