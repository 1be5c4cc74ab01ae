package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/repository/store"
)

// Repository implements store.Store on top of MongoDB. Each logical
// collection maps 1:1 onto a MongoDB collection in the configured database.
type Repository struct {
	client *mongo.Client
	dbName string
}

var _ store.Store = (*Repository)(nil)

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, dbName: dbName}, nil
}

func (r *Repository) coll(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// Get decodes the document with the given ID into out.
func (r *Repository) Get(ctx context.Context, collection, id string, out any) error {
	err := r.coll(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read %s/%s: %w", collection, id, err)
	}
	return nil
}

// QueryByField decodes every matching document into out (a slice pointer).
func (r *Repository) QueryByField(ctx context.Context, collection, field string, value any, out any) error {
	cursor, err := r.coll(collection).Find(ctx, bson.M{field: value})
	if err != nil {
		return fmt.Errorf("failed to query %s by %s: %w", collection, field, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s query results: %w", collection, err)
	}
	return nil
}

// List decodes every document in the collection into out.
func (r *Repository) List(ctx context.Context, collection string, out any) error {
	cursor, err := r.coll(collection).Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", collection, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode %s documents: %w", collection, err)
	}
	return nil
}

// Insert creates the document only if the ID is absent. MongoDB enforces
// this atomically through the unique _id index, so concurrent inserts of
// the same ID cannot both succeed.
func (r *Repository) Insert(ctx context.Context, collection, id string, doc any) error {
	payload, err := withID(doc, id)
	if err != nil {
		return err
	}
	if _, err := r.coll(collection).InsertOne(ctx, payload); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrDuplicateID
		}
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return nil
}

// Put creates or fully replaces the document.
func (r *Repository) Put(ctx context.Context, collection, id string, doc any) error {
	payload, err := withID(doc, id)
	if err != nil {
		return err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll(collection).ReplaceOne(ctx, bson.M{"_id": id}, payload, opts); err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", collection, id, err)
	}
	return nil
}

// Update merges the given fields into an existing document.
func (r *Repository) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	res, err := r.coll(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes the document. Deleting an absent document is not an error,
// matching document-store semantics.
func (r *Repository) Delete(ctx context.Context, collection, id string) error {
	if _, err := r.coll(collection).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

// withID re-marshals doc into a bson map with the _id field forced to id,
// so callers cannot desynchronize the key from the document body.
func withID(doc any, id string) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to remarshal document: %w", err)
	}
	m["_id"] = id
	return m, nil
}
