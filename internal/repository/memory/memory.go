// Package memory provides a map-backed store.Store used by tests and local
// development. Documents are held bson-encoded so reads hand out copies,
// never aliases into shared state.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/kavinduj/workboard/internal/domain/models"
	"github.com/kavinduj/workboard/internal/repository/store"
)

// Store is an in-process implementation of store.Store.
type Store struct {
	mu    sync.RWMutex
	colls map[string]map[string][]byte
}

var _ store.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{colls: make(map[string]map[string][]byte)}
}

func (s *Store) collection(name string) map[string][]byte {
	if _, ok := s.colls[name]; !ok {
		s.colls[name] = make(map[string][]byte)
	}
	return s.colls[name]
}

// Get decodes the document with the given ID into out.
func (s *Store) Get(_ context.Context, collection, id string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.colls[collection][id]
	if !ok {
		return models.ErrNotFound
	}
	if err := bson.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	return nil
}

// QueryByField decodes every matching document into out (a slice pointer).
func (s *Store) QueryByField(_ context.Context, collection, field string, value any, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slice := reflect.ValueOf(out).Elem()
	elemType := slice.Type().Elem()
	slice.SetLen(0)

	for _, raw := range s.colls[collection] {
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to decode %s document: %w", collection, err)
		}
		if fmt.Sprint(doc[field]) != fmt.Sprint(value) {
			continue
		}
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return fmt.Errorf("failed to decode %s document: %w", collection, err)
		}
		slice.Set(reflect.Append(slice, elem.Elem()))
	}
	return nil
}

// List decodes every document in the collection into out.
func (s *Store) List(_ context.Context, collection string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slice := reflect.ValueOf(out).Elem()
	elemType := slice.Type().Elem()
	slice.SetLen(0)

	for _, raw := range s.colls[collection] {
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return fmt.Errorf("failed to decode %s document: %w", collection, err)
		}
		slice.Set(reflect.Append(slice, elem.Elem()))
	}
	return nil
}

// Insert creates the document only if the ID is absent.
func (s *Store) Insert(_ context.Context, collection, id string, doc any) error {
	raw, err := encode(doc, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll := s.collection(collection)
	if _, exists := coll[id]; exists {
		return models.ErrDuplicateID
	}
	coll[id] = raw
	return nil
}

// Put creates or fully replaces the document.
func (s *Store) Put(_ context.Context, collection, id string, doc any) error {
	raw, err := encode(doc, id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.collection(collection)[id] = raw
	return nil
}

// Update merges the given fields into an existing document.
func (s *Store) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyUpdate(collection, id, fields)
}

func (s *Store) applyUpdate(collection, id string, fields map[string]any) error {
	raw, ok := s.colls[collection][id]
	if !ok {
		return models.ErrNotFound
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode %s/%s: %w", collection, id, err)
	}
	for k, v := range fields {
		doc[k] = v
	}

	merged, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", collection, id, err)
	}
	s.colls[collection][id] = merged
	return nil
}

// Delete removes the document; absent documents are a no-op.
func (s *Store) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.colls[collection], id)
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Count reports how many documents a collection holds.
func (s *Store) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.colls[collection])
}

func encode(doc any, id string) ([]byte, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to remarshal document: %w", err)
	}
	m["_id"] = id
	return bson.Marshal(m)
}
