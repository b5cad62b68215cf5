// Package store provides persistence for computed layout documents.
//
// This package defines the Store interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI: "mongodb://localhost:27017",
//	})
//
// Manage records:
//
//	rec := store.NewRecord("animals", doc)
//	if err := st.Save(ctx, rec); err != nil {
//	    return err
//	}
//
//	rec, err := st.Get(ctx, rec.ID)
//	if errors.Is(err, errs.ErrCodeLayoutNotFound) { ... }
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wordgrove/wordgrove/pkg/graph"
)

// Record is a stored layout document with identity and provenance.
type Record struct {
	ID        string         `json:"id" bson:"id"`
	Name      string         `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	Layout    graph.Document `json:"layout" bson:"layout"`
}

// NewRecord creates a record with a fresh UUID and timestamp.
func NewRecord(name string, doc graph.Document) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Layout:    doc,
	}
}

// Store is the interface for layout persistence backends.
type Store interface {
	// Save stores a record, overwriting any record with the same ID.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID.
	// Fails with LAYOUT_NOT_FOUND when no record has that ID.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records, newest first, without their layouts.
	// Use Get to load a full record.
	List(ctx context.Context) ([]*Record, error)

	// Delete removes a record by ID.
	// Fails with LAYOUT_NOT_FOUND when no record has that ID.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the backend.
	Close(ctx context.Context) error
}
