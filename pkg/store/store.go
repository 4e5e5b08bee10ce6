// Package store persists diagrams together with their computed layouts.
//
// The chat server keeps every diagram it has laid out so follow-up messages
// ("add a node", "rename that edge") can fetch the spec back, mutate it and
// re-run layout. The Store interface supports:
//   - Get/Put/Delete by diagram id
//   - Listing stored ids
//
// Implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for production deployments
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
// Persist a layout:
//
//	rec := store.NewRecord(spec)
//	rec.Layout = &result
//	if err := st.Put(ctx, rec); err != nil {
//	    return err
//	}
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jvalaj/gridai/pkg/diagram"
	"github.com/jvalaj/gridai/pkg/layout"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a diagram does not exist.
	ErrNotFound = errors.New("not found")
)

// Record is a stored diagram with its most recent layout.
type Record struct {
	ID        string         `json:"id" bson:"_id"`
	Spec      diagram.Spec   `json:"spec" bson:"spec"`
	Layout    *layout.Result `json:"layout,omitempty" bson:"layout,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// NewRecord creates a record for a spec. When the spec carries no id a
// fresh one is generated, so every stored diagram is addressable.
func NewRecord(spec diagram.Spec) *Record {
	id := spec.ID
	if id == "" {
		id = uuid.NewString()
		spec.ID = id
	}

	now := time.Now().UTC()
	return &Record{
		ID:        id,
		Spec:      spec,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store persists diagram records.
type Store interface {
	// Get retrieves a record by diagram id. Returns ErrNotFound when the
	// diagram does not exist.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores a record, replacing any existing record with the same id.
	// The record's UpdatedAt is refreshed.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a record. Deleting an absent id returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored diagrams.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
