package library

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/maskforge/maskforge/pkg/layout/cell"
	"github.com/maskforge/maskforge/pkg/netlist"
)

// Record is one stored design build.
type Record struct {
	ID        string         `json:"id" bson:"id"`
	Factory   string         `json:"factory" bson:"factory"`
	Params    string         `json:"params" bson:"params"`
	Digest    string         `json:"digest" bson:"digest"`
	Design    netlist.Design `json:"design" bson:"design"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// NewRecord assembles a record for a freshly built design. Params holds
// the canonical parameter JSON, so two records built from equivalent
// parameter spellings carry identical Params and Digest.
func NewRecord(key cell.Key, d netlist.Design) Record {
	return Record{
		ID:        uuid.NewString(),
		Factory:   key.Factory(),
		Params:    key.Params(),
		Digest:    key.Digest(),
		Design:    d,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface for design library backends.
type Store interface {
	// Put stores a record, replacing any record with the same ID.
	Put(ctx context.Context, rec Record) error

	// Get retrieves a record by ID.
	// Returns a NOT_FOUND error when no record has that ID.
	Get(ctx context.Context, id string) (Record, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]Record, error)

	// Delete removes a record.
	// Returns a NOT_FOUND error when no record has that ID.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
