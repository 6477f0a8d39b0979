package ports

import (
	"context"
	"errors"

	"github.com/aretw0/guts/pkg/schema"
	"github.com/google/uuid"
)

// ErrDocumentNotFound is returned by DocumentStore.Load for unknown IDs.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore defines the interface for persisting records.
type DocumentStore interface {
	// Save persists the record under id, replacing any previous document.
	Save(ctx context.Context, id string, obj *schema.Object) error

	// Load retrieves the record stored under id, validated with
	// regularization. Returns ErrDocumentNotFound if there is none.
	Load(ctx context.Context, id string) (*schema.Object, error)

	// Delete removes the record. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the ids of all stored records.
	List(ctx context.Context) ([]string, error)
}

// NewID returns a fresh random document id.
func NewID() string {
	return uuid.NewString()
}
