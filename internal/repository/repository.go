// Package repository defines the persistence contracts for users and file
// metadata, with MongoDB implementations alongside.
package repository

import (
	"context"

	"github.com/dmarchuk/filesmanager/internal/models"
)

// PageSize is the fixed number of records returned per listing page.
const PageSize = 20

// FileRepository is CRUD over file metadata. Every externally supplied id
// is validated against the 24-hex identifier shape; a malformed id behaves
// like a record that does not exist.
type FileRepository interface {
	// Create validates the record's structural invariants and inserts it,
	// returning the record with its assigned id.
	Create(ctx context.Context, f models.File) (models.File, error)
	// GetOwned returns the record only if it belongs to ownerID.
	// Cross-user access reports not-found, never forbidden.
	GetOwned(ctx context.Context, id, ownerID string) (models.File, error)
	// GetAny looks a record up regardless of owner. Used for parent
	// resolution and the public read path, where visibility is decided
	// by the caller.
	GetAny(ctx context.Context, id string) (models.File, error)
	// List returns page (zero-based) of the owner's records under
	// parentID, at most PageSize each, in store order.
	List(ctx context.Context, ownerID, parentID string, page int64) ([]models.File, error)
	// SetVisibility flips isPublic on the owner-scoped record and
	// returns the updated record.
	SetVisibility(ctx context.Context, id, ownerID string, public bool) (models.File, error)
	Count(ctx context.Context) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, bool, error)
	FindByID(ctx context.Context, id string) (models.User, bool, error)
	Count(ctx context.Context) (int64, error)
}
