package store

import (
	"context"

	"github.com/google/uuid"

	"registru/internal/person/models"
	"registru/internal/person/query"
)

// PersonStore persists registry records. There are no uniqueness constraints:
// Create never conflicts, and resending a create produces a second record.
//
// Update takes a merge closure so the read-modify-write is atomic per record
// regardless of backend: the memory store applies it under its write lock,
// the postgres store inside a row-locking transaction. The closure sees a
// copy of the current record and may reject the mutation by returning an
// error, in which case nothing is written.
type PersonStore interface {
	Create(ctx context.Context, p *models.Person) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Person, error)
	Update(ctx context.Context, id uuid.UUID, apply func(*models.Person) error) (*models.Person, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns one page of the filtered, sorted view plus the total
	// match count, computed against a single consistent snapshot.
	List(ctx context.Context, params query.Params) ([]*models.Person, int, error)
}
