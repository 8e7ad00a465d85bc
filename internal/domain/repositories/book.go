package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// BookRepository persists container items.
//
// Every method is scoped to an owner id; a lookup that misses because the
// row belongs to a different owner is indistinguishable from a row that
// does not exist (domain.ErrNotFound in both cases).
type BookRepository interface {
	// Insert stores a new book and fills the server-assigned id and
	// timestamps on the passed model.
	Insert(ctx context.Context, book *models.Book) error

	// GetByID retrieves a book regardless of trash state.
	GetByID(ctx context.Context, id, ownerID string) (*models.Book, error)

	// GetLiveByID retrieves a non-trashed book. Used for parent resolution.
	GetLiveByID(ctx context.Context, id, ownerID string) (*models.Book, error)

	// ListByParent lists non-trashed books whose parent equals parentID
	// (nil = root), ordered by case-folded title.
	ListByParent(ctx context.Context, ownerID string, parentID *string) ([]models.Book, error)

	// ListTrashed lists all trashed books for an owner.
	ListTrashed(ctx context.Context, ownerID string) ([]models.Book, error)

	// UpdateFields applies a non-empty fieldset to a single row and
	// returns the updated book. The updated_at column is always refreshed.
	UpdateFields(ctx context.Context, id, ownerID string, fields *Fieldset) (*models.Book, error)

	// SetTrashed flips the trash flag. With onlyIfLive the update is
	// additionally scoped to trashed=false, so trashing an already-trashed
	// book reports domain.ErrNotFound.
	SetTrashed(ctx context.Context, id, ownerID string, trashed, onlyIfLive bool) error

	// TrashChildren flags all direct child books of parentID as trashed
	// and returns the number of rows touched. Grandchildren are untouched.
	TrashChildren(ctx context.Context, parentID, ownerID string) (int64, error)

	// Delete permanently removes a single book row.
	Delete(ctx context.Context, id, ownerID string) error
}
