package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// ContentRepository persists leaf items. Scoping rules match BookRepository.
type ContentRepository interface {
	// Insert stores a new content item and fills the server-assigned id
	// and timestamps on the passed model.
	Insert(ctx context.Context, content *models.Content) error

	// GetByID retrieves a content item regardless of trash state.
	GetByID(ctx context.Context, id, ownerID string) (*models.Content, error)

	// ListByParent lists non-trashed content whose parent equals parentID
	// (nil = root), ordered by case-folded title.
	ListByParent(ctx context.Context, ownerID string, parentID *string) ([]models.Content, error)

	// ListTrashed lists all trashed content for an owner.
	ListTrashed(ctx context.Context, ownerID string) ([]models.Content, error)

	// UpdateFields applies a non-empty fieldset to a single row and
	// returns the updated content. The updated_at column is always refreshed.
	UpdateFields(ctx context.Context, id, ownerID string, fields *Fieldset) (*models.Content, error)

	// SetTrashed flips the trash flag, optionally scoped to live rows only.
	SetTrashed(ctx context.Context, id, ownerID string, trashed, onlyIfLive bool) error

	// TrashChildren flags all content directly inside parentID as trashed
	// and returns the number of rows touched.
	TrashChildren(ctx context.Context, parentID, ownerID string) (int64, error)

	// Delete permanently removes a single content row.
	Delete(ctx context.Context, id, ownerID string) error
}
