package models

import (
	"time"
)

// Book is a container item. Books are the only valid parent target and may
// nest arbitrarily deep.
type Book struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	ParentID    *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Title       string    `json:"title" db:"title"`
	Thumbnail   string    `json:"thumbnail" db:"thumbnail"`
	Description *string   `json:"description,omitempty" db:"description"`
	Genre       *string   `json:"genre,omitempty" db:"genre"`
	Tags        []string  `json:"tags" db:"tags"`
	IsDraft     bool      `json:"is_draft" db:"is_draft"`
	Trashed     bool      `json:"trashed" db:"trashed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
