package models

import (
	"time"
)

// Content is a leaf item. The Data payload is the opaque authored document
// produced by the page builder; it can be large and is only projected into
// responses that explicitly ask for leaves.
type Content struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	ParentID    *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Title       string    `json:"title" db:"title"`
	Thumbnail   string    `json:"thumbnail" db:"thumbnail"`
	Data        string    `json:"data" db:"data"`
	Institution *string   `json:"institution,omitempty" db:"institution"`
	Subject     *string   `json:"subject,omitempty" db:"subject"`
	Tags        []string  `json:"tags" db:"tags"`
	IsDraft     bool      `json:"is_draft" db:"is_draft"`
	Trashed     bool      `json:"trashed" db:"trashed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
