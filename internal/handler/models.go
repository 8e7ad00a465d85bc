package handler

import (
	"sort"
	"strings"
	"time"

	"inkwell/internal/domain/models"
	"inkwell/internal/service/workspace"
)

// ItemResponse is the wire shape shared by both item kinds. Kind-specific
// fields are pointers so books omit content fields and vice versa; Data is
// always present for contents, even when empty.
type ItemResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	ParentID    *string   `json:"parentId"`
	Thumbnail   string    `json:"thumbnail"`
	Description *string   `json:"description,omitempty"`
	Genre       *string   `json:"genre,omitempty"`
	Data        *string   `json:"data,omitempty"`
	Institution *string   `json:"institution,omitempty"`
	Subject     *string   `json:"subject,omitempty"`
	Tags        []string  `json:"tags"`
	IsDraft     bool      `json:"isDraft"`
	Trashed     bool      `json:"trashed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListItemsResponse is the payload for a folder-level listing.
type ListItemsResponse struct {
	Items       []ItemResponse      `json:"items"`
	Breadcrumbs []models.Breadcrumb `json:"breadcrumbs"`
}

// TrashResponse is the payload for the trash listing.
type TrashResponse struct {
	Items []ItemResponse `json:"items"`
}

// MessageResponse acknowledges operations with no payload to return.
type MessageResponse struct {
	Message string `json:"message"`
}

func bookResponse(b *models.Book) ItemResponse {
	return ItemResponse{
		ID:          b.ID,
		Type:        string(models.KindBook),
		Title:       b.Title,
		ParentID:    b.ParentID,
		Thumbnail:   b.Thumbnail,
		Description: b.Description,
		Genre:       b.Genre,
		Tags:        b.Tags,
		IsDraft:     b.IsDraft,
		Trashed:     b.Trashed,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func contentResponse(c *models.Content) ItemResponse {
	data := c.Data
	return ItemResponse{
		ID:          c.ID,
		Type:        string(models.KindContent),
		Title:       c.Title,
		ParentID:    c.ParentID,
		Thumbnail:   c.Thumbnail,
		Data:        &data,
		Institution: c.Institution,
		Subject:     c.Subject,
		Tags:        c.Tags,
		IsDraft:     c.IsDraft,
		Trashed:     c.Trashed,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func itemResponse(item *workspace.Item) ItemResponse {
	if item.Kind == models.KindBook {
		return bookResponse(item.Book)
	}
	return contentResponse(item.Content)
}

// mergeItems flattens both kinds into one list sorted case-insensitively by
// title. The per-kind inputs arrive pre-sorted; the stable sort keeps each
// kind's internal order on ties.
func mergeItems(books []models.Book, contents []models.Content) []ItemResponse {
	items := make([]ItemResponse, 0, len(books)+len(contents))
	for i := range books {
		items = append(items, bookResponse(&books[i]))
	}
	for i := range contents {
		items = append(items, contentResponse(&contents[i]))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
	})
	return items
}
