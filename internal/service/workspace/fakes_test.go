package workspace

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// fakeBookRepo is an in-memory BookRepository that mirrors the store's
// owner scoping and trash semantics, including the row-count-zero misses.
type fakeBookRepo struct {
	mu         sync.Mutex
	books      map[string]*models.Book
	insertErr  error
	cascadeErr error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[string]*models.Book)}
}

func (r *fakeBookRepo) Insert(_ context.Context, book *models.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	book.ID = uuid.NewString()
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt
	clone := *book
	r.books[book.ID] = &clone
	return nil
}

func (r *fakeBookRepo) GetByID(_ context.Context, id, ownerID string) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.books[id]
	if !ok || book.OwnerID != ownerID {
		return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	clone := *book
	return &clone, nil
}

func (r *fakeBookRepo) GetLiveByID(_ context.Context, id, ownerID string) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.books[id]
	if !ok || book.OwnerID != ownerID || book.Trashed {
		return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	clone := *book
	return &clone, nil
}

func (r *fakeBookRepo) ListByParent(_ context.Context, ownerID string, parentID *string) ([]models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Book
	for _, book := range r.books {
		if book.OwnerID != ownerID || book.Trashed || !sameParent(book.ParentID, parentID) {
			continue
		}
		out = append(out, *book)
	}
	sortByTitle(out, func(b models.Book) string { return b.Title })
	return out, nil
}

func (r *fakeBookRepo) ListTrashed(_ context.Context, ownerID string) ([]models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Book
	for _, book := range r.books {
		if book.OwnerID == ownerID && book.Trashed {
			out = append(out, *book)
		}
	}
	sortByTitle(out, func(b models.Book) string { return b.Title })
	return out, nil
}

func (r *fakeBookRepo) UpdateFields(_ context.Context, id, ownerID string, fields *repositories.Fieldset) (*models.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fields.Len() == 0 {
		return nil, domain.ErrNoValidFields
	}
	book, ok := r.books[id]
	if !ok || book.OwnerID != ownerID {
		return nil, fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	columns, values := fields.Columns(), fields.Values()
	for i, column := range columns {
		switch column {
		case "title":
			book.Title = values[i].(string)
		case "thumbnail":
			book.Thumbnail = values[i].(string)
		case "tags":
			book.Tags = values[i].([]string)
		case "is_draft":
			book.IsDraft = values[i].(bool)
		case "description":
			book.Description = values[i].(*string)
		case "genre":
			book.Genre = values[i].(*string)
		default:
			return nil, fmt.Errorf("unexpected column %q", column)
		}
	}
	book.UpdatedAt = time.Now()
	clone := *book
	return &clone, nil
}

func (r *fakeBookRepo) SetTrashed(_ context.Context, id, ownerID string, trashed, onlyIfLive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.books[id]
	if !ok || book.OwnerID != ownerID || (onlyIfLive && book.Trashed) {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	book.Trashed = trashed
	return nil
}

func (r *fakeBookRepo) TrashChildren(_ context.Context, parentID, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cascadeErr != nil {
		return 0, r.cascadeErr
	}
	var count int64
	for _, book := range r.books {
		if book.OwnerID == ownerID && book.ParentID != nil && *book.ParentID == parentID {
			book.Trashed = true
			count++
		}
	}
	return count, nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	book, ok := r.books[id]
	if !ok || book.OwnerID != ownerID {
		return fmt.Errorf("book %s: %w", id, domain.ErrNotFound)
	}
	delete(r.books, id)
	return nil
}

// fakeContentRepo is the content counterpart of fakeBookRepo.
type fakeContentRepo struct {
	mu         sync.Mutex
	contents   map[string]*models.Content
	cascadeErr error
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{contents: make(map[string]*models.Content)}
}

func (r *fakeContentRepo) Insert(_ context.Context, content *models.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	content.ID = uuid.NewString()
	content.CreatedAt = time.Now()
	content.UpdatedAt = content.CreatedAt
	clone := *content
	r.contents[content.ID] = &clone
	return nil
}

func (r *fakeContentRepo) GetByID(_ context.Context, id, ownerID string) (*models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	content, ok := r.contents[id]
	if !ok || content.OwnerID != ownerID {
		return nil, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}
	clone := *content
	return &clone, nil
}

func (r *fakeContentRepo) ListByParent(_ context.Context, ownerID string, parentID *string) ([]models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Content
	for _, content := range r.contents {
		if content.OwnerID != ownerID || content.Trashed || !sameParent(content.ParentID, parentID) {
			continue
		}
		out = append(out, *content)
	}
	sortByTitle(out, func(c models.Content) string { return c.Title })
	return out, nil
}

func (r *fakeContentRepo) ListTrashed(_ context.Context, ownerID string) ([]models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Content
	for _, content := range r.contents {
		if content.OwnerID == ownerID && content.Trashed {
			out = append(out, *content)
		}
	}
	sortByTitle(out, func(c models.Content) string { return c.Title })
	return out, nil
}

func (r *fakeContentRepo) UpdateFields(_ context.Context, id, ownerID string, fields *repositories.Fieldset) (*models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fields.Len() == 0 {
		return nil, domain.ErrNoValidFields
	}
	content, ok := r.contents[id]
	if !ok || content.OwnerID != ownerID {
		return nil, fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}
	columns, values := fields.Columns(), fields.Values()
	for i, column := range columns {
		switch column {
		case "title":
			content.Title = values[i].(string)
		case "thumbnail":
			content.Thumbnail = values[i].(string)
		case "tags":
			content.Tags = values[i].([]string)
		case "is_draft":
			content.IsDraft = values[i].(bool)
		case "data":
			content.Data = values[i].(string)
		case "institution":
			content.Institution = values[i].(*string)
		case "subject":
			content.Subject = values[i].(*string)
		default:
			return nil, fmt.Errorf("unexpected column %q", column)
		}
	}
	content.UpdatedAt = time.Now()
	clone := *content
	return &clone, nil
}

func (r *fakeContentRepo) SetTrashed(_ context.Context, id, ownerID string, trashed, onlyIfLive bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	content, ok := r.contents[id]
	if !ok || content.OwnerID != ownerID || (onlyIfLive && content.Trashed) {
		return fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}
	content.Trashed = trashed
	return nil
}

func (r *fakeContentRepo) TrashChildren(_ context.Context, parentID, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cascadeErr != nil {
		return 0, r.cascadeErr
	}
	var count int64
	for _, content := range r.contents {
		if content.OwnerID == ownerID && content.ParentID != nil && *content.ParentID == parentID {
			content.Trashed = true
			count++
		}
	}
	return count, nil
}

func (r *fakeContentRepo) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	content, ok := r.contents[id]
	if !ok || content.OwnerID != ownerID {
		return fmt.Errorf("content %s: %w", id, domain.ErrNotFound)
	}
	delete(r.contents, id)
	return nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sortByTitle[T any](items []T, title func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(title(items[i])) < strings.ToLower(title(items[j]))
	})
}
