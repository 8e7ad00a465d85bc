package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// CreateItem creates a book or content item. A supplied parent must resolve
// to a live book owned by the same owner; an unresolvable parent is an
// error, never a silent fallback to root.
func (s *workspaceService) CreateItem(ctx context.Context, ownerID string, req *CreateItemRequest) (*Item, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	kind, err := req.Validate()
	if err != nil {
		return nil, err
	}

	// Normalize empty string to nil for root-level items
	parentID := req.ParentID
	if parentID != nil && *parentID == "" {
		parentID = nil
	}

	if parentID != nil {
		if err := requireID(*parentID); err != nil {
			return nil, err
		}
		if _, err := s.bookRepo.GetLiveByID(ctx, *parentID, ownerID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("parent %s: %w", *parentID, domain.ErrParentNotFound)
			}
			return nil, err
		}
	}

	title := strings.TrimSpace(req.Title)
	thumbnail := s.presets.Placeholder(kind)
	if req.Thumbnail != nil && *req.Thumbnail != "" {
		thumbnail = *req.Thumbnail
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	var item *Item
	switch kind {
	case models.KindBook:
		book := &models.Book{
			OwnerID:     ownerID,
			ParentID:    parentID,
			Title:       title,
			Thumbnail:   thumbnail,
			Description: req.Description,
			Genre:       req.Genre,
			Tags:        tags,
			IsDraft:     true,
		}
		if err := s.bookRepo.Insert(ctx, book); err != nil {
			return nil, err
		}
		item = &Item{Kind: models.KindBook, Book: book}

	case models.KindContent:
		var data string
		if req.Data != nil {
			data = *req.Data
		}
		content := &models.Content{
			OwnerID:     ownerID,
			ParentID:    parentID,
			Title:       title,
			Thumbnail:   thumbnail,
			Data:        data,
			Institution: req.Institution,
			Subject:     req.Subject,
			Tags:        tags,
			IsDraft:     true,
		}
		if err := s.contentRepo.Insert(ctx, content); err != nil {
			return nil, err
		}
		item = &Item{Kind: models.KindContent, Content: content}
	}

	s.logger.Info("item created",
		"id", itemID(item),
		"type", kind,
		"title", title,
		"owner_id", ownerID,
		"parent_id", parentID,
	)

	return item, nil
}

// UpdateItem applies the allow-listed subset of the requested fields.
// A request carrying no recognized field for the item's kind is an error,
// not a no-op success.
func (s *workspaceService) UpdateItem(ctx context.Context, ownerID, id string, req *UpdateItemRequest) (*Item, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}

	kind, err := req.Validate()
	if err != nil {
		return nil, err
	}

	var item *Item
	switch kind {
	case models.KindBook:
		fields := bookFieldset(&req.Fields)
		if fields.Len() == 0 {
			return nil, domain.ErrNoValidFields
		}
		book, err := s.bookRepo.UpdateFields(ctx, id, ownerID, fields)
		if err != nil {
			return nil, err
		}
		item = &Item{Kind: models.KindBook, Book: book}

	case models.KindContent:
		fields := contentFieldset(&req.Fields)
		if fields.Len() == 0 {
			return nil, domain.ErrNoValidFields
		}
		content, err := s.contentRepo.UpdateFields(ctx, id, ownerID, fields)
		if err != nil {
			return nil, err
		}
		item = &Item{Kind: models.KindContent, Content: content}
	}

	s.logger.Info("item updated", "id", id, "type", kind, "owner_id", ownerID)

	return item, nil
}

// bookFieldset maps the allow-listed book fields onto store columns.
// Content-only fields (data, institution, subject) are never honored here.
func bookFieldset(f *UpdateFields) *repositories.Fieldset {
	fields := repositories.NewFieldset()
	setCommonFields(fields, f)
	if f.Description.Present {
		fields.Set("description", f.Description.Value)
	}
	if f.Genre.Present {
		fields.Set("genre", f.Genre.Value)
	}
	return fields
}

// contentFieldset maps the allow-listed content fields onto store columns.
// Book-only fields (description, genre) are never honored here.
func contentFieldset(f *UpdateFields) *repositories.Fieldset {
	fields := repositories.NewFieldset()
	setCommonFields(fields, f)
	if f.Data != nil {
		fields.Set("data", *f.Data)
	}
	if f.Institution.Present {
		fields.Set("institution", f.Institution.Value)
	}
	if f.Subject.Present {
		fields.Set("subject", f.Subject.Value)
	}
	return fields
}

// setCommonFields handles the fields every kind allows.
func setCommonFields(fields *repositories.Fieldset, f *UpdateFields) {
	if f.Title != nil {
		fields.Set("title", strings.TrimSpace(*f.Title))
	}
	if f.Thumbnail != nil {
		fields.Set("thumbnail", *f.Thumbnail)
	}
	if f.Tags != nil {
		fields.Set("tags", *f.Tags)
	}
	if f.IsDraft != nil {
		fields.Set("is_draft", *f.IsDraft)
	}
}

// TrashItem soft-deletes an item. Trashing an already-trashed item reports
// domain.ErrNotFound. Trashing a book cascades the flag to its direct
// children only: the book is flagged first, then the two child-kind updates
// run in parallel with no cross-row transaction. A failure mid-cascade
// leaves whatever partial effect already happened; callers must not assume
// rollback.
func (s *workspaceService) TrashItem(ctx context.Context, ownerID, id string, kind models.Kind) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}

	switch kind {
	case models.KindContent:
		if err := s.contentRepo.SetTrashed(ctx, id, ownerID, true, true); err != nil {
			return err
		}

	case models.KindBook:
		if err := s.bookRepo.SetTrashed(ctx, id, ownerID, true, true); err != nil {
			return err
		}

		var (
			wg            sync.WaitGroup
			childBooks    int64
			childContents int64
			bookErr, cErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			childBooks, bookErr = s.bookRepo.TrashChildren(ctx, id, ownerID)
		}()
		go func() {
			defer wg.Done()
			childContents, cErr = s.contentRepo.TrashChildren(ctx, id, ownerID)
		}()
		wg.Wait()

		if bookErr != nil {
			return fmt.Errorf("trash cascade: %w", bookErr)
		}
		if cErr != nil {
			return fmt.Errorf("trash cascade: %w", cErr)
		}

		s.logger.Info("book trashed with children",
			"id", id,
			"owner_id", ownerID,
			"child_books", childBooks,
			"child_contents", childContents,
		)
		return nil
	}

	s.logger.Info("item trashed", "id", id, "type", kind, "owner_id", ownerID)
	return nil
}

// RestoreItem clears the trash flag. There is no cascade in this direction:
// children flagged by a previous book trash stay trashed until restored
// individually.
func (s *workspaceService) RestoreItem(ctx context.Context, ownerID, id string, kind models.Kind) (*Item, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if err := requireID(id); err != nil {
		return nil, err
	}

	var item *Item
	switch kind {
	case models.KindBook:
		if err := s.bookRepo.SetTrashed(ctx, id, ownerID, false, false); err != nil {
			return nil, err
		}
		book, err := s.bookRepo.GetByID(ctx, id, ownerID)
		if err != nil {
			return nil, err
		}
		item = &Item{Kind: models.KindBook, Book: book}

	case models.KindContent:
		if err := s.contentRepo.SetTrashed(ctx, id, ownerID, false, false); err != nil {
			return nil, err
		}
		content, err := s.contentRepo.GetByID(ctx, id, ownerID)
		if err != nil {
			return nil, err
		}
		item = &Item{Kind: models.KindContent, Content: content}
	}

	s.logger.Info("item restored", "id", id, "type", kind, "owner_id", ownerID)

	return item, nil
}

// DeleteItem permanently removes a single record. Descendants are not
// removed; child rows are detached by the schema's referential actions.
func (s *workspaceService) DeleteItem(ctx context.Context, ownerID, id string, kind models.Kind) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}

	var err error
	switch kind {
	case models.KindBook:
		err = s.bookRepo.Delete(ctx, id, ownerID)
	case models.KindContent:
		err = s.contentRepo.Delete(ctx, id, ownerID)
	}
	if err != nil {
		return err
	}

	s.logger.Info("item permanently deleted", "id", id, "type", kind, "owner_id", ownerID)
	return nil
}

func itemID(item *Item) string {
	switch item.Kind {
	case models.KindBook:
		return item.Book.ID
	case models.KindContent:
		return item.Content.ID
	}
	return ""
}
