package workspace

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

// ListChildren returns the live items directly under parentID (nil for the
// root level), each kind sorted by title, plus the breadcrumb trail for the
// listed level. Listing under a parent requires the parent to be a live
// book owned by the caller.
func (s *workspaceService) ListChildren(ctx context.Context, ownerID string, parentID *string) (*ChildListing, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	var parent *models.Book
	if parentID != nil {
		if err := requireID(*parentID); err != nil {
			return nil, err
		}
		var err error
		parent, err = s.bookRepo.GetLiveByID(ctx, *parentID, ownerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("parent %s: %w", *parentID, domain.ErrParentNotFound)
			}
			return nil, err
		}
	}

	books, err := s.bookRepo.ListByParent(ctx, ownerID, parentID)
	if err != nil {
		return nil, err
	}
	contents, err := s.contentRepo.ListByParent(ctx, ownerID, parentID)
	if err != nil {
		return nil, err
	}

	breadcrumbs, err := s.breadcrumbs(ctx, ownerID, parent)
	if err != nil {
		return nil, err
	}

	return &ChildListing{
		Books:       books,
		Contents:    contents,
		Breadcrumbs: breadcrumbs,
	}, nil
}

// ListTrash returns every trashed item of the owner, both kinds.
func (s *workspaceService) ListTrash(ctx context.Context, ownerID string) (*TrashListing, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}

	books, err := s.bookRepo.ListTrashed(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	contents, err := s.contentRepo.ListTrashed(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return &TrashListing{Books: books, Contents: contents}, nil
}

// breadcrumbs builds the trail from the root down to level, which is nil
// for the root level. The trail always starts with the synthetic root
// entry. The walk never fails the listing: a trashed or deleted ancestor
// truncates the trail at the deepest resolvable link, and a chain longer
// than MaxBreadcrumbDepth (cyclic or legitimately deep) is cut off the
// same way.
func (s *workspaceService) breadcrumbs(ctx context.Context, ownerID string, level *models.Book) ([]models.Breadcrumb, error) {
	trail := []models.Breadcrumb{models.RootBreadcrumb}
	if level == nil {
		return trail, nil
	}

	// Collected self-first, reversed into root-first order below.
	chain := []models.Breadcrumb{{ID: level.ID, Title: level.Title}}

	parentID := level.ParentID
	for depth := 0; parentID != nil; depth++ {
		if depth >= config.MaxBreadcrumbDepth {
			s.logger.Warn("breadcrumb chain too deep, truncating trail",
				"item_id", level.ID,
				"depth", depth,
				"owner_id", ownerID,
			)
			break
		}

		ancestor, err := s.bookRepo.GetLiveByID(ctx, *parentID, ownerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("breadcrumb ancestor unresolved, truncating trail",
					"item_id", level.ID,
					"ancestor_id", *parentID,
					"owner_id", ownerID,
				)
				break
			}
			return nil, err
		}
		chain = append(chain, models.Breadcrumb{ID: ancestor.ID, Title: ancestor.Title})
		parentID = ancestor.ParentID
	}

	for i := len(chain) - 1; i >= 0; i-- {
		trail = append(trail, chain[i])
	}
	return trail, nil
}
