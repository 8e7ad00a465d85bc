// Package workspace implements the item lifecycle and hierarchy operations
// of the authoring workspace: owner-scoped CRUD over books and contents,
// the one-level trash cascade, and breadcrumb resolution.
package workspace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
	"inkwell/internal/kinds"
)

// Item is a tagged union over the two item kinds. Exactly one of Book and
// Content is set, matching Kind.
type Item struct {
	Kind    models.Kind
	Book    *models.Book
	Content *models.Content
}

// ChildListing is the result of listing a folder level: child books and
// contents fetched independently (the boundary adapter merges them), plus
// the breadcrumb trail from the root down to the listed level.
type ChildListing struct {
	Books       []models.Book
	Contents    []models.Content
	Breadcrumbs []models.Breadcrumb
}

// TrashListing holds all trashed items of an owner, both kinds.
type TrashListing struct {
	Books    []models.Book
	Contents []models.Content
}

// Service is the contract the HTTP boundary consumes.
type Service interface {
	ListChildren(ctx context.Context, ownerID string, parentID *string) (*ChildListing, error)
	ListTrash(ctx context.Context, ownerID string) (*TrashListing, error)
	CreateItem(ctx context.Context, ownerID string, req *CreateItemRequest) (*Item, error)
	UpdateItem(ctx context.Context, ownerID, id string, req *UpdateItemRequest) (*Item, error)
	TrashItem(ctx context.Context, ownerID, id string, kind models.Kind) error
	RestoreItem(ctx context.Context, ownerID, id string, kind models.Kind) (*Item, error)
	DeleteItem(ctx context.Context, ownerID, id string, kind models.Kind) error
}

type workspaceService struct {
	bookRepo    repositories.BookRepository
	contentRepo repositories.ContentRepository
	presets     *kinds.Registry
	logger      *slog.Logger
}

// NewService creates the workspace service.
func NewService(
	bookRepo repositories.BookRepository,
	contentRepo repositories.ContentRepository,
	presets *kinds.Registry,
	logger *slog.Logger,
) Service {
	return &workspaceService{
		bookRepo:    bookRepo,
		contentRepo: contentRepo,
		presets:     presets,
		logger:      logger,
	}
}

// requireOwner rejects requests that arrive without a resolved identity.
// Absence is an auth failure, never an empty result.
func requireOwner(ownerID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// requireID validates the store's id shape before any query runs, keeping
// malformed ids distinct from genuine misses.
func requireID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("id %q: %w", id, domain.ErrInvalidID)
	}
	return nil
}
