// Package handler exposes the workspace service over HTTP. Handlers stay
// thin: decode, delegate, encode. All authorization and validation lives in
// the service layer.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service/workspace"
)

// ItemHandler handles item HTTP requests
type ItemHandler struct {
	service workspace.Service
	logger  *slog.Logger
}

// NewItemHandler creates a new item handler
func NewItemHandler(service workspace.Service, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		logger:  logger,
	}
}

// HealthCheck reports liveness
// GET /health
func (h *ItemHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListItems lists the children of one folder level with breadcrumbs
// GET /api/items?parentId={id}
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r)

	var parentID *string
	if raw := r.URL.Query().Get("parentId"); raw != "" {
		parentID = &raw
	}

	listing, err := h.service.ListChildren(r.Context(), ownerID, parentID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ListItemsResponse{
		Items:       mergeItems(listing.Books, listing.Contents),
		Breadcrumbs: listing.Breadcrumbs,
	})
}

// CreateItem creates a new item
// POST /api/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r)

	var req workspace.CreateItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.CreateItem(r.Context(), ownerID, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, itemResponse(item))
}

// UpdateItem applies a partial update to an item
// PATCH /api/items/{id}
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r)
	id := r.PathValue("id")

	var req workspace.UpdateItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.service.UpdateItem(r.Context(), ownerID, id, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, itemResponse(item))
}

// TrashItem soft-deletes an item
// POST /api/items/{id}/trash
func (h *ItemHandler) TrashItem(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r)
	id := r.PathValue("id")

	kind, err := h.parseKindBody(w, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.service.TrashItem(r.Context(), ownerID, id, kind); err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, MessageResponse{Message: "item moved to trash"})
}

// RestoreItem clears an item's trash flag
// POST /api/items/{id}/restore
func (h *ItemHandler) RestoreItem(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r)
	id := r.PathValue("id")

	kind, err := h.parseKindBody(w, r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	item, err := h.service.RestoreItem(r.Context(), ownerID, id, kind)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, itemResponse(item))
}

// DeleteItem permanently removes a single item
// DELETE /api/items/{id}?type={kind}
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r)
	id := r.PathValue("id")

	rawKind := r.URL.Query().Get("type")
	if strings.TrimSpace(rawKind) == "" {
		h.handleError(w, r, domain.MissingFields("type is required"))
		return
	}
	kind, err := models.ParseKind(rawKind)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.service.DeleteItem(r.Context(), ownerID, id, kind); err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, MessageResponse{Message: "item permanently deleted"})
}

// ListTrash lists all trashed items for the owner
// GET /api/trash
func (h *ItemHandler) ListTrash(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetOwnerID(r)

	listing, err := h.service.ListTrash(r.Context(), ownerID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, TrashResponse{
		Items: mergeItems(listing.Books, listing.Contents),
	})
}

type kindRequest struct {
	Type string `json:"type"`
}

// parseKindBody reads the {type} payload used by trash and restore.
func (h *ItemHandler) parseKindBody(w http.ResponseWriter, r *http.Request) (models.Kind, error) {
	var req kindRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		return "", domain.MissingFields("type is required")
	}
	if strings.TrimSpace(req.Type) == "" {
		return "", domain.MissingFields("type is required")
	}
	return models.ParseKind(req.Type)
}
