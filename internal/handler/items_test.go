package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service/workspace"
)

// stubService returns canned results and records what it was called with.
type stubService struct {
	listing *workspace.ChildListing
	trash   *workspace.TrashListing
	item    *workspace.Item
	err     error

	gotOwner  string
	gotParent *string
	gotID     string
	gotKind   models.Kind
}

func (s *stubService) ListChildren(_ context.Context, ownerID string, parentID *string) (*workspace.ChildListing, error) {
	s.gotOwner, s.gotParent = ownerID, parentID
	return s.listing, s.err
}

func (s *stubService) ListTrash(_ context.Context, ownerID string) (*workspace.TrashListing, error) {
	s.gotOwner = ownerID
	return s.trash, s.err
}

func (s *stubService) CreateItem(_ context.Context, ownerID string, _ *workspace.CreateItemRequest) (*workspace.Item, error) {
	s.gotOwner = ownerID
	return s.item, s.err
}

func (s *stubService) UpdateItem(_ context.Context, ownerID, id string, _ *workspace.UpdateItemRequest) (*workspace.Item, error) {
	s.gotOwner, s.gotID = ownerID, id
	return s.item, s.err
}

func (s *stubService) TrashItem(_ context.Context, ownerID, id string, kind models.Kind) error {
	s.gotOwner, s.gotID, s.gotKind = ownerID, id, kind
	return s.err
}

func (s *stubService) RestoreItem(_ context.Context, ownerID, id string, kind models.Kind) (*workspace.Item, error) {
	s.gotOwner, s.gotID, s.gotKind = ownerID, id, kind
	return s.item, s.err
}

func (s *stubService) DeleteItem(_ context.Context, ownerID, id string, kind models.Kind) error {
	s.gotOwner, s.gotID, s.gotKind = ownerID, id, kind
	return s.err
}

func newTestHandler(svc workspace.Service) *ItemHandler {
	return NewItemHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func doRequest(h http.HandlerFunc, method, target, owner, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if owner != "" {
		req = httputil.WithOwnerID(req, owner)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListItemsMergesAndSorts(t *testing.T) {
	now := time.Now()
	svc := &stubService{
		listing: &workspace.ChildListing{
			Books: []models.Book{
				{ID: "b1", Title: "zebra", Tags: []string{}, CreatedAt: now, UpdatedAt: now},
			},
			Contents: []models.Content{
				{ID: "c1", Title: "Apple", Data: "", Tags: []string{}, CreatedAt: now, UpdatedAt: now},
				{ID: "c2", Title: "Mango", Data: "body", Tags: []string{}, CreatedAt: now, UpdatedAt: now},
			},
			Breadcrumbs: []models.Breadcrumb{models.RootBreadcrumb},
		},
	}
	h := newTestHandler(svc)

	rec := doRequest(h.ListItems, http.MethodGet, "/api/items", "owner-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Items       []map[string]interface{} `json:"items"`
		Breadcrumbs []map[string]interface{} `json:"breadcrumbs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	wantOrder := []string{"Apple", "Mango", "zebra"}
	if len(resp.Items) != len(wantOrder) {
		t.Fatalf("items = %d, want %d", len(resp.Items), len(wantOrder))
	}
	for i, want := range wantOrder {
		if resp.Items[i]["title"] != want {
			t.Errorf("items[%d].title = %v, want %q", i, resp.Items[i]["title"], want)
		}
	}

	// Contents always carry data, books never do.
	if _, ok := resp.Items[0]["data"]; !ok {
		t.Error("content item missing data field")
	}
	if resp.Items[0]["data"] != "" {
		t.Errorf("data = %v, want empty string preserved", resp.Items[0]["data"])
	}
	if _, ok := resp.Items[2]["data"]; ok {
		t.Error("book item carries a data field")
	}

	if len(resp.Breadcrumbs) != 1 || resp.Breadcrumbs[0]["id"] != "root" || resp.Breadcrumbs[0]["title"] != "Home" {
		t.Errorf("breadcrumbs = %v, want the root entry", resp.Breadcrumbs)
	}

	if svc.gotOwner != "owner-1" {
		t.Errorf("owner = %q, want owner-1", svc.gotOwner)
	}
	if svc.gotParent != nil {
		t.Errorf("parent = %v, want nil", *svc.gotParent)
	}
}

func TestListItemsForwardsParentID(t *testing.T) {
	svc := &stubService{listing: &workspace.ChildListing{}}
	h := newTestHandler(svc)

	doRequest(h.ListItems, http.MethodGet, "/api/items?parentId=abc", "owner-1", "")
	if svc.gotParent == nil || *svc.gotParent != "abc" {
		t.Errorf("parent = %v, want abc", svc.gotParent)
	}
}

func TestCreateItemStatusCreated(t *testing.T) {
	svc := &stubService{item: &workspace.Item{
		Kind: models.KindBook,
		Book: &models.Book{ID: "b1", Title: "New", Tags: []string{}},
	}}
	h := newTestHandler(svc)

	rec := doRequest(h.CreateItem, http.MethodPost, "/api/items", "owner-1",
		`{"type":"book","title":"New"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var item map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item["id"] != "b1" || item["type"] != "book" {
		t.Errorf("item = %v, want id b1 type book", item)
	}
}

func TestCreateItemRejectsBadJSON(t *testing.T) {
	h := newTestHandler(&stubService{})
	rec := doRequest(h.CreateItem, http.MethodPost, "/api/items", "owner-1", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest, "invalid_id"},
		{"missing fields", domain.MissingFields("title is required"), http.StatusBadRequest, "missing_fields"},
		{"invalid type", domain.InvalidType("unknown item type"), http.StatusBadRequest, "invalid_type"},
		{"no valid fields", domain.ErrNoValidFields, http.StatusBadRequest, "no_valid_fields"},
		{"validation limit", domain.ErrValidation, http.StatusBadRequest, "validation_failed"},
		{"parent not found", domain.ErrParentNotFound, http.StatusNotFound, "parent_not_found"},
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not_found"},
		{"store failure", io.ErrUnexpectedEOF, http.StatusInternalServerError, "store_failure"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&stubService{err: tt.err})
			rec := doRequest(h.UpdateItem, http.MethodPatch, "/api/items/x", "owner-1",
				`{"type":"book","fields":{"title":"y"}}`)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("content type = %q, want problem+json", ct)
			}
			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if body["code"] != tt.wantCode {
				t.Errorf("code = %v, want %q", body["code"], tt.wantCode)
			}
		})
	}
}

func TestTrashItemMessage(t *testing.T) {
	svc := &stubService{}
	h := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/items/abc/trash", strings.NewReader(`{"type":"content"}`))
	req = httputil.WithOwnerID(req, "owner-1")
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	h.TrashItem(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.gotID != "abc" || svc.gotKind != models.KindContent {
		t.Errorf("called with id=%q kind=%q", svc.gotID, svc.gotKind)
	}
	var resp MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message == "" {
		t.Error("expected acknowledgement message")
	}
}

func TestTrashItemMissingType(t *testing.T) {
	h := newTestHandler(&stubService{})
	rec := doRequest(h.TrashItem, http.MethodPost, "/api/items/abc/trash", "owner-1", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["code"] != domain.CodeMissingFields {
		t.Errorf("code = %v, want %q", body["code"], domain.CodeMissingFields)
	}
}

func TestDeleteItemKindFromQuery(t *testing.T) {
	svc := &stubService{}
	h := newTestHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/items/abc?type=book", nil)
	req = httputil.WithOwnerID(req, "owner-1")
	req.SetPathValue("id", "abc")
	rec := httptest.NewRecorder()
	h.DeleteItem(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.gotKind != models.KindBook {
		t.Errorf("kind = %q, want book", svc.gotKind)
	}

	rec = doRequest(h.DeleteItem, http.MethodDelete, "/api/items/abc", "owner-1", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing type status = %d, want 400", rec.Code)
	}
}

func TestListTrashResponse(t *testing.T) {
	svc := &stubService{trash: &workspace.TrashListing{
		Books:    []models.Book{{ID: "b1", Title: "Binned", Tags: []string{}}},
		Contents: []models.Content{{ID: "c1", Title: "Also binned", Tags: []string{}}},
	}}
	h := newTestHandler(svc)

	rec := doRequest(h.ListTrash, http.MethodGet, "/api/trash", "owner-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Items []map[string]interface{} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(resp.Items))
	}
	if resp.Items[0]["title"] != "Also binned" {
		t.Errorf("items[0].title = %v, want merged sort", resp.Items[0]["title"])
	}
}

func TestHealthCheck(t *testing.T) {
	h := newTestHandler(&stubService{})
	rec := doRequest(h.HealthCheck, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q, want ok status", rec.Body.String())
	}
}
