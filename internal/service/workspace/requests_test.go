package workspace

import (
	"errors"
	"strings"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

func TestCreateItemRequestLimits(t *testing.T) {
	longTitle := strings.Repeat("a", config.MaxTitleLength+1)
	manyTags := make([]string, config.MaxTagCount+1)
	for i := range manyTags {
		manyTags[i] = "tag"
	}

	tests := []struct {
		name    string
		req     CreateItemRequest
		wantErr error
	}{
		{"ok", CreateItemRequest{Type: "book", Title: "Fine"}, nil},
		{"title too long", CreateItemRequest{Type: "book", Title: longTitle}, domain.ErrValidation},
		{"thumbnail too long", CreateItemRequest{Type: "book", Title: "x", Thumbnail: strPtr(strings.Repeat("u", config.MaxThumbnailLength+1))}, domain.ErrValidation},
		{"too many tags", CreateItemRequest{Type: "book", Title: "x", Tags: manyTags}, domain.ErrValidation},
		{"oversized tag", CreateItemRequest{Type: "book", Title: "x", Tags: []string{strings.Repeat("t", config.MaxTagLength+1)}}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := tt.req.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				if kind != models.KindBook {
					t.Errorf("kind = %q, want book", kind)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateItemRequestValidation(t *testing.T) {
	manyTags := make([]string, config.MaxTagCount+1)
	for i := range manyTags {
		manyTags[i] = "tag"
	}

	tests := []struct {
		name    string
		req     UpdateItemRequest
		wantErr error
	}{
		{"ok", UpdateItemRequest{Type: "content", Fields: UpdateFields{Data: strPtr("body")}}, nil},
		{"missing type", UpdateItemRequest{Fields: UpdateFields{Title: strPtr("x")}}, domain.ErrValidation},
		{"unknown type", UpdateItemRequest{Type: "scroll"}, domain.ErrValidation},
		{"blank title", UpdateItemRequest{Type: "book", Fields: UpdateFields{Title: strPtr("  ")}}, domain.ErrValidation},
		{"title too long", UpdateItemRequest{Type: "book", Fields: UpdateFields{Title: strPtr(strings.Repeat("a", config.MaxTitleLength+1))}}, domain.ErrValidation},
		{"too many tags", UpdateItemRequest{Type: "book", Fields: UpdateFields{Tags: &manyTags}}, domain.ErrValidation},
		{"empty tag", UpdateItemRequest{Type: "book", Fields: UpdateFields{Tags: &[]string{""}}}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
