package workspace

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
)

// CreateItemRequest carries the payload for creating either item kind.
// Kind-specific fields supplied for the wrong kind are ignored.
type CreateItemRequest struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	ParentID    *string  `json:"parentId"`
	Thumbnail   *string  `json:"thumbnail"`
	Description *string  `json:"description"`
	Genre       *string  `json:"genre"`
	Data        *string  `json:"data"`
	Institution *string  `json:"institution"`
	Subject     *string  `json:"subject"`
	Tags        []string `json:"tags"`
}

// Validate checks the payload shape and returns the parsed kind.
// Required-field and kind checks run first so their specific error codes
// are not masked by the limit rules.
func (r *CreateItemRequest) Validate() (models.Kind, error) {
	if strings.TrimSpace(r.Type) == "" {
		return "", domain.MissingFields("type is required")
	}
	kind, err := models.ParseKind(r.Type)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(r.Title) == "" {
		return "", domain.MissingFields("title is required")
	}

	err = validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&r.Thumbnail, validation.Length(0, config.MaxThumbnailLength)),
		validation.Field(&r.Tags,
			validation.Length(0, config.MaxTagCount),
			validation.Each(validation.Required, validation.Length(1, config.MaxTagLength)),
		),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return kind, nil
}

// UpdateItemRequest carries a partial update: the item kind plus the set of
// fields to change. Field presence is significant (PATCH semantics), so
// nullable fields use the tri-state OptionalString.
type UpdateItemRequest struct {
	Type   string       `json:"type"`
	Fields UpdateFields `json:"fields"`
}

// UpdateFields is the full space of updatable fields across both kinds.
// Which of them are honored is decided per kind by the lifecycle manager's
// allow-lists; unrecognized ones are dropped, never written.
type UpdateFields struct {
	Title       *string                 `json:"title"`
	Thumbnail   *string                 `json:"thumbnail"`
	Tags        *[]string               `json:"tags"`
	IsDraft     *bool                   `json:"isDraft"`
	Description httputil.OptionalString `json:"description"`
	Genre       httputil.OptionalString `json:"genre"`
	Data        *string                 `json:"data"`
	Institution httputil.OptionalString `json:"institution"`
	Subject     httputil.OptionalString `json:"subject"`
}

// Validate checks the payload shape and returns the parsed kind.
func (r *UpdateItemRequest) Validate() (models.Kind, error) {
	if strings.TrimSpace(r.Type) == "" {
		return "", domain.MissingFields("type is required")
	}
	kind, err := models.ParseKind(r.Type)
	if err != nil {
		return "", err
	}

	if r.Fields.Title != nil && strings.TrimSpace(*r.Fields.Title) == "" {
		return "", domain.MissingFields("title cannot be empty")
	}

	f := &r.Fields
	err = validation.ValidateStruct(f,
		validation.Field(&f.Title, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&f.Thumbnail, validation.Length(0, config.MaxThumbnailLength)),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if f.Tags != nil {
		if len(*f.Tags) > config.MaxTagCount {
			return "", fmt.Errorf("%w: too many tags", domain.ErrValidation)
		}
		for _, tag := range *f.Tags {
			if tag == "" || len(tag) > config.MaxTagLength {
				return "", fmt.Errorf("%w: invalid tag %q", domain.ErrValidation, tag)
			}
		}
	}

	return kind, nil
}
