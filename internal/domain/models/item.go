package models

import (
	"fmt"

	"inkwell/internal/domain"
)

// Kind discriminates the two item kinds stored in the workspace.
type Kind string

const (
	// KindBook is a container item; only books can be parents.
	KindBook Kind = "book"
	// KindContent is a leaf item holding an authored payload.
	KindContent Kind = "content"
)

// ParseKind validates an external kind discriminant.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBook, KindContent:
		return Kind(s), nil
	default:
		return "", domain.InvalidType(fmt.Sprintf("unknown item type %q", s))
	}
}

// Breadcrumb is one entry in the ancestor path of a book.
type Breadcrumb struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RootBreadcrumb heads every breadcrumb trail, including the root listing's.
var RootBreadcrumb = Breadcrumb{ID: "root", Title: "Home"}
