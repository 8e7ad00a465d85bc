package models

import (
	"errors"
	"testing"

	"inkwell/internal/domain"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"book", KindBook, false},
		{"content", KindContent, false},
		{"", "", true},
		{"Book", "", true},
		{"folder", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("ParseKind(%q) err = %v, want validation error", tt.in, err)
				}
				var verr *domain.ValidationError
				if !errors.As(err, &verr) || verr.Code != domain.CodeInvalidType {
					t.Errorf("ParseKind(%q) code = %v, want %q", tt.in, err, domain.CodeInvalidType)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
