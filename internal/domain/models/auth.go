package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// WorkspaceClaims are the JWT claims issued by the external identity
// collaborator. The subject claim is the owner id used to scope every
// workspace operation.
type WorkspaceClaims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}
