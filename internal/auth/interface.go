package auth

import "inkwell/internal/domain/models"

// TokenVerifier defines the interface for bearer token verification.
// This abstraction keeps the middleware agnostic to the verification
// details and lets dev deployments run without the identity collaborator.
type TokenVerifier interface {
	// VerifyToken validates a JWT token string and returns the parsed claims.
	// Returns an error if the token is invalid, expired, or has an invalid signature.
	VerifyToken(tokenString string) (*models.WorkspaceClaims, error)

	// Close releases any resources held by the verifier (e.g., HTTP connections for JWKS).
	// Should be called when the verifier is no longer needed.
	Close() error
}
