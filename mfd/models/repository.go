package models

import "context"

// Repository contains the methods needed to interact with stored claims.
// The store is append-only: no update or delete operations exist.
type Repository interface {
	// CreateClaim persists the claim with its verdict and returns the
	// stored record including the generated id. The write is atomic.
	CreateClaim(ctx context.Context, claim Claim) (*Claim, error)

	// ListClaims returns stored claims in insertion order starting at
	// offset, at most limit items. Enforcing the limit ceiling is the
	// caller's responsibility; it is rejected at the API boundary.
	ListClaims(ctx context.Context, offset, limit int) ([]*Claim, error)
}
