package domain

import "time"

// ExternalUser is the identity provider's view of an account.
type ExternalUser struct {
	ID       uint64
	Username string
	Email    *string
}

// PendingAuthorization is a single in-flight login attempt. It is created when
// the user is redirected to the provider and consumed exactly once by the
// callback carrying the matching state.
type PendingAuthorization struct {
	StateHash    string // fingerprint of the CSRF state sent to the provider
	CodeVerifier string // PKCE verifier whose S256 challenge was sent
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// Expired reports whether the attempt can no longer be completed.
func (p PendingAuthorization) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
