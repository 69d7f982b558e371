package domain

import "time"

// Credential binds an opaque bearer token to a Discord account. Only the
// token fingerprint is ever persisted.
type Credential struct {
	DiscordID uint64
	Token     string // plaintext, only held in memory right after generation
	TokenHash string // base64url SHA-256 fingerprint of Token
	CreatedAt time.Time
}
