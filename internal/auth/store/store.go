package store

import (
	"context"
	"errors"
	"time"

	"github.com/cubicworld/cwsite/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so a transaction can only ever be opened from the
// root, never from inside another transaction.
type Store interface {
	Players() Players
	Credentials() Credentials
	PendingAuthorizations() PendingAuthorizations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn inside a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Players interface {
	GetPlayerByID(ctx context.Context, id string) (domain.Player, error)
	GetPlayerByName(ctx context.Context, name string) (domain.Player, error)
	GetPlayerByDiscordID(ctx context.Context, discordID uint64) (domain.Player, error)

	// CreatePlayer inserts p. A duplicate id, name or discord id returns
	// ErrAlreadyExists.
	CreatePlayer(ctx context.Context, p domain.Player) error

	// UpdatePlayerName renames a player and bumps updated_at. A taken name
	// returns ErrAlreadyExists.
	UpdatePlayerName(ctx context.Context, id, name string, now time.Time) error

	// UpdatePlayerRole overwrites the packed role field.
	UpdatePlayerRole(ctx context.Context, id string, role domain.RoleField, now time.Time) error

	// UpdatePlayerEmail sets or clears the email.
	UpdatePlayerEmail(ctx context.Context, id string, email *string, now time.Time) error
}

type Credentials interface {
	// CreateCredential stores a credential by its token hash. A hash collision
	// returns ErrAlreadyExists; an unknown discord id returns ErrNotFound.
	CreateCredential(ctx context.Context, c domain.Credential) error

	// GetPlayerByTokenHash joins a credential to its owning player.
	GetPlayerByTokenHash(ctx context.Context, tokenHash string) (domain.Player, error)

	// DeleteCredentialsByDiscordID removes every credential of a player and
	// reports how many were removed. Zero is not an error.
	DeleteCredentialsByDiscordID(ctx context.Context, discordID uint64) (int64, error)
}

type PendingAuthorizations interface {
	CreatePendingAuthorization(ctx context.Context, p domain.PendingAuthorization) error

	// ConsumePendingAuthorization deletes and returns the row for stateHash so
	// it can only ever be redeemed once. Expiry is checked by the caller.
	ConsumePendingAuthorization(ctx context.Context, stateHash string) (domain.PendingAuthorization, error)

	// DeleteExpiredPendingAuthorizations is housekeeping.
	DeleteExpiredPendingAuthorizations(ctx context.Context, now time.Time) (int64, error)
}
