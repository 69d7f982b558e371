package sqlite

import (
	"context"
	"database/sql"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so every repo runs unchanged
// inside or outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db dbtx
}

func newQueries(db dbtx) *queries {
	return &queries{db: db}
}

const playerColumns = `id, name, discord_id, email, role, created_at, updated_at`

type playerRow struct {
	ID        string
	Name      string
	DiscordID int64
	Email     sql.NullString
	Role      int64
	CreatedAt int64
	UpdatedAt int64
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (playerRow, error) {
	var r playerRow
	err := row.Scan(&r.ID, &r.Name, &r.DiscordID, &r.Email, &r.Role, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

func (q *queries) getPlayerBy(ctx context.Context, column string, arg any) (playerRow, error) {
	// column is always one of the literals below, never caller input.
	return scanPlayer(q.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE `+column+` = ?`, arg))
}

func (q *queries) createPlayer(ctx context.Context, r playerRow) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO players (`+playerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.DiscordID, r.Email, r.Role, r.CreatedAt, r.UpdatedAt)
	return err
}

func (q *queries) updatePlayerColumn(ctx context.Context, id, column string, value any, now int64) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE players SET `+column+` = ?, updated_at = ? WHERE id = ?`, value, now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *queries) createCredential(ctx context.Context, tokenHash string, discordID, createdAt int64) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO credentials (token_hash, discord_id, created_at) VALUES (?, ?, ?)`,
		tokenHash, discordID, createdAt)
	return err
}

func (q *queries) getPlayerByTokenHash(ctx context.Context, tokenHash string) (playerRow, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.discord_id, p.email, p.role, p.created_at, p.updated_at
		FROM credentials c
		JOIN players p ON p.discord_id = c.discord_id
		WHERE c.token_hash = ?`, tokenHash))
}

func (q *queries) deleteCredentialsByDiscordID(ctx context.Context, discordID int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM credentials WHERE discord_id = ?`, discordID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *queries) createPendingAuthorization(ctx context.Context, stateHash, verifier string, expiresAt, createdAt int64) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO pending_authorizations (state_hash, code_verifier, expires_at, created_at)
		VALUES (?, ?, ?, ?)`, stateHash, verifier, expiresAt, createdAt)
	return err
}

func (q *queries) consumePendingAuthorization(ctx context.Context, stateHash string) (verifier string, expiresAt, createdAt int64, err error) {
	err = q.db.QueryRowContext(ctx, `
		DELETE FROM pending_authorizations
		WHERE state_hash = ?
		RETURNING code_verifier, expires_at, created_at`, stateHash).
		Scan(&verifier, &expiresAt, &createdAt)
	return verifier, expiresAt, createdAt, err
}

func (q *queries) deleteExpiredPendingAuthorizations(ctx context.Context, now int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM pending_authorizations WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
