package sqlite

import (
	"context"
	"database/sql"

	"github.com/cubicworld/cwsite/internal/auth/store"
)

type txStore struct {
	tx *sql.Tx
	q  *queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{
		tx: tx,
		q:  newQueries(tx),
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the owner commits or rolls back and the DB stays open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op for transactions, the connection is already held.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Players() store.Players         { return &playersRepo{q: t.q} }
func (t *txStore) Credentials() store.Credentials { return &credentialsRepo{q: t.q} }
func (t *txStore) PendingAuthorizations() store.PendingAuthorizations {
	return &pendingRepo{q: t.q}
}

// ApplyMigrations is a no-op; migrations run before any transaction is opened.
func (t *txStore) ApplyMigrations() error { return nil }
