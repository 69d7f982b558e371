package sqlite

import (
	"context"
	"time"

	"github.com/cubicworld/cwsite/internal/auth/domain"
)

type pendingRepo struct {
	q *queries
}

func (r *pendingRepo) CreatePendingAuthorization(ctx context.Context, p domain.PendingAuthorization) error {
	return mapConstraint(r.q.createPendingAuthorization(ctx,
		p.StateHash, p.CodeVerifier, toMillis(p.ExpiresAt), toMillis(p.CreatedAt)))
}

func (r *pendingRepo) ConsumePendingAuthorization(ctx context.Context, stateHash string) (domain.PendingAuthorization, error) {
	verifier, expiresAt, createdAt, err := r.q.consumePendingAuthorization(ctx, stateHash)
	if err != nil {
		return domain.PendingAuthorization{}, mapNotFound(err)
	}
	return domain.PendingAuthorization{
		StateHash:    stateHash,
		CodeVerifier: verifier,
		ExpiresAt:    fromMillis(expiresAt),
		CreatedAt:    fromMillis(createdAt),
	}, nil
}

func (r *pendingRepo) DeleteExpiredPendingAuthorizations(ctx context.Context, now time.Time) (int64, error) {
	return r.q.deleteExpiredPendingAuthorizations(ctx, toMillis(now))
}
