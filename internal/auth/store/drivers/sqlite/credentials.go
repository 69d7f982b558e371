package sqlite

import (
	"context"

	"github.com/cubicworld/cwsite/internal/auth/domain"
)

type credentialsRepo struct {
	q *queries
}

func (r *credentialsRepo) CreateCredential(ctx context.Context, c domain.Credential) error {
	return mapConstraint(r.q.createCredential(ctx, c.TokenHash, toSnowflake(c.DiscordID), toMillis(c.CreatedAt)))
}

func (r *credentialsRepo) GetPlayerByTokenHash(ctx context.Context, tokenHash string) (domain.Player, error) {
	row, err := r.q.getPlayerByTokenHash(ctx, tokenHash)
	if err != nil {
		return domain.Player{}, mapNotFound(err)
	}
	return mapPlayer(row), nil
}

func (r *credentialsRepo) DeleteCredentialsByDiscordID(ctx context.Context, discordID uint64) (int64, error) {
	return r.q.deleteCredentialsByDiscordID(ctx, toSnowflake(discordID))
}
