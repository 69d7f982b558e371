package sqlite

import (
	"context"
	"time"

	"github.com/cubicworld/cwsite/internal/auth/domain"
	"github.com/cubicworld/cwsite/internal/auth/store"
)

type playersRepo struct {
	q *queries
}

func (r *playersRepo) GetPlayerByID(ctx context.Context, id string) (domain.Player, error) {
	row, err := r.q.getPlayerBy(ctx, "id", id)
	if err != nil {
		return domain.Player{}, mapNotFound(err)
	}
	return mapPlayer(row), nil
}

func (r *playersRepo) GetPlayerByName(ctx context.Context, name string) (domain.Player, error) {
	row, err := r.q.getPlayerBy(ctx, "name", name)
	if err != nil {
		return domain.Player{}, mapNotFound(err)
	}
	return mapPlayer(row), nil
}

func (r *playersRepo) GetPlayerByDiscordID(ctx context.Context, discordID uint64) (domain.Player, error) {
	row, err := r.q.getPlayerBy(ctx, "discord_id", toSnowflake(discordID))
	if err != nil {
		return domain.Player{}, mapNotFound(err)
	}
	return mapPlayer(row), nil
}

func (r *playersRepo) CreatePlayer(ctx context.Context, p domain.Player) error {
	return mapConstraint(r.q.createPlayer(ctx, playerRow{
		ID:        p.ID,
		Name:      p.Name,
		DiscordID: toSnowflake(p.DiscordID),
		Email:     mapOptionalString(p.Email),
		Role:      int64(p.Role),
		CreatedAt: toMillis(p.CreatedAt),
		UpdatedAt: toMillis(p.UpdatedAt),
	}))
}

func (r *playersRepo) UpdatePlayerName(ctx context.Context, id, name string, now time.Time) error {
	n, err := r.q.updatePlayerColumn(ctx, id, "name", name, toMillis(now))
	return affectedOne(n, mapConstraint(err))
}

func (r *playersRepo) UpdatePlayerRole(ctx context.Context, id string, role domain.RoleField, now time.Time) error {
	n, err := r.q.updatePlayerColumn(ctx, id, "role", int64(role), toMillis(now))
	return affectedOne(n, err)
}

func (r *playersRepo) UpdatePlayerEmail(ctx context.Context, id string, email *string, now time.Time) error {
	n, err := r.q.updatePlayerColumn(ctx, id, "email", mapOptionalString(email), toMillis(now))
	return affectedOne(n, err)
}

func affectedOne(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapPlayer(row playerRow) domain.Player {
	return domain.Player{
		ID:        row.ID,
		Name:      row.Name,
		DiscordID: fromSnowflake(row.DiscordID),
		Email:     mapNullStringPtr(row.Email),
		Role:      domain.RoleField(row.Role),
		CreatedAt: fromMillis(row.CreatedAt),
		UpdatedAt: fromMillis(row.UpdatedAt),
	}
}
