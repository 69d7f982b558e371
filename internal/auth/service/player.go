package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cubicworld/cwsite/internal/auth/domain"
	"github.com/cubicworld/cwsite/internal/auth/store"
	"github.com/cubicworld/cwsite/pkg/idx"
	"github.com/cubicworld/cwsite/pkg/slogx"
)

const (
	minNameLength = 2
	maxNameLength = 32
)

type PlayerService struct {
	Store store.Store
}

// Create provisions a new player. An empty ID is replaced with a fresh ULID.
// If either the id or the name is taken the call fails with a *ConflictError
// naming both.
func (s *PlayerService) Create(ctx context.Context, p domain.Player) (domain.Player, error) {
	p.Name = strings.TrimSpace(p.Name)
	if !ValidName(p.Name) || p.DiscordID == 0 {
		return domain.Player{}, ErrInvalidPlayer
	}
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = idx.NewAt(now).String()
	}
	p.CreatedAt, p.UpdatedAt = now, now

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		return createPlayer(ctx, tx, p)
	})
	if err != nil {
		return domain.Player{}, err
	}

	slogx.FromContext(ctx).Info("player created", "player_id", p.ID, "discord_id", p.DiscordID)
	return p, nil
}

// createPlayer checks id and name together so a collision reports both, then
// inserts. A unique violation from a concurrent insert maps to the same error.
func createPlayer(ctx context.Context, tx store.Store, p domain.Player) error {
	idTaken, err := exists(tx.Players().GetPlayerByID(ctx, p.ID))
	if err != nil {
		return err
	}
	nameTaken, err := exists(tx.Players().GetPlayerByName(ctx, p.Name))
	if err != nil {
		return err
	}
	if idTaken || nameTaken {
		return &ConflictError{ID: p.ID, Name: p.Name}
	}

	if err := tx.Players().CreatePlayer(ctx, p); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return &ConflictError{ID: p.ID, Name: p.Name, DiscordID: p.DiscordID}
		}
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

func exists(_ domain.Player, err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *PlayerService) GetByID(ctx context.Context, id string) (domain.Player, error) {
	return mapPlayer(s.Store.Players().GetPlayerByID(ctx, id))
}

func (s *PlayerService) GetByName(ctx context.Context, name string) (domain.Player, error) {
	return mapPlayer(s.Store.Players().GetPlayerByName(ctx, name))
}

func (s *PlayerService) GetByDiscordID(ctx context.Context, discordID uint64) (domain.Player, error) {
	return mapPlayer(s.Store.Players().GetPlayerByDiscordID(ctx, discordID))
}

// Update renames a player and/or changes its tier on behalf of actor. The
// actor must be permitted both the target's current tier and the new one, so
// nobody can promote past themselves or touch someone above them. Reserved
// role bits are preserved.
func (s *PlayerService) Update(ctx context.Context, actor domain.Tier, id string, upd domain.PlayerUpdate) (domain.Player, error) {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if !ValidName(name) {
			return domain.Player{}, ErrInvalidPlayer
		}
		upd.Name = &name
	}
	if upd.Tier != nil && (*upd.Tier == domain.TierReserved || *upd.Tier > domain.TierAdmin) {
		return domain.Player{}, ErrInvalidPlayer
	}

	var out domain.Player
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, err := mapPlayer(tx.Players().GetPlayerByID(ctx, id))
		if err != nil {
			return err
		}
		if !actor.IsPermitted(p.Tier()) {
			return ErrForbidden
		}

		now := time.Now().UTC()
		if upd.Name != nil && *upd.Name != p.Name {
			err := tx.Players().UpdatePlayerName(ctx, id, *upd.Name, now)
			if errors.Is(err, store.ErrAlreadyExists) {
				return &ConflictError{ID: id, Name: *upd.Name}
			}
			if err != nil {
				return fmt.Errorf("rename player: %w", err)
			}
		}

		if upd.Tier != nil && *upd.Tier != p.Tier() {
			if !actor.IsPermitted(*upd.Tier) {
				return ErrForbidden
			}
			if err := tx.Players().UpdatePlayerRole(ctx, id, p.Role.WithTier(*upd.Tier), now); err != nil {
				return fmt.Errorf("update role: %w", err)
			}
		}

		out, err = mapPlayer(tx.Players().GetPlayerByID(ctx, id))
		return err
	})
	if err != nil {
		return domain.Player{}, err
	}

	slogx.FromContext(ctx).Info("player updated", "player_id", id, "tier", out.Tier().String())
	return out, nil
}

// ValidName reports whether name can be used as a display name.
func ValidName(name string) bool {
	n := utf8.RuneCountInString(name)
	if n < minNameLength || n > maxNameLength {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func mapPlayer(p domain.Player, err error) (domain.Player, error) {
	if errors.Is(err, store.ErrNotFound) {
		return domain.Player{}, ErrNotFound
	}
	return p, err
}
