package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not_found")
	ErrConflict      = errors.New("conflict")
	ErrUpstream      = errors.New("upstream_failure")
	ErrEntropy       = errors.New("entropy_failure")
	ErrInvalidState  = errors.New("invalid_state")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidPlayer = errors.New("invalid_player")
)

// ConflictError reports a player creation or rename that collides with an
// existing player. It always names both the id and the name that were
// attempted so the caller can correct either.
type ConflictError struct {
	ID        string
	Name      string
	DiscordID uint64 // set when the collision may involve the discord account
}

func (e *ConflictError) Error() string {
	if e.DiscordID != 0 {
		return fmt.Sprintf("player already exists: id=%q name=%q discord_id=%d", e.ID, e.Name, e.DiscordID)
	}
	return fmt.Sprintf("player already exists: id=%q name=%q", e.ID, e.Name)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
