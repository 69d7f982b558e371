package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/cubicworld/cwsite/internal/auth/domain"
	"github.com/cubicworld/cwsite/internal/auth/store"
	"github.com/cubicworld/cwsite/pkg/cryptox"
	"github.com/cubicworld/cwsite/pkg/idx"
	"github.com/cubicworld/cwsite/pkg/slogx"
)

// DefaultPendingTTL bounds how long a login attempt may take.
const DefaultPendingTTL = 10 * time.Minute

// Fallback name discriminators. "discord-" plus a 20 digit id leaves four
// runes under the name limit.
const (
	maxNumericSuffix = 9
	maxRandomSuffix  = 8
)

// Authenticator is the identity provider side of the login flow.
type Authenticator interface {
	AuthorizationURL(state, verifier string) string
	Exchange(ctx context.Context, code, verifier string) (domain.ExternalUser, error)
}

// Principal is the resolved identity behind a bearer credential.
type Principal struct {
	Player domain.Player
	Tier   domain.Tier
}

// Session is the outcome of a completed login.
type Session struct {
	Token   string
	Player  domain.Player
	Created bool // the player was provisioned by this login
}

// SessionService composes the provider exchange with player and credential
// storage.
type SessionService struct {
	Store       store.Store
	OAuth       Authenticator
	Credentials *CredentialService
	PendingTTL  time.Duration

	// Now and Random are overridable for tests.
	Now    func() time.Time
	Random io.Reader
}

func (s *SessionService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

func (s *SessionService) random() io.Reader {
	if s.Random == nil {
		return rand.Reader
	}
	return s.Random
}

// Begin starts a login attempt: a fresh CSRF state and PKCE verifier are
// generated, the verifier is kept against the state's fingerprint, and the
// provider URL to redirect to is returned.
func (s *SessionService) Begin(ctx context.Context) (string, error) {
	state, err := cryptox.GenerateTokenFrom(s.random(), cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropy, err)
	}
	// 32 bytes base64url is 43 characters, the RFC 7636 minimum.
	verifier, err := cryptox.GenerateTokenFrom(s.random(), cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropy, err)
	}

	ttl := s.PendingTTL
	if ttl <= 0 {
		ttl = DefaultPendingTTL
	}
	now := s.now()

	err = s.Store.PendingAuthorizations().CreatePendingAuthorization(ctx, domain.PendingAuthorization{
		StateHash:    cryptox.FingerprintToken(state),
		CodeVerifier: verifier,
		ExpiresAt:    now.Add(ttl),
		CreatedAt:    now,
	})
	if err != nil {
		return "", fmt.Errorf("store pending authorization: %w", err)
	}

	return s.OAuth.AuthorizationURL(state, verifier), nil
}

// Complete finishes the attempt identified by state. The pending attempt is
// consumed before the provider is contacted so a state can never be replayed,
// even when the exchange fails. A provider failure leaves nothing persisted.
func (s *SessionService) Complete(ctx context.Context, state, code string) (Session, error) {
	l := slogx.FromContext(ctx)

	if state == "" || code == "" {
		return Session{}, ErrInvalidState
	}

	pending, err := s.Store.PendingAuthorizations().ConsumePendingAuthorization(ctx, cryptox.FingerprintToken(state))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrInvalidState
		}
		return Session{}, fmt.Errorf("consume pending authorization: %w", err)
	}
	if pending.Expired(s.now()) {
		return Session{}, ErrInvalidState
	}

	ext, err := s.OAuth.Exchange(ctx, code, pending.CodeVerifier)
	if err != nil {
		l.Warn("oauth exchange failed", "error", err)
		return Session{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	var out Session
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		p, created, err := s.resolvePlayer(ctx, tx, ext)
		if err != nil {
			return err
		}
		cred, err := s.Credentials.issue(ctx, tx, p.DiscordID)
		if err != nil {
			return err
		}
		out = Session{Token: cred.Token, Player: p, Created: created}
		return nil
	})
	if err != nil {
		return Session{}, err
	}

	l.Info("login completed", "player_id", out.Player.ID, "discord_id", ext.ID, "created", out.Created)
	return out, nil
}

// resolvePlayer finds the player bound to ext or provisions one. The email is
// refreshed when the provider reports a different one.
func (s *SessionService) resolvePlayer(ctx context.Context, tx store.Store, ext domain.ExternalUser) (domain.Player, bool, error) {
	p, err := tx.Players().GetPlayerByDiscordID(ctx, ext.ID)
	switch {
	case err == nil:
		if ext.Email != nil && !sameEmail(p.Email, ext.Email) {
			now := s.now()
			if err := tx.Players().UpdatePlayerEmail(ctx, p.ID, ext.Email, now); err != nil {
				return domain.Player{}, false, fmt.Errorf("update email: %w", err)
			}
			p.Email, p.UpdatedAt = ext.Email, now
		}
		return p, false, nil
	case !errors.Is(err, store.ErrNotFound):
		return domain.Player{}, false, err
	}

	name, err := s.pickName(ctx, tx, ext)
	if err != nil {
		return domain.Player{}, false, err
	}

	now := s.now()
	p = domain.Player{
		ID:        idx.NewAt(now).String(),
		Name:      name,
		DiscordID: ext.ID,
		Email:     ext.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := createPlayer(ctx, tx, p); err != nil {
		return domain.Player{}, false, err
	}
	return p, true, nil
}

// pickName prefers the provider username and falls back to a name derived
// from the account id when the username is unusable or taken. A taken
// fallback gets a numeric suffix, then a random ULID tail.
func (s *SessionService) pickName(ctx context.Context, tx store.Store, ext domain.ExternalUser) (string, error) {
	base := "discord-" + strconv.FormatUint(ext.ID, 10)

	candidates := make([]string, 0, maxNumericSuffix+1)
	if name := strings.TrimSpace(ext.Username); ValidName(name) {
		candidates = append(candidates, name)
	}
	candidates = append(candidates, base)
	for i := 2; i <= maxNumericSuffix; i++ {
		candidates = append(candidates, base+"-"+strconv.Itoa(i))
	}
	for range maxRandomSuffix {
		id := idx.New().String()
		candidates = append(candidates, base+"-"+strings.ToLower(id[len(id)-3:]))
	}

	for _, name := range candidates {
		taken, err := exists(tx.Players().GetPlayerByName(ctx, name))
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
	}
	return "", &ConflictError{Name: base}
}

func sameEmail(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Resolve maps a presented bearer token to its player and tier.
func (s *SessionService) Resolve(ctx context.Context, token string) (Principal, error) {
	p, err := s.Credentials.Lookup(ctx, token)
	if err != nil {
		return Principal{}, err
	}
	return Principal{Player: p, Tier: p.Tier()}, nil
}

// Logout revokes every credential of the player's discord account.
func (s *SessionService) Logout(ctx context.Context, discordID uint64) error {
	return s.Credentials.Revoke(ctx, discordID)
}
