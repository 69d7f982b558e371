package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cubicworld/cwsite/internal/auth/domain"
	"github.com/cubicworld/cwsite/internal/auth/store"
	"github.com/cubicworld/cwsite/pkg/cryptox"
	"github.com/cubicworld/cwsite/pkg/slogx"
)

// CredentialService mints, resolves and revokes opaque bearer credentials.
type CredentialService struct {
	Store store.Store

	// Random is the entropy source; nil means crypto/rand.
	Random io.Reader
}

func (s *CredentialService) random() io.Reader {
	if s.Random == nil {
		return rand.Reader
	}
	return s.Random
}

// Generate builds a fresh credential for discordID without persisting it.
func (s *CredentialService) Generate(discordID uint64) (domain.Credential, error) {
	token, err := cryptox.GenerateCredentialToken(s.random(), discordID)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("%w: %w", ErrEntropy, err)
	}
	return domain.Credential{
		DiscordID: discordID,
		Token:     token,
		TokenHash: cryptox.FingerprintToken(token),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Insert persists c. An unknown discord account is ErrNotFound; a token
// collision is a storage failure.
func (s *CredentialService) Insert(ctx context.Context, c domain.Credential) error {
	return insertCredential(ctx, s.Store, c)
}

func insertCredential(ctx context.Context, st store.Store, c domain.Credential) error {
	if c.TokenHash == "" {
		c.TokenHash = cryptox.FingerprintToken(c.Token)
	}

	err := st.Credentials().CreateCredential(ctx, c)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("insert credential: %w", err)
	}
}

// Lookup resolves a presented token to the player it was issued to. The
// token's hex prefix must name the owning account.
func (s *CredentialService) Lookup(ctx context.Context, token string) (domain.Player, error) {
	if len(token) != cryptox.CredentialTokenLength {
		return domain.Player{}, ErrNotFound
	}

	p, err := mapPlayer(s.Store.Credentials().GetPlayerByTokenHash(ctx, cryptox.FingerprintToken(token)))
	if err != nil {
		return domain.Player{}, err
	}
	if !strings.HasPrefix(token, cryptox.CredentialTokenPrefix(p.DiscordID)) {
		slogx.FromContext(ctx).Warn("credential prefix mismatch", "discord_id", p.DiscordID)
		return domain.Player{}, ErrNotFound
	}
	return p, nil
}

// Revoke deletes every credential held by discordID. Revoking an account
// with no credentials is not an error.
func (s *CredentialService) Revoke(ctx context.Context, discordID uint64) error {
	n, err := s.Store.Credentials().DeleteCredentialsByDiscordID(ctx, discordID)
	if err != nil {
		return fmt.Errorf("revoke credentials: %w", err)
	}
	slogx.FromContext(ctx).Info("credentials revoked", "discord_id", discordID, "count", n)
	return nil
}

// Issue replaces every credential of discordID with a single new one.
func (s *CredentialService) Issue(ctx context.Context, discordID uint64) (domain.Credential, error) {
	var cred domain.Credential
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		cred, err = s.issue(ctx, tx, discordID)
		return err
	})
	return cred, err
}

// issue runs inside the caller's transaction.
func (s *CredentialService) issue(ctx context.Context, tx store.Store, discordID uint64) (domain.Credential, error) {
	if _, err := tx.Credentials().DeleteCredentialsByDiscordID(ctx, discordID); err != nil {
		return domain.Credential{}, fmt.Errorf("revoke credentials: %w", err)
	}

	cred, err := s.Generate(discordID)
	if err != nil {
		return domain.Credential{}, err
	}
	if err := insertCredential(ctx, tx, cred); err != nil {
		return domain.Credential{}, err
	}

	slogx.FromContext(ctx).Info("credential issued", "discord_id", discordID)
	return cred, nil
}
