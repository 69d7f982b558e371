package service

import (
	"context"
	"testing"

	"github.com/cubicworld/cwsite/internal/auth/domain"
	"github.com/cubicworld/cwsite/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestCredentialLifecycle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	players := &PlayerService{Store: st}
	creds := &CredentialService{Store: st}

	p := mustCreatePlayer(t, players, "player-1", "steve", 0xABCDEF, domain.TierModerator)

	cred, err := creds.Generate(p.DiscordID)
	require.NoError(t, err)
	require.Len(t, cred.Token, cryptox.CredentialTokenLength)
	require.Equal(t, "0000000000ABCDEF", cred.Token[:16])
	require.Equal(t, cryptox.FingerprintToken(cred.Token), cred.TokenHash)

	require.NoError(t, creds.Insert(ctx, cred))

	t.Run("lookup resolves the owner", func(t *testing.T) {
		got, err := creds.Lookup(ctx, cred.Token)
		require.NoError(t, err)
		require.Equal(t, p.ID, got.ID)
	})

	t.Run("unknown and malformed tokens", func(t *testing.T) {
		other, err := creds.Generate(p.DiscordID)
		require.NoError(t, err)

		_, err = creds.Lookup(ctx, other.Token)
		require.ErrorIs(t, err, ErrNotFound)
		_, err = creds.Lookup(ctx, "")
		require.ErrorIs(t, err, ErrNotFound)
		_, err = creds.Lookup(ctx, "short")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("token prefix must name the owning account", func(t *testing.T) {
		foreign, err := creds.Generate(7)
		require.NoError(t, err)
		foreign.DiscordID = p.DiscordID
		require.NoError(t, creds.Insert(ctx, foreign))

		_, err = creds.Lookup(ctx, foreign.Token)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("inserting the same token twice is a storage error", func(t *testing.T) {
		err := creds.Insert(ctx, cred)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("insert for an unknown account", func(t *testing.T) {
		orphan, err := creds.Generate(42)
		require.NoError(t, err)
		require.ErrorIs(t, creds.Insert(ctx, orphan), ErrNotFound)
	})

	t.Run("revoke then lookup is not found", func(t *testing.T) {
		require.NoError(t, creds.Revoke(ctx, p.DiscordID))

		_, err := creds.Lookup(ctx, cred.Token)
		require.ErrorIs(t, err, ErrNotFound)

		// Idempotent, including for accounts that never existed.
		require.NoError(t, creds.Revoke(ctx, p.DiscordID))
		require.NoError(t, creds.Revoke(ctx, 1234))
	})
}

func TestCredentialIssueReplacesPrevious(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	creds := &CredentialService{Store: st}
	mustCreatePlayer(t, &PlayerService{Store: st}, "player-1", "steve", 7, domain.TierDefault)

	first, err := creds.Issue(ctx, 7)
	require.NoError(t, err)
	second, err := creds.Issue(ctx, 7)
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	_, err = creds.Lookup(ctx, first.Token)
	require.ErrorIs(t, err, ErrNotFound)

	got, err := creds.Lookup(ctx, second.Token)
	require.NoError(t, err)
	require.Equal(t, "player-1", got.ID)
}

func TestCredentialEntropyFailure(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	mustCreatePlayer(t, &PlayerService{Store: st}, "player-1", "steve", 7, domain.TierDefault)

	good := &CredentialService{Store: st}
	existing, err := good.Issue(ctx, 7)
	require.NoError(t, err)

	broken := &CredentialService{Store: st, Random: brokenReader{}}
	_, err = broken.Generate(7)
	require.ErrorIs(t, err, ErrEntropy)
	require.ErrorIs(t, err, cryptox.ErrEntropy)

	// A failed re-issue must not have revoked the existing credential.
	_, err = broken.Issue(ctx, 7)
	require.ErrorIs(t, err, ErrEntropy)

	_, err = good.Lookup(ctx, existing.Token)
	require.NoError(t, err)
}
