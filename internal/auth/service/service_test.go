package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/cubicworld/cwsite/internal/auth/domain"
	"github.com/cubicworld/cwsite/internal/auth/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("entropy pool drained") }

var _ io.Reader = brokenReader{}

func mustCreatePlayer(t *testing.T, svc *PlayerService, id, name string, discordID uint64, tier domain.Tier) domain.Player {
	t.Helper()

	p, err := svc.Create(context.Background(), domain.Player{
		ID:        id,
		Name:      name,
		DiscordID: discordID,
		Role:      domain.RoleField(0).WithTier(tier),
	})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }
