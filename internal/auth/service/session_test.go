package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cubicworld/cwsite/internal/auth/domain"
	"github.com/cubicworld/cwsite/internal/auth/oauth"
	"github.com/stretchr/testify/require"
)

// fakeProvider records the verifier bound to each state it handed out and
// accepts a code only with that verifier.
type fakeProvider struct {
	mu        sync.Mutex
	verifiers map[string]string // state -> verifier
	user      domain.ExternalUser
	err       error
	exchanges atomic.Int32
}

func newFakeProvider(user domain.ExternalUser) *fakeProvider {
	return &fakeProvider{verifiers: make(map[string]string), user: user}
}

func (f *fakeProvider) AuthorizationURL(state, verifier string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifiers[state] = verifier
	return "https://provider.example/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) Exchange(ctx context.Context, code, verifier string) (domain.ExternalUser, error) {
	f.exchanges.Add(1)
	if f.err != nil {
		return domain.ExternalUser{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.verifiers {
		if v == verifier && code == "code-ok" {
			return f.user, nil
		}
	}
	return domain.ExternalUser{}, &oauth.UpstreamError{Op: "redeem", StatusCode: 400, Err: errors.New("invalid_grant")}
}

func stateFrom(t *testing.T, authURL string) string {
	t.Helper()
	u, err := url.Parse(authURL)
	require.NoError(t, err)
	state := u.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

type sessionFixture struct {
	svc      *SessionService
	players  *PlayerService
	provider *fakeProvider
}

func newSessionFixture(t *testing.T, user domain.ExternalUser) sessionFixture {
	t.Helper()

	st := newTestStore(t)
	provider := newFakeProvider(user)
	return sessionFixture{
		svc: &SessionService{
			Store:       st,
			OAuth:       provider,
			Credentials: &CredentialService{Store: st},
			PendingTTL:  time.Minute,
		},
		players:  &PlayerService{Store: st},
		provider: provider,
	}
}

func TestSessionLoginProvisionsPlayer(t *testing.T) {
	ctx := context.Background()
	email := "steve@example.com"
	f := newSessionFixture(t, domain.ExternalUser{ID: 80351110224678912, Username: "steve", Email: &email})

	authURL, err := f.svc.Begin(ctx)
	require.NoError(t, err)

	sess, err := f.svc.Complete(ctx, stateFrom(t, authURL), "code-ok")
	require.NoError(t, err)
	require.True(t, sess.Created)
	require.Equal(t, "steve", sess.Player.Name)
	require.Equal(t, domain.TierDefault, sess.Player.Tier())
	require.Equal(t, "011D76E8B6401000", sess.Token[:16])

	principal, err := f.svc.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	require.Equal(t, sess.Player.ID, principal.Player.ID)
	require.Equal(t, domain.TierDefault, principal.Tier)

	stored, err := f.players.GetByDiscordID(ctx, 80351110224678912)
	require.NoError(t, err)
	require.Equal(t, email, *stored.Email)
}

func TestSessionLoginReusesPlayerAndRotatesCredential(t *testing.T) {
	ctx := context.Background()
	newEmail := "new@example.com"
	f := newSessionFixture(t, domain.ExternalUser{ID: 555, Username: "steve", Email: &newEmail})
	existing := mustCreatePlayer(t, f.players, "player-1", "steve", 555, domain.TierModerator)

	login := func() Session {
		authURL, err := f.svc.Begin(ctx)
		require.NoError(t, err)
		sess, err := f.svc.Complete(ctx, stateFrom(t, authURL), "code-ok")
		require.NoError(t, err)
		return sess
	}

	first := login()
	require.False(t, first.Created)
	require.Equal(t, existing.ID, first.Player.ID)
	require.Equal(t, domain.TierModerator, first.Player.Tier())
	require.Equal(t, newEmail, *first.Player.Email)

	second := login()
	_, err := f.svc.Resolve(ctx, first.Token)
	require.ErrorIs(t, err, ErrNotFound, "re-authentication revokes the previous credential")

	p, err := f.svc.Resolve(ctx, second.Token)
	require.NoError(t, err)
	require.Equal(t, domain.TierModerator, p.Tier)
}

func TestSessionNameFallback(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, domain.ExternalUser{ID: 777, Username: "steve"})
	mustCreatePlayer(t, f.players, "player-1", "steve", 1, domain.TierDefault)

	authURL, err := f.svc.Begin(ctx)
	require.NoError(t, err)
	sess, err := f.svc.Complete(ctx, stateFrom(t, authURL), "code-ok")
	require.NoError(t, err)
	require.Equal(t, "discord-777", sess.Player.Name)
}

func TestSessionNameFallbackWhenDerivedNameTaken(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, domain.ExternalUser{ID: 42, Username: "alice"})
	mustCreatePlayer(t, f.players, "player-1", "alice", 7, domain.TierDefault)
	mustCreatePlayer(t, f.players, "player-2", "discord-42", 8, domain.TierDefault)

	login := func() Session {
		authURL, err := f.svc.Begin(ctx)
		require.NoError(t, err)
		sess, err := f.svc.Complete(ctx, stateFrom(t, authURL), "code-ok")
		require.NoError(t, err)
		return sess
	}

	sess := login()
	require.True(t, sess.Created)
	require.Equal(t, "discord-42-2", sess.Player.Name)

	stored, err := f.players.GetByDiscordID(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, sess.Player.ID, stored.ID)

	// Every numeric suffix taken: a random tail still yields a free name.
	for i := 3; i <= maxNumericSuffix; i++ {
		mustCreatePlayer(t, f.players, fmt.Sprintf("player-%d", i), fmt.Sprintf("discord-43-%d", i), uint64(100+i), domain.TierDefault)
	}
	mustCreatePlayer(t, f.players, "player-43", "discord-43", 143, domain.TierDefault)
	mustCreatePlayer(t, f.players, "player-43-2", "discord-43-2", 243, domain.TierDefault)
	f.provider.user = domain.ExternalUser{ID: 43, Username: "alice"}

	sess = login()
	require.True(t, sess.Created)
	require.Regexp(t, `^discord-43-[0-9a-z]{3}$`, sess.Player.Name)
	require.True(t, ValidName(sess.Player.Name))
}

func TestSessionStateIsConsumedExactlyOnce(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, domain.ExternalUser{ID: 9, Username: "steve"})

	authURL, err := f.svc.Begin(ctx)
	require.NoError(t, err)
	state := stateFrom(t, authURL)

	_, err = f.svc.Complete(ctx, state, "code-ok")
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, state, "code-ok")
	require.ErrorIs(t, err, ErrInvalidState)
	require.EqualValues(t, 1, f.provider.exchanges.Load())
}

func TestSessionRejectsUnknownAndExpiredState(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, domain.ExternalUser{ID: 9, Username: "steve"})

	_, err := f.svc.Complete(ctx, "forged", "code-ok")
	require.ErrorIs(t, err, ErrInvalidState)
	_, err = f.svc.Complete(ctx, "", "code-ok")
	require.ErrorIs(t, err, ErrInvalidState)

	start := time.Now()
	f.svc.Now = func() time.Time { return start }
	authURL, err := f.svc.Begin(ctx)
	require.NoError(t, err)

	f.svc.Now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = f.svc.Complete(ctx, stateFrom(t, authURL), "code-ok")
	require.ErrorIs(t, err, ErrInvalidState)
	require.Zero(t, f.provider.exchanges.Load())
}

func TestSessionUpstreamFailureLeavesNothing(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, domain.ExternalUser{ID: 31337, Username: "steve"})
	f.provider.err = &oauth.UpstreamError{Op: "profile", StatusCode: 500, Err: errors.New("unexpected status")}

	authURL, err := f.svc.Begin(ctx)
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, stateFrom(t, authURL), "code-ok")
	require.ErrorIs(t, err, ErrUpstream)
	require.ErrorIs(t, err, oauth.ErrUpstream)

	_, err = f.players.GetByDiscordID(ctx, 31337)
	require.ErrorIs(t, err, ErrNotFound)

	n, err := f.svc.Store.Credentials().DeleteCredentialsByDiscordID(ctx, 31337)
	require.NoError(t, err)
	require.Zero(t, n, "no credential persisted")
}

func TestSessionBeginUsesFreshStatePerAttempt(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, domain.ExternalUser{ID: 1, Username: "steve"})

	a, err := f.svc.Begin(ctx)
	require.NoError(t, err)
	b, err := f.svc.Begin(ctx)
	require.NoError(t, err)

	require.NotEqual(t, stateFrom(t, a), stateFrom(t, b))
	require.NotEqual(t, f.provider.verifiers[stateFrom(t, a)], f.provider.verifiers[stateFrom(t, b)])
	require.Len(t, f.provider.verifiers[stateFrom(t, a)], 43)
}

func TestSessionBeginEntropyFailure(t *testing.T) {
	f := newSessionFixture(t, domain.ExternalUser{ID: 1})
	f.svc.Random = brokenReader{}

	_, err := f.svc.Begin(context.Background())
	require.ErrorIs(t, err, ErrEntropy)
	require.Empty(t, f.provider.verifiers)
}

func TestSessionLogout(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, domain.ExternalUser{ID: 12, Username: "steve"})

	authURL, err := f.svc.Begin(ctx)
	require.NoError(t, err)
	sess, err := f.svc.Complete(ctx, stateFrom(t, authURL), "code-ok")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, sess.Player.DiscordID))
	_, err = f.svc.Resolve(ctx, sess.Token)
	require.ErrorIs(t, err, ErrNotFound)
}
