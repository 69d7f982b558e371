package oauth_test

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/cubicworld/cwsite/internal/auth/oauth"
	"github.com/stretchr/testify/require"
)

// fakeDiscord is a minimal identity provider: one token endpoint that
// enforces PKCE and client auth, and one profile endpoint.
type fakeDiscord struct {
	*httptest.Server

	verifier      string // expected code_verifier
	profileStatus int
	profileBody   string
	tokenStatus   int
	profileCalls  atomic.Int32
}

func newFakeDiscord(t *testing.T) *fakeDiscord {
	t.Helper()

	f := &fakeDiscord{
		profileStatus: http.StatusOK,
		profileBody:   `{"id":"80351110224678912","username":"steve","email":"steve@example.com"}`,
		tokenStatus:   http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		id, secret, ok := r.BasicAuth()
		if !ok || id != "client" || secret != "secret" {
			http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
			return
		}
		if err := r.ParseForm(); err != nil ||
			r.PostForm.Get("grant_type") != "authorization_code" ||
			r.PostForm.Get("code") != "good-code" ||
			r.PostForm.Get("code_verifier") != f.verifier {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"leaky detail"}`))
			return
		}
		if f.tokenStatus != http.StatusOK {
			w.WriteHeader(f.tokenStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-123",
			"token_type":   "Bearer",
			"expires_in":   604800,
		})
	})
	mux.HandleFunc("GET /users/@me", func(w http.ResponseWriter, r *http.Request) {
		f.profileCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer access-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(f.profileStatus)
		_, _ = w.Write([]byte(f.profileBody))
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func newExchange(t *testing.T, f *fakeDiscord) *oauth.Exchange {
	t.Helper()

	ex, err := oauth.New(oauth.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "https://cwsite.example/v1/oauth2/callback",
		APIBaseURL:   f.URL + "/",
	}, f.Client())
	require.NoError(t, err)
	return ex
}

func TestNewValidatesConfig(t *testing.T) {
	base := oauth.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "https://cwsite.example/cb",
		APIBaseURL:   "https://discord.com/api/v10",
	}

	_, err := oauth.New(base, nil)
	require.NoError(t, err)

	for name, mutate := range map[string]func(*oauth.Config){
		"missing client id": func(c *oauth.Config) { c.ClientID = "" },
		"missing secret":    func(c *oauth.Config) { c.ClientSecret = "" },
		"missing redirect":  func(c *oauth.Config) { c.RedirectURL = "" },
		"relative api base": func(c *oauth.Config) { c.APIBaseURL = "/api" },
		"garbage redirect":  func(c *oauth.Config) { c.RedirectURL = "::" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			_, err := oauth.New(cfg, nil)
			require.Error(t, err)
		})
	}
}

func TestAuthorizationURL(t *testing.T) {
	f := newFakeDiscord(t)
	ex := newExchange(t, f)

	raw := ex.AuthorizationURL("state-abc", "verifier-xyz")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	require.Equal(t, "/oauth2/authorize", u.Path)
	q := u.Query()
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, "client", q.Get("client_id"))
	require.Equal(t, "state-abc", q.Get("state"))
	require.Equal(t, "identify email", q.Get("scope"))
	require.Equal(t, "https://cwsite.example/v1/oauth2/callback", q.Get("redirect_uri"))
	require.Equal(t, "S256", q.Get("code_challenge_method"))

	sum := sha256.Sum256([]byte("verifier-xyz"))
	require.Equal(t, base64.RawURLEncoding.EncodeToString(sum[:]), q.Get("code_challenge"))
	require.NotContains(t, raw, "verifier-xyz")
}

func TestExchange(t *testing.T) {
	ctx := context.Background()

	t.Run("redeems and fetches the profile", func(t *testing.T) {
		f := newFakeDiscord(t)
		f.verifier = "v-1"
		ex := newExchange(t, f)

		user, err := ex.Exchange(ctx, "good-code", "v-1")
		require.NoError(t, err)
		require.Equal(t, uint64(80351110224678912), user.ID)
		require.Equal(t, "steve", user.Username)
		require.NotNil(t, user.Email)
		require.Equal(t, "steve@example.com", *user.Email)
	})

	t.Run("wrong verifier is an upstream failure", func(t *testing.T) {
		f := newFakeDiscord(t)
		f.verifier = "v-1"
		ex := newExchange(t, f)

		_, err := ex.Exchange(ctx, "good-code", "v-2")
		require.ErrorIs(t, err, oauth.ErrUpstream)

		var uerr *oauth.UpstreamError
		require.ErrorAs(t, err, &uerr)
		require.Equal(t, "redeem", uerr.Op)
		require.Equal(t, http.StatusBadRequest, uerr.StatusCode)
		require.NotContains(t, err.Error(), "leaky detail")
		require.Zero(t, f.profileCalls.Load())
	})

	t.Run("profile 500 is an upstream failure", func(t *testing.T) {
		f := newFakeDiscord(t)
		f.verifier = "v-1"
		f.profileStatus = http.StatusInternalServerError
		ex := newExchange(t, f)

		_, err := ex.Exchange(ctx, "good-code", "v-1")
		var uerr *oauth.UpstreamError
		require.ErrorAs(t, err, &uerr)
		require.Equal(t, "profile", uerr.Op)
		require.Equal(t, http.StatusInternalServerError, uerr.StatusCode)
		require.EqualValues(t, 1, f.profileCalls.Load(), "no retries")
	})

	t.Run("unreachable provider", func(t *testing.T) {
		f := newFakeDiscord(t)
		ex := newExchange(t, f)
		f.Close()

		_, err := ex.Exchange(ctx, "good-code", "")
		require.ErrorIs(t, err, oauth.ErrUpstream)
	})
}

func TestFetchProfile(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		body    string
		wantID  uint64
		wantErr bool
	}{
		{"string id", `{"id":"42","username":"a"}`, 42, false},
		{"numeric id", `{"id":42}`, 42, false},
		{"max snowflake", `{"id":"18446744073709551615"}`, 18446744073709551615, false},
		{"missing id", `{"username":"a"}`, 0, true},
		{"negative id", `{"id":-1}`, 0, true},
		{"not json", `<html>`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeDiscord(t)
			f.profileBody = tt.body
			ex := newExchange(t, f)

			user, err := ex.FetchProfile(ctx, "Bearer", "access-123")
			if tt.wantErr {
				require.ErrorIs(t, err, oauth.ErrUpstream)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, user.ID)
			require.Nil(t, user.Email)
		})
	}

	t.Run("token type is sent verbatim", func(t *testing.T) {
		f := newFakeDiscord(t)
		ex := newExchange(t, f)

		_, err := ex.FetchProfile(ctx, "Bot", "access-123")
		var uerr *oauth.UpstreamError
		require.ErrorAs(t, err, &uerr)
		require.Equal(t, http.StatusUnauthorized, uerr.StatusCode)
	})
}
