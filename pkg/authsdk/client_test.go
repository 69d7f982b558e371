package authsdk_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cubicworld/cwsite/pkg/authsdk"
	"github.com/cubicworld/cwsite/pkg/httpx"
	"github.com/stretchr/testify/require"
)

const testToken = "011D76E8B6401000abc"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			authsdk.ErrInvalidToken.WriteError(w)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, authsdk.PlayerResponse{
			ID:        "01HZX",
			Name:      "steve",
			DiscordID: "80351110224678912",
			Tier:      "moderator",
			TierCode:  3,
		})
	})
	mux.HandleFunc("GET /v1/players/name/{name}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("name") != "steve" {
			authsdk.ErrNotFound.WriteError(w)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, authsdk.PlayerResponse{ID: "01HZX", Name: "steve"})
	})
	mux.HandleFunc("GET /v1/players/discord/{id}", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.PlayerResponse{DiscordID: r.PathValue("id")})
	})
	mux.HandleFunc("POST /v1/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, authsdk.HealthResponse{Status: "degraded"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientMe(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	me, err := authsdk.NewClient(srv.URL+"/", testToken).Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "steve", me.Name)
	require.Equal(t, "80351110224678912", me.DiscordID)
	require.Equal(t, uint8(3), me.TierCode)

	_, err = authsdk.NewClient(srv.URL, "wrong").Me(context.Background())
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeInvalidToken, apiErr.Code)
}

func TestClientWithoutToken(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	_, err := authsdk.NewClient(srv.URL, "").Me(context.Background())
	require.ErrorIs(t, err, authsdk.ErrNoToken)
}

func TestClientLookups(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	c := authsdk.NewClient(srv.URL, "")

	p, err := c.PlayerByName(context.Background(), "steve")
	require.NoError(t, err)
	require.Equal(t, "01HZX", p.ID)

	_, err = c.PlayerByName(context.Background(), "alex")
	var apiErr *authsdk.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, authsdk.ErrorCodeNotFound, apiErr.Code)

	p, err = c.PlayerByDiscordID(context.Background(), 18446744073709551615)
	require.NoError(t, err)
	require.Equal(t, "18446744073709551615", p.DiscordID)
}

func TestClientLogout(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	require.NoError(t, authsdk.NewClient(srv.URL, testToken).Logout(context.Background()))
}

func TestClientReadinessDegraded(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	_, err := authsdk.NewClient(srv.URL, "").GetReadiness(context.Background())
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	require.Equal(t, authsdk.ErrorCodeServerError, apiErr.Code)
}

func TestWriteErrorSuppressesFieldsOnServerErrors(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	authsdk.ErrConflict.WithFields(map[string]string{"name": "taken"}).WriteError(rec)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), `"fields":{"name":"taken"}`)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	authsdk.ErrServerError.WithFields(map[string]string{"db": "locked"}).WriteError(rec)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "fields")
	require.NotContains(t, rec.Body.String(), "locked")

	// WithFields must not mutate the shared predefined error.
	require.Nil(t, authsdk.ErrConflict.Fields)
}
