// Package oauth drives the Discord authorization-code flow with PKCE and maps
// the resulting access token to the provider's user profile.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cubicworld/cwsite/internal/auth/domain"
	"golang.org/x/oauth2"
)

// DefaultScopes grants read access to the account identity and its email.
var DefaultScopes = []string{"identify", "email"}

const maxProfileBody = 1 << 20

// Config is the static client registration with the provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	APIBaseURL   string // e.g. https://discord.com/api/v10
	Scopes       []string
}

// Exchange holds the immutable client configuration. It is safe for
// concurrent use.
type Exchange struct {
	cfg        oauth2.Config
	profileURL string
	client     *http.Client
}

// New validates cfg and derives the provider endpoints from APIBaseURL.
// A nil client means http.DefaultClient.
func New(cfg Config, client *http.Client) (*Exchange, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("oauth: client id, client secret and redirect url are required")
	}
	if _, err := url.ParseRequestURI(cfg.RedirectURL); err != nil {
		return nil, fmt.Errorf("oauth: invalid redirect url: %w", err)
	}

	base, err := url.ParseRequestURI(cfg.APIBaseURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("oauth: invalid api base url %q", cfg.APIBaseURL)
	}
	api := strings.TrimSuffix(base.String(), "/")

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Exchange{
		cfg: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   api + "/oauth2/authorize",
				TokenURL:  api + "/oauth2/token",
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		profileURL: api + "/users/@me",
		client:     client,
	}, nil
}

// AuthorizationURL builds the provider redirect for one login attempt. The
// caller keeps verifier, keyed by state, until the callback arrives.
func (e *Exchange) AuthorizationURL(state, verifier string) string {
	return e.cfg.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier))
}

// Exchange redeems code with the PKCE verifier and fetches the profile the
// resulting access token belongs to. Nothing is retried.
func (e *Exchange) Exchange(ctx context.Context, code, verifier string) (domain.ExternalUser, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.client)

	tok, err := e.cfg.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		uerr := &UpstreamError{Op: "redeem", Err: err}
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response != nil {
			uerr.StatusCode = rerr.Response.StatusCode
			// Only the error code is kept; the rest of the body is dropped.
			uerr.Err = fmt.Errorf("token endpoint error %q", rerr.ErrorCode)
		}
		return domain.ExternalUser{}, uerr
	}

	return e.FetchProfile(ctx, tok.Type(), tok.AccessToken)
}

// FetchProfile reads the account behind an access token.
func (e *Exchange) FetchProfile(ctx context.Context, tokenType, accessToken string) (domain.ExternalUser, error) {
	fail := func(status int, err error) (domain.ExternalUser, error) {
		return domain.ExternalUser{}, &UpstreamError{Op: "profile", StatusCode: status, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.profileURL, nil)
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Authorization", tokenType+" "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxProfileBody))
		return fail(resp.StatusCode, errors.New("unexpected status"))
	}

	var p profile
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileBody)).Decode(&p); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("decode profile: %w", err))
	}
	if p.ID == 0 {
		return fail(resp.StatusCode, errors.New("profile has no id"))
	}

	var email *string
	if p.Email != nil && *p.Email != "" {
		email = p.Email
	}
	return domain.ExternalUser{ID: uint64(p.ID), Username: p.Username, Email: email}, nil
}

type profile struct {
	ID       snowflake `json:"id"`
	Username string    `json:"username"`
	Email    *string   `json:"email"`
}

// snowflake accepts an account id encoded either as a JSON number or as a
// decimal string, which is how Discord actually sends it.
type snowflake uint64

func (s *snowflake) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(b), `"`)
	if raw == "null" || raw == "" {
		*s = 0
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid account id %s", b)
	}
	*s = snowflake(v)
	return nil
}
