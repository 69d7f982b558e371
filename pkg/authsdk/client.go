package authsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the cwsite authentication service. Token is optional; it
// is only needed for authenticated calls.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

// NewClient creates a client for baseURL authenticated with token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Token: token,
	}
}

// Me returns the player the client's token belongs to.
func (c *Client) Me(ctx context.Context) (*PlayerResponse, error) {
	return c.getPlayer(ctx, "/v1/me", true)
}

func (c *Client) PlayerByID(ctx context.Context, id string) (*PlayerResponse, error) {
	return c.getPlayer(ctx, "/v1/players/id/"+url.PathEscape(id), false)
}

func (c *Client) PlayerByName(ctx context.Context, name string) (*PlayerResponse, error) {
	return c.getPlayer(ctx, "/v1/players/name/"+url.PathEscape(name), false)
}

func (c *Client) PlayerByDiscordID(ctx context.Context, discordID uint64) (*PlayerResponse, error) {
	return c.getPlayer(ctx, "/v1/players/discord/"+strconv.FormatUint(discordID, 10), false)
}

// Logout revokes every credential of the authenticated player, including the
// client's own token.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/logout", nil, true)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

func (c *Client) getPlayer(ctx context.Context, path string, auth bool) (*PlayerResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, auth)
	if err != nil {
		return nil, err
	}

	var p PlayerResponse
	if err := decodeJSON(resp, &p, http.StatusOK); err != nil {
		return nil, err
	}
	return &p, nil
}
