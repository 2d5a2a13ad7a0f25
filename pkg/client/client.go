package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nunukkam/admin-portal-api/internal/models"
	appErrors "github.com/nunukkam/admin-portal-api/pkg/errors"
)

// Config holds client construction options.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a typed API client for the admin portal backend. It attaches the
// bearer token to every request and transparently refreshes an expired access
// token once, replaying the original request. A failed refresh clears the
// session and fires the OnSessionExpired hook.
type Client struct {
	http *resty.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string

	onSessionExpired func()
}

// Option customises the client.
type Option func(*Client)

// OnSessionExpired registers a hook fired when a token refresh fails and the
// session is cleared.
func OnSessionExpired(fn func()) Option {
	return func(c *Client) { c.onSessionExpired = fn }
}

// New constructs a Client for the given base URL.
func New(cfg Config, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}
	c := &Client{http: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSession stores a token pair, typically after Login.
func (c *Client) SetSession(accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = accessToken
	c.refreshToken = refreshToken
}

// ClearSession zeroes the stored token pair.
func (c *Client) ClearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = ""
	c.refreshToken = ""
}

// Session returns the current token pair.
func (c *Client) Session() (accessToken, refreshToken string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

type envelope struct {
	Success    bool               `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Error      *appErrors.Error   `json:"error"`
	Pagination *models.Pagination `json:"pagination"`
}

// do executes one API call, decoding the envelope into out. A 401 triggers a
// single refresh-and-replay; envelope errors surface as *appErrors.Error.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out interface{}) (*models.Pagination, error) {
	resp, env, err := c.execute(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		if refreshErr := c.refresh(ctx); refreshErr != nil {
			return nil, refreshErr
		}
		resp, env, err = c.execute(ctx, method, path, query, body)
		if err != nil {
			return nil, err
		}
	}

	if env.Error != nil {
		if env.Error.Status == 0 {
			env.Error.Status = resp.StatusCode()
		}
		return nil, env.Error
	}
	if !env.Success && resp.StatusCode() >= 400 {
		return nil, appErrors.Wrap(fmt.Errorf("http %d", resp.StatusCode()), appErrors.ErrInternal.Code, resp.StatusCode(), "request failed")
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode response data: %w", err)
		}
	}
	return env.Pagination, nil
}

func (c *Client) execute(ctx context.Context, method, path string, query map[string]string, body interface{}) (*resty.Response, envelope, error) {
	req := c.http.R().SetContext(ctx)
	if token, _ := c.Session(); token != "" {
		req.SetAuthToken(token)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, envelope{}, fmt.Errorf("%s %s: %w", method, path, err)
	}

	var env envelope
	if len(resp.Body()) > 0 {
		if jsonErr := json.Unmarshal(resp.Body(), &env); jsonErr != nil && resp.StatusCode() < 400 {
			return nil, envelope{}, fmt.Errorf("decode envelope: %w", jsonErr)
		}
	} else if resp.StatusCode() < 400 {
		env.Success = true
	}
	return resp, env, nil
}

// refresh exchanges the stored refresh token for a new pair. On failure the
// session is cleared and the expiry hook fires.
func (c *Client) refresh(ctx context.Context) error {
	_, refreshToken := c.Session()
	if refreshToken == "" {
		c.expireSession()
		return appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
	}

	req := c.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"refresh_token": refreshToken})

	resp, err := req.Post("/api/v1/auth/refresh")
	if err != nil {
		c.expireSession()
		return fmt.Errorf("refresh token: %w", err)
	}

	var env envelope
	if jsonErr := json.Unmarshal(resp.Body(), &env); jsonErr != nil || !env.Success {
		c.expireSession()
		return appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
	}

	var tokens models.RefreshTokenResponse
	if err := json.Unmarshal(env.Data, &tokens); err != nil {
		c.expireSession()
		return appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
	}

	c.SetSession(tokens.AccessToken, tokens.RefreshToken)
	return nil
}

func (c *Client) expireSession() {
	c.ClearSession()
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}
