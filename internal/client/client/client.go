// Package client implements the HTTP client for the authkeeper server API.
// It maps error status codes back to the shared error sentinels so callers
// can branch with errors.Is.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// AccessToken mirrors the token payload returned by login and renew.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Introspection mirrors the whoami payload.
type Introspection struct {
	Username string `json:"username"`
	Issued   string `json:"issued"`
	Expiry   string `json:"expiry"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client for the server at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// Register creates a new account. Returns common.ErrUsernameExists when the
// username is already taken.
func (c *Client) Register(ctx context.Context, firstName, lastName, username string, password []byte) error {
	body := map[string]string{
		"first_name": firstName,
		"last_name":  lastName,
		"username":   username,
		"password":   string(password),
	}

	resp, err := c.postJSON(ctx, "/auth/users/new", body, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		return nil
	case http.StatusConflict:
		return common.ErrUsernameExists
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", common.ErrorInternal, serverMessage(resp))
	default:
		return unexpectedStatus(resp)
	}
}

// Login authenticates and returns a bearer token. Returns
// common.ErrInvalidCredentials or common.ErrInactiveUser on rejection.
func (c *Client) Login(ctx context.Context, username string, password []byte) (*AccessToken, error) {
	body := map[string]string{"username": username, "password": string(password)}

	resp, err := c.postJSON(ctx, "/auth/login", body, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var tok AccessToken
		if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
			return nil, fmt.Errorf("%w: decoding token: %v", common.ErrorInternal, err)
		}
		return &tok, nil
	case http.StatusUnauthorized:
		return nil, common.ErrInvalidCredentials
	case http.StatusForbidden:
		return nil, common.ErrInactiveUser
	default:
		return nil, unexpectedStatus(resp)
	}
}

// WhoAmI introspects the token. Returns common.ErrInvalidToken or
// common.ErrTokenExpired on rejection.
func (c *Client) WhoAmI(ctx context.Context, token string) (*Introspection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/users/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var info Introspection
		if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
			return nil, fmt.Errorf("%w: decoding response: %v", common.ErrorInternal, err)
		}
		return &info, nil
	case http.StatusUnauthorized:
		return nil, common.ErrInvalidToken
	case http.StatusForbidden:
		return nil, common.ErrTokenExpired
	default:
		return nil, unexpectedStatus(resp)
	}
}

// Renew exchanges a still-valid token for a fresh one.
func (c *Client) Renew(ctx context.Context, token string) (*AccessToken, error) {
	resp, err := c.postJSON(ctx, "/auth/renew", nil, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var tok AccessToken
		if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
			return nil, fmt.Errorf("%w: decoding token: %v", common.ErrorInternal, err)
		}
		return &tok, nil
	case http.StatusUnauthorized:
		return nil, common.ErrInvalidToken
	case http.StatusForbidden:
		return nil, common.ErrTokenExpired
	default:
		return nil, unexpectedStatus(resp)
	}
}

func (c *Client) postJSON(ctx context.Context, path string, body any, token string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.http.Do(req)
}

func serverMessage(resp *http.Response) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Message == "" {
		return "request rejected"
	}
	return e.Message
}

func unexpectedStatus(resp *http.Response) error {
	return fmt.Errorf("%w: unexpected status %d", common.ErrorInternal, resp.StatusCode)
}
