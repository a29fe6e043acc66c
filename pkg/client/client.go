package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Token is the credential pair returned by the login endpoint. The access
// token is opaque; the type (normally "bearer") is echoed back in the
// Authorization header.
type Token struct {
	Access string `json:"access_token"`
	Type   string `json:"token_type"`
}

// IsZero reports whether no token is held.
func (t Token) IsZero() bool { return t.Access == "" }

// scheme returns the Authorization scheme for the token, defaulting to Bearer.
func (t Token) scheme() string {
	if t.Type != "" {
		return t.Type
	}
	return "Bearer"
}

// Client is the KIRA API client.
type Client struct {
	baseURL    string
	token      Token
	httpClient *http.Client
}

// New creates a new API client. A zero token means unauthenticated.
func New(baseURL string, token Token) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetTimeout overrides the default request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// SetToken replaces the token sent on authenticated requests.
// Pass the zero Token to drop credentials.
func (c *Client) SetToken(token Token) {
	c.token = token
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(data), "application/json", out)
}

func (c *Client) postForm(ctx context.Context, path string, form string, out any) error {
	return c.do(ctx, http.MethodPost, path, bytes.NewReader([]byte(form)), "application/x-www-form-urlencoded", out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader, out any) error {
	return c.do(ctx, method, path, body, "", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if !c.token.IsZero() {
		req.Header.Set("Authorization", c.token.scheme()+" "+c.token.Access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Connection-level failure: DNS, refused connection, timeout.
		// Kept distinct from server-returned errors so callers can tell
		// "server said no" apart from "server never answered".
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &APIError{StatusCode: resp.StatusCode, Detail: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		// FastAPI error bodies carry a "detail" string. The shape is not
		// guaranteed, so parse defensively and fall back to the raw body.
		var apiErr struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Detail != "" {
			return &APIError{StatusCode: resp.StatusCode, Detail: apiErr.Detail}
		}
		return &APIError{StatusCode: resp.StatusCode, Detail: string(respBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrMalformed, err)
		}
	}
	return nil
}
