package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// name of the session cookie set by the server
	sessionCookieName = "token"

	defaultTimeout = 15 * time.Second
)

// talks to the session and profile API. the session credential is kept in
// memory and can be exported for persistence with Credential.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu         sync.Mutex
	credential string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// creates a new API client. baseURL is the server root, e.g. http://localhost:8080/api
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// the current session credential, empty when signed out
func (c *Client) Credential() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.credential
}

// restores a persisted session credential
func (c *Client) SetCredential(credential string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credential = credential
}

func (c *Client) Login(ctx context.Context, assertion string) (*User, error) {
	return c.doUser(ctx, http.MethodPost, "/auth/login", map[string]string{"credential": assertion})
}

// returns the server's view of the current session
func (c *Client) Status(ctx context.Context) (*User, error) {
	if c.Credential() == "" {
		return nil, ErrUnauthenticated
	}

	return c.doUser(ctx, http.MethodGet, "/auth/status", nil)
}

// revokes the session server-side; the local credential is dropped either way
func (c *Client) Logout(ctx context.Context) error {
	defer c.SetCredential("")

	if c.Credential() == "" {
		return nil
	}

	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// revokes one specific credential without touching the current one
func (c *Client) Revoke(ctx context.Context, credential string) error {
	if credential == "" {
		return nil
	}

	return c.exchange(ctx, http.MethodPost, "/auth/logout", credential, false, nil, nil)
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	return c.doUser(ctx, http.MethodGet, "/user/profile", nil)
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	return c.doUser(ctx, http.MethodPut, "/user/profile", update)
}

func (c *Client) DeleteProfile(ctx context.Context) error {
	defer c.SetCredential("")
	return c.do(ctx, http.MethodDelete, "/user/profile", nil, nil)
}

func (c *Client) doUser(ctx context.Context, method, path string, payload any) (*User, error) {
	var result userResponse

	if err := c.do(ctx, method, path, payload, &result); err != nil {
		return nil, err
	}

	if result.User == nil {
		return nil, fmt.Errorf("response for %s %s carried no user", method, path)
	}

	return result.User, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	return c.exchange(ctx, method, path, c.Credential(), true, payload, out)
}

// sends one request with the given credential. capture applies the
// response's session cookie to the client.
func (c *Client) exchange(ctx context.Context, method, path, credential string, capture bool, payload, out any) error {
	var body io.Reader

	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payloadBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if credential != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: credential})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if capture {
		c.captureCredential(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// follows Set-Cookie for the session cookie, including its removal
func (c *Client) captureCredential(resp *http.Response) {
	for _, cookie := range resp.Cookies() {
		if cookie.Name != sessionCookieName {
			continue
		}

		if cookie.Value == "" || cookie.MaxAge < 0 {
			c.SetCredential("")
		} else {
			c.SetCredential(cookie.Value)
		}
	}
}

func decodeError(status int, body []byte) error {
	if status == http.StatusUnauthorized {
		return ErrUnauthenticated
	}

	var errResp errorResponse
	_ = json.Unmarshal(body, &errResp) //nolint:errcheck // non-JSON bodies fall through to the generic error

	if status == http.StatusBadRequest && len(errResp.Errors) > 0 {
		return &ValidationError{Message: errResp.Message, Fields: errResp.Errors}
	}

	message := errResp.Message
	if message == "" {
		message = strings.TrimSpace(string(body))
	}

	return &APIError{StatusCode: status, Code: errResp.Error, Message: message}
}
