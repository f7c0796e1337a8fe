// Package dashclient is a Go client for the project-dashboard API. It covers
// the session contract the browser UI relies on: credential flows, project
// reads and creation, and a persisted bearer token.
package dashclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultErrorMessage = "request failed"

// APIError is a non-2xx response translated to an error. Message follows the
// server's message field when present, falling back to the HTTP status text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Client issues HTTP requests against the dashboard API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Signup registers a new account and returns the created user plus token.
func (c *Client) Signup(ctx context.Context, data SignupData) (*AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/signup", "", data, &resp); err != nil {
		return nil, err
	}
	return &AuthResult{User: resp.User, Token: resp.Token}, nil
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &resp); err != nil {
		return nil, err
	}
	return &AuthResult{User: resp.User, Token: resp.Token}, nil
}

// Verify resolves the user bound to the token.
func (c *Client) Verify(ctx context.Context, token string) (*User, error) {
	var resp verifyResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", token, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.User == nil {
		return nil, &APIError{Status: http.StatusUnauthorized, Message: defaultErrorMessage}
	}
	return resp.User, nil
}

// ListProjects returns all projects visible to the caller.
func (c *Client) ListProjects(ctx context.Context, token string) ([]Project, error) {
	var resp projectsResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// CreateProject creates a project; the caller must hold the project_manager
// role.
func (c *Client) CreateProject(ctx context.Context, token string, data CreateProjectData) (*Project, error) {
	var resp projectResponse
	if err := c.do(ctx, http.MethodPost, "/api/projects", token, data, &resp); err != nil {
		return nil, err
	}
	return resp.Project, nil
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, token, id string) (*Project, error) {
	var resp projectResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects/"+url.PathEscape(id), token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Project, nil
}

// UsersByRole lists users holding the given role.
func (c *Client) UsersByRole(ctx context.Context, token, role string) ([]User, error) {
	path := "/api/users?role=" + url.QueryEscape(role)
	var resp usersResponse
	if err := c.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// errorMessage extracts the server message, falling back to the HTTP status
// text, then to a hardcoded default when even that is empty.
func errorMessage(status int, raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return defaultErrorMessage
}
