// Package adminapi is the client for the server's admin HTTP API: the
// read endpoints backing the panel view and the fire-and-forget command
// endpoints that mutate server state.
package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hugo-lorenzo-mato/wardenctl/internal/core"
	"github.com/hugo-lorenzo-mato/wardenctl/internal/schema"
)

// User is one registered account as reported by the admin API.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
	AttachmentCount  int    `json:"attachmentCount"`
	AttachmentSize   string `json:"attachmentSize"`
}

// Outcome is the result of one dispatched command. The dispatcher has
// no UI side effects; the caller owns what to surface and the
// always-reload policy.
type Outcome struct {
	Endpoint string
	Success  bool
	Detail   string // backend message on failure, empty on success
}

// errorBody is the backend's failure envelope: a nested error model
// carrying a human-readable message.
type errorBody struct {
	ErrorModel struct {
		Message string `json:"Message"`
	} `json:"ErrorModel"`
}

const unknownErrorDetail = "unknown error"

// Client talks to the admin API of one server.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  *slog.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates an admin API client for the given server.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Users fetches the registered user list.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.get(ctx, "/admin/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ConfigSchema fetches the grouped configuration schema. The returned
// snapshot is immutable for the life of the view.
func (c *Client) ConfigSchema(ctx context.Context) (*schema.Schema, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/admin/config", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, core.ErrNetwork("fetching config schema").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.ErrCommand(core.CodeBadResponse,
			fmt.Sprintf("config schema: unexpected status %d", resp.StatusCode))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.ErrNetwork("reading config schema").WithCause(err)
	}
	return schema.Parse(body)
}

// DeleteUser removes an account entirely.
func (c *Client) DeleteUser(ctx context.Context, id string) Outcome {
	return c.post(ctx, "/admin/users/"+id+"/delete", nil)
}

// RemoveTwoFactor clears all two-factor credentials of an account.
func (c *Client) RemoveTwoFactor(ctx context.Context, id string) Outcome {
	return c.post(ctx, "/admin/users/"+id+"/remove-2fa", nil)
}

// DeauthorizeSessions invalidates all active sessions of an account.
func (c *Client) DeauthorizeSessions(ctx context.Context, id string) Outcome {
	return c.post(ctx, "/admin/users/"+id+"/deauth", nil)
}

// UpdateRevision bumps the sync revision, forcing every client to
// resync.
func (c *Client) UpdateRevision(ctx context.Context) Outcome {
	return c.post(ctx, "/admin/users/update_revision", nil)
}

// Invite sends an invitation to a new user.
func (c *Client) Invite(ctx context.Context, email string) Outcome {
	return c.post(ctx, "/admin/invite/", map[string]string{"email": email})
}

// SaveConfig persists a serialized configuration payload.
func (c *Client) SaveConfig(ctx context.Context, values map[string]any) Outcome {
	return c.post(ctx, "/admin/config/", values)
}

// ResetConfig deletes the saved configuration, reverting to defaults
// and environment.
func (c *Client) ResetConfig(ctx context.Context) Outcome {
	return c.post(ctx, "/admin/config/delete", nil)
}

// BackupDB triggers a database backup on the server.
func (c *Client) BackupDB(ctx context.Context) Outcome {
	return c.post(ctx, "/admin/config/backup_db", nil)
}

// post dispatches exactly one mutating request. Transport failures and
// rejected commands both come back as a failed Outcome with the best
// available detail; the command is never retried here.
func (c *Client) post(ctx context.Context, endpoint string, payload any) Outcome {
	out := Outcome{Endpoint: endpoint}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			out.Detail = "encoding payload: " + err.Error()
			return out
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		out.Detail = err.Error()
		return out
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		out.Detail = err.Error()
		c.logger.Warn("command transport failure", "endpoint", endpoint, "error", err)
		return out
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		out.Success = true
		c.logger.Info("command dispatched", "endpoint", endpoint)
		return out
	}

	out.Detail = extractDetail(resp.Body)
	c.logger.Warn("command rejected", "endpoint", endpoint, "status", resp.StatusCode, "detail", out.Detail)
	return out
}

// extractDetail pulls the human-readable message out of the backend's
// error envelope, substituting a generic string when the shape is
// absent.
func extractDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil {
		return unknownErrorDetail
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || body.ErrorModel.Message == "" {
		return unknownErrorDetail
	}
	return body.ErrorModel.Message
}

func (c *Client) get(ctx context.Context, endpoint string, into any) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return core.ErrNetwork("fetching " + endpoint).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.ErrCommand(core.CodeBadResponse,
			fmt.Sprintf("%s: unexpected status %d", endpoint, resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return core.ErrCommand(core.CodeBadResponse, "decoding "+endpoint).WithCause(err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}
