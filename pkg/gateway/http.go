package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"tableflip.dev/shopkeep/pkg/catalog"
	"tableflip.dev/shopkeep/pkg/config"
	"tableflip.dev/shopkeep/pkg/session"
)

// Client talks to the catalog service over HTTP. A bearer token from the
// stored session rides along on every request when present.
type Client struct {
	base     string
	authPath string
	token    string
	http     *http.Client
}

// NewClient builds a client for the configured service. token may be empty
// for the login call itself.
func NewClient(cfg *config.Config, token string) *Client {
	return &Client{
		base:     cfg.BaseURL,
		authPath: cfg.AuthPath,
		token:    token,
		http:     http.DefaultClient,
	}
}

// SetHTTPClient overrides the underlying transport, mainly for tests.
func (c *Client) SetHTTPClient(h *http.Client) {
	c.http = h
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	IsAdmin     bool   `json:"isAdmin"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates the operator. A successful login for a non-admin
// account is rejected here; only admin sessions may drive this client.
func (c *Client) Login(ctx context.Context, creds Credentials) (session.Session, error) {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, c.authPath, creds, &out); err != nil {
		return session.Session{}, err
	}
	if !out.IsAdmin {
		return session.Session{}, fmt.Errorf("gateway: access denied: admin privileges required")
	}
	return session.Session{
		Email:       creds.Email,
		AccessToken: out.AccessToken,
		IsAdmin:     out.IsAdmin,
	}, nil
}

func (c *Client) Categories(ctx context.Context) ([]catalog.Category, error) {
	var out []catalog.Category
	if err := c.do(ctx, http.MethodGet, "/categories/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, cat catalog.Category) error {
	cat.Normalize()
	return c.do(ctx, http.MethodPost, "/categories/admin/", cat, nil)
}

func (c *Client) UpdateCategory(ctx context.Context, cat catalog.Category) error {
	cat.Normalize()
	return c.do(ctx, http.MethodPatch, "/categories/admin/update", cat, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/admin/delete/"+id, nil, nil)
}

func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var out []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, p catalog.Product) error {
	return c.do(ctx, http.MethodPost, "/products/admin/", p, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, p catalog.Product) error {
	return c.do(ctx, http.MethodPatch, "/products/admin/update/"+p.ID, p, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/admin/delete/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("gateway: decode response: %w", err)
	}
	return nil
}

// errorMessage digs a readable message out of an error body. The service is
// not consistent about the field name, so try both before giving up.
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
