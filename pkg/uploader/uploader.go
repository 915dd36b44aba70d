// Package uploader is the client for the external image-hosting service.
// Each upload is one multipart POST carrying the file and the fixed upload
// preset; the response names the hosted URL.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Client uploads images to the configured hosting endpoint.
type Client struct {
	Endpoint string
	Preset   string

	// HTTPClient defaults to http.DefaultClient when nil.
	HTTPClient *http.Client
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Upload posts one file and returns its hosted URL. Any non-200 response is
// an error; the caller decides what the failure aborts.
func (c *Client) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("uploader: build form: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("uploader: read %s: %w", name, err)
	}
	if err := mw.WriteField("upload_preset", c.Preset); err != nil {
		return "", fmt.Errorf("uploader: build form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("uploader: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, &body)
	if err != nil {
		return "", fmt.Errorf("uploader: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploader: upload %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("uploader: upload %s: unexpected status %d", name, resp.StatusCode)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("uploader: decode response for %s: %w", name, err)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("uploader: response for %s has no secure_url", name)
	}
	return out.SecureURL, nil
}
