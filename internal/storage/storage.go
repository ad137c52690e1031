// Package storage is the client for the external file-storage collaborator.
// Uploads are strongly consistent (a submission fails without them);
// deletions are best-effort.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// Client abstracts the document storage provider.
type Client interface {
	// Upload stores data under folder/filename and returns the public URL.
	Upload(ctx context.Context, data []byte, folder, filename string) (string, error)
	// Delete removes a stored object by its public ID.
	Delete(ctx context.Context, publicID string) error
}

// Config configures the HTTP storage client.
type Config struct {
	BaseURL      string // e.g. https://storage.example.com/v1/documents
	UploadPreset string
	APIKey       string
	Timeout      time.Duration
}

type httpClient struct {
	cfg  Config
	http *http.Client
}

// NewHTTPClient creates a storage client against a Cloudinary-style
// upload/destroy HTTP API.
func NewHTTPClient(cfg Config) Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &httpClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

func (c *httpClient) Upload(ctx context.Context, data []byte, folder, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		return "", err
	}
	if err := writer.WriteField("folder", folder); err != nil {
		return "", err
	}
	if err := writer.WriteField("public_id", filename); err != nil {
		return "", err
	}
	if err := writer.WriteField("upload_preset", c.cfg.UploadPreset); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/upload", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage upload failed: status %d: %s", resp.StatusCode, string(msg))
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("storage upload response malformed: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage upload response missing secure_url")
	}
	return result.SecureURL, nil
}

func (c *httpClient) Delete(ctx context.Context, publicID string) error {
	form := url.Values{"public_id": {publicID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/destroy",
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storage delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("storage delete failed: status %d", resp.StatusCode)
	}
	return nil
}

// PublicIDFromURL derives a stored object's public ID from its delivery URL.
// URLs look like .../upload/v1712345678/id-cards/user_123_idcard.png; the
// public ID is "id-cards/user_123_idcard" (version prefix and extension
// stripped). Returns "" when the URL doesn't match the scheme.
func PublicIDFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	idx := -1
	for i, seg := range segments {
		if seg == "upload" {
			idx = i
		}
	}
	if idx == -1 || idx == len(segments)-1 {
		return ""
	}

	rest := segments[idx+1:]
	if len(rest) > 1 && strings.HasPrefix(rest[0], "v") && isDigits(rest[0][1:]) {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return ""
	}

	last := rest[len(rest)-1]
	rest[len(rest)-1] = strings.TrimSuffix(last, path.Ext(last))
	return strings.Join(rest, "/")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
