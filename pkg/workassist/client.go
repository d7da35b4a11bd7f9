// Package workassist is a typed client for the work-assistant backend that
// stores uploaded documents, runs AI template analysis and persists projects.
package workassist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	uploadPath      = "/api/upload"
	analyzePath     = "/api/analyze"
	saveProjectPath = "/api/save_project"

	// SessionCookieName is the cookie the backend uses for logged-in sessions.
	SessionCookieName = "session"

	maxResponseBytes = 16 << 20
)

// Client provides typed access to the work-assistant API
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    string
}

// NewClient creates a new client for the backend at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// WithSession attaches a backend session cookie to every request
func (c *Client) WithSession(cookie string) *Client {
	c.session = cookie
	return c
}

// WithTimeout sets the per-request timeout. Analysis can take a long time,
// so the default is generous.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.httpClient.Timeout = d
	}
	return c
}

// BaseURL returns the backend root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ProjectURL builds the locator of a created project.
func (c *Client) ProjectURL(projectID string) string {
	return c.baseURL + "/project/" + projectID
}

// request helpers

func (c *Client) newRequest(ctx context.Context, path, contentType string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: c.session})
	}
	return req, nil
}

func (c *Client) do(req *http.Request, op string, result any) error {
	path := req.URL.Path
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w: %w", path, ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("POST %s: %w: read body: %w", path, ErrRequestFailed, err)
	}

	if resp.StatusCode >= 400 {
		var payload struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
			return &RejectionError{Op: op, Status: resp.StatusCode, Message: payload.Error}
		}
		return fmt.Errorf("POST %s: %w: %d %s", path, ErrRequestFailed, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("POST %s: %w: decode response: %w", path, ErrRequestFailed, err)
		}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path, op string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	req, err := c.newRequest(ctx, path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	return c.do(req, op, result)
}

// Upload operations

// Upload sends the file at path as the multipart field "file".
func (c *Client) Upload(ctx context.Context, path string) (UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return UploadResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return c.UploadReader(ctx, filepath.Base(path), f)
}

// UploadReader sends r under the given file name.
func (c *Client) UploadReader(ctx context.Context, name string, r io.Reader) (UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return UploadResult{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return UploadResult{}, fmt.Errorf("copy %s: %w", name, err)
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("close multipart: %w", err)
	}

	req, err := c.newRequest(ctx, uploadPath, mw.FormDataContentType(), &body)
	if err != nil {
		return UploadResult{}, err
	}
	var result UploadResult
	if err := c.do(req, "upload", &result); err != nil {
		return UploadResult{}, err
	}
	if !result.Success || result.FileID == "" {
		return UploadResult{}, &RejectionError{Op: "upload", Status: http.StatusOK, Message: result.Error}
	}
	return result, nil
}

// Analysis operations

// Analyze asks the backend to extract template parameters. A response that
// carries an error field is returned as a *RejectionError.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error) {
	var result AnalyzeResponse
	if err := c.postJSON(ctx, analyzePath, "analyze", req, &result); err != nil {
		return AnalyzeResponse{}, err
	}
	if result.Error != "" {
		return AnalyzeResponse{}, &RejectionError{Op: "analyze", Status: http.StatusOK, Message: result.Error}
	}
	return result, nil
}

// Project operations

// SaveProject persists a reviewed project configuration.
func (c *Client) SaveProject(ctx context.Context, req SaveProjectRequest) (SaveProjectResponse, error) {
	if req.Parameters == nil {
		req.Parameters = []Parameter{}
	}
	var result SaveProjectResponse
	if err := c.postJSON(ctx, saveProjectPath, "save project", req, &result); err != nil {
		return SaveProjectResponse{}, err
	}
	if !result.Success || result.ProjectID == "" {
		return SaveProjectResponse{}, &RejectionError{Op: "save project", Status: http.StatusOK, Message: result.Error}
	}
	return result, nil
}
