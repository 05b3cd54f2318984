package api

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

	"github.com/nlwcopa/bolao-web/models"
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// Client talks to the bolão backend API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	// paths are resolved relative to the base, so it must end with a slash
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return &Client{baseURL: u, httpClient: &http.Client{Timeout: timeout}}, nil
}

type countResponse struct {
	Count int64 `json:"count"`
}

type createPoolRequest struct {
	Title string `json:"title"`
}

func (c *Client) CountPools(ctx context.Context) (int64, error) {
	return c.count(ctx, "pools/count")
}

func (c *Client) CountUsers(ctx context.Context) (int64, error) {
	return c.count(ctx, "users/count")
}

func (c *Client) CountGuesses(ctx context.Context) (int64, error) {
	return c.count(ctx, "guesses/count")
}

// CreatePool creates a pool with the given title and returns its invite code.
func (c *Client) CreatePool(ctx context.Context, title string) (models.CreatedPool, error) {
	var created models.CreatedPool
	if err := c.do(ctx, http.MethodPost, "pools", createPoolRequest{Title: title}, &created); err != nil {
		return models.CreatedPool{}, err
	}
	if created.Code == "" {
		return models.CreatedPool{}, fmt.Errorf("POST pools: empty code in response")
	}
	return created, nil
}

func (c *Client) count(ctx context.Context, path string) (int64, error) {
	var resp countResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return 0, err
	}
	if resp.Count < 0 {
		return 0, fmt.Errorf("GET %s: negative count %d", path, resp.Count)
	}
	return resp.Count, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	endpoint := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reqBody)
	if err != nil {
		return fmt.Errorf("%s %s: build request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
