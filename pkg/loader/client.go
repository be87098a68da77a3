package loader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client fetches catalog sources over HTTP
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new client with a conservative timeout
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Get fetches rawURL and returns the HTTP response. The caller owns the
// response body. Errors never contain rawURL, which may carry credentials;
// callers name the source themselves.
func (c *Client) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", withoutURL(err))
	}

	req.Header.Set("User-Agent", "courseplanner/1.0")
	req.Header.Set("Accept", "text/csv, text/plain, text/html;q=0.9, */*;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", withoutURL(err))
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return resp, nil
}

// withoutURL drops the *url.Error layer, whose message repeats the URL.
func withoutURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
