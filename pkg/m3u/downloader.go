package m3u

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Downloader fetches playlist bodies over plain HTTP GET
type Downloader struct {
	client    *http.Client
	transport *HeaderMapTransport
}

// NewDownloader creates a downloader. A zero timeout leaves requests
// bounded only by the context.
func NewDownloader(timeout time.Duration) *Downloader {
	transport := &HeaderMapTransport{
		Base: http.DefaultTransport,
	}

	return &Downloader{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		transport: transport,
	}
}

// SetHeaders sets the HTTP headers for requests
func (d *Downloader) SetHeaders(headers map[string]string) {
	if headers == nil {
		return
	}

	d.transport.Headers = headers
}

// Fetch downloads the full body of url. Any transport error or an HTTP
// status of 400 or above is returned as an error.
func (d *Downloader) Fetch(ctx context.Context, url string) (body string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download playlist: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read playlist: %w", err)
	}

	return string(data), nil
}
