package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	fetchTimeout  = 8 * time.Second
	maxPageBytes  = 1 << 20
	fetcherAgent  = "visibility-score/1.0"
	acceptedTypes = "text/html,application/xhtml+xml"
)

// PageFetcher retrieves homepage markup for signal extraction.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPPageFetcher fetches pages with a bounded timeout and body size.
type HTTPPageFetcher struct {
	client *http.Client
}

func NewHTTPPageFetcher(client *http.Client) *HTTPPageFetcher {
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	return &HTTPPageFetcher{client: client}
}

func (f *HTTPPageFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch homepage: %w", err)
	}
	req.Header.Set("User-Agent", fetcherAgent)
	req.Header.Set("Accept", acceptedTypes)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch homepage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 399 {
		return "", fmt.Errorf("fetch homepage: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read homepage body: %w", err)
	}
	return string(body), nil
}

var _ PageFetcher = (*HTTPPageFetcher)(nil)
