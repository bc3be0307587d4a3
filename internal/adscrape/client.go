package adscrape

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/api/idtoken"
)

const maxSnippets = 3

// SnippetFetcher retrieves ad copy snippets for a domain.
type SnippetFetcher interface {
	FetchSnippets(ctx context.Context, domain string) ([]string, error)
}

// Client calls the ad transparency scrape service. The service runs on
// Cloud Run, so requests carry an identity token when one is available.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient builds a scrape client, auto-configuring an ID token client when needed.
func NewClient(client *http.Client, baseURL string) *Client {
	if baseURL == "" {
		panic("baseURL must not be empty")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if client == nil {
		idc, err := idtoken.NewClient(context.Background(), baseURL)
		if err != nil {
			client = &http.Client{Timeout: 10 * time.Second}
		} else {
			client = idc
		}
	}
	return &Client{client: client, baseURL: baseURL}
}

// FetchSnippets returns up to three ad copy snippets for the domain.
func (c *Client) FetchSnippets(ctx context.Context, domain string) ([]string, error) {
	if domain == "" {
		return nil, nil
	}

	endpoint := c.baseURL + "/snippets?domain=" + url.QueryEscape(domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("adscrape: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("adscrape: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("adscrape: service error: %s", extractError(resp.Body))
	}

	var body struct {
		Snippets []string `json:"snippets"`
		Error    string   `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil && err != io.EOF {
		return nil, fmt.Errorf("adscrape: decode response: %w", err)
	}
	if body.Error != "" {
		return nil, fmt.Errorf("adscrape: service error: %s", body.Error)
	}

	out := make([]string, 0, maxSnippets)
	for _, s := range body.Snippets {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == maxSnippets {
			break
		}
	}
	return out, nil
}

func extractError(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "unknown error"
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}

var _ SnippetFetcher = (*Client)(nil)
