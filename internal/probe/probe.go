// Package probe performs lightweight reachability checks against a business
// website. It asserts reachability and HTTPS-ness only; it never reads bodies.
package probe

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result reports a single probe. Volatile by nature; never cached long-term.
type Result struct {
	URL            string        `json:"url"`
	Reachable      bool          `json:"reachable"`
	HTTPS          bool          `json:"https"`
	StatusCode     int           `json:"status_code,omitempty"`
	Elapsed        time.Duration `json:"elapsed"`
	HasContactPage bool          `json:"has_contact_page"`
}

// Prober issues HEAD requests with a hard timeout.
type Prober struct {
	client  *http.Client
	timeout time.Duration
}

// New builds a prober. The timeout is a hard per-request bound.
func New(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	return &Prober{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// NewWithClient injects a custom HTTP client, used by tests.
func NewWithClient(client *http.Client) *Prober {
	return &Prober{client: client, timeout: 4 * time.Second}
}

// NormalizeURL defaults the scheme to https and strips duplicate trailing
// slashes. Returns "" for unusable input.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String()
}

// Check probes the site root and, when reachable, the /contact path. All
// network errors, timeouts and non-2xx/3xx statuses fold into
// reachable=false; nothing propagates past this component.
func (p *Prober) Check(ctx context.Context, rawURL string) Result {
	target := NormalizeURL(rawURL)
	if target == "" {
		return Result{URL: rawURL}
	}

	result := Result{
		URL:   target,
		HTTPS: strings.HasPrefix(target, "https://"),
	}

	start := time.Now()
	status, ok := p.head(ctx, target)
	result.Elapsed = time.Since(start)
	result.StatusCode = status
	result.Reachable = ok

	if result.Reachable {
		if _, ok := p.head(ctx, strings.TrimRight(target, "/")+"/contact"); ok {
			result.HasContactPage = true
		}
	}
	return result
}

func (p *Prober) head(ctx context.Context, target string) (int, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return 0, false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, false
	}
	resp.Body.Close()

	reachable := resp.StatusCode >= 200 && resp.StatusCode < 400
	return resp.StatusCode, reachable
}
