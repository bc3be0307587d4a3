// Package places is a thin HTTP client for the Google Places and Geocoding
// web services: find-place, text search, nearby search, details and geocode.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	findPlaceURL    = "https://maps.googleapis.com/maps/api/place/findplacefromtext/json"
	textSearchURL   = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	nearbySearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	detailsURL      = "https://maps.googleapis.com/maps/api/place/details/json"
	geocodeURL      = "https://maps.googleapis.com/maps/api/geocode/json"

	detailsFields   = "place_id,name,formatted_address,website,formatted_phone_number,rating,user_ratings_total,types,photos,opening_hours,geometry"
	findPlaceFields = "place_id,name,formatted_address,rating,user_ratings_total"

	quotaBackoff = 400 * time.Millisecond
)

// ErrQuota marks an upstream 429/OVER_QUERY_LIMIT so callers can back off
// instead of treating it as a generic failure.
var ErrQuota = errors.New("places: upstream quota exceeded")

// Client issues rate-limited calls against the directory API.
type Client struct {
	apiKey       string
	httpClient   *http.Client
	limiter      *rate.Limiter
	baseOverride string
}

// Option configures optional client dependencies.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client, useful for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL points every endpoint at an alternate host, used by tests to
// target an httptest server. The prefix replaces "https://maps.googleapis.com".
func WithBaseURL(prefix string) Option {
	return func(c *Client) {
		c.baseOverride = prefix
	}
}

// NewClient builds a Places client. The timeout bounds each individual call.
func NewClient(apiKey string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 7 * time.Second
	}
	c := &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(10), 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type statusEnvelope struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

type searchResponse struct {
	statusEnvelope
	Candidates []placeResult `json:"candidates"` // find-place
	Results    []placeResult `json:"results"`    // text/nearby search
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Vicinity         string   `json:"vicinity"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	Website          string   `json:"website"`
	Types            []string `json:"types"`
	Photos           []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
	OpeningHours *struct {
		OpenNow *bool    `json:"open_now"`
		Weekday []string `json:"weekday_text"`
		Periods []any    `json:"periods"`
	} `json:"opening_hours"`
	FormattedPhoneNumber string `json:"formatted_phone_number"`
	Geometry             struct {
		Location LatLng `json:"location"`
	} `json:"geometry"`
}

type detailsResponse struct {
	statusEnvelope
	Result placeResult `json:"result"`
}

type geocodeResponse struct {
	statusEnvelope
	Results []struct {
		FormattedAddress string   `json:"formatted_address"`
		Types            []string `json:"types"`
		Geometry         struct {
			Location LatLng `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// FindPlace runs a precision find-place-from-text query. A non-nil bias
// restricts results to the given circle; nil means unbiased.
func (c *Client) FindPlace(ctx context.Context, query string, bias *Circle) ([]Candidate, error) {
	params := url.Values{
		"input":     {query},
		"inputtype": {"textquery"},
		"fields":    {findPlaceFields},
		"key":       {c.apiKey},
	}
	if bias != nil {
		params.Set("locationbias", fmt.Sprintf("circle:%d@%f,%f", bias.Radius, bias.Center.Lat, bias.Center.Lng))
	}

	var resp searchResponse
	if err := c.call(ctx, c.endpoint(findPlaceURL), params, &resp); err != nil {
		return nil, err
	}
	return toCandidates(resp.Candidates), nil
}

// TextSearch runs the broader free-text search used as the last fallback.
func (c *Client) TextSearch(ctx context.Context, query string) ([]Candidate, error) {
	params := url.Values{
		"query": {query},
		"key":   {c.apiKey},
	}

	var resp searchResponse
	if err := c.call(ctx, c.endpoint(textSearchURL), params, &resp); err != nil {
		return nil, err
	}
	return toCandidates(resp.Results), nil
}

// NearbySearch lists same-trade businesses around a center point, used by the
// competitive snapshot.
func (c *Client) NearbySearch(ctx context.Context, center LatLng, radius int, keyword string) ([]Candidate, error) {
	params := url.Values{
		"location": {fmt.Sprintf("%f,%f", center.Lat, center.Lng)},
		"radius":   {strconv.Itoa(radius)},
		"key":      {c.apiKey},
	}
	if keyword != "" {
		params.Set("keyword", keyword)
	}

	var resp searchResponse
	if err := c.call(ctx, c.endpoint(nearbySearchURL), params, &resp); err != nil {
		return nil, err
	}
	return toCandidates(resp.Results), nil
}

// Details fetches the full profile for a place identifier.
func (c *Client) Details(ctx context.Context, placeID string) (*Details, error) {
	params := url.Values{
		"place_id": {placeID},
		"fields":   {detailsFields},
		"key":      {c.apiKey},
	}

	var resp detailsResponse
	if err := c.call(ctx, c.endpoint(detailsURL), params, &resp); err != nil {
		return nil, err
	}

	r := resp.Result
	d := &Details{
		PlaceID:          r.PlaceID,
		Name:             r.Name,
		FormattedAddress: r.FormattedAddress,
		Website:          r.Website,
		Phone:            r.FormattedPhoneNumber,
		Rating:           r.Rating,
		UserRatingsTotal: r.UserRatingsTotal,
		Categories:       r.Types,
		HasPhotos:        len(r.Photos) > 0,
		Location:         r.Geometry.Location,
	}
	if r.OpeningHours != nil {
		d.HasHours = len(r.OpeningHours.Weekday) > 0 || len(r.OpeningHours.Periods) > 0 || r.OpeningHours.OpenNow != nil
		d.OpenNow = r.OpeningHours.OpenNow
	}
	if d.PlaceID == "" {
		d.PlaceID = placeID
	}
	return d, nil
}

// Geocode resolves a free-text area to a center point. A ZERO_RESULTS answer
// returns (nil, nil) so callers can continue without location biasing.
func (c *Client) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	params := url.Values{
		"address": {address},
		"key":     {c.apiKey},
	}

	var resp geocodeResponse
	if err := c.call(ctx, c.endpoint(geocodeURL), params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, nil
	}

	first := resp.Results[0]
	return &GeocodeResult{
		Location:         first.Geometry.Location,
		FormattedAddress: first.FormattedAddress,
		Types:            first.Types,
	}, nil
}

// call performs one GET with a single bounded retry on quota errors.
func (c *Client) call(ctx context.Context, endpoint string, params url.Values, out interface{ status() (string, string) }) error {
	err := c.doOnce(ctx, endpoint, params, out)
	if !errors.Is(err, ErrQuota) {
		return err
	}

	select {
	case <-time.After(quotaBackoff):
	case <-ctx.Done():
		return ctx.Err()
	}
	return c.doOnce(ctx, endpoint, params, out)
}

func (c *Client) doOnce(ctx context.Context, endpoint string, params url.Values, out interface{ status() (string, string) }) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("places: rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("places: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrQuota
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places: upstream status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("places: read body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("places: parse response: %w", err)
	}

	status, message := out.status()
	switch status {
	case "OK", "ZERO_RESULTS":
		return nil
	case "OVER_QUERY_LIMIT", "RESOURCE_EXHAUSTED":
		return ErrQuota
	default:
		if message != "" {
			return fmt.Errorf("places: upstream error %s: %s", status, message)
		}
		return fmt.Errorf("places: upstream error %s", status)
	}
}

func (e statusEnvelope) status() (string, string) { return e.Status, e.ErrorMessage }

func (c *Client) endpoint(full string) string {
	if c.baseOverride == "" {
		return full
	}
	return c.baseOverride + full[len("https://maps.googleapis.com"):]
}

func toCandidates(results []placeResult) []Candidate {
	if len(results) == 0 {
		return nil
	}
	out := make([]Candidate, 0, len(results))
	for _, r := range results {
		addr := r.FormattedAddress
		if addr == "" {
			addr = r.Vicinity
		}
		out = append(out, Candidate{
			PlaceID:          r.PlaceID,
			Name:             r.Name,
			FormattedAddress: addr,
			Rating:           r.Rating,
			UserRatingsTotal: r.UserRatingsTotal,
			Website:          r.Website,
		})
	}
	return out
}
