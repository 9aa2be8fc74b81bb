// Package geocode wraps the Google Geocoding API (v4beta address endpoint).
//
// Lookups never return a Go error to callers: every failure mode collapses
// into a typed status on the result so one bad address cannot abort a batch.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/dqe-comms/battlecard-cli/internal/model"
)

const defaultBaseURL = "https://geocode.googleapis.com/v4beta"

// Client geocodes a single street address.
type Client interface {
	Geocode(ctx context.Context, address, city, state, zip string) model.GeocodeResult
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithRegionCode overrides the default "US" region bias.
func WithRegionCode(code string) Option {
	return func(c *httpClient) {
		c.regionCode = code
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey     string
	baseURL    string
	regionCode string
	http       *http.Client
}

// NewClient creates a Geocoding API client. An empty API key is allowed;
// requests will simply fail per call with an error status.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		regionCode: "US",
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	if apiKey == "" {
		zap.L().Warn("geocode: api key not configured, lookups will fail per request")
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// geocodeResponse is the JSON body of a v4beta geocode lookup.
type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Location struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	FormattedAddress string `json:"formattedAddress"`
	Granularity      string `json:"granularity"`
	PlaceID          string `json:"placeId"`
}

// Geocode resolves one address. Only the first result is used.
func (c *httpClient) Geocode(ctx context.Context, address, city, state, zip string) model.GeocodeResult {
	fullAddress := formatOneLine(address, city, state, zip)
	out := model.GeocodeResult{FormattedAddress: fullAddress}

	reqURL := c.baseURL + "/geocode/address/" + url.PathEscape(fullAddress) +
		"?regionCode=" + url.QueryEscape(c.regionCode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		out.Status = model.GeocodeError
		out.Error = err.Error()
		return out
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		out.Status = model.GeocodeError
		out.Error = err.Error()
		return out
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("geocode: api error",
			zap.String("address", fullAddress),
			zap.Int("status", resp.StatusCode),
		)
		out.Status = model.GeocodeErrorStatus(resp.StatusCode)
		return out
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		out.Status = model.GeocodeError
		out.Error = err.Error()
		return out
	}

	var geoResp geocodeResponse
	if err := json.Unmarshal(body, &geoResp); err != nil {
		out.Status = model.GeocodeError
		out.Error = err.Error()
		return out
	}

	if len(geoResp.Results) == 0 {
		out.Status = model.GeocodeNoResults
		return out
	}

	first := geoResp.Results[0]
	lat, lng := first.Location.Latitude, first.Location.Longitude
	out.Latitude = &lat
	out.Longitude = &lng
	if first.FormattedAddress != "" {
		out.FormattedAddress = first.FormattedAddress
	}
	out.Status = model.GeocodeSuccess
	granularity := first.Granularity
	if granularity == "" {
		granularity = "UNKNOWN"
	}
	out.Quality = &model.GeocodeQuality{
		Granularity: granularity,
		PlaceID:     first.PlaceID,
	}
	return out
}
