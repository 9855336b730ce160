package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gaspacks/backend/internal/domain/dispensary"
)

// Errors for configuration validation
var (
	ErrGoogleMissingAPIKey  = errors.New("geocoding: missing API key")
	ErrGoogleMissingBaseURL = errors.New("geocoding: missing base URL")
)

// GoogleConfig contains configuration for the Google Geocoding API
type GoogleConfig struct {
	// APIKey authenticates requests via the key query parameter
	APIKey string
	// BaseURL is the full endpoint, e.g. "https://maps.googleapis.com/maps/api/geocode/json"
	BaseURL string
	// Timeout bounds each outbound request
	Timeout time.Duration
}

// Validate validates the configuration
func (c *GoogleConfig) Validate() error {
	if c.APIKey == "" {
		return ErrGoogleMissingAPIKey
	}
	if c.BaseURL == "" {
		return ErrGoogleMissingBaseURL
	}
	return nil
}

// GoogleAdapter implements dispensary.Geocoder against the Google
// Geocoding API.
type GoogleAdapter struct {
	config     *GoogleConfig
	httpClient *http.Client
}

// NewGoogleAdapter creates a new Google geocoding adapter
func NewGoogleAdapter(config *GoogleConfig) (*GoogleAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &GoogleAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// googleGeocodeResponse is the subset of the API response we consume
type googleGeocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

// Geocode resolves a postal address to coordinates. An address the
// provider cannot resolve yields dispensary.ErrNoMatch.
func (a *GoogleAdapter) Geocode(ctx context.Context, address string) (dispensary.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return dispensary.Coordinates{}, dispensary.ErrNoMatch
	}

	query := url.Values{}
	query.Set("address", address)
	query.Set("key", a.config.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.config.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return dispensary.Coordinates{}, fmt.Errorf("geocoding: failed to build request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return dispensary.Coordinates{}, fmt.Errorf("geocoding: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return dispensary.Coordinates{}, fmt.Errorf("geocoding: failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return dispensary.Coordinates{}, fmt.Errorf("geocoding: unexpected status %d", resp.StatusCode)
	}

	var respData googleGeocodeResponse
	if err := json.Unmarshal(respBody, &respData); err != nil {
		return dispensary.Coordinates{}, fmt.Errorf("geocoding: failed to parse response: %w", err)
	}

	// First result wins, matching how the locator resolves ambiguity.
	if len(respData.Results) == 0 {
		return dispensary.Coordinates{}, dispensary.ErrNoMatch
	}

	loc := respData.Results[0].Geometry.Location
	return dispensary.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// Ensure GoogleAdapter implements Geocoder
var _ dispensary.Geocoder = (*GoogleAdapter)(nil)
