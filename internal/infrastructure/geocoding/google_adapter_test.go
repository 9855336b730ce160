package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gaspacks/backend/internal/domain/dispensary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *GoogleAdapter {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	adapter, err := NewGoogleAdapter(&GoogleConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return adapter
}

func TestNewGoogleAdapter_ValidatesConfig(t *testing.T) {
	_, err := NewGoogleAdapter(&GoogleConfig{BaseURL: "https://maps.googleapis.com"})
	assert.ErrorIs(t, err, ErrGoogleMissingAPIKey)

	_, err = NewGoogleAdapter(&GoogleConfig{APIKey: "k"})
	assert.ErrorIs(t, err, ErrGoogleMissingBaseURL)
}

func TestGeocode_Success(t *testing.T) {
	var gotAddress, gotKey string

	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotAddress = r.URL.Query().Get("address")
		gotKey = r.URL.Query().Get("key")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"geometry": {"location": {"lat": 40.7128, "lng": -74.006}}},
				{"geometry": {"location": {"lat": 41.0, "lng": -75.0}}}
			]
		}`))
	})

	coords, err := adapter.Geocode(context.Background(), "5 Canal St, New York, NY")
	require.NoError(t, err)

	assert.Equal(t, "5 Canal St, New York, NY", gotAddress)
	assert.Equal(t, "test-key", gotKey)
	// first result wins
	assert.InDelta(t, 40.7128, coords.Lat, 0.0001)
	assert.InDelta(t, -74.006, coords.Lng, 0.0001)
}

func TestGeocode_NoMatch(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	_, err := adapter.Geocode(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, dispensary.ErrNoMatch)
}

func TestGeocode_EmptyAddress(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("empty address must not reach the provider")
	})

	_, err := adapter.Geocode(context.Background(), "   ")
	assert.ErrorIs(t, err, dispensary.ErrNoMatch)
}

func TestGeocode_UpstreamFailure(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := adapter.Geocode(context.Background(), "5 Canal St")
	require.Error(t, err)
	assert.NotErrorIs(t, err, dispensary.ErrNoMatch)
}
