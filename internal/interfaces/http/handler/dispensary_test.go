package handler

import (
	"net/http"
	"testing"

	"github.com/gaspacks/backend/internal/domain/dispensary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStores(app *testApp) {
	app.stores.rows = []dispensary.Dispensary{
		{Name: "Budega", Address: "10 Bedford Ave, Brooklyn"},
		{Name: "Herb House", Address: "99 Flatbush Ave, Brooklyn"},
		{Name: "Uptown", Address: "500 Broadway, Albany"},
	}
	app.geocoder.coords = map[string]dispensary.Coordinates{
		"10 Bedford Ave, Brooklyn":  {Lat: 40.72, Lng: -73.95},
		"99 Flatbush Ave, Brooklyn": {Lat: 40.68, Lng: -73.97},
		"500 Broadway, Albany":      {Lat: 42.65, Lng: -73.75},
	}
}

func TestDispensaryNearbyEndpoint(t *testing.T) {
	app := newTestApp(t)
	seedStores(app)

	t.Run("returns stores within the radius", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/dispensaries/nearby?lat=40.70&lng=-73.95", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		stores := decodeBody(t, w)["data"].(map[string]any)["stores"].([]any)
		require.Len(t, stores, 2) // Albany is ~130 miles out
		first := stores[0].(map[string]any)
		assert.Equal(t, "Budega", first["name"])
		assert.NotZero(t, first["distance_miles"])
	})

	t.Run("missing coordinates answer 400", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/dispensaries/nearby", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("out-of-range latitude answers 400", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/dispensaries/nearby?lat=91&lng=0", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDispensarySearchEndpoint(t *testing.T) {
	app := newTestApp(t)
	seedStores(app)

	t.Run("matches by address substring and centers on the first hit", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/dispensaries/search?q=brooklyn", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Len(t, data["stores"].([]any), 2)

		center := data["center"].(map[string]any)
		assert.InDelta(t, 40.72, center["lat"], 0.001)
	})

	t.Run("no matches has no center", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/dispensaries/search?q=miami", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Empty(t, data["stores"])
		assert.Nil(t, data["center"])
	})

	t.Run("blank query returns an empty result", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/dispensaries/search?q=", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeBody(t, w)["data"].(map[string]any)["stores"])
	})
}
