package handler

import (
	"net/http"
	"testing"

	"github.com/gaspacks/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductEndpoints(t *testing.T) {
	app := newTestApp(t)

	product, err := catalog.NewProduct("Gas OG", "Indica", []catalog.Variant{
		{Weight: "3.5g", Price: decimal.NewFromInt(40)},
	})
	require.NoError(t, err)
	app.products.byID[product.ID] = product

	t.Run("list decodes stored variants", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/products", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		products := decodeBody(t, w)["data"].(map[string]any)["products"].([]any)
		require.Len(t, products, 1)
		p := products[0].(map[string]any)
		assert.Equal(t, "Gas OG", p["name"])
		assert.Equal(t, "indica", p["category"])

		variants := p["variants"].([]any)
		require.Len(t, variants, 1)
		assert.Equal(t, "3.5g", variants[0].(map[string]any)["weight"])
	})

	t.Run("get by ID", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/products/"+product.ID.String(), "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Gas OG", decodeBody(t, w)["data"].(map[string]any)["name"])
	})

	t.Run("malformed ID answers 400", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/products/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown ID answers 404", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/products/"+uuid.NewString(), "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("create requires the admin key", func(t *testing.T) {
		body := `{"name":"Pre-Roll 5pk","category":"hybrid","variants":[{"weight":"5pk","price":35.5}]}`

		w := app.request(t, http.MethodPost, "/api/v1/products", body, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = app.request(t, http.MethodPost, "/api/v1/products", body, map[string]string{
			"X-Admin-Key": testAdminKey,
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Pre-Roll 5pk", decodeBody(t, w)["data"].(map[string]any)["name"])
	})

	t.Run("create rejects an unknown category", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/products",
			`{"name":"X","category":"sour","variants":[{"weight":"1g","price":10}]}`,
			map[string]string{"X-Admin-Key": testAdminKey})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
