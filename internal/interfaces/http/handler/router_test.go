package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cartapp "github.com/gaspacks/backend/internal/application/cart"
	"github.com/gaspacks/backend/internal/application/cartui"
	catalogapp "github.com/gaspacks/backend/internal/application/catalog"
	"github.com/gaspacks/backend/internal/application/checkout"
	identityapp "github.com/gaspacks/backend/internal/application/identity"
	"github.com/gaspacks/backend/internal/application/locator"
	"github.com/gaspacks/backend/internal/domain/cart"
	"github.com/gaspacks/backend/internal/domain/catalog"
	"github.com/gaspacks/backend/internal/domain/dispensary"
	"github.com/gaspacks/backend/internal/domain/identity"
	"github.com/gaspacks/backend/internal/domain/payment"
	"github.com/gaspacks/backend/internal/domain/shared"
	"github.com/gaspacks/backend/internal/infrastructure/auth"
	"github.com/gaspacks/backend/internal/infrastructure/cache"
	"github.com/gaspacks/backend/internal/infrastructure/config"
	"github.com/gaspacks/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAdminKey = "test-admin-key"

// --- stubs ---

type stubGateway struct {
	resp  *payment.CreateInvoiceResponse
	err   error
	calls int
	last  *payment.CreateInvoiceRequest
}

func (g *stubGateway) CreateInvoice(ctx context.Context, req *payment.CreateInvoiceRequest) (*payment.CreateInvoiceResponse, error) {
	g.calls++
	g.last = req
	if g.err != nil {
		return nil, g.err
	}
	return g.resp, nil
}

type stubCartRecords struct {
	records map[string]*cart.Record
}

func (s *stubCartRecords) FindByUserID(ctx context.Context, userID string) (*cart.Record, error) {
	if r, ok := s.records[userID]; ok {
		return r, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubCartRecords) Save(ctx context.Context, record *cart.Record) error {
	s.records[record.UserID] = record
	return nil
}

type stubProfiles struct {
	byEmail map[string]*identity.Profile
}

func (s *stubProfiles) FindByEmail(ctx context.Context, email string) (*identity.Profile, error) {
	if p, ok := s.byEmail[strings.ToLower(email)]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubProfiles) Upsert(ctx context.Context, profile *identity.Profile) error {
	if existing, ok := s.byEmail[profile.Email]; ok {
		profile.Status = existing.Status
	}
	s.byEmail[profile.Email] = profile
	return nil
}

type stubIdentityRecords struct {
	saved []*identity.IdentityRecord
}

func (s *stubIdentityRecords) Save(ctx context.Context, record *identity.IdentityRecord) error {
	s.saved = append(s.saved, record)
	return nil
}

type stubProducts struct {
	byID map[uuid.UUID]*catalog.Product
}

func (s *stubProducts) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubProducts) FindAll(ctx context.Context, search, category string) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProducts) Save(ctx context.Context, product *catalog.Product) error {
	s.byID[product.ID] = product
	return nil
}

type stubStores struct {
	rows []dispensary.Dispensary
}

func (s *stubStores) FindAll(ctx context.Context) ([]dispensary.Dispensary, error) {
	return s.rows, nil
}

func (s *stubStores) SearchByAddress(ctx context.Context, term string) ([]dispensary.Dispensary, error) {
	var out []dispensary.Dispensary
	for _, r := range s.rows {
		if strings.Contains(strings.ToLower(r.Address), strings.ToLower(term)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubStores) SaveBatch(ctx context.Context, stores []*dispensary.Dispensary) (int, error) {
	for _, st := range stores {
		s.rows = append(s.rows, *st)
	}
	return len(stores), nil
}

type fixedGeocoder struct {
	coords map[string]dispensary.Coordinates
}

func (g *fixedGeocoder) Geocode(ctx context.Context, address string) (dispensary.Coordinates, error) {
	if c, ok := g.coords[address]; ok {
		return c, nil
	}
	return dispensary.Coordinates{}, dispensary.ErrNoMatch
}

// --- harness ---

type testApp struct {
	engine   *gin.Engine
	verifier *auth.TokenVerifier
	gateway  *stubGateway
	profiles *stubProfiles
	idrecs   *stubIdentityRecords
	records  *stubCartRecords
	stores   *stubStores
	products *stubProducts
	geocoder *fixedGeocoder
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	verifier := auth.NewTokenVerifier(config.JWTConfig{
		Secret: "test-secret-test-secret-test-secret",
		Issuer: "https://auth.test",
	})

	gateway := &stubGateway{resp: &payment.CreateInvoiceResponse{
		InvoiceID:  "4522625843",
		InvoiceURL: "https://nowpayments.io/payment/?iid=4522625843",
	}}
	records := &stubCartRecords{records: map[string]*cart.Record{}}
	profiles := &stubProfiles{byEmail: map[string]*identity.Profile{}}
	idrecs := &stubIdentityRecords{}
	stores := &stubStores{}
	products := &stubProducts{byID: map[uuid.UUID]*catalog.Product{}}
	geocoder := &fixedGeocoder{coords: map[string]dispensary.Coordinates{}}

	cartService := cartapp.NewService(cache.NewInMemorySnapshotStore(), records)
	identityService := identityapp.NewService(profiles, idrecs)

	app := &testApp{
		verifier: verifier,
		gateway:  gateway,
		profiles: profiles,
		idrecs:   idrecs,
		records:  records,
		stores:   stores,
		products: products,
		geocoder: geocoder,
	}
	app.engine = NewEngine(RouterConfig{
		Cart:       NewCartHandler(cartService, cartui.NewPanelService()),
		Checkout:   NewCheckoutHandler(checkout.NewService(cartService, gateway)),
		Dispensary: NewDispensaryHandler(locator.NewService(stores, geocoder)),
		Products:   NewProductHandler(catalogapp.NewService(products)),
		Identity:   NewIdentityHandler(identityService),
		System:     NewSystemHandler(nil),
		Verifier:   verifier,
		Statuses:   identityService,
		AdminKey:   testAdminKey,
		CORS: middleware.CORSConfig{
			AllowOrigins: []string{"https://shop.test"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Content-Type", "Authorization", "X-Device-ID"},
			MaxAge:       time.Hour,
		},
		MaxBodyBytes: 1 << 20,
	}, zap.NewNop())
	return app
}

func (a *testApp) request(t *testing.T, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func deviceHeader(device string) map[string]string {
	return map[string]string{"X-Device-ID": device}
}

func (a *testApp) token(t *testing.T, subject, email string) string {
	t.Helper()
	token, err := a.verifier.Sign(&auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
		Email:            email,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- proxy surface semantics ---

func TestEngine_MethodAndBodyHandling(t *testing.T) {
	app := newTestApp(t)

	t.Run("OPTIONS preflight answers 200 with CORS headers", func(t *testing.T) {
		w := app.request(t, http.MethodOptions, "/api/v1/checkout", "", map[string]string{
			"Origin": "https://shop.test",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://shop.test", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "X-Device-ID")
	})

	t.Run("wrong method on a known path answers 405", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/checkout", "", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

		errInfo := decodeBody(t, w)["error"].(map[string]any)
		assert.Equal(t, "ERR_METHOD_NOT_ALLOWED", errInfo["code"])
	})

	t.Run("unknown path answers 404", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unparsable JSON answers 400", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/checkout", "{not json", deviceHeader("dev-1"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversized body answers 413", func(t *testing.T) {
		big := strings.Repeat("x", (1<<20)+1)
		w := app.request(t, http.MethodPost, "/api/v1/checkout", big, deviceHeader("dev-1"))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

// --- access gate ---

func TestEngine_AccessGate(t *testing.T) {
	app := newTestApp(t)
	submission := `{"dob_year":"1990","dob_month":"04","dob_day":"20","ssn":"123-45-6789"}`

	t.Run("no token answers 401", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/account/identity", submission, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("pending account answers 403", func(t *testing.T) {
		profile, err := identity.NewProfile("auth0|pending", "pending@example.com", "")
		require.NoError(t, err)
		app.profiles.byEmail[profile.Email] = profile

		w := app.request(t, http.MethodPost, "/api/v1/account/identity", submission, map[string]string{
			"Authorization": "Bearer " + app.token(t, "auth0|pending", "pending@example.com"),
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown account fails closed to 403", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/account/identity", submission, map[string]string{
			"Authorization": "Bearer " + app.token(t, "auth0|ghost", "ghost@example.com"),
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("active account passes and submission is stored", func(t *testing.T) {
		profile, err := identity.NewProfile("auth0|active", "active@example.com", "")
		require.NoError(t, err)
		profile.Status = identity.StatusActive
		app.profiles.byEmail[profile.Email] = profile

		w := app.request(t, http.MethodPost, "/api/v1/account/identity", submission, map[string]string{
			"Authorization": "Bearer " + app.token(t, "auth0|active", "active@example.com"),
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		require.Len(t, app.idrecs.saved, 1)
		assert.Equal(t, "auth0|active", app.idrecs.saved[0].UserID)
		assert.Equal(t, "1990-04-20", app.idrecs.saved[0].DateOfBirth)
	})

	t.Run("account status endpoint reports the gate decision", func(t *testing.T) {
		w := app.request(t, http.MethodGet, "/api/v1/account/status", "", map[string]string{
			"Authorization": "Bearer " + app.token(t, "auth0|active", "active@example.com"),
		})
		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]any)
		assert.Equal(t, "active", data["status"])
		assert.Equal(t, true, data["active"])
	})
}

// --- admin key guard ---

func TestEngine_AdminKeyGuard(t *testing.T) {
	app := newTestApp(t)
	body := `{"dispensaries":[{"name":"Budega","address":"10 Bedford Ave, Brooklyn"}]}`

	t.Run("missing key answers 403", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/dispensaries/import", body, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("wrong key answers 403", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/dispensaries/import", body, map[string]string{
			"X-Admin-Key": "wrong",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("correct key imports", func(t *testing.T) {
		w := app.request(t, http.MethodPost, "/api/v1/dispensaries/import", body, map[string]string{
			"X-Admin-Key": testAdminKey,
		})
		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]any)
		assert.EqualValues(t, 1, data["imported"])
		require.Len(t, app.stores.rows, 1)
	})
}

// --- identity webhook ---

func TestEngine_ProfileWebhook(t *testing.T) {
	app := newTestApp(t)
	adminHeader := map[string]string{"X-Admin-Key": testAdminKey}

	w := app.request(t, http.MethodPost, "/api/v1/webhooks/identity",
		`{"id":"auth0|u9","email":"New@Example.com","full_name":"New User"}`, adminHeader)
	require.Equal(t, http.StatusOK, w.Code)

	profile, ok := app.profiles.byEmail["new@example.com"]
	require.True(t, ok)
	assert.Equal(t, identity.StatusPending, profile.Status)

	// replay after approval must not reset the status
	profile.Status = identity.StatusActive
	w = app.request(t, http.MethodPost, "/api/v1/webhooks/identity",
		`{"id":"auth0|u9","email":"new@example.com","full_name":"Renamed"}`, adminHeader)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, identity.StatusActive, app.profiles.byEmail["new@example.com"].Status)
	assert.Equal(t, "Renamed", app.profiles.byEmail["new@example.com"].FullName)
}
