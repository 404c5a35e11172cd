package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/slicehub/pizza-service/internal/auth"
	"github.com/slicehub/pizza-service/internal/config"
	"github.com/slicehub/pizza-service/internal/factory"
	"github.com/slicehub/pizza-service/internal/handlers"
	"github.com/slicehub/pizza-service/internal/metrics"
	"github.com/slicehub/pizza-service/internal/routes"
	"github.com/slicehub/pizza-service/internal/services"
	"github.com/slicehub/pizza-service/internal/store/storetest"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@test.com"
	adminPassword = "toomanysecrets"
)

type env struct {
	t         *testing.T
	app       *fiber.App
	store     *storetest.InMemory
	collector *metrics.Collector
}

// newEnv wires the full route table against the in-memory store, with
// the factory pointed at the given stub URL and rate limiting off.
func newEnv(t *testing.T, factoryURL string) *env {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		FactoryURL:     factoryURL,
		FactoryAPIKey:  "test-api-key",
		FactoryTimeout: 2 * time.Second,
		RateLimit:      false,
	}

	st := storetest.New()
	tokens := auth.NewTokenService(cfg, st)
	collector := metrics.NewCollector(time.Minute)

	authService := services.NewAuthService(st, tokens)
	franchiseService := services.NewFranchiseService(st)
	orderService := services.NewOrderService(st, factory.NewClient(cfg), collector)

	require.NoError(t, authService.EnsureAdmin("admin", adminEmail, adminPassword))

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	routes.Setup(app, cfg, tokens, collector,
		handlers.NewAuthHandler(authService, collector),
		handlers.NewFranchiseHandler(franchiseService),
		handlers.NewOrderHandler(orderService),
		handlers.NewHealthHandler(),
		handlers.NewDocsHandler("test"),
	)

	return &env{t: t, app: app, store: st, collector: collector}
}

// okFactory is a stub factory that fulfills every order.
func okFactory(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"jwt": "factory-proof"})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// failingFactory is a stub factory that rejects every order with an
// escalation URL.
func failingFactory(t *testing.T, reportURL string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"reportUrl": reportURL})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (e *env) do(method, path, token string, body any) (int, map[string]any) {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(e.t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

// doList is do for endpoints whose response body is a JSON array.
func (e *env) doList(method, path, token string, body any) (int, []map[string]any) {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)

	var decoded []map[string]any
	if resp.StatusCode == http.StatusOK {
		require.NoError(e.t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

// register creates a diner account and returns its user body and token.
func (e *env) register(name, email, password string) (map[string]any, string) {
	e.t.Helper()

	status, body := e.do(http.MethodPost, "/api/auth", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(e.t, http.StatusOK, status, "register failed: %v", body)

	user, _ := body["user"].(map[string]any)
	token, _ := body["token"].(string)
	require.NotEmpty(e.t, token)
	return user, token
}

func (e *env) login(email, password string) (map[string]any, string) {
	e.t.Helper()

	status, body := e.do(http.MethodPut, "/api/auth", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(e.t, http.StatusOK, status, "login failed: %v", body)

	user, _ := body["user"].(map[string]any)
	token, _ := body["token"].(string)
	require.NotEmpty(e.t, token)
	return user, token
}

func (e *env) loginAdmin() (map[string]any, string) {
	e.t.Helper()
	return e.login(adminEmail, adminPassword)
}
