package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

func testConfig(metricsEnabled bool) *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "test"},
		CORS:    config.CORSConfig{AllowedOrigins: []string{"http://kiosk.local"}},
		Metrics: config.MetricsConfig{Enabled: metricsEnabled},
	}
}

func testRouter(t *testing.T, cfg *config.Config) (http.Handler, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	source := catalog.SourceFunc(func(context.Context) ([]catalog.Product, error) {
		return []catalog.Product{{ID: 7, Title: "Backpack", Price: decimal.RequireFromString("109.95"), Category: "bags"}}, nil
	})
	d, err := storefront.NewDispatcher(
		storefront.NewState(cart.DefaultTaxRate, nil),
		source,
		storefront.WithMetrics(metrics.NewStorefrontMetrics(reg)),
	)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	if _, err := d.LoadCatalog(context.Background()); err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	router := NewRouter(cfg, logger.Nop(), d, reg, map[string]controllers.Pinger{"db": stubPinger{}})
	return router, reg
}

func TestHealthRoutes(t *testing.T) {
	router, _ := testRouter(t, testConfig(true))

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
		if resp.Header().Get("X-Request-Id") == "" {
			t.Fatalf("%s: expected request id header", path)
		}
	}
}

func TestStorefrontRoutesAreMounted(t *testing.T) {
	router, _ := testRouter(t, testConfig(true))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":7}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Data struct {
			Applied bool `json:"applied"`
			View    struct {
				Cart struct {
					ItemCount int `json:"item_count"`
				} `json:"cart"`
			} `json:"view"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Data.Applied || body.Data.View.Cart.ItemCount != 1 {
		t.Fatalf("unexpected response %+v", body.Data)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/7", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", resp.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := testRouter(t, testConfig(true))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/checkout/order", nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	payload, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(payload), "storefront_events_total") {
		t.Fatalf("expected storefront metrics in output")
	}
}

func TestMetricsEndpointDisabled(t *testing.T) {
	router, _ := testRouter(t, testConfig(false))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	router, _ := testRouter(t, testConfig(true))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/checkout", nil)
	req.Header.Set("Origin", "http://kiosk.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://kiosk.local" {
		t.Fatalf("unexpected allow origin %q", got)
	}
}
