// Package testutil provides helpers for exercising the console over HTTP.
package testutil

import (
	"net/http/httptest"
	"testing"

	"aozone.vn/shop-admin/internal/admin/analytics"
	"aozone.vn/shop-admin/internal/admin/catalog"
	"aozone.vn/shop-admin/internal/admin/customers"
	"aozone.vn/shop-admin/internal/admin/httpserver"
	"aozone.vn/shop-admin/internal/admin/httpserver/middleware"
	adminorders "aozone.vn/shop-admin/internal/admin/orders"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*serverConfig)

type serverConfig struct {
	basePath      string
	authenticator middleware.Authenticator
	orders        adminorders.Service
	catalog       catalog.Service
	customers     customers.Service
}

// WithAuthenticator overrides the authenticator used by the server.
func WithAuthenticator(auth middleware.Authenticator) ServerOption {
	return func(cfg *serverConfig) {
		cfg.authenticator = auth
	}
}

// WithBasePath sets a custom base path for the console routes.
func WithBasePath(path string) ServerOption {
	return func(cfg *serverConfig) {
		cfg.basePath = path
	}
}

// WithOrdersService wires a custom order source.
func WithOrdersService(service adminorders.Service) ServerOption {
	return func(cfg *serverConfig) {
		cfg.orders = service
	}
}

// WithCatalogService wires a custom product reference source.
func WithCatalogService(service catalog.Service) ServerOption {
	return func(cfg *serverConfig) {
		cfg.catalog = service
	}
}

// WithCustomersService wires a custom customer reference source.
func WithCustomersService(service customers.Service) ServerOption {
	return func(cfg *serverConfig) {
		cfg.customers = service
	}
}

// Server wires the full console stack over the static fixture services and
// returns it together with the order store for direct assertions. Options
// swap out individual pieces.
func Server(t testing.TB, opts ...ServerOption) (*httptest.Server, *adminorders.Store) {
	t.Helper()

	cfg := serverConfig{
		basePath:  "/admin",
		orders:    adminorders.NewStaticService(),
		catalog:   catalog.NewStaticService(),
		customers: customers.NewStaticService(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := adminorders.NewStore(cfg.orders, nil, nil)
	aggregator := analytics.NewAggregator(store, cfg.catalog, cfg.customers, nil)

	srv := httpserver.New(httpserver.Config{
		BasePath:      cfg.basePath,
		Authenticator: cfg.authenticator,
		Store:         store,
		Analytics:     aggregator,
	})

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts, store
}
