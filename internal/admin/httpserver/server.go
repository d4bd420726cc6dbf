package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"aozone.vn/shop-admin/internal/admin/analytics"
	"aozone.vn/shop-admin/internal/admin/httpserver/api"
	custommw "aozone.vn/shop-admin/internal/admin/httpserver/middleware"
	"aozone.vn/shop-admin/internal/admin/orders"
)

// Config holds runtime options for the operator console HTTP server.
type Config struct {
	Address       string
	BasePath      string
	Authenticator custommw.Authenticator
	Store         *orders.Store
	Analytics     analytics.Service
	Logger        *zap.SugaredLogger
}

// New constructs the HTTP server with the middleware stack and API routes.
func New(cfg Config) *http.Server {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(60 * time.Second))

	basePath := normalizeBasePath(cfg.BasePath)

	authenticator := cfg.Authenticator
	if authenticator == nil {
		authenticator = custommw.DefaultAuthenticator()
	}

	handlers := api.New(cfg.Store, cfg.Analytics, cfg.Logger)

	router.Route(basePath, func(r chi.Router) {
		r.Use(custommw.RequestInfoMiddleware(basePath))
		r.Use(custommw.Auth(authenticator))

		r.Get("/orders", handlers.OrdersIndex)
		r.Put("/orders/{orderID}/status", handlers.OrderTransition)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/overview", handlers.Overview)
			r.Get("/best-sellers", handlers.BestSellers)
			r.Get("/top-spenders", handlers.TopSpenders)
			r.Get("/revenue", handlers.Revenue)
		})
	})

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func normalizeBasePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/admin"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}
