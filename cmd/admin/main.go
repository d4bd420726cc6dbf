package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aozone.vn/shop-admin/internal/admin/analytics"
	"aozone.vn/shop-admin/internal/admin/catalog"
	"aozone.vn/shop-admin/internal/admin/config"
	"aozone.vn/shop-admin/internal/admin/customers"
	"aozone.vn/shop-admin/internal/admin/httpserver"
	"aozone.vn/shop-admin/internal/admin/httpserver/middleware"
	"aozone.vn/shop-admin/internal/admin/logging"
	"aozone.vn/shop-admin/internal/admin/orders"
)

func main() {
	logger, err := logging.NewLogger()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg := config.Get()

	orderSvc, catalogSvc, customerSvc, err := buildServices(cfg)
	if err != nil {
		sugar.Fatalw("service init failed", "error", err)
	}

	store := orders.NewStore(orderSvc, orders.NewZapAuditLogger(logger), sugar)
	aggregator := analytics.NewAggregator(store, catalogSvc, customerSvc, sugar)

	srv := httpserver.New(httpserver.Config{
		Address:       cfg.RunAddress,
		BasePath:      cfg.BasePath,
		Authenticator: middleware.NewJWTAuthenticator(cfg.JWTSecret),
		Store:         store,
		Analytics:     aggregator,
		Logger:        sugar,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("http server failed", "error", err)
		}
	}()

	sugar.Infow("console listening",
		"address", cfg.RunAddress,
		"basePath", cfg.BasePath,
		"backend", cfg.BackendAddress,
		"staticData", cfg.StaticData,
	)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}

func buildServices(cfg *config.Config) (orders.Service, catalog.Service, customers.Service, error) {
	if cfg.StaticData {
		return orders.NewStaticService(), catalog.NewStaticService(), customers.NewStaticService(), nil
	}

	client := &http.Client{Timeout: cfg.RequestTimeout}

	orderSvc, err := orders.NewHTTPService(cfg.BackendAddress, client)
	if err != nil {
		return nil, nil, nil, err
	}
	catalogSvc, err := catalog.NewHTTPService(cfg.BackendAddress, client)
	if err != nil {
		return nil, nil, nil, err
	}
	customerSvc, err := customers.NewHTTPService(cfg.BackendAddress, client)
	if err != nil {
		return nil, nil, nil, err
	}
	return orderSvc, catalogSvc, customerSvc, nil
}
