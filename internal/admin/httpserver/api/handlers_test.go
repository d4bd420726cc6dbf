package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"aozone.vn/shop-admin/internal/admin/httpserver/api"
	"aozone.vn/shop-admin/internal/admin/httpserver/middleware"
	"aozone.vn/shop-admin/internal/admin/orders"
)

func TestOrderTransitionFailureLogsRequestPath(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.ErrorLevel)
	store := orders.NewStore(orders.NewStaticService(), nil, nil)
	handlers := api.New(store, nil, zap.New(core).Sugar())

	router := chi.NewRouter()
	router.Use(middleware.RequestInfoMiddleware("/admin"))
	router.Use(middleware.Auth(nil))
	router.Put("/orders/{orderID}/status", handlers.OrderTransition)

	req := httptest.NewRequest(http.MethodPut, "/orders/nope/status", strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Authorization", "Bearer op-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "/orders/nope/status", entries[0].ContextMap()["path"])
	require.Equal(t, "nope", entries[0].ContextMap()["order"])
}

func TestOrdersIndexLoadFailureLogsRequestPath(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.ErrorLevel)
	store := orders.NewStore(&orders.StaticService{ListErr: http.ErrBodyNotAllowed}, nil, nil)
	handlers := api.New(store, nil, zap.New(core).Sugar())

	router := chi.NewRouter()
	router.Use(middleware.RequestInfoMiddleware("/admin"))
	router.Use(middleware.Auth(nil))
	router.Get("/orders", handlers.OrdersIndex)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer op-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)

	entries := logs.FilterMessage("order snapshot refresh failed").All()
	require.Len(t, entries, 1)
	require.Equal(t, "/orders", entries[0].ContextMap()["path"])
}
