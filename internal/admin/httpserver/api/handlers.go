// Package api contains the JSON handlers the presentation layer talks to.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"aozone.vn/shop-admin/internal/admin/analytics"
	"aozone.vn/shop-admin/internal/admin/httpserver/middleware"
	"aozone.vn/shop-admin/internal/admin/orders"
)

// Handlers bundles the services backing the console's JSON endpoints.
type Handlers struct {
	store     *orders.Store
	analytics analytics.Service
	logger    *zap.SugaredLogger
}

// New constructs the handler set.
func New(store *orders.Store, analyticsSvc analytics.Service, logger *zap.SugaredLogger) *Handlers {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handlers{
		store:     store,
		analytics: analyticsSvc,
		logger:    logger,
	}
}

// requestPath returns the path recorded by the request-info middleware, for
// log correlation.
func requestPath(ctx context.Context) string {
	info, ok := middleware.RequestInfoFromContext(ctx)
	if !ok {
		return ""
	}
	return info.Path
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeMessage answers with the console's error envelope. The message is
// user-visible; details stay in the logs.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
