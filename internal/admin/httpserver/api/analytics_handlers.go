package api

import (
	"net/http"
	"strings"
	"time"

	"aozone.vn/shop-admin/internal/admin/httpserver/middleware"
)

const (
	msgAnalyticsFailed = "Không thể tải dữ liệu thống kê."
	msgInvalidRange    = "Khoảng thời gian không hợp lệ."
)

const dateLayout = "2006-01-02"

// Overview serves GET /analytics/overview.
func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := middleware.UserFromContext(ctx)

	overview, err := h.analytics.Overview(ctx, tokenOf(user))
	if err != nil {
		h.logger.Errorw("overview load failed", "path", requestPath(ctx), "error", err)
		writeMessage(w, http.StatusBadGateway, msgAnalyticsFailed)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// BestSellers serves GET /analytics/best-sellers.
func (h *Handlers) BestSellers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := middleware.UserFromContext(ctx)

	ranking, err := h.analytics.BestSellers(ctx, tokenOf(user))
	if err != nil {
		h.logger.Errorw("best seller ranking failed", "path", requestPath(ctx), "error", err)
		writeMessage(w, http.StatusBadGateway, msgAnalyticsFailed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bestSellers": ranking})
}

// TopSpenders serves GET /analytics/top-spenders.
func (h *Handlers) TopSpenders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := middleware.UserFromContext(ctx)

	ranking, err := h.analytics.TopSpenders(ctx, tokenOf(user))
	if err != nil {
		h.logger.Errorw("top spender ranking failed", "path", requestPath(ctx), "error", err)
		writeMessage(w, http.StatusBadGateway, msgAnalyticsFailed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"topSpenders": ranking})
}

// Revenue serves GET /analytics/revenue?from=2006-01-02&to=2006-01-02. Both
// bounds must be given together; with neither, the month-to-date window is
// used.
func (h *Handlers) Revenue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _ := middleware.UserFromContext(ctx)

	fromStr := strings.TrimSpace(r.URL.Query().Get("from"))
	toStr := strings.TrimSpace(r.URL.Query().Get("to"))

	var from, to time.Time
	if fromStr != "" || toStr != "" {
		var err error
		from, err = time.ParseInLocation(dateLayout, fromStr, time.Local)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidRange)
			return
		}
		to, err = time.ParseInLocation(dateLayout, toStr, time.Local)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, msgInvalidRange)
			return
		}
		if to.Before(from) {
			writeMessage(w, http.StatusBadRequest, msgInvalidRange)
			return
		}
	}

	report, err := h.analytics.Revenue(ctx, tokenOf(user), from, to)
	if err != nil {
		h.logger.Errorw("revenue report failed", "path", requestPath(ctx), "error", err)
		writeMessage(w, http.StatusBadGateway, msgAnalyticsFailed)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func tokenOf(user *middleware.User) string {
	if user == nil {
		return ""
	}
	return user.Token
}
