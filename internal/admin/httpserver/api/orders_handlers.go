package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"aozone.vn/shop-admin/internal/admin/httpserver/middleware"
	"aozone.vn/shop-admin/internal/admin/orders"
)

const (
	msgLoadFailed       = "Không thể tải danh sách đơn hàng."
	msgOrderNotFound    = "Không tìm thấy đơn hàng."
	msgMissingOrderID   = "Thiếu mã đơn hàng."
	msgInvalidTarget    = "Trạng thái không hợp lệ."
	msgInvalidChange    = "Không thể chuyển trạng thái đơn hàng."
	msgChangeInFlight   = "Đơn hàng đang được cập nhật."
	msgUpdateFailed     = "Cập nhật trạng thái thất bại."
	msgMalformedRequest = "Yêu cầu không hợp lệ."
)

// orderRow is the table row handed to the presentation layer: the order plus
// derived display fields and the operator actions valid for its state.
type orderRow struct {
	orders.Order
	StatusLabel string          `json:"statusLabel"`
	StatusTone  string          `json:"statusTone"`
	Actions     []orders.Status `json:"actions"`
}

type ordersResponse struct {
	Orders []orderRow `json:"orders"`
	Total  int        `json:"total"`
}

func toRow(o orders.Order) orderRow {
	return orderRow{
		Order:       o,
		StatusLabel: o.StatusLabel(),
		StatusTone:  orders.StatusTone(o.Status),
		Actions:     orders.OperatorActions(o.Status),
	}
}

// OrdersIndex serves GET /orders. The snapshot is (re)loaded when the view
// activates (`refresh=true`) or when nothing has been loaded yet; otherwise
// the cached snapshot is filtered and returned.
func (h *Handlers) OrdersIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Phiên đăng nhập không hợp lệ.")
		return
	}

	refresh := strings.EqualFold(r.URL.Query().Get("refresh"), "true")
	if refresh || h.store.Len() == 0 {
		if _, err := h.store.Load(ctx, user.Token); err != nil {
			h.logger.Errorw("order snapshot refresh failed", "path", requestPath(ctx), "error", err)
			writeMessage(w, http.StatusBadGateway, msgLoadFailed)
			return
		}
	}

	filter := orders.Filter{
		Keyword: r.URL.Query().Get("q"),
		Status:  orders.Status(strings.TrimSpace(r.URL.Query().Get("status"))),
	}
	matched := orders.ApplyFilter(h.store.Snapshot(), filter)

	rows := make([]orderRow, 0, len(matched))
	for _, o := range matched {
		rows = append(rows, toRow(o))
	}
	writeJSON(w, http.StatusOK, ordersResponse{Orders: rows, Total: len(rows)})
}

// OrderTransition serves PUT /orders/{orderID}/status.
func (h *Handlers) OrderTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Phiên đăng nhập không hợp lệ.")
		return
	}

	orderID := chi.URLParam(r, "orderID")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, msgMalformedRequest)
		return
	}
	target := orders.NormalizeStatus(body.Status)
	if target == "" {
		writeMessage(w, http.StatusBadRequest, msgInvalidTarget)
		return
	}

	actor := orders.Actor{ID: user.UID, Email: user.Email}
	updated, err := h.store.Transition(ctx, user.Token, orderID, target, actor)
	if err != nil {
		h.logger.Errorw("status transition failed",
			"order", orderID, "target", target, "path", requestPath(ctx), "error", err)
		status, message := transitionFailure(err)
		writeMessage(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, toRow(updated))
}

func transitionFailure(err error) (int, string) {
	switch {
	case errors.Is(err, orders.ErrMissingOrderID):
		return http.StatusBadRequest, msgMissingOrderID
	case errors.Is(err, orders.ErrOrderNotFound):
		return http.StatusNotFound, msgOrderNotFound
	case errors.Is(err, orders.ErrInvalidTransition):
		return http.StatusConflict, msgInvalidChange
	case errors.Is(err, orders.ErrTransitionInFlight):
		return http.StatusConflict, msgChangeInFlight
	default:
		return http.StatusBadGateway, msgUpdateFailed
	}
}
