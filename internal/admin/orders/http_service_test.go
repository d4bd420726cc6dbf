package orders_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"aozone.vn/shop-admin/internal/admin/orders"
)

func TestHTTPServiceListDecodesMixedCustomerShapes(t *testing.T) {
	t.Parallel()

	var receivedAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		receivedAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"_id":"A","orderCode":"OD01","customer":{"_id":"user-01","name":"Ngọc","email":"n@example.com"},"finalTotal":140000,"status":"pending","createdAt":"2025-06-01T10:00:00Z"},
			{"id":"B","orderCode":"OD02","customer":"user-02","finalTotal":820000,"status":"delivered","createdAt":"2025-06-01T09:00:00Z"}
		]`))
	}))
	t.Cleanup(ts.Close)

	svc, err := orders.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "test-token")
	require.NoError(t, err)
	require.Equal(t, "Bearer test-token", receivedAuth)
	require.Len(t, list, 2)

	require.Equal(t, "A", list[0].ID)
	require.Equal(t, orders.StatusWaiting, list[0].Status)
	require.True(t, list[0].Customer.Embedded)
	require.Equal(t, "Ngọc", list[0].Customer.Name)
	require.Equal(t, "140000", list[0].FinalTotal.String())

	// Fallback id field and bare customer reference.
	require.Equal(t, "B", list[1].ID)
	require.False(t, list[1].Customer.Embedded)
	require.Equal(t, "user-02", list[1].Customer.ID)
	require.Equal(t, orders.StatusDelivered, list[1].Status)
}

func TestHTTPServiceListNonArrayBodyIsEmptyHistory(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Không có đơn hàng"}`))
	}))
	t.Cleanup(ts.Close)

	svc, err := orders.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "token")
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestHTTPServiceListErrorExtractsMessage(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Lỗi máy chủ"}`))
	}))
	t.Cleanup(ts.Close)

	svc, err := orders.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)

	_, err = svc.List(context.Background(), "token")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Lỗi máy chủ")
	require.Contains(t, err.Error(), "500")
}

func TestHTTPServiceUpdateStatus(t *testing.T) {
	t.Parallel()

	var payload map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/A/status", r.URL.Path)
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		defer r.Body.Close()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)

	svc, err := orders.NewHTTPService(ts.URL+"/api", ts.Client())
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(context.Background(), "token", "A", orders.StatusConfirmed))
	require.Equal(t, map[string]string{"status": "confirmed"}, payload)
}

func TestHTTPServiceUpdateStatusBackendRejection(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Trạng thái không hợp lệ"}`))
	}))
	t.Cleanup(ts.Close)

	svc, err := orders.NewHTTPService(ts.URL, ts.Client())
	require.NoError(t, err)

	err = svc.UpdateStatus(context.Background(), "token", "A", orders.StatusShipped)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Trạng thái không hợp lệ")
}

func TestNewHTTPServiceRequiresBaseURL(t *testing.T) {
	t.Parallel()

	_, err := orders.NewHTTPService("  ", nil)
	require.Error(t, err)
}
