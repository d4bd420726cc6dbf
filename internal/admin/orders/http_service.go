package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HTTPClient matches the subset of http.Client used by HTTPService.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPService implements Service backed by the storefront backend's REST API.
type HTTPService struct {
	base   *url.URL
	client HTTPClient
}

// NewHTTPService constructs a Service that talks to the order endpoints
// under the given base path.
func NewHTTPService(baseURL string, client HTTPClient) (*HTTPService, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("orders: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("orders: parse base URL: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPService{
		base:   parsed,
		client: client,
	}, nil
}

// List fetches the raw order history from GET /orders. A non-array response
// body is treated as an empty history rather than an error: older backend
// builds answer with an object wrapper when no orders exist.
func (s *HTTPService) List(ctx context.Context, token string) ([]Order, error) {
	req, err := s.newRequest(ctx, http.MethodGet, "/orders", nil, token)
	if err != nil {
		return nil, err
	}
	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.errorFromResponse(resp)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("orders: decode order list: %w", err)
	}

	var payloads []orderPayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		return []Order{}, nil
	}

	result := make([]Order, 0, len(payloads))
	for _, p := range payloads {
		result = append(result, p.toOrder())
	}
	return result, nil
}

// UpdateStatus issues PUT /orders/{id}/status with the target status.
func (s *HTTPService) UpdateStatus(ctx context.Context, token, orderID string, status Status) error {
	endpoint := path.Join("/orders", url.PathEscape(strings.TrimSpace(orderID)), "status")
	body := map[string]string{"status": string(status)}
	req, err := s.newJSONRequest(ctx, http.MethodPut, endpoint, body, token)
	if err != nil {
		return err
	}
	resp, err := s.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return s.errorFromResponse(resp)
	}
	return nil
}

// orderPayload mirrors the wire shape of a backend order record. Identifier
// and status fields are inconsistent across backend builds and are
// normalised in toOrder.
type orderPayload struct {
	MongoID         string          `json:"_id"`
	ID              string          `json:"id"`
	OrderCode       string          `json:"orderCode"`
	Customer        Customer        `json:"customer"`
	Items           []Item          `json:"items"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ShippingFee     decimal.Decimal `json:"shippingFee"`
	Voucher         *Voucher        `json:"voucher"`
	FinalTotal      decimal.Decimal `json:"finalTotal"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (p orderPayload) toOrder() Order {
	id := p.MongoID
	if id == "" {
		id = p.ID
	}
	return Order{
		ID:              id,
		OrderCode:       p.OrderCode,
		Customer:        p.Customer,
		Items:           p.Items,
		ShippingAddress: p.ShippingAddress,
		PaymentMethod:   p.PaymentMethod,
		ShippingFee:     p.ShippingFee,
		Voucher:         p.Voucher,
		FinalTotal:      p.FinalTotal,
		Status:          NormalizeStatus(p.Status),
		CreatedAt:       p.CreatedAt,
	}
}

func (s *HTTPService) do(req *http.Request) (*http.Response, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("orders: request failed: %w", err)
	}
	return resp, nil
}

func (s *HTTPService) newRequest(ctx context.Context, method, endpoint string, body io.Reader, token string) (*http.Request, error) {
	urlStr := s.resolve(endpoint)
	req, err := http.NewRequestWithContext(ctx, method, urlStr, body)
	if err != nil {
		return nil, fmt.Errorf("orders: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (s *HTTPService) newJSONRequest(ctx context.Context, method, endpoint string, payload any, token string) (*http.Request, error) {
	var buf bytes.Buffer
	if payload != nil {
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(payload); err != nil {
			return nil, fmt.Errorf("orders: encode payload: %w", err)
		}
	}
	req, err := s.newRequest(ctx, method, endpoint, &buf, token)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (s *HTTPService) resolve(endpoint string) string {
	if endpoint == "" {
		return s.base.String()
	}
	u := *s.base
	u.Path = path.Join(u.Path, strings.TrimPrefix(endpoint, "/"))
	return u.String()
}

func (s *HTTPService) errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var payload struct {
		Message string `json:"message"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return fmt.Errorf("orders: backend error (%d): %s", resp.StatusCode, payload.Message)
		}
	}
	return fmt.Errorf("orders: backend error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
