package customers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// HTTPClient matches the subset of http.Client used by HTTPService.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// HTTPService implements Service over GET /users.
type HTTPService struct {
	base   *url.URL
	client HTTPClient
}

// NewHTTPService constructs a Service for the user endpoints under the given
// base path.
func NewHTTPService(baseURL string, client HTTPClient) (*HTTPService, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("customers: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("customers: parse base URL: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPService{base: parsed, client: client}, nil
}

// List implements Service. A non-array body counts as an empty account set.
func (s *HTTPService) List(ctx context.Context, token string) ([]Customer, error) {
	u := *s.base
	u.Path = path.Join(u.Path, "users")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("customers: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("customers: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("customers: decode user list: %w", err)
	}
	var accounts []Customer
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return []Customer{}, nil
	}
	return accounts, nil
}

func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var payload struct {
		Message string `json:"message"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return fmt.Errorf("customers: backend error (%d): %s", resp.StatusCode, payload.Message)
		}
	}
	return fmt.Errorf("customers: backend error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// StaticService returns a fixed account set for local development and tests.
type StaticService struct {
	Customers []Customer
	Err       error
}

// NewStaticService seeds a small account set.
func NewStaticService() *StaticService {
	return &StaticService{
		Customers: []Customer{
			{ID: "user-01", Name: "Đặng Tuấn Ngọc", Avatar: "https://cdn.aozone.vn/avatars/user-01.png"},
			{ID: "user-02", Name: "Trần Xuân Ánh", Avatar: "https://cdn.aozone.vn/avatars/user-02.png"},
			{ID: "user-03", Name: "Lê Văn Luyện"},
			{ID: "user-04", Name: "Phạm Thị D"},
			{ID: "user-05", Name: "Lê Văn Hưu", Avatar: "https://cdn.aozone.vn/avatars/user-05.png"},
		},
	}
}

// List implements Service.
func (s *StaticService) List(_ context.Context, _ string) ([]Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]Customer(nil), s.Customers...), nil
}
