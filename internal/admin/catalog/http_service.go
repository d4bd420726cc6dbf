package catalog

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

// HTTPService implements Service over GET /products.
type HTTPService struct {
	base   *url.URL
	client HTTPClient
}

// NewHTTPService constructs a Service for the product endpoints under the
// given base path.
func NewHTTPService(baseURL string, client HTTPClient) (*HTTPService, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("catalog: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse base URL: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPService{base: parsed, client: client}, nil
}

// List implements Service. A non-array body counts as an empty catalog.
func (s *HTTPService) List(ctx context.Context, token string) ([]Product, error) {
	u := *s.base
	u.Path = path.Join(u.Path, "products")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errorFromResponse(resp)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("catalog: decode product list: %w", err)
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return []Product{}, nil
	}
	return products, nil
}

func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var payload struct {
		Message string `json:"message"`
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			return fmt.Errorf("catalog: backend error (%d): %s", resp.StatusCode, payload.Message)
		}
	}
	return fmt.Errorf("catalog: backend error (%d): %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// StaticService returns a fixed product set for local development and tests.
type StaticService struct {
	Products []Product
	Err      error
}

// NewStaticService seeds a small catalog.
func NewStaticService() *StaticService {
	return &StaticService{
		Products: []Product{
			{ID: "sp-101", Name: "Áo thể thao Nike", Sold: 152},
			{ID: "sp-205", Name: "Áo Polo Lacoste nam", Sold: 98},
			{ID: "sp-330", Name: "Áo khoác thể thao Puma", Sold: 67},
			{ID: "sp-410", Name: "Áo sơ mi Uniqlo", Sold: 120},
			{ID: "sp-520", Name: "Áo len H&M cổ tròn", Sold: 45},
			{ID: "sp-610", Name: "Áo hoodie Adidas", Sold: 203},
		},
	}
}

// List implements Service.
func (s *StaticService) List(_ context.Context, _ string) ([]Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]Product(nil), s.Products...), nil
}
