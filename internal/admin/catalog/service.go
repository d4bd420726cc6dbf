package catalog

import "context"

// Service exposes the product reference set used by analytics. The console
// never mutates products; catalog CRUD lives elsewhere.
type Service interface {
	// List returns all products with their cumulative sold counts.
	List(ctx context.Context, token string) ([]Product, error)
}

// Product is a read-only catalog record.
type Product struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	// Sold is the cumulative number of units sold, maintained by the
	// storefront backend.
	Sold int `json:"sold"`
}
