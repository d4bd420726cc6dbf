package customers

import "context"

// Service exposes the customer reference set used by analytics. Account
// administration is handled elsewhere; the console only reads.
type Service interface {
	// List returns all customer accounts.
	List(ctx context.Context, token string) ([]Customer, error)
}

// Customer is a read-only account record. Spend and order counts are not
// stored here; analytics derives them from the order history on every pass.
type Customer struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}
