package catalog

import "context"

// Lister fetches the full product list.
type Lister interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// Repository is the remote product API the catalog views depend on.
type Repository interface {
	Lister

	// CreateProduct adds a product and returns it with its service-assigned ID.
	CreateProduct(ctx context.Context, in ProductInput) (*Product, error)

	// UpdateProduct replaces the name and unit price of an existing product.
	UpdateProduct(ctx context.Context, id string, in ProductInput) (*Product, error)

	DeleteProduct(ctx context.Context, id string) error
}
