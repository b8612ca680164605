package order

import "context"

// Repository is the remote order API. The order service owns persistence,
// identifiers and prices; this package only issues requests against it.
type Repository interface {
	ListOrders(ctx context.Context) ([]Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)

	// CreateOrder creates an empty order and returns it with its service-assigned ID.
	CreateOrder(ctx context.Context, orderNumber string) (*Order, error)

	DeleteOrder(ctx context.Context, id string) error
	UpdateOrderStatus(ctx context.Context, id string, status Status) (*Order, error)

	ListOrderLines(ctx context.Context, orderID string) ([]Line, error)

	// AddOrderLine attaches a product to an order. The service resolves the price.
	AddOrderLine(ctx context.Context, orderID, productID string, quantity int) (*Line, error)

	UpdateOrderLine(ctx context.Context, orderID, lineID string, quantity int) (*Line, error)
}

// DraftRepository stores create-mode editor state between web requests.
type DraftRepository interface {
	Create(ctx context.Context, d *Draft) error

	// Get returns ErrDraftNotFound when no draft has the given ID.
	Get(ctx context.Context, id string) (*Draft, error)

	Update(ctx context.Context, d *Draft) error
	Delete(ctx context.Context, id string) error
}
