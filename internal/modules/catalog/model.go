package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry owned by the order service.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name      string
	UnitPrice decimal.Decimal
}
