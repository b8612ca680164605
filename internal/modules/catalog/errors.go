package catalog

import "errors"

var (
	// ErrInvalidProduct means the form has no name or a non-positive unit price.
	ErrInvalidProduct = errors.New("product name and a positive unit price are required")

	// ErrProductNotFound means the product is not in the loaded list.
	ErrProductNotFound = errors.New("product not found")
)

// User-facing messages.
const (
	MsgLoadFailed    = "Error loading products"
	MsgSaveFailed    = "Error saving product"
	MsgDeleteFailed  = "Error deleting product"
	MsgInvalidInput  = "Name and unit price are required"
	MsgUnknownToEdit = "Product no longer exists"
)
