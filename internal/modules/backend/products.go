package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/georgemunganga/printa-orders/internal/modules/catalog"
)

var _ catalog.Repository = (*Client)(nil)

func productPath(id string) string { return "/products/" + url.PathEscape(id) }

func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var ws []wireProduct
	if err := c.do(ctx, "list_products", http.MethodGet, "/products", nil, &ws); err != nil {
		return nil, err
	}
	out := make([]catalog.Product, 0, len(ws))
	for _, w := range ws {
		c.rememberProductID(w.ID)
		out = append(out, w.toProduct())
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, in catalog.ProductInput) (*catalog.Product, error) {
	var w wireProduct
	if err := c.do(ctx, "create_product", http.MethodPost, "/products", newProductRequest(in), &w); err != nil {
		return nil, err
	}
	if w.ID.value == "" {
		return nil, nil
	}
	c.rememberProductID(w.ID)
	p := w.toProduct()
	return &p, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, in catalog.ProductInput) (*catalog.Product, error) {
	var w wireProduct
	if err := c.do(ctx, "update_product", http.MethodPut, productPath(id), newProductRequest(in), &w); err != nil {
		return nil, notFound(catalog.ErrProductNotFound, err)
	}
	if w.ID.value == "" {
		return nil, nil
	}
	c.rememberProductID(w.ID)
	p := w.toProduct()
	return &p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	err := c.do(ctx, "delete_product", http.MethodDelete, productPath(id), nil, nil)
	return notFound(catalog.ErrProductNotFound, err)
}
