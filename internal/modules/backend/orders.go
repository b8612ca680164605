package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/georgemunganga/printa-orders/internal/modules/order"
)

var _ order.Repository = (*Client)(nil)

func orderPath(id string) string { return "/orders/" + url.PathEscape(id) }

func linePath(orderID, lineID string) string {
	return orderPath(orderID) + "/items/" + url.PathEscape(lineID)
}

func notFound(sentinel, err error) error {
	if IsNotFound(err) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}

func (c *Client) ListOrders(ctx context.Context) ([]order.Order, error) {
	var ws []wireOrder
	if err := c.do(ctx, "list_orders", http.MethodGet, "/orders", nil, &ws); err != nil {
		return nil, err
	}
	out := make([]order.Order, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toOrder())
	}
	return out, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	var w wireOrder
	if err := c.do(ctx, "get_order", http.MethodGet, orderPath(id), nil, &w); err != nil {
		return nil, notFound(order.ErrOrderNotFound, err)
	}
	o := w.toOrder()
	return &o, nil
}

// CreateOrder requires the service to echo the created order; its ID is needed for the lines.
func (c *Client) CreateOrder(ctx context.Context, orderNumber string) (*order.Order, error) {
	var w wireOrder
	if err := c.do(ctx, "create_order", http.MethodPost, "/orders", createOrderRequest{OrderNumber: orderNumber}, &w); err != nil {
		return nil, err
	}
	if w.ID.value == "" {
		return nil, fmt.Errorf("create order: %w", ErrEmptyResponse)
	}
	o := w.toOrder()
	return &o, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	err := c.do(ctx, "delete_order", http.MethodDelete, orderPath(id), nil, nil)
	return notFound(order.ErrOrderNotFound, err)
}

// UpdateOrderStatus returns nil when the service replies without a body.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	var w wireOrder
	if err := c.do(ctx, "update_order_status", http.MethodPatch, orderPath(id)+"/status", statusRequest{Status: status.Int()}, &w); err != nil {
		return nil, notFound(order.ErrOrderNotFound, err)
	}
	if w.ID.value == "" {
		return nil, nil
	}
	o := w.toOrder()
	return &o, nil
}

func (c *Client) ListOrderLines(ctx context.Context, orderID string) ([]order.Line, error) {
	var ws []wireLine
	if err := c.do(ctx, "list_order_lines", http.MethodGet, orderPath(orderID)+"/items", nil, &ws); err != nil {
		return nil, notFound(order.ErrOrderNotFound, err)
	}
	out := make([]order.Line, 0, len(ws))
	for _, w := range ws {
		c.rememberProductID(w.ProductID)
		out = append(out, w.toLine())
	}
	return out, nil
}

func (c *Client) AddOrderLine(ctx context.Context, orderID, productID string, quantity int) (*order.Line, error) {
	var w wireLine
	body := addLineRequest{ProductID: c.productID(productID), Quantity: quantity}
	if err := c.do(ctx, "add_order_line", http.MethodPost, orderPath(orderID)+"/items", body, &w); err != nil {
		return nil, err
	}
	if w.ID.value == "" {
		return nil, nil
	}
	c.rememberProductID(w.ProductID)
	l := w.toLine()
	return &l, nil
}

func (c *Client) UpdateOrderLine(ctx context.Context, orderID, lineID string, quantity int) (*order.Line, error) {
	var w wireLine
	if err := c.do(ctx, "update_order_line", http.MethodPut, linePath(orderID, lineID), quantityRequest{Quantity: quantity}, &w); err != nil {
		return nil, notFound(order.ErrLineNotFound, err)
	}
	if w.ID.value == "" {
		return nil, nil
	}
	c.rememberProductID(w.ProductID)
	l := w.toLine()
	return &l, nil
}

// DeleteOrderLine removes one line. No view offers line removal; it completes the order API.
func (c *Client) DeleteOrderLine(ctx context.Context, orderID, lineID string) error {
	err := c.do(ctx, "delete_order_line", http.MethodDelete, linePath(orderID, lineID), nil, nil)
	return notFound(order.ErrLineNotFound, err)
}
