package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/georgemunganga/printa-orders/internal/modules/catalog"
	"github.com/georgemunganga/printa-orders/internal/modules/order"
)

// Report names accepted by PrintReport.
const (
	ReportOrders   = "orders"
	ReportProducts = "products"
)

// PrintReport loads one view without the interactive program and writes it as a table.
func PrintReport(ctx context.Context, w io.Writer, deps Deps, name string) error {
	switch name {
	case ReportOrders:
		l := order.NewList(deps.Orders, deps.LineFetchConcurrency)
		if n := l.Load(ctx); !n.IsOK() {
			return fmt.Errorf("%s: %w", n.Message, n.Err)
		}
		writeOrders(w, l.Rows(), -1, false)
	case ReportProducts:
		m := catalog.NewManager(deps.Products)
		if n := m.Load(ctx); !n.IsOK() {
			return fmt.Errorf("%s: %w", n.Message, n.Err)
		}
		writeProducts(w, m.Products(), -1, false)
	default:
		return fmt.Errorf("unknown report %q (want %s or %s)", name, ReportOrders, ReportProducts)
	}
	return nil
}
