package order

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/georgemunganga/printa-orders/internal/pkg/notice"
)

// Row is one order of the list view with its derived totals.
type Row struct {
	Order
	Totals
}

// Locked reports whether status change, edit and delete are disabled for the row.
func (r Row) Locked() bool { return r.Status.Terminal() }

// List is the order list view state. Local rows change only after the
// corresponding remote call succeeds.
type List struct {
	orders      Repository
	concurrency int
	rows        []Row
	loaded      bool
}

// NewList builds a list view. concurrency bounds the parallel line fetches
// done by Load; values below 1 fetch sequentially.
func NewList(orders Repository, concurrency int) *List {
	if concurrency < 1 {
		concurrency = 1
	}
	return &List{orders: orders, concurrency: concurrency}
}

// Load fetches every order and then the lines of all orders in one bounded
// parallel batch. Any failure empties the list.
func (l *List) Load(ctx context.Context) notice.Notice {
	l.loaded = true
	l.rows = nil

	orders, err := l.orders.ListOrders(ctx)
	if err != nil {
		return notice.Failure(MsgLoadOrdersFailed, fmt.Errorf("list orders: %w", err))
	}

	rows := make([]Row, len(orders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, o := range orders {
		rows[i].Order = o
		g.Go(func() error {
			lines, err := l.orders.ListOrderLines(gctx, o.ID)
			if err != nil {
				return fmt.Errorf("list lines of order %s: %w", o.ID, err)
			}
			rows[i].Totals = ComputeTotals(lines)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return notice.Failure(MsgLoadOrdersFailed, err)
	}

	l.rows = rows
	return notice.OK()
}

// ChangeStatus moves an order to status. Completed orders are refused locally.
func (l *List) ChangeStatus(ctx context.Context, id string, status Status) notice.Notice {
	if !status.Valid() {
		return Explain(fmt.Errorf("%w: %d", ErrInvalidStatus, status))
	}
	current, err := l.currentStatus(ctx, id)
	if err != nil {
		return notice.Failure(MsgStatusFailed, err)
	}
	if current.Terminal() {
		return Explain(ErrOrderCompleted)
	}

	updated, err := l.orders.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return notice.Failure(MsgStatusFailed, fmt.Errorf("update status of order %s: %w", id, err))
	}
	if updated != nil && updated.Status.Valid() {
		status = updated.Status
	}
	if i := l.index(id); i >= 0 {
		l.rows[i].Status = status
	}
	return notice.OK()
}

// Delete removes an order. Completed orders are refused locally.
func (l *List) Delete(ctx context.Context, id string) notice.Notice {
	current, err := l.currentStatus(ctx, id)
	if err != nil {
		return notice.Failure(MsgDeleteFailed, err)
	}
	if current.Terminal() {
		return Explain(ErrOrderCompleted)
	}

	if err := l.orders.DeleteOrder(ctx, id); err != nil {
		return notice.Failure(MsgDeleteFailed, fmt.Errorf("delete order %s: %w", id, err))
	}
	if i := l.index(id); i >= 0 {
		l.rows = append(l.rows[:i], l.rows[i+1:]...)
	}
	return notice.OK()
}

// Rows returns a copy of the loaded rows in service order.
func (l *List) Rows() []Row { return append([]Row(nil), l.rows...) }

func (l *List) Loaded() bool { return l.loaded }

// currentStatus uses the loaded row when present and asks the service otherwise.
func (l *List) currentStatus(ctx context.Context, id string) (Status, error) {
	if i := l.index(id); i >= 0 {
		return l.rows[i].Status, nil
	}
	o, err := l.orders.GetOrder(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("get order %s: %w", id, err)
	}
	return o.Status, nil
}

func (l *List) index(id string) int {
	for i, r := range l.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}
