package order

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/georgemunganga/printa-orders/internal/modules/catalog"
)

var errBackend = errors.New("backend unavailable")

// fakeOrders is an in-memory order service that records every call. It also
// serves the product list.
type fakeOrders struct {
	mu       sync.Mutex
	orders   []Order
	lines    map[string][]Line
	products []catalog.Product
	nextID   int
	calls    []string
	addCalls int

	failListOrders bool
	failLinesOf    map[string]bool
	failGet        bool
	failCreate     bool
	failAddLineAt  int // 1-based add-line call that fails; 0 never fails
	failUpdateLine bool
	failStatus     bool
	failDelete     bool
	failProducts   bool
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{
		lines:       make(map[string][]Line),
		failLinesOf: make(map[string]bool),
		nextID:      100,
		products: []catalog.Product{
			{ID: "p-widget", Name: "Widget", UnitPrice: decimal.RequireFromString("9.50")},
			{ID: "p-gadget", Name: "Gadget", UnitPrice: decimal.RequireFromString("4.25")},
		},
	}
}

// seed adds an order with persisted lines and returns its ID.
func (f *fakeOrders) seed(number string, status Status, lines ...Line) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.newID()
	f.orders = append(f.orders, Order{
		ID:          id,
		OrderNumber: number,
		Date:        time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Status:      status,
	})
	f.lines[id] = append([]Line(nil), lines...)
	return id
}

func (f *fakeOrders) newID() string {
	f.nextID++
	return fmt.Sprint(f.nextID)
}

func (f *fakeOrders) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeOrders) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeOrders) find(id string) int {
	for i, o := range f.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeOrders) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("listProducts")
	if f.failProducts {
		return nil, errBackend
	}
	return append([]catalog.Product(nil), f.products...), nil
}

func (f *fakeOrders) ListOrders(ctx context.Context) ([]Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("listOrders")
	if f.failListOrders {
		return nil, errBackend
	}
	return append([]Order(nil), f.orders...), nil
}

func (f *fakeOrders) GetOrder(ctx context.Context, id string) (*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("getOrder:" + id)
	if f.failGet {
		return nil, errBackend
	}
	i := f.find(id)
	if i < 0 {
		return nil, ErrOrderNotFound
	}
	o := f.orders[i]
	return &o, nil
}

func (f *fakeOrders) CreateOrder(ctx context.Context, orderNumber string) (*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("createOrder:" + orderNumber)
	if f.failCreate {
		return nil, errBackend
	}
	o := Order{ID: f.newID(), OrderNumber: orderNumber, Date: time.Now().UTC(), Status: StatusPending}
	f.orders = append(f.orders, o)
	return &o, nil
}

func (f *fakeOrders) DeleteOrder(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("deleteOrder:" + id)
	if f.failDelete {
		return errBackend
	}
	i := f.find(id)
	if i < 0 {
		return ErrOrderNotFound
	}
	f.orders = append(f.orders[:i], f.orders[i+1:]...)
	delete(f.lines, id)
	return nil
}

func (f *fakeOrders) UpdateOrderStatus(ctx context.Context, id string, status Status) (*Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("updateStatus:%s:%d", id, status))
	if f.failStatus {
		return nil, errBackend
	}
	i := f.find(id)
	if i < 0 {
		return nil, ErrOrderNotFound
	}
	f.orders[i].Status = status
	o := f.orders[i]
	return &o, nil
}

func (f *fakeOrders) ListOrderLines(ctx context.Context, orderID string) ([]Line, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("listLines:" + orderID)
	if f.failLinesOf[orderID] {
		return nil, errBackend
	}
	return append([]Line(nil), f.lines[orderID]...), nil
}

func (f *fakeOrders) AddOrderLine(ctx context.Context, orderID, productID string, quantity int) (*Line, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	f.record(fmt.Sprintf("addLine:%s:%s:%d", orderID, productID, quantity))
	if f.failAddLineAt == f.addCalls {
		return nil, errBackend
	}
	l := Line{ID: PersistedLineID(f.newID()), ProductID: productID, Quantity: quantity}
	for _, p := range f.products {
		if p.ID == productID {
			l.ProductName, l.UnitPrice = p.Name, p.UnitPrice
		}
	}
	f.lines[orderID] = append(f.lines[orderID], l)
	return &l, nil
}

func (f *fakeOrders) UpdateOrderLine(ctx context.Context, orderID, lineID string, quantity int) (*Line, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record(fmt.Sprintf("updateLine:%s:%s:%d", orderID, lineID, quantity))
	if f.failUpdateLine {
		return nil, errBackend
	}
	lines := f.lines[orderID]
	for i := range lines {
		if lines[i].ID.Value() == lineID {
			lines[i].Quantity = quantity
			l := lines[i]
			return &l, nil
		}
	}
	return nil, ErrLineNotFound
}

func persistedLine(id, productID, name, price string, qty int) Line {
	return Line{
		ID:          PersistedLineID(id),
		ProductID:   productID,
		ProductName: name,
		UnitPrice:   decimal.RequireFromString(price),
		Quantity:    qty,
	}
}
