package order

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/georgemunganga/printa-orders/internal/modules/catalog"
	"github.com/georgemunganga/printa-orders/internal/pkg/notice"
)

// Navigation targets.
const (
	PathList   = "/my-orders"
	PathCreate = "/add-order"
)

// EditPath is the route of the edit view for an order.
func EditPath(orderID string) string { return PathCreate + "/" + orderID }

// Mode selects how an Editor loads and saves. It is fixed for the editor's lifetime.
type Mode int

const (
	ModeCreate Mode = iota + 1
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Editor is the add/edit order workflow. In create mode it builds a new order
// from catalog products; in edit mode it changes quantities of an existing
// order. Only Save and Busy may be called concurrently with other methods.
type Editor struct {
	mode     Mode
	orders   Repository
	products catalog.Lister

	orderID     string
	orderNumber string
	status      Status
	date        time.Time
	lines       *Aggregate
	loaded      bool

	saving atomic.Bool
}

// NewCreateEditor starts an empty create-mode editor. Load fetches the catalog.
func NewCreateEditor(orders Repository, products catalog.Lister) *Editor {
	lines, _ := NewAggregate(nil, nil)
	return &Editor{mode: ModeCreate, orders: orders, products: products, lines: lines}
}

// NewEditEditor starts an edit-mode editor for orderID. Load fetches the order and its lines.
func NewEditEditor(orders Repository, orderID string) *Editor {
	lines, _ := NewAggregate(nil, nil)
	return &Editor{mode: ModeEdit, orders: orders, orderID: orderID, lines: lines}
}

// RestoreCreateEditor rebuilds a create-mode editor from a stored draft. The
// draft's catalog snapshot is reused, so no product fetch happens.
func RestoreCreateEditor(orders Repository, d *Draft) (*Editor, error) {
	lines, err := NewAggregate(catalog.NewStore(d.Catalog), d.Lines)
	if err != nil {
		return nil, fmt.Errorf("restore draft %s: %w", d.ID, err)
	}
	return &Editor{
		mode:        ModeCreate,
		orders:      orders,
		orderNumber: d.OrderNumber,
		lines:       lines,
		loaded:      true,
	}, nil
}

// Snapshot copies the create-mode state into d.
func (e *Editor) Snapshot(d *Draft) {
	d.OrderNumber = e.orderNumber
	d.Lines = e.lines.Lines()
	d.Catalog = e.Catalog()
}

// Load populates the editor for its mode. On failure the editor keeps whatever
// was loaded before the failing call.
func (e *Editor) Load(ctx context.Context) notice.Notice {
	defer func() { e.loaded = true }()

	if e.mode == ModeCreate {
		store, err := catalog.LoadStore(ctx, e.products)
		if err != nil {
			return notice.Failure(MsgLoadProductsFailed, fmt.Errorf("load catalog: %w", err))
		}
		e.lines.catalog = store
		return notice.OK()
	}

	o, err := e.orders.GetOrder(ctx, e.orderID)
	if err != nil {
		return notice.Failure(MsgLoadOrderFailed, fmt.Errorf("get order %s: %w", e.orderID, err))
	}
	e.orderNumber = o.OrderNumber
	e.status = o.Status
	e.date = o.Date

	items, err := e.orders.ListOrderLines(ctx, e.orderID)
	if err != nil {
		return notice.Failure(MsgLoadOrderFailed, fmt.Errorf("list lines of order %s: %w", e.orderID, err))
	}
	lines, err := NewAggregate(nil, items)
	if err != nil {
		return notice.Failure(MsgLoadOrderFailed, err)
	}
	e.lines = lines
	return notice.OK()
}

// SetOrderNumber records the order number as typed. Create mode only.
func (e *Editor) SetOrderNumber(n string) error {
	if e.mode != ModeCreate {
		return ErrWrongMode
	}
	e.orderNumber = n
	return nil
}

// AddLine adds a catalog product to the order. Create mode only.
func (e *Editor) AddLine(productID string, quantity int) ([]Line, error) {
	if e.mode != ModeCreate {
		return nil, ErrWrongMode
	}
	return e.lines.AddLine(productID, quantity)
}

// SetQuantity changes the quantity of a loaded line. Edit mode only.
func (e *Editor) SetQuantity(id LineID, quantity int) error {
	if e.mode != ModeEdit {
		return ErrWrongMode
	}
	if e.status.Terminal() {
		return ErrOrderCompleted
	}
	return e.lines.SetQuantity(id, quantity)
}

// Save persists the editor's state. Validation failures return before any
// remote call. Remote calls are sequential and stop at the first failure;
// anything already created stays created.
func (e *Editor) Save(ctx context.Context) notice.Notice {
	if !e.saving.CompareAndSwap(false, true) {
		return Explain(ErrSaveInFlight)
	}
	defer e.saving.Store(false)

	if err := e.validate(); err != nil {
		return Explain(err)
	}

	var err error
	if e.mode == ModeCreate {
		err = e.saveCreate(ctx)
	} else {
		err = e.saveEdit(ctx)
	}
	if err != nil {
		return notice.Failure(MsgSaveFailed, err)
	}
	return notice.NavigateTo(PathList)
}

func (e *Editor) validate() error {
	if strings.TrimSpace(e.orderNumber) == "" {
		return ErrOrderNumberRequired
	}
	switch e.mode {
	case ModeCreate:
		if e.lines.Len() == 0 {
			return ErrNoLines
		}
	case ModeEdit:
		if e.status.Terminal() {
			return ErrOrderCompleted
		}
	}
	return nil
}

func (e *Editor) saveCreate(ctx context.Context) error {
	o, err := e.orders.CreateOrder(ctx, strings.TrimSpace(e.orderNumber))
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	lines := e.lines.Lines()
	for i, l := range lines {
		if _, err := e.orders.AddOrderLine(ctx, o.ID, l.ProductID, l.Quantity); err != nil {
			return fmt.Errorf("add line %d of %d to order %s: %w", i+1, len(lines), o.ID, err)
		}
	}
	return nil
}

// saveEdit re-sends every line's quantity, changed or not.
func (e *Editor) saveEdit(ctx context.Context) error {
	for _, l := range e.lines.Lines() {
		if !l.ID.IsPersisted() {
			return fmt.Errorf("%w: %s", ErrPendingLineInEdit, l.ID)
		}
		if _, err := e.orders.UpdateOrderLine(ctx, e.orderID, l.ID.Value(), l.Quantity); err != nil {
			return fmt.Errorf("update line %s of order %s: %w", l.ID.Value(), e.orderID, err)
		}
	}
	return nil
}

func (e *Editor) Mode() Mode          { return e.mode }
func (e *Editor) OrderID() string     { return e.orderID }
func (e *Editor) OrderNumber() string { return e.orderNumber }
func (e *Editor) Status() Status      { return e.status }
func (e *Editor) Date() time.Time     { return e.date }
func (e *Editor) Lines() []Line       { return e.lines.Lines() }
func (e *Editor) Totals() Totals      { return e.lines.Totals() }
func (e *Editor) Loaded() bool        { return e.loaded }

// Busy reports whether a save is in flight.
func (e *Editor) Busy() bool { return e.saving.Load() }

// Locked reports whether the loaded order is completed and therefore read-only.
func (e *Editor) Locked() bool { return e.mode == ModeEdit && e.status.Terminal() }

// Catalog returns the products available to AddLine.
func (e *Editor) Catalog() []catalog.Product { return e.lines.catalog.Products() }

// DisplayDate is the date shown in the editor header: today when creating,
// the order's date when editing.
func (e *Editor) DisplayDate(now time.Time) time.Time {
	if e.mode == ModeCreate {
		return now
	}
	return e.date
}

// AddLineForm is the add-product dialog. Its zero selection is "no product".
type AddLineForm struct {
	ProductID string
	Quantity  int
}

// NewAddLineForm returns the dialog in its reset state.
func NewAddLineForm() AddLineForm { return AddLineForm{Quantity: 1} }
