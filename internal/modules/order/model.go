package order

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/printa-orders/internal/pkg/money"
)

// Status represents the lifecycle state of an order. Values match the service's enum.
type Status int

const (
	StatusPending    Status = 1
	StatusInProgress Status = 2
	StatusCompleted  Status = 3
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

func (s Status) Valid() bool { return s >= StatusPending && s <= StatusCompleted }

// Terminal reports whether the client may no longer edit, re-status or delete the order.
func (s Status) Terminal() bool { return s == StatusCompleted }

func (s Status) Int() int { return int(s) }

func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Badge is the CSS class the views use for the status badge.
func (s Status) Badge() string {
	switch s {
	case StatusPending:
		return "bg-secondary"
	case StatusInProgress:
		return "bg-info"
	default:
		return "bg-success"
	}
}

func (s Status) String() string { return s.Label() }

// ParseStatus reads a status from its numeric form ("1".."3").
func ParseStatus(raw string) (Status, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || !Status(n).Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return Status(n), nil
}

// Order is a purchase record as returned by the order service.
type Order struct {
	ID          string
	OrderNumber string
	Date        time.Time
	Status      Status
}

// ── Line identifiers ────────────────────────────────────────────────────────

// LineIDKind tags a LineID as client-local or service-assigned.
type LineIDKind uint8

const (
	LinePending   LineIDKind = iota + 1 // generated client-side, not yet saved
	LinePersisted                       // assigned by the order service
)

func (k LineIDKind) String() string {
	switch k {
	case LinePending:
		return "pending"
	case LinePersisted:
		return "persisted"
	default:
		return "invalid"
	}
}

// LineID identifies an order line. The zero value is invalid.
type LineID struct {
	kind  LineIDKind
	value string
}

// NewPendingLineID returns a fresh client-local identifier.
func NewPendingLineID() LineID {
	return LineID{kind: LinePending, value: uuid.NewString()}
}

// PersistedLineID wraps an identifier assigned by the order service.
func PersistedLineID(id string) LineID {
	return LineID{kind: LinePersisted, value: id}
}

func (id LineID) Kind() LineIDKind  { return id.kind }
func (id LineID) Value() string     { return id.value }
func (id LineID) IsPending() bool   { return id.kind == LinePending }
func (id LineID) IsPersisted() bool { return id.kind == LinePersisted }
func (id LineID) IsZero() bool      { return id.kind == 0 }

func (id LineID) String() string { return id.kind.String() + ":" + id.value }

type lineIDJSON struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (id LineID) MarshalJSON() ([]byte, error) {
	return json.Marshal(lineIDJSON{Kind: id.kind.String(), Value: id.value})
}

func (id *LineID) UnmarshalJSON(data []byte) error {
	var raw lineIDJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case "pending":
		*id = LineID{kind: LinePending, value: raw.Value}
	case "persisted":
		*id = LineID{kind: LinePersisted, value: raw.Value}
	default:
		return fmt.Errorf("unknown line id kind %q", raw.Kind)
	}
	return nil
}

// ── Lines ───────────────────────────────────────────────────────────────────

// Line is one product/quantity entry. ProductName and UnitPrice are snapshots taken when the line was added.
type Line struct {
	ID          LineID          `json:"id"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// Total is UnitPrice × Quantity.
func (l Line) Total() decimal.Decimal { return money.LineTotal(l.UnitPrice, l.Quantity) }

// Totals are the derived figures shown for an order.
type Totals struct {
	ProductCount int
	FinalPrice   decimal.Decimal
}

// ComputeTotals sums quantities and line totals.
func ComputeTotals(lines []Line) Totals {
	t := Totals{FinalPrice: decimal.Zero}
	for _, l := range lines {
		t.ProductCount += l.Quantity
		t.FinalPrice = t.FinalPrice.Add(l.Total())
	}
	return t
}
