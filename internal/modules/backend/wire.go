package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/georgemunganga/printa-orders/internal/modules/catalog"
	"github.com/georgemunganga/printa-orders/internal/modules/order"
)

// wireID is an identifier the service may encode as a JSON number or string.
// It is written back in the form it was read.
type wireID struct {
	value  string
	number bool
}

func (id wireID) String() string { return id.value }

func (id *wireID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = wireID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = wireID{value: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = wireID{value: n.String(), number: true}
	return nil
}

func (id wireID) MarshalJSON() ([]byte, error) {
	if id.number {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// guessWireID is used for IDs the client has not read yet. Only canonical
// integers are sent as numbers, so "007" stays a string.
func guessWireID(s string) wireID {
	n, err := strconv.ParseInt(s, 10, 64)
	return wireID{value: s, number: err == nil && strconv.FormatInt(n, 10) == s}
}

// wireTime accepts RFC 3339 timestamps with or without a zone, and plain dates.
type wireTime time.Time

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *wireTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*t = wireTime(time.Time{})
		return nil
	}
	for _, layout := range timeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			*t = wireTime(v)
			return nil
		}
	}
	return fmt.Errorf("date: unsupported format %q", s)
}

// ── orders ──────────────────────────────────────────────────────────────────

type wireOrder struct {
	ID          wireID   `json:"id"`
	OrderNumber string   `json:"orderNumber"`
	Date        wireTime `json:"date"`
	Status      int      `json:"status"`
}

func (w wireOrder) toOrder() order.Order {
	return order.Order{
		ID:          w.ID.value,
		OrderNumber: w.OrderNumber,
		Date:        time.Time(w.Date),
		Status:      order.Status(w.Status),
	}
}

type createOrderRequest struct {
	OrderNumber string `json:"orderNumber"`
}

type statusRequest struct {
	Status int `json:"status"`
}

type wireLine struct {
	ID          wireID          `json:"id"`
	ProductID   wireID          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

func (w wireLine) toLine() order.Line {
	return order.Line{
		ID:          order.PersistedLineID(w.ID.value),
		ProductID:   w.ProductID.value,
		ProductName: w.ProductName,
		UnitPrice:   w.UnitPrice,
		Quantity:    w.Quantity,
	}
}

type addLineRequest struct {
	ProductID wireID `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// ── products ────────────────────────────────────────────────────────────────

type wireProduct struct {
	ID        wireID          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (w wireProduct) toProduct() catalog.Product {
	return catalog.Product{ID: w.ID.value, Name: w.Name, UnitPrice: w.UnitPrice}
}

// productRequest sends unitPrice as a JSON number.
type productRequest struct {
	Name      string      `json:"name"`
	UnitPrice json.Number `json:"unitPrice"`
}

func newProductRequest(in catalog.ProductInput) productRequest {
	return productRequest{Name: in.Name, UnitPrice: json.Number(in.UnitPrice.String())}
}
