package order

import (
	"fmt"

	"github.com/georgemunganga/printa-orders/internal/modules/catalog"
)

// Aggregate is the ordered set of lines being edited. The catalog supplies the
// name and price snapshots for lines added with AddLine.
type Aggregate struct {
	catalog *catalog.Store
	lines   []Line
	index   map[LineID]int
}

// NewAggregate seeds an aggregate with lines, rejecting duplicate IDs. A nil
// catalog is allowed; AddLine then rejects every product.
func NewAggregate(c *catalog.Store, lines []Line) (*Aggregate, error) {
	a := &Aggregate{catalog: c, index: make(map[LineID]int, len(lines))}
	for _, l := range lines {
		if _, dup := a.index[l.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLine, l.ID)
		}
		a.index[l.ID] = len(a.lines)
		a.lines = append(a.lines, l)
	}
	return a, nil
}

// AddLine appends a line for productID with a fresh pending ID and returns the updated lines.
// On error the aggregate is unchanged.
func (a *Aggregate) AddLine(productID string, quantity int) ([]Line, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLine, ErrInvalidQuantity)
	}
	p, ok := a.catalog.Lookup(productID)
	if productID == "" || !ok {
		return nil, fmt.Errorf("%w: %w %q", ErrInvalidLine, ErrUnknownProduct, productID)
	}

	l := Line{
		ID:          NewPendingLineID(),
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.UnitPrice,
		Quantity:    quantity,
	}
	a.index[l.ID] = len(a.lines)
	a.lines = append(a.lines, l)
	return a.Lines(), nil
}

// SetQuantity replaces the quantity of one line in place. Nothing else on the line changes.
func (a *Aggregate) SetQuantity(id LineID, quantity int) error {
	i, ok := a.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLineNotFound, id)
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	a.lines[i].Quantity = quantity
	return nil
}

// Line returns the line with the given ID.
func (a *Aggregate) Line(id LineID) (Line, bool) {
	i, ok := a.index[id]
	if !ok {
		return Line{}, false
	}
	return a.lines[i], true
}

// Lines returns a copy of the lines in insertion order.
func (a *Aggregate) Lines() []Line { return append([]Line(nil), a.lines...) }

func (a *Aggregate) Len() int { return len(a.lines) }

// Totals is recomputed from the current lines on every call.
func (a *Aggregate) Totals() Totals { return ComputeTotals(a.lines) }
