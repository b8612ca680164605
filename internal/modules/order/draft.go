package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/georgemunganga/printa-orders/internal/modules/catalog"
)

// Draft is the create-mode editor state kept between web requests. It holds
// the catalog snapshot so products are fetched once per draft.
type Draft struct {
	ID          uuid.UUID
	OrderNumber string
	Lines       []Line
	Catalog     []catalog.Product
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewDraft snapshots a freshly loaded create-mode editor.
func NewDraft(e *Editor) *Draft {
	now := time.Now().UTC()
	d := &Draft{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	e.Snapshot(d)
	return d
}
