package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgemunganga/printa-orders/internal/pkg/money"
	"github.com/georgemunganga/printa-orders/internal/pkg/notice"
)

// Form is the single add/update form. A non-empty EditingID switches it to update mode.
type Form struct {
	EditingID string
	Name      string
	UnitPrice string
}

func (f Form) Editing() bool { return f.EditingID != "" }

// Validate parses the form into a ProductInput.
func (f Form) Validate() (ProductInput, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return ProductInput{}, ErrInvalidProduct
	}
	price, err := money.Parse(f.UnitPrice)
	if err != nil || !price.IsPositive() {
		return ProductInput{}, ErrInvalidProduct
	}
	return ProductInput{Name: name, UnitPrice: price}, nil
}

// Manager is the product catalog view: the product list plus the shared form.
// Every successful write is followed by a full reload of the list.
type Manager struct {
	repo     Repository
	products []Product
	form     Form
	loaded   bool
}

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

// Load replaces the product list with the service's current list.
func (m *Manager) Load(ctx context.Context) notice.Notice {
	products, err := m.repo.ListProducts(ctx)
	m.loaded = true
	if err != nil {
		return notice.Failure(MsgLoadFailed, fmt.Errorf("list products: %w", err))
	}
	m.products = products
	return notice.OK()
}

func (m *Manager) Products() []Product { return append([]Product(nil), m.products...) }

// Loaded reports whether Load has completed at least once.
func (m *Manager) Loaded() bool { return m.loaded }

func (m *Manager) Form() Form { return m.form }

// Fill replaces the form contents, as typed by the user.
func (m *Manager) Fill(f Form) { m.form = f }

// Edit populates the form from a listed product and switches it to update mode.
func (m *Manager) Edit(id string) error {
	for _, p := range m.products {
		if p.ID == id {
			m.form = Form{EditingID: p.ID, Name: p.Name, UnitPrice: p.UnitPrice.String()}
			return nil
		}
	}
	return ErrProductNotFound
}

// Reset clears the form back to add mode.
func (m *Manager) Reset() { m.form = Form{} }

// Save creates or updates the product described by the form, then reloads the list.
func (m *Manager) Save(ctx context.Context) notice.Notice {
	in, err := m.form.Validate()
	if err != nil {
		return notice.Validation(MsgInvalidInput, err)
	}

	if m.form.Editing() {
		_, err = m.repo.UpdateProduct(ctx, m.form.EditingID, in)
	} else {
		_, err = m.repo.CreateProduct(ctx, in)
	}
	if err != nil {
		return notice.Failure(MsgSaveFailed, fmt.Errorf("save product: %w", err))
	}

	m.Reset()
	return m.Load(ctx)
}

// Delete removes a product, then reloads the list. Confirmation is the caller's job.
func (m *Manager) Delete(ctx context.Context, id string) notice.Notice {
	if err := m.repo.DeleteProduct(ctx, id); err != nil {
		return notice.Failure(MsgDeleteFailed, fmt.Errorf("delete product %s: %w", id, err))
	}
	if m.form.EditingID == id {
		m.Reset()
	}
	return m.Load(ctx)
}
