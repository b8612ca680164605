package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var errBackend = errors.New("backend unavailable")

// fakeRepo is an in-memory Repository that records calls.
type fakeRepo struct {
	products []Product
	nextID   int
	calls    []string

	failList   bool
	failWrite  bool
	failDelete bool
}

func newFakeRepo(products ...Product) *fakeRepo {
	return &fakeRepo{products: products, nextID: len(products) + 1}
}

func (f *fakeRepo) ListProducts(ctx context.Context) ([]Product, error) {
	f.calls = append(f.calls, "list")
	if f.failList {
		return nil, errBackend
	}
	return append([]Product(nil), f.products...), nil
}

func (f *fakeRepo) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	f.calls = append(f.calls, "create:"+in.Name)
	if f.failWrite {
		return nil, errBackend
	}
	p := Product{ID: fmt.Sprint(f.nextID), Name: in.Name, UnitPrice: in.UnitPrice}
	f.nextID++
	f.products = append(f.products, p)
	return &p, nil
}

func (f *fakeRepo) UpdateProduct(ctx context.Context, id string, in ProductInput) (*Product, error) {
	f.calls = append(f.calls, "update:"+id)
	if f.failWrite {
		return nil, errBackend
	}
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Name = in.Name
			f.products[i].UnitPrice = in.UnitPrice
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (f *fakeRepo) DeleteProduct(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	if f.failDelete {
		return errBackend
	}
	for i := range f.products {
		if f.products[i].ID == id {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func product(id, name, price string) Product {
	return Product{ID: id, Name: name, UnitPrice: decimal.RequireFromString(price)}
}
