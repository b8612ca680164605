package catalog

import "context"

// Store is a read-only snapshot of the purchasable products, fetched once.
type Store struct {
	products []Product
	byID     map[string]Product
}

// NewStore indexes products. The slice is copied.
func NewStore(products []Product) *Store {
	s := &Store{
		products: append([]Product(nil), products...),
		byID:     make(map[string]Product, len(products)),
	}
	for _, p := range s.products {
		s.byID[p.ID] = p
	}
	return s
}

// LoadStore fetches the product list once and snapshots it.
func LoadStore(ctx context.Context, l Lister) (*Store, error) {
	products, err := l.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(products), nil
}

// Lookup returns the product with the given ID. A nil Store holds no products.
func (s *Store) Lookup(id string) (Product, bool) {
	if s == nil {
		return Product{}, false
	}
	p, ok := s.byID[id]
	return p, ok
}

// Products returns a copy of the snapshot in service order.
func (s *Store) Products() []Product {
	if s == nil {
		return nil
	}
	return append([]Product(nil), s.products...)
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.products)
}
