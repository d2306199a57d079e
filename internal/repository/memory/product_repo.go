// Package memory keeps products in process memory. It backs local runs with
// DB_DSN=memory and the usecase and handler tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"productos-api/internal/domain"
)

type ProductRepository struct {
	mu     sync.RWMutex
	tables map[string]map[int64]domain.Product
	nextID int64
	table  string
	create string

	// Err, when set, is returned by every call.
	Err error
}

// NewProductRepository reads and mutates table, and inserts into create.
func NewProductRepository(table, create string) *ProductRepository {
	return &ProductRepository{
		tables: map[string]map[int64]domain.Product{
			table:  {},
			create: {},
		},
		table:  table,
		create: create,
	}
}

// Seed inserts products into the read table, keeping their ids.
func (r *ProductRepository) Seed(products ...domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range products {
		r.tables[r.table][p.ID] = p
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matches(p domain.Product, f domain.ProductFilter) bool {
	if f.Category != "" && !containsFold(p.Category, f.Category) {
		return false
	}
	if f.Keyword != "" && !containsFold(p.Name, f.Keyword) && !containsFold(p.Description, f.Keyword) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

func (r *ProductRepository) Search(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	if r.Err != nil {
		return nil, 0, r.Err
	}
	if filter.Offset < 0 || filter.Limit < 0 {
		return nil, 0, fmt.Errorf("%w: negative row window", domain.ErrValidation)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Product
	for _, p := range r.tables[r.table] {
		if matches(p, filter) {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	page := []domain.Product{}
	if filter.Offset < len(matched) {
		end := len(matched)
		if filter.Limit < end-filter.Offset {
			end = filter.Offset + filter.Limit
		}
		page = append(page, matched[filter.Offset:end]...)
	}
	return page, total, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.tables[r.table][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func apply(p *domain.Product, c domain.ProductChanges) {
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Description != nil {
		p.Description = *c.Description
	}
	if c.Category != nil {
		p.Category = *c.Category
	}
	if c.Price != nil {
		p.Price = *c.Price
	}
}

func (r *ProductRepository) Create(ctx context.Context, changes domain.ProductChanges) ([]domain.Product, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p := domain.Product{ID: r.nextID}
	apply(&p, changes)
	r.tables[r.create][p.ID] = p
	return []domain.Product{p}, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, changes domain.ProductChanges) ([]domain.Product, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.tables[r.table][id]
	if !ok {
		return []domain.Product{}, nil
	}
	apply(&p, changes)
	r.tables[r.table][id] = p
	return []domain.Product{p}, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tables[r.table], id)
	return nil
}

// TransactionManager runs fn directly; the repository's own lock is enough.
type TransactionManager struct{}

func (TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TransactionManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
