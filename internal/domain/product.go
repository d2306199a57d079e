package domain

import (
	"context"
)

// CategoryNone is the category value clients send to mean "any category".
const CategoryNone = "Ninguna"

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

// ProductChanges carries the columns a create or update writes.
// nil fields are left untouched.
type ProductChanges struct {
	Name        *string
	Description *string
	Category    *string
	Price       *float64
}

func (c ProductChanges) IsEmpty() bool {
	return c.Name == nil && c.Description == nil && c.Category == nil && c.Price == nil
}

// CreateProductRequest is the POST /productos body.
type CreateProductRequest struct {
	Nombre      *string  `json:"nombre" validate:"required"`
	Descripcion *string  `json:"descripcion"`
	Categoria   *string  `json:"categoria"`
	Precio      *float64 `json:"precio" validate:"required"`
}

func (r CreateProductRequest) Changes() ProductChanges {
	return ProductChanges{Name: r.Nombre, Description: r.Descripcion, Category: r.Categoria, Price: r.Precio}
}

// UpdateProductRequest is the PUT /productos/{id} body. Every field is optional.
type UpdateProductRequest struct {
	Nombre      *string  `json:"nombre"`
	Descripcion *string  `json:"descripcion"`
	Categoria   *string  `json:"categoria"`
	Precio      *float64 `json:"precio"`
}

func (r UpdateProductRequest) Changes() ProductChanges {
	return ProductChanges{Name: r.Nombre, Description: r.Descripcion, Category: r.Categoria, Price: r.Precio}
}

// ProductFilter is what the repository turns into a WHERE clause.
type ProductFilter struct {
	Category string // substring, case-insensitive
	Keyword  string // substring of name OR description
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Offset   int
}

// --- Interfaces ---

type ProductRepository interface {
	// Search returns one page of matching products and the exact number of matches.
	Search(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	// GetByID returns ErrNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, changes ProductChanges) ([]Product, error)
	// Update returns the updated rows; empty when nothing matched.
	Update(ctx context.Context, id int64, changes ProductChanges) ([]Product, error)
	Delete(ctx context.Context, id int64) error
}

type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	// ReadOnly runs fn in a read-only snapshot.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
