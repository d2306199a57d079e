package pgxrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"productos-api/internal/domain"
	"productos-api/pkg/logger"

	"github.com/jackc/pgx/v5"
)

type productRepository struct {
	db     DBTX
	table  Table // search, get, update, delete
	create Table // insert target
}

// NewProductRepository reads and mutates table, and inserts into create.
func NewProductRepository(db DBTX, table, create Table) domain.ProductRepository {
	return &productRepository{
		db:     db,
		table:  table,
		create: create,
	}
}

// --- Helpers ---

func ptrFloatToFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func ptrStrToStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// scanProduct reads a selectList row. The price column may be NUMERIC or
// DOUBLE PRECISION; pgx converts either into float64.
func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p           domain.Product
		description *string
		category    *string
		price       *float64
	)
	if err := row.Scan(&p.ID, &p.Name, &description, &category, &price); err != nil {
		return domain.Product{}, err
	}
	p.Description = ptrStrToStr(description)
	p.Category = ptrStrToStr(category)
	p.Price = ptrFloatToFloat(price)
	return p, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) query(ctx context.Context, sql string, args ...any) ([]domain.Product, error) {
	start := time.Now()
	rows, err := connFromContext(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		logger.DBQuery(sql, time.Since(start), err)
		return nil, err
	}
	products, err := collectProducts(rows)
	logger.DBQuery(sql, time.Since(start), err)
	return products, err
}

// --- Product Methods ---

func (r *productRepository) Search(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	if filter.Offset < 0 || filter.Limit < 0 {
		return nil, 0, fmt.Errorf("%w: negative row window", domain.ErrValidation)
	}
	countSQL, pageSQL, args := buildSearch(r.table, filter)
	conn := connFromContext(ctx, r.db)

	var count int64
	start := time.Now()
	err := conn.QueryRow(ctx, countSQL, args...).Scan(&count)
	logger.DBQuery(countSQL, time.Since(start), err)
	if err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	if count == 0 || int64(filter.Offset) >= count {
		return []domain.Product{}, count, nil
	}

	pageArgs := append(append([]any{}, args...), filter.Limit, filter.Offset)
	products, err := r.query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("search products: %w", err)
	}

	return products, count, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", r.table.selectList(), r.table.quoted(), ident(r.table.ID))

	start := time.Now()
	p, err := scanProduct(connFromContext(ctx, r.db).QueryRow(ctx, sql, id))
	logger.DBQuery(sql, time.Since(start), err)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, changes domain.ProductChanges) ([]domain.Product, error) {
	sql, args := buildInsert(r.create, changes)
	products, err := r.query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", r.create.Name, err)
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, id int64, changes domain.ProductChanges) ([]domain.Product, error) {
	if changes.IsEmpty() {
		return nil, fmt.Errorf("%w: no columns to update", domain.ErrValidation)
	}
	sql, args := buildUpdate(r.table, id, changes)
	products, err := r.query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return products, nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	sql := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", r.table.quoted(), ident(r.table.ID))

	start := time.Now()
	_, err := connFromContext(ctx, r.db).Exec(ctx, sql, id)
	logger.DBQuery(sql, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}
