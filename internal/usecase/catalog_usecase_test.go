package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"productos-api/config"
	"productos-api/internal/domain"
	"productos-api/internal/infrastructure/cache"
	"productos-api/internal/repository/memory"
)

func ptr[T any](v T) *T { return &v }

func newTestUsecase(t *testing.T) (*CatalogUsecase, *memory.ProductRepository) {
	t.Helper()
	repo := memory.NewProductRepository("products", "products")
	repo.Seed(
		domain.Product{ID: 1, Name: "Silla de roble", Description: "Madera maciza", Category: "Hogar", Price: 45},
		domain.Product{ID: 2, Name: "Mesa", Description: "Mesa plegable de jardín", Category: "Jardín", Price: 120},
		domain.Product{ID: 3, Name: "Lámpara", Description: "Luz cálida", Category: "Hogar y Deco", Price: 30},
		domain.Product{ID: 4, Name: "Sofá", Description: "Tres plazas", Category: "Hogar", Price: 800},
	)
	cfg := &config.Config{MaxPageSize: 100, QueryTimeout: time.Second, CacheProductTTL: time.Minute}
	uc := NewCatalogUsecase(repo, memory.TransactionManager{}, cache.NewMemoryCache(time.Minute, time.Minute), cfg)
	return uc, repo
}

func TestSearchPagination(t *testing.T) {
	c := qt.New(t)
	uc, _ := newTestUsecase(t)

	res, err := uc.Search(context.Background(), domain.SearchQuery{Page: 1, PageSize: 3})
	c.Assert(err, qt.IsNil)
	c.Assert(res.TotalProducts, qt.Equals, int64(4))
	c.Assert(res.TotalPages, qt.Equals, 2)
	c.Assert(res.CurrentPage, qt.Equals, 1)
	c.Assert(res.Products, qt.HasLen, 3)

	res, err = uc.Search(context.Background(), domain.SearchQuery{Page: 2, PageSize: 3})
	c.Assert(err, qt.IsNil)
	c.Assert(res.Products, qt.HasLen, 1)
	c.Assert(res.Products[0].ID, qt.Equals, int64(4))

	res, err = uc.Search(context.Background(), domain.SearchQuery{Page: 9, PageSize: 3})
	c.Assert(err, qt.IsNil)
	c.Assert(res.Products, qt.HasLen, 0)
	c.Assert(res.TotalPages, qt.Equals, 2)
}

func TestSearchFilters(t *testing.T) {
	tests := []struct {
		name    string
		query   domain.SearchQuery
		wantIDs []int64
	}{
		{"sentinel category means no filter", domain.SearchQuery{Category: "Ninguna"}, []int64{1, 2, 3, 4}},
		{"category substring ignores case", domain.SearchQuery{Category: "hogar"}, []int64{1, 3, 4}},
		{"keyword hits name", domain.SearchQuery{Keyword: "SILLA"}, []int64{1}},
		{"keyword hits description", domain.SearchQuery{Keyword: "jardín"}, []int64{2}},
		{"inclusive price bounds", domain.SearchQuery{MinPrice: ptr(30.0), MaxPrice: ptr(120.0)}, []int64{1, 2, 3}},
		{"combined", domain.SearchQuery{Category: "Hogar", MaxPrice: ptr(50.0)}, []int64{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			uc, _ := newTestUsecase(t)

			q := tt.query
			q.Page, q.PageSize = 1, 8
			res, err := uc.Search(context.Background(), q)
			c.Assert(err, qt.IsNil)

			var ids []int64
			for _, p := range res.Products {
				ids = append(ids, p.ID)
			}
			c.Assert(ids, qt.DeepEquals, tt.wantIDs)
			c.Assert(res.TotalProducts, qt.Equals, int64(len(tt.wantIDs)))
		})
	}
}

func TestSearchRejectsBadPaging(t *testing.T) {
	c := qt.New(t)
	uc, _ := newTestUsecase(t)

	for _, q := range []domain.SearchQuery{
		{Page: 0, PageSize: 8},
		{Page: 1, PageSize: 0},
		{Page: 1, PageSize: 101},
	} {
		_, err := uc.Search(context.Background(), q)
		c.Assert(errors.Is(err, domain.ErrValidation), qt.IsTrue, qt.Commentf("query %+v", q))
	}
}

func TestSearchPropagatesBackendErrors(t *testing.T) {
	c := qt.New(t)
	uc, repo := newTestUsecase(t)
	repo.Err = errors.New("connection refused")

	_, err := uc.Search(context.Background(), domain.SearchQuery{Page: 1, PageSize: 8})
	c.Assert(err, qt.ErrorMatches, "connection refused")
}

func TestGetProductIsCachedUntilUpdate(t *testing.T) {
	c := qt.New(t)
	uc, repo := newTestUsecase(t)
	ctx := context.Background()

	p, err := uc.GetProduct(ctx, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Name, qt.Equals, "Mesa")

	// A failing backend is not consulted while the entry is cached.
	repo.Err = errors.New("down")
	p, err = uc.GetProduct(ctx, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Name, qt.Equals, "Mesa")
	repo.Err = nil

	updated, err := uc.UpdateProduct(ctx, 2, domain.UpdateProductRequest{Nombre: ptr("Mesa grande")})
	c.Assert(err, qt.IsNil)
	c.Assert(updated, qt.HasLen, 1)
	c.Assert(updated[0].Price, qt.Equals, 120.0)

	p, err = uc.GetProduct(ctx, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Name, qt.Equals, "Mesa grande")
}

func TestGetProductNotFound(t *testing.T) {
	c := qt.New(t)
	uc, _ := newTestUsecase(t)

	_, err := uc.GetProduct(context.Background(), 9999999)
	c.Assert(errors.Is(err, domain.ErrNotFound), qt.IsTrue)
}

func TestCreateProduct(t *testing.T) {
	c := qt.New(t)
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	_, err := uc.CreateProduct(ctx, domain.CreateProductRequest{Nombre: ptr("Cojín")})
	c.Assert(errors.Is(err, domain.ErrValidation), qt.IsTrue)

	created, err := uc.CreateProduct(ctx, domain.CreateProductRequest{Nombre: ptr("Cojín"), Precio: ptr(12.5), Categoria: ptr("Hogar")})
	c.Assert(err, qt.IsNil)
	c.Assert(created, qt.HasLen, 1)

	got, err := uc.GetProduct(ctx, created[0].ID)
	c.Assert(err, qt.IsNil)
	c.Assert(*got, qt.Equals, domain.Product{ID: created[0].ID, Name: "Cojín", Category: "Hogar", Price: 12.5})
}

func TestUpdateProduct(t *testing.T) {
	c := qt.New(t)
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	_, err := uc.UpdateProduct(ctx, 1, domain.UpdateProductRequest{})
	c.Assert(errors.Is(err, domain.ErrValidation), qt.IsTrue)

	_, err = uc.UpdateProduct(ctx, 9999, domain.UpdateProductRequest{Precio: ptr(1.0)})
	c.Assert(errors.Is(err, domain.ErrNotFound), qt.IsTrue)
}

func TestDeleteProductDoesNotCheckExistence(t *testing.T) {
	c := qt.New(t)
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	c.Assert(uc.DeleteProduct(ctx, 9999), qt.IsNil)

	_, err := uc.GetProduct(ctx, 1)
	c.Assert(err, qt.IsNil)
	c.Assert(uc.DeleteProduct(ctx, 1), qt.IsNil)

	_, err = uc.GetProduct(ctx, 1)
	c.Assert(errors.Is(err, domain.ErrNotFound), qt.IsTrue)
}

// slowReadRepo runs beforeReturn after GetByID has read the row, standing in
// for a write that lands while the lookup is in flight.
type slowReadRepo struct {
	*memory.ProductRepository
	beforeReturn func()
}

func (r *slowReadRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := r.ProductRepository.GetByID(ctx, id)
	if f := r.beforeReturn; f != nil {
		r.beforeReturn = nil
		f()
	}
	return p, err
}

func TestGetProductDoesNotCacheRowReplacedMidRead(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	repo := &slowReadRepo{ProductRepository: memory.NewProductRepository("products", "products")}
	repo.Seed(domain.Product{ID: 2, Name: "Mesa", Price: 120})
	cfg := &config.Config{MaxPageSize: 100, QueryTimeout: time.Second, CacheProductTTL: time.Minute}
	uc := NewCatalogUsecase(repo, memory.TransactionManager{}, cache.NewMemoryCache(time.Minute, time.Minute), cfg)

	repo.beforeReturn = func() {
		_, err := uc.UpdateProduct(ctx, 2, domain.UpdateProductRequest{Nombre: ptr("Mesa nueva")})
		c.Check(err, qt.IsNil)
	}

	p, err := uc.GetProduct(ctx, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Name, qt.Equals, "Mesa")

	p, err = uc.GetProduct(ctx, 2)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Name, qt.Equals, "Mesa nueva")
}

type countingTx struct {
	do, readOnly int
}

func (tx *countingTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.do++
	return fn(ctx)
}

func (tx *countingTx) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.readOnly++
	return fn(ctx)
}

func TestWritesRunInTransaction(t *testing.T) {
	c := qt.New(t)
	ctx := context.Background()
	repo := memory.NewProductRepository("products", "products")
	tx := &countingTx{}
	uc := NewCatalogUsecase(repo, tx, cache.NewNoopCache(), &config.Config{MaxPageSize: 100})

	created, err := uc.CreateProduct(ctx, domain.CreateProductRequest{Nombre: ptr("Cojín"), Precio: ptr(3.0)})
	c.Assert(err, qt.IsNil)
	_, err = uc.UpdateProduct(ctx, created[0].ID, domain.UpdateProductRequest{Precio: ptr(4.0)})
	c.Assert(err, qt.IsNil)
	_, err = uc.Search(ctx, domain.SearchQuery{Page: 1, PageSize: 8})
	c.Assert(err, qt.IsNil)

	c.Assert(*tx, qt.Equals, countingTx{do: 2, readOnly: 1})
}
