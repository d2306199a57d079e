package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"productos-api/config"
	"productos-api/internal/domain"
	"productos-api/pkg/cache"
	"productos-api/pkg/utils"

	"github.com/go-playground/validator/v10"
)

type CatalogUsecase struct {
	repo        domain.ProductRepository
	txManager   domain.TransactionManager
	cache       cache.CacheService
	validate    *validator.Validate
	cacheTTL    time.Duration
	timeout     time.Duration
	maxPageSize int

	// writes counts cache invalidations. A lookup only fills the cache if no
	// write started or finished while it was reading.
	writes atomic.Uint64
}

func NewCatalogUsecase(repo domain.ProductRepository, txManager domain.TransactionManager, cache cache.CacheService, cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		repo:        repo,
		txManager:   txManager,
		cache:       cache,
		validate:    validator.New(),
		cacheTTL:    cfg.CacheProductTTL,
		timeout:     cfg.QueryTimeout,
		maxPageSize: cfg.MaxPageSize,
	}
}

func (uc *CatalogUsecase) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.timeout)
}

func validationError(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, utils.DescribeValidation(err))
}

func (uc *CatalogUsecase) Search(ctx context.Context, q domain.SearchQuery) (*domain.SearchResult, error) {
	if err := uc.validate.Struct(q); err != nil {
		return nil, validationError(err)
	}
	if q.PageSize > uc.maxPageSize {
		return nil, fmt.Errorf("%w: page size %d exceeds %d", domain.ErrValidation, q.PageSize, uc.maxPageSize)
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	var (
		products []domain.Product
		total    int64
	)
	err := uc.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		products, total, err = uc.repo.Search(ctx, q.Filter())
		return err
	})
	if err != nil {
		return nil, err
	}

	return &domain.SearchResult{
		Products:      products,
		TotalPages:    domain.TotalPages(total, q.PageSize),
		CurrentPage:   q.Page,
		TotalProducts: total,
	}, nil
}

// invalidate drops the cached product. Writers call it before and after the
// write so a lookup racing with the write never caches the old row.
func (uc *CatalogUsecase) invalidate(id int64) {
	uc.writes.Add(1)
	uc.cache.Delete(cache.ProductKey(id))
}

func (uc *CatalogUsecase) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	key := cache.ProductKey(id)
	if cached, found := uc.cache.Get(key); found {
		if p, ok := cached.(domain.Product); ok {
			return &p, nil
		}
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	seen := uc.writes.Load()
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.writes.Load() == seen {
		uc.cache.Set(key, *p, uc.cacheTTL)
	}
	return p, nil
}

// CreateProduct requires nombre and precio; the rest is optional.
func (uc *CatalogUsecase) CreateProduct(ctx context.Context, req domain.CreateProductRequest) ([]domain.Product, error) {
	if err := uc.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	var created []domain.Product
	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = uc.repo.Create(ctx, req.Changes())
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateProduct merges the supplied fields into product id.
func (uc *CatalogUsecase) UpdateProduct(ctx context.Context, id int64, req domain.UpdateProductRequest) ([]domain.Product, error) {
	changes := req.Changes()
	if changes.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	uc.invalidate(id)
	defer uc.invalidate(id)

	var products []domain.Product
	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		products, err = uc.repo.Update(ctx, id, changes)
		if err == nil && len(products) == 0 {
			return domain.ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// DeleteProduct does not check that the product existed.
func (uc *CatalogUsecase) DeleteProduct(ctx context.Context, id int64) error {
	ctx, cancel := uc.withTimeout(ctx)
	defer cancel()

	uc.invalidate(id)
	defer uc.invalidate(id)

	return uc.repo.Delete(ctx, id)
}
