package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogReader = (*CatalogService)(nil)
var _ port.VariantAdmin = (*CatalogService)(nil)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CatalogService answers storefront listing queries and carries the
// admin variant operations.
type CatalogService struct {
	catalog  port.CatalogStorage
	variants port.VariantsStorage
}

func NewCatalog(
	catalog port.CatalogStorage, variants port.VariantsStorage,
) CatalogService {
	return CatalogService{catalog, variants}
}

func (s CatalogService) ListProducts(
	ctx context.Context, q domain.CatalogQuery,
) (domain.CatalogPage, error) {
	const op = "CatalogService.ListProducts"

	if err := ctx.Err(); err != nil {
		return domain.CatalogPage{}, fmt.Errorf("%s: %w", op, err)
	}

	q = normalizeQuery(q)

	items, total, err := s.catalog.ListProducts(ctx, q)
	if err != nil {
		return domain.CatalogPage{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.CatalogPage{Items: items, Total: total}, nil
}

func (s CatalogService) GetProduct(
	ctx context.Context, slug string,
) (domain.Product, error) {
	const op = "CatalogService.GetProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if slug == "" {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrValidation)
	}

	p, err := s.catalog.ProductBySlug(ctx, slug)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s CatalogService) ListVariants(
	ctx context.Context, productID int64,
) ([]domain.ProductVariant, error) {
	const op = "CatalogService.ListVariants"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	vs, err := s.variants.VariantsByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func (s CatalogService) AddVariant(
	ctx context.Context, v domain.ProductVariant,
) (domain.ProductVariant, error) {
	const op = "CatalogService.AddVariant"

	if err := validateVariant(v); err != nil {
		return domain.ProductVariant{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.variants.InsertVariant(ctx, v)
	if err != nil {
		return domain.ProductVariant{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (s CatalogService) UpdateVariant(
	ctx context.Context, v domain.ProductVariant,
) error {
	const op = "CatalogService.UpdateVariant"

	if v.ID <= 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrValidation)
	}
	if err := validateVariant(v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.variants.UpdateVariant(ctx, v); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CatalogService) DeleteVariant(
	ctx context.Context, variantID int64,
) error {
	const op = "CatalogService.DeleteVariant"

	if variantID <= 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrValidation)
	}

	if err := s.variants.DeleteVariant(ctx, variantID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func validateVariant(v domain.ProductVariant) error {
	if v.ProductID <= 0 || v.Price < 0 || v.Stock < 0 {
		return domain.ErrValidation
	}
	return nil
}

func normalizeQuery(q domain.CatalogQuery) domain.CatalogQuery {
	q.Query = strings.TrimSpace(q.Query)
	if q.Limit <= 0 {
		q.Limit = defaultPageLimit
	}
	if q.Limit > maxPageLimit {
		q.Limit = maxPageLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}
