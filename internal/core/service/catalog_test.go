package service_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) (
	service.CatalogService, *MockCatalogStorage, *MockVariantsStorage,
) {
	t.Helper()

	catalog := new(MockCatalogStorage)
	variants := new(MockVariantsStorage)
	return service.NewCatalog(catalog, variants), catalog, variants
}

func TestListProducts(t *testing.T) {
	t.Run("DefaultLimit", func(t *testing.T) {
		s, catalog, _ := newCatalog(t)

		var got domain.CatalogQuery
		catalog.On("ListProducts", t.Context(), mock.Anything).
			Run(func(args mock.Arguments) {
				got = args.Get(1).(domain.CatalogQuery)
			}).
			Return([]domain.Product{}, 0, nil)

		_, err := s.ListProducts(t.Context(), domain.CatalogQuery{})
		require.NoError(t, err)
		assert.Equal(t, 20, got.Limit)
		assert.Equal(t, 0, got.Offset)
	})

	t.Run("CapsLimit", func(t *testing.T) {
		s, catalog, _ := newCatalog(t)

		var got domain.CatalogQuery
		catalog.On("ListProducts", t.Context(), mock.Anything).
			Run(func(args mock.Arguments) {
				got = args.Get(1).(domain.CatalogQuery)
			}).
			Return([]domain.Product{}, 0, nil)

		_, err := s.ListProducts(t.Context(), domain.CatalogQuery{
			Limit: 10_000, Offset: -5,
		})
		require.NoError(t, err)
		assert.Equal(t, 100, got.Limit)
		assert.Equal(t, 0, got.Offset)
	})

	t.Run("TrimsSearchTerm", func(t *testing.T) {
		s, catalog, _ := newCatalog(t)

		var got domain.CatalogQuery
		catalog.On("ListProducts", t.Context(), mock.Anything).
			Run(func(args mock.Arguments) {
				got = args.Get(1).(domain.CatalogQuery)
			}).
			Return([]domain.Product{}, 0, nil)

		_, err := s.ListProducts(t.Context(), domain.CatalogQuery{
			Query: "  crew shirt  ",
		})
		require.NoError(t, err)
		assert.Equal(t, "crew shirt", got.Query)
	})

	t.Run("PageWithTotal", func(t *testing.T) {
		s, catalog, _ := newCatalog(t)

		catalog.On("ListProducts", t.Context(), mock.Anything).
			Return([]domain.Product{{ID: 10}, {ID: 11}}, 42, nil)

		page, err := s.ListProducts(t.Context(), domain.CatalogQuery{})
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.Equal(t, 42, page.Total)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("BySlug", func(t *testing.T) {
		s, catalog, _ := newCatalog(t)

		catalog.On("ProductBySlug", t.Context(), "crew-t-shirt").
			Return(domain.Product{ID: 10, Slug: "crew-t-shirt"}, nil)

		p, err := s.GetProduct(t.Context(), "crew-t-shirt")
		require.NoError(t, err)
		assert.Equal(t, int64(10), p.ID)
	})

	t.Run("EmptySlug", func(t *testing.T) {
		s, catalog, _ := newCatalog(t)

		_, err := s.GetProduct(t.Context(), "")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		catalog.AssertNotCalled(t, "ProductBySlug")
	})

	t.Run("Unknown", func(t *testing.T) {
		s, catalog, _ := newCatalog(t)

		catalog.On("ProductBySlug", t.Context(), "gone").
			Return(domain.Product{}, domain.ErrNotFound)

		_, err := s.GetProduct(t.Context(), "gone")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestVariantAdmin(t *testing.T) {
	t.Run("AddVariant", func(t *testing.T) {
		s, _, variants := newCatalog(t)

		v := domain.ProductVariant{
			ProductID: 10, Size: "M", Color: "black", Price: 20.00, Stock: 3,
		}
		variants.On("InsertVariant", t.Context(), v).
			Return(domain.ProductVariant{ID: 1, ProductID: 10}, nil)

		created, err := s.AddVariant(t.Context(), v)
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
	})

	t.Run("AddVariantNegativePrice", func(t *testing.T) {
		s, _, variants := newCatalog(t)

		_, err := s.AddVariant(t.Context(), domain.ProductVariant{
			ProductID: 10, Price: -1,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		variants.AssertNotCalled(t, "InsertVariant")
	})

	t.Run("UpdateVariantWithoutID", func(t *testing.T) {
		s, _, variants := newCatalog(t)

		err := s.UpdateVariant(t.Context(), domain.ProductVariant{
			ProductID: 10, Price: 20.00,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		variants.AssertNotCalled(t, "UpdateVariant")
	})

	t.Run("DeleteUnknownVariant", func(t *testing.T) {
		s, _, variants := newCatalog(t)

		variants.On("DeleteVariant", t.Context(), int64(9)).
			Return(domain.ErrNotFound)

		err := s.DeleteVariant(t.Context(), int64(9))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
