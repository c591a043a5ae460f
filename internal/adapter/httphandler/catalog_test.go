package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCatalogReader struct {
	mock.Mock
}

func (m *MockCatalogReader) ListProducts(
	ctx context.Context, q domain.CatalogQuery,
) (domain.CatalogPage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.CatalogPage), args.Error(1)
}

func (m *MockCatalogReader) GetProduct(
	ctx context.Context, slug string,
) (domain.Product, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(domain.Product), args.Error(1)
}

func newCatalogServer(catalog *MockCatalogReader) *httptest.Server {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, catalog)
	return httptest.NewServer(mux)
}

func TestListProductsHandler(t *testing.T) {
	t.Run("DecodesFilters", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		srv := newCatalogServer(catalog)
		defer srv.Close()

		var got domain.CatalogQuery
		catalog.On("ListProducts", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				got = args.Get(1).(domain.CatalogQuery)
			}).
			Return(domain.CatalogPage{Items: []domain.Product{}}, nil)

		res, err := http.Get(srv.URL +
			"/v1/products?category=shirts&q=crew&brand=acme" +
			"&size=M&color=black&price_min=10&price_max=30&limit=5&offset=10")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		assert.Equal(t, "shirts", got.Category)
		assert.Equal(t, "crew", got.Query)
		assert.Equal(t, "acme", got.Brand)
		assert.Equal(t, "M", got.Size)
		assert.Equal(t, "black", got.Color)
		assert.InDelta(t, 10, got.PriceMin, 1e-9)
		assert.InDelta(t, 30, got.PriceMax, 1e-9)
		assert.Equal(t, 5, got.Limit)
		assert.Equal(t, 10, got.Offset)
	})

	t.Run("IgnoresUnknownParams", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		srv := newCatalogServer(catalog)
		defer srv.Close()

		catalog.On("ListProducts", mock.Anything, mock.Anything).
			Return(domain.CatalogPage{Items: []domain.Product{}}, nil)

		res, err := http.Get(srv.URL + "/v1/products?utm_source=mail")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("NonNumericPrice", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		srv := newCatalogServer(catalog)
		defer srv.Close()

		res, err := http.Get(srv.URL + "/v1/products?price_min=cheap")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		catalog.AssertNotCalled(t, "ListProducts")
	})

	t.Run("PageBody", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		srv := newCatalogServer(catalog)
		defer srv.Close()

		catalog.On("ListProducts", mock.Anything, mock.Anything).
			Return(domain.CatalogPage{
				Items: []domain.Product{{
					ID: 10, Slug: "crew-t-shirt", Name: "Crew T-Shirt",
					Price: 25.00,
				}},
				Total: 1,
			}, nil)

		res, err := http.Get(srv.URL + "/v1/products")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var page httphandler.CatalogPage
		require.NoError(t, json.NewDecoder(res.Body).Decode(&page))
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "crew-t-shirt", page.Items[0].Slug)
	})
}

func TestGetProductHandler(t *testing.T) {
	t.Run("BySlug", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		srv := newCatalogServer(catalog)
		defer srv.Close()

		catalog.On("GetProduct", mock.Anything, "crew-t-shirt").
			Return(domain.Product{
				ID: 10, Slug: "crew-t-shirt", Name: "Crew T-Shirt",
				Variants: []domain.ProductVariant{
					{ID: 1, ProductID: 10, Size: "M", Price: 20.00},
				},
			}, nil)

		res, err := http.Get(srv.URL + "/v1/products/crew-t-shirt")
		require.NoError(t, err)
		defer res.Body.Close()
		require.Equal(t, http.StatusOK, res.StatusCode)

		var p httphandler.Product
		require.NoError(t, json.NewDecoder(res.Body).Decode(&p))
		assert.Equal(t, int64(10), p.ID)
		require.Len(t, p.Variants, 1)
		assert.Equal(t, "M", p.Variants[0].Size)
	})

	t.Run("Unknown", func(t *testing.T) {
		catalog := new(MockCatalogReader)
		srv := newCatalogServer(catalog)
		defer srv.Close()

		catalog.On("GetProduct", mock.Anything, "gone").
			Return(domain.Product{}, domain.ErrNotFound)

		res, err := http.Get(srv.URL + "/v1/products/gone")
		require.NoError(t, err)
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}
