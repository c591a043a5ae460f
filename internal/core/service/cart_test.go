package service_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartMocks struct {
	cart     *MockCartStorage
	wishlist *MockWishlistStorage
	catalog  *MockCatalogStorage
	variants *MockVariantsStorage
}

func newCart(t *testing.T) (service.CartService, cartMocks) {
	t.Helper()

	m := cartMocks{
		cart:     new(MockCartStorage),
		wishlist: new(MockWishlistStorage),
		catalog:  new(MockCatalogStorage),
		variants: new(MockVariantsStorage),
	}
	return service.NewCart(m.cart, m.wishlist, m.catalog, m.variants), m
}

func TestViewCart(t *testing.T) {
	t.Run("ResolvesProductsAndVariants", func(t *testing.T) {
		s, m := newCart(t)

		m.cart.On("ListItems", t.Context(), "user-1").
			Return([]domain.CartItem{
				{UserID: "user-1", ProductID: 10, VariantID: 1, Quantity: 2},
				{UserID: "user-1", ProductID: 11, VariantID: 0, Quantity: 1},
			}, nil)
		m.catalog.On("ProductsByIDs", t.Context(), []int64{10, 11}).
			Return(map[int64]domain.Product{
				10: {ID: 10, Name: "Crew T-Shirt", Price: 25.00},
				11: {ID: 11, Name: "Canvas Tote", Price: 15.50},
			}, nil)
		m.variants.On("VariantsByIDs", t.Context(), []int64{1}).
			Return(map[int64]domain.ProductVariant{
				1: {ID: 1, ProductID: 10, Size: "M", Price: 20.00},
			}, nil)

		lines, err := s.ViewCart(t.Context(), "user-1")
		require.NoError(t, err)
		require.Len(t, lines, 2)

		assert.Equal(t, int64(1), lines[0].Variant.ID)
		assert.InDelta(t, 20.00, lines[0].Variant.Price, 1e-9)
		assert.Equal(t, 2, lines[0].Quantity)

		// row without a variant falls back to the product itself
		assert.Zero(t, lines[1].Variant.ID)
		assert.InDelta(t, 15.50, lines[1].Variant.Price, 1e-9)
	})

	t.Run("VanishedVariantFallsBackToDefault", func(t *testing.T) {
		s, m := newCart(t)

		m.cart.On("ListItems", t.Context(), "user-1").
			Return([]domain.CartItem{
				{UserID: "user-1", ProductID: 10, VariantID: 9, Quantity: 1},
			}, nil)
		m.catalog.On("ProductsByIDs", t.Context(), []int64{10}).
			Return(map[int64]domain.Product{
				10: {ID: 10, Name: "Crew T-Shirt", Price: 25.00},
			}, nil)
		m.variants.On("VariantsByIDs", t.Context(), []int64{9}).
			Return(map[int64]domain.ProductVariant{}, nil)

		lines, err := s.ViewCart(t.Context(), "user-1")
		require.NoError(t, err)
		require.Len(t, lines, 1)

		assert.Zero(t, lines[0].Variant.ID)
		assert.Equal(t, int64(10), lines[0].Variant.ProductID)
		assert.InDelta(t, 25.00, lines[0].Variant.Price, 1e-9)
	})

	t.Run("VanishedProductSkipsRow", func(t *testing.T) {
		s, m := newCart(t)

		m.cart.On("ListItems", t.Context(), "user-1").
			Return([]domain.CartItem{
				{UserID: "user-1", ProductID: 10, Quantity: 1},
				{UserID: "user-1", ProductID: 404, Quantity: 3},
			}, nil)
		m.catalog.On("ProductsByIDs", t.Context(), []int64{10, 404}).
			Return(map[int64]domain.Product{
				10: {ID: 10, Name: "Crew T-Shirt", Price: 25.00},
			}, nil)

		lines, err := s.ViewCart(t.Context(), "user-1")
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, int64(10), lines[0].Product.ID)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		s, m := newCart(t)

		m.cart.On("ListItems", t.Context(), "user-1").
			Return([]domain.CartItem{}, nil)

		lines, err := s.ViewCart(t.Context(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, lines)
		m.catalog.AssertNotCalled(t, "ProductsByIDs")
	})
}

func TestCartMutations(t *testing.T) {
	t.Run("AddItem", func(t *testing.T) {
		s, m := newCart(t)

		item := domain.CartItem{
			UserID: "user-1", ProductID: 10, VariantID: 1, Quantity: 2,
		}
		m.cart.On("UpsertItem", t.Context(), item).Return(nil)

		require.NoError(t, s.AddItem(t.Context(), item))
		m.cart.AssertExpectations(t)
	})

	t.Run("AddItemInvalidQuantity", func(t *testing.T) {
		s, m := newCart(t)

		err := s.AddItem(t.Context(), domain.CartItem{
			UserID: "user-1", ProductID: 10, Quantity: 0,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		m.cart.AssertNotCalled(t, "UpsertItem")
	})

	t.Run("UpdateItemZeroQuantityDeletes", func(t *testing.T) {
		s, m := newCart(t)

		m.cart.On(
			"DeleteItem", t.Context(), "user-1", int64(10), int64(1),
		).Return(nil)

		err := s.UpdateItem(t.Context(), domain.CartItem{
			UserID: "user-1", ProductID: 10, VariantID: 1, Quantity: 0,
		})
		require.NoError(t, err)
		m.cart.AssertNotCalled(t, "SetQuantity")
	})

	t.Run("UpdateItemSetsQuantity", func(t *testing.T) {
		s, m := newCart(t)

		item := domain.CartItem{
			UserID: "user-1", ProductID: 10, VariantID: 1, Quantity: 4,
		}
		m.cart.On("SetQuantity", t.Context(), item).Return(nil)

		require.NoError(t, s.UpdateItem(t.Context(), item))
		m.cart.AssertExpectations(t)
	})
}

func TestWishlistToggle(t *testing.T) {
	t.Run("AddsWhenAbsent", func(t *testing.T) {
		s, m := newCart(t)

		m.wishlist.On("Contains", t.Context(), "user-1", int64(10)).
			Return(false, nil)
		m.wishlist.On("Add", t.Context(), "user-1", int64(10)).Return(nil)

		added, err := s.WishlistToggle(t.Context(), "user-1", 10)
		require.NoError(t, err)
		assert.True(t, added)
	})

	t.Run("RemovesWhenPresent", func(t *testing.T) {
		s, m := newCart(t)

		m.wishlist.On("Contains", t.Context(), "user-1", int64(10)).
			Return(true, nil)
		m.wishlist.On("Remove", t.Context(), "user-1", int64(10)).Return(nil)

		added, err := s.WishlistToggle(t.Context(), "user-1", 10)
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("DoubleToggleRestoresState", func(t *testing.T) {
		s, m := newCart(t)

		// membership flips after the first toggle
		m.wishlist.On("Contains", t.Context(), "user-1", int64(10)).
			Return(false, nil).Once()
		m.wishlist.On("Add", t.Context(), "user-1", int64(10)).Return(nil).Once()
		m.wishlist.On("Contains", t.Context(), "user-1", int64(10)).
			Return(true, nil).Once()
		m.wishlist.On("Remove", t.Context(), "user-1", int64(10)).Return(nil).Once()

		added, err := s.WishlistToggle(t.Context(), "user-1", 10)
		require.NoError(t, err)
		assert.True(t, added)

		added, err = s.WishlistToggle(t.Context(), "user-1", 10)
		require.NoError(t, err)
		assert.False(t, added)

		m.wishlist.AssertExpectations(t)
	})

	t.Run("InvalidProductID", func(t *testing.T) {
		s, m := newCart(t)

		_, err := s.WishlistToggle(t.Context(), "user-1", 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrValidation)
		m.wishlist.AssertNotCalled(t, "Contains")
	})
}

func TestWishlist(t *testing.T) {
	t.Run("PreservesStorageOrder", func(t *testing.T) {
		s, m := newCart(t)

		m.wishlist.On("ProductIDs", t.Context(), "user-1").
			Return([]int64{11, 10}, nil)
		m.catalog.On("ProductsByIDs", t.Context(), []int64{11, 10}).
			Return(map[int64]domain.Product{
				10: {ID: 10, Name: "Crew T-Shirt"},
				11: {ID: 11, Name: "Canvas Tote"},
			}, nil)

		ps, err := s.Wishlist(t.Context(), "user-1")
		require.NoError(t, err)
		require.Len(t, ps, 2)
		assert.Equal(t, int64(11), ps[0].ID)
		assert.Equal(t, int64(10), ps[1].ID)
	})

	t.Run("Empty", func(t *testing.T) {
		s, m := newCart(t)

		m.wishlist.On("ProductIDs", t.Context(), "user-1").
			Return([]int64{}, nil)

		ps, err := s.Wishlist(t.Context(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, ps)
		m.catalog.AssertNotCalled(t, "ProductsByIDs")
	})
}
