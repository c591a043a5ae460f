package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartKeeper = (*CartService)(nil)
var _ port.WishlistKeeper = (*CartService)(nil)

// CartService merges persisted cart rows with live catalog data and
// keeps the per-user wishlist set.
type CartService struct {
	cart     port.CartStorage
	wishlist port.WishlistStorage
	catalog  port.CatalogStorage
	variants port.VariantsStorage
}

func NewCart(
	cart port.CartStorage,
	wishlist port.WishlistStorage,
	catalog port.CatalogStorage,
	variants port.VariantsStorage,
) CartService {
	return CartService{cart, wishlist, catalog, variants}
}

func (s CartService) ViewCart(
	ctx context.Context, userID string,
) ([]domain.CartLine, error) {
	const op = "CartService.ViewCart"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.cart.ListItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(items) == 0 {
		return []domain.CartLine{}, nil
	}

	products, variants, err := s.resolveCatalogData(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lines := make([]domain.CartLine, 0, len(items))
	for _, item := range items {
		p, ok := products[item.ProductID]
		if !ok {
			// product removed from catalog, cart row is stale
			continue
		}

		v, ok := variants[item.VariantID]
		if !ok {
			v = p.DefaultVariant()
		}

		lines = append(lines, domain.CartLine{
			Product:  p,
			Variant:  v,
			Quantity: item.Quantity,
		})
	}
	return lines, nil
}

func (s CartService) resolveCatalogData(
	ctx context.Context, items []domain.CartItem,
) (map[int64]domain.Product, map[int64]domain.ProductVariant, error) {
	var productIDs, variantIDs []int64
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
		if item.VariantID != 0 {
			variantIDs = append(variantIDs, item.VariantID)
		}
	}

	products, err := s.catalog.ProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, err
	}

	variants := map[int64]domain.ProductVariant{}
	if len(variantIDs) != 0 {
		variants, err = s.variants.VariantsByIDs(ctx, variantIDs)
		if err != nil {
			return nil, nil, err
		}
	}
	return products, variants, nil
}

func (s CartService) AddItem(ctx context.Context, item domain.CartItem) error {
	const op = "CartService.AddItem"

	if err := validateCartItem(item); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cart.UpsertItem(ctx, item); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CartService) UpdateItem(ctx context.Context, item domain.CartItem) error {
	const op = "CartService.UpdateItem"

	if item.UserID == "" || item.ProductID <= 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrValidation)
	}

	if item.Quantity <= 0 {
		err := s.cart.DeleteItem(ctx, item.UserID, item.ProductID, item.VariantID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}

	if err := s.cart.SetQuantity(ctx, item); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CartService) RemoveItem(
	ctx context.Context, userID string, productID, variantID int64,
) error {
	const op = "CartService.RemoveItem"

	if err := s.cart.DeleteItem(ctx, userID, productID, variantID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CartService) ClearCart(ctx context.Context, userID string) error {
	const op = "CartService.ClearCart"

	if err := s.cart.Clear(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CartService) Wishlist(
	ctx context.Context, userID string,
) ([]domain.Product, error) {
	const op = "CartService.Wishlist"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ids, err := s.wishlist.ProductIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	byID, err := s.catalog.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ps = append(ps, p)
		}
	}
	return ps, nil
}

// WishlistToggle reads current membership and flips it, so toggling
// twice always restores the original state.
func (s CartService) WishlistToggle(
	ctx context.Context, userID string, productID int64,
) (added bool, err error) {
	const op = "CartService.WishlistToggle"

	if productID <= 0 {
		return false, fmt.Errorf("%s: %w", op, domain.ErrValidation)
	}

	contains, err := s.wishlist.Contains(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if contains {
		if err := s.wishlist.Remove(ctx, userID, productID); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		return false, nil
	}

	if err := s.wishlist.Add(ctx, userID, productID); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

func (s CartService) WishlistAdd(
	ctx context.Context, userID string, productID int64,
) error {
	const op = "CartService.WishlistAdd"

	if productID <= 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrValidation)
	}

	if err := s.wishlist.Add(ctx, userID, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s CartService) WishlistRemove(
	ctx context.Context, userID string, productID int64,
) error {
	const op = "CartService.WishlistRemove"

	if err := s.wishlist.Remove(ctx, userID, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func validateCartItem(item domain.CartItem) error {
	if item.UserID == "" || item.ProductID <= 0 || item.Quantity <= 0 {
		return domain.ErrValidation
	}
	return nil
}
