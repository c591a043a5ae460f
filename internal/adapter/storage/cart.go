package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CartStorage = (*CartRepository)(nil)

// CartRepository persists cart rows. VariantID 0 is stored as-is and
// stands for "no variant chosen", keeping the user+product+variant
// uniqueness a plain composite key.
type CartRepository struct {
	sqldb sqldb
}

func NewCartRepository(sqldb sqldb) CartRepository {
	return CartRepository{sqldb}
}

func (r CartRepository) ListItems(
	ctx context.Context, userID string,
) ([]domain.CartItem, error) {
	const op = "CartRepository.ListItems"

	query := `
		SELECT user_id, product_id, variant_id, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at, product_id`

	rows, err := r.sqldb.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		err := rows.Scan(
			&item.UserID, &item.ProductID, &item.VariantID, &item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (r CartRepository) UpsertItem(
	ctx context.Context, item domain.CartItem,
) error {
	const op = "CartRepository.UpsertItem"

	query := `
		INSERT INTO cart_items (user_id, product_id, variant_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id, variant_id) DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity`

	_, err := r.sqldb.ExecContext(ctx, query,
		item.UserID, item.ProductID, item.VariantID, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartRepository) SetQuantity(
	ctx context.Context, item domain.CartItem,
) error {
	const op = "CartRepository.SetQuantity"

	query := `
		UPDATE cart_items SET quantity = $1
		WHERE user_id = $2 AND product_id = $3 AND variant_id = $4`

	res, err := r.sqldb.ExecContext(ctx, query,
		item.Quantity, item.UserID, item.ProductID, item.VariantID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affectedOrNotFound(res, op)
}

func (r CartRepository) DeleteItem(
	ctx context.Context, userID string, productID, variantID int64,
) error {
	const op = "CartRepository.DeleteItem"

	query := `
		DELETE FROM cart_items
		WHERE user_id = $1 AND product_id = $2 AND variant_id = $3`

	_, err := r.sqldb.ExecContext(ctx, query, userID, productID, variantID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CartRepository) Clear(ctx context.Context, userID string) error {
	const op = "CartRepository.Clear"

	_, err := r.sqldb.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = $1", userID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
