package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.WishlistStorage = (*WishlistRepository)(nil)

type WishlistRepository struct {
	sqldb sqldb
}

func NewWishlistRepository(sqldb sqldb) WishlistRepository {
	return WishlistRepository{sqldb}
}

func (r WishlistRepository) ProductIDs(
	ctx context.Context, userID string,
) ([]int64, error) {
	const op = "WishlistRepository.ProductIDs"

	query := `
		SELECT product_id FROM wishlist_items
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.sqldb.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ids, nil
}

func (r WishlistRepository) Add(
	ctx context.Context, userID string, productID int64,
) error {
	const op = "WishlistRepository.Add"

	query := `
		INSERT INTO wishlist_items (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING`

	_, err := r.sqldb.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r WishlistRepository) Remove(
	ctx context.Context, userID string, productID int64,
) error {
	const op = "WishlistRepository.Remove"

	query := `
		DELETE FROM wishlist_items
		WHERE user_id = $1 AND product_id = $2`

	_, err := r.sqldb.ExecContext(ctx, query, userID, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r WishlistRepository) Contains(
	ctx context.Context, userID string, productID int64,
) (bool, error) {
	const op = "WishlistRepository.Contains"

	query := `
		SELECT EXISTS (
			SELECT 1 FROM wishlist_items
			WHERE user_id = $1 AND product_id = $2
		)`

	var contains bool
	err := r.sqldb.QueryRowContext(ctx, query, userID, productID).Scan(&contains)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return contains, nil
}
