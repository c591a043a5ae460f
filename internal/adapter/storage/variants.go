package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.VariantsStorage = (*VariantsRepository)(nil)

type VariantsRepository struct {
	sqldb sqldb
}

func NewVariantsRepository(sqldb sqldb) VariantsRepository {
	return VariantsRepository{sqldb}
}

func (r VariantsRepository) VariantsByProduct(
	ctx context.Context, productID int64,
) ([]domain.ProductVariant, error) {
	const op = "VariantsRepository.VariantsByProduct"

	query := `
		SELECT id, product_id, COALESCE(size, ''), COALESCE(color, ''),
			price, stock
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id`

	rows, err := r.sqldb.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	vs := []domain.ProductVariant{}
	for rows.Next() {
		var v domain.ProductVariant
		err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.Price, &v.Stock)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func (r VariantsRepository) VariantsByIDs(
	ctx context.Context, ids []int64,
) (map[int64]domain.ProductVariant, error) {
	const op = "VariantsRepository.VariantsByIDs"

	if len(ids) == 0 {
		return map[int64]domain.ProductVariant{}, nil
	}

	query := `
		SELECT id, product_id, COALESCE(size, ''), COALESCE(color, ''),
			price, stock
		FROM product_variants
		WHERE id = ANY($1)`

	rows, err := r.sqldb.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	byID := make(map[int64]domain.ProductVariant, len(ids))
	for rows.Next() {
		var v domain.ProductVariant
		err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.Price, &v.Stock)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		byID[v.ID] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return byID, nil
}

func (r VariantsRepository) InsertVariant(
	ctx context.Context, v domain.ProductVariant,
) (domain.ProductVariant, error) {
	const op = "VariantsRepository.InsertVariant"

	query := `
		INSERT INTO product_variants (product_id, size, color, price, stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	err := r.sqldb.QueryRowContext(ctx, query,
		v.ProductID, v.Size, v.Color, v.Price, v.Stock,
	).Scan(&v.ID)
	if err != nil {
		return domain.ProductVariant{}, fmt.Errorf("%s: %w", op, err)
	}
	return v, nil
}

func (r VariantsRepository) UpdateVariant(
	ctx context.Context, v domain.ProductVariant,
) error {
	const op = "VariantsRepository.UpdateVariant"

	query := `
		UPDATE product_variants
		SET size = $1, color = $2, price = $3, stock = $4
		WHERE id = $5`

	res, err := r.sqldb.ExecContext(ctx, query,
		v.Size, v.Color, v.Price, v.Stock, v.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affectedOrNotFound(res, op)
}

func (r VariantsRepository) DeleteVariant(
	ctx context.Context, variantID int64,
) error {
	const op = "VariantsRepository.DeleteVariant"

	res, err := r.sqldb.ExecContext(ctx,
		"DELETE FROM product_variants WHERE id = $1", variantID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affectedOrNotFound(res, op)
}

func affectedOrNotFound(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
