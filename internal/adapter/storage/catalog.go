package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.CatalogStorage = (*CatalogRepository)(nil)

const catalogFrom = `
	FROM products p
	LEFT JOIN brands b ON b.id = p.brand_id
	LEFT JOIN product_categories c ON c.id = p.category_id`

const catalogColumns = `
	p.id, p.slug, p.name, COALESCE(p.description, ''), p.price,
	COALESCE(b.name, ''), COALESCE(c.slug, ''), COALESCE(c.name, '')`

type CatalogRepository struct {
	sqldb sqldb
}

func NewCatalogRepository(sqldb sqldb) CatalogRepository {
	return CatalogRepository{sqldb}
}

func (r CatalogRepository) ListProducts(
	ctx context.Context, q domain.CatalogQuery,
) ([]domain.Product, int, error) {
	const op = "CatalogRepository.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	whereSQL, args := buildCatalogFilter(q)

	var total int
	countQuery := "SELECT COUNT(*)" + catalogFrom + whereSQL
	err := r.sqldb.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	if total == 0 {
		return []domain.Product{}, 0, nil
	}

	pageQuery := fmt.Sprintf(
		"SELECT %s %s %s ORDER BY p.id LIMIT $%d OFFSET $%d",
		catalogColumns, catalogFrom, whereSQL, len(args)+1, len(args)+2,
	)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.sqldb.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	ps, err := scanProducts(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	if err := r.hydrate(ctx, ps); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, *p)
	}
	return out, total, nil
}

func (r CatalogRepository) ProductBySlug(
	ctx context.Context, slug string,
) (domain.Product, error) {
	const op = "CatalogRepository.ProductBySlug"

	query := "SELECT" + catalogColumns + catalogFrom + " WHERE p.slug = $1"

	var p domain.Product
	err := r.sqldb.QueryRowContext(ctx, query, slug).Scan(
		&p.ID, &p.Slug, &p.Name, &p.Description, &p.Price,
		&p.Brand, &p.Category.Slug, &p.Category.Name,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := r.hydrate(ctx, []*domain.Product{&p}); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r CatalogRepository) ProductsByIDs(
	ctx context.Context, ids []int64,
) (map[int64]domain.Product, error) {
	const op = "CatalogRepository.ProductsByIDs"

	if len(ids) == 0 {
		return map[int64]domain.Product{}, nil
	}

	query := "SELECT" + catalogColumns + catalogFrom + " WHERE p.id = ANY($1)"

	rows, err := r.sqldb.QueryContext(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	ps, err := scanProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := r.hydrate(ctx, ps); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byID := make(map[int64]domain.Product, len(ps))
	for _, p := range ps {
		byID[p.ID] = *p
	}
	return byID, nil
}

// hydrate fills the nested containers for the given products. Missing
// rows become empty slices and zero aggregates, never nils.
func (r CatalogRepository) hydrate(
	ctx context.Context, ps []*domain.Product,
) error {
	byID := make(map[int64]*domain.Product, len(ps))
	ids := make([]int64, 0, len(ps))
	for _, p := range ps {
		p.Tags = []string{}
		p.Images = []domain.ProductImage{}
		p.Variants = []domain.ProductVariant{}
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	if err := r.hydrateImages(ctx, byID, ids); err != nil {
		return err
	}
	if err := r.hydrateTags(ctx, byID, ids); err != nil {
		return err
	}
	if err := r.hydrateVariants(ctx, byID, ids); err != nil {
		return err
	}
	return r.hydrateRatings(ctx, byID, ids)
}

func (r CatalogRepository) hydrateImages(
	ctx context.Context, byID map[int64]*domain.Product, ids []int64,
) error {
	query := `
		SELECT product_id, url, COALESCE(alt, '')
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY product_id, position`

	rows, err := r.sqldb.QueryContext(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var img domain.ProductImage
		if err := rows.Scan(&productID, &img.URL, &img.Alt); err != nil {
			return err
		}
		p := byID[productID]
		p.Images = append(p.Images, img)
	}
	return rows.Err()
}

func (r CatalogRepository) hydrateTags(
	ctx context.Context, byID map[int64]*domain.Product, ids []int64,
) error {
	query := `
		SELECT product_id, tag FROM product_tags
		WHERE product_id = ANY($1)
		ORDER BY product_id, tag`

	rows, err := r.sqldb.QueryContext(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var tag string
		if err := rows.Scan(&productID, &tag); err != nil {
			return err
		}
		p := byID[productID]
		p.Tags = append(p.Tags, tag)
	}
	return rows.Err()
}

func (r CatalogRepository) hydrateVariants(
	ctx context.Context, byID map[int64]*domain.Product, ids []int64,
) error {
	query := `
		SELECT id, product_id, COALESCE(size, ''), COALESCE(color, ''),
			price, stock
		FROM product_variants
		WHERE product_id = ANY($1)
		ORDER BY id`

	rows, err := r.sqldb.QueryContext(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.ProductVariant
		err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.Price, &v.Stock)
		if err != nil {
			return err
		}
		p := byID[v.ProductID]
		p.Variants = append(p.Variants, v)
	}
	return rows.Err()
}

func (r CatalogRepository) hydrateRatings(
	ctx context.Context, byID map[int64]*domain.Product, ids []int64,
) error {
	query := `
		SELECT product_id, AVG(rating)::float8, COUNT(*)
		FROM product_reviews
		WHERE product_id = ANY($1)
		GROUP BY product_id`

	rows, err := r.sqldb.QueryContext(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var rating domain.Rating
		if err := rows.Scan(&productID, &rating.Average, &rating.Count); err != nil {
			return err
		}
		byID[productID].Rating = rating
	}
	return rows.Err()
}

func scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	var ps []*domain.Product
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ID, &p.Slug, &p.Name, &p.Description, &p.Price,
			&p.Brand, &p.Category.Slug, &p.Category.Name,
		)
		if err != nil {
			return nil, err
		}
		ps = append(ps, &p)
	}
	return ps, rows.Err()
}

func buildCatalogFilter(q domain.CatalogQuery) (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Category != "" {
		conds = append(conds, "c.slug = "+arg(q.Category))
	}
	if q.Query != "" {
		ph := arg("%" + q.Query + "%")
		conds = append(conds,
			"(p.name ILIKE "+ph+" OR p.description ILIKE "+ph+")")
	}
	if q.Brand != "" {
		conds = append(conds, "b.name = "+arg(q.Brand))
	}
	if q.PriceMin > 0 {
		conds = append(conds, "p.price >= "+arg(q.PriceMin))
	}
	if q.PriceMax > 0 {
		conds = append(conds, "p.price <= "+arg(q.PriceMax))
	}
	if q.Size != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM product_variants v
			WHERE v.product_id = p.id AND v.size = `+arg(q.Size)+")")
	}
	if q.Color != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM product_variants v
			WHERE v.product_id = p.id AND v.color = `+arg(q.Color)+")")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
