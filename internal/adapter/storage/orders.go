package storage

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.OrdersStorage = (*OrdersRepository)(nil)

type OrdersRepository struct {
	sqldb sqldb
}

func NewOrdersRepository(sqldb sqldb) OrdersRepository {
	return OrdersRepository{sqldb}
}

// CreateOrder inserts the order row with its items and clears the
// user's cart. All three steps commit atomically, so a failed item
// insert never leaves a partially visible order.
func (r OrdersRepository) CreateOrder(
	ctx context.Context, order domain.Order,
) (_ domain.Order, createErr error) {
	const op = "OrdersRepository.CreateOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}
	defer endTx(tx, op, &createErr)

	orderQuery := `
		INSERT INTO orders (
			user_id, status, total, payment_method, payment_ref,
			shipping_address_id, billing_address_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err = tx.QueryRowContext(ctx, orderQuery,
		order.UserID, order.Status, order.Total,
		order.PaymentMethod, order.PaymentRef,
		order.ShippingAddressID, order.BillingAddressID,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	itemQuery := `
		INSERT INTO order_items (
			order_id, variant_id, product_name, price, quantity
		)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRowContext(ctx, itemQuery,
			item.OrderID, item.VariantID, item.ProductName,
			item.Price, item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM cart_items WHERE user_id = $1", order.UserID,
	)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	return order, nil
}

const orderColumns = `
	id, user_id, status, total, payment_method, payment_ref,
	shipping_address_id, billing_address_id, created_at`

func (r OrdersRepository) OrderByID(
	ctx context.Context, userID string, orderID int64,
) (domain.Order, error) {
	const op = "OrdersRepository.OrderByID"

	query := "SELECT" + orderColumns +
		" FROM orders WHERE id = $1 AND user_id = $2"

	order, err := r.scanOrder(r.sqldb.QueryRowContext(ctx, query, orderID, userID))
	if err != nil {
		if isNoRows(err) {
			return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := r.loadItems(ctx, []*domain.Order{&order}); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (r OrdersRepository) OrderByPaymentRef(
	ctx context.Context, paymentRef string,
) (domain.Order, error) {
	const op = "OrdersRepository.OrderByPaymentRef"

	query := "SELECT" + orderColumns + " FROM orders WHERE payment_ref = $1"

	order, err := r.scanOrder(r.sqldb.QueryRowContext(ctx, query, paymentRef))
	if err != nil {
		if isNoRows(err) {
			return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (r OrdersRepository) OrdersByUser(
	ctx context.Context, userID string,
) ([]domain.Order, error) {
	const op = "OrdersRepository.OrdersByUser"

	query := "SELECT" + orderColumns +
		" FROM orders WHERE user_id = $1 ORDER BY created_at DESC"

	rows, err := r.sqldb.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (r OrdersRepository) SetStatus(
	ctx context.Context, orderID int64, status domain.OrderStatus,
) error {
	const op = "OrdersRepository.SetStatus"

	res, err := r.sqldb.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", status, orderID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return affectedOrNotFound(res, op)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r OrdersRepository) scanOrder(row rowScanner) (domain.Order, error) {
	var order domain.Order
	err := row.Scan(
		&order.ID, &order.UserID, &order.Status, &order.Total,
		&order.PaymentMethod, &order.PaymentRef,
		&order.ShippingAddressID, &order.BillingAddressID, &order.CreatedAt,
	)
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = []domain.OrderItem{}
	return order, nil
}

func (r OrdersRepository) loadItems(
	ctx context.Context, orders []*domain.Order,
) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Order, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	query := `
		SELECT id, order_id, variant_id, product_name, price, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`

	rows, err := r.sqldb.QueryContext(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.VariantID,
			&item.ProductName, &item.Price, &item.Quantity,
		)
		if err != nil {
			return err
		}
		o := byID[item.OrderID]
		o.Items = append(o.Items, item)
	}
	return rows.Err()
}
