package order

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
)

type SQL struct {
	conn *sqlx.DB
}

type OrderRepository interface {
	LastOrderNumberTx(ctx context.Context, tx *sqlx.Tx, year string) (string, error)
	InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error)
	InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.CartLine) error
	GetOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderEntity, error)
	GetOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItemEntity, error)
	SetReservedFromTx(ctx context.Context, tx *sqlx.Tx, itemID uint64, warehouse constant.Warehouse) error
	UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error
	DeleteOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error
	DeleteOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error

	List(ctx context.Context, filter *model.OrderFilter) ([]model.OrderListItem, error)
	GetByID(ctx context.Context, orderID uint64) (*model.OrderListItem, error)
	GetItemDetails(ctx context.Context, orderID uint64) ([]model.OrderItemDetail, error)
	Update(ctx context.Context, orderID uint64, req *model.UpdateOrderRequest) error
	CountRecentByEmail(ctx context.Context, email string, since time.Time) (int64, error)
}

func NewOrderRepository(conn *sqlx.DB) OrderRepository {
	return &SQL{conn: conn}
}

const (
	// The suffix after the 4-digit year is ordered numerically so 2025999 < 20251000.
	lastOrderNumberQuery = `SELECT order_number FROM orders
WHERE order_number LIKE CONCAT(?, '%') AND SUBSTRING(order_number, 5) REGEXP '^[0-9]+$'
ORDER BY CAST(SUBSTRING(order_number, 5) AS UNSIGNED) DESC
LIMIT 1 FOR UPDATE`

	insertOrderQuery = `INSERT INTO orders (customer_id, order_number, status, delivery_method, delivery_address, total_amount, notes, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	insertOrderItemQuery = `INSERT INTO order_item (order_id, product_id, quantity, price, reserved_from, created_at) VALUES (?, ?, ?, ?, NULL, NOW())`

	plainOrderColumns = `id, customer_id, order_number, status, delivery_method, delivery_address, total_amount, notes, created_at, updated_at`

	orderColumns = `o.id, o.customer_id, o.order_number, o.status, o.delivery_method, o.delivery_address, o.total_amount, o.notes, o.created_at, o.updated_at`

	listOrdersBase = `SELECT ` + orderColumns + `, c.name AS customer_name, c.email AS customer_email, c.phone AS customer_phone
FROM orders o
LEFT JOIN customer c ON c.id = o.customer_id
WHERE true`

	orderItemColumns = `id, order_id, product_id, quantity, price, reserved_from, created_at`

	itemDetailsQuery = `SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price, oi.reserved_from, oi.created_at,
p.name AS product_name, p.price AS product_price, p.image_url AS product_image_url
FROM order_item oi
LEFT JOIN product p ON p.id = oi.product_id
WHERE oi.order_id = ?
ORDER BY oi.id`

	countRecentByEmailQuery = `SELECT COUNT(*) FROM orders o
JOIN customer c ON c.id = o.customer_id
WHERE c.email = ? AND o.created_at >= ?`
)

func (r *SQL) LastOrderNumberTx(ctx context.Context, tx *sqlx.Tx, year string) (string, error) {
	var number string
	if err := tx.GetContext(ctx, &number, lastOrderNumberQuery, year); err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return number, nil
}

func (r *SQL) InsertOrderTx(ctx context.Context, tx *sqlx.Tx, req *model.InsertOrderTxItem) (uint64, error) {
	res, err := tx.ExecContext(ctx, insertOrderQuery,
		req.CustomerID, req.OrderNumber, req.Status, req.DeliveryMethod, req.DeliveryAddress, req.TotalAmount, req.Notes)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) InsertOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, items []model.CartLine) error {
	for _, it := range items {
		if _, err := tx.ExecContext(ctx, insertOrderItemQuery, orderID, it.ProductID, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return nil
}

// GetOrderTx locks the order row; it returns nil when the order does not exist.
func (r *SQL) GetOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) (*model.OrderEntity, error) {
	var order model.OrderEntity
	q := "SELECT " + plainOrderColumns + " FROM orders WHERE id = ? FOR UPDATE"
	if err := tx.QueryRowxContext(ctx, q, orderID).StructScan(&order); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *SQL) GetOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) ([]model.OrderItemEntity, error) {
	rows, err := tx.QueryxContext(ctx, "SELECT "+orderItemColumns+" FROM order_item WHERE order_id = ? ORDER BY id FOR UPDATE", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderItemEntity, 0)
	for rows.Next() {
		var it model.OrderItemEntity
		if err := rows.StructScan(&it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *SQL) SetReservedFromTx(ctx context.Context, tx *sqlx.Tx, itemID uint64, warehouse constant.Warehouse) error {
	_, err := tx.ExecContext(ctx, "UPDATE order_item SET reserved_from = ? WHERE id = ?", warehouse, itemID)
	return err
}

func (r *SQL) UpdateOrderStatusTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, status constant.OrderStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ?", status, orderID)
	return err
}

func (r *SQL) DeleteOrderItemsTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM order_item WHERE order_id = ?", orderID)
	return err
}

func (r *SQL) DeleteOrderTx(ctx context.Context, tx *sqlx.Tx, orderID uint64) error {
	_, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE id = ?", orderID)
	return err
}

func (r *SQL) List(ctx context.Context, filter *model.OrderFilter) ([]model.OrderListItem, error) {
	query := listOrdersBase
	args := make([]any, 0, 2)
	if filter != nil {
		if filter.CustomerID != 0 {
			query += " AND o.customer_id = ?"
			args = append(args, filter.CustomerID)
		}
		if filter.Status != "" {
			query += " AND o.status = ?"
			args = append(args, filter.Status)
		}
	}
	query += " ORDER BY o.created_at DESC, o.id DESC"

	items := make([]model.OrderListItem, 0)
	if err := r.conn.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SQL) GetByID(ctx context.Context, orderID uint64) (*model.OrderListItem, error) {
	var item model.OrderListItem
	if err := r.conn.QueryRowxContext(ctx, listOrdersBase+" AND o.id = ?", orderID).StructScan(&item); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *SQL) GetItemDetails(ctx context.Context, orderID uint64) ([]model.OrderItemDetail, error) {
	items := make([]model.OrderItemDetail, 0)
	if err := r.conn.SelectContext(ctx, &items, itemDetailsQuery, orderID); err != nil {
		return nil, err
	}
	return items, nil
}

// Update writes only the fields present in req.
func (r *SQL) Update(ctx context.Context, orderID uint64, req *model.UpdateOrderRequest) error {
	sets := make([]string, 0, 6)
	args := make([]any, 0, 6)
	if req.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *req.Status)
	}
	if req.DeliveryMethod != nil {
		sets = append(sets, "delivery_method = ?")
		args = append(args, *req.DeliveryMethod)
	}
	if req.DeliveryAddress != nil {
		sets = append(sets, "delivery_address = ?")
		args = append(args, *req.DeliveryAddress)
	}
	if req.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *req.Notes)
	}
	if req.TotalAmount != nil {
		sets = append(sets, "total_amount = ?")
		args = append(args, *req.TotalAmount)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, orderID)

	_, err := r.conn.ExecContext(ctx, "UPDATE orders SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	return err
}

func (r *SQL) CountRecentByEmail(ctx context.Context, email string, since time.Time) (int64, error) {
	var count int64
	if err := r.conn.GetContext(ctx, &count, countRecentByEmailQuery, email, since); err != nil {
		return 0, err
	}
	return count, nil
}
