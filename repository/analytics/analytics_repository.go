package analytics

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/yogapit/eshop/model"
)

// AnalyticsRepository loads the raw rows the dashboard aggregates.
// A zero since means no lower bound.
type AnalyticsRepository interface {
	ListOrders(ctx context.Context, since time.Time) ([]model.AnalyticsOrder, error)
	ListOrderItems(ctx context.Context, since time.Time) ([]model.AnalyticsOrderItem, error)
	ListCustomers(ctx context.Context) ([]model.AnalyticsCustomer, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewAnalyticsRepository(conn *sqlx.DB) AnalyticsRepository {
	return &SQL{conn: conn}
}

func (s *SQL) ListOrders(ctx context.Context, since time.Time) ([]model.AnalyticsOrder, error) {
	items := make([]model.AnalyticsOrder, 0)
	q := "SELECT id, status, created_at FROM orders WHERE created_at >= ? ORDER BY created_at"
	if err := s.conn.SelectContext(ctx, &items, q, since); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) ListOrderItems(ctx context.Context, since time.Time) ([]model.AnalyticsOrderItem, error) {
	items := make([]model.AnalyticsOrderItem, 0)
	q := `SELECT oi.order_id, oi.quantity, oi.price, p.name AS product_name
FROM order_item oi
JOIN orders o ON o.id = oi.order_id
LEFT JOIN product p ON p.id = oi.product_id
WHERE o.created_at >= ?`
	if err := s.conn.SelectContext(ctx, &items, q, since); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) ListCustomers(ctx context.Context) ([]model.AnalyticsCustomer, error) {
	items := make([]model.AnalyticsCustomer, 0)
	if err := s.conn.SelectContext(ctx, &items, "SELECT id, customer_type FROM customer"); err != nil {
		return nil, err
	}
	return items, nil
}
