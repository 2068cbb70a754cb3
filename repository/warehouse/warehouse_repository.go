package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
)

// ReservedQuantityPredicate selects the order items that still hold stock:
// not yet fulfilled from a warehouse and not part of a cancelled order.
// The reserved_products view is defined with the same predicate.
const ReservedQuantityPredicate = `oi.reserved_from IS NULL AND o.status <> 'cancelled'`

type WarehouseRepository interface {
	GetStockCheckTx(ctx context.Context, tx *sqlx.Tx, productID uint64) (*model.StockCheck, error)
	DecrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, warehouse constant.Warehouse, quantity int64) error
	RestoreStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, warehouse constant.Warehouse, quantity int64) error
	GetLevelsForUpdateTx(ctx context.Context, tx *sqlx.Tx, productID uint64) (*model.StockLevels, error)
	SetLevelsTx(ctx context.Context, tx *sqlx.Tx, productID uint64, levels model.StockLevels) error
	GetReservedQuantity(ctx context.Context, productID uint64) (int64, error)
	ListReserved(ctx context.Context) ([]model.ReservedProduct, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewWarehouseRepository(conn *sqlx.DB) WarehouseRepository {
	return &SQL{conn: conn}
}

const (
	lockProductStockQuery = `SELECT id, name, stock_bratislava, stock_ruzomberok, stock_bezo FROM product WHERE id = ? FOR UPDATE`

	reservedQuantityQuery = `SELECT COALESCE(SUM(oi.quantity), 0) FROM order_item oi
JOIN orders o ON o.id = oi.order_id
WHERE oi.product_id = ? AND ` + ReservedQuantityPredicate

	listReservedQuery = `SELECT r.product_id, r.reserved_quantity, p.name, p.price, p.image_url,
p.stock_bratislava, p.stock_ruzomberok, p.stock_bezo
FROM reserved_products r
JOIN product p ON p.id = r.product_id
WHERE r.reserved_quantity > 0
ORDER BY r.reserved_quantity DESC, r.product_id`
)

// GetStockCheckTx locks the product row and reads its reserved quantity with a
// locking read, so concurrent checkouts of one product are serialized.
// It returns nil when the product does not exist.
func (r *SQL) GetStockCheckTx(ctx context.Context, tx *sqlx.Tx, productID uint64) (*model.StockCheck, error) {
	var check model.StockCheck
	if err := tx.QueryRowxContext(ctx, lockProductStockQuery, productID).StructScan(&check); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := tx.GetContext(ctx, &check.ReservedQuantity, reservedQuantityQuery+" FOR SHARE", productID); err != nil {
		return nil, err
	}
	return &check, nil
}

// DecrementStockTx takes quantity out of one warehouse, floored at zero.
func (r *SQL) DecrementStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, warehouse constant.Warehouse, quantity int64) error {
	if !warehouse.Valid() {
		return fmt.Errorf("unknown warehouse %q", warehouse)
	}
	col := warehouse.StockColumn()
	q := fmt.Sprintf("UPDATE product SET %s = GREATEST(CAST(%s AS SIGNED) - ?, 0), updated_at = NOW() WHERE id = ?", col, col)
	_, err := tx.ExecContext(ctx, q, quantity, productID)
	return err
}

func (r *SQL) RestoreStockTx(ctx context.Context, tx *sqlx.Tx, productID uint64, warehouse constant.Warehouse, quantity int64) error {
	if !warehouse.Valid() {
		return fmt.Errorf("unknown warehouse %q", warehouse)
	}
	col := warehouse.StockColumn()
	q := fmt.Sprintf("UPDATE product SET %s = %s + ?, updated_at = NOW() WHERE id = ?", col, col)
	_, err := tx.ExecContext(ctx, q, quantity, productID)
	return err
}

// GetLevelsForUpdateTx returns nil when the product does not exist.
func (r *SQL) GetLevelsForUpdateTx(ctx context.Context, tx *sqlx.Tx, productID uint64) (*model.StockLevels, error) {
	var levels model.StockLevels
	q := "SELECT stock_bratislava, stock_ruzomberok, stock_bezo FROM product WHERE id = ? FOR UPDATE"
	if err := tx.QueryRowxContext(ctx, q, productID).StructScan(&levels); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &levels, nil
}

func (r *SQL) SetLevelsTx(ctx context.Context, tx *sqlx.Tx, productID uint64, levels model.StockLevels) error {
	q := "UPDATE product SET stock_bratislava = ?, stock_ruzomberok = ?, stock_bezo = ?, updated_at = NOW() WHERE id = ?"
	_, err := tx.ExecContext(ctx, q, levels.Bratislava, levels.Ruzomberok, levels.Bezo, productID)
	return err
}

// GetReservedQuantity is the non-locking read used for display.
func (r *SQL) GetReservedQuantity(ctx context.Context, productID uint64) (int64, error) {
	var reserved int64
	if err := r.conn.GetContext(ctx, &reserved, reservedQuantityQuery, productID); err != nil {
		return 0, err
	}
	return reserved, nil
}

func (r *SQL) ListReserved(ctx context.Context) ([]model.ReservedProduct, error) {
	rows, err := r.conn.QueryxContext(ctx, listReservedQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make([]model.ReservedProduct, 0)
	for rows.Next() {
		var rp model.ReservedProduct
		if err := rows.StructScan(&rp); err != nil {
			return nil, err
		}
		rp.AvailableStock = rp.Total() - rp.ReservedQuantity
		if rp.AvailableStock < 0 {
			rp.AvailableStock = 0
		}
		res = append(res, rp)
	}
	return res, rows.Err()
}
