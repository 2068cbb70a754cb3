package product

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/yogapit/eshop/model"
)

// ErrProductInUse is returned by Delete while order items still reference the product.
var ErrProductInUse = errors.New("product is referenced by order items")

// ER_ROW_IS_REFERENCED_2
const mysqlErrRowIsReferenced = 1451

type SQL struct {
	conn *sqlx.DB
}

type ProductRepository interface {
	List(ctx context.Context, filter *model.ProductFilter) ([]model.ProductListItem, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.ProductListItem, error)
	Create(ctx context.Context, data *model.ProductEntity) (*model.ProductEntity, error)
	Update(ctx context.Context, data *model.ProductEntity) error
	Delete(ctx context.Context, id uint64) error
	UpdateLastCheck(ctx context.Context, id uint64, checkedAt time.Time) error
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const (
	productColumns = `p.id, p.name, p.description, p.price, p.status, p.stock_bratislava, p.stock_ruzomberok, p.stock_bezo,
p.language, p.image_url, p.last_check_date, p.category_id, p.is_exclusive, p.weight_grams, p.created_at, p.updated_at`

	availableExpr = `GREATEST(CAST(p.stock_bratislava + p.stock_ruzomberok + p.stock_bezo AS SIGNED) - COALESCE(r.reserved_quantity, 0), 0)`

	listProductsBase = `SELECT ` + productColumns + `, c.name AS category_name,
COALESCE(r.reserved_quantity, 0) AS reserved_quantity, ` + availableExpr + ` AS available_stock
FROM product p
LEFT JOIN category c ON c.id = p.category_id
LEFT JOIN reserved_products r ON r.product_id = p.id
WHERE true`

	countProductsBase = `SELECT COUNT(*)
FROM product p
LEFT JOIN reserved_products r ON r.product_id = p.id
WHERE true`

	insertProductQuery = `INSERT INTO product (name, description, price, status, stock_bratislava, stock_ruzomberok, stock_bezo,
language, image_url, last_check_date, category_id, is_exclusive, weight_grams, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	updateProductQuery = `UPDATE product SET name = ?, description = ?, price = ?, status = ?, stock_bratislava = ?, stock_ruzomberok = ?,
stock_bezo = ?, language = ?, image_url = ?, last_check_date = ?, category_id = ?, is_exclusive = ?, weight_grams = ?, updated_at = NOW()
WHERE id = ?`
)

func filterClause(filter *model.ProductFilter) (string, []any) {
	clause := ""
	args := make([]any, 0, 3)
	if filter.CategoryID != 0 {
		clause += " AND p.category_id = ?"
		args = append(args, filter.CategoryID)
	}
	if filter.ExclusiveOnly {
		clause += " AND p.is_exclusive = true"
	}
	if filter.AvailableOnly {
		clause += " AND p.status = 'active' AND " + availableExpr + " > 0"
	}
	if filter.Search != "" {
		clause += " AND p.name LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}
	return clause, args
}

func (s *SQL) List(ctx context.Context, filter *model.ProductFilter) ([]model.ProductListItem, int64, error) {
	clause, args := filterClause(filter)
	offset := (filter.Page - 1) * filter.PerPage

	query := listProductsBase + clause + " ORDER BY p.name, p.id LIMIT ? OFFSET ?"
	rows, err := s.conn.QueryxContext(ctx, query, append(args, filter.PerPage, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]model.ProductListItem, 0)
	for rows.Next() {
		var it model.ProductListItem
		if err := rows.StructScan(&it); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// get total count
	var total int64
	if err := s.conn.GetContext(ctx, &total, countProductsBase+clause, args...); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// GetByID returns nil when the product does not exist.
func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.ProductListItem, error) {
	var detail model.ProductListItem
	if err := s.conn.QueryRowxContext(ctx, listProductsBase+" AND p.id = ?", id).StructScan(&detail); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &detail, nil
}

func (s *SQL) Create(ctx context.Context, data *model.ProductEntity) (*model.ProductEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertProductQuery,
		data.Name, data.Description, data.Price, data.Status, data.StockBratislava, data.StockRuzomberok, data.StockBezo,
		data.Language, data.ImageURL, data.LastCheckDate, data.CategoryID, data.IsExclusive, data.WeightGrams)
	if err != nil {
		return nil, err
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	data.ID = uint64(lastID)
	return data, nil
}

func (s *SQL) Update(ctx context.Context, data *model.ProductEntity) error {
	_, err := s.conn.ExecContext(ctx, updateProductQuery,
		data.Name, data.Description, data.Price, data.Status, data.StockBratislava, data.StockRuzomberok, data.StockBezo,
		data.Language, data.ImageURL, data.LastCheckDate, data.CategoryID, data.IsExclusive, data.WeightGrams, data.ID)
	return err
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, "DELETE FROM product WHERE id = ?", id)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlErrRowIsReferenced {
		return ErrProductInUse
	}
	return err
}

func (s *SQL) UpdateLastCheck(ctx context.Context, id uint64, checkedAt time.Time) error {
	_, err := s.conn.ExecContext(ctx, "UPDATE product SET last_check_date = ?, updated_at = NOW() WHERE id = ?", checkedAt, id)
	return err
}
