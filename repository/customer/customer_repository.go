package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/yogapit/eshop/model"
)

// ErrCustomerHasOrders is returned by Delete while orders still reference the customer.
var ErrCustomerHasOrders = errors.New("customer has orders")

type SQL struct {
	conn *sqlx.DB
}

type CustomerRepository interface {
	Create(ctx context.Context, data *model.CustomerEntity) (*model.CustomerEntity, error)
	Get(ctx context.Context, filter *model.CustomerFilter) (*model.CustomerEntity, error)
	List(ctx context.Context) ([]model.CustomerEntity, error)
	Update(ctx context.Context, data *model.CustomerEntity) error
	Delete(ctx context.Context, id uint64) error
}

func NewCustomerRepository(conn *sqlx.DB) CustomerRepository {
	return &SQL{conn: conn}
}

const (
	insertCustomerQuery = `INSERT INTO customer (name, email, phone, address, city, zip_code, country, customer_type, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	customerColumns = `id, name, email, phone, address, city, zip_code, country, customer_type, created_at, updated_at`
	getCustomerBase = `SELECT ` + customerColumns + ` FROM customer WHERE true`
	updateCustomer  = `UPDATE customer SET name = ?, email = ?, phone = ?, address = ?, city = ?, zip_code = ?, country = ?,
customer_type = ?, updated_at = NOW() WHERE id = ?`
)

func (s *SQL) Create(ctx context.Context, data *model.CustomerEntity) (*model.CustomerEntity, error) {
	result, err := s.conn.ExecContext(ctx, insertCustomerQuery,
		data.Name, data.Email, data.Phone, data.Address, data.City, data.ZipCode, data.Country, data.CustomerType)
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

// Get returns nil when nothing matches the filter.
func (s *SQL) Get(ctx context.Context, filter *model.CustomerFilter) (*model.CustomerEntity, error) {
	query := getCustomerBase
	args := make([]any, 0, 2)

	if filter.ID != 0 {
		query += " AND id = ?"
		args = append(args, filter.ID)
	}
	if filter.Email != "" {
		query += " AND email = ?"
		args = append(args, filter.Email)
	}
	query += " LIMIT 1"

	var entity model.CustomerEntity
	if err := s.conn.QueryRowxContext(ctx, query, args...).StructScan(&entity); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) List(ctx context.Context) ([]model.CustomerEntity, error) {
	items := make([]model.CustomerEntity, 0)
	if err := s.conn.SelectContext(ctx, &items, getCustomerBase+" ORDER BY created_at DESC, id DESC"); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *SQL) Update(ctx context.Context, data *model.CustomerEntity) error {
	_, err := s.conn.ExecContext(ctx, updateCustomer,
		data.Name, data.Email, data.Phone, data.Address, data.City, data.ZipCode, data.Country, data.CustomerType, data.ID)
	return err
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, "DELETE FROM customer WHERE id = ?", id)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1451 {
		return ErrCustomerHasOrders
	}
	return err
}
