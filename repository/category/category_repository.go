package category

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/yogapit/eshop/model"
)

type SQL struct {
	conn *sqlx.DB
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.CategoryEntity, error)
	GetByID(ctx context.Context, id uint64) (*model.CategoryEntity, error)
	Create(ctx context.Context, data *model.CategoryEntity) (*model.CategoryEntity, error)
	Update(ctx context.Context, data *model.CategoryEntity) error
	Delete(ctx context.Context, id uint64) error
}

func NewCategoryRepository(conn *sqlx.DB) CategoryRepository {
	return &SQL{conn: conn}
}

const categoryColumns = `id, name, description, is_exclusive, is_custom, created_at`

func (s *SQL) List(ctx context.Context) ([]model.CategoryEntity, error) {
	items := make([]model.CategoryEntity, 0)
	if err := s.conn.SelectContext(ctx, &items, "SELECT "+categoryColumns+" FROM category ORDER BY name"); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID returns nil when the category does not exist.
func (s *SQL) GetByID(ctx context.Context, id uint64) (*model.CategoryEntity, error) {
	var entity model.CategoryEntity
	if err := s.conn.GetContext(ctx, &entity, "SELECT "+categoryColumns+" FROM category WHERE id = ?", id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

func (s *SQL) Create(ctx context.Context, data *model.CategoryEntity) (*model.CategoryEntity, error) {
	result, err := s.conn.ExecContext(ctx,
		"INSERT INTO category (name, description, is_exclusive, is_custom, created_at) VALUES (?, ?, ?, ?, NOW())",
		data.Name, data.Description, data.IsExclusive, data.IsCustom)
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

func (s *SQL) Update(ctx context.Context, data *model.CategoryEntity) error {
	_, err := s.conn.ExecContext(ctx,
		"UPDATE category SET name = ?, description = ?, is_exclusive = ?, is_custom = ? WHERE id = ?",
		data.Name, data.Description, data.IsExclusive, data.IsCustom, data.ID)
	return err
}

func (s *SQL) Delete(ctx context.Context, id uint64) error {
	_, err := s.conn.ExecContext(ctx, "DELETE FROM category WHERE id = ?", id)
	return err
}
