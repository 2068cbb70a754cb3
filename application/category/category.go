package category

import (
	"context"

	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
	categoryRepo "github.com/yogapit/eshop/repository/category"
	"github.com/yogapit/eshop/utils/errors"
	"github.com/yogapit/eshop/utils/logger"
	validatorx "github.com/yogapit/eshop/utils/validator"
	"go.uber.org/zap"
)

type CategoryApp interface {
	ListCategories(ctx context.Context) ([]model.CategoryEntity, error)
	CreateCategory(ctx context.Context, req *model.CategoryRequest) (*model.CategoryEntity, error)
	UpdateCategory(ctx context.Context, id uint64, req *model.CategoryRequest) (*model.CategoryEntity, error)
	DeleteCategory(ctx context.Context, id uint64) error
}

type categoryAppImpl struct {
	categoryRepo categoryRepo.CategoryRepository
}

func NewCategoryApp(categoryRepo categoryRepo.CategoryRepository) CategoryApp {
	return &categoryAppImpl{categoryRepo: categoryRepo}
}

func (s *categoryAppImpl) ListCategories(ctx context.Context) ([]model.CategoryEntity, error) {
	items, err := s.categoryRepo.List(ctx)
	if err != nil {
		logger.Error("[ListCategories] error categoryRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to load categories")
	}
	return items, nil
}

// CreateCategory always creates a custom category.
func (s *categoryAppImpl) CreateCategory(ctx context.Context, req *model.CategoryRequest) (*model.CategoryEntity, error) {
	entity, err := toEntity(req)
	if err != nil {
		return nil, err
	}
	entity.IsCustom = true

	created, err := s.categoryRepo.Create(ctx, entity)
	if err != nil {
		logger.Error("[CreateCategory] error categoryRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to create category")
	}
	return created, nil
}

func (s *categoryAppImpl) UpdateCategory(ctx context.Context, id uint64, req *model.CategoryRequest) (*model.CategoryEntity, error) {
	entity, err := toEntity(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	entity.ID = id
	entity.IsCustom = req.IsCustom
	entity.CreatedAt = existing.CreatedAt
	if err := s.categoryRepo.Update(ctx, entity); err != nil {
		logger.Error("[UpdateCategory] error categoryRepo.Update", zap.Uint64("category_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to update category")
	}
	return entity, nil
}

// DeleteCategory removes custom categories only.
func (s *categoryAppImpl) DeleteCategory(ctx context.Context, id uint64) error {
	existing, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !existing.IsCustom {
		return errors.SetCustomError(constant.ErrCategoryNotDeletable)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		logger.Error("[DeleteCategory] error categoryRepo.Delete", zap.Uint64("category_id", id), zap.String("error", err.Error()))
		return errors.SetCustomErrorf(constant.ErrInternal, "failed to delete category")
	}
	return nil
}

func (s *categoryAppImpl) get(ctx context.Context, id uint64) (*model.CategoryEntity, error) {
	existing, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[Category] error categoryRepo.GetByID", zap.Uint64("category_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return existing, nil
}

func toEntity(req *model.CategoryRequest) (*model.CategoryEntity, error) {
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "invalid field %s", validatorx.FirstField(err))
	}
	name := validatorx.SanitizeString(req.Name, 100)
	if name == "" {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "name is required")
	}

	entity := &model.CategoryEntity{Name: name, IsExclusive: req.IsExclusive}
	if req.Description != nil {
		if description := validatorx.SanitizeString(*req.Description, 500); description != "" {
			entity.Description = &description
		}
	}
	return entity, nil
}
