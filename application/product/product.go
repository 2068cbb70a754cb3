package product

import (
	"context"
	goerrors "errors"
	"time"

	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
	productRepo "github.com/yogapit/eshop/repository/product"
	warehouseRepo "github.com/yogapit/eshop/repository/warehouse"
	"github.com/yogapit/eshop/utils/errors"
	"github.com/yogapit/eshop/utils/logger"
	validatorx "github.com/yogapit/eshop/utils/validator"
	"go.uber.org/zap"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100

	nameMaxLength        = 200
	descriptionMaxLength = 2000
)

type ProductApp interface {
	ListProducts(ctx context.Context, filter *model.ProductFilter) (*model.ProductListResponse, error)
	GetProduct(ctx context.Context, id uint64) (*model.ProductListItem, error)
	GetAvailability(ctx context.Context, id uint64) (*model.Availability, error)
	CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.ProductEntity, error)
	UpdateProduct(ctx context.Context, id uint64, req *model.ProductRequest) (*model.ProductListItem, error)
	DeleteProduct(ctx context.Context, id uint64) error
	UpdateLastCheck(ctx context.Context, id uint64, req *model.LastCheckRequest) error
}

type productAppImpl struct {
	productRepo   productRepo.ProductRepository
	warehouseRepo warehouseRepo.WarehouseRepository
}

func NewProductApp(productRepo productRepo.ProductRepository, warehouseRepo warehouseRepo.WarehouseRepository) ProductApp {
	return &productAppImpl{productRepo: productRepo, warehouseRepo: warehouseRepo}
}

func (s *productAppImpl) ListProducts(ctx context.Context, filter *model.ProductFilter) (*model.ProductListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = defaultPerPage
	}
	if filter.PerPage > maxPerPage {
		filter.PerPage = maxPerPage
	}
	filter.Search = validatorx.SanitizeString(filter.Search, 100)

	items, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListProducts] error productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to load products")
	}
	if items == nil {
		items = []model.ProductListItem{}
	}

	return &model.ProductListResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}, nil
}

func (s *productAppImpl) GetProduct(ctx context.Context, id uint64) (*model.ProductListItem, error) {
	result, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] error productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if result == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	return result, nil
}

// GetAvailability is total stock minus what open orders hold, never negative.
func (s *productAppImpl) GetAvailability(ctx context.Context, id uint64) (*model.Availability, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	reserved, err := s.warehouseRepo.GetReservedQuantity(ctx, id)
	if err != nil {
		logger.Error("[GetAvailability] error warehouseRepo.GetReservedQuantity", zap.Uint64("product_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to check availability")
	}

	total := product.Levels().Total()
	available := total - reserved
	if available < 0 {
		available = 0
	}
	return &model.Availability{
		ProductID:        id,
		TotalStock:       total,
		ReservedQuantity: reserved,
		AvailableStock:   available,
	}, nil
}

func (s *productAppImpl) CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.ProductEntity, error) {
	entity, err := toEntity(req)
	if err != nil {
		return nil, err
	}

	created, err := s.productRepo.Create(ctx, entity)
	if err != nil {
		logger.Error("[CreateProduct] error productRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to create product")
	}
	return created, nil
}

func (s *productAppImpl) UpdateProduct(ctx context.Context, id uint64, req *model.ProductRequest) (*model.ProductListItem, error) {
	entity, err := toEntity(req)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}

	entity.ID = id
	if err := s.productRepo.Update(ctx, entity); err != nil {
		logger.Error("[UpdateProduct] error productRepo.Update", zap.Uint64("product_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to update product")
	}
	return s.GetProduct(ctx, id)
}

func (s *productAppImpl) DeleteProduct(ctx context.Context, id uint64) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if goerrors.Is(err, productRepo.ErrProductInUse) {
			return errors.SetCustomErrorf(constant.ErrInvalidRequest, "product is part of existing orders")
		}
		logger.Error("[DeleteProduct] error productRepo.Delete", zap.Uint64("product_id", id), zap.String("error", err.Error()))
		return errors.SetCustomErrorf(constant.ErrInternal, "failed to delete product")
	}
	return nil
}

func (s *productAppImpl) UpdateLastCheck(ctx context.Context, id uint64, req *model.LastCheckRequest) error {
	if req.LastCheckDate.IsZero() {
		return errors.SetCustomErrorf(constant.ErrInvalidRequest, "last_check_date is required")
	}
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}

	if err := s.productRepo.UpdateLastCheck(ctx, id, req.LastCheckDate.UTC().Truncate(time.Second)); err != nil {
		logger.Error("[UpdateLastCheck] error productRepo.UpdateLastCheck", zap.Uint64("product_id", id), zap.String("error", err.Error()))
		return errors.SetCustomErrorf(constant.ErrInternal, "failed to update last check date")
	}
	return nil
}

// toEntity validates an admin product form and sanitizes its free text.
func toEntity(req *model.ProductRequest) (*model.ProductEntity, error) {
	if err := validatorx.ValidateStruct(req); err != nil {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidProduct, "invalid field %s", validatorx.FirstField(err))
	}

	name := validatorx.SanitizeString(req.Name, nameMaxLength)
	if name == "" {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidProduct, "name is required")
	}
	if !validatorx.ValidatePrice(req.Price) {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidProduct, "price must be between 0 and 10000")
	}

	status := req.Status
	if status == "" {
		status = constant.ProductStatusActive
	}
	if !status.Valid() {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidProduct, "unknown status %q", req.Status)
	}
	language := req.Language
	if language == "" {
		language = constant.LanguageSK
	}
	if !language.Valid() {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidProduct, "unknown language %q", req.Language)
	}

	entity := &model.ProductEntity{
		Name:            name,
		Price:           req.Price,
		Status:          status,
		StockBratislava: req.StockBratislava,
		StockRuzomberok: req.StockRuzomberok,
		StockBezo:       req.StockBezo,
		Language:        language,
		LastCheckDate:   req.LastCheckDate,
		CategoryID:      req.CategoryID,
		IsExclusive:     req.IsExclusive,
		WeightGrams:     req.WeightGrams,
	}
	if description := validatorx.SanitizeString(req.Description, descriptionMaxLength); description != "" {
		entity.Description = &description
	}
	if req.ImageURL != "" {
		entity.ImageURL = &req.ImageURL
	}
	return entity, nil
}
