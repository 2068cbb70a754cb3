package customer

import (
	"context"
	goerrors "errors"

	"github.com/yogapit/eshop/cmd/config"
	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
	customerRepo "github.com/yogapit/eshop/repository/customer"
	orderRepo "github.com/yogapit/eshop/repository/order"
	"github.com/yogapit/eshop/utils/errors"
	"github.com/yogapit/eshop/utils/logger"
	validatorx "github.com/yogapit/eshop/utils/validator"
	"go.uber.org/zap"
)

type CustomerApp interface {
	ListCustomers(ctx context.Context) ([]model.CustomerEntity, error)
	GetCustomer(ctx context.Context, id uint64) (*model.CustomerEntity, error)
	CreateCustomer(ctx context.Context, req *model.CustomerRequest) (*model.CustomerEntity, error)
	UpdateCustomer(ctx context.Context, id uint64, req *model.CustomerRequest) (*model.CustomerEntity, error)
	DeleteCustomer(ctx context.Context, id uint64) error
	ListCustomerOrders(ctx context.Context, id uint64) ([]model.OrderListItem, error)
}

type customerAppImpl struct {
	config       *config.Config
	customerRepo customerRepo.CustomerRepository
	orderRepo    orderRepo.OrderRepository
}

func NewCustomerApp(config *config.Config, customerRepo customerRepo.CustomerRepository, orderRepo orderRepo.OrderRepository) CustomerApp {
	return &customerAppImpl{
		config:       config,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

func (s *customerAppImpl) ListCustomers(ctx context.Context) ([]model.CustomerEntity, error) {
	items, err := s.customerRepo.List(ctx)
	if err != nil {
		logger.Error("[ListCustomers] error customerRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to load customers")
	}
	return items, nil
}

func (s *customerAppImpl) GetCustomer(ctx context.Context, id uint64) (*model.CustomerEntity, error) {
	customer, err := s.customerRepo.Get(ctx, &model.CustomerFilter{ID: id})
	if err != nil {
		logger.Error("[GetCustomer] error customerRepo.Get", zap.Uint64("customer_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if customer == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return customer, nil
}

func (s *customerAppImpl) CreateCustomer(ctx context.Context, req *model.CustomerRequest) (*model.CustomerEntity, error) {
	entity, err := s.toEntity(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.customerRepo.Get(ctx, &model.CustomerFilter{Email: entity.Email})
	if err != nil {
		logger.Error("[CreateCustomer] error customerRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing != nil {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidCustomer, "email already registered")
	}

	created, err := s.customerRepo.Create(ctx, entity)
	if err != nil {
		logger.Error("[CreateCustomer] error customerRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to create customer")
	}
	return created, nil
}

func (s *customerAppImpl) UpdateCustomer(ctx context.Context, id uint64, req *model.CustomerRequest) (*model.CustomerEntity, error) {
	entity, err := s.toEntity(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if entity.Email != existing.Email {
		other, err := s.customerRepo.Get(ctx, &model.CustomerFilter{Email: entity.Email})
		if err != nil {
			logger.Error("[UpdateCustomer] error customerRepo.Get", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if other != nil {
			return nil, errors.SetCustomErrorf(constant.ErrInvalidCustomer, "email already registered")
		}
	}

	entity.ID = id
	entity.CreatedAt = existing.CreatedAt
	if err := s.customerRepo.Update(ctx, entity); err != nil {
		logger.Error("[UpdateCustomer] error customerRepo.Update", zap.Uint64("customer_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to update customer")
	}
	return entity, nil
}

func (s *customerAppImpl) DeleteCustomer(ctx context.Context, id uint64) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if goerrors.Is(err, customerRepo.ErrCustomerHasOrders) {
			return errors.SetCustomErrorf(constant.ErrInvalidRequest, "customer has orders")
		}
		logger.Error("[DeleteCustomer] error customerRepo.Delete", zap.Uint64("customer_id", id), zap.String("error", err.Error()))
		return errors.SetCustomErrorf(constant.ErrInternal, "failed to delete customer")
	}
	return nil
}

// ListCustomerOrders returns the customer's orders, newest first.
func (s *customerAppImpl) ListCustomerOrders(ctx context.Context, id uint64) ([]model.OrderListItem, error) {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.List(ctx, &model.OrderFilter{CustomerID: id})
	if err != nil {
		logger.Error("[ListCustomerOrders] error orderRepo.List", zap.Uint64("customer_id", id), zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to load orders")
	}
	return orders, nil
}

func (s *customerAppImpl) toEntity(req *model.CustomerRequest) (*model.CustomerEntity, error) {
	c := req.CustomerData
	validatorx.SanitizeCustomer(&c)
	switch {
	case !validatorx.ValidateName(c.Name):
		return nil, errors.SetCustomErrorf(constant.ErrInvalidCustomer, "invalid name")
	case !validatorx.ValidateEmail(c.Email):
		return nil, errors.SetCustomErrorf(constant.ErrInvalidCustomer, "invalid email")
	case c.Phone != "" && !validatorx.ValidatePhone(c.Phone):
		return nil, errors.SetCustomErrorf(constant.ErrInvalidCustomer, "invalid phone")
	case c.Address != "" && !validatorx.ValidateAddress(c.Address):
		return nil, errors.SetCustomErrorf(constant.ErrInvalidCustomer, "invalid address")
	case c.ZipCode != "" && !validatorx.ValidateZipCode(c.ZipCode):
		return nil, errors.SetCustomErrorf(constant.ErrInvalidCustomer, "invalid zip code")
	}

	customerType := req.CustomerType
	if customerType == "" {
		customerType = constant.CustomerTypeRegular
	}
	if !customerType.Valid() {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidCustomer, "unknown customer type %q", req.CustomerType)
	}
	country := validatorx.SanitizeString(c.Country, 100)
	if country == "" {
		country = s.config.Shop.DefaultCountry
	}

	return &model.CustomerEntity{
		Name:         validatorx.SanitizeString(c.Name, 100),
		Email:        validatorx.SanitizeString(c.Email, 254),
		Phone:        validatorx.SanitizeString(c.Phone, 20),
		Address:      validatorx.SanitizeString(c.Address, 200),
		City:         validatorx.SanitizeString(c.City, 100),
		ZipCode:      validatorx.SanitizeString(c.ZipCode, 10),
		Country:      country,
		CustomerType: customerType,
	}, nil
}
