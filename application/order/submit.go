package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yogapit/eshop/application/delivery"
	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
	"github.com/yogapit/eshop/utils/errors"
	"github.com/yogapit/eshop/utils/logger"
	validatorx "github.com/yogapit/eshop/utils/validator"
	"go.uber.org/zap"
)

// SubmitOrder is the storefront checkout: it validates the customer and the
// cart, upserts the customer by e-mail and creates the order.
func (s *orderAppImpl) SubmitOrder(ctx context.Context, req *model.SubmitOrderRequest) (*model.SubmitOrderResponse, error) {
	if err := validateCustomerData(&req.Customer); err != nil {
		return nil, err
	}
	if !req.DeliveryMethod.Valid() {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "unknown delivery method %q", req.DeliveryMethod)
	}

	lines, err := s.loadCart(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	// duplicate order protection
	since := time.Now().Add(-s.config.Shop.RecentOrderWindow)
	recent, err := s.orderRepo.CountRecentByEmail(ctx, req.Customer.Email, since)
	if err != nil {
		logger.Error("[SubmitOrder] count recent orders", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to validate order")
	}
	if recent >= constant.MaxRecentOrders {
		logger.Security("too many recent orders", zap.String("email", req.Customer.Email), zap.Int64("recent", recent))
		return nil, errors.SetCustomError(constant.ErrTooManyRecentOrders)
	}

	customer, err := s.upsertCustomer(ctx, &req.Customer)
	if err != nil {
		return nil, err
	}

	address := constant.PickupAddress
	if req.DeliveryMethod != constant.DeliveryMethodPersonal {
		address = fmt.Sprintf("%s, %s, %s, %s", customer.Address, customer.City, customer.ZipCode, customer.Country)
	}

	order, err := s.CreateOrder(ctx, &model.CreateOrderRequest{
		CustomerID:      customer.ID,
		Items:           lines,
		DeliveryMethod:  req.DeliveryMethod,
		DeliveryAddress: address,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, err
	}

	deliveryPrice := delivery.QuotePrice(req.DeliveryMethod, customer.Country, delivery.CartWeightKg(lines)).Price

	logger.Security("order created",
		zap.Uint64("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("customer_email", customer.Email),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
		zap.Int("item_count", len(lines)),
	)

	return &model.SubmitOrderResponse{
		Order:         order,
		Customer:      customer,
		DeliveryPrice: deliveryPrice,
		GrandTotal:    order.TotalAmount.Add(deliveryPrice),
	}, nil
}

func validateCustomerData(c *model.CustomerData) error {
	validatorx.SanitizeCustomer(c)

	switch {
	case !validatorx.ValidateName(c.Name):
		return errors.SetCustomErrorf(constant.ErrInvalidCustomer, "invalid name")
	case !validatorx.ValidateEmail(c.Email):
		return errors.SetCustomErrorf(constant.ErrInvalidCustomer, "invalid email")
	case !validatorx.ValidatePhone(c.Phone):
		return errors.SetCustomErrorf(constant.ErrInvalidCustomer, "invalid phone")
	case c.Address != "" && !validatorx.ValidateAddress(c.Address):
		return errors.SetCustomErrorf(constant.ErrInvalidCustomer, "invalid address")
	case c.City != "" && !validatorx.ValidateName(c.City):
		return errors.SetCustomErrorf(constant.ErrInvalidCustomer, "invalid city")
	case c.ZipCode != "" && !validatorx.ValidateZipCode(c.ZipCode):
		return errors.SetCustomErrorf(constant.ErrInvalidCustomer, "invalid zip code")
	}
	return nil
}

// loadCart resolves cart lines against the catalogue; prices always come from
// the product rows, never from the client.
func (s *orderAppImpl) loadCart(ctx context.Context, items []model.OrderItemRequest) ([]model.CartLine, error) {
	if len(items) == 0 {
		return nil, errors.SetCustomError(constant.ErrCartEmpty)
	}
	if len(items) > constant.MaxCartItems {
		return nil, errors.SetCustomErrorf(constant.ErrCartTooManyItems, "max %d items", constant.MaxCartItems)
	}

	lines := make([]model.CartLine, 0, len(items))
	var totalQuantity int64
	totalAmount := decimal.Zero
	for _, item := range items {
		if item.ProductID == 0 {
			return nil, errors.SetCustomErrorf(constant.ErrInvalidProduct, "invalid cart item")
		}
		if !validatorx.ValidateQuantity(int(item.Quantity)) {
			return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "invalid quantity for product %d", item.ProductID)
		}

		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			logger.Error("[SubmitOrder] get product", zap.Uint64("product_id", item.ProductID), zap.String("error", err.Error()))
			return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to load product")
		}
		if product == nil || product.Status != constant.ProductStatusActive {
			return nil, errors.SetCustomErrorf(constant.ErrInvalidProduct, "product %d is not available", item.ProductID)
		}
		if !validatorx.ValidatePrice(product.Price) {
			return nil, errors.SetCustomErrorf(constant.ErrInvalidProduct, "invalid price of %s", product.Name)
		}

		line := model.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.Price,
		}
		if product.WeightGrams != nil {
			line.WeightGrams = *product.WeightGrams
		}
		lines = append(lines, line)

		totalQuantity += item.Quantity
		totalAmount = totalAmount.Add(product.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}

	if totalQuantity > constant.MaxOrderQuantity {
		return nil, errors.SetCustomErrorf(constant.ErrOrderQuantityLimit, "max %d pieces", constant.MaxOrderQuantity)
	}
	if totalAmount.GreaterThan(decimal.NewFromInt(constant.MaxOrderValue)) {
		return nil, errors.SetCustomErrorf(constant.ErrOrderValueLimit, "max %d €", constant.MaxOrderValue)
	}
	return lines, nil
}

func (s *orderAppImpl) upsertCustomer(ctx context.Context, data *model.CustomerData) (*model.CustomerEntity, error) {
	country := data.Country
	if country == "" {
		country = s.config.Shop.DefaultCountry
	}

	existing, err := s.customerRepo.Get(ctx, &model.CustomerFilter{Email: data.Email})
	if err != nil {
		logger.Error("[SubmitOrder] get customer", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to load customer")
	}

	if existing != nil {
		existing.Name = data.Name
		existing.Phone = data.Phone
		existing.Address = data.Address
		existing.City = data.City
		existing.ZipCode = data.ZipCode
		existing.Country = country
		if err := s.customerRepo.Update(ctx, existing); err != nil {
			logger.Error("[SubmitOrder] update customer", zap.Uint64("customer_id", existing.ID), zap.String("error", err.Error()))
			return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to update customer")
		}
		return existing, nil
	}

	created, err := s.customerRepo.Create(ctx, &model.CustomerEntity{
		Name:         data.Name,
		Email:        data.Email,
		Phone:        data.Phone,
		Address:      data.Address,
		City:         data.City,
		ZipCode:      data.ZipCode,
		Country:      country,
		CustomerType: constant.CustomerTypeRegular,
	})
	if err != nil {
		logger.Error("[SubmitOrder] create customer", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to create customer")
	}
	return created, nil
}
