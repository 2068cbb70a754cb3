package order

import (
	"context"

	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
	"github.com/yogapit/eshop/utils/errors"
	"github.com/yogapit/eshop/utils/logger"
	validatorx "github.com/yogapit/eshop/utils/validator"
	"go.uber.org/zap"
)

func (s *orderAppImpl) ListOrders(ctx context.Context, filter *model.OrderFilter) ([]model.OrderListItem, error) {
	items, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListOrders] error orderRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to load orders")
	}
	return items, nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, orderID uint64) (*model.OrderDetail, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] error orderRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to load order")
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	items, err := s.orderRepo.GetItemDetails(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] error orderRepo.GetItemDetails", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to load order items")
	}

	return &model.OrderDetail{OrderListItem: *order, Items: items}, nil
}

// UpdateOrder edits order fields. Shipping statuses need warehouse selections
// and go through UpdateOrderStatus instead.
func (s *orderAppImpl) UpdateOrder(ctx context.Context, orderID uint64, req *model.UpdateOrderRequest) (*model.OrderListItem, error) {
	if req.Empty() {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "nothing to update")
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, errors.SetCustomErrorf(constant.ErrInvalidOrderStatus, "unknown status %q", *req.Status)
		}
		if req.Status.Fulfills() {
			return nil, errors.SetCustomErrorf(constant.ErrInvalidOrderStatus, "status %q requires warehouse selection", *req.Status)
		}
	}
	if req.DeliveryMethod != nil && !req.DeliveryMethod.Valid() {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "unknown delivery method %q", *req.DeliveryMethod)
	}
	if req.Notes != nil {
		if !validatorx.ValidateOrderNotes(*req.Notes) {
			return nil, errors.SetCustomErrorf(constant.ErrInvalidOrderNotes, "notes must be at most %d characters", constant.OrderNotesMaxLength)
		}
		notes := validatorx.SanitizeString(*req.Notes, constant.OrderNotesMaxLength)
		req.Notes = &notes
	}
	if req.DeliveryAddress != nil {
		address := validatorx.SanitizeString(*req.DeliveryAddress, 0)
		req.DeliveryAddress = &address
	}
	if req.TotalAmount != nil && req.TotalAmount.IsNegative() {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "total amount must not be negative")
	}

	existing, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("[UpdateOrder] error orderRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.orderRepo.Update(ctx, orderID, req); err != nil {
		logger.Error("[UpdateOrder] error orderRepo.Update", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to update order")
	}

	updated, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil || updated == nil {
		logger.Error("[UpdateOrder] reload order", zap.Error(err))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return updated, nil
}
