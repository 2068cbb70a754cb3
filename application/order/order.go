package order

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/yogapit/eshop/cmd/config"
	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
	customerrepo "github.com/yogapit/eshop/repository/customer"
	orderrepo "github.com/yogapit/eshop/repository/order"
	productrepo "github.com/yogapit/eshop/repository/product"
	txrepo "github.com/yogapit/eshop/repository/tx"
	warehouserepo "github.com/yogapit/eshop/repository/warehouse"
	"github.com/yogapit/eshop/thirdparty/rabbitmq"
	"github.com/yogapit/eshop/utils/errors"
	"github.com/yogapit/eshop/utils/logger"
	validatorx "github.com/yogapit/eshop/utils/validator"
	"go.uber.org/zap"
)

type OrderApp interface {
	CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.OrderEntity, error)
	SubmitOrder(ctx context.Context, req *model.SubmitOrderRequest) (*model.SubmitOrderResponse, error)
	GetOrder(ctx context.Context, orderID uint64) (*model.OrderDetail, error)
	ListOrders(ctx context.Context, filter *model.OrderFilter) ([]model.OrderListItem, error)
	UpdateOrder(ctx context.Context, orderID uint64, req *model.UpdateOrderRequest) (*model.OrderListItem, error)
	UpdateOrderStatus(ctx context.Context, orderID uint64, req *model.UpdateOrderStatusRequest) error
	DeleteOrder(ctx context.Context, orderID uint64) error
}

type orderAppImpl struct {
	config        *config.Config
	txRepo        txrepo.TxRepository
	orderRepo     orderrepo.OrderRepository
	warehouseRepo warehouserepo.WarehouseRepository
	productRepo   productrepo.ProductRepository
	customerRepo  customerrepo.CustomerRepository
	publisher     rabbitmq.EventPublisher
}

func NewOrderApp(config *config.Config, txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, warehouseRepo warehouserepo.WarehouseRepository,
	productRepo productrepo.ProductRepository, customerRepo customerrepo.CustomerRepository, publisher rabbitmq.EventPublisher) OrderApp {
	return &orderAppImpl{
		config:        config,
		txRepo:        txRepo,
		orderRepo:     orderRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		publisher:     publisher,
	}
}

// CreateOrder checks availability and inserts the order with its items in one
// transaction. Stock is not touched: unfulfilled items are the reservation.
func (s *orderAppImpl) CreateOrder(ctx context.Context, req *model.CreateOrderRequest) (*model.OrderEntity, error) {
	if !validatorx.ValidateOrderNotes(req.Notes) {
		return nil, errors.SetCustomErrorf(constant.ErrInvalidOrderNotes, "notes must be at most %d characters", constant.OrderNotesMaxLength)
	}
	notes := validatorx.SanitizeString(req.Notes, constant.OrderNotesMaxLength)

	if len(req.Items) == 0 {
		return nil, errors.SetCustomError(constant.ErrCartEmpty)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateOrder] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	year := time.Now().Format("2006")
	last, err := s.orderRepo.LastOrderNumberTx(ctx, tx, year)
	if err != nil {
		logger.Error("[CreateOrder] last order number", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to generate order number")
	}
	orderNumber := NextOrderNumber(year, last)

	total := decimal.Zero
	needed := make(map[uint64]int64, len(req.Items))
	productIDs := make([]uint64, 0, len(req.Items))
	for _, item := range req.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
		if _, ok := needed[item.ProductID]; !ok {
			productIDs = append(productIDs, item.ProductID)
		}
		needed[item.ProductID] += item.Quantity
	}

	// validate stock for each product
	for _, productID := range productIDs {
		check, err := s.warehouseRepo.GetStockCheckTx(ctx, tx, productID)
		if err != nil {
			logger.Error("[CreateOrder] get stock check", zap.Uint64("product_id", productID), zap.String("error", err.Error()))
			return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to check availability")
		}
		if check == nil {
			return nil, errors.SetCustomErrorf(constant.ErrInvalidProduct, "product %d does not exist", productID)
		}
		if available := check.Available(); available < needed[productID] {
			logger.Info("[CreateOrder] insufficient stock", zap.Uint64("product_id", productID), zap.Int64("need", needed[productID]), zap.Int64("available", available))
			return nil, errors.SetCustomErrorf(constant.ErrInsufficientStock, "not enough stock for %s, available: %d", check.Name, available)
		}
	}

	entity := &model.OrderEntity{
		CustomerID:      req.CustomerID,
		OrderNumber:     orderNumber,
		Status:          constant.OrderStatusNew,
		DeliveryMethod:  req.DeliveryMethod,
		DeliveryAddress: req.DeliveryAddress,
		TotalAmount:     total,
	}
	if notes != "" {
		entity.Notes = &notes
	}

	// insert order
	orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, &model.InsertOrderTxItem{
		CustomerID:      entity.CustomerID,
		OrderNumber:     entity.OrderNumber,
		Status:          entity.Status,
		DeliveryMethod:  entity.DeliveryMethod,
		DeliveryAddress: entity.DeliveryAddress,
		TotalAmount:     entity.TotalAmount,
		Notes:           entity.Notes,
	})
	if err != nil {
		logger.Error("[CreateOrder] insert order", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to create order")
	}
	entity.ID = orderID

	// insert items
	if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderID, req.Items); err != nil {
		logger.Error("[CreateOrder] insert items", zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to create order items")
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateOrder] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	now := time.Now()
	entity.CreatedAt, entity.UpdatedAt = now, now

	s.publish(ctx, rabbitmq.OrderEvent{
		Type:        rabbitmq.EventOrderCreated,
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Status:      string(entity.Status),
		TotalAmount: &total,
		OccurredAt:  now,
	})

	return entity, nil
}

// UpdateOrderStatus moves an order to a new status. Entering shipped or
// delivered fulfills every item that has no warehouse yet from the warehouse
// selected for its product; items fulfilled earlier are left untouched.
func (s *orderAppImpl) UpdateOrderStatus(ctx context.Context, orderID uint64, req *model.UpdateOrderStatusRequest) error {
	if !req.Status.Valid() {
		return errors.SetCustomErrorf(constant.ErrInvalidOrderStatus, "unknown status %q", req.Status)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[UpdateOrderStatus] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetOrderTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[UpdateOrderStatus] get order", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if req.Status.Fulfills() {
		if err := s.fulfillTx(ctx, tx, orderID, req.WarehouseSelections); err != nil {
			return err
		}
	}

	if err := s.orderRepo.UpdateOrderStatusTx(ctx, tx, orderID, req.Status); err != nil {
		logger.Error("[UpdateOrderStatus] update status", zap.String("error", err.Error()))
		return errors.SetCustomErrorf(constant.ErrInternal, "failed to update order status")
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[UpdateOrderStatus] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publish(ctx, rabbitmq.OrderEvent{
		Type:        rabbitmq.EventOrderStatusChanged,
		OrderID:     orderID,
		OrderNumber: order.OrderNumber,
		Status:      string(req.Status),
		OccurredAt:  time.Now(),
	})
	return nil
}

func (s *orderAppImpl) fulfillTx(ctx context.Context, tx *sqlx.Tx, orderID uint64, selections map[uint64]constant.Warehouse) error {
	items, err := s.orderRepo.GetOrderItemsTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[UpdateOrderStatus] get order items", zap.String("error", err.Error()))
		return errors.SetCustomErrorf(constant.ErrInternal, "failed to load order items")
	}

	pending := make([]model.OrderItemEntity, 0, len(items))
	for _, item := range items {
		if !item.Fulfilled() {
			pending = append(pending, item)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	// every pending item needs a valid warehouse before anything is written
	for _, item := range pending {
		w, ok := selections[item.ProductID]
		if !ok || w == "" {
			return errors.SetCustomErrorf(constant.ErrWarehouseSelectionRequired, "no warehouse selected for product %d", item.ProductID)
		}
		if !w.Valid() {
			return errors.SetCustomErrorf(constant.ErrInvalidWarehouse, "unknown warehouse %q", w)
		}
	}

	for _, item := range pending {
		w := selections[item.ProductID]
		if err := s.orderRepo.SetReservedFromTx(ctx, tx, item.ID, w); err != nil {
			logger.Error("[UpdateOrderStatus] set reserved_from", zap.Uint64("item_id", item.ID), zap.String("error", err.Error()))
			return errors.SetCustomErrorf(constant.ErrInternal, "failed to record warehouse")
		}
		if err := s.warehouseRepo.DecrementStockTx(ctx, tx, item.ProductID, w, item.Quantity); err != nil {
			logger.Error("[UpdateOrderStatus] decrement stock", zap.Uint64("product_id", item.ProductID), zap.String("warehouse", string(w)), zap.String("error", err.Error()))
			return errors.SetCustomErrorf(constant.ErrInternal, "failed to update stock")
		}
	}
	return nil
}

// DeleteOrder returns stock taken by fulfilled items to the warehouse it came
// from and removes the order. Unfulfilled items never touched stock.
func (s *orderAppImpl) DeleteOrder(ctx context.Context, orderID uint64) error {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[DeleteOrder] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.GetOrderTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[DeleteOrder] get order", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	items, err := s.orderRepo.GetOrderItemsTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[DeleteOrder] get order items", zap.String("error", err.Error()))
		return errors.SetCustomErrorf(constant.ErrInternal, "failed to load order items")
	}

	for _, item := range items {
		if !item.Fulfilled() {
			continue
		}
		w := *item.ReservedFrom
		if !w.Valid() {
			logger.Warn("[DeleteOrder] unknown reserved_from, stock not restored", zap.Uint64("item_id", item.ID), zap.String("warehouse", string(w)))
			continue
		}
		if err := s.warehouseRepo.RestoreStockTx(ctx, tx, item.ProductID, w, item.Quantity); err != nil {
			logger.Error("[DeleteOrder] restore stock", zap.Uint64("product_id", item.ProductID), zap.String("error", err.Error()))
			return errors.SetCustomErrorf(constant.ErrInternal, "failed to restore stock")
		}
	}

	if err := s.orderRepo.DeleteOrderItemsTx(ctx, tx, orderID); err != nil {
		logger.Error("[DeleteOrder] delete items", zap.String("error", err.Error()))
		return errors.SetCustomErrorf(constant.ErrInternal, "failed to delete order items")
	}
	if err := s.orderRepo.DeleteOrderTx(ctx, tx, orderID); err != nil {
		logger.Error("[DeleteOrder] delete order", zap.String("error", err.Error()))
		return errors.SetCustomErrorf(constant.ErrInternal, "failed to delete order")
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[DeleteOrder] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publish(ctx, rabbitmq.OrderEvent{
		Type:        rabbitmq.EventOrderDeleted,
		OrderID:     orderID,
		OrderNumber: order.OrderNumber,
		OccurredAt:  time.Now(),
	})
	return nil
}

func (s *orderAppImpl) publish(ctx context.Context, event rabbitmq.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.Error("[PublishOrderEvent] publish", zap.String("type", string(event.Type)), zap.Uint64("order_id", event.OrderID), zap.String("error", err.Error()))
	}
}
