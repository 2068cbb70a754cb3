package order_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	apporder "github.com/yogapit/eshop/application/order"
	"github.com/yogapit/eshop/cmd/config"
	"github.com/yogapit/eshop/constant"
	customermocks "github.com/yogapit/eshop/mocks/repository/customer"
	ordermocks "github.com/yogapit/eshop/mocks/repository/order"
	productmocks "github.com/yogapit/eshop/mocks/repository/product"
	txmocks "github.com/yogapit/eshop/mocks/repository/tx"
	warehousemocks "github.com/yogapit/eshop/mocks/repository/warehouse"
	rabbitmocks "github.com/yogapit/eshop/mocks/thirdparty/rabbitmq"
	"github.com/yogapit/eshop/model"
	"github.com/yogapit/eshop/thirdparty/rabbitmq"
	cerr "github.com/yogapit/eshop/utils/errors"
)

type fields struct {
	config        *config.Config
	txRepo        *txmocks.TxRepository
	orderRepo     *ordermocks.OrderRepository
	warehouseRepo *warehousemocks.WarehouseRepository
	productRepo   *productmocks.ProductRepository
	customerRepo  *customermocks.CustomerRepository
}

func newFields(t *testing.T) fields {
	return fields{
		config: &config.Config{
			Shop: config.ShopConfig{
				RecentOrderWindow: time.Hour,
				DefaultCountry:    "Slovensko",
			},
		},
		txRepo:        txmocks.NewTxRepository(t),
		orderRepo:     ordermocks.NewOrderRepository(t),
		warehouseRepo: warehousemocks.NewWarehouseRepository(t),
		productRepo:   productmocks.NewProductRepository(t),
		customerRepo:  customermocks.NewCustomerRepository(t),
	}
}

func (f fields) app() apporder.OrderApp {
	// nil publisher disables events
	return apporder.NewOrderApp(f.config, f.txRepo, f.orderRepo, f.warehouseRepo, f.productRepo, f.customerRepo, nil)
}

func assertErrCode(t *testing.T, err error, want constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[want] {
		t.Fatalf("error code = %s (%v), want %s", ce.ErrorCode(), err, constant.ErrorTypeCode[want])
	}
}

func warehousePtr(w constant.Warehouse) *constant.Warehouse {
	return &w
}

func year() string {
	return time.Now().Format("2006")
}

func TestNextOrderNumber(t *testing.T) {
	tests := []struct {
		name string
		year string
		last string
		want string
	}{
		{name: "first order of the year", year: "2025", last: "", want: "2025001"},
		{name: "increments sequence", year: "2025", last: "2025007", want: "2025008"},
		{name: "crosses 99", year: "2025", last: "2025099", want: "2025100"},
		{name: "continues past 999", year: "2025", last: "2025999", want: "20251000"},
		{name: "continues after 1000", year: "2025", last: "20251000", want: "20251001"},
		{name: "other year ignored", year: "2026", last: "2025123", want: "2026001"},
		{name: "unparsable suffix restarts", year: "2025", last: "2025ABC", want: "2025001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := apporder.NextOrderNumber(tt.year, tt.last); got != tt.want {
				t.Fatalf("NextOrderNumber(%q, %q) = %q, want %q", tt.year, tt.last, got, tt.want)
			}
		})
	}
}

func TestOrderApp_CreateOrder(t *testing.T) {
	twoLines := []model.CartLine{
		{ProductID: 1, Name: "Mat", Quantity: 2, Price: decimal.NewFromInt(10)},
		{ProductID: 2, Name: "Block", Quantity: 1, Price: decimal.NewFromInt(5)},
	}

	tests := []struct {
		name      string
		req       *model.CreateOrderRequest
		mockCall  func(f fields)
		wantTotal string
		wantNum   string
		wantErr   bool
		errCode   constant.ErrorType
	}{
		{
			name: "success: total is sum of price times quantity",
			req: &model.CreateOrderRequest{
				CustomerID:      7,
				Items:           twoLines,
				DeliveryMethod:  constant.DeliveryMethodPersonal,
				DeliveryAddress: constant.PickupAddress,
				Notes:           "please <b>wrap</b>",
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Maybe()

				f.orderRepo.On("LastOrderNumberTx", mock.Anything, tx, year()).Return(year()+"007", nil).Once()
				f.warehouseRepo.On("GetStockCheckTx", mock.Anything, tx, uint64(1)).
					Return(&model.StockCheck{ProductID: 1, Name: "Mat", StockLevels: model.StockLevels{Bratislava: 3}, ReservedQuantity: 1}, nil).Once()
				f.warehouseRepo.On("GetStockCheckTx", mock.Anything, tx, uint64(2)).
					Return(&model.StockCheck{ProductID: 2, Name: "Block", StockLevels: model.StockLevels{Bezo: 1}}, nil).Once()

				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.MatchedBy(func(req *model.InsertOrderTxItem) bool {
					return req.CustomerID == 7 &&
						req.OrderNumber == year()+"008" &&
						req.Status == constant.OrderStatusNew &&
						req.TotalAmount.Equal(decimal.NewFromInt(25)) &&
						req.Notes != nil && *req.Notes == "please bwrap/b"
				})).Return(uint64(11), nil).Once()
				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(11), twoLines).Return(nil).Once()
			},
			wantTotal: "25",
			wantNum:   year() + "008",
		},
		{
			name: "success: first order of the year",
			req: &model.CreateOrderRequest{
				CustomerID: 7,
				Items:      twoLines[:1],
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Maybe()

				f.orderRepo.On("LastOrderNumberTx", mock.Anything, tx, year()).Return("", nil).Once()
				f.warehouseRepo.On("GetStockCheckTx", mock.Anything, tx, uint64(1)).
					Return(&model.StockCheck{ProductID: 1, Name: "Mat", StockLevels: model.StockLevels{Ruzomberok: 2}}, nil).Once()
				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.MatchedBy(func(req *model.InsertOrderTxItem) bool {
					return req.OrderNumber == year()+"001" && req.Notes == nil
				})).Return(uint64(1), nil).Once()
				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(1), twoLines[:1]).Return(nil).Once()
			},
			wantTotal: "20",
			wantNum:   year() + "001",
		},
		{
			name:     "error: empty cart",
			req:      &model.CreateOrderRequest{CustomerID: 7},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrCartEmpty,
		},
		{
			name: "error: notes too long",
			req: &model.CreateOrderRequest{
				CustomerID: 7,
				Items:      twoLines,
				Notes:      strings.Repeat("a", constant.OrderNotesMaxLength+1),
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidOrderNotes,
		},
		{
			name: "error: insufficient stock inserts nothing",
			req: &model.CreateOrderRequest{
				CustomerID: 7,
				Items:      twoLines,
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("LastOrderNumberTx", mock.Anything, tx, year()).Return("", nil).Once()
				// 5 in stock, 4 reserved by other orders
				f.warehouseRepo.On("GetStockCheckTx", mock.Anything, tx, uint64(1)).
					Return(&model.StockCheck{ProductID: 1, Name: "Mat", StockLevels: model.StockLevels{Bratislava: 5}, ReservedQuantity: 4}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
		{
			name: "error: duplicate lines are checked together",
			req: &model.CreateOrderRequest{
				CustomerID: 7,
				Items: []model.CartLine{
					{ProductID: 1, Quantity: 2, Price: decimal.NewFromInt(10)},
					{ProductID: 1, Quantity: 2, Price: decimal.NewFromInt(10)},
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("LastOrderNumberTx", mock.Anything, tx, year()).Return("", nil).Once()
				f.warehouseRepo.On("GetStockCheckTx", mock.Anything, tx, uint64(1)).
					Return(&model.StockCheck{ProductID: 1, Name: "Mat", StockLevels: model.StockLevels{Bratislava: 3}}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
		{
			name: "error: unknown product",
			req: &model.CreateOrderRequest{
				CustomerID: 7,
				Items:      twoLines[:1],
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("LastOrderNumberTx", mock.Anything, tx, year()).Return("", nil).Once()
				f.warehouseRepo.On("GetStockCheckTx", mock.Anything, tx, uint64(1)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidProduct,
		},
		{
			name: "error: item insert fails and order is rolled back",
			req: &model.CreateOrderRequest{
				CustomerID: 7,
				Items:      twoLines[:1],
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("LastOrderNumberTx", mock.Anything, tx, year()).Return("", nil).Once()
				f.warehouseRepo.On("GetStockCheckTx", mock.Anything, tx, uint64(1)).
					Return(&model.StockCheck{ProductID: 1, Name: "Mat", StockLevels: model.StockLevels{Bratislava: 9}}, nil).Once()
				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).Return(uint64(3), nil).Once()
				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(3), mock.Anything).Return(errors.New("fk violation")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "error: begin tx",
			req: &model.CreateOrderRequest{
				CustomerID: 7,
				Items:      twoLines,
			},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			got, err := f.app().CreateOrder(context.Background(), tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateOrder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}

			if !got.TotalAmount.Equal(decimal.RequireFromString(tt.wantTotal)) {
				t.Fatalf("CreateOrder() total = %s, want %s", got.TotalAmount, tt.wantTotal)
			}
			if got.OrderNumber != tt.wantNum {
				t.Fatalf("CreateOrder() number = %s, want %s", got.OrderNumber, tt.wantNum)
			}
			if got.Status != constant.OrderStatusNew {
				t.Fatalf("CreateOrder() status = %s, want new", got.Status)
			}
		})
	}
}

func TestOrderApp_CreateOrder_InsufficientStockMessage(t *testing.T) {
	f := newFields(t)
	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("RollbackTx", tx).Return(nil).Once()
	f.orderRepo.On("LastOrderNumberTx", mock.Anything, tx, year()).Return("", nil).Once()
	f.warehouseRepo.On("GetStockCheckTx", mock.Anything, tx, uint64(1)).
		Return(&model.StockCheck{ProductID: 1, Name: "Cork block", StockLevels: model.StockLevels{Bratislava: 1, Bezo: 1}}, nil).Once()

	_, err := f.app().CreateOrder(context.Background(), &model.CreateOrderRequest{
		CustomerID: 1,
		Items:      []model.CartLine{{ProductID: 1, Quantity: 3, Price: decimal.NewFromInt(8)}},
	})

	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.Detail() != "not enough stock for Cork block, available: 2" {
		t.Fatalf("detail = %q", ce.Detail())
	}
}

func TestOrderApp_CreateOrder_PublishesEvent(t *testing.T) {
	f := newFields(t)
	publisher := rabbitmocks.NewEventPublisher(t)
	tx := &sqlx.Tx{}
	f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
	f.txRepo.On("CommitTx", tx).Return(nil).Once()
	f.txRepo.On("RollbackTx", tx).Return(nil).Maybe()
	f.orderRepo.On("LastOrderNumberTx", mock.Anything, tx, year()).Return("", nil).Once()
	f.warehouseRepo.On("GetStockCheckTx", mock.Anything, tx, uint64(1)).
		Return(&model.StockCheck{ProductID: 1, Name: "Mat", StockLevels: model.StockLevels{Bratislava: 5}}, nil).Once()
	f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.Anything).Return(uint64(5), nil).Once()
	f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(5), mock.Anything).Return(nil).Once()
	// a broken broker never fails the order
	publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e rabbitmq.OrderEvent) bool {
		return e.Type == rabbitmq.EventOrderCreated && e.OrderID == 5 && e.OrderNumber == year()+"001"
	})).Return(errors.New("channel closed")).Once()

	app := apporder.NewOrderApp(f.config, f.txRepo, f.orderRepo, f.warehouseRepo, f.productRepo, f.customerRepo, publisher)
	got, err := app.CreateOrder(context.Background(), &model.CreateOrderRequest{
		CustomerID: 1,
		Items:      []model.CartLine{{ProductID: 1, Quantity: 1, Price: decimal.NewFromInt(8)}},
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if got.ID != 5 {
		t.Fatalf("CreateOrder() id = %d, want 5", got.ID)
	}
}

func TestOrderApp_UpdateOrderStatus(t *testing.T) {
	type args struct {
		orderID uint64
		req     *model.UpdateOrderStatusRequest
	}
	tests := []struct {
		name     string
		args     args
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: shipping decrements the selected warehouse",
			args: args{
				orderID: 1,
				req: &model.UpdateOrderStatusRequest{
					Status: constant.OrderStatusShipped,
					WarehouseSelections: map[uint64]constant.Warehouse{
						10: constant.WarehouseRuzomberok,
						20: constant.WarehouseBezo,
					},
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Maybe()

				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{ID: 1, OrderNumber: "2025001", Status: constant.OrderStatusPaidWaitingShipment}, nil).Once()
				f.orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItemEntity{
					{ID: 100, OrderID: 1, ProductID: 10, Quantity: 3},
					{ID: 101, OrderID: 1, ProductID: 20, Quantity: 1},
				}, nil).Once()

				f.orderRepo.On("SetReservedFromTx", mock.Anything, tx, uint64(100), constant.WarehouseRuzomberok).Return(nil).Once()
				f.warehouseRepo.On("DecrementStockTx", mock.Anything, tx, uint64(10), constant.WarehouseRuzomberok, int64(3)).Return(nil).Once()
				f.orderRepo.On("SetReservedFromTx", mock.Anything, tx, uint64(101), constant.WarehouseBezo).Return(nil).Once()
				f.warehouseRepo.On("DecrementStockTx", mock.Anything, tx, uint64(20), constant.WarehouseBezo, int64(1)).Return(nil).Once()

				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusShipped).Return(nil).Once()
			},
		},
		{
			name: "success: already fulfilled items are skipped",
			args: args{
				orderID: 1,
				req: &model.UpdateOrderStatusRequest{
					Status:              constant.OrderStatusDelivered,
					WarehouseSelections: map[uint64]constant.Warehouse{10: constant.WarehouseBratislava},
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Maybe()

				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{ID: 1, Status: constant.OrderStatusShipped}, nil).Once()
				f.orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItemEntity{
					{ID: 100, OrderID: 1, ProductID: 10, Quantity: 3, ReservedFrom: warehousePtr(constant.WarehouseRuzomberok)},
				}, nil).Once()
				// no SetReservedFromTx and no DecrementStockTx
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusDelivered).Return(nil).Once()
			},
		},
		{
			name: "success: non shipping status only updates status",
			args: args{
				orderID: 1,
				req:     &model.UpdateOrderStatusRequest{Status: constant.OrderStatusWaitingPayment},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Maybe()

				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{ID: 1, Status: constant.OrderStatusNew}, nil).Once()
				f.orderRepo.On("UpdateOrderStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusWaitingPayment).Return(nil).Once()
			},
		},
		{
			name: "error: missing warehouse selection writes nothing",
			args: args{
				orderID: 1,
				req: &model.UpdateOrderStatusRequest{
					Status:              constant.OrderStatusShipped,
					WarehouseSelections: map[uint64]constant.Warehouse{10: constant.WarehouseBratislava},
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{ID: 1}, nil).Once()
				f.orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItemEntity{
					{ID: 100, ProductID: 10, Quantity: 1},
					{ID: 101, ProductID: 20, Quantity: 1},
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrWarehouseSelectionRequired,
		},
		{
			name: "error: unknown warehouse",
			args: args{
				orderID: 1,
				req: &model.UpdateOrderStatusRequest{
					Status:              constant.OrderStatusShipped,
					WarehouseSelections: map[uint64]constant.Warehouse{10: "kosice"},
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{ID: 1}, nil).Once()
				f.orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItemEntity{
					{ID: 100, ProductID: 10, Quantity: 1},
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidWarehouse,
		},
		{
			name: "error: order not found",
			args: args{
				orderID: 9,
				req:     &model.UpdateOrderStatusRequest{Status: constant.OrderStatusCancelled},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(9)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name: "error: unknown status",
			args: args{
				orderID: 1,
				req:     &model.UpdateOrderStatusRequest{Status: "lost"},
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidOrderStatus,
		},
		{
			name: "error: decrement fails and everything rolls back",
			args: args{
				orderID: 1,
				req: &model.UpdateOrderStatusRequest{
					Status:              constant.OrderStatusShipped,
					WarehouseSelections: map[uint64]constant.Warehouse{10: constant.WarehouseBratislava},
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{ID: 1}, nil).Once()
				f.orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItemEntity{
					{ID: 100, ProductID: 10, Quantity: 1},
				}, nil).Once()
				f.orderRepo.On("SetReservedFromTx", mock.Anything, tx, uint64(100), constant.WarehouseBratislava).Return(nil).Once()
				f.warehouseRepo.On("DecrementStockTx", mock.Anything, tx, uint64(10), constant.WarehouseBratislava, int64(1)).Return(errors.New("lock wait timeout")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			err := f.app().UpdateOrderStatus(context.Background(), tt.args.orderID, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UpdateOrderStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
			}
		})
	}
}

func TestOrderApp_DeleteOrder(t *testing.T) {
	tests := []struct {
		name     string
		orderID  uint64
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:    "success: fulfilled items return to their warehouse",
			orderID: 1,
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Maybe()

				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{ID: 1}, nil).Once()
				f.orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItemEntity{
					{ID: 100, ProductID: 10, Quantity: 3, ReservedFrom: warehousePtr(constant.WarehouseRuzomberok)},
					{ID: 101, ProductID: 20, Quantity: 2},
				}, nil).Once()
				f.warehouseRepo.On("RestoreStockTx", mock.Anything, tx, uint64(10), constant.WarehouseRuzomberok, int64(3)).Return(nil).Once()
				f.orderRepo.On("DeleteOrderItemsTx", mock.Anything, tx, uint64(1)).Return(nil).Once()
				f.orderRepo.On("DeleteOrderTx", mock.Anything, tx, uint64(1)).Return(nil).Once()
			},
		},
		{
			name:    "success: unfulfilled order leaves stock unchanged",
			orderID: 2,
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Maybe()

				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(2)).Return(&model.OrderEntity{ID: 2}, nil).Once()
				f.orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(2)).Return([]model.OrderItemEntity{
					{ID: 200, ProductID: 10, Quantity: 3},
				}, nil).Once()
				// no RestoreStockTx
				f.orderRepo.On("DeleteOrderItemsTx", mock.Anything, tx, uint64(2)).Return(nil).Once()
				f.orderRepo.On("DeleteOrderTx", mock.Anything, tx, uint64(2)).Return(nil).Once()
			},
		},
		{
			name:    "error: not found",
			orderID: 3,
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(3)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNotFound,
		},
		{
			name:    "error: restore fails and order is kept",
			orderID: 1,
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("GetOrderTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{ID: 1}, nil).Once()
				f.orderRepo.On("GetOrderItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItemEntity{
					{ID: 100, ProductID: 10, Quantity: 3, ReservedFrom: warehousePtr(constant.WarehouseBezo)},
				}, nil).Once()
				f.warehouseRepo.On("RestoreStockTx", mock.Anything, tx, uint64(10), constant.WarehouseBezo, int64(3)).Return(errors.New("deadlock")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}

			err := f.app().DeleteOrder(context.Background(), tt.orderID)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DeleteOrder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
			}
		})
	}
}
