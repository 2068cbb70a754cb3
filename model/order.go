package model

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yogapit/eshop/constant"
)

// OrderEntity represents the orders table entity
type OrderEntity struct {
	ID              uint64                  `db:"id" json:"id"`
	CustomerID      uint64                  `db:"customer_id" json:"customer_id"`
	OrderNumber     string                  `db:"order_number" json:"order_number"`
	Status          constant.OrderStatus    `db:"status" json:"status"`
	DeliveryMethod  constant.DeliveryMethod `db:"delivery_method" json:"delivery_method"`
	DeliveryAddress string                  `db:"delivery_address" json:"delivery_address"`
	TotalAmount     decimal.Decimal         `db:"total_amount" json:"total_amount"`
	Notes           *string                 `db:"notes" json:"notes,omitempty"`
	CreatedAt       time.Time               `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time               `db:"updated_at" json:"updated_at"`
}

// OrderItemEntity represents the order_item table entity.
// ReservedFrom stays nil until the item ships from a chosen warehouse.
type OrderItemEntity struct {
	ID           uint64              `db:"id" json:"id"`
	OrderID      uint64              `db:"order_id" json:"order_id"`
	ProductID    uint64              `db:"product_id" json:"product_id"`
	Quantity     int64               `db:"quantity" json:"quantity"`
	Price        decimal.Decimal     `db:"price" json:"price"`
	ReservedFrom *constant.Warehouse `db:"reserved_from" json:"reserved_from"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
}

func (i OrderItemEntity) Fulfilled() bool {
	return i.ReservedFrom != nil && *i.ReservedFrom != ""
}

// OrderItemDetail is an order item with the product summary shown in admin.
type OrderItemDetail struct {
	OrderItemEntity
	ProductName     *string          `db:"product_name" json:"product_name,omitempty"`
	ProductPrice    *decimal.Decimal `db:"product_price" json:"product_price,omitempty"`
	ProductImageURL *string          `db:"product_image_url" json:"product_image_url,omitempty"`
}

// OrderListItem is an order joined with its customer contact.
type OrderListItem struct {
	OrderEntity
	CustomerName  *string `db:"customer_name" json:"customer_name,omitempty"`
	CustomerEmail *string `db:"customer_email" json:"customer_email,omitempty"`
	CustomerPhone *string `db:"customer_phone" json:"customer_phone,omitempty"`
}

type OrderDetail struct {
	OrderListItem
	Items []OrderItemDetail `json:"items"`
}

// CartLine is one product with quantity and the unit price captured at order time.
type CartLine struct {
	ProductID   uint64
	Name        string
	Quantity    int64
	Price       decimal.Decimal
	WeightGrams int64
}

type CreateOrderRequest struct {
	CustomerID      uint64
	Items           []CartLine
	DeliveryMethod  constant.DeliveryMethod
	DeliveryAddress string
	Notes           string
}

type InsertOrderTxItem struct {
	CustomerID      uint64
	OrderNumber     string
	Status          constant.OrderStatus
	DeliveryMethod  constant.DeliveryMethod
	DeliveryAddress string
	TotalAmount     decimal.Decimal
	Notes           *string
}

// OrderItemRequest is a cart line as sent by the storefront.
type OrderItemRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"quantity"`
}

type SubmitOrderRequest struct {
	Customer       CustomerData            `json:"customer" validate:"required"`
	Items          []OrderItemRequest      `json:"items" validate:"dive"`
	DeliveryMethod constant.DeliveryMethod `json:"delivery_method" validate:"required"`
	Notes          string                  `json:"notes"`
}

type SubmitOrderResponse struct {
	Order         *OrderEntity    `json:"order"`
	Customer      *CustomerEntity `json:"customer"`
	DeliveryPrice decimal.Decimal `json:"delivery_price"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

type UpdateOrderRequest struct {
	Status          *constant.OrderStatus    `json:"status"`
	DeliveryMethod  *constant.DeliveryMethod `json:"delivery_method"`
	DeliveryAddress *string                  `json:"delivery_address"`
	Notes           *string                  `json:"notes"`
	TotalAmount     *decimal.Decimal         `json:"total_amount"`
}

func (r UpdateOrderRequest) Empty() bool {
	return r.Status == nil && r.DeliveryMethod == nil && r.DeliveryAddress == nil && r.Notes == nil && r.TotalAmount == nil
}

// UpdateOrderStatusRequest carries the warehouse chosen per product when shipping.
type UpdateOrderStatusRequest struct {
	Status              constant.OrderStatus          `json:"status" validate:"required"`
	WarehouseSelections map[uint64]constant.Warehouse `json:"warehouse_selections"`
}

type OrderFilter struct {
	CustomerID uint64
	Status     constant.OrderStatus
}
