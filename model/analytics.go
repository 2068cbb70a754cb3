package model

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yogapit/eshop/constant"
)

type TimeRange string

const (
	TimeRange7D  TimeRange = "7d"
	TimeRange30D TimeRange = "30d"
	TimeRange90D TimeRange = "90d"
	TimeRange1Y  TimeRange = "1y"
	TimeRangeAll TimeRange = "all"
)

// Days is the range length in days, 0 for all.
func (r TimeRange) Days() int {
	switch r {
	case TimeRange7D:
		return 7
	case TimeRange30D:
		return 30
	case TimeRange90D:
		return 90
	case TimeRange1Y:
		return 365
	}
	return 0
}

// AnalyticsOrder is the slice of an order the dashboard needs.
type AnalyticsOrder struct {
	ID        uint64               `db:"id"`
	Status    constant.OrderStatus `db:"status"`
	CreatedAt time.Time            `db:"created_at"`
}

type AnalyticsOrderItem struct {
	OrderID     uint64          `db:"order_id"`
	Quantity    int64           `db:"quantity"`
	Price       decimal.Decimal `db:"price"`
	ProductName *string         `db:"product_name"`
}

type AnalyticsCustomer struct {
	ID           uint64                `db:"id"`
	CustomerType constant.CustomerType `db:"customer_type"`
}

type StatusCount struct {
	Status constant.OrderStatus `json:"status"`
	Count  int                  `json:"count"`
}

type MonthRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type ProductSales struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type CustomerTypeCount struct {
	Type  constant.CustomerType `json:"type"`
	Count int                   `json:"count"`
}

type AnalyticsResponse struct {
	Range             TimeRange           `json:"range"`
	TotalOrders       int                 `json:"total_orders"`
	TotalRevenue      decimal.Decimal     `json:"total_revenue"`
	TotalCustomers    int                 `json:"total_customers"`
	AverageOrderValue decimal.Decimal     `json:"average_order_value"`
	OrdersByStatus    []StatusCount       `json:"orders_by_status"`
	RevenueByMonth    []MonthRevenue      `json:"revenue_by_month"`
	TopProducts       []ProductSales      `json:"top_products"`
	CustomerTypes     []CustomerTypeCount `json:"customer_types"`
}
