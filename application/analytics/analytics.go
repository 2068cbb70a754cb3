package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
	analyticsRepo "github.com/yogapit/eshop/repository/analytics"
	"github.com/yogapit/eshop/utils/errors"
	"github.com/yogapit/eshop/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	topProductsLimit   = 5
	revenueMonths      = 12
	unknownProductName = "Unknown product"
)

var statusOrder = []constant.OrderStatus{
	constant.OrderStatusNew,
	constant.OrderStatusWaitingPayment,
	constant.OrderStatusPaidWaitingShipment,
	constant.OrderStatusShipped,
	constant.OrderStatusDelivered,
	constant.OrderStatusCancelled,
}

type AnalyticsApp interface {
	GetAnalytics(ctx context.Context, timeRange model.TimeRange) (*model.AnalyticsResponse, error)
}

type analyticsAppImpl struct {
	analyticsRepo analyticsRepo.AnalyticsRepository
}

func NewAnalyticsApp(analyticsRepo analyticsRepo.AnalyticsRepository) AnalyticsApp {
	return &analyticsAppImpl{analyticsRepo: analyticsRepo}
}

func (s *analyticsAppImpl) GetAnalytics(ctx context.Context, timeRange model.TimeRange) (*model.AnalyticsResponse, error) {
	if timeRange == "" {
		timeRange = model.TimeRange30D
	}
	switch timeRange {
	case model.TimeRange7D, model.TimeRange30D, model.TimeRange90D, model.TimeRange1Y, model.TimeRangeAll:
	default:
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "unknown range %q", timeRange)
	}

	now := time.Now()
	since := time.Unix(0, 0)
	if days := timeRange.Days(); days > 0 {
		since = now.AddDate(0, 0, -days)
	}

	var (
		orders    []model.AnalyticsOrder
		items     []model.AnalyticsOrderItem
		customers []model.AnalyticsCustomer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.analyticsRepo.ListOrders(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.analyticsRepo.ListOrderItems(gctx, since)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.analyticsRepo.ListCustomers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("[GetAnalytics] load data", zap.String("range", string(timeRange)), zap.String("error", err.Error()))
		return nil, errors.SetCustomErrorf(constant.ErrInternal, "failed to load analytics")
	}

	return Summarize(timeRange, now, orders, items, customers), nil
}

// Summarize builds the dashboard from orders and items already limited to
// the range. Revenue counts item price times quantity, without delivery.
func Summarize(timeRange model.TimeRange, now time.Time, orders []model.AnalyticsOrder, items []model.AnalyticsOrderItem, customers []model.AnalyticsCustomer) *model.AnalyticsResponse {
	res := &model.AnalyticsResponse{
		Range:             timeRange,
		TotalOrders:       len(orders),
		TotalRevenue:      decimal.Zero,
		TotalCustomers:    len(customers),
		AverageOrderValue: decimal.Zero,
	}

	orderMonth := make(map[uint64]string, len(orders))
	statusCounts := make(map[constant.OrderStatus]int)
	for _, o := range orders {
		orderMonth[o.ID] = monthKey(o.CreatedAt.In(now.Location()))
		statusCounts[o.Status]++
	}
	for _, st := range statusOrder {
		if n := statusCounts[st]; n > 0 {
			res.OrdersByStatus = append(res.OrdersByStatus, model.StatusCount{Status: st, Count: n})
		}
	}

	months := make(map[string]decimal.Decimal, revenueMonths)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := revenueMonths - 1; i >= 0; i-- {
		key := monthKey(firstOfMonth.AddDate(0, -i, 0))
		months[key] = decimal.Zero
		res.RevenueByMonth = append(res.RevenueByMonth, model.MonthRevenue{Month: key, Revenue: decimal.Zero})
	}

	products := make(map[string]*model.ProductSales)
	var productOrder []string
	for _, it := range items {
		revenue := it.Price.Mul(decimal.NewFromInt(it.Quantity))
		res.TotalRevenue = res.TotalRevenue.Add(revenue)

		if key, ok := orderMonth[it.OrderID]; ok {
			if m, ok := months[key]; ok {
				months[key] = m.Add(revenue)
			}
		}

		name := unknownProductName
		if it.ProductName != nil && *it.ProductName != "" {
			name = *it.ProductName
		}
		p, ok := products[name]
		if !ok {
			p = &model.ProductSales{Name: name, Revenue: decimal.Zero}
			products[name] = p
			productOrder = append(productOrder, name)
		}
		p.Quantity += it.Quantity
		p.Revenue = p.Revenue.Add(revenue)
	}
	for i := range res.RevenueByMonth {
		res.RevenueByMonth[i].Revenue = months[res.RevenueByMonth[i].Month]
	}

	if res.TotalOrders > 0 {
		res.AverageOrderValue = res.TotalRevenue.Div(decimal.NewFromInt(int64(res.TotalOrders))).Round(2)
	}

	top := make([]model.ProductSales, 0, len(productOrder))
	for _, name := range productOrder {
		top = append(top, *products[name])
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Quantity > top[j].Quantity })
	if len(top) > topProductsLimit {
		top = top[:topProductsLimit]
	}
	res.TopProducts = top

	typeCounts := make(map[constant.CustomerType]int)
	for _, c := range customers {
		typeCounts[c.CustomerType]++
	}
	for _, ct := range []constant.CustomerType{constant.CustomerTypeRegular, constant.CustomerTypeMember} {
		if n := typeCounts[ct]; n > 0 {
			res.CustomerTypes = append(res.CustomerTypes, model.CustomerTypeCount{Type: ct, Count: n})
		}
	}
	return res
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
