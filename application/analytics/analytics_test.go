package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	appanalytics "github.com/yogapit/eshop/application/analytics"
	"github.com/yogapit/eshop/constant"
	analyticsmocks "github.com/yogapit/eshop/mocks/repository/analytics"
	"github.com/yogapit/eshop/model"
	cerr "github.com/yogapit/eshop/utils/errors"
)

func strPtr(s string) *string { return &s }

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	orders := []model.AnalyticsOrder{
		{ID: 1, Status: constant.OrderStatusDelivered, CreatedAt: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)},
		{ID: 2, Status: constant.OrderStatusNew, CreatedAt: time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)},
		{ID: 3, Status: constant.OrderStatusNew, CreatedAt: time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)},
	}
	items := []model.AnalyticsOrderItem{
		{OrderID: 1, Quantity: 2, Price: decimal.NewFromInt(10), ProductName: strPtr("Mat")},
		{OrderID: 1, Quantity: 1, Price: decimal.NewFromInt(5), ProductName: strPtr("Block")},
		{OrderID: 2, Quantity: 3, Price: decimal.NewFromInt(5), ProductName: strPtr("Block")},
		{OrderID: 3, Quantity: 1, Price: decimal.RequireFromString("7.50")},
	}
	customers := []model.AnalyticsCustomer{
		{ID: 1, CustomerType: constant.CustomerTypeRegular},
		{ID: 2, CustomerType: constant.CustomerTypeMember},
		{ID: 3, CustomerType: constant.CustomerTypeRegular},
	}

	got := appanalytics.Summarize(model.TimeRange30D, now, orders, items, customers)

	assert.Equal(t, 3, got.TotalOrders)
	assert.Equal(t, 3, got.TotalCustomers)
	assert.True(t, got.TotalRevenue.Equal(decimal.RequireFromString("47.50")), got.TotalRevenue.String())
	assert.True(t, got.AverageOrderValue.Equal(decimal.RequireFromString("15.83")), got.AverageOrderValue.String())
	assert.Equal(t, []model.StatusCount{
		{Status: constant.OrderStatusNew, Count: 2},
		{Status: constant.OrderStatusDelivered, Count: 1},
	}, got.OrdersByStatus)

	require.Len(t, got.RevenueByMonth, 12)
	assert.Equal(t, "2024-07", got.RevenueByMonth[0].Month)
	assert.Equal(t, "2025-05", got.RevenueByMonth[10].Month)
	assert.True(t, got.RevenueByMonth[10].Revenue.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, "2025-06", got.RevenueByMonth[11].Month)
	assert.True(t, got.RevenueByMonth[11].Revenue.Equal(decimal.RequireFromString("32.50")))

	require.Len(t, got.TopProducts, 3)
	assert.Equal(t, "Block", got.TopProducts[0].Name)
	assert.Equal(t, int64(4), got.TopProducts[0].Quantity)
	assert.Equal(t, "Mat", got.TopProducts[1].Name)
	assert.Equal(t, "Unknown product", got.TopProducts[2].Name)

	assert.Equal(t, []model.CustomerTypeCount{
		{Type: constant.CustomerTypeRegular, Count: 2},
		{Type: constant.CustomerTypeMember, Count: 1},
	}, got.CustomerTypes)
}

func TestSummarize_Empty(t *testing.T) {
	got := appanalytics.Summarize(model.TimeRange7D, time.Now(), nil, nil, nil)
	assert.Zero(t, got.TotalOrders)
	assert.True(t, got.AverageOrderValue.IsZero())
	assert.Len(t, got.RevenueByMonth, 12)
	assert.Empty(t, got.TopProducts)
}

func TestSummarize_TopFive(t *testing.T) {
	var items []model.AnalyticsOrderItem
	for i, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		items = append(items, model.AnalyticsOrderItem{OrderID: 1, Quantity: int64(i + 1), Price: decimal.NewFromInt(1), ProductName: strPtr(name)})
	}
	got := appanalytics.Summarize(model.TimeRangeAll, time.Now(), []model.AnalyticsOrder{{ID: 1}}, items, nil)
	require.Len(t, got.TopProducts, 5)
	assert.Equal(t, "g", got.TopProducts[0].Name)
	assert.Equal(t, "c", got.TopProducts[4].Name)
}

func TestAnalyticsApp_GetAnalytics(t *testing.T) {
	tests := []struct {
		name      string
		timeRange model.TimeRange
		mockCall  func(repo *analyticsmocks.AnalyticsRepository)
		wantErr   bool
		errCode   constant.ErrorType
	}{
		{
			name:      "success: range limits the order queries",
			timeRange: model.TimeRange7D,
			mockCall: func(repo *analyticsmocks.AnalyticsRepository) {
				inRange := mock.MatchedBy(func(since time.Time) bool {
					d := time.Since(since)
					return d > 7*24*time.Hour-time.Minute && d < 7*24*time.Hour+time.Minute
				})
				repo.On("ListOrders", mock.Anything, inRange).Return([]model.AnalyticsOrder{{ID: 1, Status: constant.OrderStatusNew, CreatedAt: time.Now()}}, nil).Once()
				repo.On("ListOrderItems", mock.Anything, inRange).Return([]model.AnalyticsOrderItem{{OrderID: 1, Quantity: 2, Price: decimal.NewFromInt(3)}}, nil).Once()
				repo.On("ListCustomers", mock.Anything).Return([]model.AnalyticsCustomer{{ID: 1, CustomerType: constant.CustomerTypeRegular}}, nil).Once()
			},
		},
		{
			name:      "error: unknown range",
			timeRange: "2w",
			wantErr:   true,
			errCode:   constant.ErrInvalidRequest,
		},
		{
			name:      "error: one query fails",
			timeRange: model.TimeRangeAll,
			mockCall: func(repo *analyticsmocks.AnalyticsRepository) {
				repo.On("ListOrders", mock.Anything, mock.Anything).Return(nil, errors.New("db error")).Maybe()
				repo.On("ListOrderItems", mock.Anything, mock.Anything).Return(nil, nil).Maybe()
				repo.On("ListCustomers", mock.Anything).Return(nil, nil).Maybe()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := analyticsmocks.NewAnalyticsRepository(t)
			if tt.mockCall != nil {
				tt.mockCall(repo)
			}

			got, err := appanalytics.NewAnalyticsApp(repo).GetAnalytics(context.Background(), tt.timeRange)
			if tt.wantErr {
				var ce cerr.CustomError
				require.True(t, errors.As(err, &ce), "error = %v", err)
				assert.Equal(t, constant.ErrorTypeCode[tt.errCode], ce.ErrorCode())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, got.TotalOrders)
			assert.True(t, got.TotalRevenue.Equal(decimal.NewFromInt(6)))
		})
	}
}
