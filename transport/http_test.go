package transport_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yogapit/eshop/constant"
	adminmocks "github.com/yogapit/eshop/mocks/application/admin"
	categorymocks "github.com/yogapit/eshop/mocks/application/category"
	ordermocks "github.com/yogapit/eshop/mocks/application/order"
	productmocks "github.com/yogapit/eshop/mocks/application/product"
	warehousemocks "github.com/yogapit/eshop/mocks/application/warehouse"
	"github.com/yogapit/eshop/model"
	"github.com/yogapit/eshop/transport"
	utilsContext "github.com/yogapit/eshop/utils/context"
	cerr "github.com/yogapit/eshop/utils/errors"
	"github.com/yogapit/eshop/utils/ratelimit"
)

const validToken = "good-token"

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type handlerMocks struct {
	order     *ordermocks.OrderApp
	product   *productmocks.ProductApp
	category  *categorymocks.CategoryApp
	warehouse *warehousemocks.WarehouseApp
	admin     *adminmocks.AdminApp
}

func newHandler(t *testing.T, limiters transport.Limiters) (http.Handler, handlerMocks) {
	m := handlerMocks{
		order:     ordermocks.NewOrderApp(t),
		product:   productmocks.NewProductApp(t),
		category:  categorymocks.NewCategoryApp(t),
		warehouse: warehousemocks.NewWarehouseApp(t),
		admin:     adminmocks.NewAdminApp(t),
	}
	h := transport.NewTransport(&transport.RestHandler{
		OrderApp:       m.order,
		ProductApp:     m.product,
		CategoryApp:    m.category,
		WarehouseApp:   m.warehouse,
		AdminApp:       m.admin,
		Limiters:       limiters,
		DefaultCountry: "Slovensko",
	})
	return h, m
}

func do(h http.Handler, method, target, body string, header map[string]string) (*httptest.ResponseRecorder, envelope) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, env envelope, errType constant.ErrorType) {
	t.Helper()
	assert.Equal(t, constant.ErrorTypeHTTPCode[errType], rec.Code)
	assert.Equal(t, constant.ErrorTypeCode[errType], env.Code)
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   map[string]string
		mockCall func(m handlerMocks)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:    "error: missing token",
			wantErr: true,
			errCode: constant.ErrUnauthorize,
		},
		{
			name:    "error: not a bearer token",
			header:  map[string]string{"Authorization": "Basic abc"},
			wantErr: true,
			errCode: constant.ErrUnauthorize,
		},
		{
			name:   "error: revoked session",
			header: map[string]string{"Authorization": "Bearer stale"},
			mockCall: func(m handlerMocks) {
				m.admin.On("ValidateToken", mock.Anything, "stale").Return("", cerr.SetCustomError(constant.ErrUnauthorize)).Once()
			},
			wantErr: true,
			errCode: constant.ErrUnauthorize,
		},
		{
			name:   "success: admin name reaches the handler",
			header: map[string]string{"Authorization": "Bearer " + validToken},
			mockCall: func(m handlerMocks) {
				m.admin.On("ValidateToken", mock.Anything, validToken).Return("admin", nil).Once()
				m.order.On("ListOrders", mock.MatchedBy(func(ctx context.Context) bool {
					id, ok := utilsContext.GetAdminID(ctx)
					return ok && id == "admin"
				}), &model.OrderFilter{}).Return([]model.OrderListItem{}, nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newHandler(t, transport.Limiters{})
			if tt.mockCall != nil {
				tt.mockCall(m)
			}

			rec, env := do(h, http.MethodGet, "/admin/orders", "", tt.header)
			if tt.wantErr {
				assertError(t, rec, env, tt.errCode)
				return
			}
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, constant.ErrorTypeCode[constant.Successful], env.Code)
		})
	}
}

func TestLogin_IsPublic(t *testing.T) {
	h, m := newHandler(t, transport.Limiters{})
	m.admin.On("Login", mock.Anything, &model.LoginRequest{Username: "admin", Password: "namaste"}).
		Return(&model.LoginResponse{Username: "admin", Token: "jwt"}, nil).Once()

	rec, env := do(h, http.MethodPost, "/admin/login", `{"username":"admin","password":"namaste"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res model.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "jwt", res.Token)
}

func TestLogin_MissingPassword(t *testing.T) {
	h, _ := newHandler(t, transport.Limiters{})

	rec, env := do(h, http.MethodPost, "/admin/login", `{"username":"admin"}`, nil)
	assertError(t, rec, env, constant.ErrInvalidRequest)
}

func TestSubmitOrder(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		mockCall func(m handlerMocks)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name:    "error: malformed body",
			body:    `{"items":`,
			wantErr: true,
			errCode: constant.ErrInvalidRequest,
		},
		{
			name: "error: stock shortage is a conflict",
			body: `{"customer":{"name":"Jana","email":"jana@example.sk"},"items":[{"product_id":1,"quantity":2}],"delivery_method":"personal"}`,
			mockCall: func(m handlerMocks) {
				m.order.On("SubmitOrder", mock.Anything, mock.AnythingOfType("*model.SubmitOrderRequest")).
					Return(nil, cerr.SetCustomErrorf(constant.ErrInsufficientStock, "Mat: available 1, requested 2")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInsufficientStock,
		},
		{
			name: "error: unexpected failure is internal",
			body: `{"customer":{"name":"Jana","email":"jana@example.sk"},"items":[{"product_id":1,"quantity":1}],"delivery_method":"personal"}`,
			mockCall: func(m handlerMocks) {
				m.order.On("SubmitOrder", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
		{
			name: "success",
			body: `{"customer":{"name":"Jana","email":"jana@example.sk"},"items":[{"product_id":1,"quantity":1}],"delivery_method":"personal"}`,
			mockCall: func(m handlerMocks) {
				m.order.On("SubmitOrder", mock.Anything, mock.MatchedBy(func(req *model.SubmitOrderRequest) bool {
					return len(req.Items) == 1 && req.Items[0].ProductID == 1 && req.DeliveryMethod == constant.DeliveryMethodPersonal
				})).Return(&model.SubmitOrderResponse{Order: &model.OrderEntity{OrderNumber: "20251"}}, nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newHandler(t, transport.Limiters{})
			if tt.mockCall != nil {
				tt.mockCall(m)
			}

			rec, env := do(h, http.MethodPost, "/orders", tt.body, nil)
			if tt.wantErr {
				assertError(t, rec, env, tt.errCode)
				return
			}
			require.Equal(t, http.StatusOK, rec.Code)
			var res model.SubmitOrderResponse
			require.NoError(t, json.Unmarshal(env.Data, &res))
			assert.Equal(t, "20251", res.Order.OrderNumber)
		})
	}
}

func TestOrderRateLimit(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewMemoryWithClock(ratelimit.Policy{Name: "order", Window: time.Minute, MaxRequests: 1}, func() time.Time { return now })
	h, m := newHandler(t, transport.Limiters{Order: limiter})
	m.order.On("SubmitOrder", mock.Anything, mock.Anything).Return(&model.SubmitOrderResponse{}, nil).Once()

	body := `{"customer":{"name":"Jana","email":"jana@example.sk"},"items":[{"product_id":1,"quantity":1}],"delivery_method":"personal"}`
	header := map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}

	rec, _ := do(h, http.MethodPost, "/orders", body, header)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := do(h, http.MethodPost, "/orders", body, header)
	assertError(t, rec, env, constant.ErrTooManyRequests)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	// another client has its own window
	m.order.On("SubmitOrder", mock.Anything, mock.Anything).Return(&model.SubmitOrderResponse{}, nil).Once()
	rec, _ = do(h, http.MethodPost, "/orders", body, map[string]string{"X-Forwarded-For": "198.51.100.1"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func (brokenLimiter) RetryAfter(context.Context, string) (time.Duration, error) {
	return 0, errors.New("redis down")
}

func TestRateLimit_FailsOpen(t *testing.T) {
	h, m := newHandler(t, transport.Limiters{Admin: brokenLimiter{}})
	m.admin.On("Login", mock.Anything, mock.Anything).Return(&model.LoginResponse{Username: "admin"}, nil).Once()

	rec, _ := do(h, http.MethodPost, "/admin/login", `{"username":"admin","password":"namaste"}`, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRateLimit_CoversLogin(t *testing.T) {
	limiter := ratelimit.NewMemory(ratelimit.Policy{Name: "admin", Window: time.Minute, MaxRequests: 1})
	h, m := newHandler(t, transport.Limiters{Admin: limiter})
	m.admin.On("Login", mock.Anything, mock.Anything).Return(nil, cerr.SetCustomError(constant.ErrInvalidCredential)).Once()

	body := `{"username":"admin","password":"guess"}`
	rec, env := do(h, http.MethodPost, "/admin/login", body, nil)
	assertError(t, rec, env, constant.ErrInvalidCredential)

	rec, env = do(h, http.MethodPost, "/admin/login", body, nil)
	assertError(t, rec, env, constant.ErrTooManyRequests)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestGetStoreProduct(t *testing.T) {
	tests := []struct {
		name     string
		status   constant.ProductStatus
		wantCode int
	}{
		{name: "active product is shown", status: constant.ProductStatusActive, wantCode: http.StatusOK},
		{name: "inactive product is hidden", status: constant.ProductStatusInactive, wantCode: constant.ErrorTypeHTTPCode[constant.ErrNotFound]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newHandler(t, transport.Limiters{})
			item := &model.ProductListItem{ProductEntity: model.ProductEntity{ID: 3, Name: "Mat", Status: tt.status}}
			m.product.On("GetProduct", mock.Anything, uint64(3)).Return(item, nil).Once()

			rec, _ := do(h, http.MethodGet, "/products/3", "", nil)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestListStoreProducts_OnlyAvailable(t *testing.T) {
	h, m := newHandler(t, transport.Limiters{})
	m.product.On("ListProducts", mock.Anything, &model.ProductFilter{
		CategoryID:    4,
		AvailableOnly: true,
		Search:        "mat",
		Page:          2,
	}).Return(&model.ProductListResponse{Items: []model.ProductListItem{}, Page: 2, PerPage: 20}, nil).Once()

	rec, _ := do(h, http.MethodGet, "/products?category_id=4&search=mat&page=2", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeliveryQuote(t *testing.T) {
	h, _ := newHandler(t, transport.Limiters{})

	rec, env := do(h, http.MethodGet, "/delivery/quote?method=drone&weight=1", "", nil)
	assertError(t, rec, env, constant.ErrInvalidRequest)

	rec, env = do(h, http.MethodGet, "/delivery/quote?method=packeta&weight=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var quote struct {
		Country string          `json:"country"`
		Price   decimal.Decimal `json:"price"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &quote))
	assert.Equal(t, "Slovensko", quote.Country)
	assert.True(t, decimal.RequireFromString("4.50").Equal(quote.Price))
}

func TestDeliveryOptions_UnknownCountry(t *testing.T) {
	h, _ := newHandler(t, transport.Limiters{})

	rec, env := do(h, http.MethodGet, "/delivery/options?country=Atlantis", "", nil)
	assertError(t, rec, env, constant.ErrNotFound)
}

func TestRestoreStock(t *testing.T) {
	h, m := newHandler(t, transport.Limiters{})
	m.admin.On("ValidateToken", mock.Anything, validToken).Return("admin", nil).Once()
	m.warehouse.On("RestoreStock", mock.Anything, uint64(9), &model.StockAdjustmentRequest{Quantity: 1500}).
		Return(&model.StockAdjustmentResult{ProductID: 9, Levels: model.StockLevels{Bratislava: 1000, Ruzomberok: 1000, Bezo: 400}}, nil).Once()

	rec, env := do(h, http.MethodPost, "/admin/products/9/stock/restore", `{"quantity":1500}`,
		map[string]string{"Authorization": "Bearer " + validToken})
	require.Equal(t, http.StatusOK, rec.Code)

	var res model.StockAdjustmentResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, int64(400), res.Levels.Bezo)
}

func TestDeleteCategory_BuiltIn(t *testing.T) {
	h, m := newHandler(t, transport.Limiters{})
	m.admin.On("ValidateToken", mock.Anything, validToken).Return("admin", nil).Once()
	m.category.On("DeleteCategory", mock.Anything, uint64(2)).Return(cerr.SetCustomError(constant.ErrCategoryNotDeletable)).Once()

	rec, env := do(h, http.MethodDelete, "/admin/categories/2", "", map[string]string{"Authorization": "Bearer " + validToken})
	assertError(t, rec, env, constant.ErrCategoryNotDeletable)
}

func TestLogout(t *testing.T) {
	h, m := newHandler(t, transport.Limiters{})
	m.admin.On("ValidateToken", mock.Anything, validToken).Return("admin", nil).Once()
	m.admin.On("Logout", mock.Anything, validToken).Return(nil).Once()

	rec, _ := do(h, http.MethodPost, "/admin/logout", "", map[string]string{"Authorization": "Bearer " + validToken})
	assert.Equal(t, http.StatusOK, rec.Code)
}
