package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	adminapp "github.com/yogapit/eshop/application/admin"
	analyticsapp "github.com/yogapit/eshop/application/analytics"
	categoryapp "github.com/yogapit/eshop/application/category"
	customerapp "github.com/yogapit/eshop/application/customer"
	orderapp "github.com/yogapit/eshop/application/order"
	productapp "github.com/yogapit/eshop/application/product"
	warehouseapp "github.com/yogapit/eshop/application/warehouse"
	"github.com/yogapit/eshop/utils/ratelimit"
)

// Limiters holds one limiter per protected route group. A nil limiter disables it.
type Limiters struct {
	Order    ratelimit.Limiter
	Customer ratelimit.Limiter
	Product  ratelimit.Limiter
	Admin    ratelimit.Limiter
}

type RestHandler struct {
	OrderApp     orderapp.OrderApp
	ProductApp   productapp.ProductApp
	CategoryApp  categoryapp.CategoryApp
	CustomerApp  customerapp.CustomerApp
	WarehouseApp warehouseapp.WarehouseApp
	AnalyticsApp analyticsapp.AnalyticsApp
	AdminApp     adminapp.AdminApp
	Limiters     Limiters
	// DefaultCountry is used for delivery lookups without a country.
	DefaultCountry string
}

func NewTransport(rh *RestHandler) http.Handler {
	router := mux.NewRouter()

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Storefront
	router.HandleFunc("/products", rh.ListStoreProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{id:[0-9]+}", rh.GetStoreProduct).Methods(http.MethodGet)
	router.HandleFunc("/products/{id:[0-9]+}/availability", rh.GetAvailability).Methods(http.MethodGet)
	router.HandleFunc("/categories", rh.ListCategories).Methods(http.MethodGet)
	router.HandleFunc("/delivery/options", rh.DeliveryOptions).Methods(http.MethodGet)
	router.HandleFunc("/delivery/quote", rh.DeliveryQuote).Methods(http.MethodGet)
	router.Handle("/orders", limit(rh.Limiters.Order, "", http.HandlerFunc(rh.SubmitOrder))).Methods(http.MethodPost)

	// Admin
	admin := router.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	admin.HandleFunc("/logout", rh.Logout).Methods(http.MethodPost)

	admin.HandleFunc("/orders", rh.ListOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id:[0-9]+}", rh.GetOrder).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id:[0-9]+}", rh.UpdateOrder).Methods(http.MethodPut)
	admin.HandleFunc("/orders/{id:[0-9]+}/status", rh.UpdateOrderStatus).Methods(http.MethodPut)
	admin.HandleFunc("/orders/{id:[0-9]+}", rh.DeleteOrder).Methods(http.MethodDelete)

	productWrite := func(h http.HandlerFunc) http.Handler {
		return limit(rh.Limiters.Product, adminKeyPrefix, h)
	}
	admin.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	admin.Handle("/products", productWrite(rh.CreateProduct)).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id:[0-9]+}", rh.GetProduct).Methods(http.MethodGet)
	admin.Handle("/products/{id:[0-9]+}", productWrite(rh.UpdateProduct)).Methods(http.MethodPut)
	admin.Handle("/products/{id:[0-9]+}", productWrite(rh.DeleteProduct)).Methods(http.MethodDelete)
	admin.Handle("/products/{id:[0-9]+}/last-check", productWrite(rh.UpdateLastCheck)).Methods(http.MethodPut)
	admin.Handle("/products/{id:[0-9]+}/stock/restore", productWrite(rh.RestoreStock)).Methods(http.MethodPost)
	admin.Handle("/products/{id:[0-9]+}/stock/remove", productWrite(rh.RemoveStock)).Methods(http.MethodPost)
	admin.HandleFunc("/reserved-products", rh.ListReserved).Methods(http.MethodGet)

	admin.HandleFunc("/customers", rh.ListCustomers).Methods(http.MethodGet)
	admin.Handle("/customers", limit(rh.Limiters.Customer, adminKeyPrefix, http.HandlerFunc(rh.CreateCustomer))).Methods(http.MethodPost)
	admin.HandleFunc("/customers/{id:[0-9]+}", rh.GetCustomer).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{id:[0-9]+}", rh.UpdateCustomer).Methods(http.MethodPut)
	admin.HandleFunc("/customers/{id:[0-9]+}", rh.DeleteCustomer).Methods(http.MethodDelete)
	admin.HandleFunc("/customers/{id:[0-9]+}/orders", rh.ListCustomerOrders).Methods(http.MethodGet)

	admin.HandleFunc("/categories", rh.ListCategories).Methods(http.MethodGet)
	admin.HandleFunc("/categories", rh.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id:[0-9]+}", rh.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id:[0-9]+}", rh.DeleteCategory).Methods(http.MethodDelete)

	admin.HandleFunc("/analytics", rh.GetAnalytics).Methods(http.MethodGet)

	// middleware
	router.Use(LoggingMiddleware())
	admin.Use(RateLimitMiddleware(rh.Limiters.Admin, adminKeyPrefix))
	admin.Use(AuthMiddleware(rh.AdminApp))

	return router
}
