package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInvalidCredential
	ErrInsufficientStock
	ErrInvalidOrderStatus
	ErrTooManyRequests
	ErrCartEmpty
	ErrCartTooManyItems
	ErrOrderQuantityLimit
	ErrOrderValueLimit
	ErrTooManyRecentOrders
	ErrInvalidCustomer
	ErrInvalidProduct
	ErrInvalidOrderNotes
	ErrInvalidWarehouse
	ErrWarehouseSelectionRequired
	ErrCategoryNotDeletable
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:                    "success",
	ErrInternal:                   "error internal",
	ErrNotFound:                   "data not found",
	ErrInvalidRequest:             "invalid request",
	ErrUnauthorize:                "unauthorize request",
	ErrInvalidCredential:          "username or password invalid",
	ErrInsufficientStock:          "insufficient stock",
	ErrInvalidOrderStatus:         "invalid order status",
	ErrTooManyRequests:            "too many requests",
	ErrCartEmpty:                  "cart is empty",
	ErrCartTooManyItems:           "too many items in cart (max 50)",
	ErrOrderQuantityLimit:         "too many pieces in order (max 1000)",
	ErrOrderValueLimit:            "order value too high (max 10000 EUR)",
	ErrTooManyRecentOrders:        "too many orders in a short time",
	ErrInvalidCustomer:            "invalid customer data",
	ErrInvalidProduct:             "invalid product data",
	ErrInvalidOrderNotes:          "invalid order notes",
	ErrInvalidWarehouse:           "invalid warehouse",
	ErrWarehouseSelectionRequired: "warehouse selection required for every unshipped item",
	ErrCategoryNotDeletable:       "built-in category cannot be deleted",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:                    http.StatusOK,
	ErrInternal:                   http.StatusInternalServerError,
	ErrNotFound:                   http.StatusNotFound,
	ErrInvalidRequest:             http.StatusBadRequest,
	ErrUnauthorize:                http.StatusUnauthorized,
	ErrInvalidCredential:          http.StatusUnauthorized,
	ErrInsufficientStock:          http.StatusConflict,
	ErrInvalidOrderStatus:         http.StatusBadRequest,
	ErrTooManyRequests:            http.StatusTooManyRequests,
	ErrCartEmpty:                  http.StatusBadRequest,
	ErrCartTooManyItems:           http.StatusBadRequest,
	ErrOrderQuantityLimit:         http.StatusBadRequest,
	ErrOrderValueLimit:            http.StatusBadRequest,
	ErrTooManyRecentOrders:        http.StatusTooManyRequests,
	ErrInvalidCustomer:            http.StatusBadRequest,
	ErrInvalidProduct:             http.StatusBadRequest,
	ErrInvalidOrderNotes:          http.StatusBadRequest,
	ErrInvalidWarehouse:           http.StatusBadRequest,
	ErrWarehouseSelectionRequired: http.StatusBadRequest,
	ErrCategoryNotDeletable:       http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:                    "0000",
	ErrInternal:                   "0001",
	ErrNotFound:                   "0002",
	ErrInvalidRequest:             "0003",
	ErrUnauthorize:                "0004",
	ErrInvalidCredential:          "0005",
	ErrInsufficientStock:          "0006",
	ErrInvalidOrderStatus:         "0007",
	ErrTooManyRequests:            "0008",
	ErrCartEmpty:                  "0009",
	ErrCartTooManyItems:           "0010",
	ErrOrderQuantityLimit:         "0011",
	ErrOrderValueLimit:            "0012",
	ErrTooManyRecentOrders:        "0013",
	ErrInvalidCustomer:            "0014",
	ErrInvalidProduct:             "0015",
	ErrInvalidOrderNotes:          "0016",
	ErrInvalidWarehouse:           "0017",
	ErrWarehouseSelectionRequired: "0018",
	ErrCategoryNotDeletable:       "0019",
}
