package transport

import (
	"net/http"

	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
)

// ListOrders handler
// @Summary List orders
// @Description Newest first, with customer contact
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param customer_id query int false "Customer ID"
// @Param status query string false "Order status"
// @Success 200 {array} model.OrderListItem
// @Router /admin/orders [get]
func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID, err := queryUint(r, "customer_id")
	if err != nil {
		writeError(w, err)
		return
	}
	filter := &model.OrderFilter{
		CustomerID: customerID,
		Status:     constant.OrderStatus(r.URL.Query().Get("status")),
	}

	res, err := s.OrderApp.ListOrders(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetOrder handler
// @Summary Order detail
// @Tags Orders
// @Security BearerAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} model.OrderDetail
// @Failure 404 {object} Response
// @Router /admin/orders/{id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.OrderApp.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// UpdateOrder handler
// @Summary Edit order fields
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.UpdateOrderRequest true "Changed fields"
// @Success 200 {object} model.OrderListItem
// @Router /admin/orders/{id} [put]
func (s *RestHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req model.UpdateOrderRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.OrderApp.UpdateOrder(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// UpdateOrderStatus handler
// @Summary Change order status
// @Description Shipping statuses take stock from the selected warehouse per product; cancelling releases it
// @Tags Orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.UpdateOrderStatusRequest true "Status and warehouse selections"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Router /admin/orders/{id}/status [put]
func (s *RestHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req model.UpdateOrderStatusRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.OrderApp.UpdateOrderStatus(r.Context(), id, &req); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// DeleteOrder handler
// @Summary Delete order
// @Description Shipped items are returned to the warehouse they left
// @Tags Orders
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} Response
// @Router /admin/orders/{id} [delete]
func (s *RestHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.OrderApp.DeleteOrder(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}
