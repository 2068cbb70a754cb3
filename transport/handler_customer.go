package transport

import (
	"net/http"

	"github.com/yogapit/eshop/model"
)

// ListCustomers handler
// @Summary List customers
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.CustomerEntity
// @Router /admin/customers [get]
func (s *RestHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	res, err := s.CustomerApp.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetCustomer handler
// @Summary Customer detail
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} model.CustomerEntity
// @Router /admin/customers/{id} [get]
func (s *RestHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.CustomerApp.GetCustomer(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreateCustomer handler
// @Summary Create customer
// @Tags Customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.CustomerRequest true "Customer"
// @Success 200 {object} model.CustomerEntity
// @Failure 429 {object} Response
// @Router /admin/customers [post]
func (s *RestHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req model.CustomerRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.CustomerApp.CreateCustomer(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// UpdateCustomer handler
// @Summary Update customer
// @Tags Customers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Customer ID"
// @Param request body model.CustomerRequest true "Customer"
// @Success 200 {object} model.CustomerEntity
// @Router /admin/customers/{id} [put]
func (s *RestHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req model.CustomerRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.CustomerApp.UpdateCustomer(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// DeleteCustomer handler
// @Summary Delete customer
// @Tags Customers
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} Response
// @Router /admin/customers/{id} [delete]
func (s *RestHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.CustomerApp.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// ListCustomerOrders handler
// @Summary Orders of a customer
// @Tags Customers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {array} model.OrderListItem
// @Router /admin/customers/{id}/orders [get]
func (s *RestHandler) ListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.CustomerApp.ListCustomerOrders(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}
