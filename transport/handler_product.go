package transport

import (
	"context"
	"net/http"

	"github.com/yogapit/eshop/model"
)

// ListProducts handler
// @Summary List products (admin)
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param category_id query int false "Category ID"
// @Param exclusive query bool false "Only exclusive products"
// @Param search query string false "Name search"
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} model.ProductListResponse
// @Router /admin/products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Product detail (admin)
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.ProductListItem
// @Router /admin/products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// CreateProduct handler
// @Summary Create product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body model.ProductRequest true "Product"
// @Success 200 {object} model.ProductEntity
// @Router /admin/products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.ProductRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.CreateProduct(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// UpdateProduct handler
// @Summary Update product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body model.ProductRequest true "Product"
// @Success 200 {object} model.ProductListItem
// @Router /admin/products/{id} [put]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req model.ProductRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// DeleteProduct handler
// @Summary Delete product
// @Tags Products
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} Response
// @Router /admin/products/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.ProductApp.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// UpdateLastCheck handler
// @Summary Set last stock check date
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Param id path int true "Product ID"
// @Param request body model.LastCheckRequest true "Check date"
// @Success 200 {object} Response
// @Router /admin/products/{id}/last-check [put]
func (s *RestHandler) UpdateLastCheck(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req model.LastCheckRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := s.ProductApp.UpdateLastCheck(r.Context(), id, &req); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// RestoreStock handler
// @Summary Return stock to a warehouse
// @Description Without a warehouse the quantity fills Bratislava, Ruzomberok, then Bezo up to 1000 each
// @Tags Warehouse
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body model.StockAdjustmentRequest true "Quantity and optional warehouse"
// @Success 200 {object} model.StockAdjustmentResult
// @Router /admin/products/{id}/stock/restore [post]
func (s *RestHandler) RestoreStock(w http.ResponseWriter, r *http.Request) {
	s.adjustStock(w, r, s.WarehouseApp.RestoreStock)
}

// RemoveStock handler
// @Summary Take stock out of a warehouse
// @Description Without a warehouse the quantity drains Bratislava, Ruzomberok, then Bezo
// @Tags Warehouse
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body model.StockAdjustmentRequest true "Quantity and optional warehouse"
// @Success 200 {object} model.StockAdjustmentResult
// @Router /admin/products/{id}/stock/remove [post]
func (s *RestHandler) RemoveStock(w http.ResponseWriter, r *http.Request) {
	s.adjustStock(w, r, s.WarehouseApp.RemoveStock)
}

type stockAdjuster func(ctx context.Context, productID uint64, req *model.StockAdjustmentRequest) (*model.StockAdjustmentResult, error)

func (s *RestHandler) adjustStock(w http.ResponseWriter, r *http.Request, adjust stockAdjuster) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req model.StockAdjustmentRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := adjust(r.Context(), id, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListReserved handler
// @Summary Products held by open orders
// @Tags Warehouse
// @Security BearerAuth
// @Produce json
// @Success 200 {array} model.ReservedProduct
// @Router /admin/reserved-products [get]
func (s *RestHandler) ListReserved(w http.ResponseWriter, r *http.Request) {
	res, err := s.WarehouseApp.ListReserved(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}
