package transport

import (
	"net/http"
	"strconv"

	"github.com/yogapit/eshop/application/delivery"
	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
	"github.com/yogapit/eshop/utils/errors"
)

func productFilter(r *http.Request) (*model.ProductFilter, error) {
	categoryID, err := queryUint(r, "category_id")
	if err != nil {
		return nil, err
	}
	return &model.ProductFilter{
		CategoryID:    categoryID,
		ExclusiveOnly: queryBool(r, "exclusive"),
		Search:        r.URL.Query().Get("search"),
		Page:          queryInt(r, "page"),
		PerPage:       queryInt(r, "per_page"),
	}, nil
}

// ListStoreProducts handler
// @Summary List products
// @Description Active products with free stock, paginated
// @Tags Storefront
// @Produce json
// @Param category_id query int false "Category ID"
// @Param exclusive query bool false "Only exclusive products"
// @Param search query string false "Name search"
// @Param page query int false "Page"
// @Param per_page query int false "Items per page"
// @Success 200 {object} model.ProductListResponse
// @Router /products [get]
func (s *RestHandler) ListStoreProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	filter.AvailableOnly = true

	res, err := s.ProductApp.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetStoreProduct handler
// @Summary Get product
// @Tags Storefront
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.ProductListItem
// @Failure 404 {object} Response
// @Router /products/{id} [get]
func (s *RestHandler) GetStoreProduct(w http.ResponseWriter, r *http.Request) {
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
	if res.Status != constant.ProductStatusActive {
		writeError(w, errors.SetCustomError(constant.ErrNotFound))
		return
	}
	writeSuccess(w, res)
}

// GetAvailability handler
// @Summary Product availability
// @Description Total stock, quantity held by open orders and the remainder
// @Tags Storefront
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Availability
// @Router /products/{id}/availability [get]
func (s *RestHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.GetAvailability(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListCategories handler
// @Summary List categories
// @Tags Storefront
// @Produce json
// @Success 200 {array} model.CategoryEntity
// @Router /categories [get]
func (s *RestHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	res, err := s.CategoryApp.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) country(r *http.Request) string {
	if c := r.URL.Query().Get("country"); c != "" {
		return c
	}
	return s.DefaultCountry
}

// DeliveryOptions handler
// @Summary Delivery price list
// @Tags Storefront
// @Produce json
// @Param country query string false "Destination country"
// @Success 200 {array} delivery.Pricing
// @Failure 404 {object} Response
// @Router /delivery/options [get]
func (s *RestHandler) DeliveryOptions(w http.ResponseWriter, r *http.Request) {
	opts := delivery.Options(s.country(r))
	if opts == nil {
		writeError(w, errors.SetCustomErrorf(constant.ErrNotFound, "country is not served"))
		return
	}
	writeSuccess(w, opts)
}

// DeliveryQuote handler
// @Summary Delivery price for a parcel
// @Tags Storefront
// @Produce json
// @Param method query string true "personal, post or packeta"
// @Param country query string false "Destination country"
// @Param weight query number true "Weight in kg"
// @Success 200 {object} delivery.Quote
// @Failure 400 {object} Response
// @Router /delivery/quote [get]
func (s *RestHandler) DeliveryQuote(w http.ResponseWriter, r *http.Request) {
	method := constant.DeliveryMethod(r.URL.Query().Get("method"))
	if !method.Valid() {
		writeError(w, errors.SetCustomErrorf(constant.ErrInvalidRequest, "unknown delivery method %q", method))
		return
	}
	weight, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if err != nil || weight < 0 {
		writeError(w, errors.SetCustomErrorf(constant.ErrInvalidRequest, "invalid weight"))
		return
	}

	writeSuccess(w, delivery.QuotePrice(method, s.country(r), weight))
}

// SubmitOrder handler
// @Summary Checkout
// @Description Validates the cart, finds or creates the customer and places the order
// @Tags Storefront
// @Accept json
// @Produce json
// @Param request body model.SubmitOrderRequest true "Checkout form"
// @Success 200 {object} model.SubmitOrderResponse
// @Failure 400 {object} Response
// @Failure 409 {object} Response
// @Failure 429 {object} Response
// @Router /orders [post]
func (s *RestHandler) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitOrderRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.OrderApp.SubmitOrder(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}
