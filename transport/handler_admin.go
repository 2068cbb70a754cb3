package transport

import (
	"net/http"

	"github.com/yogapit/eshop/constant"
	"github.com/yogapit/eshop/model"
	"github.com/yogapit/eshop/utils/errors"
)

// Login handler
// @Summary Admin login
// @Description Login with the admin account and receive a session token
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 401 {object} Response
// @Router /admin/login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeValid(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.AdminApp.Login(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// Logout handler
// @Summary Admin logout
// @Tags Admin
// @Security BearerAuth
// @Success 200 {object} Response
// @Router /admin/logout [post]
func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := bearerToken(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.AdminApp.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// GetAnalytics handler
// @Summary Sales dashboard
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param range query string false "7d, 30d, 90d, 1y or all"
// @Success 200 {object} model.AnalyticsResponse
// @Router /admin/analytics [get]
func (s *RestHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	res, err := s.AnalyticsApp.GetAnalytics(r.Context(), model.TimeRange(r.URL.Query().Get("range")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}
