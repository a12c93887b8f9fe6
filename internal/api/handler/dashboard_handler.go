package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flowcrm/customer-system/internal/core/ports"
)

// DashboardHandler serves the authenticated landing summary.
type DashboardHandler struct {
	customers ports.CustomerService
}

func NewDashboardHandler(customers ports.CustomerService) *DashboardHandler {
	return &DashboardHandler{customers: customers}
}

type dashboardResponse struct {
	TotalCustomers int64 `json:"total_customers"`
}

// Summary handles GET /dashboard.
//
// @Summary      Dashboard summary
// @Tags         dashboard
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	total, err := h.customers.Count(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{TotalCustomers: total})
}
