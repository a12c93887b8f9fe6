package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flowcrm/customer-system/internal/api/metrics"
	"github.com/flowcrm/customer-system/internal/api/middleware"
	"github.com/flowcrm/customer-system/internal/core/domain"
	"github.com/flowcrm/customer-system/internal/core/ports"
)

// CustomerHandler handles HTTP requests for customer records.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

type customerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Salary  string `json:"salary" validate:"required"`
	Address string `json:"address"`
	Job     string `json:"job"`
}

type listCustomersResponse struct {
	Items []*domain.Customer `json:"items"`
	Total int                `json:"total"`
}

// List handles GET /customers.
//
// @Summary      List all customers in insertion order
// @Tags         customers
// @Produce      json
// @Security     SessionCookie
// @Success      200  {object}  listCustomersResponse
// @Failure      401  {object}  map[string]string
// @Router       /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	customers, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if customers == nil {
		customers = []*domain.Customer{}
	}
	return c.JSON(http.StatusOK, listCustomersResponse{Items: customers, Total: len(customers)})
}

// Get handles GET /customers/:id.
//
// @Summary      Get a customer by id
// @Tags         customers
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Customer id"
// @Success      200  {object}  domain.Customer
// @Failure      404  {object}  map[string]string
// @Router       /customers/{id} [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	customer, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Create handles POST /customers.
//
// @Summary      Create a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      customerRequest  true  "Customer fields"
// @Success      201   {object}  domain.Customer
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /customers [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	user := middleware.UserFromContext(c)
	createdBy := ""
	if user != nil {
		createdBy = user.ID
	}

	customer, err := h.service.Create(c.Request().Context(), input, createdBy)
	if err != nil {
		observeValidationError(err)
		return err
	}

	metrics.CustomersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, customer)
}

// Update handles POST /customers/:id — a full replace of the mutable fields.
//
// @Summary      Update a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        id    path      string           true  "Customer id"
// @Param        body  body      customerRequest  true  "Customer fields"
// @Success      200   {object}  domain.Customer
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /customers/{id} [post]
func (h *CustomerHandler) Update(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	customer, err := h.service.Update(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		observeValidationError(err)
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// Delete handles POST /customers/:id/delete. The route is wrapped in the
// AdminOnly middleware; by the time this runs the caller is a verified admin.
//
// @Summary      Delete a customer (admin only)
// @Tags         customers
// @Security     SessionCookie
// @Param        id  path  string  true  "Customer id"
// @Success      204  "customer deleted"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /customers/{id}/delete [post]
func (h *CustomerHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.CustomersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

func (h *CustomerHandler) bindInput(c echo.Context) (ports.CustomerInput, error) {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return ports.CustomerInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.CustomerInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ports.CustomerInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Salary:  req.Salary,
		Address: req.Address,
		Job:     req.Job,
	}, nil
}

func observeValidationError(err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		metrics.ValidationErrorsTotal.WithLabelValues(ve.Field).Inc()
	}
}
