package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/flowcrm/customer-system/internal/api/metrics"
	"github.com/flowcrm/customer-system/internal/api/middleware"
	"github.com/flowcrm/customer-system/internal/core/domain"
	"github.com/flowcrm/customer-system/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

// NewAuthHandler creates the handler for registration, login, and logout.
// secureCookie marks the session cookie Secure; enable it outside development.
func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

type registerStatusResponse struct {
	Open bool `json:"open"`
}

// RegisterStatus reports whether the bootstrap registration is still open.
//
// @Summary      Check registration availability
// @Tags         auth
// @Produce      json
// @Success      200  {object}  registerStatusResponse
// @Router       /register [get]
func (h *AuthHandler) RegisterStatus(c echo.Context) error {
	open, err := h.authService.CanRegister(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, registerStatusResponse{Open: open})
}

// Register creates the bootstrap administrator account.
//
// @Summary      Register the first (and only) administrator
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRegistrationClosed):
			metrics.RegistrationsTotal.WithLabelValues("closed").Inc()
		default:
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates by username or email, sets the session cookie, and
// returns a bearer API token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	c.SetCookie(h.sessionCookie(result.SessionToken, 0))
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.SessionsActive.Inc()

	return c.JSON(http.StatusOK, authResponse{Token: result.APIToken, User: result.User})
}

// Logout destroys the current session and clears the cookie. Safe to repeat.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     SessionCookie
// @Success      204  "session destroyed"
// @Failure      401  {object}  map[string]string
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("session_token").(string)
	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}

	// expire the cookie client-side as well
	c.SetCookie(h.sessionCookie("", -1))
	metrics.SessionsActive.Dec()

	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		cookie.Expires = time.Unix(0, 0)
	}
	return cookie
}
