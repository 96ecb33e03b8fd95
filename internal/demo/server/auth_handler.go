package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barberbook/admin-console/internal/core/domain"
	"github.com/barberbook/admin-console/internal/demo/auth"
	"github.com/barberbook/admin-console/internal/demo/metrics"
)

// AuthHandler exposes the auth slice of the REST contract over the demo
// auth service.
type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User         *domain.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type refreshResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	User *domain.User `json:"user"`
}

// Login authenticates a demo account and returns a token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		User:         res.User,
		Token:        res.Token,
		RefreshToken: res.RefreshToken,
	})
}

// Refresh exchanges a refresh token for a new access token.
//
// @Summary      Refresh access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  refreshResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.svc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("rejected").Inc()
		return err
	}
	metrics.RefreshesTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, refreshResponse{Token: token})
}

// Logout revokes the caller's refresh token. Best-effort by contract: the
// client treats any outcome as success.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid, _ := c.Get("sid").(string)
	if err := h.svc.Logout(c.Request().Context(), sid); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated account's user record.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  meResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _ := c.Get("user_id").(string)
	user, err := h.svc.UserByID(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
	}
	return c.JSON(http.StatusOK, meResponse{User: user})
}
