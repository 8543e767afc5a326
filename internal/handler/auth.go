package handler

import (
	"infinity-park/internal/dto"
	"infinity-park/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService       service.AuthService
	engagementService service.EngagementService
}

func NewAuthHandler(authService service.AuthService, engagementService service.EngagementService) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		engagementService: engagementService,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(ctx, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.authService.Login(ctx, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(ctx, sess, req); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Profile(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	profile, err := h.engagementService.Profile(ctx, sess)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profile)
}
