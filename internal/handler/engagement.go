package handler

import (
	"infinity-park/internal/dto"
	"infinity-park/internal/model"
	"infinity-park/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type EngagementHandler struct {
	engagementService service.EngagementService
}

func NewEngagementHandler(engagementService service.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
	}
}

func (h *EngagementHandler) CheckIn(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	checkIn, err := h.engagementService.CheckIn(ctx, sess, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, checkIn)
}

func (h *EngagementHandler) Rate(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req dto.RatingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	resp, err := h.engagementService.Rate(ctx, sess, req)
	if err != nil {
		return err
	}

	status := http.StatusOK
	if resp.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, resp)
}

func (h *EngagementHandler) RatingSummary(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	summary, err := h.engagementService.RatingSummary(ctx, model.ItemKind(c.Param("kind")), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary)
}
