package handler

import (
	"infinity-park/internal/auth"
	"infinity-park/internal/dto"
	"infinity-park/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListTicketTypes(c echo.Context) error {
	ctx := c.Request().Context()

	types, err := h.catalogService.TicketTypes(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, types)
}

// ListAttractions answers ?operational=true with operational attractions only.
func (h *CatalogHandler) ListAttractions(c echo.Context) error {
	ctx := c.Request().Context()

	attractions, err := h.catalogService.Attractions(ctx, c.QueryParam("operational") == "true")
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attractions)
}

func (h *CatalogHandler) GetAttraction(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	attraction, err := h.catalogService.Attraction(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attraction)
}

func (h *CatalogHandler) ListShows(c echo.Context) error {
	ctx := c.Request().Context()

	shows, err := h.catalogService.Shows(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, shows)
}

func (h *CatalogHandler) GetShow(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	show, err := h.catalogService.Show(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, show)
}

func (h *CatalogHandler) ListFoodCourts(c echo.Context) error {
	ctx := c.Request().Context()

	courts, err := h.catalogService.FoodCourts(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, courts)
}

func (h *CatalogHandler) GetFoodCourt(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	court, err := h.catalogService.FoodCourt(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, court)
}

func (h *CatalogHandler) ListNotices(c echo.Context) error {
	ctx := c.Request().Context()

	notices, err := h.catalogService.Notices(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, notices)
}

func (h *CatalogHandler) ListParkInfo(c echo.Context) error {
	ctx := c.Request().Context()

	entries, err := h.catalogService.ParkInfo(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entries)
}

func (h *CatalogHandler) GetParkInfo(c echo.Context) error {
	ctx := c.Request().Context()

	entry, err := h.catalogService.ParkInfoEntry(ctx, c.Param("key"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entry)
}

// -------- admin --------

func (h *CatalogHandler) CreateAttraction(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AttractionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	attraction, err := h.catalogService.CreateAttraction(ctx, auth.FromContext(ctx), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, attraction)
}

func (h *CatalogHandler) UpdateAttraction(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.AttractionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	attraction, err := h.catalogService.UpdateAttraction(ctx, auth.FromContext(ctx), id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attraction)
}

func (h *CatalogHandler) ToggleAttraction(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	attraction, err := h.catalogService.ToggleAttraction(ctx, auth.FromContext(ctx), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, attraction)
}

func (h *CatalogHandler) CreateShow(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ShowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	show, err := h.catalogService.CreateShow(ctx, auth.FromContext(ctx), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, show)
}

func (h *CatalogHandler) UpdateShow(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ShowRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	show, err := h.catalogService.UpdateShow(ctx, auth.FromContext(ctx), id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, show)
}

func (h *CatalogHandler) ToggleShow(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	show, err := h.catalogService.ToggleShow(ctx, auth.FromContext(ctx), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, show)
}
