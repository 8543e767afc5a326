package handler

import (
	"infinity-park/internal/dto"
	"infinity-park/internal/model"
	"infinity-park/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{
		purchaseService: purchaseService,
	}
}

func (h *PurchaseHandler) VisitDates(c echo.Context) error {
	methods := model.PaymentMethods()
	resp := dto.VisitDatesResponse{
		Dates:          h.purchaseService.VisitDates(),
		PaymentMethods: make([]dto.PaymentMethod, len(methods)),
	}
	for i, m := range methods {
		resp.PaymentMethods[i] = dto.PaymentMethod{Code: string(m), Label: m.Label()}
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *PurchaseHandler) Purchase(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req dto.PurchaseRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	purchase, err := h.purchaseService.Purchase(ctx, sess, req)
	if err != nil {
		return err
	}

	codes := make([]string, len(purchase.Tickets))
	for i, t := range purchase.Tickets {
		codes[i] = t.Code
	}

	return c.JSON(http.StatusCreated, dto.PurchaseResponse{
		PurchaseID:      purchase.ID,
		TransactionCode: purchase.TransactionCode,
		Status:          string(purchase.Status),
		TotalAmount:     purchase.TotalAmount.StringFixed(2),
		TicketCodes:     codes,
	})
}

func (h *PurchaseHandler) ListPurchases(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	summaries, err := h.purchaseService.ListPurchases(ctx, sess)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summaries)
}

func (h *PurchaseHandler) GetPurchase(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	purchase, err := h.purchaseService.GetPurchase(ctx, sess, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, purchase)
}
