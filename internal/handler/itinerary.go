package handler

import (
	"infinity-park/internal/dto"
	"infinity-park/internal/itinerary"
	"infinity-park/internal/model"
	"infinity-park/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ItineraryHandler struct {
	itineraryService service.ItineraryService
	drafts           *itinerary.Store
}

func NewItineraryHandler(itineraryService service.ItineraryService, drafts *itinerary.Store) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		drafts:           drafts,
	}
}

func draftResponse(d *itinerary.Draft) dto.DraftResponse {
	resp := dto.DraftResponse{
		State:   string(d.State()),
		Entries: make([]dto.DraftEntry, 0, d.Len()),
	}
	if sel, ok := d.Staged(); ok {
		resp.Staged = &dto.DraftEntry{Index: -1, Kind: string(sel.Kind), ReferenceID: sel.RefID, Name: sel.Name}
	}
	for i, e := range d.Entries() {
		resp.Entries = append(resp.Entries, dto.DraftEntry{
			Index:       i,
			Kind:        string(e.Kind),
			ReferenceID: e.RefID,
			Name:        e.Name,
			PlannedTime: e.PlannedTime,
		})
	}
	return resp
}

// withDraft runs fn on the caller's draft and answers with the draft as it
// stands afterwards.
func (h *ItineraryHandler) withDraft(c echo.Context, fn func(*itinerary.Draft) error) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var resp dto.DraftResponse
	err = h.drafts.With(sess.UserID, func(d *itinerary.Draft) error {
		if err := fn(d); err != nil {
			return err
		}
		resp = draftResponse(d)
		return nil
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *ItineraryHandler) Selectable(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.itineraryService.Selectable(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ItineraryHandler) GetDraft(c echo.Context) error {
	return h.withDraft(c, func(*itinerary.Draft) error { return nil })
}

func (h *ItineraryHandler) DiscardDraft(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	h.drafts.Discard(sess.UserID)
	return c.NoContent(http.StatusNoContent)
}

func (h *ItineraryHandler) SelectItem(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := currentSession(c); err != nil {
		return err
	}

	var req dto.SelectItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sel, err := h.itineraryService.Resolve(ctx, model.ItemKind(req.Kind), req.ReferenceID)
	if err != nil {
		return err
	}

	return h.withDraft(c, func(d *itinerary.Draft) error {
		d.Select(sel)
		return nil
	})
}

func (h *ItineraryHandler) AddStaged(c echo.Context) error {
	return h.withDraft(c, func(d *itinerary.Draft) error {
		_, err := d.AddStaged()
		return err
	})
}

func (h *ItineraryHandler) UpdateTime(c echo.Context) error {
	if _, err := currentSession(c); err != nil {
		return err
	}

	idx, err := indexParam(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTimeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	return h.withDraft(c, func(d *itinerary.Draft) error {
		return d.UpdateTime(idx, req.PlannedTime)
	})
}

func (h *ItineraryHandler) RemoveItem(c echo.Context) error {
	if _, err := currentSession(c); err != nil {
		return err
	}

	idx, err := indexParam(c)
	if err != nil {
		return err
	}

	return h.withDraft(c, func(d *itinerary.Draft) error {
		return d.Remove(idx)
	})
}

func (h *ItineraryHandler) SaveDraft(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	var req dto.SaveItineraryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	var saved *model.Itinerary
	err = h.drafts.With(sess.UserID, func(d *itinerary.Draft) error {
		saved, err = h.itineraryService.Save(ctx, sess, d, req.Name, req.VisitDate)
		return err
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, saved)
}

func (h *ItineraryHandler) ListItineraries(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	summaries, err := h.itineraryService.List(ctx, sess)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summaries)
}

func (h *ItineraryHandler) GetItinerary(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	plan, err := h.itineraryService.Get(ctx, sess, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, plan)
}

func (h *ItineraryHandler) DeleteItinerary(c echo.Context) error {
	ctx := c.Request().Context()

	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.itineraryService.Delete(ctx, sess, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
