package service

import (
	"context"
	"errors"
	"fmt"
	"infinity-park/internal/apperr"
	"infinity-park/internal/auth"
	"infinity-park/internal/dto"
	"infinity-park/internal/itinerary"
	"infinity-park/internal/model"
	"infinity-park/internal/repository"
	"strings"

	"gorm.io/gorm"
)

type ItineraryService interface {
	Selectable(ctx context.Context) ([]dto.SelectableItem, error)
	Resolve(ctx context.Context, kind model.ItemKind, referenceID uint) (itinerary.Selection, error)
	Save(ctx context.Context, sess *auth.Session, draft *itinerary.Draft, name, visitDate string) (*model.Itinerary, error)
	List(ctx context.Context, sess *auth.Session) ([]*model.ItinerarySummary, error)
	Get(ctx context.Context, sess *auth.Session, itineraryID uint) (*model.Itinerary, error)
	Delete(ctx context.Context, sess *auth.Session, itineraryID uint) error
}

type itineraryServiceImpl struct {
	db             *gorm.DB
	itineraryRepo  repository.ItineraryRepository
	attractionRepo repository.AttractionRepository
	showRepo       repository.ShowRepository
	foodCourtRepo  repository.FoodCourtRepository
	window         VisitWindow
}

func NewItineraryService(
	db *gorm.DB,
	itineraryRepo repository.ItineraryRepository,
	attractionRepo repository.AttractionRepository,
	showRepo repository.ShowRepository,
	foodCourtRepo repository.FoodCourtRepository,
	window VisitWindow,
) ItineraryService {
	return &itineraryServiceImpl{
		db:             db,
		itineraryRepo:  itineraryRepo,
		attractionRepo: attractionRepo,
		showRepo:       showRepo,
		foodCourtRepo:  foodCourtRepo,
		window:         window,
	}
}

// Selectable lists operational attractions, active shows and active food
// courts, in that order.
func (s *itineraryServiceImpl) Selectable(ctx context.Context) ([]dto.SelectableItem, error) {
	attractions, err := s.attractionRepo.List(ctx, true)
	if err != nil {
		return nil, dbError("list attractions", err)
	}
	shows, err := s.showRepo.List(ctx, true)
	if err != nil {
		return nil, dbError("list shows", err)
	}
	foodCourts, err := s.foodCourtRepo.ListActive(ctx)
	if err != nil {
		return nil, dbError("list food courts", err)
	}

	items := make([]dto.SelectableItem, 0, len(attractions)+len(shows)+len(foodCourts))
	for _, a := range attractions {
		items = append(items, dto.SelectableItem{Kind: string(model.KindAttraction), ReferenceID: a.ID, Name: a.Name, Detail: a.ShortDescription})
	}
	for _, sh := range shows {
		items = append(items, dto.SelectableItem{Kind: string(model.KindShow), ReferenceID: sh.ID, Name: sh.Name, Detail: sh.Schedule})
	}
	for _, fc := range foodCourts {
		items = append(items, dto.SelectableItem{Kind: string(model.KindFoodCourt), ReferenceID: fc.ID, Name: fc.Name, Detail: fc.OpeningHours})
	}

	return items, nil
}

func (s *itineraryServiceImpl) Resolve(ctx context.Context, kind model.ItemKind, referenceID uint) (itinerary.Selection, error) {
	name, err := s.lookupName(ctx, kind, referenceID)
	if err != nil {
		return itinerary.Selection{}, err
	}
	return itinerary.Selection{Kind: kind, RefID: referenceID, Name: name}, nil
}

func (s *itineraryServiceImpl) lookupName(ctx context.Context, kind model.ItemKind, referenceID uint) (string, error) {
	op := fmt.Sprintf("find %s %d", kind, referenceID)

	switch kind {
	case model.KindAttraction:
		a, err := s.attractionRepo.FindByID(ctx, referenceID)
		if err != nil {
			return "", dbError(op, err)
		}
		return a.Name, nil
	case model.KindShow:
		sh, err := s.showRepo.FindByID(ctx, referenceID)
		if err != nil {
			return "", dbError(op, err)
		}
		return sh.Name, nil
	case model.KindFoodCourt:
		fc, err := s.foodCourtRepo.FindByID(ctx, referenceID)
		if err != nil {
			return "", dbError(op, err)
		}
		return fc.Name, nil
	default:
		return "", apperr.Validation("kind", "must be attraction, show or food_court")
	}
}

// Save writes the draft as one itinerary with positions 1..K. The draft is
// reset only after the transaction commits.
func (s *itineraryServiceImpl) Save(ctx context.Context, sess *auth.Session, draft *itinerary.Draft, name, visitDate string) (*model.Itinerary, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "give the itinerary a name")
	}
	if draft == nil || draft.Len() == 0 {
		return nil, apperr.Validation("items", "add at least one item")
	}
	if err := s.window.Check("visit_date", visitDate); err != nil {
		return nil, err
	}

	entries := draft.Entries()
	plan := &model.Itinerary{
		UserID:    sess.UserID,
		Name:      name,
		VisitDate: visitDate,
	}
	items := make([]*model.ItineraryItem, len(entries))

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.itineraryRepo.Create(ctx, tx, plan); err != nil {
			return apperr.Persistence("store itinerary", err)
		}

		for i, e := range entries {
			items[i] = &model.ItineraryItem{
				ItineraryID: plan.ID,
				Kind:        e.Kind,
				ReferenceID: e.RefID,
				PlannedTime: e.PlannedTime,
				Position:    i + 1,
			}
		}
		if err := s.itineraryRepo.CreateItems(ctx, tx, items); err != nil {
			return apperr.Persistence("store itinerary items", err)
		}
		return nil
	})
	if err != nil {
		return nil, dbError("commit itinerary", err)
	}

	plan.Items = make([]model.ItineraryItem, len(items))
	for i, item := range items {
		item.Name = entries[i].Name
		plan.Items[i] = *item
	}
	draft.MarkSaved()

	return plan, nil
}

func (s *itineraryServiceImpl) List(ctx context.Context, sess *auth.Session) ([]*model.ItinerarySummary, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	summaries, err := s.itineraryRepo.ListSummaries(ctx, sess.UserID)
	if err != nil {
		return nil, dbError("list itineraries", err)
	}
	return summaries, nil
}

// Get loads an itinerary with its items in position order. Items whose
// catalog entry was removed keep an empty name.
func (s *itineraryServiceImpl) Get(ctx context.Context, sess *auth.Session, itineraryID uint) (*model.Itinerary, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	plan, err := s.itineraryRepo.FindForUser(ctx, sess.UserID, itineraryID)
	if err != nil {
		return nil, dbError(fmt.Sprintf("get itinerary %d", itineraryID), err)
	}

	for i := range plan.Items {
		item := &plan.Items[i]
		name, err := s.lookupName(ctx, item.Kind, item.ReferenceID)
		if errors.Is(err, apperr.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		item.Name = name
	}

	return plan, nil
}

func (s *itineraryServiceImpl) Delete(ctx context.Context, sess *auth.Session, itineraryID uint) error {
	if err := requireSession(sess); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.itineraryRepo.Delete(ctx, tx, sess.UserID, itineraryID)
	})
	return dbError(fmt.Sprintf("delete itinerary %d", itineraryID), err)
}
