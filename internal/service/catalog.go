package service

import (
	"context"
	"errors"
	"fmt"
	"infinity-park/internal/apperr"
	"infinity-park/internal/auth"
	"infinity-park/internal/cache"
	"infinity-park/internal/dto"
	"infinity-park/internal/logger"
	"infinity-park/internal/model"
	"infinity-park/internal/repository"
	"time"

	"gorm.io/gorm"
)

type CatalogService interface {
	TicketTypes(ctx context.Context) ([]*model.TicketType, error)
	Attractions(ctx context.Context, operationalOnly bool) ([]*model.Attraction, error)
	Attraction(ctx context.Context, id uint) (*model.Attraction, error)
	Shows(ctx context.Context) ([]*model.Show, error)
	Show(ctx context.Context, id uint) (*model.Show, error)
	FoodCourts(ctx context.Context) ([]*model.FoodCourt, error)
	FoodCourt(ctx context.Context, id uint) (*model.FoodCourt, error)
	Notices(ctx context.Context) ([]*model.Notice, error)
	ParkInfo(ctx context.Context) ([]*model.ParkInfo, error)
	ParkInfoEntry(ctx context.Context, key string) (*model.ParkInfo, error)

	CreateAttraction(ctx context.Context, sess *auth.Session, req dto.AttractionRequest) (*model.Attraction, error)
	UpdateAttraction(ctx context.Context, sess *auth.Session, id uint, req dto.AttractionRequest) (*model.Attraction, error)
	ToggleAttraction(ctx context.Context, sess *auth.Session, id uint) (*model.Attraction, error)
	CreateShow(ctx context.Context, sess *auth.Session, req dto.ShowRequest) (*model.Show, error)
	UpdateShow(ctx context.Context, sess *auth.Session, id uint, req dto.ShowRequest) (*model.Show, error)
	ToggleShow(ctx context.Context, sess *auth.Session, id uint) (*model.Show, error)
}

type catalogServiceImpl struct {
	ticketTypeRepo repository.TicketTypeRepository
	attractionRepo repository.AttractionRepository
	showRepo       repository.ShowRepository
	foodCourtRepo  repository.FoodCourtRepository
	noticeRepo     repository.NoticeRepository
	parkInfoRepo   repository.ParkInfoRepository
	cache          cache.Cache
	log            *logger.Logger
	now            func() time.Time
}

func NewCatalogService(
	ticketTypeRepo repository.TicketTypeRepository,
	attractionRepo repository.AttractionRepository,
	showRepo repository.ShowRepository,
	foodCourtRepo repository.FoodCourtRepository,
	noticeRepo repository.NoticeRepository,
	parkInfoRepo repository.ParkInfoRepository,
	catalogCache cache.Cache,
	log *logger.Logger,
) CatalogService {
	return &catalogServiceImpl{
		ticketTypeRepo: ticketTypeRepo,
		attractionRepo: attractionRepo,
		showRepo:       showRepo,
		foodCourtRepo:  foodCourtRepo,
		noticeRepo:     noticeRepo,
		parkInfoRepo:   parkInfoRepo,
		cache:          catalogCache,
		log:            log,
		now:            time.Now,
	}
}

// cached serves key from the cache, falling back to load and filling the
// cache on a miss. Cache failures are logged and otherwise ignored.
func cached[T any](ctx context.Context, s *catalogServiceImpl, key string, load func() ([]*T, error)) ([]*T, error) {
	var out []*T
	hit, err := s.cache.Get(ctx, key, &out)
	if err != nil {
		s.log.WithError(err).Warn("catalog cache read", "key", key)
	}
	if hit {
		return out, nil
	}

	out, err = load()
	if err != nil {
		return nil, dbError("load "+key, err)
	}

	if err := s.cache.Set(ctx, key, out); err != nil {
		s.log.WithError(err).Warn("catalog cache write", "key", key)
	}
	return out, nil
}

func (s *catalogServiceImpl) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.log.WithError(err).Warn("catalog cache invalidate", "keys", keys)
	}
}

func (s *catalogServiceImpl) TicketTypes(ctx context.Context) ([]*model.TicketType, error) {
	return cached(ctx, s, cache.KeyTicketTypes, func() ([]*model.TicketType, error) {
		return s.ticketTypeRepo.ListActive(ctx)
	})
}

func (s *catalogServiceImpl) Attractions(ctx context.Context, operationalOnly bool) ([]*model.Attraction, error) {
	key := cache.KeyAttractionsAll
	if operationalOnly {
		key = cache.KeyAttractionsOperational
	}
	return cached(ctx, s, key, func() ([]*model.Attraction, error) {
		return s.attractionRepo.List(ctx, operationalOnly)
	})
}

func (s *catalogServiceImpl) Attraction(ctx context.Context, id uint) (*model.Attraction, error) {
	attraction, err := s.attractionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(fmt.Sprintf("get attraction %d", id), err)
	}
	return attraction, nil
}

func (s *catalogServiceImpl) Shows(ctx context.Context) ([]*model.Show, error) {
	return cached(ctx, s, cache.KeyShows, func() ([]*model.Show, error) {
		return s.showRepo.List(ctx, true)
	})
}

func (s *catalogServiceImpl) Show(ctx context.Context, id uint) (*model.Show, error) {
	show, err := s.showRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(fmt.Sprintf("get show %d", id), err)
	}
	return show, nil
}

func (s *catalogServiceImpl) FoodCourts(ctx context.Context) ([]*model.FoodCourt, error) {
	return cached(ctx, s, cache.KeyFoodCourts, func() ([]*model.FoodCourt, error) {
		return s.foodCourtRepo.ListActive(ctx)
	})
}

func (s *catalogServiceImpl) FoodCourt(ctx context.Context, id uint) (*model.FoodCourt, error) {
	foodCourt, err := s.foodCourtRepo.FindWithMenu(ctx, id)
	if err != nil {
		return nil, dbError(fmt.Sprintf("get food court %d", id), err)
	}
	return foodCourt, nil
}

func (s *catalogServiceImpl) Notices(ctx context.Context) ([]*model.Notice, error) {
	notices, err := s.noticeRepo.ListCurrent(ctx, s.now().UTC())
	if err != nil {
		return nil, dbError("list notices", err)
	}
	return notices, nil
}

func (s *catalogServiceImpl) ParkInfo(ctx context.Context) ([]*model.ParkInfo, error) {
	entries, err := s.parkInfoRepo.List(ctx)
	if err != nil {
		return nil, dbError("list park info", err)
	}
	return entries, nil
}

func (s *catalogServiceImpl) ParkInfoEntry(ctx context.Context, key string) (*model.ParkInfo, error) {
	entry, err := s.parkInfoRepo.FindByKey(ctx, key)
	if err != nil {
		return nil, dbError("get park info "+key, err)
	}
	return entry, nil
}

func attractionFromRequest(req dto.AttractionRequest) *model.Attraction {
	status := model.AttractionStatus(req.Status)
	if status == "" {
		status = model.AttractionOperational
	}
	return &model.Attraction{
		Name:              req.Name,
		ShortDescription:  req.ShortDescription,
		Description:       req.Description,
		CapacityPerCycle:  req.CapacityPerCycle,
		CycleMinutes:      req.CycleMinutes,
		MinHeightCM:       req.MinHeightCM,
		MaxHeightCM:       req.MaxHeightCM,
		MinAge:            req.MinAge,
		CompanionUntilAge: req.CompanionUntilAge,
		Kind:              req.Kind,
		MapLocation:       req.MapLocation,
		ImagePath:         req.ImagePath,
		Status:            status,
		ThrillLevel:       req.ThrillLevel,
		Accessibility:     req.Accessibility,
	}
}

func checkAttraction(a *model.Attraction) error {
	switch {
	case a.Name == "":
		return apperr.Validation("name", "required")
	case a.CapacityPerCycle < 1:
		return apperr.Validation("capacity_per_cycle", "must be at least 1")
	case !a.Status.IsValid():
		return apperr.Validation("status", "unknown attraction status")
	}
	return nil
}

func nameConflict(err error, what string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(fmt.Sprintf("a %s with this name already exists", what))
	}
	return err
}

func (s *catalogServiceImpl) CreateAttraction(ctx context.Context, sess *auth.Session, req dto.AttractionRequest) (*model.Attraction, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	attraction := attractionFromRequest(req)
	if err := checkAttraction(attraction); err != nil {
		return nil, err
	}

	if err := s.attractionRepo.Create(ctx, attraction); err != nil {
		return nil, dbError("create attraction", nameConflict(err, "attraction"))
	}
	s.invalidate(ctx, cache.KeyAttractionsAll, cache.KeyAttractionsOperational)

	return attraction, nil
}

func (s *catalogServiceImpl) UpdateAttraction(ctx context.Context, sess *auth.Session, id uint, req dto.AttractionRequest) (*model.Attraction, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	existing, err := s.attractionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(fmt.Sprintf("get attraction %d", id), err)
	}

	attraction := attractionFromRequest(req)
	attraction.ID = existing.ID
	attraction.LastMaintenance = existing.LastMaintenance
	attraction.NextMaintenance = existing.NextMaintenance
	if err := checkAttraction(attraction); err != nil {
		return nil, err
	}

	if err := s.attractionRepo.Update(ctx, attraction); err != nil {
		return nil, dbError(fmt.Sprintf("update attraction %d", id), nameConflict(err, "attraction"))
	}
	s.invalidate(ctx, cache.KeyAttractionsAll, cache.KeyAttractionsOperational)

	return attraction, nil
}

// ToggleAttraction switches between Operational and Scheduled Maintenance.
func (s *catalogServiceImpl) ToggleAttraction(ctx context.Context, sess *auth.Session, id uint) (*model.Attraction, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	attraction, err := s.attractionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(fmt.Sprintf("get attraction %d", id), err)
	}

	attraction.Status = attraction.Status.Toggled()
	if err := s.attractionRepo.SetStatus(ctx, id, attraction.Status); err != nil {
		return nil, dbError(fmt.Sprintf("toggle attraction %d", id), err)
	}
	s.invalidate(ctx, cache.KeyAttractionsAll, cache.KeyAttractionsOperational)

	return attraction, nil
}

func showFromRequest(req dto.ShowRequest) *model.Show {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &model.Show{
		Name:            req.Name,
		Description:     req.Description,
		Kind:            req.Kind,
		Location:        req.Location,
		Schedule:        req.Schedule,
		DurationMinutes: req.DurationMinutes,
		ImageURL:        req.ImageURL,
		Active:          active,
	}
}

func checkShow(sh *model.Show) error {
	switch {
	case sh.Name == "":
		return apperr.Validation("name", "required")
	case sh.DurationMinutes < 0:
		return apperr.Validation("duration_minutes", "must not be negative")
	}
	return nil
}

func (s *catalogServiceImpl) CreateShow(ctx context.Context, sess *auth.Session, req dto.ShowRequest) (*model.Show, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	show := showFromRequest(req)
	if err := checkShow(show); err != nil {
		return nil, err
	}

	if err := s.showRepo.Create(ctx, show); err != nil {
		return nil, dbError("create show", nameConflict(err, "show"))
	}
	s.invalidate(ctx, cache.KeyShows)

	return show, nil
}

func (s *catalogServiceImpl) UpdateShow(ctx context.Context, sess *auth.Session, id uint, req dto.ShowRequest) (*model.Show, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	existing, err := s.showRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(fmt.Sprintf("get show %d", id), err)
	}

	show := showFromRequest(req)
	show.ID = existing.ID
	if req.Active == nil {
		show.Active = existing.Active
	}
	if err := checkShow(show); err != nil {
		return nil, err
	}

	if err := s.showRepo.Update(ctx, show); err != nil {
		return nil, dbError(fmt.Sprintf("update show %d", id), nameConflict(err, "show"))
	}
	s.invalidate(ctx, cache.KeyShows)

	return show, nil
}

func (s *catalogServiceImpl) ToggleShow(ctx context.Context, sess *auth.Session, id uint) (*model.Show, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}

	show, err := s.showRepo.FindByID(ctx, id)
	if err != nil {
		return nil, dbError(fmt.Sprintf("get show %d", id), err)
	}

	show.Active = !show.Active
	if err := s.showRepo.SetActive(ctx, id, show.Active); err != nil {
		return nil, dbError(fmt.Sprintf("toggle show %d", id), err)
	}
	s.invalidate(ctx, cache.KeyShows)

	return show, nil
}
