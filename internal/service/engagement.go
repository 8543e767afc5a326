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
	"time"

	"gorm.io/gorm"
)

const CheckInPoints = 10

type EngagementService interface {
	CheckIn(ctx context.Context, sess *auth.Session, attractionID uint) (*model.CheckIn, error)
	Rate(ctx context.Context, sess *auth.Session, req dto.RatingRequest) (*dto.RatingResponse, error)
	RatingSummary(ctx context.Context, kind model.ItemKind, referenceID uint) (*model.RatingSummary, error)
	Profile(ctx context.Context, sess *auth.Session) (*model.Profile, error)
}

// ItemResolver confirms that a park item exists. ItineraryService satisfies it.
type ItemResolver interface {
	Resolve(ctx context.Context, kind model.ItemKind, referenceID uint) (itinerary.Selection, error)
}

type engagementServiceImpl struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	checkInRepo  repository.CheckInRepository
	ratingRepo   repository.RatingRepository
	purchaseRepo repository.PurchaseRepository
	resolver     ItemResolver
	now          func() time.Time
}

func NewEngagementService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	checkInRepo repository.CheckInRepository,
	ratingRepo repository.RatingRepository,
	purchaseRepo repository.PurchaseRepository,
	resolver ItemResolver,
	now func() time.Time,
) EngagementService {
	if now == nil {
		now = time.Now
	}
	return &engagementServiceImpl{
		db:           db,
		userRepo:     userRepo,
		checkInRepo:  checkInRepo,
		ratingRepo:   ratingRepo,
		purchaseRepo: purchaseRepo,
		resolver:     resolver,
		now:          now,
	}
}

// CheckIn awards CheckInPoints once per user, attraction and calendar day.
func (s *engagementServiceImpl) CheckIn(ctx context.Context, sess *auth.Session, attractionID uint) (*model.CheckIn, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if _, err := s.resolver.Resolve(ctx, model.KindAttraction, attractionID); err != nil {
		return nil, err
	}

	now := s.now()
	checkIn := &model.CheckIn{
		UserID:       sess.UserID,
		AttractionID: attractionID,
		CheckInDate:  now.Format(model.DateLayout),
		CheckedInAt:  now.UTC(),
		Points:       CheckInPoints,
	}

	alreadyCheckedIn := apperr.Conflict("already checked in at this attraction today")
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := s.checkInRepo.Exists(ctx, tx, sess.UserID, attractionID, checkIn.CheckInDate)
		if err != nil {
			return apperr.Persistence("check previous check-in", err)
		}
		if exists {
			return alreadyCheckedIn
		}

		if err := s.checkInRepo.Create(ctx, tx, checkIn); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return alreadyCheckedIn
			}
			return apperr.Persistence("store check-in", err)
		}
		return nil
	})
	if err != nil {
		return nil, dbError("commit check-in", err)
	}

	return checkIn, nil
}

// Rate stores or replaces the caller's rating for one park item.
func (s *engagementServiceImpl) Rate(ctx context.Context, sess *auth.Session, req dto.RatingRequest) (*dto.RatingResponse, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}
	if req.Score < 1 || req.Score > 5 {
		return nil, apperr.Validation("score", "pick a rating from 1 to 5 stars")
	}

	kind := model.ItemKind(req.Kind)
	if _, err := s.resolver.Resolve(ctx, kind, req.ReferenceID); err != nil {
		return nil, err
	}

	rating := &model.Rating{
		UserID:      sess.UserID,
		Kind:        kind,
		ReferenceID: req.ReferenceID,
		Score:       req.Score,
		Comment:     strings.TrimSpace(req.Comment),
		RatedAt:     s.now().UTC(),
	}

	var created bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = s.ratingRepo.Upsert(ctx, tx, rating)
		if err != nil {
			return apperr.Persistence("store rating", err)
		}
		return nil
	})
	if err != nil {
		return nil, dbError("commit rating", err)
	}

	resp := &dto.RatingResponse{Created: created, Message: "Your rating was updated!"}
	if created {
		resp.Message = "Rating submitted!"
	}
	return resp, nil
}

func (s *engagementServiceImpl) RatingSummary(ctx context.Context, kind model.ItemKind, referenceID uint) (*model.RatingSummary, error) {
	if !kind.IsValid() {
		return nil, apperr.Validation("kind", "must be attraction, show or food_court")
	}

	summary, err := s.ratingRepo.Summary(ctx, kind, referenceID)
	if err != nil {
		return nil, dbError(fmt.Sprintf("rating summary %s %d", kind, referenceID), err)
	}
	return summary, nil
}

func (s *engagementServiceImpl) Profile(ctx context.Context, sess *auth.Session) (*model.Profile, error) {
	if err := requireSession(sess); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, dbError("find user", err)
	}
	checkIns, err := s.checkInRepo.Stats(ctx, user.ID)
	if err != nil {
		return nil, dbError("check-in stats", err)
	}
	purchases, err := s.purchaseRepo.Stats(ctx, user.ID)
	if err != nil {
		return nil, dbError("purchase stats", err)
	}

	return &model.Profile{
		Username:      user.Username,
		RecoveryEmail: user.RecoveryEmail,
		Role:          user.Role,
		MemberSince:   user.CreatedAt,
		Points:        checkIns.Points,
		CheckIns:      checkIns.Count,
		Purchases:     purchases.Purchases,
		Tickets:       purchases.Tickets,
		TotalSpent:    purchases.TotalSpent.StringFixed(2),
	}, nil
}
