package service

import (
	"context"
	"fmt"
	"infinity-park/internal/apperr"
	"infinity-park/internal/dto"
	"infinity-park/internal/itinerary"
	"infinity-park/internal/model"
	"infinity-park/internal/repository"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func TestCheckInOncePerDay(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()
	sess := f.visitor(t)
	coaster := f.attraction(t, "Alpha Roller Coaster")

	checkIn, err := f.engagement.CheckIn(ctx, sess, coaster.ID)
	require.NoError(t, err)
	assert.Equal(t, CheckInPoints, checkIn.Points)
	assert.Equal(t, "2025-05-20", checkIn.CheckInDate)

	f.clock.Advance(2 * time.Hour)
	_, err = f.engagement.CheckIn(ctx, sess, coaster.ID)
	require.True(t, apperr.IsConflict(err), "got %v", err)

	_, err = f.engagement.CheckIn(ctx, sess, f.attraction(t, "Rio Bravo Kids").ID)
	require.NoError(t, err)

	f.clock.Advance(24 * time.Hour)
	_, err = f.engagement.CheckIn(ctx, sess, coaster.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), f.count(t, &model.CheckIn{}))
}

func TestCheckInErrors(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()

	_, err := f.engagement.CheckIn(ctx, nil, 1)
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)

	_, err = f.engagement.CheckIn(ctx, f.visitor(t), 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRateCreatesThenUpdates(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()
	sess := f.visitor(t)
	other := f.visitor(t)
	show := f.show(t, "Character Parade")

	resp, err := f.engagement.Rate(ctx, sess, dto.RatingRequest{Kind: "show", ReferenceID: show.ID, Score: 2, Comment: "too short"})
	require.NoError(t, err)
	assert.True(t, resp.Created)

	resp, err = f.engagement.Rate(ctx, sess, dto.RatingRequest{Kind: "show", ReferenceID: show.ID, Score: 4})
	require.NoError(t, err)
	assert.False(t, resp.Created)
	assert.Equal(t, "Your rating was updated!", resp.Message)

	_, err = f.engagement.Rate(ctx, other, dto.RatingRequest{Kind: "show", ReferenceID: show.ID, Score: 5})
	require.NoError(t, err)

	summary, err := f.engagement.RatingSummary(ctx, model.KindShow, show.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assert.InDelta(t, 4.5, summary.Average, 0.001)

	var stored model.Rating
	require.NoError(t, f.db.Where("user_id = ?", sess.UserID).First(&stored).Error)
	assert.Equal(t, 4, stored.Score)
	assert.Empty(t, stored.Comment)
}

// hideRatings makes every read of the ratings table come back empty, as a
// concurrent first rating would see it before the other commits.
func hideRatings(t *testing.T, f *fixture) {
	t.Helper()

	err := f.db.Callback().Query().Before("gorm:query").Register("test:hide_ratings", func(tx *gorm.DB) {
		if tx.Statement.Table == "ratings" {
			tx.Statement.AddClause(clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "1 = 0"}}})
		}
	})
	require.NoError(t, err)
}

func TestRateLosingFirstRatingRaceUpdates(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()
	sess := f.visitor(t)
	show := f.show(t, "Fire Acrobats")

	_, err := f.engagement.Rate(ctx, sess, dto.RatingRequest{Kind: "show", ReferenceID: show.ID, Score: 2})
	require.NoError(t, err)

	hideRatings(t, f)
	resp, err := f.engagement.Rate(ctx, sess, dto.RatingRequest{Kind: "show", ReferenceID: show.ID, Score: 5, Comment: "great"})
	require.NoError(t, err)
	assert.True(t, resp.Created)
	require.NoError(t, f.db.Callback().Query().Remove("test:hide_ratings"))

	var stored []model.Rating
	require.NoError(t, f.db.Where("user_id = ?", sess.UserID).Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, 5, stored[0].Score)
	assert.Equal(t, "great", stored[0].Comment)
}

func TestRateValidation(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()
	sess := f.visitor(t)

	_, err := f.engagement.Rate(ctx, sess, dto.RatingRequest{Kind: "show", ReferenceID: 1, Score: 0})
	assert.True(t, apperr.IsValidation(err))

	_, err = f.engagement.Rate(ctx, sess, dto.RatingRequest{Kind: "show", ReferenceID: 1, Score: 6})
	assert.True(t, apperr.IsValidation(err))

	_, err = f.engagement.Rate(ctx, sess, dto.RatingRequest{Kind: "ride", ReferenceID: 1, Score: 3})
	assert.True(t, apperr.IsValidation(err))

	_, err = f.engagement.Rate(ctx, sess, dto.RatingRequest{Kind: "food_court", ReferenceID: 9999, Score: 3})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.engagement.Rate(ctx, nil, dto.RatingRequest{Kind: "show", ReferenceID: 1, Score: 3})
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)

	summary, err := f.engagement.RatingSummary(ctx, model.KindShow, 1)
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.Zero(t, summary.Average)
}

func TestProfileAggregates(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()
	sess := f.visitor(t)

	_, err := f.engagement.CheckIn(ctx, sess, f.attraction(t, "Alpha Roller Coaster").ID)
	require.NoError(t, err)
	_, err = f.engagement.CheckIn(ctx, sess, f.attraction(t, "Rio Bravo Kids").ID)
	require.NoError(t, err)

	_, err = f.purchases.Purchase(ctx, sess, dto.PurchaseRequest{
		TicketTypeID: f.ticketType(t, "Child").ID, Quantity: 3, VisitDate: "2025-05-25", PaymentMethod: "pix",
	})
	require.NoError(t, err)
	_, err = f.purchases.Purchase(ctx, sess, dto.PurchaseRequest{
		TicketTypeID: f.ticketType(t, "Senior").ID, Quantity: 1, VisitDate: "2025-05-25", PaymentMethod: "pix",
	})
	require.NoError(t, err)

	profile, err := f.engagement.Profile(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCommon, profile.Role)
	assert.Equal(t, int64(20), profile.Points)
	assert.Equal(t, int64(2), profile.CheckIns)
	assert.Equal(t, int64(2), profile.Purchases)
	assert.Equal(t, int64(4), profile.Tickets)
	assert.Equal(t, "295.00", profile.TotalSpent)

	_, err = f.engagement.Profile(ctx, nil)
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)
}

type missingItems struct {
	asked []model.ItemKind
}

func (r *missingItems) Resolve(_ context.Context, kind model.ItemKind, referenceID uint) (itinerary.Selection, error) {
	r.asked = append(r.asked, kind)
	return itinerary.Selection{}, fmt.Errorf("find %s %d: %w", kind, referenceID, apperr.ErrNotFound)
}

func TestEngagementRejectsItemsTheResolverCannotFind(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()
	sess := f.visitor(t)
	coaster := f.attraction(t, "Alpha Roller Coaster")

	resolver := &missingItems{}
	engagement := NewEngagementService(
		f.db,
		repository.NewUserRepository(f.db),
		repository.NewCheckInRepository(f.db),
		repository.NewRatingRepository(f.db),
		repository.NewPurchaseRepository(f.db),
		resolver,
		f.clock.Now,
	)

	_, err := engagement.CheckIn(ctx, sess, coaster.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = engagement.Rate(ctx, sess, dto.RatingRequest{Kind: "attraction", ReferenceID: coaster.ID, Score: 3})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.Equal(t, []model.ItemKind{model.KindAttraction, model.KindAttraction}, resolver.asked)
	assert.Zero(t, f.count(t, &model.CheckIn{}))
	assert.Zero(t, f.count(t, &model.Rating{}))
}
