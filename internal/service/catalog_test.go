package service

import (
	"context"
	"infinity-park/internal/apperr"
	"infinity-park/internal/cache"
	"infinity-park/internal/dto"
	"infinity-park/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attractionNames(list []*model.Attraction) []string {
	names := make([]string, len(list))
	for i, a := range list {
		names[i] = a.Name
	}
	return names
}

func TestAttractionsAreCachedUntilToggle(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()
	admin := f.admin(t)

	operational, err := f.catalog.Attractions(ctx, true)
	require.NoError(t, err)
	assert.NotContains(t, attractionNames(operational), "Bumper Cars")
	assert.True(t, f.cache.has(cache.KeyAttractionsOperational))

	bumper := f.attraction(t, "Bumper Cars")
	require.NoError(t, f.db.Model(bumper).Update("status", model.AttractionOperational).Error)

	stale, err := f.catalog.Attractions(ctx, true)
	require.NoError(t, err)
	assert.NotContains(t, attractionNames(stale), "Bumper Cars")

	toggled, err := f.catalog.ToggleAttraction(ctx, admin, bumper.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttractionScheduledMaintenance, toggled.Status)
	assert.False(t, f.cache.has(cache.KeyAttractionsOperational))

	toggled, err = f.catalog.ToggleAttraction(ctx, admin, bumper.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttractionOperational, toggled.Status)

	fresh, err := f.catalog.Attractions(ctx, true)
	require.NoError(t, err)
	assert.Contains(t, attractionNames(fresh), "Bumper Cars")

	all, err := f.catalog.Attractions(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestAdminWritesRequireAdministrator(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()
	visitor := f.visitor(t)
	req := dto.ShowRequest{Name: "Night Lights", DurationMinutes: 20}

	_, err := f.catalog.CreateShow(ctx, nil, req)
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)

	_, err = f.catalog.CreateShow(ctx, visitor, req)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = f.catalog.ToggleAttraction(ctx, visitor, 1)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestCreateAndUpdateAttraction(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()
	admin := f.admin(t)
	minAge := 10

	created, err := f.catalog.CreateAttraction(ctx, admin, dto.AttractionRequest{
		Name:             "Drop Tower",
		ShortDescription: "Free fall",
		CapacityPerCycle: 12,
		MinAge:           &minAge,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AttractionOperational, created.Status)
	assert.NotZero(t, created.ID)

	_, err = f.catalog.CreateAttraction(ctx, admin, dto.AttractionRequest{Name: "Drop Tower", CapacityPerCycle: 5})
	assert.True(t, apperr.IsConflict(err), "got %v", err)

	_, err = f.catalog.CreateAttraction(ctx, admin, dto.AttractionRequest{Name: "No Seats"})
	assert.True(t, apperr.IsValidation(err))

	updated, err := f.catalog.UpdateAttraction(ctx, admin, created.ID, dto.AttractionRequest{
		Name:             "Drop Tower XL",
		CapacityPerCycle: 16,
		Status:           string(model.AttractionTemporarilyClosed),
	})
	require.NoError(t, err)
	assert.Equal(t, "Drop Tower XL", updated.Name)

	stored, err := f.catalog.Attraction(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drop Tower XL", stored.Name)
	assert.Equal(t, 16, stored.CapacityPerCycle)
	assert.Equal(t, model.AttractionTemporarilyClosed, stored.Status)
	assert.Nil(t, stored.MinAge)

	_, err = f.catalog.UpdateAttraction(ctx, admin, 9999, dto.AttractionRequest{Name: "Ghost", CapacityPerCycle: 1})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestShowLifecycle(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()
	admin := f.admin(t)

	shows, err := f.catalog.Shows(ctx)
	require.NoError(t, err)
	assert.Len(t, shows, 3)

	created, err := f.catalog.CreateShow(ctx, admin, dto.ShowRequest{Name: "Night Lights", Schedule: "21:00", DurationMinutes: 20})
	require.NoError(t, err)
	assert.True(t, created.Active)

	shows, err = f.catalog.Shows(ctx)
	require.NoError(t, err)
	assert.Len(t, shows, 4)

	toggled, err := f.catalog.ToggleShow(ctx, admin, created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	shows, err = f.catalog.Shows(ctx)
	require.NoError(t, err)
	assert.Len(t, shows, 3)

	updated, err := f.catalog.UpdateShow(ctx, admin, created.ID, dto.ShowRequest{Name: "Night Lights", Schedule: "22:00"})
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, "22:00", updated.Schedule)
}

func TestFoodCourtMenuAndReferenceData(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()

	courts, err := f.catalog.FoodCourts(ctx)
	require.NoError(t, err)
	require.Len(t, courts, 3)

	var burger *model.FoodCourt
	for _, c := range courts {
		if c.Name == "Burger Mania" {
			burger = c
		}
	}
	require.NotNil(t, burger)

	withMenu, err := f.catalog.FoodCourt(ctx, burger.ID)
	require.NoError(t, err)
	assert.Len(t, withMenu.MenuItems, 3)

	types, err := f.catalog.TicketTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 5)

	info, err := f.catalog.ParkInfo(ctx)
	require.NoError(t, err)
	assert.Len(t, info, 3)

	rules, err := f.catalog.ParkInfoEntry(ctx, "general_rules")
	require.NoError(t, err)
	assert.Equal(t, "General Park Rules", rules.Title)

	_, err = f.catalog.ParkInfoEntry(ctx, "missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.catalog.Show(ctx, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestNoticesHideExpired(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	ctx := context.Background()

	f.clock.now = time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	notices, err := f.catalog.Notices(ctx)
	require.NoError(t, err)
	require.Len(t, notices, 2)
	assert.Equal(t, "Special Closing Show", notices[0].Title)

	f.clock.now = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	notices, err = f.catalog.Notices(ctx)
	require.NoError(t, err)
	assert.Empty(t, notices)
}
