package service

import (
	"context"
	"encoding/json"
	"errors"
	"infinity-park/internal/auth"
	"infinity-park/internal/client"
	"infinity-park/internal/config"
	"infinity-park/internal/dto"
	"infinity-park/internal/logger"
	"infinity-park/internal/model"
	"infinity-park/internal/repository"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	clock *testClock
	cache *memoryCache

	auth        AuthService
	catalog     CatalogService
	purchases   PurchaseService
	itineraries ItineraryService
	engagement  EngagementService
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixtureOptions struct {
	gateway PaymentGateway
	newCode CodeGenerator
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := client.InitDBClient(config.Database{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "park.db") + "?_foreign_keys=on",
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)

	require.NoError(t, repository.NewSeedRepository(db).Seed(context.Background()))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T, opts fixtureOptions) *fixture {
	t.Helper()

	db := newTestDB(t)
	clock := &testClock{now: time.Date(2025, 5, 20, 10, 0, 0, 0, time.Local)}
	window := NewVisitWindow(30, clock.Now)
	memCache := newMemoryCache()
	log := logger.Discard()

	if opts.gateway == nil {
		opts.gateway = NewInstantGateway()
	}

	userRepo := repository.NewUserRepository(db)
	ticketTypeRepo := repository.NewTicketTypeRepository(db)
	attractionRepo := repository.NewAttractionRepository(db)
	showRepo := repository.NewShowRepository(db)
	foodCourtRepo := repository.NewFoodCourtRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)

	itineraries := NewItineraryService(db, repository.NewItineraryRepository(db), attractionRepo, showRepo, foodCourtRepo, window)

	authSvc := NewAuthService(db, userRepo, auth.NewTokens("test-secret", time.Hour), bcrypt.MinCost)
	authSvc.(*authServiceImpl).now = clock.Now

	catalog := NewCatalogService(
		ticketTypeRepo,
		attractionRepo,
		showRepo,
		foodCourtRepo,
		repository.NewNoticeRepository(db),
		repository.NewParkInfoRepository(db),
		memCache,
		log,
	)
	catalog.(*catalogServiceImpl).now = clock.Now

	return &fixture{
		db:          db,
		clock:       clock,
		cache:       memCache,
		auth:        authSvc,
		catalog:     catalog,
		purchases:   NewPurchaseService(db, ticketTypeRepo, purchaseRepo, opts.gateway, window, opts.newCode, log),
		itineraries: itineraries,
		engagement: NewEngagementService(
			db,
			userRepo,
			repository.NewCheckInRepository(db),
			repository.NewRatingRepository(db),
			purchaseRepo,
			itineraries,
			clock.Now,
		),
	}
}

// visitor registers a fake visitor and returns its session.
func (f *fixture) visitor(t *testing.T) *auth.Session {
	t.Helper()

	password := gofakeit.Password(true, true, true, false, false, 10)
	user, err := f.auth.Register(context.Background(), dto.RegisterRequest{
		Username:        gofakeit.Username() + gofakeit.DigitN(6),
		Email:           gofakeit.DigitN(6) + gofakeit.Email(),
		Password:        password,
		ConfirmPassword: password,
	})
	require.NoError(t, err)

	return &auth.Session{UserID: user.ID, Role: user.Role}
}

func (f *fixture) admin(t *testing.T) *auth.Session {
	t.Helper()

	sess := f.visitor(t)
	require.NoError(t, f.db.Model(&model.User{}).Where("id = ?", sess.UserID).
		Update("role", model.RoleAdministrator).Error)
	sess.Role = model.RoleAdministrator
	return sess
}

func (f *fixture) ticketType(t *testing.T, name string) *model.TicketType {
	t.Helper()

	var tt model.TicketType
	require.NoError(t, f.db.Where("name = ?", name).First(&tt).Error)
	return &tt
}

func (f *fixture) attraction(t *testing.T, name string) *model.Attraction {
	t.Helper()

	var a model.Attraction
	require.NoError(t, f.db.Where("name = ?", name).First(&a).Error)
	return &a
}

func (f *fixture) show(t *testing.T, name string) *model.Show {
	t.Helper()

	var s model.Show
	require.NoError(t, f.db.Where("name = ?", name).First(&s).Error)
	return &s
}

func (f *fixture) count(t *testing.T, value any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, f.db.Model(value).Count(&n).Error)
	return n
}

// failInserts makes every INSERT into table fail inside the current
// transaction.
func failInserts(t *testing.T, db *gorm.DB, table string) {
	t.Helper()

	err := db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errors.New("injected insert failure"))
		}
	})
	require.NoError(t, err)
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		delete(c.entries, k)
		c.deletes = append(c.deletes, k)
	}
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}
