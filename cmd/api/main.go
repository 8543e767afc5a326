package main

import (
	"context"
	"errors"
	"fmt"
	"infinity-park/internal/auth"
	"infinity-park/internal/cache"
	"infinity-park/internal/client"
	"infinity-park/internal/config"
	"infinity-park/internal/itinerary"
	"infinity-park/internal/logger"
	"infinity-park/internal/repository"
	"infinity-park/internal/server"
	"infinity-park/internal/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	ctx := context.Background()

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		log.WithError(err).Error("database init failed")
		os.Exit(1)
	}
	if err := repository.NewSeedRepository(db).Seed(ctx); err != nil {
		log.WithError(err).Error("seeding reference data failed")
		os.Exit(1)
	}

	catalogCache := cache.Noop()
	rdb, err := client.InitRedisClient(ctx, cfg.Redis)
	switch {
	case err != nil:
		log.WithError(err).Warn("redis unavailable, catalog cache disabled")
	case rdb != nil:
		defer rdb.Close()
		catalogCache = cache.NewRedisCache(rdb, cfg.Redis.CatalogTTL)
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		if secret, err = auth.GenerateSecret(); err != nil {
			log.WithError(err).Error("generate token secret failed")
			os.Exit(1)
		}
		log.Warn("AUTH_JWT_SECRET not set, using a random secret; sessions end on restart")
	}
	tokens := auth.NewTokens(secret, cfg.Auth.TokenTTL)

	var gateway service.PaymentGateway = service.NewInstantGateway()
	if cfg.BrainTree.Enabled() {
		gateway = service.NewBraintreeGateway(client.NewBraintreeClient(&cfg.BrainTree), gateway)
		log.Info("card payments go through braintree", "environment", cfg.BrainTree.Environment)
	}

	window := service.NewVisitWindow(cfg.Purchase.VisitWindowDays, time.Now)

	userRepo := repository.NewUserRepository(db)
	ticketTypeRepo := repository.NewTicketTypeRepository(db)
	attractionRepo := repository.NewAttractionRepository(db)
	showRepo := repository.NewShowRepository(db)
	foodCourtRepo := repository.NewFoodCourtRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	itineraryRepo := repository.NewItineraryRepository(db)
	checkInRepo := repository.NewCheckInRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	parkInfoRepo := repository.NewParkInfoRepository(db)

	authService := service.NewAuthService(db, userRepo, tokens, cfg.Auth.BcryptCost)
	catalogService := service.NewCatalogService(
		ticketTypeRepo,
		attractionRepo,
		showRepo,
		foodCourtRepo,
		noticeRepo,
		parkInfoRepo,
		catalogCache,
		log,
	)
	purchaseService := service.NewPurchaseService(
		db,
		ticketTypeRepo,
		purchaseRepo,
		gateway,
		window,
		service.NewTransactionCode,
		log,
	)
	itineraryService := service.NewItineraryService(db, itineraryRepo, attractionRepo, showRepo, foodCourtRepo, window)
	engagementService := service.NewEngagementService(
		db,
		userRepo,
		checkInRepo,
		ratingRepo,
		purchaseRepo,
		itineraryService,
		time.Now,
	)

	if err := authService.EnsureAdmin(ctx, cfg.Admin); err != nil {
		log.WithError(err).Error("ensure admin account failed")
		os.Exit(1)
	}

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(log, tokens, server.Services{
		Auth:       authService,
		Catalog:    catalogService,
		Purchase:   purchaseService,
		Itinerary:  itineraryService,
		Engagement: engagementService,
	}, itinerary.NewStore(time.Now))

	log.Info("Starting HTTP server", "addr", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("HTTP server error")
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}
}
